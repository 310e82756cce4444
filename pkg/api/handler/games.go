package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dskvich/game-analyst/pkg/api/response"
	"github.com/dskvich/game-analyst/pkg/domain"
)

type games struct {
	writer response.JSONResponseWriter
}

func NewGames() *games {
	return &games{}
}

func (h *games) RegisterRoutes(r fiber.Router) {
	r.Get("/games", h.List)
	r.Get("/sample-questions", h.SampleQuestions)
}

func (h *games) List(c *fiber.Ctx) error {
	return h.writer.WriteSuccessResponse(c, fiber.Map{
		"games":  domain.TopGames,
		"genres": domain.GenreDistribution,
	})
}

func (h *games) SampleQuestions(c *fiber.Ctx) error {
	return h.writer.WriteSuccessResponse(c, fiber.Map{
		"questions": domain.SampleQuestions,
	})
}
