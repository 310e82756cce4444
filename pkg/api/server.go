// Package api wires the HTTP surface: the completion relay, the chat
// sessions and the static game data.
package api

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/dskvich/game-analyst/pkg/api/middleware"
	"github.com/dskvich/game-analyst/pkg/api/response"
	"github.com/dskvich/game-analyst/pkg/logger"
)

type Router interface {
	RegisterRoutes(r fiber.Router)
}

type Config struct {
	AllowedOrigins string
	BodyLimit      int
}

func NewApp(cfg Config, routers ...Router) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "game-analyst",
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	origins := cfg.AllowedOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(middleware.RequestID)
	app.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowHeaders:  "Authorization, Content-Type, X-Client-Info, Apikey, " + middleware.RequestIDHeader,
		AllowMethods:  "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders: middleware.RequestIDHeader,
	}))
	app.Use(middleware.AccessLog)

	api := app.Group("/api")
	for _, r := range routers {
		r.RegisterRoutes(api)
	}

	return app
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	} else {
		slog.ErrorContext(c.UserContext(), "Unhandled request error", logger.Err(err))
	}

	w := response.JSONResponseWriter{}
	return w.WriteErrorResponse(c, code, message)
}
