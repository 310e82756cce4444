package api

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dskvich/game-analyst/pkg/api/middleware"
)

type pingRouter struct{}

func (pingRouter) RegisterRoutes(r fiber.Router) {
	r.Post("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })
	r.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })
}

func TestPreflight(t *testing.T) {
	app := NewApp(Config{}, pingRouter{})

	req := httptest.NewRequest(fiber.MethodOptions, "/api/ping", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://analyst.example")
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, fiber.MethodPost)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	assert.Empty(t, body)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowHeaders), "Authorization")
	assert.Contains(t, resp.Header.Get(fiber.HeaderAccessControlAllowHeaders), "Content-Type")
}

func TestRequestIDAndCORSOnResponses(t *testing.T) {
	app := NewApp(Config{AllowedOrigins: "https://analyst.example"}, pingRouter{})

	req := httptest.NewRequest(fiber.MethodPost, "/api/ping", nil)
	req.Header.Set(fiber.HeaderOrigin, "https://analyst.example")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://analyst.example", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestErrorHandlerWritesJSON(t *testing.T) {
	app := NewApp(Config{}, pingRouter{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/boom", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"error":"internal server error"}`, string(body))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/api/missing", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
