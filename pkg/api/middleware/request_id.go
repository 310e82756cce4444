package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/dskvich/game-analyst/pkg/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags the request context with an id so every log line of the
// request can be correlated. An id supplied by the caller is reused.
func RequestID(c *fiber.Ctx) error {
	id := c.Get(RequestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	c.Set(RequestIDHeader, id)
	c.SetUserContext(logger.ContextWithRequestID(c.UserContext(), id))

	return c.Next()
}
