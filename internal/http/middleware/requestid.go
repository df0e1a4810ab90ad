package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader is the header used to propagate request IDs.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the context-locals key holding the request ID.
	RequestIDLocalKey = "request_id"
)

// RequestID ensures every request carries a request ID: the incoming
// X-Request-ID is reused when present, a fresh UUID is generated otherwise.
// The ID is stored in context locals and echoed on the response header.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)

		return c.Next()
	}
}
