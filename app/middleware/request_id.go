package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"
	// LocalsRequestID is the fiber.Ctx locals key holding the request id.
	LocalsRequestID = "requestid"
)

// RequestID tags every request with an id, reusing a well-formed inbound
// X-Request-ID and generating a UUID otherwise.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}

		c.Locals(LocalsRequestID, id)
		c.Set(HeaderRequestID, id)

		return c.Next()
	}
}

func RequestIDFrom(c *fiber.Ctx) string {
	id, _ := c.Locals(LocalsRequestID).(string)
	return id
}
