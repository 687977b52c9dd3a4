package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request's ray id.
const HeaderName = "X-Ray-Id"

// New returns a middleware that assigns each request a unique ray id.
//
// The id is stored in c.Locals("ray_id") for loggers downstream and echoed
// back in the response header so clients can reference it in bug reports.
// An incoming X-Ray-Id header is honored to allow tracing across hops.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
