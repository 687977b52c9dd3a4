package rayid

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRayIDAssigned(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		assert.NotEmpty(t, c.Locals("ray_id"))
		return c.SendStatus(200)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Header.Get(HeaderName))
}

func TestRayIDHonorsIncoming(t *testing.T) {
	app := fiber.New()
	app.Use(New())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendStatus(200)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderName, "upstream-ray")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "upstream-ray", resp.Header.Get(HeaderName))
}
