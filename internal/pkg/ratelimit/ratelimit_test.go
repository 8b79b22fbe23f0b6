package ratelimit

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_LimitsPerClient(t *testing.T) {
	app := fiber.New()
	app.Post("/api/contact", Contact(nil), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	for i := 0; i < ContactMax; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/contact", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/contact", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestNewRedisStorage_NilClient(t *testing.T) {
	assert.Nil(t, NewRedisStorage(nil))
}
