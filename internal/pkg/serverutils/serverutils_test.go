package serverutils

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	SessionKey string `validate:"required,max=255"`
	Message    string `validate:"required,max=2000"`
	Language   string `validate:"omitempty,oneof=sv en"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(&sampleRequest{SessionKey: "sess-1", Message: "hej"})
	assert.NoError(t, err)

	err = ValidateRequest(&sampleRequest{Message: "hej", Language: "fi"})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.True(t, errors.As(err, &fiberErr))
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "SessionKey")
	assert.Contains(t, fiberErr.Message, "Language")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/known", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Conversation not found")
	})
	app.Get("/unknown", func(c *fiber.Ctx) error {
		return errors.New("pg: connection refused")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/known", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Conversation not found")

	// Unknown errors must not leak their message.
	resp, err = app.Test(httptest.NewRequest("GET", "/unknown", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	body, _ = io.ReadAll(resp.Body)
	assert.NotContains(t, string(body), "connection refused")
	assert.Contains(t, string(body), "Internal server error")
}
