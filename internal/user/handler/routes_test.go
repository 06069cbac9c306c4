package handler_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRoutes(t *testing.T) {
	env := newTestEnv(t, false)

	// Every route must be mounted; an unmounted path falls through to 404.
	routes := []struct {
		method string
		path   string
	}{
		{fiber.MethodPost, "/api/v1/auth/register"},
		{fiber.MethodPost, "/api/v1/auth/login"},
		{fiber.MethodPost, "/api/v1/auth/logout"},
		{fiber.MethodPost, "/api/v1/auth/reset-password"},
		{fiber.MethodGet, "/api/v1/users"},
		{fiber.MethodPost, "/api/v1/users"},
		{fiber.MethodGet, "/api/v1/users/some-id"},
		{fiber.MethodPut, "/api/v1/users/some-id"},
		{fiber.MethodDelete, "/api/v1/users/some-id"},
		{fiber.MethodGet, "/api/v1/users/profile"},
		{fiber.MethodPut, "/api/v1/users/profile"},
		{fiber.MethodGet, "/api/v1/users/activity"},
		{fiber.MethodGet, "/api/v1/users/stats"},
	}

	for _, r := range routes {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp, err := env.app.Test(httptest.NewRequest(r.method, r.path, nil), -1)
			require.NoError(t, err)
			assert.NotEqual(t, fiber.StatusNotFound, resp.StatusCode)
		})
	}
}

func TestHealthRoute(t *testing.T) {
	env := newTestEnv(t, false)

	resp, err := env.app.Test(httptest.NewRequest(fiber.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]string
	decodeBody(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}
