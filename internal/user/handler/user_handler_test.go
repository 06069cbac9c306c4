package handler_test

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulsm/user-service/internal/user/domain"
)

func TestRequireAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		env := newTestEnv(t, false)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users", nil)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "authorization header is required", body["error"])
	})

	t.Run("malformed header", func(t *testing.T) {
		env := newTestEnv(t, false)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Basic abc123")
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "authorization header format must be Bearer {token}", body["error"])
	})

	t.Run("unverifiable token", func(t *testing.T) {
		env := newTestEnv(t, false)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid or expired token", body["error"])
	})

	t.Run("revoked token", func(t *testing.T) {
		env := newTestEnv(t, true)
		auth := env.bearer(t, "u1")

		env.denylist.EXPECT().IsRevoked(gomock.Any(), gomock.Any()).Return(true, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users", nil)
		req.Header.Set("Authorization", auth)
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "token revoked", body["error"])
	})
}

func TestUserHandler_List(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.EXPECT().List(gomock.Any(), 5, 10).Return([]*domain.User{
		{ID: "u1", Email: "a@example.com", FirstName: "Ada"},
		{ID: "u2", Email: "b@example.com", FirstName: "Grace"},
	}, nil)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users?limit=5&offset=10", nil)
	req.Header.Set("Authorization", env.bearer(t, "admin"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body []map[string]any
	decodeBody(t, resp, &body)
	require.Len(t, body, 2)
	assert.Equal(t, "u1", body[0]["id"])
	assert.Equal(t, "Grace", body[1]["firstName"])
}

func TestUserHandler_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.repo.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{
			ID:          "u1",
			Email:       "ada@example.com",
			PhoneNumber: "+15551234567",
		}, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/u1", nil)
		req.Header.Set("Authorization", env.bearer(t, "admin"))
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "ada@example.com", body["email"])
		assert.Equal(t, "+15551234567", body["phoneNumber"])
	})

	t.Run("not found", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/missing", nil)
		req.Header.Set("Authorization", env.bearer(t, "admin"))
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "user not found", body["error"])
	})
}

func TestUserHandler_Create(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.EXPECT().GetByEmail(gomock.Any(), "new@example.com").Return(nil, nil)
	env.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

	req := jsonRequest(t, fiber.MethodPost, "/api/v1/users", fiber.Map{
		"firstName": "Grace",
		"lastName":  "Hopper",
		"email":     "new@example.com",
		"password":  "password123",
	})
	req.Header.Set("Authorization", env.bearer(t, "admin"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
}

func TestUserHandler_Update(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{
		ID:        "u1",
		Email:     "ada@example.com",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}, nil)
	env.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, u *domain.User) error {
			// Only the field in the request body changes.
			assert.Equal(t, "Augusta", u.FirstName)
			assert.Equal(t, "Lovelace", u.LastName)
			assert.Equal(t, "ada@example.com", u.Email)
			return nil
		})

	req := jsonRequest(t, fiber.MethodPut, "/api/v1/users/u1", fiber.Map{"firstName": "Augusta"})
	req.Header.Set("Authorization", env.bearer(t, "admin"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestUserHandler_Delete(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.EXPECT().Delete(gomock.Any(), "u1").Return(nil)

	req := httptest.NewRequest(fiber.MethodDelete, "/api/v1/users/u1", nil)
	req.Header.Set("Authorization", env.bearer(t, "admin"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestUserHandler_Profile(t *testing.T) {
	t.Run("get resolves the caller from the token", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.repo.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{
			ID:    "u1",
			Email: "ada@example.com",
		}, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/profile", nil)
		req.Header.Set("Authorization", env.bearer(t, "u1"))
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]any
		decodeBody(t, resp, &body)
		assert.Equal(t, "u1", body["id"])
	})

	t.Run("update targets the caller", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.repo.EXPECT().GetByID(gomock.Any(), "u1").Return(&domain.User{
			ID:        "u1",
			Email:     "ada@example.com",
			FirstName: "Ada",
		}, nil)
		env.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

		req := jsonRequest(t, fiber.MethodPut, "/api/v1/users/profile", fiber.Map{"firstName": "Augusta"})
		req.Header.Set("Authorization", env.bearer(t, "u1"))
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestUserHandler_Activity(t *testing.T) {
	t.Run("returns per-day buckets", func(t *testing.T) {
		env := newTestEnv(t, false)
		env.repo.EXPECT().Activity(gomock.Any(), gomock.Any(), gomock.Any()).Return([]domain.ActivityPoint{
			{Date: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), NewUsers: 3, ActiveUsers: 10},
		}, nil)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/activity?startDate=2026-08-01&endDate=2026-08-07", nil)
		req.Header.Set("Authorization", env.bearer(t, "admin"))
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body []map[string]any
		decodeBody(t, resp, &body)
		require.Len(t, body, 1)
		assert.Equal(t, "2026-08-01", body[0]["date"])
		assert.Equal(t, float64(3), body[0]["newUsers"])
		assert.Equal(t, float64(10), body[0]["activeUsers"])
	})

	t.Run("rejects a bad start date", func(t *testing.T) {
		env := newTestEnv(t, false)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/activity?startDate=bogus&endDate=2026-08-07", nil)
		req.Header.Set("Authorization", env.bearer(t, "admin"))
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		decodeBody(t, resp, &body)
		assert.Equal(t, "invalid startDate", body["error"])
	})

	t.Run("rejects an inverted range", func(t *testing.T) {
		env := newTestEnv(t, false)

		req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/activity?startDate=2026-08-07&endDate=2026-08-01", nil)
		req.Header.Set("Authorization", env.bearer(t, "admin"))
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestUserHandler_Stats(t *testing.T) {
	env := newTestEnv(t, false)
	env.repo.EXPECT().Stats(gomock.Any()).Return(&domain.UserStats{
		TotalUsers:  42,
		ActiveUsers: 7,
		NewUsers:    3,
	}, nil)

	req := httptest.NewRequest(fiber.MethodGet, "/api/v1/users/stats", nil)
	req.Header.Set("Authorization", env.bearer(t, "admin"))
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]int
	decodeBody(t, resp, &body)
	assert.Equal(t, 42, body["totalUsers"])
	assert.Equal(t, 7, body["activeUsers"])
	assert.Equal(t, 3, body["newUsers"])
}
