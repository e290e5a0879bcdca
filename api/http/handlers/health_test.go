package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readiness struct{ err error }

func (r readiness) Ready(context.Context) error { return r.err }

func TestHealth(t *testing.T) {
	app := fiber.New()
	h := NewHealthHandler(readiness{})
	app.Get("/health", h.Health)
	app.Get("/ready", h.Ready)

	for _, path := range []string{"/health", "/ready"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
	}
}

func TestReady_NotReady(t *testing.T) {
	app := fiber.New()
	app.Get("/ready", NewHealthHandler(readiness{err: errors.New("postgres: down")}).Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "not_ready", body["status"])
	assert.Equal(t, "postgres: down", body["details"])
}
