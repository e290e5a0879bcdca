package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/artem13815/legalassist/api/http/handlers"
	"github.com/artem13815/legalassist/pkg/assistant"
	"github.com/artem13815/legalassist/pkg/health"
)

type stubGenerator struct {
	text string
	err  error
}

func (s stubGenerator) Model() string { return "stub" }

func (s stubGenerator) Generate(context.Context, string) (string, error) { return s.text, s.err }

func newApp(t *testing.T, gen stubGenerator) (*fiber.App, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	app := NewApp(log, "")
	svc := assistant.NewService(gen, nil, 0, log)
	Register(app, handlers.NewAssistantHandler(svc), handlers.NewHealthHandler(health.NewService()))
	return app, logs
}

func ask(t *testing.T, app *fiber.App, body string) (int, map[string]string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, "/api/legal-assistant", strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	out := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestLegalAssistant_Answer(t *testing.T) {
	app, _ := newApp(t, stubGenerator{text: "1. Do X. 2. Do Y. Please consult a lawyer."})

	status, body := ask(t, app, `{"question":"help"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "1. Do X. 2. Do Y. Please consult a lawyer.", body["answer"])
}

func TestLegalAssistant_EmptyModelTextIsNotAnError(t *testing.T) {
	app, _ := newApp(t, stubGenerator{})

	status, body := ask(t, app, `{"question":"help"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, assistant.FallbackAnswer, body["answer"])
}

func TestLegalAssistant_UpstreamErrorHidden(t *testing.T) {
	app, logs := newApp(t, stubGenerator{err: errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")})

	status, body := ask(t, app, `{"question":"help"}`)

	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, map[string]string{"error": assistant.ServiceErrorMessage}, body)
	assert.Equal(t, 1, logs.FilterMessage("legal assistant upstream call failed").Len())
}

func TestLegalAssistant_Validation(t *testing.T) {
	app, _ := newApp(t, stubGenerator{text: "unused"})

	status, body := ask(t, app, `{"question":""}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Question is required", body["error"])
}

func TestRequestLogger(t *testing.T) {
	app, logs := newApp(t, stubGenerator{text: "1. Go."})

	ask(t, app, `{"question":"help"}`)

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/api/legal-assistant", fields["path"])
	assert.EqualValues(t, fiber.StatusOK, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestUnknownRouteIsJSON(t *testing.T) {
	app, _ := newApp(t, stubGenerator{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/nope", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["error"])
}

func TestPanicIsRecovered(t *testing.T) {
	app, _ := newApp(t, stubGenerator{})
	app.Get("/boom", func(*fiber.Ctx) error { panic("secret stack detail") })

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/boom", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "internal server error", body["error"])
}

func TestCORS(t *testing.T) {
	app, _ := newApp(t, stubGenerator{})
	req := httptest.NewRequest(fiber.MethodGet, "/api/health", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:3000")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, "*", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}
