package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aldoetobex/legal-practice-backend/pkg/models"
)

func newApp(buf io.Writer) *fiber.App {
	logger := slog.New(slog.NewJSONHandler(buf, nil))
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	app.Use(Metrics())
	app.Use(RequestLogger(logger))

	app.Get("/ok", func(c *fiber.Ctx) error { return c.JSON(models.Envelope{Status: true}) })
	app.Get("/missing/:id", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusNotFound, "Case not found") })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("db exploded: secret dsn") })
	app.Get("/metrics", MetricsHandler())
	return app
}

func decodeErr(t *testing.T, r io.Reader) models.ErrorResponse {
	t.Helper()
	var out models.ErrorResponse
	require.NoError(t, json.NewDecoder(r).Decode(&out))
	return out
}

func TestErrorHandler_FiberError(t *testing.T) {
	app := newApp(io.Discard)
	resp, err := app.Test(httptest.NewRequest("GET", "/missing/3", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)

	body := decodeErr(t, resp.Body)
	assert.False(t, body.Status)
	assert.Equal(t, "Case not found", body.Message)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestErrorHandler_HidesInternalDetail(t *testing.T) {
	var logs strings.Builder
	app := newApp(&logs)
	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)

	body := decodeErr(t, resp.Body)
	assert.False(t, body.Status)
	assert.Equal(t, "Internal Server Error", body.Message)
	assert.Contains(t, logs.String(), "db exploded")
	assert.Contains(t, logs.String(), `"level":"ERROR"`)
}

func TestRequestLogger_LevelByStatus(t *testing.T) {
	var logs strings.Builder
	app := newApp(&logs)

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"level":"INFO"`)
	assert.Contains(t, logs.String(), `"status":200`)

	logs.Reset()
	_, err = app.Test(httptest.NewRequest("GET", "/missing/1", nil))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), `"level":"WARN"`)
	assert.Contains(t, logs.String(), `"route":"/missing/:id"`)
}

func TestMetrics_Exposed(t *testing.T) {
	app := newApp(io.Discard)
	_, err := app.Test(httptest.NewRequest("GET", "/missing/9", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	b, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(b), `legal_http_requests_total{method="GET",route="/missing/:id",status="404"}`)
	assert.Contains(t, string(b), "legal_http_request_duration_seconds")
}
