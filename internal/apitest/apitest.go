// Package apitest drives a Fiber app in handler tests and decodes the
// response envelope.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/aldoetobex/legal-practice-backend/internal/middleware"
	"github.com/aldoetobex/legal-practice-backend/pkg/database/dbtest"
)

// Response is a decoded envelope plus the raw status code.
type Response struct {
	Code    int                 `json:"-"`
	Status  bool                `json:"status"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

// Into decodes Data into v.
func (r Response) Into(t testing.TB, v any) {
	t.Helper()
	require.NotEmpty(t, r.Data, "response has no data")
	require.NoError(t, json.Unmarshal(r.Data, v))
}

// NewApp returns a Fiber app wired with the production error handler.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(dbtest.Logger())})
}

// Do sends body (marshalled as JSON when not nil) and decodes the envelope.
func Do(t testing.TB, app *fiber.App, method, path string, body any) Response {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rdr = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rdr = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return Send(t, app, req)
}

// Send runs a prepared request and decodes the envelope.
func Send(t testing.TB, app *fiber.App, req *http.Request) Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := Response{Code: resp.StatusCode}
	require.NoError(t, json.Unmarshal(raw, &out), "body: %s", raw)
	return out
}
