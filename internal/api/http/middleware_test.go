package http

import (
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-union/cms-service/internal/observability"
	apperrors "github.com/campus-union/cms-service/pkg/util"
)

func newMiddlewareTestApp(metrics *observability.Metrics) *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), metrics, time.Second)

	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": "ok"})
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("article", nil)
	})
	app.Get("/protected", func(c *fiber.Ctx) error {
		return apperrors.NewUnauthenticated("missing authorization header")
	})
	app.Get("/invalid", func(c *fiber.Ctx) error {
		return apperrors.NewValidationError("validation failed", map[string]any{"title": "title is required"})
	})
	app.Get("/panic", func(c *fiber.Ctx) error {
		panic("boom")
	})
	return app
}

func errorEnvelope(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body struct {
		Error map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	require.NotNil(t, body.Error)
	return body.Error
}

func TestErrorMiddlewarePassesSuccess(t *testing.T) {
	app := newMiddlewareTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestErrorMiddlewareEnvelope(t *testing.T) {
	app := newMiddlewareTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/missing", nil))
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	envelope := errorEnvelope(t, resp)
	assert.Equal(t, "NOT_FOUND", envelope["code"])
	assert.Equal(t, "article not found", envelope["message"])
}

func TestErrorMiddlewareDetails(t *testing.T) {
	app := newMiddlewareTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/invalid", nil))
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	envelope := errorEnvelope(t, resp)
	assert.Equal(t, "VALIDATION_FAILED", envelope["code"])
	details, ok := envelope["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "title is required", details["title"])
}

func TestErrorMiddlewareSetsWWWAuthenticate(t *testing.T) {
	app := newMiddlewareTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/protected", nil))
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
}

func TestErrorMiddlewareUnknownRoute(t *testing.T) {
	app := newMiddlewareTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/does-not-exist", nil))
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	envelope := errorEnvelope(t, resp)
	assert.Equal(t, "NOT_FOUND", envelope["code"])
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := newMiddlewareTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/panic", nil))
	require.NoError(t, err)

	assert.Equal(t, nethttp.StatusInternalServerError, resp.StatusCode)
	envelope := errorEnvelope(t, resp)
	assert.Equal(t, "INTERNAL_ERROR", envelope["code"])
	assert.Equal(t, "internal server error", envelope["message"])
}

func TestMiddlewareRecordsMetrics(t *testing.T) {
	metrics := observability.NewMetrics()
	app := newMiddlewareTestApp(metrics)

	_, err := app.Test(httptest.NewRequest(nethttp.MethodGet, "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest(nethttp.MethodGet, "/missing", nil))
	require.NoError(t, err)

	requests, errors := metrics.Totals()
	assert.Equal(t, int64(2), requests)
	assert.Equal(t, int64(1), errors)
}
