package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/venue-layout-editor/internal/handler"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func routeSet(e *echo.Echo) map[string]bool {
	out := map[string]bool{}
	for _, r := range e.Routes() {
		out[r.Method+" "+r.Path] = true
	}
	return out
}

func TestRegisterRoutes(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, okPinger{})
	RegisterLayouts(e, &handler.LayoutHandler{}, "s")
	RegisterEditor(e, &handler.SessionHandler{}, "s")

	routes := routeSet(e)
	for _, want := range []string{
		"GET /healthz",
		"GET /readyz",
		"POST /v1/layouts",
		"GET /v1/layouts",
		"GET /v1/layouts/:id",
		"PUT /v1/layouts/:id",
		"PATCH /v1/layouts/:id",
		"DELETE /v1/layouts/:id",
		"POST /v1/layouts/:id/duplicate",
		"GET /v1/layouts/:id/manifest",
		"POST /v1/editor/sessions",
		"GET /v1/editor/sessions/:sid",
		"GET /v1/editor/sessions/:sid/frame",
		"POST /v1/editor/sessions/:sid/events",
		"POST /v1/editor/sessions/:sid/save",
		"DELETE /v1/editor/sessions/:sid",
	} {
		assert.True(t, routes[want], want)
	}
}

func TestReadyzOnlyWithDatabase(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, nil)
	assert.False(t, routeSet(e)["GET /readyz"])
}

func TestOwnerGroupRunsExtraAfterAuth(t *testing.T) {
	e := echo.New()
	called := false
	extra := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			called = true
			return next(c)
		}
	}
	RegisterLayouts(e, &handler.LayoutHandler{}, "s", extra)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/layouts", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called, "unauthenticated requests stop before rate limiting and caching")
}
