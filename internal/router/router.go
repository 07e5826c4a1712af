package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/venue-layout-editor/internal/handler"    // HTTP handlers
	"github.com/iliyamo/venue-layout-editor/internal/middleware" // JWT and role enforcement
)

// OwnerRole is the role claim required on every layout and editor route.
const OwnerRole = "OWNER"

// RegisterRoutes registers the unauthenticated routes: liveness at
// /healthz and readiness (database ping) at /readyz.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	if db != nil {
		e.GET("/readyz", handler.Ready(db))
	}
}

// ownerGroup builds a /v1 sub-group guarded by JWTAuth and the OWNER role,
// followed by any extra middleware (rate limit, response cache).
func ownerGroup(e *echo.Echo, prefix, jwtSecret string, extra ...echo.MiddlewareFunc) *echo.Group {
	mws := append([]echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(OwnerRole),
	}, extra...)
	return e.Group("/v1"+prefix, mws...)
}
