package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-layout-editor/internal/handler"
)

// RegisterLayouts registers the owner-scoped layout CRUD endpoints under
// /v1/layouts.
func RegisterLayouts(e *echo.Echo, h *handler.LayoutHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := ownerGroup(e, "/layouts", jwtSecret, extra...)

	g.POST("", h.CreateLayout)
	g.GET("", h.ListLayouts)
	g.GET("/:id", h.GetLayout)
	g.PUT("/:id", h.UpdateLayout)
	g.PATCH("/:id", h.UpdateLayout)
	g.DELETE("/:id", h.DeleteLayout)
	g.POST("/:id/duplicate", h.DuplicateLayout)
	g.GET("/:id/manifest", h.Manifest)
}
