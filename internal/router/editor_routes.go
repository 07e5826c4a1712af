package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/venue-layout-editor/internal/handler"
)

// RegisterEditor registers the editor session endpoints under
// /v1/editor/sessions.  Clients stream pointer and keyboard events to
// /events and repaint from the returned state or /frame.
func RegisterEditor(e *echo.Echo, h *handler.SessionHandler, jwtSecret string, extra ...echo.MiddlewareFunc) {
	g := ownerGroup(e, "/editor/sessions", jwtSecret, extra...)

	g.POST("", h.OpenSession)
	g.GET("/:sid", h.GetSession)
	g.GET("/:sid/frame", h.GetFrame)
	g.POST("/:sid/events", h.PostEvents)
	g.POST("/:sid/save", h.SaveSession)
	g.DELETE("/:sid", h.CancelSession)
}
