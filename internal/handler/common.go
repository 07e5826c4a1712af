package handler // handler defines the HTTP handlers of the layout service

import (
	"errors"   // errors matches sentinels through wrapping
	"log/slog" // slog reports unexpected failures
	"net/http" // status codes
	"strconv"  // URL parameter parsing

	"github.com/labstack/echo/v4" // request context

	"github.com/iliyamo/venue-layout-editor/internal/middleware"
	"github.com/iliyamo/venue-layout-editor/internal/model"
	"github.com/iliyamo/venue-layout-editor/internal/repository"
	"github.com/iliyamo/venue-layout-editor/internal/service"
)

var errUnauthorized = errors.New("invalid user_id in context")

// getUserID returns the authenticated owner id stored by JWTAuth.
func getUserID(c echo.Context) (uint64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, errUnauthorized
	}
	return id, nil
}

// parseIDParam reads a positive numeric path parameter.
func parseIDParam(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id > 0
}

// writeError maps service and repository errors onto status codes.
func writeError(c echo.Context, err error) error {
	var ve *model.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "validation failed", "fields": ve.Errors})
	case errors.Is(err, repository.ErrLayoutNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "layout not found"})
	case errors.Is(err, service.ErrSessionNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "session not found"})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "conflict"})
	}
	slog.Default().Error("request failed", "method", c.Request().Method, "path", c.Request().URL.Path, "err", err)
	var pe *service.PersistenceError
	if errors.As(err, &pe) {
		// the client keeps its state and may retry
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not " + pe.Op + " layout", "retryable": true})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
}
