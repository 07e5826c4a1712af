package handler // handler package contains the layout CRUD handlers

import (
	"bytes"    // buffer for the xlsx body
	"context"  // service signatures
	"fmt"      // Content-Disposition header
	"net/http" // status codes
	"strings"  // query parsing

	"github.com/labstack/echo/v4" // request context

	"github.com/iliyamo/venue-layout-editor/internal/export"
	"github.com/iliyamo/venue-layout-editor/internal/model"
	"github.com/iliyamo/venue-layout-editor/internal/repository"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// LayoutService is what the layout handlers need; *service.LayoutService
// implements it.
type LayoutService interface {
	Create(ctx context.Context, ownerID uint64, l model.Layout) (*model.Layout, error)
	Get(ctx context.Context, ownerID, id uint64) (*model.Layout, error)
	Update(ctx context.Context, ownerID, id uint64, l model.Layout) (*model.Layout, error)
	Duplicate(ctx context.Context, ownerID, id uint64, newName string) (*model.Layout, error)
	Delete(ctx context.Context, ownerID, id uint64) error
	List(ctx context.Context, ownerID uint64, f repository.ListFilter) ([]model.LayoutSummary, error)
}

// LayoutHandler serves /v1/layouts.
type LayoutHandler struct {
	Layouts LayoutService
}

// NewLayoutHandler panics on a nil service, like the other constructors.
func NewLayoutHandler(layouts LayoutService) *LayoutHandler {
	if layouts == nil {
		panic("nil layout service passed to NewLayoutHandler")
	}
	return &LayoutHandler{Layouts: layouts}
}

// CreateLayout handles POST /v1/layouts.
func (h *LayoutHandler) CreateLayout(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body model.Layout
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	l, err := h.Layouts.Create(c.Request().Context(), ownerID, body)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// ListLayouts handles GET /v1/layouts?name=&active=true.
func (h *LayoutHandler) ListLayouts(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f := repository.ListFilter{Name: strings.TrimSpace(c.QueryParam("name"))}
	switch strings.ToLower(c.QueryParam("active")) {
	case "", "false", "0":
	case "true", "1":
		f.ActiveOnly = true
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active must be true or false"})
	}
	out, err := h.Layouts.List(c.Request().Context(), ownerID, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out, "count": len(out)})
}

// GetLayout handles GET /v1/layouts/:id.
func (h *LayoutHandler) GetLayout(c echo.Context) error {
	ownerID, id, ok, err := h.ownerAndID(c)
	if !ok {
		return err
	}
	l, err := h.Layouts.Get(c.Request().Context(), ownerID, id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// layoutPatch carries the fields PATCH may change; nil means keep.
type layoutPatch struct {
	Name       *string               `json:"name"`
	CanvasW    *int                  `json:"canvasW"`
	CanvasH    *int                  `json:"canvasH"`
	IsActive   *bool                 `json:"isActive"`
	Items      *[]model.LayoutItem   `json:"items"`
	Categories *[]model.SeatCategory `json:"categories"`
}

func (p layoutPatch) apply(l model.Layout) model.Layout {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.CanvasW != nil {
		l.CanvasW = *p.CanvasW
	}
	if p.CanvasH != nil {
		l.CanvasH = *p.CanvasH
	}
	if p.IsActive != nil {
		l.IsActive = *p.IsActive
	}
	if p.Items != nil {
		l.Items = *p.Items
	}
	if p.Categories != nil {
		l.Categories = *p.Categories
	}
	return l
}

// UpdateLayout handles PUT /v1/layouts/:id (full replacement) and PATCH
// (only the fields present in the body).
func (h *LayoutHandler) UpdateLayout(c echo.Context) error {
	ownerID, id, ok, err := h.ownerAndID(c)
	if !ok {
		return err
	}
	ctx := c.Request().Context()

	var next model.Layout
	if c.Request().Method == http.MethodPatch {
		var p layoutPatch
		if err := c.Bind(&p); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
		}
		cur, err := h.Layouts.Get(ctx, ownerID, id)
		if err != nil {
			return writeError(c, err)
		}
		next = p.apply(*cur)
	} else if err := c.Bind(&next); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}

	l, err := h.Layouts.Update(ctx, ownerID, id, next)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// DeleteLayout handles DELETE /v1/layouts/:id.
func (h *LayoutHandler) DeleteLayout(c echo.Context) error {
	ownerID, id, ok, err := h.ownerAndID(c)
	if !ok {
		return err
	}
	if err := h.Layouts.Delete(c.Request().Context(), ownerID, id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// DuplicateLayout handles POST /v1/layouts/:id/duplicate with an optional
// {"name": "..."} body.
func (h *LayoutHandler) DuplicateLayout(c echo.Context) error {
	ownerID, id, ok, err := h.ownerAndID(c)
	if !ok {
		return err
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.Bind(&body); err != nil { // an empty body keeps the default name
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	l, err := h.Layouts.Duplicate(c.Request().Context(), ownerID, id, body.Name)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, l)
}

// Manifest handles GET /v1/layouts/:id/manifest and streams an xlsx
// seat list.
func (h *LayoutHandler) Manifest(c echo.Context) error {
	ownerID, id, ok, err := h.ownerAndID(c)
	if !ok {
		return err
	}
	l, err := h.Layouts.Get(c.Request().Context(), ownerID, id)
	if err != nil {
		return writeError(c, err)
	}
	var buf bytes.Buffer
	if err := export.WriteManifest(&buf, *l); err != nil {
		return writeError(c, err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="layout-%d-seats.xlsx"`, l.ID))
	return c.Blob(http.StatusOK, xlsxMIME, buf.Bytes())
}

// ownerAndID writes the 401/400 response itself and reports false when
// the request cannot proceed; err is the result of writing that response.
func (h *LayoutHandler) ownerAndID(c echo.Context) (uint64, uint64, bool, error) {
	ownerID, err := getUserID(c)
	if err != nil {
		return 0, 0, false, c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return 0, 0, false, c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid layout id"})
	}
	return ownerID, id, true, nil
}
