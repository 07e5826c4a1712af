package handler // handler package contains the editor session handlers

import (
	"bytes"         // batch detection
	"context"       // service signatures
	"encoding/json" // raw event envelopes
	"errors"        // validation error matching
	"io"            // body reading
	"net/http"      // status codes

	"github.com/labstack/echo/v4" // request context

	"github.com/iliyamo/venue-layout-editor/internal/editor"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// maxEventBody bounds one events request.
const maxEventBody = 1 << 20

// SessionService is what the editor handlers need; *service.SessionManager
// implements it.
type SessionService interface {
	Open(ctx context.Context, ownerID, layoutID uint64) (string, editor.State, error)
	Dispatch(sid string, ownerID uint64, ev editor.Event) (editor.Transition, editor.State, error)
	State(sid string, ownerID uint64) (editor.State, error)
	Frame(sid string, ownerID uint64) (editor.Frame, error)
	Save(ctx context.Context, sid string, ownerID uint64) (*model.Layout, error)
	Cancel(sid string, ownerID uint64) error
}

// SessionHandler serves /v1/editor/sessions.
type SessionHandler struct {
	Sessions SessionService
}

// NewSessionHandler panics on a nil service.
func NewSessionHandler(sessions SessionService) *SessionHandler {
	if sessions == nil {
		panic("nil session service passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions}
}

// OpenSession handles POST /v1/editor/sessions.  A body of
// {"layoutId": N} opens edit mode; an empty body or layoutId 0 opens
// create mode.
func (h *SessionHandler) OpenSession(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		LayoutID uint64 `json:"layoutId"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	sid, st, err := h.Sessions.Open(c.Request().Context(), ownerID, body.LayoutID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"sessionId": sid, "state": st})
}

// GetSession handles GET /v1/editor/sessions/:sid.
func (h *SessionHandler) GetSession(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	st, err := h.Sessions.State(c.Param("sid"), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// GetFrame handles GET /v1/editor/sessions/:sid/frame.
func (h *SessionHandler) GetFrame(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	f, err := h.Sessions.Frame(c.Param("sid"), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

// PostEvents handles POST /v1/editor/sessions/:sid/events.  The body is a
// single event envelope or an array of them; arrays are applied in order
// and stop at the first rejected event.
func (h *SessionHandler) PostEvents(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxEventBody+1))
	if err != nil || len(raw) > maxEventBody {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	raw = bytes.TrimSpace(raw)

	var envelopes []json.RawMessage
	batch := len(raw) > 0 && raw[0] == '['
	if batch {
		if err := json.Unmarshal(raw, &envelopes); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid event batch"})
		}
	} else {
		envelopes = []json.RawMessage{raw}
	}

	sid := c.Param("sid")
	transitions := make([]editor.Transition, 0, len(envelopes))
	var st editor.State
	for i, env := range envelopes {
		ev, err := editor.DecodeEvent(env)
		if err == nil {
			var tr editor.Transition
			tr, st, err = h.Sessions.Dispatch(sid, ownerID, ev)
			if err == nil {
				transitions = append(transitions, tr)
				continue
			}
		}
		var ve *model.ValidationError
		if batch && errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error":   "validation failed",
				"fields":  ve.Errors,
				"index":   i,
				"applied": transitions,
			})
		}
		return writeError(c, err)
	}

	if !batch {
		return c.JSON(http.StatusOK, echo.Map{"transition": transitions[0], "state": st})
	}
	return c.JSON(http.StatusOK, echo.Map{"transitions": transitions, "state": st})
}

// SaveSession handles POST /v1/editor/sessions/:sid/save.
func (h *SessionHandler) SaveSession(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	l, err := h.Sessions.Save(c.Request().Context(), c.Param("sid"), ownerID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

// CancelSession handles DELETE /v1/editor/sessions/:sid.
func (h *SessionHandler) CancelSession(c echo.Context) error {
	ownerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	if err := h.Sessions.Cancel(c.Param("sid"), ownerID); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
