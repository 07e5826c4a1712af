package editor

import (
	"encoding/json"
	"fmt"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// Event is one input to Session.Dispatch.  Clients send events as JSON
// objects with a "type" discriminator, see DecodeEvent.
type Event interface {
	EventType() string
}

// Pointer events carry screen coordinates.  TargetID is the item under
// the cursor as resolved by the client; when empty the session hit-tests.
type PointerDownEvent struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TargetID string  `json:"targetId,omitempty"`
	Ctrl     bool    `json:"ctrl"`
	Meta     bool    `json:"meta"`
}

type PointerMoveEvent struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type PointerUpEvent struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TargetID string  `json:"targetId,omitempty"`
}

// ContextMenuEvent is a right-click.
type ContextMenuEvent struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	TargetID string  `json:"targetId,omitempty"`
}

// WheelEvent zooms when ctrl/cmd is held and pans otherwise.
type WheelEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
	Ctrl   bool    `json:"ctrl"`
	Meta   bool    `json:"meta"`
}

// KeyDownEvent is a raw key press, mapped to an action by ShortcutFor.
type KeyDownEvent struct {
	Key         string `json:"key"`
	Ctrl        bool   `json:"ctrl"`
	Meta        bool   `json:"meta"`
	Shift       bool   `json:"shift"`
	InTextInput bool   `json:"inTextInput"`
}

// DragEndEvent reports where the client dropped a dragged item (world units).
type DragEndEvent struct {
	ID string  `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

type TransformEndEvent struct {
	Nodes []NodeTransform `json:"nodes"`
}

type SelectToolEvent struct {
	Tool Tool `json:"tool"`
}

type ConfirmBulkEvent struct {
	Config BulkConfig `json:"config"`
}

type CancelBulkEvent struct{}

type EditPropertyEvent struct {
	Change PropertyChange `json:"change"`
}

type AlignEvent struct {
	Mode AlignMode `json:"mode"`
}

type DistributeEvent struct {
	Axis Axis `json:"axis"`
}

type (
	BringToFrontEvent       struct{}
	SendToBackEvent         struct{}
	DeleteSelectionEvent    struct{}
	DuplicateSelectionEvent struct{}
	SelectAllEvent          struct{}
	ClearSelectionEvent     struct{}
	UndoEvent               struct{}
	RedoEvent               struct{}
	ResetViewEvent          struct{}
	CopyEvent               struct{}
	PasteEvent              struct{}
)

type SetGridEvent struct {
	Grid GridSettings `json:"grid"`
}

type SetNameEvent struct {
	Name string `json:"name"`
}

type SetCanvasSizeEvent struct {
	W int `json:"w"`
	H int `json:"h"`
}

type SetActiveEvent struct {
	Active bool `json:"active"`
}

type AddCategoryEvent struct {
	Category model.SeatCategory `json:"category"`
}

type UpdateCategoryEvent struct {
	Category model.SeatCategory `json:"category"`
}

type DeleteCategoryEvent struct {
	ID string `json:"id"`
}

func (PointerDownEvent) EventType() string        { return "pointer_down" }
func (PointerMoveEvent) EventType() string        { return "pointer_move" }
func (PointerUpEvent) EventType() string          { return "pointer_up" }
func (ContextMenuEvent) EventType() string        { return "context_menu" }
func (WheelEvent) EventType() string              { return "wheel" }
func (KeyDownEvent) EventType() string            { return "key_down" }
func (DragEndEvent) EventType() string            { return "drag_end" }
func (TransformEndEvent) EventType() string       { return "transform_end" }
func (SelectToolEvent) EventType() string         { return "select_tool" }
func (ConfirmBulkEvent) EventType() string        { return "confirm_bulk" }
func (CancelBulkEvent) EventType() string         { return "cancel_bulk" }
func (EditPropertyEvent) EventType() string       { return "edit_property" }
func (AlignEvent) EventType() string              { return "align" }
func (DistributeEvent) EventType() string         { return "distribute" }
func (BringToFrontEvent) EventType() string       { return "bring_to_front" }
func (SendToBackEvent) EventType() string         { return "send_to_back" }
func (DeleteSelectionEvent) EventType() string    { return "delete_selection" }
func (DuplicateSelectionEvent) EventType() string { return "duplicate_selection" }
func (SelectAllEvent) EventType() string          { return "select_all" }
func (ClearSelectionEvent) EventType() string     { return "clear_selection" }
func (UndoEvent) EventType() string               { return "undo" }
func (RedoEvent) EventType() string               { return "redo" }
func (ResetViewEvent) EventType() string          { return "reset_view" }
func (CopyEvent) EventType() string               { return "copy" }
func (PasteEvent) EventType() string              { return "paste" }
func (SetGridEvent) EventType() string            { return "set_grid" }
func (SetNameEvent) EventType() string            { return "set_name" }
func (SetCanvasSizeEvent) EventType() string      { return "set_canvas_size" }
func (SetActiveEvent) EventType() string          { return "set_active" }
func (AddCategoryEvent) EventType() string        { return "add_category" }
func (UpdateCategoryEvent) EventType() string     { return "update_category" }
func (DeleteCategoryEvent) EventType() string     { return "delete_category" }

// eventDecoders maps the wire discriminator to a decoder for the payload.
var eventDecoders = map[string]func([]byte) (Event, error){
	"pointer_down":        decodeAs[PointerDownEvent],
	"pointer_move":        decodeAs[PointerMoveEvent],
	"pointer_up":          decodeAs[PointerUpEvent],
	"context_menu":        decodeAs[ContextMenuEvent],
	"wheel":               decodeAs[WheelEvent],
	"key_down":            decodeAs[KeyDownEvent],
	"drag_end":            decodeAs[DragEndEvent],
	"transform_end":       decodeAs[TransformEndEvent],
	"select_tool":         decodeAs[SelectToolEvent],
	"confirm_bulk":        decodeAs[ConfirmBulkEvent],
	"cancel_bulk":         decodeAs[CancelBulkEvent],
	"edit_property":       decodeAs[EditPropertyEvent],
	"align":               decodeAs[AlignEvent],
	"distribute":          decodeAs[DistributeEvent],
	"bring_to_front":      decodeAs[BringToFrontEvent],
	"send_to_back":        decodeAs[SendToBackEvent],
	"delete_selection":    decodeAs[DeleteSelectionEvent],
	"duplicate_selection": decodeAs[DuplicateSelectionEvent],
	"select_all":          decodeAs[SelectAllEvent],
	"clear_selection":     decodeAs[ClearSelectionEvent],
	"undo":                decodeAs[UndoEvent],
	"redo":                decodeAs[RedoEvent],
	"reset_view":          decodeAs[ResetViewEvent],
	"copy":                decodeAs[CopyEvent],
	"paste":               decodeAs[PasteEvent],
	"set_grid":            decodeAs[SetGridEvent],
	"set_name":            decodeAs[SetNameEvent],
	"set_canvas_size":     decodeAs[SetCanvasSizeEvent],
	"set_active":          decodeAs[SetActiveEvent],
	"add_category":        decodeAs[AddCategoryEvent],
	"update_category":     decodeAs[UpdateCategoryEvent],
	"delete_category":     decodeAs[DeleteCategoryEvent],
}

func decodeAs[T Event](raw []byte) (Event, error) {
	var ev T
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// DecodeEvent parses a {"type": "...", ...} envelope into its concrete
// event.  Payload fields sit next to "type".  Unknown types and malformed
// payloads are validation errors.
func DecodeEvent(raw []byte) (Event, error) {
	var env struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, model.NewValidationError("event", "malformed event: "+err.Error())
	}
	dec, ok := eventDecoders[env.Type]
	if !ok {
		return nil, model.NewValidationError("type", fmt.Sprintf("unknown event type %q", env.Type))
	}
	ev, err := dec(raw)
	if err != nil {
		return nil, model.NewValidationError(env.Type, "malformed payload: "+err.Error())
	}
	return ev, nil
}
