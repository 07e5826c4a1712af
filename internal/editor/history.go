package editor

import "github.com/iliyamo/venue-layout-editor/internal/model"

// History is a linear undo/redo list of full item-array snapshots.  The
// first entry is the state the session started from; each logical
// mutation pushes the resulting state.
type History struct {
	entries [][]model.LayoutItem
	cursor  int
	limit   int // max entries kept, 0 for unbounded
}

// NewHistory seeds the history with the initial items.
func NewHistory(initial []model.LayoutItem, limit int) *History {
	h := &History{limit: limit}
	h.Reset(initial)
	return h
}

// Reset discards every entry and starts over from items.
func (h *History) Reset(items []model.LayoutItem) {
	h.entries = [][]model.LayoutItem{model.CloneItems(items)}
	h.cursor = 0
}

// Push drops the redo branch, appends snapshot and moves the cursor onto
// it.  When a limit is set the oldest entries are discarded.
func (h *History) Push(snapshot []model.LayoutItem) {
	h.entries = append(h.entries[:h.cursor+1], model.CloneItems(snapshot))
	h.cursor = len(h.entries) - 1
	if h.limit > 0 && len(h.entries) > h.limit {
		drop := len(h.entries) - h.limit
		h.entries = append([][]model.LayoutItem(nil), h.entries[drop:]...)
		h.cursor -= drop
	}
}

// Undo moves the cursor back and returns a copy of that snapshot.  It
// reports false when already at the oldest entry.
func (h *History) Undo() ([]model.LayoutItem, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return model.CloneItems(h.entries[h.cursor]), true
}

// Redo moves the cursor forward and returns a copy of that snapshot.  It
// reports false when already at the newest entry.
func (h *History) Redo() ([]model.LayoutItem, bool) {
	if h.cursor >= len(h.entries)-1 {
		return nil, false
	}
	h.cursor++
	return model.CloneItems(h.entries[h.cursor]), true
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }
func (h *History) Len() int      { return len(h.entries) }
func (h *History) Cursor() int   { return h.cursor }
