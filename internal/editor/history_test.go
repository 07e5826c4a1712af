package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

func TestHistory_UndoRedoRoundTrip(t *testing.T) {
	s0 := []model.LayoutItem{box("a", 0, 0, 10, 10)}
	s1 := []model.LayoutItem{box("a", 20, 0, 10, 10), box("b", 0, 0, 10, 10)}

	h := NewHistory(s0, 0)
	h.Push(s1)

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, s0, got)

	got, ok = h.Redo()
	require.True(t, ok)
	assert.Equal(t, s1, got)
}

func TestHistory_PushTruncatesRedo(t *testing.T) {
	h := NewHistory([]model.LayoutItem{}, 0)
	h.Push([]model.LayoutItem{box("s1", 0, 0, 10, 10)})
	h.Push([]model.LayoutItem{box("s2", 0, 0, 10, 10)})

	_, ok := h.Undo()
	require.True(t, ok)
	h.Push([]model.LayoutItem{box("s1-prime", 0, 0, 10, 10)})

	assert.False(t, h.CanRedo())
	_, ok = h.Redo()
	assert.False(t, ok)
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
}

func TestHistory_UndoAtStartIsNoop(t *testing.T) {
	h := NewHistory(nil, 0)
	_, ok := h.Undo()
	assert.False(t, ok)
	assert.Equal(t, 0, h.Cursor())
	assert.Equal(t, 1, h.Len())
}

func TestHistory_LimitDropsOldest(t *testing.T) {
	h := NewHistory(nil, 3)
	for _, id := range []string{"a", "b", "c", "d"} {
		h.Push([]model.LayoutItem{box(id, 0, 0, 10, 10)})
	}
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())

	got, ok := h.Undo()
	require.True(t, ok)
	assert.Equal(t, "c", got[0].ID)
	got, ok = h.Undo()
	require.True(t, ok)
	assert.Equal(t, "b", got[0].ID)
	_, ok = h.Undo()
	assert.False(t, ok)
}

func TestHistory_SnapshotsAreIsolated(t *testing.T) {
	items := []model.LayoutItem{box("a", 0, 0, 10, 10)}
	h := NewHistory(items, 0)
	items[0].X = 999
	h.Push(items)

	got, _ := h.Undo()
	got[0].X = -1
	again, _ := h.Redo()
	back, _ := h.Undo()

	assert.Equal(t, 999.0, again[0].X)
	assert.Equal(t, 0.0, back[0].X)
}
