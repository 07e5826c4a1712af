// Package editor implements the venue layout editor: item placement, bulk
// seat generation, selection and marquee logic, snapshot undo/redo,
// transforms, batch property edits and the session that dispatches
// pointer and keyboard events to them.  Nothing in this package performs
// I/O; an editing session is a plain value owned by a single caller.
package editor

import (
	"github.com/google/uuid"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// IDGenerator produces item and category identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator issues random v4 UUIDs.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string { return uuid.NewString() }

// takenIDs indexes the ids already present in items.
func takenIDs(items []model.LayoutItem) map[string]struct{} {
	taken := make(map[string]struct{}, len(items))
	for _, it := range items {
		taken[it.ID] = struct{}{}
	}
	return taken
}

// uniqueID draws ids from gen until one is not in taken, then records it.
func uniqueID(gen IDGenerator, taken map[string]struct{}) string {
	for {
		id := gen.NewID()
		if _, dup := taken[id]; !dup && id != "" {
			taken[id] = struct{}{}
			return id
		}
	}
}
