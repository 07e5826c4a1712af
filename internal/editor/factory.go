package editor

import (
	"strconv"

	"github.com/iliyamo/venue-layout-editor/internal/geometry"
	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// Default seat count for a new table.
const defaultTableSeats = 4

// CreateOptions carries the context NewItem needs to pick defaults.
type CreateOptions struct {
	Existing   []model.LayoutItem   // current items, used for numbering and id uniqueness
	Categories []model.SeatCategory // available categories
	CategoryID string               // preferred category for seats
}

// NewItem builds an item of type typ with its top-left corner at pos.
// Seats are labelled S{n} and tables T{n}, where n is one more than the
// number of existing items of that type; every other type takes its
// display name as label.
func NewItem(gen IDGenerator, typ model.ItemType, pos geometry.Point, opts CreateOptions) model.LayoutItem {
	w, h := typ.DefaultSize()
	it := model.LayoutItem{
		ID:   uniqueID(gen, takenIDs(opts.Existing)),
		Type: typ,
		X:    pos.X,
		Y:    pos.Y,
		W:    w,
		H:    h,
	}

	switch typ {
	case model.ItemSeat:
		it.Label = typ.LabelPrefix() + strconv.Itoa(countType(opts.Existing, typ)+1)
		it.CategoryID = pickCategory(opts.CategoryID, opts.Categories)
	case model.ItemTable:
		it.Label = typ.LabelPrefix() + strconv.Itoa(countType(opts.Existing, typ)+1)
		it.Shape = model.ShapeRect
		it.TableSeats = defaultTableSeats
	default:
		it.Label = typ.DisplayName()
	}
	return it
}

func countType(items []model.LayoutItem, typ model.ItemType) int {
	n := 0
	for _, it := range items {
		if it.Type == typ {
			n++
		}
	}
	return n
}

// pickCategory prefers the caller's category, then the first available
// one, then none.
func pickCategory(preferred string, categories []model.SeatCategory) string {
	if preferred != "" {
		return preferred
	}
	if len(categories) > 0 {
		return categories[0].ID
	}
	return ""
}
