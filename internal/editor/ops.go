package editor

import "github.com/iliyamo/venue-layout-editor/internal/model"

// DuplicateOffset is how far (world units, both axes) duplicates and
// pasted copies are shifted from their source.
const DuplicateOffset = 50.0

// DeleteItems removes every selected item.  It reports false when nothing
// was removed.
func DeleteItems(items []model.LayoutItem, selected IDSet) ([]model.LayoutItem, bool) {
	out := make([]model.LayoutItem, 0, len(items))
	for _, it := range items {
		if !selected.Has(it.ID) {
			out = append(out, it.Clone())
		}
	}
	if len(out) == len(items) {
		return items, false
	}
	return out, true
}

// DuplicateItems appends an offset copy of every selected item, in
// collection order, and returns the new items together with the copies' ids.
func DuplicateItems(gen IDGenerator, items []model.LayoutItem, selected IDSet) ([]model.LayoutItem, []string) {
	var src []model.LayoutItem
	for _, i := range selectedIndices(items, selected) {
		src = append(src, items[i])
	}
	return PasteItems(gen, items, src)
}

// PasteItems appends copies of clip shifted by DuplicateOffset with fresh
// ids.  It returns the new items and the ids of the copies.
func PasteItems(gen IDGenerator, items, clip []model.LayoutItem) ([]model.LayoutItem, []string) {
	if len(clip) == 0 {
		return items, nil
	}
	taken := takenIDs(items)
	out := model.CloneItems(items)
	ids := make([]string, 0, len(clip))
	for _, it := range clip {
		cp := it.Clone()
		cp.ID = uniqueID(gen, taken)
		cp.X += DuplicateOffset
		cp.Y += DuplicateOffset
		out = append(out, cp)
		ids = append(ids, cp.ID)
	}
	return out, ids
}

// BringToFront moves the selected items to the end of the collection,
// keeping their relative order.
func BringToFront(items []model.LayoutItem, selected IDSet) ([]model.LayoutItem, bool) {
	return reorder(items, selected, true)
}

// SendToBack moves the selected items to the start of the collection,
// keeping their relative order.
func SendToBack(items []model.LayoutItem, selected IDSet) ([]model.LayoutItem, bool) {
	return reorder(items, selected, false)
}

func reorder(items []model.LayoutItem, selected IDSet, front bool) ([]model.LayoutItem, bool) {
	var picked, rest []model.LayoutItem
	for _, it := range items {
		if selected.Has(it.ID) {
			picked = append(picked, it.Clone())
		} else {
			rest = append(rest, it.Clone())
		}
	}
	if len(picked) == 0 {
		return items, false
	}
	out := make([]model.LayoutItem, 0, len(items))
	if front {
		out = append(append(out, rest...), picked...)
	} else {
		out = append(append(out, picked...), rest...)
	}
	for i := range out {
		if out[i].ID != items[i].ID {
			return out, true
		}
	}
	return items, false
}

// AllIDs returns a set containing every item id.
func AllIDs(items []model.LayoutItem) IDSet {
	s := make(IDSet, len(items))
	for _, it := range items {
		s[it.ID] = struct{}{}
	}
	return s
}

// ReassignIDs returns copies of items, in the same order and position,
// each with a fresh id.
func ReassignIDs(gen IDGenerator, items []model.LayoutItem) []model.LayoutItem {
	taken := takenIDs(items)
	out := model.CloneItems(items)
	for i := range out {
		out[i].ID = uniqueID(gen, taken)
	}
	return out
}
