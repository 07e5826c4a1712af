package editor

import (
	"fmt"
	"strings"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// WarnDanglingCategory is the IntegrityWarning code for seats left
// pointing at a deleted category.
const WarnDanglingCategory = "dangling_category"

// AddCategory validates c and appends it.  An empty id is filled in from gen.
func AddCategory(gen IDGenerator, categories []model.SeatCategory, c model.SeatCategory) ([]model.SeatCategory, model.SeatCategory, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return categories, model.SeatCategory{}, err
	}
	taken := make(map[string]struct{}, len(categories))
	for _, existing := range categories {
		taken[existing.ID] = struct{}{}
	}
	if c.ID == "" {
		c.ID = uniqueID(gen, taken)
	} else if _, dup := taken[c.ID]; dup {
		return categories, model.SeatCategory{}, model.NewValidationError("id", "category "+c.ID+" already exists")
	}
	out := append(copyCategories(categories), c)
	return out, c, nil
}

// UpdateCategory replaces the category with the same id.
func UpdateCategory(categories []model.SeatCategory, c model.SeatCategory) ([]model.SeatCategory, error) {
	c.Name = strings.TrimSpace(c.Name)
	if err := c.Validate(); err != nil {
		return categories, err
	}
	out := copyCategories(categories)
	for i := range out {
		if out[i].ID == c.ID {
			out[i] = c
			return out, nil
		}
	}
	return categories, model.NewValidationError("id", fmt.Sprintf("unknown category %q", c.ID))
}

// DeleteCategory removes the category with id.  Seats that reference it
// are left untouched; when there are any, a warning carrying their count
// is returned alongside the new slice.
func DeleteCategory(categories []model.SeatCategory, items []model.LayoutItem, id string) ([]model.SeatCategory, *model.IntegrityWarning, error) {
	out := make([]model.SeatCategory, 0, len(categories))
	found := false
	for _, c := range categories {
		if c.ID == id {
			found = true
			continue
		}
		out = append(out, c)
	}
	if !found {
		return categories, nil, model.NewValidationError("id", fmt.Sprintf("unknown category %q", id))
	}

	refs := 0
	for _, it := range items {
		if it.Type == model.ItemSeat && it.CategoryID == id {
			refs++
		}
	}
	if refs == 0 {
		return out, nil, nil
	}
	return out, &model.IntegrityWarning{
		Code:    WarnDanglingCategory,
		Message: fmt.Sprintf("%d seat(s) still reference deleted category %s", refs, id),
		Count:   refs,
	}, nil
}

func copyCategories(in []model.SeatCategory) []model.SeatCategory {
	out := make([]model.SeatCategory, len(in))
	copy(out, in)
	return out
}
