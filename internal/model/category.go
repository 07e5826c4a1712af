package model

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DefaultCategories returns the categories a new layout starts with.
func DefaultCategories() []SeatCategory {
	return []SeatCategory{
		{ID: "standard", Name: "Standard", Color: "#4CAF50", Price: 50},
		{ID: "vip", Name: "VIP", Color: "#FFC107", Price: 100},
		{ID: "premium", Name: "Premium", Color: "#9C27B0", Price: 150},
	}
}

// Validate checks name, colour, price and the id length.  An empty id is
// allowed; callers assign one before storing.
func (c SeatCategory) Validate() error {
	var errs []FieldError
	if len(c.ID) > MaxIDLen {
		errs = append(errs, FieldError{Field: "id", Message: fmt.Sprintf("must be at most %d bytes", MaxIDLen)})
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, FieldError{Field: "name", Message: "required"})
	} else if utf8.RuneCountInString(c.Name) > MaxCategoryNameLen {
		errs = append(errs, FieldError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxCategoryNameLen)})
	}
	if !hexColor.MatchString(c.Color) {
		errs = append(errs, FieldError{Field: "color", Message: "must be a #RRGGBB hex colour"})
	}
	if c.Price < 0 || math.IsNaN(c.Price) || math.IsInf(c.Price, 0) {
		errs = append(errs, FieldError{Field: "price", Message: "must be a non-negative number"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// FindCategory returns the category with the given id.
func FindCategory(categories []SeatCategory, id string) (SeatCategory, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return SeatCategory{}, false
}

// ItemColor returns the fill colour for an item.  Seats use their category
// colour and fall back to FallbackColor when the category is gone.
func ItemColor(it LayoutItem, categories []SeatCategory) string {
	if it.Type != ItemSeat {
		return it.Type.Color()
	}
	if it.CategoryID == "" {
		return it.Type.Color()
	}
	if c, ok := FindCategory(categories, it.CategoryID); ok {
		return c.Color
	}
	return FallbackColor
}
