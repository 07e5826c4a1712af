package model

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemTypes_AllHaveSpecs(t *testing.T) {
	for _, typ := range ItemTypes() {
		assert.True(t, typ.Valid(), "type %s", typ)
		assert.NotEmpty(t, typ.DisplayName(), "type %s", typ)
		w, h := typ.DefaultSize()
		assert.GreaterOrEqual(t, w, MinItemSize)
		assert.GreaterOrEqual(t, h, MinItemSize)
		assert.NotEmpty(t, typ.Color())
	}
	assert.Len(t, itemSpecs, len(ItemTypes()))
}

func TestParseItemType(t *testing.T) {
	typ, ok := ParseItemType(" table ")
	assert.True(t, ok)
	assert.Equal(t, ItemTable, typ)

	_, ok = ParseItemType("balcony")
	assert.False(t, ok)
}

func TestParseTableShape(t *testing.T) {
	sh, ok := ParseTableShape("round")
	assert.True(t, ok)
	assert.Equal(t, ShapeRound, sh)
	_, ok = ParseTableShape("hexagon")
	assert.False(t, ok)
}

func TestCloneItems_DeepCopiesSeatNumber(t *testing.T) {
	n := 7
	items := []LayoutItem{{ID: "a", Type: ItemSeat, SeatNumber: &n}}
	cp := CloneItems(items)
	*cp[0].SeatNumber = 99
	assert.Equal(t, 7, *items[0].SeatNumber)

	assert.NotNil(t, CloneItems(nil))
}

func TestItemColor(t *testing.T) {
	cats := DefaultCategories()

	seat := LayoutItem{Type: ItemSeat, CategoryID: "vip"}
	assert.Equal(t, "#FFC107", ItemColor(seat, cats))

	seat.CategoryID = "deleted"
	assert.Equal(t, FallbackColor, ItemColor(seat, cats))

	assert.Equal(t, ItemStage.Color(), ItemColor(LayoutItem{Type: ItemStage, CategoryID: "vip"}, cats))
}

func TestSeatCategoryValidate(t *testing.T) {
	err := SeatCategory{Name: "", Color: "red", Price: -1}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Len(t, ve.Errors, 3)

	assert.NoError(t, SeatCategory{Name: "Balcony", Color: "#00ff00", Price: 0}.Validate())
}

func TestSeatCategoryValidate_Limits(t *testing.T) {
	tests := []struct {
		name  string
		cat   SeatCategory
		field string
	}{
		{"id too long", SeatCategory{ID: strings.Repeat("x", MaxIDLen+1), Name: "VIP", Color: "#FFC107"}, "id"},
		{"name too long", SeatCategory{Name: strings.Repeat("x", MaxCategoryNameLen+1), Color: "#FFC107"}, "name"},
		{"nan price", SeatCategory{Name: "VIP", Color: "#FFC107", Price: math.NaN()}, "price"},
		{"infinite price", SeatCategory{Name: "VIP", Color: "#FFC107", Price: math.Inf(1)}, "price"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ve *ValidationError
			require.True(t, errors.As(tt.cat.Validate(), &ve))
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}

	// multi-byte names count characters, not bytes
	assert.NoError(t, SeatCategory{Name: strings.Repeat("é", MaxCategoryNameLen), Color: "#FFC107"}.Validate())
}

func TestValidateLayout(t *testing.T) {
	valid := Layout{
		Name: "Main hall", CanvasW: 1200, CanvasH: 800,
		Items:      []LayoutItem{{ID: "a", Type: ItemSeat, W: 30, H: 30, Rotation: 359.5}},
		Categories: DefaultCategories(),
	}
	assert.NoError(t, ValidateLayout(valid))

	tests := []struct {
		name  string
		mut   func(l *Layout)
		field string
	}{
		{"empty name", func(l *Layout) { l.Name = "   " }, "name"},
		{"canvas too small", func(l *Layout) { l.CanvasW = 99 }, "canvasW"},
		{"canvas too large", func(l *Layout) { l.CanvasH = 5001 }, "canvasH"},
		{"duplicate ids", func(l *Layout) { l.Items = append(l.Items, LayoutItem{ID: "a", Type: ItemSeat}) }, "items"},
		{"unknown type", func(l *Layout) { l.Items[0].Type = "BALCONY" }, "items"},
		{"name too long", func(l *Layout) { l.Name = strings.Repeat("n", MaxNameLen+1) }, "name"},
		{"zero width", func(l *Layout) { l.Items[0].W = 0 }, "items"},
		{"height below minimum", func(l *Layout) { l.Items[0].H = MinItemSize - 0.5 }, "items"},
		{"nan position", func(l *Layout) { l.Items[0].X = math.NaN() }, "items"},
		{"infinite width", func(l *Layout) { l.Items[0].W = math.Inf(1) }, "items"},
		{"rotation 360", func(l *Layout) { l.Items[0].Rotation = 360 }, "items"},
		{"negative rotation", func(l *Layout) { l.Items[0].Rotation = -1 }, "items"},
		{"unknown shape", func(l *Layout) { l.Items[0].Shape = "HEXAGON" }, "items"},
		{"negative table seats", func(l *Layout) { l.Items[0].TableSeats = -2 }, "items"},
		{"item id too long", func(l *Layout) { l.Items[0].ID = strings.Repeat("i", MaxIDLen+1) }, "items"},
		{"label too long", func(l *Layout) { l.Items[0].Label = strings.Repeat("L", MaxLabelLen+1) }, "items"},
		{"category id too long", func(l *Layout) { l.Items[0].CategoryID = strings.Repeat("c", MaxIDLen+1) }, "items"},
		{"row label too long", func(l *Layout) { l.Items[0].RowLabel = strings.Repeat("R", MaxRowLabelLen+1) }, "items"},
		{"invalid category colour", func(l *Layout) { l.Categories[0].Color = "green" }, "categories"},
		{"category without id", func(l *Layout) { l.Categories[1].ID = "" }, "categories"},
		{"duplicate category id", func(l *Layout) { l.Categories[2].ID = l.Categories[0].ID }, "categories"},
		{"category name too long", func(l *Layout) { l.Categories[0].Name = strings.Repeat("v", MaxCategoryNameLen+1) }, "categories"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid.Clone()
			tt.mut(&l)
			err := ValidateLayout(l)
			var ve *ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Errors[0].Field)
		})
	}
}

func TestLayoutSeatCount(t *testing.T) {
	l := Layout{Items: []LayoutItem{{Type: ItemSeat}, {Type: ItemTable}, {Type: ItemSeat}}}
	assert.Equal(t, 2, l.SeatCount())
}
