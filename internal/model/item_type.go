package model

import "strings"

// ItemType is the closed set of placeable objects on a venue canvas.
type ItemType string

const (
	ItemSeat     ItemType = "SEAT"
	ItemTable    ItemType = "TABLE"
	ItemBooth    ItemType = "BOOTH"
	ItemStage    ItemType = "STAGE"
	ItemScreen   ItemType = "SCREEN"
	ItemWashroom ItemType = "WASHROOM"
	ItemEntry    ItemType = "ENTRY"
	ItemExit     ItemType = "EXIT"
)

// TableShape describes how a TABLE item is drawn.
type TableShape string

const (
	ShapeRect     TableShape = "RECT"
	ShapeRound    TableShape = "ROUND"
	ShapeHalf     TableShape = "HALF"
	ShapeTriangle TableShape = "TRIANGLE"
)

// itemSpec holds the per-type defaults used by the item factory and the
// renderer.  Every ItemType must have an entry in itemSpecs.
type itemSpec struct {
	DisplayName string
	LabelPrefix string // non-empty for auto-numbered types
	W, H        float64
	Color       string
}

var itemSpecs = map[ItemType]itemSpec{
	ItemSeat:     {DisplayName: "Seat", LabelPrefix: "S", W: 30, H: 30, Color: "#4CAF50"},
	ItemTable:    {DisplayName: "Table", LabelPrefix: "T", W: 120, H: 80, Color: "#8D6E63"},
	ItemBooth:    {DisplayName: "Booth", W: 100, H: 60, Color: "#FF9800"},
	ItemStage:    {DisplayName: "Stage", W: 100, H: 60, Color: "#673AB7"},
	ItemScreen:   {DisplayName: "Screen", W: 100, H: 60, Color: "#212121"},
	ItemWashroom: {DisplayName: "Washroom", W: 100, H: 60, Color: "#03A9F4"},
	ItemEntry:    {DisplayName: "Entry", W: 100, H: 60, Color: "#2E7D32"},
	ItemExit:     {DisplayName: "Exit", W: 100, H: 60, Color: "#C62828"},
}

// ItemTypes returns every item type in a stable order.
func ItemTypes() []ItemType {
	return []ItemType{ItemSeat, ItemTable, ItemBooth, ItemStage, ItemScreen, ItemWashroom, ItemEntry, ItemExit}
}

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	_, ok := itemSpecs[t]
	return ok
}

// DisplayName is the human readable name, also used as the default label
// of types that are not auto-numbered.
func (t ItemType) DisplayName() string { return itemSpecs[t].DisplayName }

// LabelPrefix is the auto-numbering prefix ("S", "T") or "".
func (t ItemType) LabelPrefix() string { return itemSpecs[t].LabelPrefix }

// DefaultSize returns the width and height a freshly placed item gets.
func (t ItemType) DefaultSize() (float64, float64) {
	s := itemSpecs[t]
	return s.W, s.H
}

// Color is the fill used for items that have no category colour.
func (t ItemType) Color() string { return itemSpecs[t].Color }

// ParseItemType accepts any casing and returns false for unknown values.
func ParseItemType(s string) (ItemType, bool) {
	t := ItemType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Valid reports whether s is a known table shape.
func (s TableShape) Valid() bool {
	switch s {
	case ShapeRect, ShapeRound, ShapeHalf, ShapeTriangle:
		return true
	}
	return false
}

// ParseTableShape accepts any casing and returns false for unknown values.
func ParseTableShape(s string) (TableShape, bool) {
	sh := TableShape(strings.ToUpper(strings.TrimSpace(s)))
	return sh, sh.Valid()
}
