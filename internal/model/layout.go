package model

import "time"

const (
	// MinItemSize is the smallest width or height an item may have after
	// any transform or edit.
	MinItemSize = 10.0
	// MinCanvasSize and MaxCanvasSize bound the canvas dimensions.
	MinCanvasSize = 100
	MaxCanvasSize = 5000
	// FallbackColor is used for seats whose category no longer exists.
	FallbackColor = "#9E9E9E"
)

// Column limits of the layout tables.
const (
	MaxIDLen           = 64 // item and category ids, bytes
	MaxNameLen         = 255
	MaxLabelLen        = 255
	MaxRowLabelLen     = 16
	MaxCategoryNameLen = 128
)

// LayoutItem is an object placed on the venue canvas.  Positions and
// sizes are in world units.
//
// Fields:
//  ID         – unique, stable identifier used as the selection key.
//  Type       – one of the ItemType constants.
//  X, Y       – top-left position.
//  W, H       – size; never below MinItemSize.
//  Rotation   – degrees in [0, 360).
//  Label      – optional display string.
//  CategoryID – SeatCategory reference, only meaningful for seats.
//  Shape      – table shape, only meaningful for tables.
//  TableSeats – number of seats around a table.
//  RowLabel   – row label assigned by bulk generation.
//  SeatNumber – seat number assigned by bulk generation (nil if unset).
type LayoutItem struct {
	ID         string     `json:"id"`
	Type       ItemType   `json:"type"`
	X          float64    `json:"x"`
	Y          float64    `json:"y"`
	W          float64    `json:"w"`
	H          float64    `json:"h"`
	Rotation   float64    `json:"rotation"`
	Label      string     `json:"label,omitempty"`
	CategoryID string     `json:"categoryId,omitempty"`
	Shape      TableShape `json:"shape,omitempty"`
	TableSeats int        `json:"tableSeats,omitempty"`
	RowLabel   string     `json:"rowLabel,omitempty"`
	SeatNumber *int       `json:"seatNumber,omitempty"`
}

// Clone returns a deep copy of the item.
func (it LayoutItem) Clone() LayoutItem {
	if it.SeatNumber != nil {
		n := *it.SeatNumber
		it.SeatNumber = &n
	}
	return it
}

// CloneItems deep-copies a slice of items.  A nil input yields an empty,
// non-nil slice so snapshots always serialise as [].
func CloneItems(items []LayoutItem) []LayoutItem {
	out := make([]LayoutItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// SeatCategory is a named price/colour class for seats.
type SeatCategory struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Color string  `json:"color"`
	Price float64 `json:"price"`
}

// Layout is the persisted aggregate edited by an editor session.
//
// Fields:
//  ID         – layouts.id, zero until first saved.
//  OwnerID    – layouts.owner_id.
//  Name       – required on save.
//  CanvasW/H  – canvas bounds in world units, each in [100, 5000].
//  Items      – placed objects, collection order is paint order.
//  Categories – seat categories.
//  IsActive   – whether the layout is offered for bookings.
type Layout struct {
	ID         uint64         `json:"id"`
	OwnerID    uint64         `json:"ownerId"`
	Name       string         `json:"name"`
	CanvasW    int            `json:"canvasW"`
	CanvasH    int            `json:"canvasH"`
	Items      []LayoutItem   `json:"items"`
	Categories []SeatCategory `json:"categories"`
	IsActive   bool           `json:"isActive"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// Clone deep-copies the layout including items and categories.
func (l Layout) Clone() Layout {
	l.Items = CloneItems(l.Items)
	cats := make([]SeatCategory, len(l.Categories))
	copy(cats, l.Categories)
	l.Categories = cats
	return l
}

// SeatCount returns the number of SEAT items.
func (l Layout) SeatCount() int {
	n := 0
	for _, it := range l.Items {
		if it.Type == ItemSeat {
			n++
		}
	}
	return n
}

// CanvasSizeValid reports whether v is an acceptable canvas dimension.
func CanvasSizeValid(v int) bool {
	return v >= MinCanvasSize && v <= MaxCanvasSize
}

// LayoutSummary is the list view of a layout, without items or categories.
type LayoutSummary struct {
	ID        uint64    `json:"id"`
	OwnerID   uint64    `json:"ownerId"`
	Name      string    `json:"name"`
	CanvasW   int       `json:"canvasW"`
	CanvasH   int       `json:"canvasH"`
	IsActive  bool      `json:"isActive"`
	ItemCount int       `json:"itemCount"`
	SeatCount int       `json:"seatCount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
