package editor

import (
	"strconv"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

// RowDirection selects how rows are labelled.
type RowDirection string

const (
	RowsAToZ   RowDirection = "A-Z"
	RowsZToA   RowDirection = "Z-A"
	RowsOneToN RowDirection = "1-N"
	RowsNToOne RowDirection = "N-1"
)

// NumberDirection selects how seats within a row are numbered.
type NumberDirection string

const (
	NumbersAscending  NumberDirection = "1-N"
	NumbersDescending NumberDirection = "N-1"
)

// Bounds enforced on a bulk grid before it is generated.
const (
	MaxBulkRows    = 50
	MaxBulkColumns = 50
)

// BulkConfig describes a rectangular block of seats.
type BulkConfig struct {
	Rows            int             `json:"rows"`
	Columns         int             `json:"columns"`
	SeatWidth       float64         `json:"seatWidth"`
	SeatHeight      float64         `json:"seatHeight"`
	RowSpacing      float64         `json:"rowSpacing"`
	ColumnSpacing   float64         `json:"columnSpacing"`
	CategoryID      string          `json:"categoryId"`
	StartX          float64         `json:"startX"`
	StartY          float64         `json:"startY"`
	RowDirection    RowDirection    `json:"rowDirection"`
	StartingNumber  int             `json:"startingNumber"`
	NumberDirection NumberDirection `json:"numberDirection"`
}

// DefaultBulkConfig is what the configuration surface opens with.
func DefaultBulkConfig() BulkConfig {
	return BulkConfig{
		Rows:            5,
		Columns:         10,
		SeatWidth:       30,
		SeatHeight:      30,
		RowSpacing:      40,
		ColumnSpacing:   40,
		RowDirection:    RowsAToZ,
		StartingNumber:  1,
		NumberDirection: NumbersAscending,
	}
}

// Validate enforces the bounds the generator relies on.
func (c BulkConfig) Validate() error {
	var errs []model.FieldError
	if c.Rows < 1 || c.Rows > MaxBulkRows {
		errs = append(errs, model.FieldError{Field: "rows", Message: "must be between 1 and 50"})
	}
	if c.Columns < 1 || c.Columns > MaxBulkColumns {
		errs = append(errs, model.FieldError{Field: "columns", Message: "must be between 1 and 50"})
	}
	if c.SeatWidth < model.MinItemSize {
		errs = append(errs, model.FieldError{Field: "seatWidth", Message: "must be at least 10"})
	}
	if c.SeatHeight < model.MinItemSize {
		errs = append(errs, model.FieldError{Field: "seatHeight", Message: "must be at least 10"})
	}
	if c.RowSpacing <= 0 {
		errs = append(errs, model.FieldError{Field: "rowSpacing", Message: "must be positive"})
	}
	if c.ColumnSpacing <= 0 {
		errs = append(errs, model.FieldError{Field: "columnSpacing", Message: "must be positive"})
	}
	switch c.RowDirection {
	case RowsAToZ, RowsZToA, RowsOneToN, RowsNToOne:
	default:
		errs = append(errs, model.FieldError{Field: "rowDirection", Message: "must be one of A-Z, Z-A, 1-N, N-1"})
	}
	switch c.NumberDirection {
	case NumbersAscending, NumbersDescending:
	default:
		errs = append(errs, model.FieldError{Field: "numberDirection", Message: "must be one of 1-N, N-1"})
	}
	if len(errs) > 0 {
		return model.NewValidationErrors(errs)
	}
	return nil
}

// GenerateSeats lays out cfg.Rows × cfg.Columns seats row by row.  Ids are
// unique among themselves and against existing.  The config must have
// been validated.
func GenerateSeats(gen IDGenerator, cfg BulkConfig, existing []model.LayoutItem) []model.LayoutItem {
	taken := takenIDs(existing)
	out := make([]model.LayoutItem, 0, cfg.Rows*cfg.Columns)
	for r := 0; r < cfg.Rows; r++ {
		row := RowLabel(cfg.RowDirection, r, cfg.Rows)
		for c := 0; c < cfg.Columns; c++ {
			num := SeatNumber(cfg.NumberDirection, c, cfg.Columns, cfg.StartingNumber)
			out = append(out, model.LayoutItem{
				ID:         uniqueID(gen, taken),
				Type:       model.ItemSeat,
				X:          cfg.StartX + float64(c)*cfg.ColumnSpacing,
				Y:          cfg.StartY + float64(r)*cfg.RowSpacing,
				W:          cfg.SeatWidth,
				H:          cfg.SeatHeight,
				Label:      row + strconv.Itoa(num),
				CategoryID: cfg.CategoryID,
				RowLabel:   row,
				SeatNumber: &num,
			})
		}
	}
	return out
}

// RowLabel returns the label of zero-based row r out of rows.  Alphabetic
// labels continue past Z as AA, AB, ... and Z-A mirrors every letter, so
// the first row is Z and the 27th is ZZ.
func RowLabel(dir RowDirection, r, rows int) string {
	switch dir {
	case RowsZToA:
		return mirrorLetters(alphaLabel(r))
	case RowsOneToN:
		return strconv.Itoa(r + 1)
	case RowsNToOne:
		return strconv.Itoa(rows - r)
	default:
		return alphaLabel(r)
	}
}

// SeatNumber returns the number of zero-based column c out of columns.
func SeatNumber(dir NumberDirection, c, columns, start int) int {
	if dir == NumbersDescending {
		return columns - c + start - 1
	}
	return c + start
}

// alphaLabel converts a zero-based index to A, B, ..., Z, AA, AB, ...
func alphaLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

func mirrorLetters(s string) string {
	out := []rune(s)
	for i, r := range out {
		out[i] = 'Z' - (r - 'A')
	}
	return string(out)
}
