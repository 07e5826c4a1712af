// Package export renders a layout's seats as an xlsx manifest for box
// office staff.
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/venue-layout-editor/internal/model"
)

const (
	SeatsSheet   = "Seats"
	SummarySheet = "Summary"
)

var (
	seatHeader    = []interface{}{"Row", "Seat", "Label", "Category", "Price", "X", "Y"}
	summaryHeader = []interface{}{"Category", "Color", "Price", "Seats"}
)

// WriteManifest writes a workbook with one line per seat, ordered by row
// and seat number, and a per-category summary.
func WriteManifest(w io.Writer, l model.Layout) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SeatsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	seats := sortedSeats(l.Items)
	if err := writeRows(f, SeatsSheet, seatHeader, seatRows(seats, l.Categories)); err != nil {
		return err
	}
	if err := writeRows(f, SummarySheet, summaryHeader, summaryRows(seats, l.Categories)); err != nil {
		return err
	}
	for _, sheet := range []string{SeatsSheet, SummarySheet} {
		if err := f.SetCellStyle(sheet, "A1", "G1", bold); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(SeatsSheet, "C", "D", 18); err != nil {
		return err
	}
	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, header []interface{}, rows [][]interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func seatRows(seats []model.LayoutItem, cats []model.SeatCategory) [][]interface{} {
	rows := make([][]interface{}, 0, len(seats))
	for _, s := range seats {
		var number interface{} = ""
		if s.SeatNumber != nil {
			number = *s.SeatNumber
		}
		catName, price := "(none)", interface{}("")
		if c, ok := model.FindCategory(cats, s.CategoryID); ok {
			catName, price = c.Name, c.Price
		} else if s.CategoryID != "" {
			catName = "(deleted)"
		}
		rows = append(rows, []interface{}{s.RowLabel, number, s.Label, catName, price, s.X, s.Y})
	}
	return rows
}

// summaryRows counts seats per category in category order. Seats without
// a live category are grouped on a final line.
func summaryRows(seats []model.LayoutItem, cats []model.SeatCategory) [][]interface{} {
	counts := make(map[string]int, len(cats))
	orphans := 0
	for _, s := range seats {
		if _, ok := model.FindCategory(cats, s.CategoryID); ok {
			counts[s.CategoryID]++
		} else {
			orphans++
		}
	}
	rows := make([][]interface{}, 0, len(cats)+1)
	for _, c := range cats {
		rows = append(rows, []interface{}{c.Name, c.Color, c.Price, counts[c.ID]})
	}
	if orphans > 0 {
		rows = append(rows, []interface{}{"(uncategorised)", model.FallbackColor, "", orphans})
	}
	return rows
}

// sortedSeats returns the SEAT items ordered by row label (A..Z, AA..),
// then seat number. Seats without a row label follow, top to bottom.
func sortedSeats(items []model.LayoutItem) []model.LayoutItem {
	var seats []model.LayoutItem
	for _, it := range items {
		if it.Type == model.ItemSeat {
			seats = append(seats, it)
		}
	}
	sort.SliceStable(seats, func(i, j int) bool {
		a, b := seats[i], seats[j]
		if (a.RowLabel == "") != (b.RowLabel == "") {
			return b.RowLabel == ""
		}
		if a.RowLabel != b.RowLabel {
			if len(a.RowLabel) != len(b.RowLabel) {
				return len(a.RowLabel) < len(b.RowLabel)
			}
			return a.RowLabel < b.RowLabel
		}
		an, bn := seatNo(a), seatNo(b)
		if an != bn {
			return an < bn
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return seats
}

func seatNo(it model.LayoutItem) int {
	if it.SeatNumber == nil {
		return 0
	}
	return *it.SeatNumber
}
