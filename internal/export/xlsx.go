package export

import (
	"fmt"
	"io"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/xuri/excelize/v2"
)

// Worksheet names used by ExportXLSX.
const (
	SheetPlacements = "Placements"
	SheetUnplaced   = "Unplaced"
	SheetSummary    = "Summary"
)

// ExportXLSX writes the layout as a workbook with placement, unplaced,
// and summary sheets.
func ExportXLSX(path string, layout model.Layout) error {
	f, err := buildWorkbook(layout)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

// WriteXLSX writes the same workbook as ExportXLSX to w.
func WriteXLSX(w io.Writer, layout model.Layout) error {
	f, err := buildWorkbook(layout)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func buildWorkbook(layout model.Layout) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), SheetPlacements); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{SheetUnplaced, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	placed := [][]interface{}{{"ID", "Label", "Width", "Height", "X", "Y"}}
	for _, p := range layout.Placed {
		placed = append(placed, []interface{}{p.ID, p.Label, p.Width, p.Height, p.X, p.Y})
	}

	unplaced := [][]interface{}{{"ID", "Label", "Width", "Height"}}
	for _, c := range layout.Unplaced {
		unplaced = append(unplaced, []interface{}{c.ID, c.Label, c.Width, c.Height})
	}

	offcuts := model.DetectOffcuts(layout)
	summary := [][]interface{}{
		{"Metric", "Value"},
		{"Stock", layout.Stock.Label},
		{"Stock Width", layout.Stock.Width},
		{"Stock Height", layout.Stock.Height},
		{"Kerf", layout.Kerf},
		{"Cuts Placed", len(layout.Placed)},
		{"Cuts Unplaced", len(layout.Unplaced)},
		{"Used Area", layout.UsedArea()},
		{"Waste Area", layout.WasteArea()},
		{"Waste %", round2(layout.WastePercentage())},
		{"Efficiency %", round2(layout.Efficiency())},
		{"Reusable Offcuts", len(offcuts)},
	}

	for _, s := range []struct {
		name string
		rows [][]interface{}
	}{
		{SheetPlacements, placed},
		{SheetUnplaced, unplaced},
		{SheetSummary, summary},
	} {
		if err := writeRows(f, s.name, s.rows, bold); err != nil {
			f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}, headerStyle int) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	return nil
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}
