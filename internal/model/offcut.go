package model

import (
	"sort"
	"strconv"
)

// Offcut represents a usable rectangular remnant left over after cutting.
type Offcut struct {
	ID     string  `json:"id"`     // 1-based rank by area, stable for a given layout
	X      float64 `json:"x"`      // Position on the sheet (mm from left)
	Y      float64 `json:"y"`      // Position on the sheet (mm from top)
	Width  float64 `json:"width"`  // Usable width (mm)
	Height float64 `json:"height"` // Usable height (mm)
}

// Area returns the area of the offcut in square mm.
func (o Offcut) Area() float64 {
	return o.Width * o.Height
}

// ToStockSheet converts an offcut into a stock sheet for a later job.
func (o Offcut) ToStockSheet() StockSheet {
	return NewStockSheet("Offcut "+o.ID, o.Width, o.Height)
}

// MinOffcutDimension is the minimum width or height (in mm) for a remnant
// to be considered a usable offcut. Remnants smaller than this are waste.
const MinOffcutDimension = 50.0

// MinOffcutArea is the minimum area (in sq mm) for a remnant to be considered usable.
const MinOffcutArea = 10000.0 // 100mm x 100mm equivalent

// DetectOffcuts picks the layout's remnant spaces that are large enough
// to keep, largest first. IDs follow that order, so repeated calls on the
// same layout agree.
func DetectOffcuts(l Layout) []Offcut {
	var offcuts []Offcut
	for _, r := range l.Remnants {
		if r.Width < MinOffcutDimension || r.Height < MinOffcutDimension || r.Area() < MinOffcutArea {
			continue
		}
		offcuts = append(offcuts, Offcut{
			X:      r.X,
			Y:      r.Y,
			Width:  r.Width,
			Height: r.Height,
		})
	}

	sort.SliceStable(offcuts, func(i, j int) bool {
		return offcuts[i].Area() > offcuts[j].Area()
	})
	for i := range offcuts {
		offcuts[i].ID = strconv.Itoa(i + 1)
	}
	return offcuts
}

// TotalOffcutArea returns the total area of all offcuts in square mm.
func TotalOffcutArea(offcuts []Offcut) float64 {
	var total float64
	for _, o := range offcuts {
		total += o.Area()
	}
	return total
}
