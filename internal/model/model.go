package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
)

// ErrInvalidJob is returned when a packing job has dimensions the
// optimizer cannot meaningfully work with.
var ErrInvalidJob = errors.New("invalid job")

// Cut represents a required piece to be cut from the stock sheet.
type Cut struct {
	ID       string  `json:"id"`
	Label    string  `json:"label"`
	Width    float64 `json:"width"`  // mm
	Height   float64 `json:"height"` // mm
	Quantity int     `json:"quantity"`
}

func NewCut(label string, w, h float64, qty int) Cut {
	return Cut{
		ID:       uuid.New().String()[:8],
		Label:    label,
		Width:    w,
		Height:   h,
		Quantity: qty,
	}
}

// Area returns the area of a single piece.
func (c Cut) Area() float64 {
	return c.Width * c.Height
}

// String formats the piece as "WxH".
func (c Cut) String() string {
	return fmt.Sprintf("%gx%g", c.Width, c.Height)
}

// ExpandCuts unrolls quantities into one unit cut per requested piece,
// preserving input order.
func ExpandCuts(cuts []Cut) []Cut {
	var expanded []Cut
	for _, c := range cuts {
		for i := 0; i < c.Quantity; i++ {
			cp := c
			cp.Quantity = 1
			expanded = append(expanded, cp)
		}
	}
	return expanded
}

// PlacedCut is a cut positioned on the stock sheet.
type PlacedCut struct {
	Cut
	X float64 `json:"x"` // Position from left edge (mm)
	Y float64 `json:"y"` // Position from top edge (mm)
}

// Space is an unused rectangular region of the sheet.
type Space struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Fits reports whether c fits inside the space without rotation. Cuts
// with a non-positive dimension never fit.
func (s Space) Fits(c Cut) bool {
	if c.Width <= 0 || c.Height <= 0 {
		return false
	}
	return c.Width <= s.Width && c.Height <= s.Height
}

// Usable reports whether both dimensions are strictly positive.
func (s Space) Usable() bool {
	return s.Width > 0 && s.Height > 0
}

// Area returns the area of the space.
func (s Space) Area() float64 {
	return s.Width * s.Height
}

// StockSheet represents the sheet of material to cut from. Its origin
// is always (0,0).
type StockSheet struct {
	Label  string  `json:"label"`
	Width  float64 `json:"width"`  // mm
	Height float64 `json:"height"` // mm
}

func NewStockSheet(label string, w, h float64) StockSheet {
	return StockSheet{Label: label, Width: w, Height: h}
}

// Area returns the sheet area.
func (s StockSheet) Area() float64 {
	return s.Width * s.Height
}

// Job is one packing request.
type Job struct {
	Stock StockSheet `json:"stock"`
	Kerf  float64    `json:"kerf"` // Blade width in mm
	Cuts  []Cut      `json:"cuts"`
}

// PositiveFinite reports whether v is a usable dimension. NaN and
// infinities are rejected.
func PositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// Validate rejects jobs with non-positive stock, negative kerf, or cuts
// with non-positive dimensions or quantity. NaN and infinite values are
// rejected everywhere.
func (j Job) Validate() error {
	if !PositiveFinite(j.Stock.Width) || !PositiveFinite(j.Stock.Height) {
		return fmt.Errorf("%w: stock dimensions must be positive, got %gx%g", ErrInvalidJob, j.Stock.Width, j.Stock.Height)
	}
	if !(j.Kerf >= 0) || math.IsInf(j.Kerf, 1) {
		return fmt.Errorf("%w: kerf must be a finite non-negative number, got %g", ErrInvalidJob, j.Kerf)
	}
	for i, c := range j.Cuts {
		if !PositiveFinite(c.Width) || !PositiveFinite(c.Height) || c.Quantity <= 0 {
			return fmt.Errorf("%w: cut %d (%s): width, height, and quantity must be positive", ErrInvalidJob, i+1, c.Label)
		}
	}
	return nil
}

// PieceCount returns the number of unit pieces after quantity expansion.
func (j Job) PieceCount() int {
	n := 0
	for _, c := range j.Cuts {
		n += c.Quantity
	}
	return n
}

// Layout is the outcome of packing one job.
type Layout struct {
	Stock    StockSheet  `json:"stock"`
	Kerf     float64     `json:"kerf"`
	Placed   []PlacedCut `json:"placed"`
	Unplaced []Cut       `json:"unplaced"`
	Remnants []Space     `json:"remnants,omitempty"` // Free spaces no remaining cut fitted into
}

// UsedArea returns the total area covered by placed cuts.
func (l Layout) UsedArea() float64 {
	var total float64
	for _, p := range l.Placed {
		total += p.Area()
	}
	return total
}

// TotalArea returns the stock sheet area.
func (l Layout) TotalArea() float64 {
	return l.Stock.Area()
}

// WasteArea is everything on the sheet not covered by a placed cut,
// kerf strips included.
func (l Layout) WasteArea() float64 {
	return l.TotalArea() - l.UsedArea()
}

// WastePercentage returns waste as a percentage of the sheet area.
func (l Layout) WastePercentage() float64 {
	ta := l.TotalArea()
	if ta == 0 {
		return 0
	}
	return (l.WasteArea() / ta) * 100.0
}

// WasteSummary renders waste as "P% (A mm²)" with two decimals.
func (l Layout) WasteSummary() string {
	return fmt.Sprintf("%.2f%% (%.2f mm²)", l.WastePercentage(), l.WasteArea())
}

// Efficiency returns the usage percentage.
func (l Layout) Efficiency() float64 {
	if l.TotalArea() == 0 {
		return 0
	}
	return 100.0 - l.WastePercentage()
}

// Project ties a job and its last layout together for save/load.
type Project struct {
	Name   string  `json:"name"`
	Job    Job     `json:"job"`
	Layout *Layout `json:"layout,omitempty"`
}

func NewProject() Project {
	cfg := DefaultAppConfig()
	return Project{
		Name: "Untitled",
		Job: Job{
			Stock: NewStockSheet("Stock", cfg.StockWidth, cfg.StockHeight),
			Kerf:  cfg.Kerf,
			Cuts:  []Cut{},
		},
	}
}
