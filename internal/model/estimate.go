package model

import "math"

// sqmmPerBoardFoot is one board foot of face area: 144 sq in.
const sqmmPerBoardFoot = 92903.04

// SheetEstimate is a material estimate for a job. It is an area bound,
// not a layout: a single pack only ever fills one sheet, and this tells
// the user how many sheets a cut list would need in total.
type SheetEstimate struct {
	CutArea     float64 `json:"cut_area"` // cut area with a kerf allowance on each edge
	SheetArea   float64 `json:"sheet_area"`
	Sheets      float64 `json:"sheets"` // fractional
	MinSheets   int     `json:"min_sheets"`
	BuySheets   int     `json:"buy_sheets"` // MinSheets plus the waste allowance
	WasteFactor float64 `json:"waste_factor"`
	SheetPrice  float64 `json:"sheet_price"`
}

// Cost is the price of BuySheets.
func (e SheetEstimate) Cost() float64 {
	return float64(e.BuySheets) * e.SheetPrice
}

// BoardFeet converts the cut area to board feet of face area.
func (e SheetEstimate) BoardFeet() float64 {
	return e.CutArea / sqmmPerBoardFoot
}

// EstimateSheets bounds the number of stock sheets the job needs.
// wastePercent inflates the exact sheet count before rounding up.
func EstimateSheets(job Job, wastePercent, sheetPrice float64) SheetEstimate {
	est := SheetEstimate{
		SheetArea:   job.Stock.Area(),
		WasteFactor: 1 + wastePercent/100,
		SheetPrice:  sheetPrice,
	}
	for _, c := range job.Cuts {
		est.CutArea += (c.Width + job.Kerf) * (c.Height + job.Kerf) * float64(c.Quantity)
	}
	if est.SheetArea <= 0 {
		return est
	}

	est.Sheets = est.CutArea / est.SheetArea
	est.MinSheets = int(math.Ceil(est.Sheets))
	est.BuySheets = max(int(math.Ceil(est.Sheets*est.WasteFactor)), est.MinSheets)
	return est
}
