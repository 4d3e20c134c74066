package model

import (
	"math"
	"testing"
)

func estimateJob(kerf float64, cuts ...Cut) Job {
	return Job{Stock: NewStockSheet("S", 2440, 1220), Kerf: kerf, Cuts: cuts}
}

func TestEstimateSheets(t *testing.T) {
	est := EstimateSheets(estimateJob(3, Cut{Label: "Door", Width: 500, Height: 300, Quantity: 4}), 15, 45)

	// 503 x 303 per cut with the kerf allowance.
	if want := 503.0 * 303.0 * 4; math.Abs(est.CutArea-want) > 0.1 {
		t.Errorf("expected cut area %.1f, got %.1f", want, est.CutArea)
	}
	if est.MinSheets != 1 || est.BuySheets != 1 {
		t.Errorf("expected 1/1 sheets, got %d/%d", est.MinSheets, est.BuySheets)
	}
	if est.Cost() != 45 {
		t.Errorf("expected cost 45, got %.2f", est.Cost())
	}
}

func TestEstimateSheetsZeroStock(t *testing.T) {
	job := Job{Cuts: []Cut{{Label: "P1", Width: 100, Height: 100, Quantity: 1}}}
	est := EstimateSheets(job, 10, 0)
	if est.MinSheets != 0 || est.BuySheets != 0 {
		t.Errorf("expected no sheets for a zero-area stock, got %d/%d", est.MinSheets, est.BuySheets)
	}
	if est.CutArea != 10000 {
		t.Errorf("expected cut area 10000, got %.1f", est.CutArea)
	}
}

func TestEstimateSheetsWasteRoundsUp(t *testing.T) {
	est := EstimateSheets(estimateJob(0, Cut{Label: "Full", Width: 2440, Height: 1220, Quantity: 1}), 10, 30)
	if est.MinSheets != 1 {
		t.Errorf("expected exactly 1 sheet, got %d", est.MinSheets)
	}
	if est.BuySheets != 2 {
		t.Errorf("expected 2 sheets with 10%% waste, got %d", est.BuySheets)
	}
	if est.Cost() != 60 {
		t.Errorf("expected cost 60, got %.2f", est.Cost())
	}
}

func TestEstimateBoardFeet(t *testing.T) {
	// 12" x 12" is one board foot of face area.
	est := EstimateSheets(estimateJob(0, Cut{Width: 304.8, Height: 304.8, Quantity: 1}), 0, 0)
	if math.Abs(est.BoardFeet()-1) > 0.001 {
		t.Errorf("expected 1 board foot, got %.4f", est.BoardFeet())
	}
}
