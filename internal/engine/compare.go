package engine

import (
	"sync"

	"github.com/piwi3910/cutlist/internal/model"
)

// KerfComparison holds the packing outcome for one blade width.
type KerfComparison struct {
	Kerf          float64
	Placed        int
	UnplacedCount int
	WasteArea     float64
	WastePercent  float64
	Layout        model.Layout
}

// CompareKerfs packs the same cut list at each blade width in kerfs and
// returns one comparison per kerf, in input order. Cuts are expanded by
// quantity here. Each scenario is packed concurrently; the packer shares
// no state between runs.
func CompareKerfs(stock model.StockSheet, cuts []model.Cut, kerfs []float64) []KerfComparison {
	pieces := model.ExpandCuts(cuts)
	results := make([]KerfComparison, len(kerfs))

	var wg sync.WaitGroup
	for i, kerf := range kerfs {
		wg.Add(1)
		go func(i int, kerf float64) {
			defer wg.Done()
			placed, unplaced, remnants := packWithRemnants(stock, pieces, kerf)
			layout := model.Layout{
				Stock:    stock,
				Kerf:     kerf,
				Placed:   placed,
				Unplaced: unplaced,
				Remnants: remnants,
			}
			results[i] = KerfComparison{
				Kerf:          kerf,
				Placed:        len(placed),
				UnplacedCount: len(unplaced),
				WasteArea:     layout.WasteArea(),
				WastePercent:  layout.WastePercentage(),
				Layout:        layout,
			}
		}(i, kerf)
	}
	wg.Wait()

	return results
}

// DefaultKerfs returns what-if blade widths around base: no kerf, half,
// the base itself, and one and a half times the base.
func DefaultKerfs(base float64) []float64 {
	if base <= 0 {
		return []float64{0}
	}
	return []float64{0, base * 0.5, base, base * 1.5}
}
