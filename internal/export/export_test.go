package export

import (
	"fmt"

	"github.com/piwi3910/cutlist/internal/model"
)

// buildTestLayout returns a packed 1000x600 sheet with one unplaced cut
// and one reusable remnant strip along the bottom.
func buildTestLayout() model.Layout {
	return model.Layout{
		Stock: model.NewStockSheet("Plywood 1000x600", 1000, 600),
		Kerf:  3,
		Placed: []model.PlacedCut{
			{Cut: model.Cut{ID: "p1", Label: "Side Panel", Width: 600, Height: 400, Quantity: 1}},
			{Cut: model.Cut{ID: "p2", Label: "Top", Width: 300, Height: 200, Quantity: 1}, X: 603},
			{Cut: model.Cut{ID: "p3", Label: "Shelf", Width: 300, Height: 150, Quantity: 1}, X: 603, Y: 203},
		},
		Unplaced: []model.Cut{
			{ID: "u1", Label: "Too Big", Width: 2000, Height: 100, Quantity: 1},
		},
		Remnants: []model.Space{
			{X: 906, Y: 0, Width: 94, Height: 200},
			{X: 0, Y: 403, Width: 1000, Height: 197},
		},
	}
}

func buildManyCutsLayout(n int) model.Layout {
	l := model.Layout{Stock: model.NewStockSheet("Large Board", 5000, 3000)}
	for i := 0; i < n; i++ {
		l.Placed = append(l.Placed, model.PlacedCut{
			Cut: model.Cut{
				ID:       fmt.Sprintf("c%02d", i),
				Label:    fmt.Sprintf("Cut %c", 'A'+i%26),
				Width:    100,
				Height:   50,
				Quantity: 1,
			},
			X: float64(i%40) * 110,
			Y: float64(i/40) * 60,
		})
	}
	return l
}
