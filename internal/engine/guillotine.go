package engine

import (
	"sort"

	"github.com/piwi3910/cutlist/internal/model"
)

// Pack lays out cuts on a single stock sheet using recursive guillotine
// bisection with best-area-fit selection. Cuts must already be expanded
// to unit quantity. Pieces that do not fit anywhere are returned unchanged
// in unplaced. The input slice is not modified.
func Pack(stock model.StockSheet, cuts []model.Cut, kerf float64) (placed []model.PlacedCut, unplaced []model.Cut) {
	gp := newGuillotinePacker(cuts, kerf)
	gp.run(model.Space{X: 0, Y: 0, Width: stock.Width, Height: stock.Height})
	return gp.placed, gp.pool
}

// packWithRemnants is Pack plus the free spaces that were abandoned
// because no remaining cut fitted into them.
func packWithRemnants(stock model.StockSheet, cuts []model.Cut, kerf float64) ([]model.PlacedCut, []model.Cut, []model.Space) {
	gp := newGuillotinePacker(cuts, kerf)
	gp.run(model.Space{X: 0, Y: 0, Width: stock.Width, Height: stock.Height})
	return gp.placed, gp.pool, gp.remnants
}

// guillotinePacker owns the candidate pool and the placed list for one run.
type guillotinePacker struct {
	pool     []model.Cut
	placed   []model.PlacedCut
	remnants []model.Space
	kerf     float64
}

func newGuillotinePacker(cuts []model.Cut, kerf float64) *guillotinePacker {
	pool := make([]model.Cut, len(cuts))
	copy(pool, cuts)

	// Largest first; ties keep input order.
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Area() > pool[j].Area()
	})

	return &guillotinePacker{
		pool:   pool,
		placed: make([]model.PlacedCut, 0, len(pool)),
		kerf:   kerf,
	}
}

// run processes free spaces depth-first, right child before bottom child.
// A LIFO stack with bottom pushed before right yields the same order as
// the recursive formulation without its depth limit.
func (gp *guillotinePacker) run(root model.Space) {
	stack := []model.Space{root}
	for len(stack) > 0 {
		space := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		idx := gp.bestFit(space)
		if idx < 0 {
			gp.remnants = append(gp.remnants, space)
			continue
		}

		cut := gp.pool[idx]
		gp.pool = append(gp.pool[:idx], gp.pool[idx+1:]...)
		gp.placed = append(gp.placed, model.PlacedCut{Cut: cut, X: space.X, Y: space.Y})

		right, bottom := gp.split(space, cut)
		if bottom.Usable() {
			stack = append(stack, bottom)
		}
		if right.Usable() {
			stack = append(stack, right)
		}
	}
}

// bestFit returns the pool index of the largest-area cut that fits in
// space, or -1. Ties go to the earliest index.
func (gp *guillotinePacker) bestFit(space model.Space) int {
	bestIdx := -1
	bestArea := 0.0
	for i, c := range gp.pool {
		if !space.Fits(c) {
			continue
		}
		if a := c.Area(); bestIdx < 0 || a > bestArea {
			bestIdx = i
			bestArea = a
		}
	}
	return bestIdx
}

// split returns the two guillotine children left after placing cut at the
// space origin. The right child is as tall as the cut; the bottom child
// spans the full width of the parent.
func (gp *guillotinePacker) split(space model.Space, cut model.Cut) (right, bottom model.Space) {
	right = model.Space{
		X:      space.X + cut.Width + gp.kerf,
		Y:      space.Y,
		Width:  space.Width - cut.Width - gp.kerf,
		Height: cut.Height,
	}
	bottom = model.Space{
		X:      space.X,
		Y:      space.Y + cut.Height + gp.kerf,
		Width:  space.Width,
		Height: space.Height - cut.Height - gp.kerf,
	}
	return right, bottom
}
