// Package report prints packing results for the terminal.
package report

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/piwi3910/cutlist/internal/engine"
	"github.com/piwi3910/cutlist/internal/history"
	"github.com/piwi3910/cutlist/internal/model"
)

var (
	heading = color.New(color.Bold)
	warn    = color.New(color.FgYellow)
	ok      = color.New(color.FgGreen)
)

// ShortfallMessage is the warning shown when some cuts did not fit.
func ShortfallMessage(n int) string {
	return fmt.Sprintf("%d cut(s) could not be placed in the current layout. Consider adjusting your cut sizes or stock dimensions.", n)
}

// Layout prints the placements, waste, offcuts, and any shortfall.
func Layout(w io.Writer, l model.Layout) {
	heading.Fprintf(w, "Stock %s (%g x %g mm), kerf %g mm\n", l.Stock.Label, l.Stock.Width, l.Stock.Height, l.Kerf)
	total := len(l.Placed) + len(l.Unplaced)
	fmt.Fprintf(w, "Placed %d of %d cut(s)\n", len(l.Placed), total)

	if len(l.Placed) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tLabel\tSize\tX\tY")
		for i, p := range l.Placed {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%g\t%g\n", i+1, p.Label, p.String(), p.X, p.Y)
		}
		_ = tw.Flush()
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Waste: %s\n", l.WasteSummary())

	if offcuts := model.DetectOffcuts(l); len(offcuts) > 0 {
		fmt.Fprintf(w, "Reusable offcuts: %d (%.0f mm²)\n", len(offcuts), model.TotalOffcutArea(offcuts))
		for _, o := range offcuts {
			fmt.Fprintf(w, "  %gx%g at (%g, %g)\n", o.Width, o.Height, o.X, o.Y)
		}
	}

	if len(l.Unplaced) == 0 {
		ok.Fprintln(w, "All cuts placed.")
		return
	}
	warn.Fprintln(w, ShortfallMessage(len(l.Unplaced)))
	for _, c := range l.Unplaced {
		fmt.Fprintf(w, "  - %s %s\n", c.Label, c.String())
	}
}

// Cuts prints a numbered cut list.
func Cuts(w io.Writer, cuts []model.Cut) {
	if len(cuts) == 0 {
		fmt.Fprintln(w, "No cuts.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tLabel\tSize\tQty")
	for i, c := range cuts {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\n", i+1, c.Label, c.String(), c.Quantity)
	}
	_ = tw.Flush()
}

// Comparison prints one row per kerf.
func Comparison(w io.Writer, results []engine.KerfComparison) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Kerf\tPlaced\tUnplaced\tWaste")
	for _, r := range results {
		fmt.Fprintf(tw, "%g\t%d\t%d\t%.2f%% (%.2f mm²)\n", r.Kerf, r.Placed, r.UnplacedCount, r.WastePercent, r.WasteArea)
	}
	_ = tw.Flush()
}

// Runs prints recorded history, newest first.
func Runs(w io.Writer, runs []history.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tWhen\tProject\tStock\tKerf\tPlaced\tUnplaced\tWaste")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%gx%g\t%g\t%d\t%d\t%.2f%%\n",
			r.ID, r.RanAt.Local().Format("2006-01-02 15:04"), r.Project,
			r.StockWidth, r.StockHeight, r.Kerf, r.Placed, r.Unplaced, r.WastePercent)
	}
	_ = tw.Flush()
}

// Estimate prints a sheet purchase estimate.
func Estimate(w io.Writer, e model.SheetEstimate) {
	if e.SheetArea <= 0 {
		warn.Fprintln(w, "Stock sheet has no area; cannot estimate sheets.")
		return
	}
	fmt.Fprintf(w, "Cut area: %.0f mm² (%.2f board ft)\n", e.CutArea, e.BoardFeet())
	fmt.Fprintf(w, "Sheets: %.2f exact, %d minimum, %d to buy\n", e.Sheets, e.MinSheets, e.BuySheets)
	if e.SheetPrice > 0 {
		fmt.Fprintf(w, "Cost: %.2f (%.2f per sheet)\n", e.Cost(), e.SheetPrice)
	}
}
