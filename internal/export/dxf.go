package export

import (
	"fmt"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"
)

// DXF layer names.
const (
	LayerStock   = "STOCK"
	LayerCuts    = "CUTS"
	LayerOffcuts = "OFFCUTS"
	LayerLabels  = "LABELS"
)

// ExportDXF writes the layout as a DXF drawing in millimetres. DXF is
// Y-up, so rectangles are mirrored against the stock height to keep the
// sheet's top-left origin at the top left.
func ExportDXF(path string, layout model.Layout) error {
	if layout.Stock.Width <= 0 || layout.Stock.Height <= 0 {
		return fmt.Errorf("cannot draw a %gx%g stock sheet", layout.Stock.Width, layout.Stock.Height)
	}

	d := dxf.NewDrawing()
	d.AddLayer(LayerStock, color.White, table.LT_CONTINUOUS, false)
	d.AddLayer(LayerCuts, color.Green, table.LT_CONTINUOUS, false)
	d.AddLayer(LayerOffcuts, color.Cyan, table.LT_CONTINUOUS, false)
	d.AddLayer(LayerLabels, color.Yellow, table.LT_CONTINUOUS, false)

	h := layout.Stock.Height
	if err := d.ChangeLayer(LayerStock); err != nil {
		return err
	}
	if err := dxfRect(d, 0, 0, layout.Stock.Width, h); err != nil {
		return err
	}

	if err := d.ChangeLayer(LayerCuts); err != nil {
		return err
	}
	for _, p := range layout.Placed {
		if err := dxfRect(d, p.X, h-p.Y-p.Height, p.Width, p.Height); err != nil {
			return fmt.Errorf("failed to draw cut %s: %w", p.Label, err)
		}
	}

	if err := d.ChangeLayer(LayerOffcuts); err != nil {
		return err
	}
	for _, o := range model.DetectOffcuts(layout) {
		if err := dxfRect(d, o.X, h-o.Y-o.Height, o.Width, o.Height); err != nil {
			return fmt.Errorf("failed to draw offcut %s: %w", o.ID, err)
		}
	}

	if err := d.ChangeLayer(LayerLabels); err != nil {
		return err
	}
	for _, p := range layout.Placed {
		size := textHeight(p.Width, p.Height)
		if size == 0 {
			continue
		}
		x := p.X + size/2
		y := h - p.Y - p.Height/2
		if _, err := d.Text(fmt.Sprintf("%s %s", p.Label, p.String()), x, y, 0, size); err != nil {
			return fmt.Errorf("failed to label cut %s: %w", p.Label, err)
		}
	}

	return d.SaveAs(path)
}

func dxfRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%len(corners)]
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return err
		}
	}
	return nil
}

// textHeight picks a label height that fits the cut, or 0 when the cut is
// too small to carry a label.
func textHeight(w, h float64) float64 {
	size := h / 5
	if size > 25 {
		size = 25
	}
	if size < 2 || w < 10*size {
		return 0
	}
	return size
}
