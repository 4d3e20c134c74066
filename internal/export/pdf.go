// Package export writes packed layouts to PDF, label sheets, Excel
// workbooks, DXF drawings, and JSON.
package export

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cutlist/internal/model"
)

// ErrEmptyLayout is returned by exporters that need at least one placed cut.
var ErrEmptyLayout = errors.New("layout has no placed cuts")

// cutColor represents an RGB color for a placed cut.
type cutColor struct {
	R, G, B int
}

var cutColors = []cutColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes the layout diagram followed by a summary page to path.
func ExportPDF(path string, layout model.Layout) error {
	pdf, err := buildLayoutPDF(layout)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WritePDF writes the same document as ExportPDF to w.
func WritePDF(w io.Writer, layout model.Layout) error {
	pdf, err := buildLayoutPDF(layout)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildLayoutPDF(layout model.Layout) (*fpdf.Fpdf, error) {
	if layout.Stock.Width <= 0 || layout.Stock.Height <= 0 {
		return nil, fmt.Errorf("cannot draw a %gx%g stock sheet", layout.Stock.Width, layout.Stock.Height)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	renderSheetPage(pdf, tr, layout)

	pdf.AddPage()
	renderSummaryPage(pdf, tr, layout)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}

func renderSheetPage(pdf *fpdf.Fpdf, tr func(string) string, layout model.Layout) {
	stock := layout.Stock

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("%s (%.0f x %.0f mm)", stock.Label, stock.Width, stock.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, tr(title), "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Cuts: %d | Kerf: %g mm | Used area: %.0f mm² | Waste: %s | Efficiency: %.1f%%",
		len(layout.Placed), layout.Kerf, layout.UsedArea(), layout.WasteSummary(), layout.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, tr(stats), "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/stock.Width, drawHeight/stock.Height)
	canvasW := stock.Width * scale
	canvasH := stock.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Stock background
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	drawOffcuts(pdf, model.DetectOffcuts(layout), scale, offsetX, offsetY)

	for i, p := range layout.Placed {
		col := cutColors[i%len(cutColors)]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := tr(p.Label)
			dims := p.String()
			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, stock, offsetX, offsetY, canvasW, canvasH)
	drawCutsLegend(pdf, tr, layout, offsetY+canvasH+5)
}

// drawOffcuts outlines reusable remnants with a dashed border.
func drawOffcuts(pdf *fpdf.Fpdf, offcuts []model.Offcut, scale, offsetX, offsetY float64) {
	if len(offcuts) == 0 {
		return
	}
	pdf.SetDrawColor(90, 90, 90)
	pdf.SetLineWidth(0.2)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)
	for _, o := range offcuts {
		pdf.Rect(offsetX+o.X*scale, offsetY+o.Y*scale, o.Width*scale, o.Height*scale, "D")
	}
	pdf.SetDashPattern([]float64{}, 0)
}

func drawDimensionAnnotations(pdf *fpdf.Fpdf, stock model.StockSheet, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", stock.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", stock.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawCutsLegend(pdf *fpdf.Fpdf, tr func(string) string, layout model.Layout, startY float64) {
	if len(layout.Placed) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Cuts placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range layout.Placed {
		col := cutColors[i%len(cutColors)]
		label := tr(fmt.Sprintf("%s (%s)", p.Label, p.String()))
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, tr func(string) string, layout model.Layout) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Cut List Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	offcuts := model.DetectOffcuts(layout)
	summaryItems := []struct {
		label string
		value string
	}{
		{"Stock", fmt.Sprintf("%s (%.0f x %.0f mm)", layout.Stock.Label, layout.Stock.Width, layout.Stock.Height)},
		{"Kerf Width", fmt.Sprintf("%g mm", layout.Kerf)},
		{"Cuts Placed", fmt.Sprintf("%d", len(layout.Placed))},
		{"Unplaced Cuts", fmt.Sprintf("%d", len(layout.Unplaced))},
		{"Waste", layout.WasteSummary()},
		{"Efficiency", fmt.Sprintf("%.1f%%", layout.Efficiency())},
		{"Reusable Offcuts", fmt.Sprintf("%d (%.0f mm²)", len(offcuts), model.TotalOffcutArea(offcuts))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(100, 6, tr(item.value), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	if len(layout.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Cuts", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, c := range layout.Unplaced {
			if y > pageHeight-marginBottom-10 {
				pdf.SetXY(marginLeft+5, y)
				pdf.CellFormat(200, 5, "...", "", 0, "L", false, 0, "")
				break
			}
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %.0f x %.0f mm", c.Label, c.Width, c.Height)
			pdf.CellFormat(200, 5, tr(text), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by cutlist - guillotine cut list optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
