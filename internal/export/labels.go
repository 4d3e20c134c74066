package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/cutlist/internal/model"
	qrcode "github.com/skip2/go-qrcode"
)

// LabelInfo holds the data encoded into each cut label's QR code.
type LabelInfo struct {
	ID         string  `json:"id"`
	CutLabel   string  `json:"label"`
	Width      float64 `json:"width_mm"`
	Height     float64 `json:"height_mm"`
	StockLabel string  `json:"stock"`
	X          float64 `json:"x_mm"`
	Y          float64 `json:"y_mm"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels writes a sheet of QR-coded labels, one per placed cut.
func ExportLabels(path string, layout model.Layout) error {
	pdf, err := buildLabelsPDF(layout)
	if err != nil {
		return err
	}
	return pdf.OutputFileAndClose(path)
}

// WriteLabels writes the same document as ExportLabels to w.
func WriteLabels(w io.Writer, layout model.Layout) error {
	pdf, err := buildLabelsPDF(layout)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}

func buildLabelsPDF(layout model.Layout) (*fpdf.Fpdf, error) {
	labels := CollectLabelInfos(layout)
	if len(labels) == 0 {
		return nil, fmt.Errorf("cannot generate labels: %w", ErrEmptyLayout)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: labelPageWidth, Ht: labelPageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		x := labelMarginLeft + float64(posOnPage%labelCols)*labelWidth
		y := labelMarginTop + float64(posOnPage/labelCols)*labelHeight

		if err := renderLabel(pdf, tr, x, y, i, label); err != nil {
			return nil, fmt.Errorf("failed to render label for %q: %w", label.CutLabel, err)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render labels: %w", err)
	}
	return pdf, nil
}

func renderLabel(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, index int, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d", index)
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(imgName, opts, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, opts, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncateToWidth(pdf, tr(info.CutLabel), textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%.0f x %.0f mm", info.Width, info.Height), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("@ (%.0f, %.0f)", info.X, info.Y), "", 1, "L", false, 0, "")

	if info.ID != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.CellFormat(textW, 3, "#"+info.ID, "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

func truncateToWidth(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// CollectLabelInfos extracts label information for every placed cut, in
// placement order.
func CollectLabelInfos(layout model.Layout) []LabelInfo {
	labels := make([]LabelInfo, 0, len(layout.Placed))
	for _, p := range layout.Placed {
		labels = append(labels, LabelInfo{
			ID:         p.ID,
			CutLabel:   p.Label,
			Width:      p.Width,
			Height:     p.Height,
			StockLabel: layout.Stock.Label,
			X:          p.X,
			Y:          p.Y,
		})
	}
	return labels
}
