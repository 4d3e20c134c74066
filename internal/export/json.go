package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/piwi3910/cutlist/internal/model"
)

// Report is the JSON document written by WriteJSON: the layout plus its
// derived metrics, so consumers do not need to recompute them.
type Report struct {
	Layout          model.Layout   `json:"layout"`
	UsedArea        float64        `json:"used_area"`
	WasteArea       float64        `json:"waste_area"`
	WastePercentage float64        `json:"waste_percentage"`
	Efficiency      float64        `json:"efficiency"`
	Offcuts         []model.Offcut `json:"offcuts"`
}

// NewReport computes the metrics for layout.
func NewReport(layout model.Layout) Report {
	offcuts := model.DetectOffcuts(layout)
	if offcuts == nil {
		offcuts = []model.Offcut{}
	}
	return Report{
		Layout:          layout,
		UsedArea:        layout.UsedArea(),
		WasteArea:       layout.WasteArea(),
		WastePercentage: layout.WastePercentage(),
		Efficiency:      layout.Efficiency(),
		Offcuts:         offcuts,
	}
}

// WriteJSON writes an indented Report for layout to w.
func WriteJSON(w io.Writer, layout model.Layout) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(NewReport(layout)); err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	return nil
}
