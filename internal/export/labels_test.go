package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cutlist/internal/model"
)

func TestExportLabels_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")

	if err := ExportLabels(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportLabels returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportLabels_NoPlacements(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")
	layout := model.Layout{Stock: model.NewStockSheet("Board", 1000, 500)}

	err := ExportLabels(path, layout)
	if !errors.Is(err, ErrEmptyLayout) {
		t.Fatalf("expected ErrEmptyLayout, got %v", err)
	}
}

func TestWriteLabels_MultiplePages(t *testing.T) {
	var buf bytes.Buffer

	// 35 labels spill onto a second page
	if err := WriteLabels(&buf, buildManyCutsLayout(35)); err != nil {
		t.Fatalf("WriteLabels returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestCollectLabelInfos(t *testing.T) {
	labels := CollectLabelInfos(buildTestLayout())

	if len(labels) != 3 {
		t.Fatalf("expected 3 labels, got %d", len(labels))
	}
	if labels[0].CutLabel != "Side Panel" || labels[0].ID != "p1" {
		t.Errorf("unexpected first label: %+v", labels[0])
	}
	if labels[0].Width != 600 || labels[0].Height != 400 {
		t.Errorf("wrong dimensions: got %.0fx%.0f, want 600x400", labels[0].Width, labels[0].Height)
	}
	if labels[2].X != 603 || labels[2].Y != 203 {
		t.Errorf("wrong position for third label: (%g, %g)", labels[2].X, labels[2].Y)
	}
	for _, l := range labels {
		if l.StockLabel != "Plywood 1000x600" {
			t.Errorf("expected stock label on every label, got %q", l.StockLabel)
		}
	}
}

func TestTruncateLongLabel(t *testing.T) {
	long := "An extremely long cut label that cannot possibly fit on one label"
	layout := buildTestLayout()
	layout.Placed[0].Label = long

	var buf bytes.Buffer
	if err := WriteLabels(&buf, layout); err != nil {
		t.Fatalf("WriteLabels returned error: %v", err)
	}
}
