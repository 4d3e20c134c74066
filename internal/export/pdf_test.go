package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cutlist/internal/model"
)

func TestExportPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.pdf")

	if err := ExportPDF(path, buildTestLayout()); err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	// Two pages: layout and summary
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer

	if err := WritePDF(&buf, buildTestLayout()); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Error("output does not start with a PDF header")
	}
}

func TestWritePDF_NothingPlaced(t *testing.T) {
	layout := model.Layout{
		Stock:    model.NewStockSheet("Board", 100, 100),
		Unplaced: []model.Cut{{Label: "Huge", Width: 500, Height: 500, Quantity: 1}},
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, layout); err != nil {
		t.Fatalf("a layout with nothing placed should still render: %v", err)
	}
}

func TestWritePDF_ManyUnplaced(t *testing.T) {
	layout := buildTestLayout()
	for i := 0; i < 60; i++ {
		layout.Unplaced = append(layout.Unplaced, model.Cut{Label: "Extra", Width: 5000, Height: 10, Quantity: 1})
	}

	var buf bytes.Buffer
	if err := WritePDF(&buf, layout); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
}

func TestExportPDF_InvalidStock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")

	if err := ExportPDF(path, model.Layout{}); err == nil {
		t.Fatal("expected error for zero-size stock, got nil")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("no file should be written on error")
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{100, 50, 8},
		{30, 100, 7},
		{15, 15, 6},
	}
	for _, tt := range tests {
		if got := labelFontSize(tt.w, tt.h); got != tt.want {
			t.Errorf("labelFontSize(%g, %g) = %g, want %g", tt.w, tt.h, got, tt.want)
		}
	}
}
