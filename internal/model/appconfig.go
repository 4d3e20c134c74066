package model

import (
	"fmt"
	"strconv"
	"strings"
)

// maxRecentProjects caps the recent projects list.
const maxRecentProjects = 10

// StockPreset is a named, reusable stock sheet size.
type StockPreset struct {
	Name   string  `yaml:"name" json:"name"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// AppConfig holds application-wide preferences and defaults for new jobs.
type AppConfig struct {
	StockWidth  float64 `yaml:"stock_width" json:"stock_width"`   // mm
	StockHeight float64 `yaml:"stock_height" json:"stock_height"` // mm
	Kerf        float64 `yaml:"kerf" json:"kerf"`                 // mm

	// Upper bound on expanded pieces per run; 0 disables the check.
	MaxPieces int `yaml:"max_pieces" json:"max_pieces"`

	StockPresets   []StockPreset `yaml:"stock_presets" json:"stock_presets"`
	LogLevel       string        `yaml:"log_level" json:"log_level"`
	RecentProjects []string      `yaml:"recent_projects" json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with the defaults of a
// standard 4x8 ft plywood sheet and a 3 mm blade.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		StockWidth:  1220,
		StockHeight: 2440,
		Kerf:        3,
		MaxPieces:   10000,
		StockPresets: []StockPreset{
			{Name: "full", Width: 1220, Height: 2440},
			{Name: "half", Width: 1220, Height: 1220},
			{Name: "quarter", Width: 610, Height: 1220},
		},
		LogLevel:       "info",
		RecentProjects: []string{},
	}
}

// ApplyToJob fills unset stock dimensions from the defaults. Kerf is left
// alone: zero is a valid blade width.
func (c AppConfig) ApplyToJob(j *Job) {
	if j.Stock.Width <= 0 && j.Stock.Height <= 0 {
		j.Stock.Width = c.StockWidth
		j.Stock.Height = c.StockHeight
	}
	if j.Stock.Label == "" {
		j.Stock.Label = fmt.Sprintf("%gx%g", j.Stock.Width, j.Stock.Height)
	}
}

// Preset returns the stock preset with the given name.
func (c AppConfig) Preset(name string) (StockPreset, bool) {
	for _, p := range c.StockPresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return StockPreset{}, false
}

// ResolveStock interprets s as either a preset name or a "WxH" size.
func (c AppConfig) ResolveStock(s string) (StockSheet, error) {
	if p, ok := c.Preset(s); ok {
		return NewStockSheet(p.Name, p.Width, p.Height), nil
	}
	w, h, err := ParseSize(s)
	if err != nil {
		return StockSheet{}, err
	}
	return NewStockSheet(s, w, h), nil
}

// AddRecentProject moves path to the front of the recent list.
func (c *AppConfig) AddRecentProject(path string) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if len(recent) > maxRecentProjects {
		recent = recent[:maxRecentProjects]
	}
	c.RecentProjects = recent
}

// ParseSize parses "WxH" (also "W*H" or "W×H") into two positive numbers.
func ParseSize(s string) (float64, float64, error) {
	parts := splitDims(s)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: expected WxH", s)
	}
	return parseDims(s, parts[0], parts[1])
}

// ParseCut parses "WxH" or "WxHxQ" into a cut with an optional quantity.
func ParseCut(s string) (Cut, error) {
	parts := splitDims(s)
	if len(parts) != 2 && len(parts) != 3 {
		return Cut{}, fmt.Errorf("invalid cut %q: expected WxH or WxHxQ", s)
	}
	w, h, err := parseDims(s, parts[0], parts[1])
	if err != nil {
		return Cut{}, err
	}
	qty := 1
	if len(parts) == 3 {
		qty, err = strconv.Atoi(parts[2])
		if err != nil || qty <= 0 {
			return Cut{}, fmt.Errorf("invalid cut %q: quantity must be a positive integer", s)
		}
	}
	return NewCut(fmt.Sprintf("%gx%g", w, h), w, h, qty), nil
}

func splitDims(s string) []string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("×", "x", "*", "x").Replace(s)
	parts := strings.Split(s, "x")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseDims(orig, ws, hs string) (float64, float64, error) {
	w, err := strconv.ParseFloat(ws, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", orig, err)
	}
	h, err := strconv.ParseFloat(hs, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", orig, err)
	}
	if !PositiveFinite(w) || !PositiveFinite(h) {
		return 0, 0, fmt.Errorf("invalid size %q: dimensions must be positive", orig)
	}
	return w, h, nil
}
