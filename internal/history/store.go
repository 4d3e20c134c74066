// Package history records packing runs in a local SQLite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/piwi3910/cutlist/internal/model"
	_ "modernc.org/sqlite"
)

// Run is one recorded packing run.
type Run struct {
	ID           int64
	RanAt        time.Time
	Project      string
	StockLabel   string
	StockWidth   float64
	StockHeight  float64
	Kerf         float64
	Placed       int
	Unplaced     int
	WasteArea    float64
	WastePercent float64
}

// RunFromLayout summarises layout as a Run stamped with the current time.
func RunFromLayout(project string, layout model.Layout) Run {
	return Run{
		RanAt:        time.Now().UTC().Truncate(time.Second),
		Project:      project,
		StockLabel:   layout.Stock.Label,
		StockWidth:   layout.Stock.Width,
		StockHeight:  layout.Stock.Height,
		Kerf:         layout.Kerf,
		Placed:       len(layout.Placed),
		Unplaced:     len(layout.Unplaced),
		WasteArea:    layout.WasteArea(),
		WastePercent: layout.WastePercentage(),
	}
}

type Store struct {
	db *sql.DB
}

// Open opens or creates the database at dsn and applies migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if err := s.runMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Record inserts r and returns its row ID. A zero RanAt is set to now.
func (s *Store) Record(ctx context.Context, r Run) (int64, error) {
	if r.RanAt.IsZero() {
		r.RanAt = time.Now().UTC()
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (ran_at, project, stock_label, stock_width, stock_height,
			kerf, placed, unplaced, waste_area, waste_percent)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RanAt.Unix(), r.Project, r.StockLabel, r.StockWidth, r.StockHeight,
		r.Kerf, r.Placed, r.Unplaced, r.WasteArea, r.WastePercent)
	if err != nil {
		return 0, fmt.Errorf("failed to record run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		return []Run{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ran_at, project, stock_label, stock_width, stock_height,
			kerf, placed, unplaced, waste_area, waste_percent
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	runs := []Run{}
	for rows.Next() {
		var r Run
		var ranAt int64
		if err := rows.Scan(&r.ID, &ranAt, &r.Project, &r.StockLabel, &r.StockWidth, &r.StockHeight,
			&r.Kerf, &r.Placed, &r.Unplaced, &r.WasteArea, &r.WastePercent); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.RanAt = time.Unix(ranAt, 0).UTC()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
