package history

import (
	"context"
	"fmt"
)

type migration struct {
	sql     string
	version int
}

var migrations = []migration{
	{
		version: 1,
		sql: `
			CREATE TABLE runs (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				ran_at INTEGER NOT NULL,
				project TEXT NOT NULL DEFAULT '',
				stock_label TEXT NOT NULL DEFAULT '',
				stock_width REAL NOT NULL,
				stock_height REAL NOT NULL,
				kerf REAL NOT NULL,
				placed INTEGER NOT NULL,
				unplaced INTEGER NOT NULL,
				waste_area REAL NOT NULL,
				waste_percent REAL NOT NULL
			);

			CREATE INDEX idx_runs_ran_at ON runs(ran_at);
		`,
	},
}

func (s *Store) runMigrations(ctx context.Context) error {
	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get current database version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if err := s.executeMigration(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) executeMigration(ctx context.Context, m migration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, m.sql); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute migration %d: %w", m.version, err)
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to update database version to %d: %w", m.version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", m.version, err)
	}
	return nil
}
