package project

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/spf13/afero"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for exporting and importing the
// application settings.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
}

// ExportAllData writes config to a versioned JSON backup file.
func ExportAllData(fsys afero.Fs, exportPath string, config model.AppConfig) error {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
	}
	data, err := json.MarshalIndent(backup, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal backup data: %w", err)
	}

	if err := fsys.MkdirAll(filepath.Dir(exportPath), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := afero.WriteFile(fsys, exportPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}
	return nil
}

// ImportAllData reads a backup file. The caller applies the config.
func ImportAllData(fsys afero.Fs, importPath string) (BackupData, error) {
	data, err := afero.ReadFile(fsys, importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}

	backup := BackupData{Config: model.DefaultAppConfig()}
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	return backup, nil
}
