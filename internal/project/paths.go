// Package project persists projects, app configuration, and backups, and
// resolves where those files live on disk.
package project

import (
	"fmt"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "cutlist"

	ConfigFilename  = "config.yaml"
	LogFilename     = "cutlist.log"
	HistoryFilename = "history.db"

	// ProjectExt is the extension of saved project files.
	ProjectExt = ".cutlist.json"
)

// Paths resolves XDG locations and creates missing directories through fs.
type Paths struct {
	fs afero.Fs
}

func NewPaths(fs afero.Fs) *Paths {
	return &Paths{fs: fs}
}

// ConfigPath returns the YAML config file path. The directory is not
// created; loading a missing config yields defaults.
func (p *Paths) ConfigPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFilename)
}

// DataDir returns the XDG data directory, creating it if necessary.
func (p *Paths) DataDir() (string, error) {
	dataDir := filepath.Join(xdg.DataHome, AppName)
	if err := p.fs.MkdirAll(dataDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dataDir, err)
	}
	return dataDir, nil
}

// LogPath returns the full path to the rotating log file.
func (p *Paths) LogPath() (string, error) {
	dataDir, err := p.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, LogFilename), nil
}

// HistoryPath returns the full path to the run history database.
func (p *Paths) HistoryPath() (string, error) {
	dataDir, err := p.DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, HistoryFilename), nil
}
