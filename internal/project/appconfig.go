package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// SaveAppConfig writes config as YAML, creating parent directories.
func SaveAppConfig(fsys afero.Fs, path string, config model.AppConfig) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return afero.WriteFile(fsys, path, data, 0o644)
}

// LoadAppConfig reads a YAML config. A missing file yields the defaults;
// keys absent from the file keep their default values.
func LoadAppConfig(fsys afero.Fs, path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return config, nil
		}
		return model.AppConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}
