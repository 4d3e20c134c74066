package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/spf13/afero"
)

// ErrInvalidProject is returned when a project file parses but holds an
// unusable job.
var ErrInvalidProject = errors.New("invalid project file")

// SaveProject writes p as indented JSON, creating parent directories.
func SaveProject(fsys afero.Fs, path string, p model.Project) error {
	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := afero.WriteFile(fsys, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write project %s: %w", path, err)
	}
	return nil
}

// LoadProject reads a project file and validates its job.
func LoadProject(fsys afero.Fs, path string) (model.Project, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project %s: %w", path, err)
	}

	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project %s: %w", path, err)
	}
	if err := p.Job.Validate(); err != nil {
		return model.Project{}, fmt.Errorf("%w: %s: %w", ErrInvalidProject, path, err)
	}
	if p.Job.Cuts == nil {
		p.Job.Cuts = []model.Cut{}
	}
	if p.Name == "" {
		p.Name = ProjectName(path)
	}
	return p, nil
}

// ProjectName derives a display name from a project file path.
func ProjectName(path string) string {
	base := filepath.Base(path)
	if strings.HasSuffix(base, ProjectExt) {
		return strings.TrimSuffix(base, ProjectExt)
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// EnsureProjectExt appends ProjectExt when path has no extension.
func EnsureProjectExt(path string) string {
	if filepath.Ext(path) == "" {
		return path + ProjectExt
	}
	return path
}
