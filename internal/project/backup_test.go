package project

import (
	"testing"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportAndImportAllData(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/backups/cutlist.json"

	cfg := model.DefaultAppConfig()
	cfg.Kerf = 2.2
	cfg.MaxPieces = 500

	require.NoError(t, ExportAllData(fs, path, cfg))

	backup, err := ImportAllData(fs, path)
	require.NoError(t, err)
	assert.Equal(t, backupVersion, backup.Version)
	assert.NotEmpty(t, backup.CreatedAt)
	assert.Equal(t, cfg, backup.Config)
}

func TestImportAllDataErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("not json"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/noversion.json", []byte(`{"config":{}}`), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{"missing file", "/nope.json"},
		{"invalid json", "/bad.json"},
		{"missing version", "/noversion.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ImportAllData(fs, tt.path)
			assert.Error(t, err)
		})
	}
}

func TestImportAllDataNormalizesRecentProjects(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `{"version":"1.0.0","config":{"kerf":1,"recent_projects":null}}`
	require.NoError(t, afero.WriteFile(fs, "/b.json", []byte(data), 0o644))

	backup, err := ImportAllData(fs, "/b.json")

	require.NoError(t, err)
	assert.Equal(t, 1.0, backup.Config.Kerf)
	assert.Equal(t, []string{}, backup.Config.RecentProjects)
	assert.Equal(t, model.DefaultAppConfig().StockWidth, backup.Config.StockWidth)
}
