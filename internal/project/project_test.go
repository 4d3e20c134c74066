package project

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadProject(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/work/kitchen.cutlist.json"

	p := model.NewProject()
	p.Name = "Kitchen"
	p.Job.Kerf = 3.2
	p.Job.Cuts = append(p.Job.Cuts, model.NewCut("Door", 400, 800, 2))
	p.Layout = &model.Layout{
		Stock:  p.Job.Stock,
		Kerf:   p.Job.Kerf,
		Placed: []model.PlacedCut{{Cut: p.Job.Cuts[0]}},
	}

	require.NoError(t, SaveProject(fs, path, p))

	loaded, err := LoadProject(fs, path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestLoadProjectDefaultsName(t *testing.T) {
	fs := afero.NewMemMapFs()
	data := `{"job":{"stock":{"label":"S","width":100,"height":100},"kerf":0,"cuts":null}}`
	require.NoError(t, afero.WriteFile(fs, "/p/shed.cutlist.json", []byte(data), 0o644))

	p, err := LoadProject(fs, "/p/shed.cutlist.json")

	require.NoError(t, err)
	assert.Equal(t, "shed", p.Name)
	assert.NotNil(t, p.Job.Cuts)
	assert.Nil(t, p.Layout)
}

func TestLoadProjectErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("{not json"), 0o644))
	invalid := `{"name":"x","job":{"stock":{"width":0,"height":100},"kerf":0,"cuts":[]}}`
	require.NoError(t, afero.WriteFile(fs, "/invalid.json", []byte(invalid), 0o644))

	_, err := LoadProject(fs, "/missing.json")
	assert.Error(t, err)

	_, err = LoadProject(fs, "/bad.json")
	assert.Error(t, err)

	_, err = LoadProject(fs, "/invalid.json")
	assert.True(t, errors.Is(err, ErrInvalidProject))
	assert.True(t, errors.Is(err, model.ErrInvalidJob))
}

func TestProjectName(t *testing.T) {
	assert.Equal(t, "kitchen", ProjectName("/a/b/kitchen.cutlist.json"))
	assert.Equal(t, "garage", ProjectName("garage.json"))
	assert.Equal(t, "plain", ProjectName("plain"))
}

func TestEnsureProjectExt(t *testing.T) {
	assert.Equal(t, "shed.cutlist.json", EnsureProjectExt("shed"))
	assert.Equal(t, "shed.json", EnsureProjectExt("shed.json"))
}

func TestPaths(t *testing.T) {
	fs := afero.NewMemMapFs()
	paths := NewPaths(fs)

	assert.True(t, strings.HasSuffix(paths.ConfigPath(), filepath.Join(AppName, ConfigFilename)))

	logPath, err := paths.LogPath()
	require.NoError(t, err)
	assert.Equal(t, LogFilename, filepath.Base(logPath))

	dbPath, err := paths.HistoryPath()
	require.NoError(t, err)
	assert.Equal(t, HistoryFilename, filepath.Base(dbPath))

	isDir, err := afero.IsDir(fs, filepath.Dir(dbPath))
	require.NoError(t, err)
	assert.True(t, isDir, "data directory should be created")
}
