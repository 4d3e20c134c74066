package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/piwi3910/cutlist/internal/engine"
	"github.com/piwi3910/cutlist/internal/export"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/piwi3910/cutlist/internal/shell"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigPath = "/cfg/config.yaml"

func init() {
	color.NoColor = true
}

type scriptedPrompter struct {
	lines []string
}

func (s *scriptedPrompter) Prompt(string) (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptedPrompter) AppendHistory(string) {}
func (s *scriptedPrompter) Close() error        { return nil }

func newTestEnvironment(t *testing.T, lines ...string) *environment {
	t.Helper()
	return &environment{
		fs:          afero.NewMemMapFs(),
		logWriter:   io.Discard,
		historyPath: filepath.Join(t.TempDir(), "history.db"),
		prompter: func() shell.Prompter {
			return &scriptedPrompter{lines: lines}
		},
	}
}

func execute(t *testing.T, env *environment, args ...string) (string, error) {
	t.Helper()
	cmd := createRootCommand(env)

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(append([]string{"--config", testConfigPath}, args...))

	err := cmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCreateRootCommand(t *testing.T) {
	t.Parallel()

	cmd := createRootCommand(newTestEnvironment(t))

	if cmd.Use != "cutlist" {
		t.Errorf("Expected command use 'cutlist', got '%s'", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("Expected non-empty short description")
	}

	for _, name := range []string{"pack", "compare", "estimate", "shell", "history", "config"} {
		sub, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Fatalf("Expected %s command to exist, got error: %v", name, err)
		}
		if sub.Name() != name {
			t.Errorf("Expected command name '%s', got '%s'", name, sub.Name())
		}
	}
}

func TestRootCommandShowsHelp(t *testing.T) {
	t.Parallel()

	out, err := execute(t, newTestEnvironment(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands")
}

func TestPackPrintsLayout(t *testing.T) {
	t.Parallel()

	out, err := execute(t, newTestEnvironment(t), "pack",
		"--stock", "100x100", "--kerf", "0",
		"--cut", "60x40", "--cut", "30x30", "--cut", "200x10")
	require.NoError(t, err)

	assert.Contains(t, out, "Placed 2 of 3 cut(s)")
	assert.Contains(t, out, "Waste: 67.00% (6700.00 mm²)")
	assert.Contains(t, out, "1 cut(s) could not be placed in the current layout.")
}

func TestPackWritesJSONToStdout(t *testing.T) {
	t.Parallel()

	out, err := execute(t, newTestEnvironment(t), "pack",
		"--stock", "100x100", "--kerf", "0", "--cut", "50x50x4", "--json", "-")
	require.NoError(t, err)

	var rep export.Report
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Len(t, rep.Layout.Placed, 4)
	assert.Empty(t, rep.Layout.Unplaced)
	assert.InDelta(t, 0, rep.WasteArea, 1e-9)
}

func TestPackRequiresCuts(t *testing.T) {
	t.Parallel()

	_, err := execute(t, newTestEnvironment(t), "pack", "--stock", "100x100")
	require.ErrorIs(t, err, errNoCuts)
}

func TestPackRejectsBadCut(t *testing.T) {
	t.Parallel()

	_, err := execute(t, newTestEnvironment(t), "pack", "--cut", "abc")
	require.Error(t, err)
}

func TestPackImportsCSVAndWritesExports(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t)
	require.NoError(t, afero.WriteFile(env.fs, "/work/cuts.csv",
		[]byte("Label,Width,Height,Qty\nShelf,400,300,2\nSide,600,300,1\n"), 0o644))

	dxfPath := filepath.Join(t.TempDir(), "layout.dxf")
	out, err := execute(t, env, "pack",
		"--stock", "1000x1000", "--input", "/work/cuts.csv",
		"--pdf", "/out/layout.pdf", "--labels", "/out/labels.pdf",
		"--xlsx", "/out/layout.xlsx", "--json", "/out/layout.json",
		"--dxf", dxfPath, "--save", "/out/kitchen")
	require.NoError(t, err)
	assert.Contains(t, out, "Placed 3 of 3 cut(s)")

	for _, path := range []string{"/out/layout.pdf", "/out/labels.pdf", "/out/layout.xlsx", "/out/layout.json"} {
		info, err := env.fs.Stat(path)
		require.NoError(t, err, path)
		assert.Positive(t, info.Size(), path)
	}
	_, err = os.Stat(dxfPath)
	require.NoError(t, err)

	p, err := project.LoadProject(env.fs, "/out/kitchen"+project.ProjectExt)
	require.NoError(t, err)
	assert.Equal(t, "cuts", p.Name)
	require.NotNil(t, p.Layout)
	assert.Len(t, p.Layout.Placed, 3)

	cfg, err := project.LoadAppConfig(env.fs, testConfigPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"/out/kitchen" + project.ProjectExt}, cfg.RecentProjects)
}

func TestPackFromProjectOverridesKerf(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t)
	p := model.Project{
		Name: "Desk",
		Job: model.Job{
			Stock: model.NewStockSheet("Board", 100, 50),
			Kerf:  5,
			Cuts:  []model.Cut{model.NewCut("Half", 50, 50, 2)},
		},
	}
	require.NoError(t, project.SaveProject(env.fs, "/desk.cutlist.json", p))

	out, err := execute(t, env, "pack", "--project", "/desk.cutlist.json")
	require.NoError(t, err)
	assert.Contains(t, out, "Placed 1 of 2 cut(s)")

	out, err = execute(t, env, "pack", "--project", "/desk.cutlist.json", "--kerf", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Placed 2 of 2 cut(s)")
}

func TestPackRecordsHistory(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t)
	_, err := execute(t, env, "pack", "--stock", "100x100", "--cut", "10x10")
	require.NoError(t, err)
	_, err = execute(t, env, "pack", "--stock", "100x100", "--cut", "10x10", "--no-history")
	require.NoError(t, err)

	out, err := execute(t, env, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "100x100")
	assert.Equal(t, 2, strings.Count(out, "\n"), "header plus one run")
}

func TestHistoryEmpty(t *testing.T) {
	t.Parallel()

	out, err := execute(t, newTestEnvironment(t), "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestCompareKerfs(t *testing.T) {
	t.Parallel()

	out, err := execute(t, newTestEnvironment(t), "compare",
		"--stock", "100x50", "--cut", "50x50x2", "--kerfs", "0,5")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "0.00%")
	assert.Contains(t, lines[2], "50.00%")
}

func TestCompareRejectsNegativeKerf(t *testing.T) {
	t.Parallel()

	_, err := execute(t, newTestEnvironment(t), "compare",
		"--stock", "100x50", "--cut", "50x50", "--kerfs", "-1")
	require.Error(t, err)
}

func TestCompareEnforcesPieceLimit(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t)
	args := []string{"--stock", "20000x1", "--cut", "1x1x10001"}

	_, err := execute(t, env, append([]string{"pack"}, args...)...)
	require.ErrorIs(t, err, engine.ErrTooManyPieces)

	_, err = execute(t, env, append([]string{"compare"}, args...)...)
	require.ErrorIs(t, err, engine.ErrTooManyPieces)
}

func TestRejectsNonFiniteInput(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{
		{"pack", "--stock", "Infx100", "--cut", "10x10"},
		{"pack", "--stock", "100x100", "--cut", "NaNx10"},
		{"pack", "--stock", "100x100", "--cut", "10x10x3", "--kerf", "NaN"},
		{"compare", "--stock", "100x100", "--cut", "10x10", "--kerfs", "0,NaN"},
		{"estimate", "--stock", "100x100", "--cut", "10x10", "--kerf", "Inf"},
	} {
		out, err := execute(t, newTestEnvironment(t), args...)
		require.Error(t, err, "%v", args)
		assert.NotContains(t, out, "NaN%", "%v", args)
	}
}

func TestShellPacksAndRecords(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "stock 100x100", "kerf 0", "add 50x50x4", "pack", "quit")
	out, err := execute(t, env, "shell")
	require.NoError(t, err)
	assert.Contains(t, out, "Placed 4 of 4 cut(s)")

	out, err = execute(t, env, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "100x100")
}

func TestShellSaveUpdatesRecentProjects(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t, "add 10x10", "save /projects/shed", "quit")
	_, err := execute(t, env, "shell")
	require.NoError(t, err)

	cfg, err := project.LoadAppConfig(env.fs, testConfigPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"/projects/shed" + project.ProjectExt}, cfg.RecentProjects)
}

func TestConfigInitShowAndBackup(t *testing.T) {
	t.Parallel()

	env := newTestEnvironment(t)

	_, err := execute(t, env, "config", "init")
	require.NoError(t, err)
	_, err = execute(t, env, "config", "init")
	require.Error(t, err)
	_, err = execute(t, env, "config", "init", "--force")
	require.NoError(t, err)

	out, err := execute(t, env, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "kerf: 3")
	assert.Contains(t, out, testConfigPath)

	_, err = execute(t, env, "config", "export", "/backup/settings.json")
	require.NoError(t, err)

	cfg := model.DefaultAppConfig()
	cfg.Kerf = 4.5
	require.NoError(t, project.SaveAppConfig(env.fs, testConfigPath, cfg))

	_, err = execute(t, env, "config", "import", "/backup/settings.json")
	require.NoError(t, err)

	restored, err := project.LoadAppConfig(env.fs, testConfigPath)
	require.NoError(t, err)
	assert.InDelta(t, 3, restored.Kerf, 1e-9)
}

func TestEstimateSheets(t *testing.T) {
	t.Parallel()

	out, err := execute(t, newTestEnvironment(t), "estimate",
		"--stock", "100x100", "--kerf", "0", "--cut", "50x50x6", "--waste", "0", "--price", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Sheets: 1.50 exact, 2 minimum, 2 to buy")
	assert.Contains(t, out, "Cost: 20.00")
}
