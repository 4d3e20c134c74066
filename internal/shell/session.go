// Package shell implements the interactive cut list editor.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/piwi3910/cutlist/internal/engine"
	"github.com/piwi3910/cutlist/internal/logging"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/piwi3910/cutlist/internal/report"
	"github.com/spf13/afero"
)

// errQuit ends the read loop.
var errQuit = errors.New("quit")

// PackFunc is called after every successful pack, e.g. to record history.
type PackFunc func(ctx context.Context, name string, layout model.Layout)

// ProjectFunc is called with the path of every project file the session
// saves or loads, e.g. to keep the recent projects list.
type ProjectFunc func(ctx context.Context, path string)

// Session holds the job being edited.
type Session struct {
	Project model.Project

	// OnProjectFile is optional.
	OnProjectFile ProjectFunc

	fs        afero.Fs
	config    model.AppConfig
	optimizer *engine.Optimizer
	out       io.Writer
	onPack    PackFunc
}

func NewSession(fs afero.Fs, cfg model.AppConfig, p model.Project, out io.Writer, onPack PackFunc) *Session {
	cfg.ApplyToJob(&p.Job)
	return &Session{
		Project:   p,
		fs:        fs,
		config:    cfg,
		optimizer: engine.New(engine.SettingsFromConfig(cfg)),
		out:       out,
		onPack:    onPack,
	}
}

type command struct {
	name  string
	usage string
	help  string
	run   func(s *Session, ctx context.Context, args []string) error
}

var commands []command

func init() {
	commands = []command{
		{"stock", "stock <WxH|preset>", "set the stock sheet", (*Session).cmdStock},
		{"offcut", "offcut <#>", "use an offcut from the last pack as stock", (*Session).cmdOffcut},
		{"kerf", "kerf <mm>", "set the blade width", (*Session).cmdKerf},
		{"add", "add <WxH[xQ]> [label]", "add a cut", (*Session).cmdAdd},
		{"remove", "remove <#>", "remove a cut by list number", (*Session).cmdRemove},
		{"list", "list", "show the job", (*Session).cmdList},
		{"clear", "clear", "remove all cuts", (*Session).cmdClear},
		{"pack", "pack", "pack the cuts onto the stock", (*Session).cmdPack},
		{"save", "save <file>", "save the project", (*Session).cmdSave},
		{"load", "load <file>", "load a project", (*Session).cmdLoad},
		{"help", "help", "show this help", (*Session).cmdHelp},
		{"quit", "quit", "leave the shell", func(*Session, context.Context, []string) error { return errQuit }},
	}
}

// Run reads commands from p until quit, EOF, or Ctrl+C.
func (s *Session) Run(ctx context.Context, p Prompter) error {
	color.New(color.Bold).Fprintln(s.out, "cutlist shell. Type 'help' for commands.")
	for {
		line, err := p.Prompt(color.CyanString("cutlist> "))
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("prompt failed: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		p.AppendHistory(line)

		if err := s.Execute(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			color.New(color.FgRed).Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

// Execute runs a single command line.
func (s *Session) Execute(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	if name == "exit" {
		name = "quit"
	}
	for _, c := range commands {
		if c.name == name {
			logging.Get(ctx).Debug().Str("cmd", name).Strs("args", fields[1:]).Msg("shell command")
			return c.run(s, ctx, fields[1:])
		}
	}
	return fmt.Errorf("unknown command %q, type 'help'", fields[0])
}

func (s *Session) cmdStock(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: stock <WxH|preset>")
	}
	stock, err := s.config.ResolveStock(args[0])
	if err != nil {
		return err
	}
	s.Project.Job.Stock = stock
	fmt.Fprintf(s.out, "Stock set to %s (%g x %g mm)\n", stock.Label, stock.Width, stock.Height)
	return nil
}

func (s *Session) cmdOffcut(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: offcut <#>")
	}
	if s.Project.Layout == nil {
		return errors.New("nothing packed yet")
	}
	offcuts := model.DetectOffcuts(*s.Project.Layout)
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(offcuts) {
		return fmt.Errorf("no offcut #%s, the last pack left %d", args[0], len(offcuts))
	}
	stock := offcuts[n-1].ToStockSheet()
	s.Project.Job.Stock = stock
	s.Project.Layout = nil
	fmt.Fprintf(s.out, "Stock set to %s (%g x %g mm)\n", stock.Label, stock.Width, stock.Height)
	return nil
}

func (s *Session) cmdKerf(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: kerf <mm>")
	}
	kerf, err := strconv.ParseFloat(args[0], 64)
	if err != nil || !(kerf >= 0) || math.IsInf(kerf, 1) {
		return fmt.Errorf("invalid kerf %q: must be a non-negative number", args[0])
	}
	s.Project.Job.Kerf = kerf
	fmt.Fprintf(s.out, "Kerf set to %g mm\n", kerf)
	return nil
}

func (s *Session) cmdAdd(_ context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: add <WxH[xQ]> [label]")
	}
	c, err := model.ParseCut(args[0])
	if err != nil {
		return err
	}
	if len(args) > 1 {
		c.Label = strings.Join(args[1:], " ")
	}
	s.Project.Job.Cuts = append(s.Project.Job.Cuts, c)
	fmt.Fprintf(s.out, "Added %s %s x%d\n", c.Label, c.String(), c.Quantity)
	return nil
}

func (s *Session) cmdRemove(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: remove <#>")
	}
	n, err := strconv.Atoi(args[0])
	cuts := s.Project.Job.Cuts
	if err != nil || n < 1 || n > len(cuts) {
		return fmt.Errorf("no cut #%s, the list has %d", args[0], len(cuts))
	}
	removed := cuts[n-1]
	s.Project.Job.Cuts = append(cuts[:n-1:n-1], cuts[n:]...)
	fmt.Fprintf(s.out, "Removed %s %s\n", removed.Label, removed.String())
	return nil
}

func (s *Session) cmdList(_ context.Context, _ []string) error {
	job := s.Project.Job
	fmt.Fprintf(s.out, "Project %s: stock %s (%g x %g mm), kerf %g mm\n",
		s.Project.Name, job.Stock.Label, job.Stock.Width, job.Stock.Height, job.Kerf)
	report.Cuts(s.out, job.Cuts)
	return nil
}

func (s *Session) cmdClear(_ context.Context, _ []string) error {
	s.Project.Job.Cuts = []model.Cut{}
	s.Project.Layout = nil
	fmt.Fprintln(s.out, "Cut list cleared")
	return nil
}

func (s *Session) cmdPack(ctx context.Context, _ []string) error {
	layout, err := s.optimizer.Optimize(s.Project.Job)
	if err != nil {
		return err
	}
	s.Project.Layout = &layout
	logging.Get(ctx).Info().
		Int("placed", len(layout.Placed)).
		Int("unplaced", len(layout.Unplaced)).
		Float64("waste_pct", layout.WastePercentage()).
		Msg("packed job")
	report.Layout(s.out, layout)
	if s.onPack != nil {
		s.onPack(ctx, s.Project.Name, layout)
	}
	return nil
}

func (s *Session) cmdSave(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: save <file>")
	}
	path := project.EnsureProjectExt(args[0])
	if s.Project.Name == "" || s.Project.Name == "Untitled" {
		s.Project.Name = project.ProjectName(path)
	}
	if err := project.SaveProject(s.fs, path, s.Project); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Saved %s\n", path)
	s.projectFile(ctx, path)
	return nil
}

func (s *Session) cmdLoad(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: load <file>")
	}
	p, err := project.LoadProject(s.fs, args[0])
	if err != nil {
		return err
	}
	s.Project = p
	fmt.Fprintf(s.out, "Loaded %s with %d cut(s)\n", p.Name, len(p.Job.Cuts))
	s.projectFile(ctx, args[0])
	return nil
}

func (s *Session) projectFile(ctx context.Context, path string) {
	if s.OnProjectFile != nil {
		s.OnProjectFile(ctx, path)
	}
}

func (s *Session) cmdHelp(_ context.Context, _ []string) error {
	for _, c := range commands {
		fmt.Fprintf(s.out, "  %-24s %s\n", c.usage, c.help)
	}
	return nil
}
