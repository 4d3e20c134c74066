package shell

import (
	"strings"

	"github.com/peterh/liner"
)

// Prompter wraps basic prompting functionality for testability
type Prompter interface {
	Prompt(string) (string, error)
	AppendHistory(string)
	Close() error
}

// LinerPrompter wraps liner.State to implement Prompter
type LinerPrompter struct {
	*liner.State
}

// NewLinerPrompter creates a liner-based prompter that completes command
// names and aborts on Ctrl+C.
func NewLinerPrompter() *LinerPrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetCompleter(completeCommand)
	return &LinerPrompter{State: line}
}

func completeCommand(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}
	var matches []string
	for _, c := range commands {
		if strings.HasPrefix(c.name, strings.ToLower(line)) {
			matches = append(matches, c.name)
		}
	}
	return matches
}
