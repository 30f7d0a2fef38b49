package elm

import (
	"fmt"
	"sort"
)

// Table is a read-only set of commands keyed by label.
type Table struct {
	byLabel map[string]Command
}

// NewTable builds a table. Labels must be unique.
func NewTable(cmds ...Command) (*Table, error) {
	t := &Table{byLabel: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		if cmd.label == "" || cmd.decoder == nil {
			return nil, fmt.Errorf("%w: command not built with NewCommand", ErrInvalidCommandSpec)
		}
		if _, dup := t.byLabel[cmd.label]; dup {
			return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidCommandSpec, cmd.label)
		}
		t.byLabel[cmd.label] = cmd
	}
	return t, nil
}

// DefaultTable holds the built-in commands.
func DefaultTable() *Table {
	t, err := NewTable(EchoOff, EngineRPM)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) Lookup(label string) (Command, bool) {
	cmd, ok := t.byLabel[label]
	return cmd, ok
}

// Commands returns all commands sorted by label.
func (t *Table) Commands() []Command {
	out := make([]Command, 0, len(t.byLabel))
	for _, cmd := range t.byLabel {
		out = append(out, cmd)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].label < out[j].label })
	return out
}

func (t *Table) Len() int { return len(t.byLabel) }
