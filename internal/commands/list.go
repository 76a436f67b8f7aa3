package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/output"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct {
	format string
	ids    bool
}

// SetFormat sets the output format (for testing).
func (c *ListCmd) SetFormat(format string) {
	c.format = format
}

// SetIDs appends short IDs to text output (for testing).
func (c *ListCmd) SetIDs(ids bool) {
	c.ids = ids
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list [--format text|json|yaml] [--ids]" }
func (c *ListCmd) NeedsStore() bool  { return true }
func (c *ListCmd) NeedsAuth() bool   { return false }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.format, "format", "text", "")
	fs.BoolVar(&c.ids, "ids", false, "")
}

func (c *ListCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	format, err := output.ParseFormat(c.format)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks := env.Store.Tasks()
	entries := make([]output.Entry, len(tasks))
	for i, t := range tasks {
		entries[i] = output.Entry{Num: i + 1, Task: t}
	}

	if format == output.FormatText {
		if len(entries) == 0 {
			if !env.Config.Quiet {
				fmt.Fprintln(out, "no tasks found")
			}
			return exitcode.Success
		}
		if c.ids {
			for _, e := range entries {
				output.FormatTaskWithID(out, e.Num, e.Task)
			}
			return exitcode.Success
		}
	}

	if err := output.Write(out, format, entries); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}
