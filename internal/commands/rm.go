package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
)

func init() {
	Register(&RmCmd{})
}

// RmCmd implements the rm command.
type RmCmd struct {
	yes bool
}

// SetYes skips the confirmation prompt (for testing).
func (c *RmCmd) SetYes(yes bool) {
	c.yes = yes
}

func (c *RmCmd) Name() string      { return "rm" }
func (c *RmCmd) Aliases() []string { return []string{"delete"} }
func (c *RmCmd) Synopsis() string  { return "Delete a task" }
func (c *RmCmd) Usage() string     { return "todo rm [--yes] <ref>" }
func (c *RmCmd) NeedsStore() bool  { return true }
func (c *RmCmd) NeedsAuth() bool   { return false }

func (c *RmCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.yes, "yes", false, "")
	fs.BoolVar(&c.yes, "y", false, "")
}

func (c *RmCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, _, err := ParseTaskRef(args)
	if err != nil {
		return fail(errOut, ref, err)
	}
	idx, err := ref.Index(env.Store)
	if err != nil {
		return fail(errOut, ref, err)
	}

	// Resolve before prompting so a bad ref never asks for confirmation.
	t, err := env.Store.Get(idx)
	if err != nil {
		return fail(errOut, ref, err)
	}

	if !c.yes && !confirm(env.In, errOut, fmt.Sprintf("Delete %q?", t.Text)) {
		fmt.Fprintln(errOut, "error: cancelled")
		return exitcode.UserError
	}

	removed, err := env.Store.Delete(idx)
	if err != nil {
		return fail(errOut, ref, err)
	}

	env.Logger.Debug("deleted task", "id", removed.ID)
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// confirm asks a y/N question on errOut and reads one line from in.
// Anything but y or yes, including EOF, is a no.
func confirm(in io.Reader, errOut io.Writer, question string) bool {
	if in == nil {
		return false
	}
	fmt.Fprintf(errOut, "%s [y/N] ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
