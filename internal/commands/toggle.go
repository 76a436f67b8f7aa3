package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
)

func init() {
	Register(&ToggleCmd{})
}

// ToggleCmd implements the toggle command.
// Completing an open task and reopening a completed one are the same action.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return []string{"done"} }
func (c *ToggleCmd) Synopsis() string  { return "Flip a task between open and completed" }
func (c *ToggleCmd) Usage() string     { return "todo toggle <ref>" }
func (c *ToggleCmd) NeedsStore() bool  { return true }
func (c *ToggleCmd) NeedsAuth() bool   { return false }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, _, err := ParseTaskRef(args)
	if err != nil {
		return fail(errOut, ref, err)
	}
	idx, err := ref.Index(env.Store)
	if err != nil {
		return fail(errOut, ref, err)
	}

	t, err := env.Store.Toggle(idx)
	if err != nil {
		return fail(errOut, ref, err)
	}

	env.Logger.Debug("toggled task", "id", t.ID, "completed", t.Completed)
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
