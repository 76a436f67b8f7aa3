package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command.
type EditCmd struct{}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Replace a task's text" }
func (c *EditCmd) Usage() string     { return "todo edit <ref> <text...>" }
func (c *EditCmd) NeedsStore() bool  { return true }
func (c *EditCmd) NeedsAuth() bool   { return false }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *EditCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	ref, rest, err := ParseTaskRef(args)
	if err != nil {
		return fail(errOut, ref, err)
	}
	idx, err := ref.Index(env.Store)
	if err != nil {
		return fail(errOut, ref, err)
	}

	t, err := env.Store.Edit(idx, strings.Join(rest, " "))
	if err != nil {
		return fail(errOut, ref, err)
	}

	env.Logger.Debug("edited task", "id", t.ID)
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
