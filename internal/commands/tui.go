package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"todo/internal/exitcode"
	"todo/internal/ui"
)

func init() {
	Register(&TUICmd{})
}

// TUICmd opens the interactive view.
type TUICmd struct{}

func (c *TUICmd) Name() string      { return "tui" }
func (c *TUICmd) Aliases() []string { return []string{"ui"} }
func (c *TUICmd) Synopsis() string  { return "Open the interactive view" }
func (c *TUICmd) Usage() string     { return "todo tui" }
func (c *TUICmd) NeedsStore() bool  { return true }
func (c *TUICmd) NeedsAuth() bool   { return false }

func (c *TUICmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *TUICmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if !ui.IsTTY(out) {
		fmt.Fprintln(errOut, "error: tui requires a terminal")
		return exitcode.UserError
	}
	return tuiResult(errOut, ui.Run(ctx, env.Store, env.Logger))
}

// tuiResult reports how the interactive session ended.
func tuiResult(errOut io.Writer, err error) int {
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, ui.ErrTerminal):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
}
