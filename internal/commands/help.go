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
	Register(&HelpCmd{registry: DefaultRegistry})
}

// HelpCmd implements the help command.
// Usage lines come from the registered commands.
type HelpCmd struct {
	registry *Registry
}

// NewHelpCmd creates a help command listing the commands in r.
func NewHelpCmd(r *Registry) *HelpCmd {
	return &HelpCmd{registry: r}
}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "todo help" }
func (c *HelpCmd) NeedsStore() bool  { return false }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, c.text())
	return exitcode.Success
}

func (c *HelpCmd) text() string {
	var b strings.Builder
	b.WriteString("Usage:\n")
	fmt.Fprintf(&b, "  %-44s %s\n", "todo", "List tasks")
	for _, cmd := range c.registry.All() {
		synopsis := cmd.Synopsis()
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			synopsis += " (alias: " + strings.Join(aliases, ", ") + ")"
		}
		fmt.Fprintf(&b, "  %-44s %s\n", cmd.Usage(), synopsis)
	}
	b.WriteString(commonFlagsHelp)
	return b.String()
}

const commonFlagsHelp = `
A <ref> is a task number as shown by list, or the first characters of its
ID (see list --ids). An all-digit ref is always a task number.

Common flags:
  --config <dir>   Override config directory
  --file <path>    Override todo file (default ./todos.json)
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
