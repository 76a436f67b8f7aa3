package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/service"
)

func init() {
	Register(&PushCmd{})
}

// PushCmd copies the local list to a remote task list.
// Each run creates new remote tasks; nothing is matched or deduplicated.
type PushCmd struct {
	listName string
}

// SetListName sets the target list name (for testing).
func (c *PushCmd) SetListName(name string) {
	c.listName = name
}

func (c *PushCmd) Name() string      { return "push" }
func (c *PushCmd) Aliases() []string { return nil }
func (c *PushCmd) Synopsis() string  { return "Copy tasks to Google Tasks" }
func (c *PushCmd) Usage() string     { return "todo push [--list <list-name>]" }
func (c *PushCmd) NeedsStore() bool  { return true }
func (c *PushCmd) NeedsAuth() bool   { return true }

func (c *PushCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.listName, "list", "", "")
	fs.StringVar(&c.listName, "l", "", "")
}

func (c *PushCmd) Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	listName := c.listName
	if listName == "" {
		listName = env.Config.PushList
	}

	list, code := resolveRemoteList(ctx, env.Service, listName, errOut)
	if code != exitcode.Success {
		return code
	}

	tasks := env.Store.Tasks()
	if len(tasks) == 0 {
		if !env.Config.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	for i, t := range tasks {
		if err := env.Service.CreateTask(ctx, list.ID, t.Text, t.Completed); err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			if i > 0 {
				fmt.Fprintf(errOut, "error: pushed %d of %d tasks before failing\n", i, len(tasks))
			}
			return exitcode.BackendError
		}
		env.Logger.Debug("pushed task", "id", t.ID, "list", list.Title)
	}

	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

// resolveRemoteList finds the named list, or the default list when name is
// empty. On failure it reports the error and returns a non-zero code.
func resolveRemoteList(ctx context.Context, svc service.Service, name string, errOut io.Writer) (service.TaskList, int) {
	if name == "" {
		list, err := svc.DefaultList(ctx)
		if err != nil {
			fmt.Fprintf(errOut, "error: backend error: %v\n", err)
			return service.TaskList{}, exitcode.BackendError
		}
		return list, exitcode.Success
	}

	list, err := svc.ResolveList(ctx, name)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			fmt.Fprintf(errOut, "error: list not found: %s\n", name)
			return service.TaskList{}, exitcode.UserError
		}
		if strings.Contains(err.Error(), "ambiguous") {
			fmt.Fprintf(errOut, "error: ambiguous list name: %s\n", name)
			return service.TaskList{}, exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return service.TaskList{}, exitcode.BackendError
	}
	return list, exitcode.Success
}
