package cli_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"todo/internal/cli"
	"todo/internal/commands"
	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/testutil"
)

// testFactory creates a service factory that returns the given FakeService.
func testFactory(svc *testutil.FakeService) cli.ServiceFactory {
	return func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return svc, nil
	}
}

// run dispatches args with a temp config dir and todo file prepended as
// common flags after the command name.
func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int, todoPath string) {
	t.Helper()
	dir := t.TempDir()
	todoPath = filepath.Join(dir, "todos.json")
	if len(args) > 0 {
		args = append([]string{args[0], "--config", dir, "--file", todoPath}, args[1:]...)
	}
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code, todoPath
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"unknowncmd"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeService()))

	var stdout, stderr bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"--quiet"}, &stdout, &stderr)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr.String() != expected {
		t.Errorf("expected %q, got %q", expected, stderr.String())
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code, _ := run(t, dispatcher, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_VersionCommand(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	stdout, stderr, code, _ := run(t, dispatcher, "version")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "todo 0.1.0\n" {
		t.Errorf("expected 'todo 0.1.0\\n', got %q", stdout)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code, _ := run(t, dispatcher, "help", "--unknown")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -unknown\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagNeedsArgument(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code, _ := run(t, dispatcher, "list", "--format")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: flag needs an argument: -format\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_AddThenList(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()
	common := []string{"--config", dir, "--file", filepath.Join(dir, "todos.json")}

	steps := [][]string{
		{"add", "Buy", "milk"},
		{"add", "Walk the dog"},
		{"done", "1"},
	}
	for _, step := range steps {
		var outBuf, errBuf bytes.Buffer
		args := append(append([]string{step[0]}, common...), step[1:]...)
		if code := dispatcher.Run(context.Background(), args, &outBuf, &errBuf); code != exitcode.Success {
			t.Fatalf("%v: expected success, got %d (%s)", step, code, errBuf.String())
		}
	}

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(), append([]string{"ls"}, common...), &outBuf, &errBuf)
	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (%s)", code, errBuf.String())
	}
	want := "   1  ✓  Buy milk\n   2  ○  Walk the dog\n"
	if outBuf.String() != want {
		t.Errorf("expected %q, got %q", want, outBuf.String())
	}
}

func TestDispatcher_NoArgsLists(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(), nil, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if outBuf.String() != "no tasks found\n" {
		t.Errorf("expected 'no tasks found\\n', got %q", outBuf.String())
	}
}

func TestDispatcher_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	todoPath := filepath.Join(dir, "mine.json")
	conf := fmt.Sprintf("todo_file = %q\n", todoPath)
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte(conf), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"add", "--config", dir, "--quiet", "Buy milk"}, &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected success, got %d (%s)", code, errBuf.String())
	}
	if _, err := os.Stat(todoPath); err != nil {
		t.Errorf("expected todo file from config.toml to be written: %v", err)
	}
}

func TestDispatcher_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("todo_file = \n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	var outBuf, errBuf bytes.Buffer
	code := dispatcher.Run(context.Background(), []string{"list", "--config", dir}, &outBuf, &errBuf)

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(errBuf.String(), "error: invalid config.toml") {
		t.Errorf("unexpected stderr %q", errBuf.String())
	}
}

func TestDispatcher_RmReadsConfirmation(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)
	dir := t.TempDir()
	common := []string{"--config", dir, "--file", filepath.Join(dir, "todos.json")}

	var outBuf, errBuf bytes.Buffer
	if code := dispatcher.Run(context.Background(), append([]string{"add"}, append(common, "Buy milk")...), &outBuf, &errBuf); code != exitcode.Success {
		t.Fatalf("add failed: %d (%s)", code, errBuf.String())
	}

	dispatcher.SetInput(strings.NewReader("y\n"))
	outBuf.Reset()
	errBuf.Reset()
	code := dispatcher.Run(context.Background(), append([]string{"rm"}, append(common, "1")...), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (%s)", exitcode.Success, code, errBuf.String())
	}
	if outBuf.String() != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", outBuf.String())
	}
}

func TestDispatcher_PushUsesFactory(t *testing.T) {
	svc := testutil.NewFakeService()
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, testFactory(svc))
	dir := t.TempDir()
	common := []string{"--config", dir, "--file", filepath.Join(dir, "todos.json")}

	var outBuf, errBuf bytes.Buffer
	dispatcher.Run(context.Background(), append([]string{"add"}, append(common, "Buy milk")...), &outBuf, &errBuf)

	outBuf.Reset()
	code := dispatcher.Run(context.Background(), append([]string{"push"}, common...), &outBuf, &errBuf)

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (%s)", exitcode.Success, code, errBuf.String())
	}
	if n := len(svc.Tasks(testutil.DefaultListID)); n != 1 {
		t.Errorf("expected 1 pushed task, got %d", n)
	}
}

func TestDispatcher_FactoryErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   int
		stderr string
	}{
		{
			"auth",
			fmt.Errorf("%w: not logged in (run: todo login)", service.ErrAuth),
			exitcode.AuthError,
			"error: auth error: not logged in (run: todo login)\n",
		},
		{
			"backend",
			errors.New("connection refused"),
			exitcode.BackendError,
			"error: backend error: connection refused\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
				return nil, tt.err
			}
			dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

			_, stderr, code, _ := run(t, dispatcher, "push")

			if code != tt.code {
				t.Errorf("expected exit code %d, got %d", tt.code, code)
			}
			if stderr != tt.stderr {
				t.Errorf("expected %q, got %q", tt.stderr, stderr)
			}
		})
	}
}

func TestDispatcher_PushWithoutBackend(t *testing.T) {
	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, _, code, _ := run(t, dispatcher, "push")

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
}
