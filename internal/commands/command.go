// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"github.com/charmbracelet/log"

	"todo/internal/config"
	"todo/internal/service"
	"todo/internal/store"
)

// Env is what a command runs against.
type Env struct {
	// Config is always provided (config dir, todo file path, flags).
	Config *config.Config

	// Store is nil if NeedsStore() returns false.
	Store *store.Store

	// Service is nil if NeedsAuth() returns false.
	Service service.Service

	// Logger receives diagnostics; never nil.
	Logger *log.Logger

	// In supplies answers to confirmation prompts.
	In io.Reader
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsStore returns true if the command reads or writes the todo file.
	NeedsStore() bool

	// NeedsAuth returns true if the command talks to the remote backend.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}
