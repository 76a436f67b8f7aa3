package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/store"
)

// ErrTerminal marks failures of the terminal program itself, as opposed to
// storage errors that ended the session.
var ErrTerminal = errors.New("terminal error")

// Run opens the interactive view over st and blocks until the user quits
// or ctx is cancelled. The store is saved once more on the way out.
func Run(ctx context.Context, st *store.Store, logger *log.Logger) error {
	return run(ctx, st, logger, tea.WithAltScreen())
}

func run(ctx context.Context, st *store.Store, logger *log.Logger, opts ...tea.ProgramOption) error {
	opts = append(opts, tea.WithContext(ctx))
	p := tea.NewProgram(New(st, logger), opts...)
	final, err := p.Run()
	return finish(final, err, st)
}

// finish turns the program result into Run's error. A session ended by a
// storage error is not saved again.
func finish(final tea.Model, err error, st *store.Store) error {
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("%w: %v", ErrTerminal, err)
	}
	if m, ok := final.(Model); ok && m.Err() != nil {
		return m.Err()
	}
	return st.Save()
}

// IsTTY reports whether w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
