// Package ui implements the interactive terminal view over a task store.
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/logging"
	"todo/internal/store"
)

const (
	warnEmpty       = "Todo cannot be empty!"
	warnNoSelection = "Please select a todo first!"
)

type mode int

const (
	modeBrowse mode = iota
	modeAdd
	modeEdit
	modeConfirm
)

// Model is the Bubble Tea model for the interactive view.
type Model struct {
	store  *store.Store
	logger *log.Logger
	keys   KeyMap
	help   help.Model
	input  textinput.Model

	mode    mode
	cursor  int
	warning string
	err     error
	width   int
}

// New creates a model over st. The cursor starts with nothing selected.
func New(st *store.Store, logger *log.Logger) Model {
	if logger == nil {
		logger = logging.Discard()
	}
	ti := textinput.New()
	ti.Placeholder = "What needs doing?"
	ti.CharLimit = 0 // no limit
	ti.Width = 48

	return Model{
		store:  st,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		cursor: store.NoSelection,
	}
}

// Err returns the storage error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Selected returns the selected index or store.NoSelection.
func (m Model) Selected() int {
	return m.cursor
}

// Warning returns the warning currently shown, if any.
func (m Model) Warning() string {
	return m.warning
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Interrupt) {
			return m, tea.Quit
		}
		switch m.mode {
		case modeAdd, modeEdit:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.warning = ""
	n := m.store.Len()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		if n == 0 {
			return m, nil
		}
		if m.cursor <= 0 {
			m.cursor = n - 1
		} else {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if n == 0 {
			return m, nil
		}
		if m.cursor < 0 || m.cursor >= n-1 {
			m.cursor = 0
		} else {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Focus):
		m.mode = modeAdd
		m.input.SetValue("")
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if !m.hasSelection() {
			m.warning = warnNoSelection
			return m, nil
		}
		if _, err := m.store.Toggle(m.cursor); err != nil {
			return m.fail(err)
		}

	case key.Matches(msg, m.keys.Edit):
		if !m.hasSelection() {
			m.warning = warnNoSelection
			return m, nil
		}
		t, err := m.store.Get(m.cursor)
		if err != nil {
			return m.fail(err)
		}
		m.mode = modeEdit
		m.input.SetValue(t.Text)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Delete):
		if !m.hasSelection() {
			m.warning = warnNoSelection
			return m, nil
		}
		m.mode = modeConfirm
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.leaveInput()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		text := m.input.Value()
		var err error
		if m.mode == modeEdit {
			_, err = m.store.Edit(m.cursor, text)
		} else {
			_, err = m.store.Add(text)
		}
		if err != nil {
			return m.fail(err)
		}
		m.warning = ""
		if m.mode == modeEdit {
			m.leaveInput()
		} else {
			m.input.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.mode = modeBrowse
		if _, err := m.store.Delete(m.cursor); err != nil {
			return m.fail(err)
		}
		m.cursor = store.NoSelection
	case key.Matches(msg, m.keys.Deny):
		m.mode = modeBrowse
	}
	return m, nil
}

func (m *Model) leaveInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) hasSelection() bool {
	return m.cursor >= 0 && m.cursor < m.store.Len()
}

// fail shows rejections as warnings and ends the session on storage errors.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	switch {
	case errors.Is(err, store.ErrEmptyText):
		m.warning = warnEmpty
		return m, nil
	case errors.Is(err, store.ErrNoSelection):
		m.warning = warnNoSelection
		m.cursor = store.NoSelection
		m.mode = modeBrowse
		return m, nil
	}
	m.logger.Error("tui stopped", "err", err)
	m.err = err
	return m, tea.Quit
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Todo"))
	b.WriteString("\n")

	field := inputStyle
	if m.mode == modeAdd || m.mode == modeEdit {
		field = focusedInputStyle
	}
	b.WriteString(field.Render(m.input.View()))
	b.WriteString("\n\n")

	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		b.WriteString(emptyStyle.Render("No todos yet."))
		b.WriteString("\n")
	}
	for i, t := range tasks {
		mark := t.Status()
		text := t.Text
		if t.Completed {
			mark = doneMarkStyle.Render(mark)
			text = doneTextStyle.Render(text)
		}
		line := fmt.Sprintf("%s %s", mark, text)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if m.mode == modeConfirm {
		b.WriteString("\n")
		b.WriteString(confirmStyle.Render("Delete this todo? (y/n)"))
		b.WriteString("\n")
	}
	if m.warning != "" {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(m.warning))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
