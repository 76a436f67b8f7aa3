package ui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"todo/internal/store"
)

func newTestModel(t *testing.T, texts ...string) (Model, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "todos.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, text := range texts {
		if _, err := st.Add(text); err != nil {
			t.Fatalf("Add(%q): %v", text, err)
		}
	}
	return New(st, nil), st
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestNew_StartsWithoutSelection(t *testing.T) {
	m, _ := newTestModel(t, "Buy milk")
	if m.Selected() != store.NoSelection {
		t.Errorf("expected no selection, got %d", m.Selected())
	}
}

func TestAdd(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, runes("a"), runes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})

	tasks := st.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Buy milk" {
		t.Fatalf("expected one task 'Buy milk', got %+v", tasks)
	}
	if m.Warning() != "" {
		t.Errorf("unexpected warning %q", m.Warning())
	}
	if m.mode != modeAdd {
		t.Errorf("expected to stay in add mode, got %v", m.mode)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input cleared, got %q", m.input.Value())
	}

	reloaded, err := store.Open(st.Path())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if reloaded.Len() != 1 {
		t.Errorf("expected add to be persisted, got %d tasks", reloaded.Len())
	}
}

func TestAdd_EmptyWarns(t *testing.T) {
	m, st := newTestModel(t)

	m, _ = press(t, m, runes("a"), runes("   "), tea.KeyMsg{Type: tea.KeyEnter})

	if st.Len() != 0 {
		t.Errorf("expected no tasks, got %d", st.Len())
	}
	if m.Warning() != warnEmpty {
		t.Errorf("expected warning %q, got %q", warnEmpty, m.Warning())
	}
}

func TestActionsWithoutSelectionWarn(t *testing.T) {
	for _, k := range []string{"x", "e", "d"} {
		t.Run(k, func(t *testing.T) {
			m, st := newTestModel(t, "Buy milk")

			m, _ = press(t, m, runes(k))

			if m.Warning() != warnNoSelection {
				t.Errorf("expected warning %q, got %q", warnNoSelection, m.Warning())
			}
			if m.mode != modeBrowse {
				t.Errorf("expected browse mode, got %v", m.mode)
			}
			if got := st.Tasks(); len(got) != 1 || got[0].Completed {
				t.Errorf("expected store untouched, got %+v", got)
			}
		})
	}
}

func TestCursorWraps(t *testing.T) {
	m, _ := newTestModel(t, "one", "two")

	m, _ = press(t, m, runes("j"))
	if m.Selected() != 0 {
		t.Fatalf("expected 0 after first down, got %d", m.Selected())
	}
	m, _ = press(t, m, runes("j"), runes("j"))
	if m.Selected() != 0 {
		t.Errorf("expected wrap to 0, got %d", m.Selected())
	}
	m, _ = press(t, m, runes("k"))
	if m.Selected() != 1 {
		t.Errorf("expected wrap to 1, got %d", m.Selected())
	}
}

func TestToggle(t *testing.T) {
	m, st := newTestModel(t, "Buy milk")

	m, _ = press(t, m, runes("j"), runes("x"))
	if !st.Tasks()[0].Completed {
		t.Errorf("expected task completed")
	}
	press(t, m, runes("x"))
	if st.Tasks()[0].Completed {
		t.Errorf("expected task open again")
	}
}

func TestEdit(t *testing.T) {
	m, st := newTestModel(t, "Buy milk")

	m, _ = press(t, m, runes("j"), runes("e"))
	if m.input.Value() != "Buy milk" {
		t.Fatalf("expected input prefilled, got %q", m.input.Value())
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace},
		tea.KeyMsg{Type: tea.KeyBackspace}, tea.KeyMsg{Type: tea.KeyBackspace},
		runes("eggs"), tea.KeyMsg{Type: tea.KeyEnter})

	if got := st.Tasks()[0].Text; got != "Buy eggs" {
		t.Errorf("expected 'Buy eggs', got %q", got)
	}
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode after edit, got %v", m.mode)
	}
}

func TestEdit_EmptyWarnsAndKeepsText(t *testing.T) {
	m, st := newTestModel(t, "Buy milk")

	m, _ = press(t, m, runes("j"), runes("e"))
	for range "Buy milk" {
		m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Warning() != warnEmpty {
		t.Errorf("expected warning %q, got %q", warnEmpty, m.Warning())
	}
	if got := st.Tasks()[0].Text; got != "Buy milk" {
		t.Errorf("expected text unchanged, got %q", got)
	}
}

func TestDelete_ConfirmClearsSelection(t *testing.T) {
	m, st := newTestModel(t, "Buy milk", "Walk the dog")

	m, _ = press(t, m, runes("j"), runes("d"))
	if m.mode != modeConfirm {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	if !strings.Contains(m.View(), "Delete this todo?") {
		t.Errorf("expected confirmation prompt in view")
	}

	m, _ = press(t, m, runes("y"))

	tasks := st.Tasks()
	if len(tasks) != 1 || tasks[0].Text != "Walk the dog" {
		t.Errorf("expected only 'Walk the dog' left, got %+v", tasks)
	}
	if m.Selected() != store.NoSelection {
		t.Errorf("expected selection cleared, got %d", m.Selected())
	}
}

func TestDelete_DenyKeepsTask(t *testing.T) {
	m, st := newTestModel(t, "Buy milk")

	m, _ = press(t, m, runes("j"), runes("d"), runes("n"))

	if st.Len() != 1 {
		t.Errorf("expected task kept, got %d tasks", st.Len())
	}
	if m.mode != modeBrowse {
		t.Errorf("expected browse mode, got %v", m.mode)
	}
	if m.Selected() != 0 {
		t.Errorf("expected selection kept, got %d", m.Selected())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	if _, cmd := press(t, m, runes("q")); !isQuit(cmd) {
		t.Errorf("expected q to quit in browse mode")
	}

	typing, _ := press(t, m, runes("a"))
	if _, cmd := press(t, typing, runes("q")); isQuit(cmd) {
		t.Errorf("expected q to be typed in add mode")
	}
	if _, cmd := press(t, typing, tea.KeyMsg{Type: tea.KeyCtrlC}); !isQuit(cmd) {
		t.Errorf("expected ctrl+c to quit in add mode")
	}
}

func TestSaveFailureEndsSession(t *testing.T) {
	st, err := store.Open(filepath.Join(t.TempDir(), "missing", "todos.json"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	m := New(st, nil)

	m, cmd := press(t, m, runes("a"), runes("Buy milk"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Err() == nil {
		t.Fatalf("expected storage error")
	}
	if !isQuit(cmd) {
		t.Errorf("expected session to end")
	}
}

func TestView_ListsTasks(t *testing.T) {
	m, _ := newTestModel(t, "Buy milk", "Walk the dog")
	m, _ = press(t, m, runes("j"))

	view := m.View()
	for _, want := range []string{"Buy milk", "Walk the dog", "> "} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestIsTTY_NonFile(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Errorf("expected buffer not to be a terminal")
	}
}

func TestEdit_LongTextSurvives(t *testing.T) {
	long := strings.Repeat("x", 300)
	m, st := newTestModel(t, long)

	m, _ = press(t, m, runes("j"), runes("e"), runes("!"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Warning() != "" {
		t.Errorf("unexpected warning %q", m.Warning())
	}
	if got := st.Tasks()[0].Text; got != long+"!" {
		t.Errorf("expected %d chars, got %d", len(long)+1, len(got))
	}
}

func TestAdd_LongTextSurvives(t *testing.T) {
	long := strings.Repeat("y", 300)
	m, st := newTestModel(t)

	press(t, m, runes("a"), runes(long), tea.KeyMsg{Type: tea.KeyEnter})

	tasks := st.Tasks()
	if len(tasks) != 1 || tasks[0].Text != long {
		t.Fatalf("expected one task of %d chars, got %+v", len(long), tasks)
	}
}
