// Package store owns the ordered task list and its JSON file.
//
// Every mutating operation validates its input, applies the change in
// memory, and rewrites the whole file before returning. Validation
// rejections (ErrEmptyText, ErrNoSelection) leave the list untouched. Save
// failures are returned as-is; the in-memory change stays applied and the
// caller is expected to treat the error as fatal.
package store

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"todo/internal/logging"
	"todo/internal/task"
)

// NoSelection is the index used when nothing is selected.
const NoSelection = -1

// Store holds the task list bound to one file.
type Store struct {
	mu     sync.Mutex
	path   string
	tasks  []task.Task
	logger *log.Logger
	newID  func() string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings and save diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithIDGenerator overrides how new task IDs are generated.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Open creates a store bound to path and loads its contents.
func Open(path string, opts ...Option) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("todo file path is empty")
	}

	s := &Store{
		path:   path,
		logger: logging.Discard(),
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.tasks = Load(path, s.logger)
	return s, nil
}

// Path returns the file the store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Reload replaces the in-memory list with the file contents.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = Load(s.path, s.logger)
}

// Save writes the current list to the file.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	if err := Save(s.path, s.tasks); err != nil {
		s.logger.Error("save failed", "path", s.path, "err", err)
		return err
	}
	s.logger.Debug("saved todo file", "path", s.path, "tasks", len(s.tasks))
	return nil
}

// Tasks returns a copy of the list in order.
func (s *Store) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the task at index.
func (s *Store) Get(index int) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	return s.tasks[index], nil
}

// IndexOf resolves a task ID, or a unique prefix of one, to its position.
func (s *Store) IndexOf(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id = strings.ToLower(strings.TrimSpace(id))
	if id == "" {
		return NoSelection, ErrNotFound
	}

	found := NoSelection
	for i, t := range s.tasks {
		tid := strings.ToLower(t.ID)
		if tid == id {
			return i, nil
		}
		if strings.HasPrefix(tid, id) {
			if found != NoSelection {
				return NoSelection, fmt.Errorf("%w: %s", ErrAmbiguous, id)
			}
			found = i
		}
	}
	if found == NoSelection {
		return NoSelection, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return found, nil
}

// Add appends a new open task with the trimmed text and saves.
func (s *Store) Add(text string) (task.Task, error) {
	text = task.NormalizeText(text)
	if text == "" {
		return task.Task{}, ErrEmptyText
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	t := task.Task{ID: s.newID(), Text: text}
	s.tasks = append(s.tasks, t)
	return t, s.saveLocked()
}

// Toggle inverts the completion state of the task at index and saves.
func (s *Store) Toggle(index int) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	s.tasks[index].Completed = !s.tasks[index].Completed
	return s.tasks[index], s.saveLocked()
}

// Edit replaces the text of the task at index and saves.
func (s *Store) Edit(index int, newText string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	newText = task.NormalizeText(newText)
	if newText == "" {
		return task.Task{}, ErrEmptyText
	}
	s.tasks[index].Text = newText
	return s.tasks[index], s.saveLocked()
}

// Delete removes the task at index, shifting later tasks down, and saves.
// It returns the removed task.
func (s *Store) Delete(index int) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIndex(index); err != nil {
		return task.Task{}, err
	}
	removed := s.tasks[index]
	s.tasks = append(s.tasks[:index], s.tasks[index+1:]...)
	return removed, s.saveLocked()
}

func (s *Store) checkIndex(index int) error {
	if index < 0 || index >= len(s.tasks) {
		return fmt.Errorf("%w: index %d", ErrNoSelection, index)
	}
	return nil
}
