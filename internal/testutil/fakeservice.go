// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"strings"
	"sync"

	"todo/internal/service"
)

// DefaultListID is the ID used for the default list.
const DefaultListID = "@default"

// ErrNotFound is returned when a resource is not found.
var ErrNotFound = errors.New("not found")

// ErrAmbiguous is returned when multiple matches are found.
var ErrAmbiguous = errors.New("ambiguous")

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu    sync.RWMutex
	lists []service.TaskList
	tasks map[string][]service.Task // listID -> tasks

	// Error injection for testing
	DefaultListErr error
	ListListsErr   error
	ResolveListErr error
	CreateTaskErr  error

	// FailCreateAfter makes CreateTask fail with CreateTaskErr once this
	// many tasks were created. Zero fails immediately.
	FailCreateAfter int
}

// NewFakeService creates a new FakeService with a default list.
func NewFakeService() *FakeService {
	fs := &FakeService{
		tasks: make(map[string][]service.Task),
	}
	fs.lists = []service.TaskList{
		{ID: DefaultListID, Title: "My Tasks", IsDefault: true},
	}
	fs.tasks[DefaultListID] = nil
	return fs
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, title string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.TaskList{ID: id, Title: title, IsDefault: false})
	if _, ok := f.tasks[id]; !ok {
		f.tasks[id] = nil
	}
}

// Tasks returns the tasks created in a list, in creation order.
func (f *FakeService) Tasks(listID string) []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks[listID]))
	copy(result, f.tasks[listID])
	return result
}

// DefaultList implements service.Service.
func (f *FakeService) DefaultList(ctx context.Context) (service.TaskList, error) {
	if f.DefaultListErr != nil {
		return service.TaskList{}, f.DefaultListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lists {
		if l.IsDefault {
			return l, nil
		}
	}
	return service.TaskList{}, errors.New("no default list")
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.TaskList, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.TaskList, len(f.lists))
	copy(result, f.lists)
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.TaskList, error) {
	if f.ResolveListErr != nil {
		return service.TaskList{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))

	var matches []service.TaskList
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Title)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.TaskList{}, ErrNotFound
	case 1:
		return matches[0], nil
	default:
		return service.TaskList{}, ErrAmbiguous
	}
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, listID, title string, completed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.CreateTaskErr != nil && f.created() >= f.FailCreateAfter {
		return f.CreateTaskErr
	}
	if _, ok := f.tasks[listID]; !ok {
		return ErrNotFound
	}

	status := service.StatusNeedsAction
	if completed {
		status = service.StatusCompleted
	}
	id := strings.ToLower(strings.ReplaceAll(title, " ", "-"))
	f.tasks[listID] = append(f.tasks[listID], service.Task{
		ID:     id,
		Title:  title,
		Status: status,
	})
	return nil
}

func (f *FakeService) created() int {
	n := 0
	for _, tasks := range f.tasks {
		n += len(tasks)
	}
	return n
}
