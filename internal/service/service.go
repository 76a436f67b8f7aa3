// Package service defines the backend-agnostic interface for the remote
// task mirror.
package service

import (
	"context"
	"errors"
)

// ErrAuth marks failures to obtain credentials for the backend.
var ErrAuth = errors.New("auth error")

// Service defines the operations push needs from a remote task backend.
// Commands never import a backend SDK directly.
type Service interface {
	// DefaultList returns the user's default task list.
	DefaultList(ctx context.Context) (TaskList, error)

	// ListLists returns all task lists in API order.
	ListLists(ctx context.Context) ([]TaskList, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns error if not found or ambiguous.
	ResolveList(ctx context.Context, name string) (TaskList, error)

	// CreateTask creates a task in the specified list, already completed
	// when completed is true.
	CreateTask(ctx context.Context, listID, title string, completed bool) error
}
