package store

import "errors"

// Validation rejections. The list is left unchanged and nothing is written.
var (
	// ErrEmptyText is returned when task text is empty after trimming.
	ErrEmptyText = errors.New("todo cannot be empty")

	// ErrNoSelection is returned when an index does not reference a task.
	ErrNoSelection = errors.New("please select a todo first")
)

// Lookup failures for ID references.
var (
	ErrNotFound  = errors.New("task not found")
	ErrAmbiguous = errors.New("ambiguous task id")
)

// IsRejection reports whether err is a validation rejection rather than a
// storage failure.
func IsRejection(err error) bool {
	return errors.Is(err, ErrEmptyText) || errors.Is(err, ErrNoSelection)
}
