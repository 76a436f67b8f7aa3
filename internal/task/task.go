// Package task defines the to-do item and its persisted shape.
package task

import "strings"

// Task represents a single to-do item.
// Field names and JSON keys match the todos.json format; ID is optional on
// disk and assigned on load when absent.
type Task struct {
	ID        string `json:"id,omitempty" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// Status returns the one-character status marker for display.
func (t Task) Status() string {
	if t.Completed {
		return "✓"
	}
	return "○"
}

// NormalizeText trims leading and trailing whitespace from input text.
// An empty result means the text is not acceptable for a task.
func NormalizeText(s string) string {
	return strings.TrimSpace(s)
}
