// Package output provides formatters for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"todo/internal/task"
)

// Format selects how a task list is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s", s)
	}
}

// Entry pairs a task with its 1-based display number.
type Entry struct {
	Num  int
	Task task.Task
}

// Write renders entries in the given format.
func Write(w io.Writer, f Format, entries []Entry) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, entries)
	case FormatYAML:
		return writeYAML(w, entries)
	default:
		for _, e := range entries {
			FormatTask(w, e.Num, e.Task)
		}
		return nil
	}
}

// FormatTask formats a task line.
// Format: "{N:>4}  {STATUS}  {TEXT}\n" (4-wide right-aligned number, status
// marker, text)
func FormatTask(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s  %s\n", num, t.Status(), normalizeText(t.Text))
}

// FormatTaskWithID is FormatTask with the short ID appended for reference.
func FormatTaskWithID(w io.Writer, num int, t task.Task) {
	fmt.Fprintf(w, "%4d  %s  %s  (%s)\n", num, t.Status(), normalizeText(t.Text), ShortID(t.ID))
}

// ShortID returns the first 8 characters of an ID.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func writeJSON(w io.Writer, entries []Entry) error {
	tasks := make([]task.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.Task
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}

func writeYAML(w io.Writer, entries []Entry) error {
	tasks := make([]task.Task, len(entries))
	for i, e := range entries {
		tasks[i] = e.Task
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tasks); err != nil {
		return err
	}
	return enc.Close()
}

// normalizeText normalizes task text for single-line display.
// - Newlines are replaced with spaces
// - Empty or whitespace-only text becomes "(untitled)"
func normalizeText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
