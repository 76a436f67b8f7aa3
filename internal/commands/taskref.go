package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"todo/internal/exitcode"
	"todo/internal/store"
)

// MinIDPrefix is the shortest ID prefix accepted as a task reference.
const MinIDPrefix = 4

// TaskRef represents a parsed task reference.
type TaskRef struct {
	Num int    // 1-based task number, 0 when ID is set
	ID  string // ID or ID prefix, empty when Num is set
}

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrInvalidTaskRef indicates a reference that is neither a number nor
	// an ID prefix.
	ErrInvalidTaskRef = errors.New("invalid task reference")
)

// ParseTaskRef parses the task reference at the front of args and returns
// it with the remaining args.
//
// Parsing rules:
// 1. All digits → 1-based task number (positions as shown by list)
// 2. At least MinIDPrefix hex digits or dashes → ID prefix
// 3. Otherwise → error: invalid task reference: <ref>
//
// Rule 1 wins, so an ID prefix made only of digits (1234) is read as a
// task number. Add a letter or dash from the ID to reach such a task.
func ParseTaskRef(args []string) (TaskRef, []string, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, nil, ErrTaskRefRequired
	}

	arg := strings.TrimSpace(args[0])
	rest := args[1:]

	if isAllDigits(arg) {
		num, err := strconv.Atoi(arg)
		if err != nil {
			return TaskRef{}, nil, fmt.Errorf("%w: %s", ErrInvalidTaskRef, arg)
		}
		return TaskRef{Num: num}, rest, nil
	}

	if len(arg) >= MinIDPrefix && isIDChars(arg) {
		return TaskRef{ID: strings.ToLower(arg)}, rest, nil
	}

	return TaskRef{}, nil, fmt.Errorf("%w: %s", ErrInvalidTaskRef, arg)
}

// Index resolves the reference to a 0-based store index.
// Numbers are not range-checked here; the store rejects them.
func (r TaskRef) Index(st *store.Store) (int, error) {
	if r.ID != "" {
		return st.IndexOf(r.ID)
	}
	return r.Num - 1, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isIDChars returns true if s looks like a UUID fragment.
func isIDChars(s string) bool {
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r == '-':
		default:
			return false
		}
	}
	return true
}

// fail reports a store or reference error and returns the exit code.
func fail(errOut io.Writer, ref TaskRef, err error) int {
	switch {
	case errors.Is(err, store.ErrNoSelection) && ref.ID == "":
		fmt.Fprintf(errOut, "error: task number out of range: %d\n", ref.Num)
		return exitcode.UserError
	case store.IsRejection(err),
		errors.Is(err, store.ErrNotFound),
		errors.Is(err, store.ErrAmbiguous),
		errors.Is(err, ErrTaskRefRequired),
		errors.Is(err, ErrInvalidTaskRef):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	default:
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}
}
