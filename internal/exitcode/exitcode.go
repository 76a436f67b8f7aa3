// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, empty text, no such task).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a remote API/network error.
	BackendError = 3

	// StorageError indicates the todo file could not be written.
	StorageError = 4
)
