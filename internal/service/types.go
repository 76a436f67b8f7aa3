package service

// Remote task status values.
const (
	StatusNeedsAction = "needsAction"
	StatusCompleted   = "completed"
)

// Task represents a task item on the remote side.
type Task struct {
	ID     string
	Title  string
	Status string
}

// TaskList represents a remote task list.
type TaskList struct {
	ID        string
	Title     string
	IsDefault bool
}
