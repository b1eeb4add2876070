package models

import (
	"fmt"
	"time"

	"github.com/dkravets/taskkeeper/internal/common"
)

// Status is the closed set of task states. Any other value is invalid input.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// StatusFilterAll is the list-filter sentinel that disables status filtering.
// It is never a valid stored status.
const StatusFilterAll = "ALL"

// ParseStatus validates s against the closed set. The empty string is not
// accepted here; callers decide whether an absent status defaults to todo.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: invalid status %q", common.ErrorValidation, s)
	}
}

// Task is a work item owned by exactly one user. UserID never changes after
// creation; timestamps are assigned by the store.
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
