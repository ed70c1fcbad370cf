package board

import "errors"

var (
	// ErrBlankText is returned when task text is empty or whitespace only.
	ErrBlankText = errors.New("task text cannot be blank")
	// ErrTaskNotFound is returned when no task matches the (date, id) pair.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskCompleted is returned when editing a completed task.
	ErrTaskCompleted = errors.New("completed tasks cannot be edited")
	// ErrNoEdit is returned when committing or cancelling without an active edit.
	ErrNoEdit = errors.New("no edit in progress")
)
