package types

import "fmt"

// TaskStatus represents the lifecycle status of a complaint task
type TaskStatus string

const (
	// TaskStatusModerated is the initial status of a newly created task,
	// and the status a task is restored to when an executor reply does
	// not constitute a promise.
	TaskStatusModerated TaskStatus = "moderated"
	// TaskStatusClosedWithPromise marks a task closed on the strength of
	// an executor promise with a tracked deadline.
	TaskStatusClosedWithPromise TaskStatus = "closed_with_promise"
	// TaskStatusCompleted marks a task explicitly completed by an operator.
	TaskStatusCompleted TaskStatus = "completed"
	// TaskStatusClosed marks a task closed without a tracked promise
	// (deployment-policy alternative to closed_with_promise).
	TaskStatusClosed TaskStatus = "closed"
)

// AllTaskStatuses returns all valid task statuses
func AllTaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusModerated,
		TaskStatusClosedWithPromise,
		TaskStatusCompleted,
		TaskStatusClosed,
	}
}

// IsValid checks if the task status is valid
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusModerated,
		TaskStatusClosedWithPromise,
		TaskStatusCompleted,
		TaskStatusClosed:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the status means the task has left active
// moderation. FinalStatusAt is stamped when a task first enters one of
// these statuses.
func (s TaskStatus) IsFinal() bool {
	switch s {
	case TaskStatusClosedWithPromise,
		TaskStatusCompleted,
		TaskStatusClosed:
		return true
	default:
		return false
	}
}

// Normalize returns the status, treating empty as TaskStatusModerated for
// backward compatibility with records written before the status column
// became mandatory.
func (s TaskStatus) Normalize() TaskStatus {
	if s == "" {
		return TaskStatusModerated
	}
	return s
}

// String returns the string representation of the task status
func (s TaskStatus) String() string {
	return string(s)
}

// ParseTaskStatus parses a string into a TaskStatus
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid task status: %s", s)
	}
	return status, nil
}
