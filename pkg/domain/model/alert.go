package model

import "github.com/citops/promisetrack/pkg/domain/types"

// DeadlineAlert is the structured event emitted when a task's deadline
// falls inside the monitor's lookahead window.
type DeadlineAlert struct {
	TaskID      int64          `json:"task_id"`
	Description string         `json:"description"`
	Deadline    types.Deadline `json:"deadline"`
	DaysLeft    int            `json:"days_left"`
}
