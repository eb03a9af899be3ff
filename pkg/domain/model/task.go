package model

import (
	"time"

	"github.com/citops/promisetrack/pkg/domain/types"
)

// Task represents a municipal complaint under resolution
type Task struct {
	ID          int64            `json:"id"`
	Status      types.TaskStatus `json:"status"`
	Description string           `json:"description"`
	Resolution  string           `json:"resolution,omitempty"`
	Deadline    types.Deadline   `json:"deadline,omitempty"`
	ExecutorID  *int64           `json:"executor_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	// FinalStatusAt is the date the task first left active status.
	// Set once, never reset.
	FinalStatusAt *time.Time `json:"final_status_at,omitempty"`
}
