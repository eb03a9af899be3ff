package interfaces

import (
	"context"

	"github.com/citops/promisetrack/pkg/domain/model"
)

// TaskRepository defines the interface for Task data access
type TaskRepository interface {
	// Create creates a new task with auto-generated ID
	Create(ctx context.Context, task *model.Task) (*model.Task, error)

	// Get retrieves a task by ID. A miss wraps ErrNotFound.
	Get(ctx context.Context, id int64) (*model.Task, error)

	// List retrieves all tasks, newest first
	List(ctx context.Context) ([]*model.Task, error)

	// ListWithDeadline retrieves tasks whose deadline field is populated
	// (dates and sentinels alike; the caller filters sentinels)
	ListWithDeadline(ctx context.Context) ([]*model.Task, error)

	// Update replaces an existing task record
	Update(ctx context.Context, task *model.Task) (*model.Task, error)

	// Delete deletes a task by ID
	Delete(ctx context.Context, id int64) error
}
