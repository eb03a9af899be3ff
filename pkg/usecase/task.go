package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/citops/promisetrack/pkg/domain/interfaces"
	"github.com/citops/promisetrack/pkg/domain/model"
	"github.com/citops/promisetrack/pkg/domain/types"
)

// TaskUseCase covers CRUD-level task operations.
type TaskUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

type CreateTaskInput struct {
	Description string
	ExecutorID  *int64
}

func (uc *TaskUseCase) CreateTask(ctx context.Context, input CreateTaskInput) (*model.Task, error) {
	if input.Description == "" {
		return nil, goerr.New("description is required")
	}

	task := &model.Task{
		Status:      types.TaskStatusModerated,
		Description: input.Description,
		ExecutorID:  input.ExecutorID,
	}

	created, err := uc.repo.Task().Create(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create task")
	}
	return created, nil
}

func (uc *TaskUseCase) GetTask(ctx context.Context, id int64) (*model.Task, error) {
	task, err := uc.repo.Task().Get(ctx, id)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}
	return task, nil
}

func (uc *TaskUseCase) ListTasks(ctx context.Context) ([]*model.Task, error) {
	tasks, err := uc.repo.Task().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list tasks")
	}
	return tasks, nil
}

// CompleteTask marks a task as done by an operator. The resolution text is
// recorded as-is; completion does not go through promise analysis.
func (uc *TaskUseCase) CompleteTask(ctx context.Context, id int64, resolution string) (*model.Task, error) {
	task, err := uc.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	task.Status = types.TaskStatusCompleted
	task.Resolution = resolution
	task.UpdatedAt = now
	if task.FinalStatusAt == nil {
		task.FinalStatusAt = &now
	}

	updated, err := uc.repo.Task().Update(ctx, task)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to complete task", goerr.V("id", id))
	}
	return updated, nil
}
