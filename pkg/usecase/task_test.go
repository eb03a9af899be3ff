package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/citops/promisetrack/pkg/domain/types"
	"github.com/citops/promisetrack/pkg/usecase"
)

func TestCreateTask(t *testing.T) {
	uc, _ := newAnalysisFixture(t, &routedBackend{})
	ctx := context.Background()

	t.Run("creates moderated task", func(t *testing.T) {
		executorID := int64(7)
		task, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{
			Description: "Broken swing in playground",
			ExecutorID:  &executorID,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ID == 0 {
			t.Error("ID should be assigned")
		}
		if task.Status != types.TaskStatusModerated {
			t.Errorf("unexpected status: %q", task.Status)
		}
		if task.ExecutorID == nil || *task.ExecutorID != executorID {
			t.Errorf("executor not preserved: %v", task.ExecutorID)
		}
	})

	t.Run("rejects empty description", func(t *testing.T) {
		if _, err := uc.Task.CreateTask(ctx, usecase.CreateTaskInput{}); err == nil {
			t.Error("expected error for empty description")
		}
	})
}

func TestGetAndListTasks(t *testing.T) {
	uc, _ := newAnalysisFixture(t, &routedBackend{})
	ctx := context.Background()

	created := createTask(t, uc, "Get me")

	got, err := uc.Task.GetTask(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("unexpected task: %d", got.ID)
	}

	if _, err := uc.Task.GetTask(ctx, 424242); !errors.Is(err, usecase.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}

	tasks, err := uc.Task.ListTasks(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("unexpected task count: %d", len(tasks))
	}
}

func TestCompleteTask(t *testing.T) {
	uc, repo := newAnalysisFixture(t, &routedBackend{})
	ctx := context.Background()

	created := createTask(t, uc, "Finish me")

	completed, err := uc.Task.CompleteTask(ctx, created.ID, "Мусор убран")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if completed.Status != types.TaskStatusCompleted {
		t.Errorf("unexpected status: %q", completed.Status)
	}
	if completed.Resolution != "Мусор убран" {
		t.Errorf("unexpected resolution: %q", completed.Resolution)
	}
	if completed.FinalStatusAt == nil {
		t.Error("FinalStatusAt should be stamped")
	}

	stored, err := repo.Task().Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}
	if stored.Status != types.TaskStatusCompleted {
		t.Errorf("status not persisted: %q", stored.Status)
	}

	if _, err := uc.Task.CompleteTask(ctx, 313131, "x"); !errors.Is(err, usecase.ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
}
