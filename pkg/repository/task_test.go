package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/citops/promisetrack/pkg/domain/interfaces"
	"github.com/citops/promisetrack/pkg/domain/model"
	"github.com/citops/promisetrack/pkg/domain/types"
	"github.com/citops/promisetrack/pkg/repository/firestore"
	"github.com/citops/promisetrack/pkg/repository/memory"
)

func runTaskRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create creates task with auto-increment ID", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		task1 := &model.Task{
			Description: "Broken heating in building 12",
		}

		created1, err := repo.Task().Create(ctx, task1)
		gt.NoError(t, err).Required()

		gt.Value(t, created1.ID).NotEqual(int64(0))
		gt.Value(t, created1.Description).Equal(task1.Description)
		gt.Value(t, created1.Status).Equal(types.TaskStatusModerated)
		gt.Bool(t, created1.CreatedAt.IsZero()).False()
		gt.Bool(t, created1.UpdatedAt.IsZero()).False()

		created2, err := repo.Task().Create(ctx, &model.Task{
			Description: "Streetlight out on Lenina street",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created2.ID).NotEqual(created1.ID)
	})

	t.Run("Get retrieves existing task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		executorID := int64(42)
		created, err := repo.Task().Create(ctx, &model.Task{
			Description: "Leaking roof",
			ExecutorID:  &executorID,
		})
		gt.NoError(t, err).Required()

		retrieved, err := repo.Task().Get(ctx, created.ID)
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.ID).Equal(created.ID)
		gt.Value(t, retrieved.Description).Equal(created.Description)
		gt.Value(t, retrieved.ExecutorID).NotNil()
		gt.Value(t, *retrieved.ExecutorID).Equal(executorID)
	})

	t.Run("Get wraps ErrNotFound for missing task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Task().Get(ctx, time.Now().UnixNano())
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Update updates existing task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			Description: "Pothole on main road",
		})
		gt.NoError(t, err).Required()

		created.Status = types.TaskStatusClosedWithPromise
		created.Resolution = "Работы будут выполнены до 30.09.2025г."
		created.Deadline = types.DeadlineOf(time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC))

		updated, err := repo.Task().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.ID).Equal(created.ID)
		gt.Value(t, updated.Status).Equal(types.TaskStatusClosedWithPromise)
		gt.Value(t, updated.Resolution).Equal(created.Resolution)
		gt.Value(t, updated.Deadline.Encode()).Equal("30.09.25")
	})

	t.Run("Update wraps ErrNotFound for missing task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Task().Update(ctx, &model.Task{
			ID:          time.Now().UnixNano(),
			Description: "ghost",
		})
		gt.Value(t, err).NotNil()
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			Description: "Garbage not collected",
		})
		gt.NoError(t, err).Required()

		created.Resolution = "Мусор убран"
		updated, err := repo.Task().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Bool(t, updated.CreatedAt.Equal(created.CreatedAt)).True()
	})

	t.Run("Delete deletes existing task", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			Description: "To be deleted",
		})
		gt.NoError(t, err).Required()

		err = repo.Task().Delete(ctx, created.ID)
		gt.NoError(t, err).Required()

		_, err = repo.Task().Get(ctx, created.ID)
		gt.Value(t, err).NotNil()
	})

	t.Run("List retrieves all tasks", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			_, err := repo.Task().Create(ctx, &model.Task{
				Description: "Task " + string(rune('A'+i)),
			})
			gt.NoError(t, err).Required()
		}

		tasks, err := repo.Task().List(ctx)
		gt.NoError(t, err).Required()

		gt.Number(t, len(tasks)).GreaterOrEqual(3)
	})

	t.Run("ListWithDeadline returns only tasks with deadline field", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		// No deadline at all
		_, err := repo.Task().Create(ctx, &model.Task{
			Description: "No promise yet",
		})
		gt.NoError(t, err).Required()

		// Concrete date
		withDate, err := repo.Task().Create(ctx, &model.Task{
			Description: "Promised with date",
		})
		gt.NoError(t, err).Required()
		withDate.Deadline = types.DeadlineOf(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
		withDate.Status = types.TaskStatusClosedWithPromise
		_, err = repo.Task().Update(ctx, withDate)
		gt.NoError(t, err).Required()

		// Sentinel deadline is still a populated field
		withSentinel, err := repo.Task().Create(ctx, &model.Task{
			Description: "Promised without date",
		})
		gt.NoError(t, err).Required()
		withSentinel.Deadline = types.NotSetDeadline()
		_, err = repo.Task().Update(ctx, withSentinel)
		gt.NoError(t, err).Required()

		tasks, err := repo.Task().ListWithDeadline(ctx)
		gt.NoError(t, err).Required()
		gt.Number(t, len(tasks)).Equal(2)

		ids := map[int64]bool{}
		for _, task := range tasks {
			ids[task.ID] = true
		}
		gt.Bool(t, ids[withDate.ID]).True()
		gt.Bool(t, ids[withSentinel.ID]).True()
	})

	t.Run("Deadline round-trips through storage", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			Description: "Deadline codec check",
		})
		gt.NoError(t, err).Required()

		created.Deadline = types.TooFarDeadline()
		_, err = repo.Task().Update(ctx, created)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Task().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.Deadline.Kind()).Equal(types.DeadlineTooFar)
	})

	t.Run("FinalStatusAt survives round trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Task().Create(ctx, &model.Task{
			Description: "Final status check",
		})
		gt.NoError(t, err).Required()

		finalAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		created.Status = types.TaskStatusCompleted
		created.FinalStatusAt = &finalAt
		_, err = repo.Task().Update(ctx, created)
		gt.NoError(t, err).Required()

		retrieved, err := repo.Task().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.FinalStatusAt).NotNil()
		gt.Bool(t, retrieved.FinalStatusAt.Equal(finalAt)).True()
	})
}

func TestTaskRepository_Memory(t *testing.T) {
	runTaskRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestTaskRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	runTaskRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, "",
			firestore.WithCollectionPrefix("test-"+uuid.NewString()[:8]+"-"),
		)
		gt.NoError(t, err).Required()
		return repo
	})
}
