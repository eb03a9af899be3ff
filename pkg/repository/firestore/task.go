package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/citops/promisetrack/pkg/domain/interfaces"
	"github.com/citops/promisetrack/pkg/domain/model"
	"github.com/citops/promisetrack/pkg/domain/types"
)

type taskDocument struct {
	ID            int64      `firestore:"id"`
	Status        string     `firestore:"status"`
	Description   string     `firestore:"description"`
	Resolution    string     `firestore:"resolution"`
	Deadline      string     `firestore:"deadline"`
	ExecutorID    *int64     `firestore:"executor_id"`
	CreatedAt     time.Time  `firestore:"created_at"`
	UpdatedAt     time.Time  `firestore:"updated_at"`
	FinalStatusAt *time.Time `firestore:"final_status_at"`
}

func newTaskDocument(t *model.Task) *taskDocument {
	return &taskDocument{
		ID:            t.ID,
		Status:        t.Status.Normalize().String(),
		Description:   t.Description,
		Resolution:    t.Resolution,
		Deadline:      t.Deadline.Encode(),
		ExecutorID:    t.ExecutorID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
		FinalStatusAt: t.FinalStatusAt,
	}
}

func (d *taskDocument) toModel() *model.Task {
	return &model.Task{
		ID:            d.ID,
		Status:        types.TaskStatus(d.Status).Normalize(),
		Description:   d.Description,
		Resolution:    d.Resolution,
		Deadline:      types.DecodeDeadline(d.Deadline),
		ExecutorID:    d.ExecutorID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
		FinalStatusAt: d.FinalStatusAt,
	}
}

type taskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTaskRepository(client *firestore.Client) *taskRepository {
	return &taskRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *taskRepository) tasksCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_tasks"
	}
	return "tasks"
}

func (r *taskRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *taskRepository) taskCounterDoc() string {
	return "task_counter"
}

func (r *taskRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc(r.taskCounterDoc())

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		nextID = currentValue.(int64) + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) (*model.Task, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := newTaskDocument(task)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.tasksCollection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create task")
	}

	return doc.toModel(), nil
}

func (r *taskRepository) Get(ctx context.Context, id int64) (*model.Task, error) {
	docRef := r.client.Collection(r.tasksCollection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	var taskDoc taskDocument
	if err := doc.DataTo(&taskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("id", id))
	}

	return taskDoc.toModel(), nil
}

func (r *taskRepository) List(ctx context.Context) ([]*model.Task, error) {
	iter := r.client.Collection(r.tasksCollection()).
		OrderBy("created_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	return collectTasks(iter)
}

func (r *taskRepository) ListWithDeadline(ctx context.Context) ([]*model.Task, error) {
	iter := r.client.Collection(r.tasksCollection()).
		Where("deadline", "!=", "").
		Documents(ctx)
	defer iter.Stop()

	return collectTasks(iter)
}

func collectTasks(iter *firestore.DocumentIterator) ([]*model.Task, error) {
	var tasks []*model.Task
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate tasks")
		}

		var taskDoc taskDocument
		if err := doc.DataTo(&taskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal task")
		}

		tasks = append(tasks, taskDoc.toModel())
	}

	return tasks, nil
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	docRef := r.client.Collection(r.tasksCollection()).Doc(fmt.Sprintf("%d", task.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", task.ID))
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("id", task.ID))
	}

	var existing taskDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal task", goerr.V("id", task.ID))
	}

	updated := newTaskDocument(task)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update task", goerr.V("id", task.ID))
	}

	return updated.toModel(), nil
}

func (r *taskRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.tasksCollection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "task not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get task", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete task", goerr.V("id", id))
	}

	return nil
}
