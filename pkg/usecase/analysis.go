package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/citops/promisetrack/pkg/domain/interfaces"
	"github.com/citops/promisetrack/pkg/domain/model"
	"github.com/citops/promisetrack/pkg/domain/types"
	"github.com/citops/promisetrack/pkg/service/classifier"
	"github.com/citops/promisetrack/pkg/service/deadline"
	"github.com/citops/promisetrack/pkg/utils/logging"
)

// AnalysisUseCase runs executor replies through promise classification and
// deadline extraction, then records the outcome on the task.
type AnalysisUseCase struct {
	repo           interfaces.Repository
	promise        *classifier.PromiseClassifier
	extractor      *classifier.DeadlineExtractor
	promisedStatus types.TaskStatus
	now            func() time.Time
	locks          *taskLocks
}

// Analyze classifies one executor reply for the given task and persists
// the resulting status and deadline. Concurrent calls for the same task
// are serialized; calls for different tasks proceed independently.
//
// A classifier outage is not an error here: the reply is treated as no
// promise, the failure is recorded on the returned result, and the task
// stays in moderation.
func (uc *AnalysisUseCase) Analyze(ctx context.Context, taskID int64, responseText string) (*model.AnalysisResult, error) {
	if responseText == "" {
		return nil, goerr.New("response text is required", goerr.V("taskID", taskID))
	}

	unlock := uc.locks.lock(taskID)
	defer unlock()

	task, err := uc.repo.Task().Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, goerr.Wrap(err, "failed to get task", goerr.V("taskID", taskID))
	}

	now := uc.now().UTC()
	result := model.NewAnalysisResult(taskID, responseText, now)
	logger := logging.From(ctx)

	verdict, rawAnswer, err := uc.promise.IsPromise(ctx, responseText)
	if err != nil {
		logger.Warn("promise classification unavailable, keeping task in moderation",
			"taskID", taskID, "error", err)
		result.Failure = err.Error()
		// The raw-answer field carries the failure outcome so the audit
		// record shows why no verdict was reached.
		result.PromiseRaw = err.Error()
		if err := uc.persist(ctx, task, types.TaskStatusModerated, types.Deadline{}, responseText, now); err != nil {
			return nil, err
		}
		return result, nil
	}
	result.PromiseRaw = rawAnswer

	if !verdict {
		if err := uc.persist(ctx, task, types.TaskStatusModerated, types.Deadline{}, responseText, now); err != nil {
			return nil, err
		}
		return result, nil
	}

	result.IsPromise = true

	token, err := uc.extractor.ExtractDeadline(ctx, responseText, now)
	if err != nil {
		logger.Warn("deadline extraction failed, deadline left unset",
			"taskID", taskID, "error", err)
		result.Deadline = types.ErrorDeadline(token)
		result.DeadlineStatus = types.DeadlineStatusError
		if err := uc.persist(ctx, task, uc.promisedStatus, types.NotSetDeadline(), responseText, now); err != nil {
			return nil, err
		}
		return result, nil
	}

	d := deadline.ParseToken(token)
	if d.TooFar(now) {
		result.IsPromise = false
		result.Deadline = types.TooFarDeadline()
		result.ForgottenReason = model.ForgottenReasonDeadlineExceedsOneYear
		if err := uc.persist(ctx, task, types.TaskStatusModerated, types.TooFarDeadline(), responseText, now); err != nil {
			return nil, err
		}
		return result, nil
	}

	result.Deadline = d
	result.DeadlineStatus = types.DeadlineStatusValid
	if err := uc.persist(ctx, task, uc.promisedStatus, d, responseText, now); err != nil {
		return nil, err
	}
	return result, nil
}

func (uc *AnalysisUseCase) persist(ctx context.Context, task *model.Task, status types.TaskStatus, d types.Deadline, resolution string, now time.Time) error {
	task.Status = status
	task.Deadline = d
	task.Resolution = resolution
	task.UpdatedAt = now
	if status.IsFinal() && task.FinalStatusAt == nil {
		task.FinalStatusAt = &now
	}

	if _, err := uc.repo.Task().Update(ctx, task); err != nil {
		return goerr.Wrap(err, "failed to record analysis outcome", goerr.V("taskID", task.ID))
	}
	return nil
}

// taskLocks serializes analysis per task ID. Mutexes are created on first
// use and kept for the process lifetime; the ID space is small enough
// that this never needs eviction.
type taskLocks struct {
	mu   sync.Mutex
	held map[int64]*sync.Mutex
}

func newTaskLocks() *taskLocks {
	return &taskLocks{held: make(map[int64]*sync.Mutex)}
}

func (l *taskLocks) lock(id int64) func() {
	l.mu.Lock()
	m, ok := l.held[id]
	if !ok {
		m = &sync.Mutex{}
		l.held[id] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
