package usecase

import (
	"time"

	"github.com/citops/promisetrack/pkg/domain/interfaces"
	"github.com/citops/promisetrack/pkg/domain/types"
	"github.com/citops/promisetrack/pkg/service/classifier"
)

// UseCases aggregates all use cases with shared dependencies.
type UseCases struct {
	Task     *TaskUseCase
	Analysis *AnalysisUseCase
}

type config struct {
	promisedStatus types.TaskStatus
	now            func() time.Time
}

type Option func(*config)

// WithPromisedStatus sets the status assigned to a task when a promise
// with a usable deadline is found.
func WithPromisedStatus(status types.TaskStatus) Option {
	return func(c *config) {
		c.promisedStatus = status
	}
}

// WithNow replaces the clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(c *config) {
		c.now = now
	}
}

func New(repo interfaces.Repository, promise *classifier.PromiseClassifier, extractor *classifier.DeadlineExtractor, opts ...Option) *UseCases {
	cfg := &config{
		promisedStatus: types.TaskStatusClosedWithPromise,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return &UseCases{
		Task: &TaskUseCase{
			repo: repo,
			now:  cfg.now,
		},
		Analysis: &AnalysisUseCase{
			repo:           repo,
			promise:        promise,
			extractor:      extractor,
			promisedStatus: cfg.promisedStatus,
			now:            cfg.now,
			locks:          newTaskLocks(),
		},
	}
}
