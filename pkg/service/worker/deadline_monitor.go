package worker

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/citops/promisetrack/pkg/domain/interfaces"
	"github.com/citops/promisetrack/pkg/domain/model"
	"github.com/citops/promisetrack/pkg/utils/errutil"
	"github.com/citops/promisetrack/pkg/utils/logging"
)

const (
	DefaultPollInterval   = time.Hour
	DefaultLookaheadDays  = 4
	DefaultFailureBackoff = time.Minute
)

// DeadlineMonitor periodically scans tasks that carry a deadline and
// notifies about those due within the lookahead window.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement distributed locking or leader election
type DeadlineMonitor struct {
	repo           interfaces.Repository
	notifier       interfaces.Notifier
	interval       time.Duration
	lookaheadDays  int
	failureBackoff time.Duration
	now            func() time.Time
	stopCh         chan struct{}
	doneCh         chan struct{}
}

type MonitorOption func(*DeadlineMonitor)

func WithPollInterval(d time.Duration) MonitorOption {
	return func(m *DeadlineMonitor) {
		m.interval = d
	}
}

func WithLookaheadDays(days int) MonitorOption {
	return func(m *DeadlineMonitor) {
		m.lookaheadDays = days
	}
}

func WithFailureBackoff(d time.Duration) MonitorOption {
	return func(m *DeadlineMonitor) {
		m.failureBackoff = d
	}
}

// WithMonitorNow replaces the clock, for tests.
func WithMonitorNow(now func() time.Time) MonitorOption {
	return func(m *DeadlineMonitor) {
		m.now = now
	}
}

func NewDeadlineMonitor(repo interfaces.Repository, notifier interfaces.Notifier, opts ...MonitorOption) *DeadlineMonitor {
	m := &DeadlineMonitor{
		repo:           repo,
		notifier:       notifier,
		interval:       DefaultPollInterval,
		lookaheadDays:  DefaultLookaheadDays,
		failureBackoff: DefaultFailureBackoff,
		now:            time.Now,
		stopCh:         make(chan struct{}),
		doneCh:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Start begins the scan loop in a background goroutine. It does not
// block server startup.
func (m *DeadlineMonitor) Start(ctx context.Context) error {
	logging.Default().Info("Deadline monitor starting",
		"interval", m.interval.String(),
		"lookaheadDays", m.lookaheadDays)

	go m.run(ctx)

	return nil
}

// Stop signals the monitor to stop and waits for completion
func (m *DeadlineMonitor) Stop() {
	logging.Default().Info("Deadline monitor stopping")
	close(m.stopCh)
	<-m.doneCh
	logging.Default().Info("Deadline monitor stopped")
}

func (m *DeadlineMonitor) run(ctx context.Context) {
	defer close(m.doneCh)

	// Initial scan right away; a failure only shortens the next wait.
	next := m.interval
	if err := m.RunOnce(ctx); err != nil {
		logging.Default().Error("Deadline scan failed (will retry)",
			"error", err.Error())
		next = m.failureBackoff
	}

	for {
		timer := time.NewTimer(next)
		select {
		case <-timer.C:
			next = m.interval
			if err := m.RunOnce(ctx); err != nil {
				// Log error but continue the loop
				logging.Default().Error("Deadline scan failed (will retry)",
					"error", err.Error())
				next = m.failureBackoff
			}

		case <-m.stopCh:
			timer.Stop()
			logging.Default().Info("Deadline monitor received stop signal")
			return

		case <-ctx.Done():
			timer.Stop()
			logging.Default().Info("Deadline monitor context cancelled")
			return
		}
	}
}

// RunOnce performs a single scan cycle. Notification failures are logged
// per task and do not abort the cycle; only a repository failure does.
func (m *DeadlineMonitor) RunOnce(ctx context.Context) error {
	logger := logging.From(ctx)
	startTime := m.now().UTC()

	tasks, err := m.repo.Task().ListWithDeadline(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list tasks with deadline")
	}

	alerted := 0
	for _, task := range tasks {
		days, ok := task.Deadline.DaysUntil(startTime)
		if !ok {
			// sentinel deadlines have no calendar date
			continue
		}
		if days < 0 || days > m.lookaheadDays {
			continue
		}

		alert := &model.DeadlineAlert{
			TaskID:      task.ID,
			Description: task.Description,
			Deadline:    task.Deadline,
			DaysLeft:    days,
		}
		if err := m.notifier.Notify(ctx, alert); err != nil {
			_ = errutil.Handle(ctx, err, "failed to send deadline alert")
			continue
		}
		alerted++
	}

	logger.Info("Deadline scan completed",
		"scanned", len(tasks),
		"alerted", alerted,
		"duration", time.Since(startTime).String())

	return nil
}
