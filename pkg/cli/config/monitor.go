package config

import (
	"time"

	"github.com/urfave/cli/v3"

	"github.com/citops/promisetrack/pkg/service/worker"
)

// Monitor holds CLI flags for the deadline monitor loop.
type Monitor struct {
	pollInterval   time.Duration
	lookaheadDays  int
	failureBackoff time.Duration
}

func (m *Monitor) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "poll-interval",
			Usage:       "Interval between deadline scans",
			Value:       worker.DefaultPollInterval,
			Sources:     cli.EnvVars("PROMISETRACK_POLL_INTERVAL"),
			Destination: &m.pollInterval,
		},
		&cli.IntFlag{
			Name:        "lookahead-days",
			Usage:       "Alert on deadlines due within this many days",
			Value:       worker.DefaultLookaheadDays,
			Sources:     cli.EnvVars("PROMISETRACK_LOOKAHEAD_DAYS"),
			Destination: &m.lookaheadDays,
		},
		&cli.DurationFlag{
			Name:        "failure-backoff",
			Usage:       "Wait before retrying after a failed scan",
			Value:       worker.DefaultFailureBackoff,
			Sources:     cli.EnvVars("PROMISETRACK_FAILURE_BACKOFF"),
			Destination: &m.failureBackoff,
		},
	}
}

// Options converts the flags into monitor options.
func (m *Monitor) Options() []worker.MonitorOption {
	return []worker.MonitorOption{
		worker.WithPollInterval(m.pollInterval),
		worker.WithLookaheadDays(m.lookaheadDays),
		worker.WithFailureBackoff(m.failureBackoff),
	}
}
