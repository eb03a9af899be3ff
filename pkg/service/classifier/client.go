package classifier

import (
	"context"
	"errors"
	"net"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/citops/promisetrack/pkg/utils/logging"
)

const DefaultTimeout = 30 * time.Second

var ErrAttemptsExhausted = goerr.New("all completion attempts failed")

// Client wraps a Backend with a per-attempt timeout and a retry schedule.
type Client struct {
	backend Backend
	timeout time.Duration
	backoff Backoff
}

type ClientOption func(*Client)

func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithBackoff(b Backoff) ClientOption {
	return func(c *Client) {
		c.backoff = b
	}
}

func NewClient(backend Backend, opts ...ClientOption) *Client {
	c := &Client{
		backend: backend,
		timeout: DefaultTimeout,
		backoff: DefaultBackoff(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Complete runs the backend with retries. Each attempt gets its own
// timeout; between attempts the client pauses per the backoff schedule.
// When every attempt fails the returned error wraps ErrAttemptsExhausted.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	logger := logging.From(ctx)

	var lastErr error
	for attempt := 1; attempt <= c.backoff.MaxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.backoff.Sleep(ctx); err != nil {
				return "", goerr.Wrap(err, "retry interrupted")
			}
		}

		answer, err := c.attempt(ctx, system, user)
		if err == nil {
			return answer, nil
		}

		lastErr = err
		logger.Warn("completion attempt failed",
			"attempt", attempt,
			"kind", failureKind(err),
			"error", err,
		)
	}

	return "", goerr.Wrap(ErrAttemptsExhausted,
		"completion failed",
		goerr.V("attempts", c.backoff.MaxAttempts),
		goerr.V("cause", lastErr),
	)
}

func (c *Client) attempt(ctx context.Context, system, user string) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.backend.Complete(attemptCtx, system, user)
}

// failureKind labels an attempt error for logs. It does not affect the
// retry decision; every failure is retried.
func failureKind(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return "transport"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "transport"
	}
	return "unexpected"
}
