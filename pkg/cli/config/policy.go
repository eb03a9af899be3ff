package config

import (
	"os"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"

	"github.com/citops/promisetrack/pkg/domain/types"
)

// Policy is the deployment-level policy file. It controls how a detected
// promise maps to a task status and how the deadline monitor paces itself.
type Policy struct {
	PromisedStatus string `toml:"promised_status"`
	LookaheadDays  int    `toml:"lookahead_days"`
	PollInterval   string `toml:"poll_interval"`
}

// DefaultPolicy returns the policy applied when no file is given.
func DefaultPolicy() *Policy {
	return &Policy{
		PromisedStatus: types.TaskStatusClosedWithPromise.String(),
		LookaheadDays:  0,
		PollInterval:   "",
	}
}

// Validate checks the policy values.
func (p *Policy) Validate() error {
	status, err := types.ParseTaskStatus(p.PromisedStatus)
	if err != nil {
		return goerr.Wrap(err, "invalid promised_status")
	}
	switch status {
	case types.TaskStatusClosedWithPromise, types.TaskStatusClosed:
	default:
		return goerr.New("promised_status must be closed_with_promise or closed",
			goerr.V("promised_status", p.PromisedStatus))
	}

	if p.LookaheadDays < 0 {
		return goerr.New("lookahead_days must not be negative",
			goerr.V("lookahead_days", p.LookaheadDays))
	}

	if p.PollInterval != "" {
		d, err := time.ParseDuration(p.PollInterval)
		if err != nil {
			return goerr.Wrap(err, "invalid poll_interval", goerr.V("poll_interval", p.PollInterval))
		}
		if d <= 0 {
			return goerr.New("poll_interval must be positive", goerr.V("poll_interval", p.PollInterval))
		}
	}

	return nil
}

// Status returns the parsed promised status. Validate must pass first.
func (p *Policy) Status() types.TaskStatus {
	return types.TaskStatus(p.PromisedStatus)
}

// Interval returns the parsed poll interval, or zero when unset.
func (p *Policy) Interval() time.Duration {
	if p.PollInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(p.PollInterval)
	return d
}

// LoadPolicy loads a policy from a TOML file. Unset fields keep their
// defaults.
func LoadPolicy(path string) (*Policy, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read policy file", goerr.V("path", path))
	}

	policy := DefaultPolicy()
	if err := toml.Unmarshal(data, policy); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML policy", goerr.V("path", path))
	}

	if err := policy.Validate(); err != nil {
		return nil, goerr.Wrap(err, "policy validation failed", goerr.V("path", path))
	}

	return policy, nil
}
