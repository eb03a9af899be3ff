package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/citops/promisetrack/pkg/cli/config"
	"github.com/citops/promisetrack/pkg/service/worker"
	"github.com/citops/promisetrack/pkg/utils/logging"
)

// cmdMonitor runs a single deadline scan and exits. Useful for cron-style
// deployments where the server process does not own the monitor loop.
func cmdMonitor() *cli.Command {
	var policyPath string
	var repoCfg config.Repository
	var notifierCfg config.Notifier
	var monitorCfg config.Monitor

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to TOML policy file",
			Sources:     cli.EnvVars("PROMISETRACK_POLICY"),
			Destination: &policyPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, notifierCfg.Flags()...)
	flags = append(flags, monitorCfg.Flags()...)

	return &cli.Command{
		Name:  "monitor",
		Usage: "Run a single deadline scan",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			policy := config.DefaultPolicy()
			if policyPath != "" {
				p, err := config.LoadPolicy(policyPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load policy")
				}
				policy = p
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			notifier, err := notifierCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notifier")
			}

			monitorOpts := monitorCfg.Options()
			if policy.LookaheadDays > 0 {
				monitorOpts = append(monitorOpts, worker.WithLookaheadDays(policy.LookaheadDays))
			}
			monitor := worker.NewDeadlineMonitor(repo, notifier, monitorOpts...)

			return monitor.RunOnce(ctx)
		},
	}
}
