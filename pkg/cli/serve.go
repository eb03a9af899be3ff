package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/citops/promisetrack/pkg/cli/config"
	httpctrl "github.com/citops/promisetrack/pkg/controller/http"
	"github.com/citops/promisetrack/pkg/service/classifier"
	"github.com/citops/promisetrack/pkg/service/worker"
	"github.com/citops/promisetrack/pkg/usecase"
	"github.com/citops/promisetrack/pkg/utils/logging"
)

func cmdServe() *cli.Command {
	var addr string
	var policyPath string
	var corsOrigins []string
	var repoCfg config.Repository
	var classifierCfg config.Classifier
	var notifierCfg config.Notifier
	var monitorCfg config.Monitor

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("PROMISETRACK_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to TOML policy file",
			Sources:     cli.EnvVars("PROMISETRACK_POLICY"),
			Destination: &policyPath,
		},
		&cli.StringSliceFlag{
			Name:        "cors-origin",
			Usage:       "Allowed CORS origin (repeatable)",
			Sources:     cli.EnvVars("PROMISETRACK_CORS_ORIGIN"),
			Destination: &corsOrigins,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, classifierCfg.Flags()...)
	flags = append(flags, notifierCfg.Flags()...)
	flags = append(flags, monitorCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server and deadline monitor",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			policy := config.DefaultPolicy()
			if policyPath != "" {
				p, err := config.LoadPolicy(policyPath)
				if err != nil {
					return goerr.Wrap(err, "failed to load policy")
				}
				policy = p
				logging.Default().Info("Policy loaded", "path", policyPath,
					"promised_status", policy.PromisedStatus)
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

			backend, err := classifierCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure classifier backend")
			}
			logging.Default().Info("Classifier backend configured", "classifier", classifierCfg)
			client := classifier.NewClient(backend)
			promise := classifier.NewPromiseClassifier(client)
			extractor := classifier.NewDeadlineExtractor(client)

			uc := usecase.New(repo, promise, extractor,
				usecase.WithPromisedStatus(policy.Status()),
			)

			notifier, err := notifierCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure notifier")
			}

			monitorOpts := monitorCfg.Options()
			if policy.LookaheadDays > 0 {
				monitorOpts = append(monitorOpts, worker.WithLookaheadDays(policy.LookaheadDays))
			}
			if d := policy.Interval(); d > 0 {
				monitorOpts = append(monitorOpts, worker.WithPollInterval(d))
			}
			monitor := worker.NewDeadlineMonitor(repo, notifier, monitorOpts...)
			if err := monitor.Start(ctx); err != nil {
				return goerr.Wrap(err, "failed to start deadline monitor")
			}

			httpOpts := []httpctrl.Options{}
			if len(corsOrigins) > 0 {
				httpOpts = append(httpOpts, httpctrl.WithAllowedOrigins(corsOrigins))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpOpts...),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			select {
			case err := <-errCh:
				monitor.Stop()
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				monitor.Stop()

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
