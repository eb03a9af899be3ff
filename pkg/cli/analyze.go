package cli

import (
	"context"
	"encoding/json"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/citops/promisetrack/pkg/cli/config"
	"github.com/citops/promisetrack/pkg/service/classifier"
	"github.com/citops/promisetrack/pkg/usecase"
	"github.com/citops/promisetrack/pkg/utils/logging"
)

// cmdAnalyze classifies a single executor reply against a task and prints
// the analysis result as JSON.
func cmdAnalyze() *cli.Command {
	var taskID int
	var responseText string
	var policyPath string
	var repoCfg config.Repository
	var classifierCfg config.Classifier

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "task-id",
			Usage:       "Task ID to analyze",
			Required:    true,
			Destination: &taskID,
		},
		&cli.StringFlag{
			Name:        "response-text",
			Usage:       "Executor reply text",
			Required:    true,
			Destination: &responseText,
		},
		&cli.StringFlag{
			Name:        "policy",
			Usage:       "Path to TOML policy file",
			Sources:     cli.EnvVars("PROMISETRACK_POLICY"),
			Destination: &policyPath,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, classifierCfg.Flags()...)

	return &cli.Command{
		Name:  "analyze",
		Usage: "Analyze one executor reply and print the result",
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

			backend, err := classifierCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to configure classifier backend")
			}
			client := classifier.NewClient(backend)

			uc := usecase.New(repo,
				classifier.NewPromiseClassifier(client),
				classifier.NewDeadlineExtractor(client),
				usecase.WithPromisedStatus(policy.Status()),
			)

			result, err := uc.Analysis.Analyze(ctx, int64(taskID), responseText)
			if err != nil {
				return goerr.Wrap(err, "analysis failed", goerr.V("task_id", taskID))
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
}
