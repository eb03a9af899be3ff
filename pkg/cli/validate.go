package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/citops/promisetrack/pkg/cli/config"
	"github.com/citops/promisetrack/pkg/service/deadline"
)

// cmdValidate checks a policy file and/or runs the deadline normalization
// rules over a text without calling any LLM.
func cmdValidate() *cli.Command {
	var policyPath string
	var text string
	var todayStr string

	return &cli.Command{
		Name:  "validate",
		Usage: "Validate a policy file or normalize a deadline phrase offline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "policy",
				Usage:       "Path to TOML policy file to validate",
				Destination: &policyPath,
			},
			&cli.StringFlag{
				Name:        "text",
				Usage:       "Text to run through the deadline normalization rules",
				Destination: &text,
			},
			&cli.StringFlag{
				Name:        "today",
				Usage:       "Anchor date for relative periods (DD.MM.YYYY, defaults to now)",
				Destination: &todayStr,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if policyPath == "" && text == "" {
				return goerr.New("either --policy or --text is required")
			}

			if policyPath != "" {
				policy, err := config.LoadPolicy(policyPath)
				if err != nil {
					return err
				}
				fmt.Printf("policy OK: promised_status=%s lookahead_days=%d poll_interval=%s\n",
					policy.PromisedStatus, policy.LookaheadDays, policy.PollInterval)
			}

			if text != "" {
				today := time.Now().UTC()
				if todayStr != "" {
					t, err := time.Parse("02.01.2006", todayStr)
					if err != nil {
						return goerr.Wrap(err, "invalid --today value", goerr.V("today", todayStr))
					}
					today = t
				}

				d := deadline.FromText(text, today)
				fmt.Printf("deadline: %s\n", d.String())
			}

			return nil
		},
	}
}
