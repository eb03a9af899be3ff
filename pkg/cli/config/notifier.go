package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/citops/promisetrack/pkg/domain/interfaces"
	"github.com/citops/promisetrack/pkg/service/notify"
	"github.com/citops/promisetrack/pkg/utils/logging"
)

// Notifier holds CLI flags for deadline alert delivery. The bot token is
// tagged so the JSON log handler redacts it.
type Notifier struct {
	SlackBotToken string `masq:"secret"`
	SlackChannel  string
}

func (n *Notifier) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for deadline alerts",
			Sources:     cli.EnvVars("PROMISETRACK_SLACK_BOT_TOKEN"),
			Destination: &n.SlackBotToken,
		},
		&cli.StringFlag{
			Name:        "slack-alert-channel",
			Usage:       "Slack channel ID that receives deadline alerts",
			Sources:     cli.EnvVars("PROMISETRACK_SLACK_ALERT_CHANNEL"),
			Destination: &n.SlackChannel,
		},
	}
}

// Configure returns a Slack notifier when credentials are set, otherwise
// the console fallback.
func (n *Notifier) Configure() (interfaces.Notifier, error) {
	if n.SlackBotToken == "" && n.SlackChannel == "" {
		logging.Default().Info("Slack not configured, deadline alerts go to console")
		return notify.NewConsole(), nil
	}

	notifier, err := notify.NewSlack(n.SlackBotToken, n.SlackChannel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure Slack notifier")
	}
	logging.Default().Info("Slack notifier enabled", "channel_id", n.SlackChannel)
	return notifier, nil
}
