package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"

	"github.com/citops/promisetrack/pkg/domain/model"
)

// slackAPI is the subset of the Slack client used here, extracted for
// tests.
type slackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack posts deadline alerts to a fixed channel.
type Slack struct {
	client    slackAPI
	channelID string
}

func NewSlack(token, channelID string) (*Slack, error) {
	if token == "" {
		return nil, goerr.New("slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("slack channel ID is required")
	}

	return &Slack{
		client:    slack.New(token),
		channelID: channelID,
	}, nil
}

func (x *Slack) Notify(ctx context.Context, alert *model.DeadlineAlert) error {
	text := formatAlert(alert)

	_, _, err := x.client.PostMessageContext(ctx, x.channelID,
		slack.MsgOptionText(text, false),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to post deadline alert",
			goerr.V("channelID", x.channelID),
			goerr.V("taskID", alert.TaskID),
		)
	}
	return nil
}

func formatAlert(alert *model.DeadlineAlert) string {
	var due string
	switch alert.DaysLeft {
	case 0:
		due = "due today"
	case 1:
		due = "due tomorrow"
	default:
		due = fmt.Sprintf("due in %d days", alert.DaysLeft)
	}

	return fmt.Sprintf(":alarm_clock: Task #%d is %s (%s)\n> %s",
		alert.TaskID, due, alert.Deadline.String(), alert.Description)
}
