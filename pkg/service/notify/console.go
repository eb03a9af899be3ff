package notify

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/citops/promisetrack/pkg/domain/model"
)

// Console prints deadline alerts to a writer. It is the fallback
// notifier when no Slack credentials are configured.
type Console struct {
	w io.Writer
}

func NewConsole() *Console {
	return &Console{w: os.Stdout}
}

func NewConsoleWithWriter(w io.Writer) *Console {
	return &Console{w: w}
}

func (x *Console) Notify(_ context.Context, alert *model.DeadlineAlert) error {
	warn := color.New(color.FgYellow, color.Bold)
	if _, err := warn.Fprintf(x.w, "DEADLINE ALERT "); err != nil {
		return err
	}
	_, err := color.New(color.FgWhite).Fprintf(x.w, "task=%d daysLeft=%d deadline=%s %s\n",
		alert.TaskID, alert.DaysLeft, alert.Deadline.String(), alert.Description)
	return err
}
