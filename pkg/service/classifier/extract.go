package classifier

import (
	"context"
	_ "embed"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/deadline_system.md
var deadlineSystemRaw string

var deadlineSystemTmpl = template.Must(
	template.New("deadline_system").Parse(deadlineSystemRaw),
)

// ExtractionFailureToken is returned in place of a deadline token when
// the model could not be reached.
const ExtractionFailureToken = "Ошибка извлечения"

// DeadlineExtractor asks the model to reduce a resolution text to a
// single deadline token: a DD.MM.YY date or one of the sentinel words.
type DeadlineExtractor struct {
	client *Client
}

func NewDeadlineExtractor(client *Client) *DeadlineExtractor {
	return &DeadlineExtractor{client: client}
}

// ExtractDeadline returns the raw token produced by the model. The
// system prompt is anchored to today so relative periods resolve
// deterministically. On failure the token is ExtractionFailureToken and
// the error is non-nil.
func (x *DeadlineExtractor) ExtractDeadline(ctx context.Context, responseText string, today time.Time) (string, error) {
	var sb strings.Builder
	err := deadlineSystemTmpl.Execute(&sb, map[string]string{
		"Today":     today.Format("02.01.2006"),
		"YearShort": today.Format("06"),
	})
	if err != nil {
		return ExtractionFailureToken, goerr.Wrap(err, "failed to render extraction prompt")
	}

	answer, err := x.client.Complete(ctx, sb.String(), userMessagePrefix+responseText)
	if err != nil {
		return ExtractionFailureToken, goerr.Wrap(err, "failed to extract deadline")
	}

	return strings.TrimSpace(answer), nil
}
