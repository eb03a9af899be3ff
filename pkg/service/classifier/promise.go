package classifier

import (
	"context"
	_ "embed"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/promise_system.md
var promiseSystemPrompt string

const userMessagePrefix = "Ответ исполнителя: "

// PromiseClassifier decides whether a resolution text commits to future
// work. The model answers ДА or НЕТ; anything containing ДА counts as a
// promise, everything else does not.
type PromiseClassifier struct {
	client *Client
}

func NewPromiseClassifier(client *Client) *PromiseClassifier {
	return &PromiseClassifier{client: client}
}

// IsPromise returns the verdict together with the raw model answer for
// audit purposes.
func (x *PromiseClassifier) IsPromise(ctx context.Context, responseText string) (bool, string, error) {
	answer, err := x.client.Complete(ctx, promiseSystemPrompt, userMessagePrefix+responseText)
	if err != nil {
		return false, "", goerr.Wrap(err, "failed to classify response")
	}

	verdict := strings.Contains(strings.ToUpper(answer), "ДА")
	return verdict, answer, nil
}
