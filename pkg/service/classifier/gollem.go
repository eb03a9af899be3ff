package classifier

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
)

// GollemBackend adapts a gollem LLM client to the Backend interface.
type GollemBackend struct {
	client gollem.LLMClient
}

func NewGollemBackend(client gollem.LLMClient) *GollemBackend {
	return &GollemBackend{client: client}
}

func (x *GollemBackend) Complete(ctx context.Context, system, user string) (string, error) {
	agent := gollem.New(x.client, gollem.WithSystemPrompt(system))

	resp, err := agent.Execute(ctx, gollem.Text(user))
	if err != nil {
		return "", goerr.Wrap(err, "failed to execute completion")
	}
	if resp == nil || len(resp.Texts) == 0 {
		return "", goerr.New("empty completion response")
	}

	return strings.TrimSpace(strings.Join(resp.Texts, "\n")), nil
}
