package classifier

import "context"

// Backend is a single-turn completion provider. Implementations send the
// system and user messages to a model and return the raw text answer.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}
