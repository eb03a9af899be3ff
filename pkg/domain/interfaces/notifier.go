package interfaces

import (
	"context"

	"github.com/citops/promisetrack/pkg/domain/model"
)

// Notifier delivers deadline alerts to an operator channel
type Notifier interface {
	Notify(ctx context.Context, alert *model.DeadlineAlert) error
}
