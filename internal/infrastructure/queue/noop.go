package queue

import (
	"context"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
)

// NoopEnqueuer is used when Redis/Asynq is not configured.
type NoopEnqueuer struct{}

func NewNoopEnqueuer() *NoopEnqueuer {
	return &NoopEnqueuer{}
}

func (q *NoopEnqueuer) EnqueueWebhook(ctx context.Context, event ports.AuditEvent) error {
	return nil
}

var _ ports.TaskEnqueuer = (*NoopEnqueuer)(nil)
