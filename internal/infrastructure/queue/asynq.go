package queue

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
)

const TypeWebhook = "webhook:emit"

// TaskEnqueuer hands audit events to Asynq so webhook delivery happens off
// the request path.
type TaskEnqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *TaskEnqueuer {
	return &TaskEnqueuer{client: asynq.NewClient(redisOpt), log: log}
}

func (q *TaskEnqueuer) Close() error {
	return q.client.Close()
}

func (q *TaskEnqueuer) EnqueueWebhook(ctx context.Context, event ports.AuditEvent) error {
	payload, _ := json.Marshal(event)
	task := asynq.NewTask(TypeWebhook, payload)
	if _, err := q.client.EnqueueContext(ctx, task); err != nil {
		q.log.Warn().Err(err).Str("event", event.Event).Msg("enqueue webhook failed")
		return err
	}
	return nil
}

var _ ports.TaskEnqueuer = (*TaskEnqueuer)(nil)
