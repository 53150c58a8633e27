package mail

import (
	"context"

	"github.com/hibiken/asynq"
)

// Enqueuer submits send tasks to the queue. Notification fanout depends
// on this interface so tests can capture enqueued mail.
type Enqueuer interface {
	EnqueueSend(ctx context.Context, payload SendPayload) error
	Close() error
}

type queueEnqueuer struct {
	client *asynq.Client
}

// NewEnqueuer builds a queue-backed enqueuer.
func NewEnqueuer(opt asynq.RedisClientOpt) Enqueuer {
	return &queueEnqueuer{client: asynq.NewClient(opt)}
}

func (e *queueEnqueuer) EnqueueSend(ctx context.Context, payload SendPayload) error {
	task, err := NewSendTask(payload)
	if err != nil {
		return err
	}
	_, err = e.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(3))
	return err
}

func (e *queueEnqueuer) Close() error {
	return e.client.Close()
}
