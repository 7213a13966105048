package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"playarena/models"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Enqueuer is the slice of the asynq client the dispatcher needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqDispatcher queues notifications on the shared Redis-backed task
// queue; the worker drains them into the outbound channel.
type AsynqDispatcher struct {
	Client Enqueuer
	Logger *zap.Logger
}

// NewAsynqDispatcher constructs a dispatcher over an asynq client.
func NewAsynqDispatcher(client Enqueuer, logger *zap.Logger) *AsynqDispatcher {
	return &AsynqDispatcher{Client: client, Logger: logger}
}

// Notify enqueues one notification task. Each recipient of an event is
// dispatched independently; one failed enqueue never affects the others.
func (d *AsynqDispatcher) Notify(ctx context.Context, attuid, title, body string) error {
	payload, err := json.Marshal(models.NotificationPayload{
		ATTUID: attuid,
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	task := asynq.NewTask(TypeNotificationSend, payload)
	if _, err := d.Client.EnqueueContext(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue notification for %s: %w", attuid, err)
	}

	d.Logger.Debug("notification queued",
		zap.String("attuid", attuid), zap.String("title", title))
	return nil
}
