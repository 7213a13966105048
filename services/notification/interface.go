package notification

import "context"

// TypeNotificationSend is the asynq task type for one queued notification.
const TypeNotificationSend = "notification:send"

// Dispatcher accepts fire-and-forget notifications for asynchronous
// delivery. Notify returns once the message is accepted for delivery;
// callers log failures and never roll back the triggering operation.
type Dispatcher interface {
	Notify(ctx context.Context, attuid, title, body string) error
}
