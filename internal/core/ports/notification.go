package ports

import "context"

// NotificationSink delivers a message to a recipient asynchronously.
// Delivery is at-least-once and fully detached from the order transaction
// that triggered it: a sink failure is logged by the caller and never rolls
// back or retries the order mutation.
type NotificationSink interface {
	Send(ctx context.Context, recipientChatID int64, text string) error
}
