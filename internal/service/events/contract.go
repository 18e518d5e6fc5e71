package events

import "context"

// Publisher feeds reminder delivery events to downstream consumers.
type Publisher interface {
	PublishReminderSent(ctx context.Context, noteID int64, recipient string) error
	Close() error
}
