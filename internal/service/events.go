package service

import (
	"context"
	"log/slog"

	"github.com/mmynk/messbook/internal/events"
)

// announce publishes a change notice. The write it describes has already been
// committed, so failures are only logged.
func announce(ctx context.Context, logger *slog.Logger, publisher events.Publisher, event events.Event) {
	if err := publisher.Publish(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish event", "kind", event.Kind, "record_id", event.RecordID, "error", err)
	}
}

func publisherOrNop(p events.Publisher) events.Publisher {
	if p == nil {
		return events.NopPublisher{}
	}
	return p
}
