package notification

import (
	"context"
	"log/slog"

	"github.com/netfibra/backoffice/internal/core/events"
)

// AuditSubscriber writes one structured log line per domain event. It is the
// lightweight audit trail; nothing is persisted beyond the log stream.
type AuditSubscriber struct {
	logger *slog.Logger
}

func NewAuditSubscriber(logger *slog.Logger) *AuditSubscriber {
	return &AuditSubscriber{logger: logger}
}

func (s *AuditSubscriber) Register(bus *events.EventBus) {
	for _, eventType := range []string{
		events.EventTypeServicoCreated,
		events.EventTypeServicoDeleted,
		events.EventTypeLPUCreated,
		events.EventTypeLPUDeleted,
		events.EventTypeLPUItemAdded,
		events.EventTypeLPUItemUpdated,
		events.EventTypeLPUItemRemoved,
		events.EventTypeMatrixReplaced,
		events.EventTypeUserCreated,
	} {
		bus.Subscribe(eventType, s.record)
	}
}

func (s *AuditSubscriber) record(ctx context.Context, event events.Event) error {
	s.logger.Info("audit",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"occurred_at", event.OccurredAt(),
		"data", event.Payload())
	return nil
}
