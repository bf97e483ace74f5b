package logger

import (
	"context"

	"go.uber.org/zap"

	"github.com/storefront/backend/internal/domain/shared"
)

// EventLogger publishes domain events as structured log entries under the
// "events" logger name, one entry per event.
type EventLogger struct {
	logger *zap.Logger
}

// NewEventLogger creates an EventLogger on top of the given zap logger
func NewEventLogger(log *zap.Logger) *EventLogger {
	return &EventLogger{logger: log.Named("events")}
}

// Publish implements shared.EventPublisher
func (p *EventLogger) Publish(ctx context.Context, events ...shared.DomainEvent) {
	log := p.logger
	if requestID := GetRequestID(ctx); requestID != "" {
		log = log.With(zap.String("request_id", requestID))
	}

	for _, event := range events {
		log.Info("domain event",
			zap.String("event_type", event.EventType()),
			zap.String("event_id", event.EventID().String()),
			zap.String("aggregate_type", event.AggregateType()),
			zap.String("aggregate_id", event.AggregateID().String()),
			zap.String("tenant_id", event.TenantID().String()),
			zap.Time("occurred_at", event.OccurredAt()),
		)
	}
}
