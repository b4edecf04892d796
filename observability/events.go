package observability

import (
	"log/slog"

	"hestia/core/events"
	"hestia/core/types"
	"hestia/observability/logging"
	"hestia/observability/metrics"
)

// payloadEvent is implemented by event types that can render the generic
// attribute payload.
type payloadEvent interface {
	Event() *types.Event
}

// EventRecorder is an events.Emitter that feeds the Prometheus registry and
// the structured log, then forwards to the wrapped emitter when one is set.
type EventRecorder struct {
	next   events.Emitter
	logger *slog.Logger
}

// NewEventRecorder wraps the provided emitter. Both arguments may be nil.
func NewEventRecorder(next events.Emitter, logger *slog.Logger) *EventRecorder {
	return &EventRecorder{next: next, logger: logger}
}

// Emit implements events.Emitter.
func (r *EventRecorder) Emit(e events.Event) {
	metrics.Marketplace().ObserveEvent(e.EventType())
	if r.logger != nil {
		attrs := []any{slog.String("event", e.EventType())}
		if p, ok := e.(payloadEvent); ok {
			if payload := p.Event(); payload != nil {
				for key, value := range payload.Attributes {
					attrs = append(attrs, logging.MaskField(key, value))
				}
			}
		}
		r.logger.Debug("chain event", attrs...)
	}
	if r.next != nil {
		r.next.Emit(e)
	}
}
