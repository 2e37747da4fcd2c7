package common

import (
	"time"

	"github.com/google/uuid"
)

type Meta struct {
	// Unique event ID
	ID string `json:"id"`
	// Trace / request correlation ID
	CorrelationID string `json:"correlation_id,omitempty"`
	// Emitting service and version
	Producer string `json:"producer,omitempty"`
	// Timestamp when the event was emitted
	Time time.Time `json:"time"`
	// Event name and version, e.g. support.chat_assigned.v1
	Type string `json:"type"`
}

// NewMeta fills in id, correlation id and emission time for a fresh event.
func NewMeta(eventType, producer string) Meta {
	id := uuid.NewString()
	return Meta{
		ID:            id,
		CorrelationID: id,
		Producer:      producer,
		Time:          time.Now().UTC(),
		Type:          eventType,
	}
}
