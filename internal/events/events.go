// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"oratoria_backend/platform/events"
	"oratoria_backend/platform/logger"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
	InMemoryBus = events.InMemoryBus
)

// Re-export platform functions
var (
	NewBaseEvent = events.NewBaseEvent
)

// NewInMemoryBus creates a new in-memory event bus.
func NewInMemoryBus(log *logger.Logger) *InMemoryBus {
	return events.NewInMemoryBus(log)
}

// LeadSubmitted is published after a lead submission has been durably saved
// and its CRM sync attempt reconciled.
type LeadSubmitted struct {
	BaseEvent
	LeadID    uuid.UUID `json:"leadId"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Job       string    `json:"job"`
	Source    string    `json:"source"`
	Synced    bool      `json:"synced"`
	SyncError string    `json:"syncError,omitempty"`
}

func (e LeadSubmitted) EventName() string { return "leads.lead.submitted" }
