// Package notification provides event handlers for alerting administrators
// in response to domain events. It subscribes to events and inverts the
// dependency: the leads module never needs to know about email delivery.
package notification

import (
	"context"

	"oratoria_backend/internal/email"
	"oratoria_backend/internal/events"
	"oratoria_backend/platform/config"
	"oratoria_backend/platform/logger"
)

// Module delivers lead alerts. Not HTTP-facing.
type Module struct {
	sender email.Sender
	cfg    config.EmailConfig
	log    *logger.Logger
}

// New creates the notification module.
func New(sender email.Sender, cfg config.EmailConfig, log *logger.Logger) *Module {
	return &Module{sender: sender, cfg: cfg, log: log}
}

// RegisterHandlers subscribes the module to the events it reacts to.
func (m *Module) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadSubmitted{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.LeadSubmitted:
		return m.handleLeadSubmitted(ctx, e)
	default:
		return nil
	}
}

// handleLeadSubmitted sends the new-lead alert. Delivery is best effort and
// never affects the submission that triggered it.
func (m *Module) handleLeadSubmitted(ctx context.Context, e events.LeadSubmitted) error {
	to := m.cfg.GetLeadAlertAddress()
	if to == "" {
		return nil
	}

	err := m.sender.SendLeadAlert(ctx, to, email.LeadAlert{
		Name:      e.Name,
		Phone:     e.Phone,
		Job:       e.Job,
		Source:    e.Source,
		Synced:    e.Synced,
		SyncError: e.SyncError,
	})
	if err != nil {
		m.log.Warn("failed to send lead alert", "leadId", e.LeadID.String(), "error", err)
	}
	return err
}
