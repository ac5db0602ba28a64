package notification

import (
	"context"
	"errors"
	"testing"

	"oratoria_backend/internal/email"
	"oratoria_backend/internal/events"
	"oratoria_backend/platform/logger"

	"github.com/google/uuid"
)

type recordingSender struct {
	sent []email.LeadAlert
	to   []string
	err  error
}

func (r *recordingSender) SendLeadAlert(_ context.Context, toEmail string, alert email.LeadAlert) error {
	r.sent = append(r.sent, alert)
	r.to = append(r.to, toEmail)
	return r.err
}

type alertConfig struct {
	address string
}

func (c alertConfig) GetSMTPHost() string         { return "" }
func (c alertConfig) GetSMTPPort() int            { return 0 }
func (c alertConfig) GetSMTPUsername() string     { return "" }
func (c alertConfig) GetSMTPPassword() string     { return "" }
func (c alertConfig) GetEmailFromName() string    { return "" }
func (c alertConfig) GetEmailFromAddress() string { return "" }
func (c alertConfig) GetLeadAlertAddress() string { return c.address }
func (c alertConfig) IsEmailEnabled() bool        { return c.address != "" }

func submittedEvent() events.LeadSubmitted {
	return events.LeadSubmitted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    uuid.New(),
		Name:      "Aziza Karimova",
		Phone:     "+998901234567",
		Job:       "Sales manager",
		Synced:    false,
		SyncError: "amocrm request timed out",
	}
}

func TestLeadSubmittedSendsAlert(t *testing.T) {
	sender := &recordingSender{}
	m := New(sender, alertConfig{address: "admin@example.com"}, logger.New("development"))

	if err := m.Handle(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected one alert, got %d", len(sender.sent))
	}
	if sender.to[0] != "admin@example.com" {
		t.Fatalf("unexpected recipient: %q", sender.to[0])
	}
	if sender.sent[0].SyncError != "amocrm request timed out" {
		t.Fatalf("alert missing sync diagnostic: %+v", sender.sent[0])
	}
}

func TestLeadSubmittedSkipsWithoutRecipient(t *testing.T) {
	sender := &recordingSender{}
	m := New(sender, alertConfig{}, logger.New("development"))

	if err := m.Handle(context.Background(), submittedEvent()); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no alerts, got %d", len(sender.sent))
	}
}

type otherEvent struct{ events.BaseEvent }

func (otherEvent) EventName() string { return "test.other" }

func TestUnknownEventsAreIgnored(t *testing.T) {
	sender := &recordingSender{err: errors.New("should not be called")}
	m := New(sender, alertConfig{address: "admin@example.com"}, logger.New("development"))

	if err := m.Handle(context.Background(), otherEvent{events.NewBaseEvent()}); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Fatalf("expected no alerts, got %d", len(sender.sent))
	}
}
