// Package email delivers operational email, currently new-lead alerts for
// the course administrators.
package email

import (
	"context"

	"oratoria_backend/platform/config"
)

// LeadAlert carries the details of a new submission for the alert email.
type LeadAlert struct {
	Name      string
	Phone     string
	Job       string
	Source    string
	Synced    bool
	SyncError string
}

// Sender delivers operational email.
type Sender interface {
	SendLeadAlert(ctx context.Context, toEmail string, alert LeadAlert) error
}

// NoopSender is used when SMTP is not configured; sends vanish silently.
type NoopSender struct{}

func (NoopSender) SendLeadAlert(context.Context, string, LeadAlert) error {
	return nil
}

// NewSender builds a Sender from configuration. Without an SMTP host the
// NoopSender is returned so callers never have to nil-check.
func NewSender(cfg config.EmailConfig) (Sender, error) {
	if cfg.GetSMTPHost() == "" {
		return NoopSender{}, nil
	}

	return NewSMTPSender(
		cfg.GetSMTPHost(),
		cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(),
		cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(),
		cfg.GetEmailFromName(),
	), nil
}
