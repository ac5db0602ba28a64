// Package transport defines request/response DTOs for the leads HTTP API.
package transport

import (
	"time"

	"oratoria_backend/platform/phone"

	"github.com/google/uuid"
)

// SubmitLeadRequest is the public landing-page submission payload.
// Name and job only need to be non-empty after trimming.
type SubmitLeadRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Phone string `json:"phone" validate:"required,uzphone"`
	Job   string `json:"job" validate:"required,max=150"`

	// Attribution context captured by the landing page, all optional.
	Source      string `json:"source" validate:"omitempty,max=100"`
	UTMSource   string `json:"utmSource" validate:"omitempty,max=100"`
	UTMMedium   string `json:"utmMedium" validate:"omitempty,max=100"`
	UTMCampaign string `json:"utmCampaign" validate:"omitempty,max=150"`
	Referrer    string `json:"referrer" validate:"omitempty,max=500"`
}

// Normalize cleans up the payload before validation: trims whitespace and
// compacts international phone formats so "+998 90 123 45 67" and
// "+998901234567" are treated alike.
func (r *SubmitLeadRequest) Normalize() {
	r.Name = trim(r.Name)
	r.Phone = phone.Normalize(r.Phone)
	r.Job = trim(r.Job)
	r.Source = trim(r.Source)
	if r.Source == "" {
		r.Source = "website"
	}
	r.UTMSource = trim(r.UTMSource)
	r.UTMMedium = trim(r.UTMMedium)
	r.UTMCampaign = trim(r.UTMCampaign)
	r.Referrer = trim(r.Referrer)
}

// Tracking collects the attribution fields that were actually provided.
func (r *SubmitLeadRequest) Tracking() map[string]string {
	tracking := make(map[string]string)
	if r.UTMSource != "" {
		tracking["utm_source"] = r.UTMSource
	}
	if r.UTMMedium != "" {
		tracking["utm_medium"] = r.UTMMedium
	}
	if r.UTMCampaign != "" {
		tracking["utm_campaign"] = r.UTMCampaign
	}
	if r.Referrer != "" {
		tracking["referrer"] = r.Referrer
	}
	return tracking
}

// SubmitLeadResponse reports the outcome of a submission. SavedLocally and
// Synced are reported independently so the client can distinguish a partial
// success (saved but not delivered to the CRM) from a full one.
type SubmitLeadResponse struct {
	Success      bool      `json:"success"`
	SavedLocally bool      `json:"savedLocally"`
	Synced       bool      `json:"synced"`
	LeadID       uuid.UUID `json:"leadId"`
	SyncError    string    `json:"syncError,omitempty"`
}

// LeadResponse is the admin-facing view of a stored lead.
type LeadResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	Phone       string            `json:"phone"`
	Job         string            `json:"job"`
	Source      string            `json:"source,omitempty"`
	Tracking    map[string]string `json:"tracking,omitempty"`
	PipelineID  *int64            `json:"pipelineId"`
	StatusID    *int64            `json:"statusId"`
	SyncStatus  string            `json:"syncStatus"`
	SyncError   string            `json:"syncError,omitempty"`
	CRMLeadID   *int64            `json:"crmLeadId"`
	SubmittedAt time.Time         `json:"submittedAt"`
}

// ListLeadsResponse wraps the admin lead listing.
type ListLeadsResponse struct {
	Leads []LeadResponse `json:"leads"`
	Total int            `json:"total"`
}

// FieldError describes a single invalid field in a submission.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
