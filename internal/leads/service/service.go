// Package service implements the lead submission workflow: persist first,
// then attempt delivery to the CRM and reconcile the outcome. Local
// durability is never conditioned on the CRM being reachable or configured.
package service

import (
	"context"
	"errors"
	"strconv"

	"oratoria_backend/internal/crm"
	"oratoria_backend/internal/events"
	"oratoria_backend/internal/leads/repository"
	"oratoria_backend/internal/leads/transport"
	"oratoria_backend/platform/apperr"
	"oratoria_backend/platform/logger"

	"github.com/google/uuid"
)

const errNotConfigured = "amocrm is not configured"

// LeadStore is the persistence surface the service depends on.
type LeadStore interface {
	Create(ctx context.Context, p repository.CreateLeadParams) (*repository.Lead, error)
	UpdateSyncResult(ctx context.Context, id uuid.UUID, status, syncError string, amoLeadID *int64) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Lead, error)
	List(ctx context.Context) ([]repository.Lead, error)
}

// PlacementReader provides the pipeline/stage snapshot taken at submission
// time. Later settings changes never affect already-submitted leads.
type PlacementReader interface {
	PipelineStage(ctx context.Context) (pipelineID, statusID *int64, err error)
}

// Syncer delivers a lead to the CRM. A nil Syncer means the integration is
// not configured.
type Syncer interface {
	FindOrCreateContact(ctx context.Context, name, phone, job string) int64
	CreateLead(ctx context.Context, p crm.CreateLeadParams) (int64, error)
}

// Service coordinates lead persistence and CRM delivery.
type Service struct {
	store     LeadStore
	placement PlacementReader
	syncer    Syncer
	bus       events.Bus
	log       *logger.Logger
}

// New creates the leads service. syncer must be nil (not a typed nil) when
// the CRM integration is disabled.
func New(store LeadStore, placement PlacementReader, syncer Syncer, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		placement: placement,
		syncer:    syncer,
		bus:       bus,
		log:       log,
	}
}

// Submit stores the lead and attempts a single CRM delivery. The lead is
// written before any CRM traffic, so a CRM outage degrades the response to
// a partial success instead of losing the submission.
func (s *Service) Submit(ctx context.Context, req transport.SubmitLeadRequest) (*transport.SubmitLeadResponse, error) {
	pipelineID, statusID := s.placementSnapshot(ctx)

	lead, err := s.store.Create(ctx, repository.CreateLeadParams{
		Name:       req.Name,
		Phone:      req.Phone,
		Job:        req.Job,
		Source:     req.Source,
		Tracking:   req.Tracking(),
		PipelineID: pipelineID,
		StatusID:   statusID,
	})
	if err != nil {
		s.log.Error("failed to save lead", "error", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to save lead", err)
	}

	synced, amoLeadID, syncErr := s.sync(ctx, lead)

	status := repository.SyncStatusSynced
	if !synced {
		status = repository.SyncStatusFailed
	}
	if err := s.store.UpdateSyncResult(ctx, lead.ID, status, syncErr, amoLeadID); err != nil {
		// The submission is already durable; losing the status update is
		// logged rather than surfaced to the visitor.
		s.log.Error("failed to record sync result", "leadId", lead.ID.String(), "error", err)
	}

	s.log.CrmSync(lead.ID.String(), synced, derefInt64(amoLeadID), syncErr)

	s.bus.Publish(ctx, events.LeadSubmitted{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Name:      lead.Name,
		Phone:     lead.Phone,
		Job:       lead.Job,
		Source:    lead.Source,
		Synced:    synced,
		SyncError: syncErr,
	})

	return &transport.SubmitLeadResponse{
		Success:      true,
		SavedLocally: true,
		Synced:       synced,
		LeadID:       lead.ID,
		SyncError:    syncErr,
	}, nil
}

// Get returns one stored lead for the admin surface.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.LeadResponse, error) {
	lead, err := s.store.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("lead not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}

	resp := toLeadResponse(*lead)
	return &resp, nil
}

// List returns all stored leads for the admin surface, oldest first.
func (s *Service) List(ctx context.Context) (*transport.ListLeadsResponse, error) {
	leads, err := s.store.List(ctx)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}

	out := make([]transport.LeadResponse, 0, len(leads))
	for _, lead := range leads {
		out = append(out, toLeadResponse(lead))
	}

	return &transport.ListLeadsResponse{Leads: out, Total: len(out)}, nil
}

// placementSnapshot reads the configured pipeline/stage. A read failure is
// treated as no placement so the CRM can apply its own defaults.
func (s *Service) placementSnapshot(ctx context.Context) (*int64, *int64) {
	pipelineID, statusID, err := s.placement.PipelineStage(ctx)
	if err != nil {
		s.log.Warn("failed to read pipeline placement, submitting without one", "error", err)
		return nil, nil
	}
	return pipelineID, statusID
}

// sync runs the single CRM delivery attempt. It never returns an error to
// the caller; failures are reduced to a short diagnostic string.
func (s *Service) sync(ctx context.Context, lead *repository.Lead) (bool, *int64, string) {
	if s.syncer == nil {
		return false, nil, errNotConfigured
	}

	contactID := s.syncer.FindOrCreateContact(ctx, lead.Name, lead.Phone, lead.Job)

	amoLeadID, err := s.syncer.CreateLead(ctx, crm.CreateLeadParams{
		Name:       lead.Name,
		Phone:      lead.Phone,
		Job:        lead.Job,
		Source:     lead.Source,
		Tracking:   lead.Tracking,
		PipelineID: lead.PipelineID,
		StatusID:   lead.StatusID,
		ContactID:  contactID,
	})
	if err != nil {
		return false, nil, syncDiagnostic(err)
	}

	return true, &amoLeadID, ""
}

// syncDiagnostic reduces a CRM failure to a short string safe to store and
// return to the client. Response bodies are never passed through verbatim.
func syncDiagnostic(err error) string {
	var crmErr *crm.Error
	if errors.As(err, &crmErr) {
		return "amocrm request rejected: status " + strconv.Itoa(crmErr.Status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "amocrm request timed out"
	}
	return "amocrm request failed"
}

func toLeadResponse(lead repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:          lead.ID,
		Name:        lead.Name,
		Phone:       lead.Phone,
		Job:         lead.Job,
		Source:      lead.Source,
		Tracking:    lead.Tracking,
		PipelineID:  lead.PipelineID,
		StatusID:    lead.StatusID,
		SyncStatus:  lead.SyncStatus,
		SyncError:   lead.SyncError,
		CRMLeadID:   lead.AmoLeadID,
		SubmittedAt: lead.SubmittedAt,
	}
}

func derefInt64(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
