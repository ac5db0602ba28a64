// Package repository provides PostgreSQL persistence for leads.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sync status values for a stored lead. A lead starts as pending and moves
// to exactly one terminal state once the CRM attempt has run.
const (
	SyncStatusPending = "pending"
	SyncStatusSynced  = "synced"
	SyncStatusFailed  = "failed"
)

// ErrNotFound is returned when a lead does not exist.
var ErrNotFound = errors.New("lead not found")

// Lead is a stored submission. PipelineID and StatusID are the placement
// snapshot taken at submission time.
type Lead struct {
	ID          uuid.UUID
	Name        string
	Phone       string
	Job         string
	Source      string
	Tracking    map[string]string
	PipelineID  *int64
	StatusID    *int64
	SyncStatus  string
	SyncError   string
	AmoLeadID   *int64
	SubmittedAt time.Time
}

// CreateLeadParams holds the fields for a new lead row.
type CreateLeadParams struct {
	Name       string
	Phone      string
	Job        string
	Source     string
	Tracking   map[string]string
	PipelineID *int64
	StatusID   *int64
}

// Repository provides lead persistence operations.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new lead in the pending state and returns it.
func (r *Repository) Create(ctx context.Context, p CreateLeadParams) (*Lead, error) {
	query := `
		INSERT INTO leads (id, name, phone, job, source, tracking, pipeline_id, status_id, sync_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, name, phone, job, source, tracking, pipeline_id, status_id, sync_status, sync_error, amo_lead_id, submitted_at`

	tracking := p.Tracking
	if tracking == nil {
		tracking = map[string]string{}
	}

	row := r.pool.QueryRow(ctx, query,
		uuid.New(), p.Name, p.Phone, p.Job, p.Source, tracking, p.PipelineID, p.StatusID, SyncStatusPending)

	return scanLead(row)
}

// UpdateSyncResult records the outcome of a CRM sync attempt. The CRM lead
// id is only ever written once; later calls cannot overwrite it.
func (r *Repository) UpdateSyncResult(ctx context.Context, id uuid.UUID, status, syncError string, amoLeadID *int64) error {
	query := `
		UPDATE leads
		SET sync_status = $2,
		    sync_error = $3,
		    amo_lead_id = COALESCE(amo_lead_id, $4)
		WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, status, nullIfEmpty(syncError), amoLeadID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID fetches a single lead.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	query := `
		SELECT id, name, phone, job, source, tracking, pipeline_id, status_id, sync_status, sync_error, amo_lead_id, submitted_at
		FROM leads
		WHERE id = $1`

	lead, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return lead, err
}

// List returns all leads in submission order, oldest first.
func (r *Repository) List(ctx context.Context) ([]Lead, error) {
	query := `
		SELECT id, name, phone, job, source, tracking, pipeline_id, status_id, sync_status, sync_error, amo_lead_id, submitted_at
		FROM leads
		ORDER BY submitted_at ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, *lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*Lead, error) {
	var (
		lead      Lead
		syncError *string
	)
	err := row.Scan(
		&lead.ID, &lead.Name, &lead.Phone, &lead.Job, &lead.Source, &lead.Tracking,
		&lead.PipelineID, &lead.StatusID, &lead.SyncStatus, &syncError, &lead.AmoLeadID, &lead.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	if syncError != nil {
		lead.SyncError = *syncError
	}
	return &lead, nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
