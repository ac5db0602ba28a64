// Package repository provides PostgreSQL persistence for admin users.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when an admin user does not exist.
var ErrNotFound = errors.New("admin user not found")

// AdminUser is a stored administrator account.
type AdminUser struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Repository provides admin user persistence operations.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new auth repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// GetByEmail fetches an admin user by email (case-insensitive).
func (r *Repository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM admin_users
		WHERE lower(email) = lower($1)`

	var user AdminUser
	err := r.pool.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Count returns the number of admin users.
func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM admin_users`).Scan(&count)
	return count, err
}

// Create inserts a new admin user.
func (r *Repository) Create(ctx context.Context, email, passwordHash string) (*AdminUser, error) {
	query := `
		INSERT INTO admin_users (id, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, created_at`

	var user AdminUser
	err := r.pool.QueryRow(ctx, query, uuid.New(), email, passwordHash).
		Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
