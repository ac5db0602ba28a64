// Package service implements admin authentication: credential checks, JWT
// issuance, and first-run seeding of the admin account.
package service

import (
	"context"
	"errors"
	"time"

	"oratoria_backend/internal/auth/password"
	"oratoria_backend/internal/auth/repository"
	"oratoria_backend/platform/config"
	"oratoria_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for any failed login attempt. Unknown
// email and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

const accessTokenType = "access"

// Config combines the config interfaces the auth service needs.
type Config interface {
	config.JWTConfig
	config.AuthServiceConfig
}

// Store is the persistence surface the service depends on.
type Store interface {
	GetByEmail(ctx context.Context, email string) (*repository.AdminUser, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, email, passwordHash string) (*repository.AdminUser, error)
}

// Service coordinates admin authentication.
type Service struct {
	store Store
	cfg   Config
	log   *logger.Logger
}

// New creates the auth service.
func New(store Store, cfg Config, log *logger.Logger) *Service {
	return &Service{store: store, cfg: cfg, log: log}
}

// Login verifies credentials and returns a signed access token.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (string, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("login", email, false, "unknown email")
		return "", ErrInvalidCredentials
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("login", email, false, "wrong password")
		return "", ErrInvalidCredentials
	}

	token, err := s.signJWT(user.ID)
	if err != nil {
		return "", err
	}

	s.log.AuthEvent("login", email, true, "")
	return token, nil
}

// Seed creates the initial admin account from configuration when the table
// is empty. A non-empty table or missing configuration are both no-ops.
func (s *Service) Seed(ctx context.Context, seed config.AdminSeedConfig) error {
	email := seed.GetAdminEmail()
	plain := seed.GetAdminPassword()
	if email == "" || plain == "" {
		s.log.Warn("admin seed skipped, ADMIN_EMAIL or ADMIN_PASSWORD not set")
		return nil
	}

	count, err := s.store.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return err
	}

	if _, err := s.store.Create(ctx, email, hash); err != nil {
		return err
	}

	s.log.Info("admin account seeded", "email", email)
	return nil
}

func (s *Service) signJWT(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),
		"type": accessTokenType,
		"exp":  now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat":  now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
