// Package auth provides the admin authentication bounded context.
package auth

import (
	"context"

	"oratoria_backend/internal/auth/handler"
	"oratoria_backend/internal/auth/repository"
	"oratoria_backend/internal/auth/service"
	apphttp "oratoria_backend/internal/http"
	"oratoria_backend/platform/config"
	"oratoria_backend/platform/logger"
	"oratoria_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg service.Config, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Seed creates the initial admin account when none exists.
func (m *Module) Seed(ctx context.Context, seed config.AdminSeedConfig) error {
	return m.service.Seed(ctx, seed)
}

// RegisterRoutes mounts the auth routes with the stricter auth rate limiter.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	authGroup.POST("/login", m.handler.Login)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
