// Package settings provides the CRM placement settings bounded context.
// It stores the pipeline and stage that new leads are filed under, with
// environment defaults as a fallback when nothing has been saved yet.
package settings

import (
	apphttp "oratoria_backend/internal/http"
	"oratoria_backend/internal/settings/handler"
	"oratoria_backend/internal/settings/repository"
	"oratoria_backend/internal/settings/service"
	"oratoria_backend/platform/config"
	"oratoria_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the settings bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the settings module with all its dependencies.
func NewModule(pool *pgxpool.Pool, defaults config.PlacementDefaultsConfig, val *validator.Validator) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, defaults)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "settings"
}

// Service returns the service layer for cross-module use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the settings routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/settings/pipeline-stage", m.handler.GetPipelineStage)
	ctx.Protected.PATCH("/settings/pipeline-stage", m.handler.UpdatePipelineStage)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
