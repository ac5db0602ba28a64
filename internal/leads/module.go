// Package leads provides the lead submission bounded context: the public
// landing-page endpoint, local persistence, and one-shot CRM delivery.
package leads

import (
	"oratoria_backend/internal/crm"
	"oratoria_backend/internal/events"
	apphttp "oratoria_backend/internal/http"
	"oratoria_backend/internal/leads/handler"
	"oratoria_backend/internal/leads/repository"
	"oratoria_backend/internal/leads/service"
	"oratoria_backend/internal/leads/transport"
	"oratoria_backend/platform/logger"
	"oratoria_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	public  *handler.PublicHandler
	admin   *handler.Handler
	service *service.Service
	repo    *repository.Repository
}

// NewModule creates and initializes the leads module. crmClient may be nil
// when the CRM integration is not configured; submissions are then saved
// locally and marked failed.
func NewModule(pool *pgxpool.Pool, placement service.PlacementReader, crmClient *crm.Client, bus events.Bus, val *validator.Validator, log *logger.Logger) (*Module, error) {
	if err := transport.RegisterPhoneRule(val); err != nil {
		return nil, err
	}

	repo := repository.New(pool)

	// A nil *crm.Client must stay a nil interface, otherwise the service
	// would call through a typed nil.
	var syncer service.Syncer
	if crmClient != nil {
		syncer = crmClient
	}

	svc := service.New(repo, placement, syncer, bus, log)

	return &Module{
		public:  handler.NewPublic(svc, val),
		admin:   handler.New(svc),
		service: svc,
		repo:    repo,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for cross-module use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts the public submission route and the admin listing.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.V1.POST("/leads", m.public.Submit)
	ctx.Protected.GET("/leads", m.admin.List)
	ctx.Protected.GET("/leads/:id", m.admin.Get)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
