package crm

import (
	apphttp "oratoria_backend/internal/http"
)

// Module is the CRM bounded context module implementing http.Module.
// It exposes account metadata (pipelines and stages) to the admin surface.
type Module struct {
	handler *Handler
	client  *Client
}

// NewModule creates the CRM module. client may be nil when the integration
// is not configured; the pipelines endpoint then reports unavailability.
func NewModule(client *Client, placement PlacementReader) *Module {
	return &Module{
		handler: NewHandler(client, placement),
		client:  client,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "crm"
}

// Client returns the underlying API client, or nil when not configured.
func (m *Module) Client() *Client {
	return m.client
}

// RegisterRoutes mounts the CRM routes on the authenticated group.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/crm/pipelines", m.handler.ListPipelines)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
