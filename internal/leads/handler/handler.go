package handler

import (
	"context"
	"net/http"

	"oratoria_backend/internal/leads/transport"
	"oratoria_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidLeadID = "invalid lead ID"

// Reader reads stored leads for the admin surface.
type Reader interface {
	List(ctx context.Context) (*transport.ListLeadsResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*transport.LeadResponse, error)
}

// Handler handles authenticated admin requests for leads.
type Handler struct {
	svc Reader
}

// New creates the admin leads handler.
func New(svc Reader) *Handler {
	return &Handler{svc: svc}
}

// List returns all stored leads, oldest first.
// GET /api/v1/leads
func (h *Handler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Get returns a single lead by id.
// GET /api/v1/leads/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidLeadID, nil)
		return
	}

	result, err := h.svc.Get(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
