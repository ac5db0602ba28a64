// Package handler exposes the settings HTTP endpoints.
package handler

import (
	"net/http"

	"oratoria_backend/internal/settings/service"
	"oratoria_backend/internal/settings/transport"
	"oratoria_backend/platform/httpkit"
	"oratoria_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Handler handles HTTP requests for CRM placement settings.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new settings handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetPipelineStage returns the configured pipeline and stage.
// GET /api/v1/settings/pipeline-stage
func (h *Handler) GetPipelineStage(c *gin.Context) {
	pipelineID, statusID, err := h.svc.PipelineStage(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.PipelineStageResponse{
		PipelineID: pipelineID,
		StatusID:   statusID,
	})
}

// UpdatePipelineStage stores a new pipeline and/or stage selection. The
// response echoes exactly what was submitted; the merged view (stored values
// plus environment defaults) stays on the GET endpoint.
// PATCH /api/v1/settings/pipeline-stage
func (h *Handler) UpdatePipelineStage(c *gin.Context) {
	var req transport.UpdatePipelineStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.SetPipelineStage(c.Request.Context(), req.PipelineID, req.StatusID); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.UpdatePipelineStageResponse{
		Success:    true,
		PipelineID: req.PipelineID,
		StatusID:   req.StatusID,
	})
}
