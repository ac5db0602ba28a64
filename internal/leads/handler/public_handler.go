// Package handler exposes the leads HTTP endpoints: the public landing-page
// submission and the authenticated admin listing.
package handler

import (
	"context"
	"net/http"

	"oratoria_backend/internal/leads/transport"
	"oratoria_backend/platform/httpkit"
	"oratoria_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// Submitter runs the lead submission workflow.
type Submitter interface {
	Submit(ctx context.Context, req transport.SubmitLeadRequest) (*transport.SubmitLeadResponse, error)
}

// PublicHandler handles unauthenticated landing-page submissions.
type PublicHandler struct {
	svc Submitter
	val *validator.Validator
}

// NewPublic creates the public submission handler.
func NewPublic(svc Submitter, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// Submit accepts a landing-page lead submission.
// POST /api/v1/leads
//
// Returns 201 when the lead was saved and delivered to the CRM, 200 when it
// was saved but the CRM delivery failed (partial success).
func (h *PublicHandler) Submit(c *gin.Context) {
	var req transport.SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	req.Normalize()

	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, transport.FieldErrors(err))
		return
	}

	result, err := h.svc.Submit(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusOK
	if result.Synced {
		status = http.StatusCreated
	}
	httpkit.JSON(c, status, result)
}
