// Package handler exposes the auth HTTP endpoints.
package handler

import (
	"errors"
	"net/http"

	"oratoria_backend/internal/auth/service"
	"oratoria_backend/internal/auth/transport"
	"oratoria_backend/platform/httpkit"
	"oratoria_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest     = "invalid request"
	msgValidationFailed   = "validation failed"
	msgInvalidCredentials = "invalid credentials"
)

// Handler handles authentication HTTP requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login authenticates an admin and returns an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpkit.Error(c, http.StatusUnauthorized, msgInvalidCredentials, nil)
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, transport.LoginResponse{AccessToken: token})
}
