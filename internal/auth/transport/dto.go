// Package transport defines request/response DTOs for the auth HTTP API.
package transport

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginResponse carries the signed access token.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}
