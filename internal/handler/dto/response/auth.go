package response

import (
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
)

type AdminResponse struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type AuthResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

func FromAuthResult(result *usecase.AuthResult) *AuthResponse {
	return &AuthResponse{
		Token: result.Token,
		Admin: AdminResponse{
			ID:    result.Admin.ID,
			Email: result.Admin.Email,
		},
	}
}
