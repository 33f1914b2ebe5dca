//go:build unit

package builder

import (
	reqdto "pearl-desk/internal/handler/dto/request"
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
)

type AuthBuilder struct {
	Email    string
	Password string
}

func NewAuthBuilder() *AuthBuilder {
	return &AuthBuilder{
		Email:    "admin@example.com",
		Password: "password123",
	}
}

func (a *AuthBuilder) WithEmail(email string) *AuthBuilder {
	a.Email = email
	return a
}

func (a *AuthBuilder) BuildLoginDTO() reqdto.LoginRequest {
	return reqdto.LoginRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildRegisterDTO() reqdto.RegisterRequest {
	return reqdto.RegisterRequest{
		Email:    a.Email,
		Password: a.Password,
	}
}

func (a *AuthBuilder) BuildResult() *usecase.AuthResult {
	return &usecase.AuthResult{
		Admin: &usecase.AdminView{ID: uuid.New(), Email: a.Email},
		Token: "test-jwt-token",
	}
}
