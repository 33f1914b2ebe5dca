package usecase

import (
	"context"

	"pearl-desk/internal/infra"
	"pearl-desk/internal/pkg/errs"
	"pearl-desk/internal/pkg/jwt"
	"pearl-desk/internal/pkg/password"
)

var (
	ErrEmailTaken         = errs.New("email already registered")
	ErrInvalidCredentials = errs.New("invalid email or password")
	ErrTokenGeneration    = errs.New("token generation failed")
)

type AdminRepository interface {
	Create(ctx context.Context, email, passwordHash string) (*AdminView, error)
	FindByEmail(ctx context.Context, email string) (*AdminView, string, error)
}

type AuthResult struct {
	Admin *AdminView
	Token string
}

type AuthUseCase interface {
	Register(ctx context.Context, email, plainPassword string) (*AuthResult, error)
	Login(ctx context.Context, email, plainPassword string) (*AuthResult, error)
}

type authUseCaseImpl struct {
	adminRepo  AdminRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(adminRepo AdminRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		adminRepo:  adminRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Register(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	hash, err := password.HashPassword(plainPassword)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	admin, err := a.adminRepo.Create(ctx, email, hash)
	if err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrEmailTaken
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return a.issueToken(admin)
}

func (a *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (*AuthResult, error) {
	admin, hash, err := a.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(hash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	return a.issueToken(admin)
}

func (a *authUseCaseImpl) issueToken(admin *AdminView) (*AuthResult, error) {
	token, err := a.jwtService.GenerateToken(admin.ID, admin.Email)
	if err != nil {
		return nil, ErrTokenGeneration
	}
	return &AuthResult{Admin: admin, Token: token}, nil
}
