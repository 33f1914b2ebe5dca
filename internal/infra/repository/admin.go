package repository

import (
	"context"
	"errors"

	"pearl-desk/internal/infra"
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AdminRepository struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) Create(ctx context.Context, email, passwordHash string) (*usecase.AdminView, error) {
	id := uuid.New()
	_, err := r.db.Exec(ctx,
		`INSERT INTO admins (id, email, password_hash) VALUES ($1, $2, $3)`,
		id, email, passwordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCodeUniqueViolation {
			return nil, infra.WrapRepoErr("admin email already registered", err, infra.KindDuplicateKey)
		}
		return nil, infra.WrapRepoErr("failed to create admin", err)
	}
	return &usecase.AdminView{ID: id, Email: email}, nil
}

func (r *AdminRepository) FindByEmail(ctx context.Context, email string) (*usecase.AdminView, string, error) {
	var (
		view usecase.AdminView
		hash string
	)
	err := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash FROM admins WHERE email = $1`,
		email).Scan(&view.ID, &view.Email, &hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", infra.WrapRepoErr("admin not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to find admin by email", err)
	}
	return &view, hash, nil
}
