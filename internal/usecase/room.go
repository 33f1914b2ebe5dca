package usecase

import (
	"context"
	"log/slog"
	"time"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/domain/room"
	"pearl-desk/internal/infra"
	"pearl-desk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrInvalidRoomStatus = errs.New("invalid room status")

type RoomUseCase interface {
	GetAvailable(ctx context.Context) ([]*RoomView, error)
	GetAvailability(ctx context.Context, startDate, endDate time.Time) ([]*RoomView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	GetAll(ctx context.Context) ([]*RoomView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*RoomView, error)
	SeedIfEmpty(ctx context.Context, count int) error
}

type roomUseCaseImpl struct {
	roomRepo RoomRepository
	cache    RoomCache
	db       *pgxpool.Pool
}

func NewRoomUseCase(roomRepo RoomRepository, cache RoomCache, db *pgxpool.Pool) RoomUseCase {
	return &roomUseCaseImpl{
		roomRepo: roomRepo,
		cache:    cache,
		db:       db,
	}
}

// GetAvailable lists rooms whose current status permits booking, serving
// from the cache when warm.
func (u *roomUseCaseImpl) GetAvailable(ctx context.Context) ([]*RoomView, error) {
	if cached, err := u.cache.GetAvailable(ctx); err != nil {
		slog.Warn("room cache read failed", "error", err.Error())
	} else if cached != nil {
		return cached, nil
	}

	rooms, err := u.roomRepo.FindAvailable(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := u.cache.SetAvailable(ctx, rooms); err != nil {
		slog.Warn("room cache write failed", "error", err.Error())
	}
	return rooms, nil
}

// GetAvailability resolves the rooms free for a half-open date range. This
// is the read-only availability resolver; check-in re-validates through the
// storage constraint, against the same UTC-midnight normalization.
func (u *roomUseCaseImpl) GetAvailability(ctx context.Context, startDate, endDate time.Time) ([]*RoomView, error) {
	period, err := booking.NewStayPeriod(startDate, endDate)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPeriod)
	}

	rooms, err := u.roomRepo.FindAvailableForPeriod(ctx, period)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rooms, nil
}

func (u *roomUseCaseImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	entity, err := u.roomRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return roomToView(entity), nil
}

func (u *roomUseCaseImpl) GetAll(ctx context.Context) ([]*RoomView, error) {
	rooms, err := u.roomRepo.FindAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return rooms, nil
}

func (u *roomUseCaseImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*RoomView, error) {
	newStatus := room.Status(status)
	if !newStatus.IsValid() {
		return nil, ErrInvalidRoomStatus
	}

	entity, err := u.roomRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := entity.ChangeStatus(newStatus); err != nil {
		return nil, errs.Mark(err, ErrInvalidRoomStatus)
	}
	if err := u.roomRepo.UpdateStatus(ctx, u.db, id, newStatus); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := u.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate room cache", "error", err.Error())
	}
	return roomToView(entity), nil
}

// SeedIfEmpty provisions the initial room inventory on first startup.
func (u *roomUseCaseImpl) SeedIfEmpty(ctx context.Context, count int) error {
	existing, err := u.roomRepo.CountAll(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if existing > 0 {
		slog.Info("rooms already provisioned", "count", existing)
		return nil
	}

	if err := u.roomRepo.Seed(ctx, count); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	slog.Info("seeded room inventory", "count", count)
	return nil
}

func roomToView(r *room.Room) *RoomView {
	return &RoomView{
		ID:     r.ID(),
		Number: r.Number(),
		Status: r.Status().String(),
	}
}
