package usecase

import (
	"context"
	"time"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/domain/room"
	"pearl-desk/internal/pkg/errs"
)

const popularServicesLimit = 5

type ReportUseCase interface {
	Generate(ctx context.Context, startDate, endDate time.Time) (*ReportView, error)
}

type reportUseCaseImpl struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
}

func NewReportUseCase(bookingRepo BookingRepository, roomRepo RoomRepository) ReportUseCase {
	return &reportUseCaseImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
	}
}

// Generate aggregates revenue over stays completed inside the window, plus a
// snapshot of current occupancy and maintenance counts. A window with no
// completed stays reports zeros, not an error.
func (u *reportUseCaseImpl) Generate(ctx context.Context, startDate, endDate time.Time) (*ReportView, error) {
	from := booking.NormalizeDate(startDate)
	// The end date is inclusive: extend to the last instant of that day.
	to := booking.NormalizeDate(endDate).Add(24*time.Hour - time.Nanosecond)
	if to.Before(from) {
		return nil, ErrInvalidPeriod
	}

	revenue, completed, err := u.bookingRepo.RevenueBetween(ctx, from, to)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	popular, err := u.bookingRepo.PopularServices(ctx, from, to, popularServicesLimit)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	totalRooms, err := u.roomRepo.CountAll(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	occupied, err := u.roomRepo.CountByStatus(ctx, room.StatusOccupied)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	maintenance, err := u.roomRepo.CountByStatus(ctx, room.StatusMaintenance)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	occupancyRate := 0.0
	if totalRooms > 0 {
		occupancyRate = float64(occupied) / float64(totalRooms) * 100
	}

	if popular == nil {
		popular = []ServiceCount{}
	}

	return &ReportView{
		TotalRevenueCents: revenue,
		OccupancyRate:     occupancyRate,
		CompletedStays:    completed,
		MaintenanceRooms:  maintenance,
		PopularServices:   popular,
	}, nil
}
