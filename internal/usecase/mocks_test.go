//go:build unit

package usecase_test

import (
	"context"
	"time"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/domain/room"
	"pearl-desk/internal/infra"
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, db infra.DBTX, b *booking.Booking) error {
	args := m.Called(ctx, db, b)
	return args.Error(0)
}

func (m *MockBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) FindOpenByKey(ctx context.Context, key booking.AccessKey) (*booking.Booking, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*booking.Booking), args.Error(1)
}

func (m *MockBookingRepository) AddCharge(ctx context.Context, bookingID uuid.UUID, c booking.Charge) error {
	args := m.Called(ctx, bookingID, c)
	return args.Error(0)
}

func (m *MockBookingRepository) Complete(ctx context.Context, db infra.DBTX, b *booking.Booking) error {
	args := m.Called(ctx, db, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, db infra.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, db, id)
	return args.Error(0)
}

func (m *MockBookingRepository) ListViews(ctx context.Context, status, search string) ([]*usecase.BookingView, error) {
	args := m.Called(ctx, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.BookingView), args.Error(1)
}

func (m *MockBookingRepository) RevenueBetween(ctx context.Context, from, to time.Time) (int64, int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) PopularServices(ctx context.Context, from, to time.Time, limit int) ([]usecase.ServiceCount, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]usecase.ServiceCount), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindByNumber(ctx context.Context, number int) (*room.Room, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*room.Room), args.Error(1)
}

func (m *MockRoomRepository) FindAll(ctx context.Context) ([]*usecase.RoomView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.RoomView), args.Error(1)
}

func (m *MockRoomRepository) FindAvailable(ctx context.Context) ([]*usecase.RoomView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.RoomView), args.Error(1)
}

func (m *MockRoomRepository) FindAvailableForPeriod(ctx context.Context, period booking.StayPeriod) ([]*usecase.RoomView, error) {
	args := m.Called(ctx, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.RoomView), args.Error(1)
}

func (m *MockRoomRepository) UpdateStatus(ctx context.Context, db infra.DBTX, id uuid.UUID, status room.Status) error {
	args := m.Called(ctx, db, id, status)
	return args.Error(0)
}

func (m *MockRoomRepository) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) CountByStatus(ctx context.Context, status room.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRoomRepository) Seed(ctx context.Context, count int) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendCheckInKey(ctx context.Context, guestName, guestEmail, key string) error {
	args := m.Called(ctx, guestName, guestEmail, key)
	return args.Error(0)
}

func (m *MockMailer) SendFinalBill(ctx context.Context, guestName, guestEmail string, roomNumber int, bill booking.Bill) error {
	args := m.Called(ctx, guestName, guestEmail, roomNumber, bill)
	return args.Error(0)
}

type MockRoomCache struct {
	mock.Mock
}

func (m *MockRoomCache) GetAvailable(ctx context.Context) ([]*usecase.RoomView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.RoomView), args.Error(1)
}

func (m *MockRoomCache) SetAvailable(ctx context.Context, rooms []*usecase.RoomView) error {
	args := m.Called(ctx, rooms)
	return args.Error(0)
}

func (m *MockRoomCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stubTxRunner executes the unit of work inline and counts how many
// transactions were opened, so tests can assert retry behavior.
type stubTxRunner struct {
	calls int
}

func (r *stubTxRunner) RunInTx(ctx context.Context, fn func(tx infra.DBTX) error) error {
	r.calls++
	return fn(nil)
}

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, email, passwordHash string) (*usecase.AdminView, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AdminView), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*usecase.AdminView, string, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*usecase.AdminView), args.String(1), args.Error(2)
}
