//go:build unit

package api_test

import (
	"context"
	"time"

	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) CheckIn(ctx context.Context, params usecase.CheckInParams) (*usecase.CheckInResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CheckInResult), args.Error(1)
}

func (m *MockBookingUseCase) CheckOut(ctx context.Context, key string) (*usecase.BookingView, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) AddCharge(ctx context.Context, key, item string, priceCents int64) (*usecase.BookingView, error) {
	args := m.Called(ctx, key, item, priceCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) Status(ctx context.Context, key string) (*usecase.StatusResult, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.StatusResult), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, status, search string) ([]*usecase.BookingView, error) {
	args := m.Called(ctx, status, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.BookingView), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRoomUseCase struct {
	mock.Mock
}

func (m *MockRoomUseCase) GetAvailable(ctx context.Context) ([]*usecase.RoomView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.RoomView), args.Error(1)
}

func (m *MockRoomUseCase) GetAvailability(ctx context.Context, startDate, endDate time.Time) ([]*usecase.RoomView, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.RoomView), args.Error(1)
}

func (m *MockRoomUseCase) GetByID(ctx context.Context, id uuid.UUID) (*usecase.RoomView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RoomView), args.Error(1)
}

func (m *MockRoomUseCase) GetAll(ctx context.Context) ([]*usecase.RoomView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*usecase.RoomView), args.Error(1)
}

func (m *MockRoomUseCase) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*usecase.RoomView, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.RoomView), args.Error(1)
}

func (m *MockRoomUseCase) SeedIfEmpty(ctx context.Context, count int) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

type MockReportUseCase struct {
	mock.Mock
}

func (m *MockReportUseCase) Generate(ctx context.Context, startDate, endDate time.Time) (*usecase.ReportView, error) {
	args := m.Called(ctx, startDate, endDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.ReportView), args.Error(1)
}

type MockAuthUseCase struct {
	mock.Mock
}

func (m *MockAuthUseCase) Register(ctx context.Context, email, plainPassword string) (*usecase.AuthResult, error) {
	args := m.Called(ctx, email, plainPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}

func (m *MockAuthUseCase) Login(ctx context.Context, email, plainPassword string) (*usecase.AuthResult, error) {
	args := m.Called(ctx, email, plainPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.AuthResult), args.Error(1)
}
