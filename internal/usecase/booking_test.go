//go:build unit

package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/domain/room"
	"pearl-desk/internal/infra"
	"pearl-desk/internal/pkg/clock"
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testRate = booking.NewMoney(15000)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func notFoundErr() error {
	return infra.WrapRepoErr("not found", errors.New("no rows"), infra.KindNotFound)
}

func conflictErr() error {
	return infra.WrapRepoErr("overlap", errors.New("exclusion violation"), infra.KindConflict)
}

func duplicateKeyErr() error {
	return infra.WrapRepoErr("dup key", errors.New("unique violation"), infra.KindDuplicateKey)
}

func checkInParams(roomNumber int, checkIn, checkOut time.Time) usecase.CheckInParams {
	return usecase.CheckInParams{
		GuestName:        "Ada Lovelace",
		GuestEmail:       "ada@example.com",
		RoomNumber:       roomNumber,
		CheckInDate:      checkIn,
		ExpectedCheckOut: checkOut,
	}
}

type bookingFixture struct {
	bookingRepo *MockBookingRepository
	roomRepo    *MockRoomRepository
	mailer      *MockMailer
	cache       *MockRoomCache
	tx          *stubTxRunner
	clock       *clock.MockClock
	uc          usecase.BookingUseCase
}

func newBookingFixture(now time.Time) *bookingFixture {
	f := &bookingFixture{
		bookingRepo: new(MockBookingRepository),
		roomRepo:    new(MockRoomRepository),
		mailer:      new(MockMailer),
		cache:       new(MockRoomCache),
		tx:          new(stubTxRunner),
		clock:       clock.NewMockClock(now),
	}
	f.uc = usecase.NewBookingUseCase(f.bookingRepo, f.roomRepo, f.mailer, f.cache, f.tx, f.clock, testRate)
	return f
}

func reconstructOpenBooking(t *testing.T, roomID uuid.UUID, status booking.Status) *booking.Booking {
	t.Helper()
	period, err := booking.NewStayPeriod(day(2026, 3, 10), day(2026, 3, 13))
	require.NoError(t, err)

	charges := []booking.Charge{
		{Kind: booking.ChargeRoomRent, Item: booking.RoomRentItem, Amount: testRate, ChargedAt: day(2026, 3, 10)},
	}
	return booking.ReconstructBooking(
		uuid.New(), roomID, "Ada Lovelace", "ada@example.com", period,
		status, booking.AccessKey("aabbccddeeff00112233445566778899"),
		charges, booking.NewMoney(0), nil, day(2026, 3, 10), day(2026, 3, 10),
	)
}

func reconstructRoom(roomID uuid.UUID, number int, status room.Status) *room.Room {
	return room.ReconstructRoom(roomID, number, status, day(2026, 1, 1), day(2026, 1, 1))
}

func TestBookingStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("returns view for an open booking", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		entity := reconstructOpenBooking(t, roomID, booking.StatusCheckedIn)

		f.bookingRepo.On("FindOpenByKey", ctx, entity.AccessKey()).Return(entity, nil)
		f.roomRepo.On("FindByID", ctx, roomID).Return(reconstructRoom(roomID, 42, room.StatusOccupied), nil)

		result, err := f.uc.Status(ctx, entity.AccessKey().String())
		require.NoError(t, err)

		assert.Equal(t, entity.ID(), result.Booking.ID)
		assert.Equal(t, 42, result.Booking.RoomNumber)
		assert.Equal(t, "checked-in", result.Booking.Status)
		assert.False(t, result.IsOverstaying)
	})

	t.Run("flags an overstaying guest", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 20))
		roomID := uuid.New()
		entity := reconstructOpenBooking(t, roomID, booking.StatusCheckedIn)

		f.bookingRepo.On("FindOpenByKey", ctx, entity.AccessKey()).Return(entity, nil)
		f.roomRepo.On("FindByID", ctx, roomID).Return(reconstructRoom(roomID, 42, room.StatusOccupied), nil)

		result, err := f.uc.Status(ctx, entity.AccessKey().String())
		require.NoError(t, err)
		assert.True(t, result.IsOverstaying)
	})

	t.Run("unknown key maps to ErrBookingNotFound", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		f.bookingRepo.On("FindOpenByKey", ctx, mock.Anything).Return(nil, notFoundErr())

		_, err := f.uc.Status(ctx, "deadbeef")
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})
}

func TestBookingAddCharge(t *testing.T) {
	ctx := context.Background()

	t.Run("appends a service charge", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		entity := reconstructOpenBooking(t, roomID, booking.StatusCheckedIn)

		f.bookingRepo.On("FindOpenByKey", ctx, entity.AccessKey()).Return(entity, nil)
		f.bookingRepo.On("AddCharge", ctx, entity.ID(), mock.MatchedBy(func(c booking.Charge) bool {
			return c.Kind == booking.ChargeService && c.Item == "Club Sandwich" && c.Amount.Cents() == 2500
		})).Return(nil)
		f.roomRepo.On("FindByID", ctx, roomID).Return(reconstructRoom(roomID, 42, room.StatusOccupied), nil)

		view, err := f.uc.AddCharge(ctx, entity.AccessKey().String(), "Club Sandwich", 2500)
		require.NoError(t, err)

		assert.Len(t, view.Charges, 2)
		f.bookingRepo.AssertExpectations(t)
	})

	t.Run("rejects an empty item before touching the store", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))

		_, err := f.uc.AddCharge(ctx, "deadbeef", "", 2500)
		assert.ErrorIs(t, err, usecase.ErrInvalidCharge)
		f.bookingRepo.AssertNotCalled(t, "FindOpenByKey", mock.Anything, mock.Anything)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))

		_, err := f.uc.AddCharge(ctx, "deadbeef", "Club Sandwich", -100)
		assert.ErrorIs(t, err, usecase.ErrInvalidCharge)
	})
}

func TestBookingList(t *testing.T) {
	ctx := context.Background()

	f := newBookingFixture(day(2026, 3, 11))
	views := []*usecase.BookingView{{ID: uuid.New(), GuestName: "Ada Lovelace"}}
	f.bookingRepo.On("ListViews", ctx, "checked-in", "ada").Return(views, nil)

	got, err := f.uc.List(ctx, "checked-in", "ada")
	require.NoError(t, err)
	assert.Equal(t, views, got)
}

func TestBookingCheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("stay including today checks in, occupies the room and emails the key", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		f.roomRepo.On("FindByNumber", ctx, 42).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(b *booking.Booking) bool {
			return b.RoomID() == roomID && b.Status() == booking.StatusCheckedIn
		})).Return(nil)
		f.roomRepo.On("UpdateStatus", ctx, mock.Anything, roomID, room.StatusOccupied).Return(nil)
		f.cache.On("Invalidate", ctx).Return(nil)
		f.mailer.On("SendCheckInKey", ctx, "Ada Lovelace", "ada@example.com", mock.MatchedBy(func(key string) bool {
			return len(key) == 32
		})).Return(nil)

		result, err := f.uc.CheckIn(ctx, checkInParams(42, day(2026, 3, 10), day(2026, 3, 13)))
		require.NoError(t, err)

		assert.True(t, result.EmailSent)
		assert.Len(t, result.AccessKey, 32)
		assert.Equal(t, 1, f.tx.calls)
		f.bookingRepo.AssertExpectations(t)
		f.roomRepo.AssertExpectations(t)
		f.mailer.AssertExpectations(t)
	})

	t.Run("future stay stays upcoming and leaves the room untouched", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		f.roomRepo.On("FindByNumber", ctx, 42).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(b *booking.Booking) bool {
			return b.Status() == booking.StatusUpcoming
		})).Return(nil)
		f.cache.On("Invalidate", ctx).Return(nil)
		f.mailer.On("SendCheckInKey", ctx, "Ada Lovelace", "ada@example.com", mock.Anything).Return(nil)

		_, err := f.uc.CheckIn(ctx, checkInParams(42, day(2026, 3, 20), day(2026, 3, 23)))
		require.NoError(t, err)
		f.roomRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("failed welcome email keeps the booking and reports the key", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		f.roomRepo.On("FindByNumber", ctx, 42).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil)
		f.cache.On("Invalidate", ctx).Return(nil)
		f.mailer.On("SendCheckInKey", ctx, "Ada Lovelace", "ada@example.com", mock.Anything).
			Return(errors.New("smtp down"))

		result, err := f.uc.CheckIn(ctx, checkInParams(42, day(2026, 3, 20), day(2026, 3, 23)))
		require.NoError(t, err)

		assert.False(t, result.EmailSent)
		assert.Len(t, result.AccessKey, 32)
	})

	t.Run("overlapping booking maps to ErrRoomConflict", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		f.roomRepo.On("FindByNumber", ctx, 42).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(conflictErr())

		_, err := f.uc.CheckIn(ctx, checkInParams(42, day(2026, 3, 20), day(2026, 3, 23)))
		assert.ErrorIs(t, err, usecase.ErrRoomConflict)
		f.mailer.AssertNotCalled(t, "SendCheckInKey", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("duplicate key retries once with a fresh key in a fresh transaction", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		f.roomRepo.On("FindByNumber", ctx, 42).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)

		var keys []string
		record := func(args mock.Arguments) {
			keys = append(keys, args.Get(2).(*booking.Booking).AccessKey().String())
		}
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.Anything).Run(record).Return(duplicateKeyErr()).Once()
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.Anything).Run(record).Return(nil).Once()
		f.cache.On("Invalidate", ctx).Return(nil)
		f.mailer.On("SendCheckInKey", ctx, "Ada Lovelace", "ada@example.com", mock.Anything).Return(nil)

		result, err := f.uc.CheckIn(ctx, checkInParams(42, day(2026, 3, 20), day(2026, 3, 23)))
		require.NoError(t, err)

		require.Len(t, keys, 2)
		assert.NotEqual(t, keys[0], keys[1])
		assert.Equal(t, keys[1], result.AccessKey)
		assert.Equal(t, 2, f.tx.calls)
	})

	t.Run("second duplicate key maps to ErrKeyCollision", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		f.roomRepo.On("FindByNumber", ctx, 42).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)
		f.bookingRepo.On("Create", ctx, mock.Anything, mock.Anything).Return(duplicateKeyErr()).Twice()

		_, err := f.uc.CheckIn(ctx, checkInParams(42, day(2026, 3, 20), day(2026, 3, 23)))
		assert.ErrorIs(t, err, usecase.ErrKeyCollision)
		assert.Equal(t, 2, f.tx.calls)
	})

	t.Run("invalid period fails before any lookup", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))

		_, err := f.uc.CheckIn(ctx, checkInParams(42, day(2026, 3, 13), day(2026, 3, 10)))
		assert.ErrorIs(t, err, usecase.ErrInvalidPeriod)
		f.roomRepo.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything)
	})

	t.Run("unknown room number maps to ErrRoomNotFound", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		f.roomRepo.On("FindByNumber", ctx, 999).Return(nil, notFoundErr())

		_, err := f.uc.CheckIn(ctx, checkInParams(999, day(2026, 3, 10), day(2026, 3, 13)))
		assert.ErrorIs(t, err, usecase.ErrRoomNotFound)
	})

	t.Run("empty guest name maps to ErrDomainValidation", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 11))
		roomID := uuid.New()
		f.roomRepo.On("FindByNumber", ctx, 42).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)

		params := checkInParams(42, day(2026, 3, 10), day(2026, 3, 13))
		params.GuestName = ""
		_, err := f.uc.CheckIn(ctx, params)
		assert.ErrorIs(t, err, usecase.ErrDomainValidation)
	})
}

func TestBookingCheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("finalizes the bill, completes the booking and sends the room to cleaning", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 13))
		roomID := uuid.New()
		entity := reconstructOpenBooking(t, roomID, booking.StatusCheckedIn)

		f.bookingRepo.On("FindOpenByKey", ctx, entity.AccessKey()).Return(entity, nil)
		f.roomRepo.On("FindByID", ctx, roomID).Return(reconstructRoom(roomID, 42, room.StatusOccupied), nil)
		f.bookingRepo.On("Complete", ctx, mock.Anything, mock.MatchedBy(func(b *booking.Booking) bool {
			return b.Status() == booking.StatusCompleted &&
				b.Total().Cents() == 45000 &&
				b.CheckedOutAt() != nil
		})).Return(nil)
		f.roomRepo.On("UpdateStatus", ctx, mock.Anything, roomID, room.StatusCleaning).Return(nil)
		f.cache.On("Invalidate", ctx).Return(nil)
		f.mailer.On("SendFinalBill", ctx, "Ada Lovelace", "ada@example.com", 42,
			mock.MatchedBy(func(bill booking.Bill) bool {
				return bill.Total.Cents() == 45000
			})).Return(nil).Once()

		view, err := f.uc.CheckOut(ctx, entity.AccessKey().String())
		require.NoError(t, err)

		assert.Equal(t, "completed", view.Status)
		assert.Equal(t, int64(45000), view.TotalCents)
		assert.NotNil(t, view.CheckedOutAt)
		assert.Equal(t, 1, f.tx.calls)
		f.bookingRepo.AssertExpectations(t)
		f.roomRepo.AssertExpectations(t)
		f.mailer.AssertExpectations(t)
	})

	t.Run("bill email failure does not undo the checkout", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 13))
		roomID := uuid.New()
		entity := reconstructOpenBooking(t, roomID, booking.StatusCheckedIn)

		f.bookingRepo.On("FindOpenByKey", ctx, entity.AccessKey()).Return(entity, nil)
		f.roomRepo.On("FindByID", ctx, roomID).Return(reconstructRoom(roomID, 42, room.StatusOccupied), nil)
		f.bookingRepo.On("Complete", ctx, mock.Anything, mock.Anything).Return(nil)
		f.roomRepo.On("UpdateStatus", ctx, mock.Anything, roomID, room.StatusCleaning).Return(nil)
		f.cache.On("Invalidate", ctx).Return(nil)
		f.mailer.On("SendFinalBill", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("smtp down"))

		view, err := f.uc.CheckOut(ctx, entity.AccessKey().String())
		require.NoError(t, err)
		assert.Equal(t, "completed", view.Status)
	})

	t.Run("unknown key maps to ErrBookingNotFound", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 13))
		f.bookingRepo.On("FindOpenByKey", ctx, mock.Anything).Return(nil, notFoundErr())

		_, err := f.uc.CheckOut(ctx, "deadbeef")
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})
}

func TestBookingCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("checked-in guest gets exactly one accrued bill and the room frees up", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 12))
		roomID := uuid.New()
		entity := reconstructOpenBooking(t, roomID, booking.StatusCheckedIn)

		f.bookingRepo.On("FindByID", ctx, entity.ID()).Return(entity, nil)
		f.roomRepo.On("FindByID", ctx, roomID).Return(reconstructRoom(roomID, 42, room.StatusOccupied), nil)
		f.roomRepo.On("UpdateStatus", ctx, mock.Anything, roomID, room.StatusAvailable).Return(nil)
		f.bookingRepo.On("Delete", ctx, mock.Anything, entity.ID()).Return(nil)
		f.cache.On("Invalidate", ctx).Return(nil)
		// Charges as accrued only, rent untouched.
		f.mailer.On("SendFinalBill", ctx, "Ada Lovelace", "ada@example.com", 42,
			mock.MatchedBy(func(bill booking.Bill) bool {
				return bill.Total.Cents() == testRate.Cents()
			})).Return(nil).Once()

		require.NoError(t, f.uc.Cancel(ctx, entity.ID()))

		assert.Equal(t, 1, f.tx.calls)
		f.mailer.AssertNumberOfCalls(t, "SendFinalBill", 1)
		f.bookingRepo.AssertExpectations(t)
		f.roomRepo.AssertExpectations(t)
	})

	t.Run("upcoming booking is removed without a bill email", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 5))
		roomID := uuid.New()
		entity := reconstructOpenBooking(t, roomID, booking.StatusUpcoming)

		f.bookingRepo.On("FindByID", ctx, entity.ID()).Return(entity, nil)
		f.roomRepo.On("FindByID", ctx, roomID).Return(reconstructRoom(roomID, 42, room.StatusAvailable), nil)
		f.roomRepo.On("UpdateStatus", ctx, mock.Anything, roomID, room.StatusAvailable).Return(nil)
		f.bookingRepo.On("Delete", ctx, mock.Anything, entity.ID()).Return(nil)
		f.cache.On("Invalidate", ctx).Return(nil)

		require.NoError(t, f.uc.Cancel(ctx, entity.ID()))
		f.mailer.AssertNotCalled(t, "SendFinalBill",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown id maps to ErrBookingNotFound", func(t *testing.T) {
		f := newBookingFixture(day(2026, 3, 12))
		id := uuid.New()
		f.bookingRepo.On("FindByID", ctx, id).Return(nil, notFoundErr())

		assert.ErrorIs(t, f.uc.Cancel(ctx, id), usecase.ErrBookingNotFound)
	})
}
