package usecase

import (
	"context"
	"log/slog"
	"time"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/domain/room"
	"pearl-desk/internal/infra"
	"pearl-desk/internal/pkg/clock"
	"pearl-desk/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRoomNotFound    = errs.New("room not found")
	ErrBookingNotFound = errs.New("booking not found")
	ErrRoomConflict    = errs.New("room already booked for the selected dates")
	ErrKeyCollision    = errs.New("access key collision")
	ErrInvalidPeriod   = errs.New("invalid stay period")
	ErrInvalidCharge   = errs.New("invalid charge")

	// Error markers for categorization
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type BookingRepository interface {
	Create(ctx context.Context, db infra.DBTX, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	FindOpenByKey(ctx context.Context, key booking.AccessKey) (*booking.Booking, error)
	AddCharge(ctx context.Context, bookingID uuid.UUID, c booking.Charge) error
	Complete(ctx context.Context, db infra.DBTX, b *booking.Booking) error
	Delete(ctx context.Context, db infra.DBTX, id uuid.UUID) error
	ListViews(ctx context.Context, status, search string) ([]*BookingView, error)
	RevenueBetween(ctx context.Context, from, to time.Time) (int64, int64, error)
	PopularServices(ctx context.Context, from, to time.Time, limit int) ([]ServiceCount, error)
}

type RoomRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error)
	FindByNumber(ctx context.Context, number int) (*room.Room, error)
	FindAll(ctx context.Context) ([]*RoomView, error)
	FindAvailable(ctx context.Context) ([]*RoomView, error)
	FindAvailableForPeriod(ctx context.Context, period booking.StayPeriod) ([]*RoomView, error)
	UpdateStatus(ctx context.Context, db infra.DBTX, id uuid.UUID, status room.Status) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status room.Status) (int64, error)
	Seed(ctx context.Context, count int) error
}

// Mailer is the outbound notification collaborator. SendCheckInKey failures
// are reported to the guest-facing flow; SendFinalBill is best-effort.
type Mailer interface {
	SendCheckInKey(ctx context.Context, guestName, guestEmail, key string) error
	SendFinalBill(ctx context.Context, guestName, guestEmail string, roomNumber int, bill booking.Bill) error
}

// TxRunner starts a database transaction, hands its query surface to fn,
// commits on a nil return and rolls back otherwise. Every call opens a
// fresh transaction.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(tx infra.DBTX) error) error
}

type RoomCache interface {
	GetAvailable(ctx context.Context) ([]*RoomView, error)
	SetAvailable(ctx context.Context, rooms []*RoomView) error
	Invalidate(ctx context.Context) error
}

type CheckInParams struct {
	GuestName        string
	GuestEmail       string
	RoomNumber       int
	CheckInDate      time.Time
	ExpectedCheckOut time.Time
}

type CheckInResult struct {
	BookingID uuid.UUID
	AccessKey string
	EmailSent bool
}

type StatusResult struct {
	Booking       *BookingView
	IsOverstaying bool
}

type BookingUseCase interface {
	CheckIn(ctx context.Context, params CheckInParams) (*CheckInResult, error)
	CheckOut(ctx context.Context, key string) (*BookingView, error)
	AddCharge(ctx context.Context, key, item string, priceCents int64) (*BookingView, error)
	Status(ctx context.Context, key string) (*StatusResult, error)
	List(ctx context.Context, status, search string) ([]*BookingView, error)
	Cancel(ctx context.Context, id uuid.UUID) error
}

type bookingUseCaseImpl struct {
	bookingRepo BookingRepository
	roomRepo    RoomRepository
	mailer      Mailer
	cache       RoomCache
	tx          TxRunner
	clock       clock.Clock
	nightlyRate booking.Money
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	mailer Mailer,
	cache RoomCache,
	tx TxRunner,
	clock clock.Clock,
	nightlyRate booking.Money,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo: bookingRepo,
		roomRepo:    roomRepo,
		mailer:      mailer,
		cache:       cache,
		tx:          tx,
		clock:       clock,
		nightlyRate: nightlyRate,
	}
}

// CheckIn creates a booking. The overlap check is not a separate read: the
// insert itself is guarded by the store's exclusion constraint, so two guests
// racing for the same room and dates cannot both succeed. If the welcome
// email fails the booking stands and the key is handed back directly.
func (u *bookingUseCaseImpl) CheckIn(ctx context.Context, params CheckInParams) (*CheckInResult, error) {
	period, err := booking.NewStayPeriod(params.CheckInDate, params.ExpectedCheckOut)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidPeriod)
	}

	roomEntity, err := u.roomRepo.FindByNumber(ctx, params.RoomNumber)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := booking.NewBooking(
		roomEntity.ID(), params.GuestName, params.GuestEmail,
		period, u.nightlyRate, u.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	if err := u.persistNewBooking(ctx, entity); err != nil {
		return nil, err
	}

	u.invalidateCache(ctx)

	result := &CheckInResult{
		BookingID: entity.ID(),
		AccessKey: entity.AccessKey().String(),
		EmailSent: true,
	}
	if err := u.mailer.SendCheckInKey(ctx, entity.GuestName(), entity.GuestEmail(), result.AccessKey); err != nil {
		slog.Warn("welcome email failed, returning key in response",
			"booking_id", entity.ID(), "error", err.Error())
		result.EmailSent = false
	}
	return result, nil
}

func (u *bookingUseCaseImpl) persistNewBooking(ctx context.Context, entity *booking.Booking) error {
	err := u.createBookingTx(ctx, entity)
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindConflict) {
		return ErrRoomConflict
	}
	if !infra.IsKind(err, infra.KindDuplicateKey) {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// One regeneration attempt for the astronomically unlikely case. The
	// duplicate-key violation aborted the first transaction, so the retry
	// must run in a fresh one.
	if regenErr := entity.RegenerateKey(); regenErr != nil {
		return errs.Mark(regenErr, ErrKeyCollision)
	}
	if retryErr := u.createBookingTx(ctx, entity); retryErr != nil {
		if infra.IsKind(retryErr, infra.KindConflict) {
			return ErrRoomConflict
		}
		return errs.Mark(retryErr, ErrKeyCollision)
	}
	return nil
}

func (u *bookingUseCaseImpl) createBookingTx(ctx context.Context, entity *booking.Booking) error {
	return u.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := u.bookingRepo.Create(ctx, tx, entity); err != nil {
			return err
		}
		if entity.Status() == booking.StatusCheckedIn {
			return u.roomRepo.UpdateStatus(ctx, tx, entity.RoomID(), room.StatusOccupied)
		}
		return nil
	})
}

// CheckOut finalizes the stay and moves the room to cleaning in the same
// transaction; the bill email is best-effort after commit.
func (u *bookingUseCaseImpl) CheckOut(ctx context.Context, key string) (*BookingView, error) {
	entity, err := u.findOpen(ctx, key)
	if err != nil {
		return nil, err
	}

	bill, err := entity.CheckOut(u.nightlyRate, u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	roomEntity, err := u.roomRepo.FindByID(ctx, entity.RoomID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	err = u.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := u.bookingRepo.Complete(ctx, tx, entity); err != nil {
			return err
		}
		return u.roomRepo.UpdateStatus(ctx, tx, entity.RoomID(), room.StatusCleaning)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.invalidateCache(ctx)

	if err := u.mailer.SendFinalBill(ctx, entity.GuestName(), entity.GuestEmail(), roomEntity.Number(), bill); err != nil {
		slog.Warn("bill email failed after checkout", "booking_id", entity.ID(), "error", err.Error())
	}

	return bookingToView(entity, roomEntity.Number()), nil
}

func (u *bookingUseCaseImpl) AddCharge(ctx context.Context, key, item string, priceCents int64) (*BookingView, error) {
	charge, err := booking.NewServiceCharge(item, booking.NewMoney(priceCents), u.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCharge)
	}

	entity, err := u.findOpen(ctx, key)
	if err != nil {
		return nil, err
	}

	if err := entity.AddCharge(charge); err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := u.bookingRepo.AddCharge(ctx, entity.ID(), charge); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	roomEntity, err := u.roomRepo.FindByID(ctx, entity.RoomID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return bookingToView(entity, roomEntity.Number()), nil
}

// Status resolves a guest's key. Completed bookings and unknown keys are
// deliberately indistinguishable.
func (u *bookingUseCaseImpl) Status(ctx context.Context, key string) (*StatusResult, error) {
	entity, err := u.findOpen(ctx, key)
	if err != nil {
		return nil, err
	}

	roomEntity, err := u.roomRepo.FindByID(ctx, entity.RoomID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &StatusResult{
		Booking:       bookingToView(entity, roomEntity.Number()),
		IsOverstaying: entity.IsOverstaying(u.clock.Now()),
	}, nil
}

func (u *bookingUseCaseImpl) List(ctx context.Context, status, search string) ([]*BookingView, error) {
	views, err := u.bookingRepo.ListViews(ctx, status, search)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return views, nil
}

// Cancel removes a booking entirely. A checked-in guest still receives a
// final bill of the charges as accrued; room rent is not prorated because
// cancellation is not a stay-completion event.
func (u *bookingUseCaseImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	entity, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	wasCheckedIn := entity.Status() == booking.StatusCheckedIn
	bill := entity.AccruedBill()

	roomEntity, err := u.roomRepo.FindByID(ctx, entity.RoomID())
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	err = u.tx.RunInTx(ctx, func(tx infra.DBTX) error {
		if err := u.roomRepo.UpdateStatus(ctx, tx, entity.RoomID(), room.StatusAvailable); err != nil {
			return err
		}
		return u.bookingRepo.Delete(ctx, tx, id)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	u.invalidateCache(ctx)

	if wasCheckedIn {
		if err := u.mailer.SendFinalBill(ctx, entity.GuestName(), entity.GuestEmail(), roomEntity.Number(), bill); err != nil {
			slog.Warn("bill email failed after cancellation", "booking_id", id, "error", err.Error())
		}
	}
	return nil
}

func (u *bookingUseCaseImpl) findOpen(ctx context.Context, key string) (*booking.Booking, error) {
	entity, err := u.bookingRepo.FindOpenByKey(ctx, booking.AccessKey(key))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return entity, nil
}

func (u *bookingUseCaseImpl) invalidateCache(ctx context.Context) {
	if err := u.cache.Invalidate(ctx); err != nil {
		slog.Warn("failed to invalidate room cache", "error", err.Error())
	}
}

func bookingToView(b *booking.Booking, roomNumber int) *BookingView {
	charges := make([]ChargeView, len(b.Charges()))
	for i, c := range b.Charges() {
		charges[i] = ChargeView{
			Kind:       c.Kind.String(),
			Item:       c.Item,
			PriceCents: c.Amount.Cents(),
			ChargedAt:  c.ChargedAt,
		}
	}
	return &BookingView{
		ID:               b.ID(),
		RoomID:           b.RoomID(),
		RoomNumber:       roomNumber,
		GuestName:        b.GuestName(),
		GuestEmail:       b.GuestEmail(),
		CheckInDate:      b.Period().CheckIn(),
		ExpectedCheckOut: b.Period().ExpectedCheckOut(),
		CheckedOutAt:     b.CheckedOutAt(),
		Status:           b.Status().String(),
		Charges:          charges,
		TotalCents:       b.Total().Cents(),
		CreatedAt:        b.CreatedAt(),
	}
}
