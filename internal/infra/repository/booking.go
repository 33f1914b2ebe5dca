package repository

import (
	"context"
	"errors"
	"time"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/infra"
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeUniqueViolation    = "23505"
	pgErrCodeExclusionViolation = "23P01"
)

type BookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create inserts the booking and its seed charges. The bookings table carries
// an exclusion constraint over (room_id, stay interval) for open bookings, so
// a concurrent double-booking surfaces here as KindConflict instead of
// slipping past a read-then-write check.
func (r *BookingRepository) Create(ctx context.Context, db infra.DBTX, b *booking.Booking) error {
	_, err := db.Exec(ctx, `
		INSERT INTO bookings (id, room_id, guest_name, guest_email, check_in, expected_check_out, access_key, status, total_cents)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID(), b.RoomID(), b.GuestName(), b.GuestEmail(),
		b.Period().CheckIn(), b.Period().ExpectedCheckOut(),
		b.AccessKey().String(), b.Status().String(), b.Total().Cents())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgErrCodeExclusionViolation:
				return infra.WrapRepoErr("room already booked for an overlapping period", err, infra.KindConflict)
			case pgErrCodeUniqueViolation:
				return infra.WrapRepoErr("access key already exists", err, infra.KindDuplicateKey)
			}
		}
		return infra.WrapRepoErr("failed to create booking", err)
	}

	for _, c := range b.Charges() {
		if err := insertCharge(ctx, db, b.ID(), c); err != nil {
			return err
		}
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindOpenByKey matches only non-completed bookings, so a completed stay and
// an unknown key are indistinguishable to the caller.
func (r *BookingRepository) FindOpenByKey(ctx context.Context, key booking.AccessKey) (*booking.Booking, error) {
	return r.findOne(ctx, `WHERE access_key = $1 AND status <> '`+booking.StatusCompleted.String()+`'`, key.String())
}

func (r *BookingRepository) findOne(ctx context.Context, where string, arg any) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, room_id, guest_name, guest_email, check_in, expected_check_out,
		       access_key, status, total_cents, checked_out_at, created_at, updated_at
		FROM bookings `+where, arg)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	charges, err := r.loadCharges(ctx, b.ID())
	if err != nil {
		return nil, err
	}

	return withCharges(b, charges), nil
}

func (r *BookingRepository) AddCharge(ctx context.Context, bookingID uuid.UUID, c booking.Charge) error {
	return insertCharge(ctx, r.db, bookingID, c)
}

// Complete persists a checkout: the booking row is finalized and the rent
// charge is rewritten with the computed amount.
func (r *BookingRepository) Complete(ctx context.Context, db infra.DBTX, b *booking.Booking) error {
	cmd, err := db.Exec(ctx, `
		UPDATE bookings
		SET status = $1, total_cents = $2, checked_out_at = $3, updated_at = now()
		WHERE id = $4`,
		b.Status().String(), b.Total().Cents(), b.CheckedOutAt(), b.ID())
	if err != nil {
		return infra.WrapRepoErr("failed to complete booking", err)
	}
	if cmd.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	rent := booking.Bill{Charges: b.Charges()}.RentAmount()
	tag, err := db.Exec(ctx, `
		UPDATE charges SET amount_cents = $1
		WHERE booking_id = $2 AND kind = $3`,
		rent.Cents(), b.ID(), booking.ChargeRoomRent.String())
	if err != nil {
		return infra.WrapRepoErr("failed to update rent charge", err)
	}
	if tag.RowsAffected() == 0 {
		for _, c := range b.Charges() {
			if c.Kind == booking.ChargeRoomRent {
				if err := insertCharge(ctx, db, b.ID(), c); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, db infra.DBTX, id uuid.UUID) error {
	cmd, err := db.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if cmd.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// ListViews returns bookings joined with their room, newest stay first.
// Status filters exactly; search matches a case-insensitive substring of the
// guest name.
func (r *BookingRepository) ListViews(ctx context.Context, status, search string) ([]*usecase.BookingView, error) {
	query := `
		SELECT b.id, b.room_id, r.room_number, b.guest_name, b.guest_email,
		       b.check_in, b.expected_check_out, b.checked_out_at, b.status,
		       b.total_cents, b.created_at
		FROM bookings b
		JOIN rooms r ON r.id = b.room_id
		WHERE ($1 = '' OR b.status = $1)
		  AND ($2 = '' OR b.guest_name ILIKE '%' || $2 || '%')
		ORDER BY b.check_in DESC`

	rows, err := r.db.Query(ctx, query, status, search)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*usecase.BookingView
	for rows.Next() {
		var v usecase.BookingView
		if err := rows.Scan(&v.ID, &v.RoomID, &v.RoomNumber, &v.GuestName, &v.GuestEmail,
			&v.CheckInDate, &v.ExpectedCheckOut, &v.CheckedOutAt, &v.Status,
			&v.TotalCents, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking rows", err)
	}

	for _, v := range result {
		charges, err := r.loadCharges(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.Charges = chargeViews(charges)
	}
	return result, nil
}

// RevenueBetween sums totals of bookings completed inside the window.
func (r *BookingRepository) RevenueBetween(ctx context.Context, from, to time.Time) (int64, int64, error) {
	var revenue, count int64
	err := r.db.QueryRow(ctx, `
		SELECT coalesce(sum(total_cents), 0), count(*)
		FROM bookings
		WHERE status = $1 AND checked_out_at >= $2 AND checked_out_at <= $3`,
		booking.StatusCompleted.String(), from, to).Scan(&revenue, &count)
	if err != nil {
		return 0, 0, infra.WrapRepoErr("failed to aggregate revenue", err)
	}
	return revenue, count, nil
}

// PopularServices ranks non-rent charge items of completed stays in the
// window by frequency.
func (r *BookingRepository) PopularServices(ctx context.Context, from, to time.Time, limit int) ([]usecase.ServiceCount, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.item, count(*) AS cnt
		FROM charges c
		JOIN bookings b ON b.id = c.booking_id
		WHERE b.status = $1 AND b.checked_out_at >= $2 AND b.checked_out_at <= $3
		  AND c.kind <> $4
		GROUP BY c.item
		ORDER BY cnt DESC
		LIMIT $5`,
		booking.StatusCompleted.String(), from, to, booking.ChargeRoomRent.String(), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to rank services", err)
	}
	defer rows.Close()

	var result []usecase.ServiceCount
	for rows.Next() {
		var sc usecase.ServiceCount
		if err := rows.Scan(&sc.Item, &sc.Count); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		result = append(result, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read service rows", err)
	}
	return result, nil
}

func (r *BookingRepository) loadCharges(ctx context.Context, bookingID uuid.UUID) ([]booking.Charge, error) {
	rows, err := r.db.Query(ctx, `
		SELECT kind, item, amount_cents, created_at
		FROM charges WHERE booking_id = $1 ORDER BY created_at, id`,
		bookingID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load charges", err)
	}
	defer rows.Close()

	var charges []booking.Charge
	for rows.Next() {
		var (
			kind   string
			item   string
			amount int64
			at     time.Time
		)
		if err := rows.Scan(&kind, &item, &amount, &at); err != nil {
			return nil, infra.WrapRepoErr("failed to scan charge row", err)
		}
		charges = append(charges, booking.Charge{
			Kind:      booking.ChargeKind(kind),
			Item:      item,
			Amount:    booking.NewMoney(amount),
			ChargedAt: at,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read charge rows", err)
	}
	return charges, nil
}

func insertCharge(ctx context.Context, db infra.DBTX, bookingID uuid.UUID, c booking.Charge) error {
	_, err := db.Exec(ctx, `
		INSERT INTO charges (id, booking_id, kind, item, amount_cents, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), bookingID, c.Kind.String(), c.Item, c.Amount.Cents(), c.ChargedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to insert charge", err)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id           uuid.UUID
		roomID       uuid.UUID
		guestName    string
		guestEmail   string
		checkIn      time.Time
		expectedOut  time.Time
		accessKey    string
		status       string
		totalCents   int64
		checkedOutAt *time.Time
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &roomID, &guestName, &guestEmail, &checkIn, &expectedOut,
		&accessKey, &status, &totalCents, &checkedOutAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	period, err := booking.NewStayPeriod(checkIn, expectedOut)
	if err != nil {
		return nil, err
	}

	return booking.ReconstructBooking(
		id, roomID, guestName, guestEmail, period,
		booking.Status(status), booking.AccessKey(accessKey),
		nil, booking.NewMoney(totalCents), checkedOutAt, createdAt, updatedAt,
	), nil
}

func withCharges(b *booking.Booking, charges []booking.Charge) *booking.Booking {
	return booking.ReconstructBooking(
		b.ID(), b.RoomID(), b.GuestName(), b.GuestEmail(), b.Period(),
		b.Status(), b.AccessKey(), charges, b.Total(), b.CheckedOutAt(),
		b.CreatedAt(), b.UpdatedAt(),
	)
}

func chargeViews(charges []booking.Charge) []usecase.ChargeView {
	views := make([]usecase.ChargeView, len(charges))
	for i, c := range charges {
		views[i] = usecase.ChargeView{
			Kind:       c.Kind.String(),
			Item:       c.Item,
			PriceCents: c.Amount.Cents(),
			ChargedAt:  c.ChargedAt,
		}
	}
	return views
}
