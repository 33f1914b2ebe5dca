package repository

import (
	"context"
	"errors"
	"time"

	"pearl-desk/internal/domain/booking"
	"pearl-desk/internal/domain/room"
	"pearl-desk/internal/infra"
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

const roomColumns = `id, room_number, status, created_at, updated_at`

func scanRoom(row pgx.Row) (*room.Room, error) {
	var (
		id        uuid.UUID
		number    int
		status    string
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &number, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return room.ReconstructRoom(id, number, room.Status(status), createdAt, updatedAt), nil
}

func (r *RoomRepository) FindByID(ctx context.Context, id uuid.UUID) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id = $1`, id)
	entity, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by ID", err)
	}
	return entity, nil
}

func (r *RoomRepository) FindByNumber(ctx context.Context, number int) (*room.Room, error) {
	row := r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE room_number = $1`, number)
	entity, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room by number", err)
	}
	return entity, nil
}

func (r *RoomRepository) FindAll(ctx context.Context) ([]*usecase.RoomView, error) {
	rows, err := r.db.Query(ctx, `SELECT id, room_number, status FROM rooms ORDER BY room_number`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rooms", err)
	}
	defer rows.Close()

	return collectRoomViews(rows)
}

func (r *RoomRepository) FindAvailable(ctx context.Context) ([]*usecase.RoomView, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, room_number, status FROM rooms WHERE status = $1 ORDER BY room_number`,
		room.StatusAvailable.String())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list available rooms", err)
	}
	defer rows.Close()

	return collectRoomViews(rows)
}

// FindAvailableForPeriod resolves availability for a half-open stay period in
// one query: available-status rooms with no open booking whose interval
// overlaps. Touching boundaries do not conflict.
func (r *RoomRepository) FindAvailableForPeriod(ctx context.Context, period booking.StayPeriod) ([]*usecase.RoomView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.room_number, r.status
		FROM rooms r
		WHERE r.status = $1
		  AND NOT EXISTS (
			SELECT 1 FROM bookings b
			WHERE b.room_id = r.id
			  AND b.status <> $2
			  AND b.check_in < $4
			  AND b.expected_check_out > $3
		  )
		ORDER BY r.room_number`,
		room.StatusAvailable.String(),
		booking.StatusCompleted.String(),
		period.CheckIn(),
		period.ExpectedCheckOut(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to resolve room availability", err)
	}
	defer rows.Close()

	return collectRoomViews(rows)
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, db infra.DBTX, id uuid.UUID, status room.Status) error {
	cmd, err := db.Exec(ctx,
		`UPDATE rooms SET status = $1, updated_at = now() WHERE id = $2`,
		status.String(), id)
	if err != nil {
		return infra.WrapRepoErr("failed to update room status", err)
	}
	if cmd.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RoomRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM rooms`).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr("failed to count rooms", err)
	}
	return count, nil
}

func (r *RoomRepository) CountByStatus(ctx context.Context, status room.Status) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM rooms WHERE status = $1`, status.String()).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count rooms by status", err)
	}
	return count, nil
}

// Seed inserts the initial room inventory. Called once at startup when the
// table is empty.
func (r *RoomRepository) Seed(ctx context.Context, count int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return infra.WrapRepoErr("failed to begin seed transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for number := 1; number <= count; number++ {
		entity, err := room.NewRoom(number, room.StatusAvailable)
		if err != nil {
			return infra.WrapRepoErr("invalid seed room", err)
		}
		_, err = tx.Exec(ctx,
			`INSERT INTO rooms (id, room_number, status) VALUES ($1, $2, $3)`,
			entity.ID(), entity.Number(), entity.Status().String())
		if err != nil {
			return infra.WrapRepoErr("failed to seed rooms", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return infra.WrapRepoErr("failed to commit seed transaction", err)
	}
	return nil
}

func collectRoomViews(rows pgx.Rows) ([]*usecase.RoomView, error) {
	var result []*usecase.RoomView
	for rows.Next() {
		var v usecase.RoomView
		if err := rows.Scan(&v.ID, &v.Number, &v.Status); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		result = append(result, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read room rows", err)
	}
	return result, nil
}
