package room

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRoomNumber = errors.New("room number must be positive")
	ErrInvalidStatus     = errors.New("invalid room status")
)

type Room struct {
	id        uuid.UUID
	number    int
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewRoom(number int, status Status) (*Room, error) {
	if number <= 0 {
		return nil, ErrInvalidRoomNumber
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Room{
		id:     uuid.New(),
		number: number,
		status: status,
	}, nil
}

func ReconstructRoom(id uuid.UUID, number int, status Status, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:        id,
		number:    number,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Room) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	return nil
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Number() int          { return r.number }
func (r *Room) Status() Status       { return r.status }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
