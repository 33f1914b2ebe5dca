//go:build unit

package builder

import (
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
)

type RoomBuilder struct {
	ID     uuid.UUID
	Number int
	Status string
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{
		ID:     uuid.New(),
		Number: 42,
		Status: "available",
	}
}

func (r *RoomBuilder) WithNumber(number int) *RoomBuilder {
	r.Number = number
	return r
}

func (r *RoomBuilder) WithStatus(status string) *RoomBuilder {
	r.Status = status
	return r
}

func (r *RoomBuilder) BuildView() *usecase.RoomView {
	return &usecase.RoomView{
		ID:     r.ID,
		Number: r.Number,
		Status: r.Status,
	}
}
