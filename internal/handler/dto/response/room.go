package response

import (
	"pearl-desk/internal/usecase"

	"github.com/google/uuid"
)

type RoomResponse struct {
	ID     uuid.UUID `json:"id"`
	Number int       `json:"number"`
	Status string    `json:"status"`
}

func FromRoomView(rm *usecase.RoomView) *RoomResponse {
	return &RoomResponse{
		ID:     rm.ID,
		Number: rm.Number,
		Status: rm.Status,
	}
}

func FromRoomViews(rms []*usecase.RoomView) []*RoomResponse {
	resp := make([]*RoomResponse, len(rms))
	for i, rm := range rms {
		resp[i] = FromRoomView(rm)
	}
	return resp
}
