package request

type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
