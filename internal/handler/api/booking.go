package api

import (
	"errors"
	"log/slog"
	"net/http"

	reqdto "pearl-desk/internal/handler/dto/request"
	resdto "pearl-desk/internal/handler/dto/response"
	"pearl-desk/internal/handler/middleware"
	"pearl-desk/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	bookingUseCase usecase.BookingUseCase
	reportUseCase  usecase.ReportUseCase
}

func NewBookingHandler(bookingUseCase usecase.BookingUseCase, reportUseCase usecase.ReportUseCase) *BookingHandler {
	return &BookingHandler{
		bookingUseCase: bookingUseCase,
		reportUseCase:  reportUseCase,
	}
}

// @Summary Guest check-in
// @Description Book a room for a stay and issue an access key
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CheckInRequest true "Check-in request"
// @Success 201 {object} resdto.CheckInResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /bookings/checkin [post]
func (h *BookingHandler) CheckIn(c *gin.Context) {
	var req reqdto.CheckInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	checkInDate, err := reqdto.ParseDate(req.CheckInDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid check_in_date",
		})
		return
	}
	expectedCheckOut, err := reqdto.ParseDate(req.ExpectedCheckOut)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid expected_check_out",
		})
		return
	}

	params := usecase.CheckInParams{
		GuestName:        req.GetGuestName(),
		GuestEmail:       req.GuestEmail,
		RoomNumber:       req.RoomNumber,
		CheckInDate:      checkInDate,
		ExpectedCheckOut: expectedCheckOut,
	}

	result, err := h.bookingUseCase.CheckIn(c.Request.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		case errors.Is(err, usecase.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid stay period",
			})
		case errors.Is(err, usecase.ErrRoomConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Room already booked for the selected dates",
			})
		case errors.Is(err, usecase.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromCheckInResult(result))
}

// @Summary Guest checkout
// @Description Close a stay, compute the final bill and free the room for cleaning
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.CheckOutRequest true "Checkout request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/checkout [post]
func (h *BookingHandler) CheckOut(c *gin.Context) {
	var req reqdto.CheckOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	booking, err := h.bookingUseCase.CheckOut(c.Request.Context(), req.AccessKey)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active booking for this key",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(booking))
}

// @Summary Add service charge
// @Description Append a room-service charge to an open booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.AddChargeRequest true "Charge request"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/add-charge [post]
func (h *BookingHandler) AddCharge(c *gin.Context) {
	var req reqdto.AddChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	booking, err := h.bookingUseCase.AddCharge(c.Request.Context(), req.AccessKey, req.Item, req.PriceCents())
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active booking for this key",
			})
		case errors.Is(err, usecase.ErrInvalidCharge):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid charge",
			})
		case errors.Is(err, usecase.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(booking))
}

// @Summary Booking status
// @Description Look up an open booking by access key
// @Tags bookings
// @Produce json
// @Param key path string true "Access key"
// @Success 200 {object} resdto.BookingStatusResponse
// @Failure 404 {object} map[string]string
// @Router /bookings/status/{key} [get]
func (h *BookingHandler) Status(c *gin.Context) {
	result, err := h.bookingUseCase.Status(c.Request.Context(), c.Param("key"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active booking for this key",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatusResult(result))
}

// @Summary List bookings
// @Description List bookings with optional status filter and guest name search
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param status query string false "Exact status filter"
// @Param search query string false "Case-insensitive guest name substring"
// @Success 200 {array} resdto.BookingResponse
// @Failure 401 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	bookings, err := h.bookingUseCase.List(c.Request.Context(), c.Query("status"), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingViews(bookings))
}

// @Summary Cancel booking
// @Description Delete a booking and free its room; an in-house guest is billed for charges so far
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [delete]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	if err := h.bookingUseCase.Cancel(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	if adminID, ok := middleware.GetAdminID(c); ok {
		adminEmail, _ := middleware.GetAdminEmail(c)
		slog.Info("booking cancelled", "booking_id", id, "admin_id", adminID, "admin_email", adminEmail)
	}

	c.Status(http.StatusNoContent)
}

// @Summary Revenue report
// @Description Revenue, occupancy and popular services for a date range
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param startDate query string true "Report start date (YYYY-MM-DD)"
// @Param endDate query string true "Report end date (YYYY-MM-DD), inclusive"
// @Success 200 {object} resdto.ReportResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /bookings/report [get]
func (h *BookingHandler) Report(c *gin.Context) {
	startDate, err := reqdto.ParseDate(c.Query("startDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid startDate",
		})
		return
	}
	endDate, err := reqdto.ParseDate(c.Query("endDate"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid endDate",
		})
		return
	}

	report, err := h.reportUseCase.Generate(c.Request.Context(), startDate, endDate)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidPeriod):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid report period",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReportView(report))
}
