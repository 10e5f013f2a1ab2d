package api

import (
	"errors"
	"net/http"
	"time"

	"table-reserve/internal/domain/reservation"
	reqdto "table-reserve/internal/handler/dto/request"
	resdto "table-reserve/internal/handler/dto/response"
	"table-reserve/internal/handler/httperr"
	"table-reserve/internal/pkg/errs"
	"table-reserve/internal/usecase/commands"
	"table-reserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a table for a date and time slot; payment window opens on success
// @Tags reservations
// @Accept json
// @Produce json
// @Param request body reqdto.CreateReservationRequest true "Reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req.ToInput())
	if err != nil {
		var validationErr *reservation.ValidationError
		switch {
		case errors.As(err, &validationErr):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Validation failed", validationErr.Violations)
		case errors.Is(err, errs.ErrSlotUnavailable):
			httperr.AbortWithError(c, http.StatusConflict, err, "This slot just became unavailable, choose another", nil)
		case errors.Is(err, errs.ErrLockHeld):
			httperr.AbortWithError(c, http.StatusConflict, err, "Table is being booked by someone else, try again shortly", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromReservationView(result.Reservation))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) Get(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Cancel reservation
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.CancelReservationRequest false "Cancellation reason"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations/{id}/cancel [post]
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	var req reqdto.CancelReservationRequest
	_ = c.ShouldBindJSON(&req)
	reason := req.Reason
	if reason == "" {
		reason = "cancelled by customer"
	}

	view, err := h.cmds.TransitionReservation(c.Request.Context(), id, reservation.StatusCancelled, nil, reason)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, errs.ErrIllegalTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Reservation can no longer be cancelled", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Payment window status
// @Description Polling view of the payment countdown
// @Tags reservations
// @Produce json
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.PaymentWindowResponse
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id}/payment [get]
func (h *ReservationHandler) PaymentWindow(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	view, err := h.q.GetPaymentWindow(c.Request.Context(), id)
	if err != nil {
		abortLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentWindow(view))
}

// @Summary Renew payment window
// @Description Restart the payment countdown while the reservation is still pending
// @Tags reservations
// @Accept json
// @Produce json
// @Param id path string true "Reservation ID"
// @Param request body reqdto.RenewPaymentRequest false "Extension"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} httperr.Response
// @Router /reservations/{id}/renew [post]
func (h *ReservationHandler) RenewPayment(c *gin.Context) {
	id, ok := parseReservationID(c)
	if !ok {
		return
	}

	var req reqdto.RenewPaymentRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
			return
		}
	}

	renewed, err := h.cmds.RenewPaymentWindow(c.Request.Context(), id, time.Duration(req.ExtraMinutes)*time.Minute)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{"renewed": renewed})
}

func parseReservationID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid reservation ID format", nil)
		return uuid.Nil, false
	}
	return id, true
}

func abortLookupError(c *gin.Context, err error) {
	if errors.Is(err, errs.ErrReservationNotFound) {
		httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
}
