package api

import (
	"errors"
	"log/slog"
	"net/http"

	"table-reserve/internal/domain/reservation"
	reqdto "table-reserve/internal/handler/dto/request"
	"table-reserve/internal/handler/httperr"
	"table-reserve/internal/pkg/errs"
	"table-reserve/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentWebhookHandler struct {
	cmds   commands.ReservationCommands
	logger *slog.Logger
}

func NewPaymentWebhookHandler(cmds commands.ReservationCommands, logger *slog.Logger) *PaymentWebhookHandler {
	return &PaymentWebhookHandler{cmds: cmds, logger: logger}
}

// @Summary Payment provider webhook
// @Description Applies the provider's payment outcome to the referenced reservation
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.PaymentWebhookRequest true "Provider notification"
// @Success 200 {object} map[string]string
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /payments/webhook [post]
func (h *PaymentWebhookHandler) Handle(c *gin.Context) {
	var req reqdto.PaymentWebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid webhook payload", nil)
		return
	}

	reservationID, err := uuid.Parse(req.ExternalReference)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid external reference", nil)
		return
	}

	outcome, known := reservation.MapProviderStatus(req.Status)
	if !known {
		// Acknowledge so the provider stops retrying; the reservation stays
		// as it was.
		h.logger.Warn("ignoring unknown provider payment status",
			"status", req.Status,
			"payment_id", req.PaymentID,
			"reservation_id", reservationID,
		)
		c.JSON(http.StatusOK, gin.H{"result": "ignored"})
		return
	}

	update := &reservation.PaymentUpdate{
		Status:            outcome.Payment,
		ProviderPaymentID: req.PaymentID,
		AmountCents:       req.AmountCents,
	}

	_, err = h.cmds.TransitionReservation(
		c.Request.Context(),
		reservationID,
		outcome.Reservation,
		update,
		"payment provider notification: "+req.Status,
	)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Reservation not found", nil)
		case errors.Is(err, errs.ErrIllegalTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Payment outcome conflicts with reservation state", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "applied"})
}
