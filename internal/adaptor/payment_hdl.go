package adaptor

import (
	"net/http"

	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/usecase"
	"cinema-reservations/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service usecase.PaymentService
	log     *zap.Logger
}

func NewPaymentHandler(service usecase.PaymentService, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		log:     log.With(zap.String("handler", "payment")),
	}
}

// ProcessPayment handles POST /api/payments
func (h *PaymentHandler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req request.ProcessPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.service.ProcessPayment(r.Context(), &req)
	if err != nil {
		respondWriteError(w, h.log, err, "process payment")
		return
	}

	utils.ResponseCreated(w, payment)
}

// GetPaymentByReservation handles GET /api/payments/reservation/{reservationId}.
// A missing reservation and a reservation without payment are both 404, with
// different messages.
func (h *PaymentHandler) GetPaymentByReservation(w http.ResponseWriter, r *http.Request) {
	reservationID, ok := utils.ParseID(chi.URLParam(r, "reservationId"))
	if !ok {
		utils.ResponseBadRequest(w, "Invalid reservation ID")
		return
	}

	payment, err := h.service.GetPaymentByReservation(r.Context(), reservationID)
	if err != nil {
		respondReadError(w, h.log, err, "get payment by reservation")
		return
	}
	if payment == nil {
		utils.ResponseNotFound(w, "Payment not found for reservation")
		return
	}

	utils.ResponseSuccess(w, payment)
}
