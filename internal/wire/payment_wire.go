package wire

import (
	"cinema-reservations/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wirePayment(r chi.Router, paymentHandler *adaptor.PaymentHandler) {
	r.Route("/payments", func(r chi.Router) {
		r.Post("/", paymentHandler.ProcessPayment)
		r.Get("/reservation/{reservationId}", paymentHandler.GetPaymentByReservation)
	})
}
