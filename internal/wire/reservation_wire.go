package wire

import (
	"cinema-reservations/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReservation(r chi.Router, reservationHandler *adaptor.ReservationHandler) {
	r.Route("/reservations", func(r chi.Router) {
		r.Get("/", reservationHandler.ListReservations)
		r.Post("/", reservationHandler.CreateReservation)
		r.Get("/user/{userId}", reservationHandler.ListByUser)
		r.Get("/movie/{movieId}", reservationHandler.ListByMovie)
		r.Get("/schedule/{scheduleId}", reservationHandler.ListBySchedule)
		r.Get("/{id}", reservationHandler.GetReservation)
		r.Put("/{id}/cancel", reservationHandler.CancelReservation)
		r.Delete("/{id}", reservationHandler.DeleteReservation)
	})
}
