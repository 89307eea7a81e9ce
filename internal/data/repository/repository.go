package repository

import (
	"cinema-reservations/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User         UserRepository
	Reservation  ReservationRepository
	ReservedSeat ReservedSeatRepository
	Payment      PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	seats := NewReservedSeatRepository(db, log)
	payments := NewPaymentRepository(db, log)

	return &Repository{
		User:         NewUserRepository(db, log),
		Reservation:  NewReservationRepository(db, seats, payments, log),
		ReservedSeat: seats,
		Payment:      payments,
	}
}
