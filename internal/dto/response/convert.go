package response

import (
	"fmt"

	"cinema-reservations/internal/data/entity"

	"github.com/jinzhu/copier"
)

func UserToResponse(user *entity.User) (*UserResponse, error) {
	if user == nil {
		return nil, nil
	}
	var out UserResponse
	if err := copier.Copy(&out, user); err != nil {
		return nil, fmt.Errorf("copy user %d: %w", user.ID, err)
	}
	return &out, nil
}

func UserToSummary(user *entity.User) (UserSummaryResponse, error) {
	var out UserSummaryResponse
	if err := copier.Copy(&out, user); err != nil {
		return out, fmt.Errorf("copy user summary %d: %w", user.ID, err)
	}
	return out, nil
}

func PaymentToResponse(payment *entity.Payment) (*PaymentResponse, error) {
	if payment == nil {
		return nil, nil
	}
	var out PaymentResponse
	if err := copier.Copy(&out, payment); err != nil {
		return nil, fmt.Errorf("copy payment %d: %w", payment.ID, err)
	}
	out.Status = payment.PaymentStatus
	return &out, nil
}

// ReservationToResponse flattens the reservation with its owner, seats and payment.
// Nested shapes carry no reference back to the reservation.
func ReservationToResponse(reservation *entity.Reservation, user *entity.User) (*ReservationResponse, error) {
	var out ReservationResponse
	if err := copier.Copy(&out, reservation); err != nil {
		return nil, fmt.Errorf("copy reservation %d: %w", reservation.ID, err)
	}

	seats := make([]ReservedSeatResponse, 0, len(reservation.ReservedSeats))
	for _, seat := range reservation.ReservedSeats {
		seats = append(seats, ReservedSeatResponse{ID: seat.ID, SeatID: seat.SeatID})
	}
	out.ReservedSeats = seats

	var err error
	if out.User, err = UserToResponse(user); err != nil {
		return nil, err
	}
	if out.Payment, err = PaymentToResponse(reservation.Payment); err != nil {
		return nil, err
	}

	return &out, nil
}
