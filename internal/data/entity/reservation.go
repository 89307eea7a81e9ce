package entity

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusExpired   ReservationStatus = "EXPIRED"
)

// Reservation owns its seats and at most one payment. ScheduleID and MovieID point
// at records owned by other services and are never resolved here.
type Reservation struct {
	ID              int64             `db:"id"`
	UserID          int64             `db:"user_id"`
	ScheduleID      int32             `db:"schedule_id"`
	MovieID         string            `db:"movie_id"`
	TotalAmount     float64           `db:"total_amount"`
	Status          ReservationStatus `db:"status"`
	ReservationDate time.Time         `db:"reservation_date"`

	ReservedSeats []ReservedSeat
	Payment       *Payment
}

func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationStatusCancelled
}

func (r *Reservation) HasPayment() bool {
	return r.Payment != nil
}

func (r *Reservation) SeatIDs() []int32 {
	ids := make([]int32, len(r.ReservedSeats))
	for i, seat := range r.ReservedSeats {
		ids[i] = seat.SeatID
	}
	return ids
}
