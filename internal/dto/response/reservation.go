package response

import (
	"time"

	"cinema-reservations/internal/data/entity"
)

type ReservationResponse struct {
	ID              int64                    `json:"id"`
	User            *UserResponse            `json:"user"`
	ScheduleID      int32                    `json:"scheduleId"`
	MovieID         string                   `json:"movieId"`
	TotalAmount     float64                  `json:"totalAmount"`
	Status          entity.ReservationStatus `json:"status"`
	ReservationDate time.Time                `json:"reservationDate"`
	ReservedSeats   []ReservedSeatResponse   `json:"reservedSeats"`
	Payment         *PaymentResponse         `json:"payment"`
}

// ReservedSeatResponse keeps rowNumber and seatNumber in the shape even though the
// seat map lives in another service and they are always null here.
type ReservedSeatResponse struct {
	ID         int64  `json:"id"`
	SeatID     int32  `json:"seatId"`
	RowNumber  *int32 `json:"rowNumber"`
	SeatNumber *int32 `json:"seatNumber"`
}
