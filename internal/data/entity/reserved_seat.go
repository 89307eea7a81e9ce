package entity

type ReservedSeat struct {
	ID            int64 `db:"id"`
	ReservationID int64 `db:"reservation_id"`
	SeatID        int32 `db:"seat_id"`
}
