package request

type CreateReservationRequest struct {
	UserID      int64   `json:"userId" validate:"required"`
	ScheduleID  int32   `json:"scheduleId" validate:"required"`
	MovieID     string  `json:"movieId" validate:"required,notblank,max=64"`
	TotalAmount float64 `json:"totalAmount" validate:"required,gt=0"`
	// an empty list is accepted, a missing one is not
	SeatIDs []int32 `json:"seatIds" validate:"required"`
}
