package request

type ProcessPaymentRequest struct {
	ReservationID int64   `json:"reservationId" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,notblank,max=50"`
}
