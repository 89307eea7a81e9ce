package response

import (
	"time"

	"cinema-reservations/internal/data/entity"
)

type PaymentResponse struct {
	ID            int64                `json:"id"`
	Amount        float64              `json:"amount"`
	PaymentMethod string               `json:"paymentMethod"`
	Status        entity.PaymentStatus `json:"status"`
	TransactionID string               `json:"transactionId"`
	PaymentDate   time.Time            `json:"paymentDate"`
}
