package entity

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

type Payment struct {
	ID            int64         `db:"id"`
	ReservationID int64         `db:"reservation_id"`
	Amount        float64       `db:"amount"`
	PaymentMethod string        `db:"payment_method"`
	PaymentStatus PaymentStatus `db:"payment_status"`
	TransactionID string        `db:"transaction_id"`
	PaymentDate   time.Time     `db:"payment_date"`
}
