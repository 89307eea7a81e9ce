package repository

import (
	"context"
	"fmt"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/pkg/database"
	"cinema-reservations/pkg/errs"

	"go.uber.org/zap"
)

type PaymentRepository interface {
	// Create inserts the payment through q. A second payment for the same
	// reservation violates UNIQUE(reservation_id) and comes back as a conflict.
	Create(ctx context.Context, q database.Querier, payment *entity.Payment) error
	FindByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64]*entity.Payment, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, q database.Querier, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (reservation_id, amount, payment_method, payment_status, transaction_id, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := q.QueryRow(ctx, query,
		payment.ReservationID,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaymentStatus,
		payment.TransactionID,
		payment.PaymentDate,
	).Scan(&payment.ID)

	if isUniqueViolation(err) {
		return errs.Conflict("Payment already exists for this reservation")
	}
	if isForeignKeyViolation(err) {
		return errs.NotFound("Reservation not found with id: %d", payment.ReservationID)
	}
	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.Int64("reservation_id", payment.ReservationID),
			zap.String("transaction_id", payment.TransactionID),
		)
		return errs.Internal(err, fmt.Sprintf("create payment for reservation %d", payment.ReservationID))
	}

	return nil
}

func (r *paymentRepository) FindByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64]*entity.Payment, error) {
	result := make(map[int64]*entity.Payment, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, reservation_id, amount, payment_method, payment_status, transaction_id, payment_date
		FROM payments
		WHERE reservation_id = ANY($1)
	`

	rows, err := r.db.Query(ctx, query, reservationIDs)
	if err != nil {
		r.log.Error("Failed to find payments",
			zap.Error(err),
			zap.Int("reservation_count", len(reservationIDs)),
		)
		return nil, errs.Internal(err, "find payments")
	}
	defer rows.Close()

	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.ReservationID,
			&payment.Amount,
			&payment.PaymentMethod,
			&payment.PaymentStatus,
			&payment.TransactionID,
			&payment.PaymentDate,
		)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, errs.Internal(err, "scan payment row")
		}
		result[payment.ReservationID] = &payment
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err, "iterate payment rows")
	}

	return result, nil
}
