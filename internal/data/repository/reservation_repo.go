package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/pkg/database"
	"cinema-reservations/pkg/errs"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReservationRepository interface {
	// Create inserts the reservation and its seats in one transaction
	Create(ctx context.Context, reservation *entity.Reservation) error
	FindByID(ctx context.Context, id int64) (*entity.Reservation, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error)
	FindByUserID(ctx context.Context, userID int64) ([]*entity.Reservation, error)
	FindByMovieID(ctx context.Context, movieID string) ([]*entity.Reservation, error)
	FindByScheduleID(ctx context.Context, scheduleID int32) ([]*entity.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) error
	Delete(ctx context.Context, id int64) error

	// AttachPayment stores the payment and, when status is not empty, moves the
	// reservation to status. Both writes commit together.
	AttachPayment(ctx context.Context, payment *entity.Payment, status entity.ReservationStatus) error
	// ExpirePending marks PENDING reservations made before cutoff as EXPIRED and
	// returns their ids.
	ExpirePending(ctx context.Context, cutoff time.Time) ([]int64, error)
}

type reservationRepository struct {
	db       database.PgxIface
	seats    ReservedSeatRepository
	payments PaymentRepository
	log      *zap.Logger
}

func NewReservationRepository(db database.PgxIface, seats ReservedSeatRepository, payments PaymentRepository, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:       db,
		seats:    seats,
		payments: payments,
		log:      log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, user_id, schedule_id, movie_id, total_amount, status, reservation_date`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := row.Scan(
		&reservation.ID,
		&reservation.UserID,
		&reservation.ScheduleID,
		&reservation.MovieID,
		&reservation.TotalAmount,
		&reservation.Status,
		&reservation.ReservationDate,
	)
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (user_id, schedule_id, movie_id, total_amount, status, reservation_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, query,
			reservation.UserID,
			reservation.ScheduleID,
			reservation.MovieID,
			reservation.TotalAmount,
			reservation.Status,
			reservation.ReservationDate,
		).Scan(&reservation.ID)

		if isForeignKeyViolation(err) {
			return errs.NotFound("User not found with id: %d", reservation.UserID)
		}
		if err != nil {
			r.log.Error("Failed to create reservation",
				zap.Error(err),
				zap.Int64("user_id", reservation.UserID),
				zap.String("movie_id", reservation.MovieID),
			)
			return errs.Internal(err, fmt.Sprintf("create reservation for user %d", reservation.UserID))
		}

		return r.seats.CreateBatch(ctx, tx, reservation.ID, reservation.ReservedSeats)
	})
	if err != nil {
		return err
	}

	r.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int("seats", len(reservation.ReservedSeats)),
	)
	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id int64) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.Int64("reservation_id", id),
		)
		return nil, errs.Internal(err, fmt.Sprintf("find reservation by ID %d", id))
	}

	if err := r.loadChildren(ctx, []*entity.Reservation{reservation}); err != nil {
		return nil, err
	}

	return reservation, nil
}

func (r *reservationRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	return r.list(ctx, "find all reservations", query, limit, offset)
}

func (r *reservationRepository) FindByUserID(ctx context.Context, userID int64) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE user_id = $1
		ORDER BY reservation_date DESC, id DESC
	`
	return r.list(ctx, fmt.Sprintf("find reservations by user %d", userID), query, userID)
}

func (r *reservationRepository) FindByMovieID(ctx context.Context, movieID string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE movie_id = $1
		ORDER BY id
	`
	return r.list(ctx, fmt.Sprintf("find reservations by movie %s", movieID), query, movieID)
}

func (r *reservationRepository) FindByScheduleID(ctx context.Context, scheduleID int32) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE schedule_id = $1
		ORDER BY id
	`
	return r.list(ctx, fmt.Sprintf("find reservations by schedule %d", scheduleID), query, scheduleID)
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id int64, status entity.ReservationStatus) error {
	return r.updateStatus(ctx, r.db, id, status)
}

func (r *reservationRepository) updateStatus(ctx context.Context, q database.Querier, id int64, status entity.ReservationStatus) error {
	result, err := q.Exec(ctx, `UPDATE reservations SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.Int64("reservation_id", id),
			zap.String("status", string(status)),
		)
		return errs.Internal(err, fmt.Sprintf("update reservation %d status", id))
	}

	if result.RowsAffected() == 0 {
		return errs.NotFound("Reservation not found with id: %d", id)
	}

	return nil
}

// Delete removes the reservation. Seats and payment go with it through ON DELETE CASCADE.
func (r *reservationRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete reservation",
			zap.Error(err),
			zap.Int64("reservation_id", id),
		)
		return errs.Internal(err, fmt.Sprintf("delete reservation %d", id))
	}

	if result.RowsAffected() == 0 {
		return errs.NotFound("Reservation not found with id: %d", id)
	}

	r.log.Info("Reservation deleted", zap.Int64("reservation_id", id))
	return nil
}

func (r *reservationRepository) AttachPayment(ctx context.Context, payment *entity.Payment, status entity.ReservationStatus) error {
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		if err := r.payments.Create(ctx, tx, payment); err != nil {
			return err
		}
		if status == "" {
			return nil
		}
		return r.updateStatus(ctx, tx, payment.ReservationID, status)
	})
}

func (r *reservationRepository) ExpirePending(ctx context.Context, cutoff time.Time) ([]int64, error) {
	query := `
		UPDATE reservations
		SET status = $1
		WHERE status = $2 AND reservation_date < $3
		RETURNING id
	`

	rows, err := r.db.Query(ctx, query,
		entity.ReservationStatusExpired,
		entity.ReservationStatusPending,
		cutoff,
	)
	if err != nil {
		r.log.Error("Failed to expire pending reservations", zap.Error(err), zap.Time("cutoff", cutoff))
		return nil, errs.Internal(err, "expire pending reservations")
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, errs.Internal(err, "scan expired reservation id")
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err, "iterate expired reservation ids")
	}

	return ids, nil
}

func (r *reservationRepository) list(ctx context.Context, op, query string, args ...any) ([]*entity.Reservation, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query reservations", zap.Error(err), zap.String("operation", op))
		return nil, errs.Internal(err, op)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, errs.Internal(err, "scan reservation row")
		}
		reservations = append(reservations, reservation)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err, "iterate reservation rows")
	}
	rows.Close()

	if err := r.loadChildren(ctx, reservations); err != nil {
		return nil, err
	}

	return reservations, nil
}

// loadChildren fills seats and payment for every reservation with two batched queries
func (r *reservationRepository) loadChildren(ctx context.Context, reservations []*entity.Reservation) error {
	if len(reservations) == 0 {
		return nil
	}

	ids := make([]int64, len(reservations))
	for i, reservation := range reservations {
		ids[i] = reservation.ID
	}

	seats, err := r.seats.FindByReservationIDs(ctx, ids)
	if err != nil {
		return err
	}
	payments, err := r.payments.FindByReservationIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, reservation := range reservations {
		reservation.ReservedSeats = seats[reservation.ID]
		reservation.Payment = payments[reservation.ID]
	}

	return nil
}
