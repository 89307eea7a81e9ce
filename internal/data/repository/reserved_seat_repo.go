package repository

import (
	"context"
	"fmt"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/pkg/database"
	"cinema-reservations/pkg/errs"

	"go.uber.org/zap"
)

type ReservedSeatRepository interface {
	// CreateBatch inserts the seats for reservationID using q, which is normally the
	// transaction that created the reservation. Generated ids are written back.
	CreateBatch(ctx context.Context, q database.Querier, reservationID int64, seats []entity.ReservedSeat) error
	FindByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64][]entity.ReservedSeat, error)
}

type reservedSeatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservedSeatRepository(db database.PgxIface, log *zap.Logger) ReservedSeatRepository {
	return &reservedSeatRepository{
		db:  db,
		log: log.With(zap.String("repository", "reserved_seat")),
	}
}

func (r *reservedSeatRepository) CreateBatch(ctx context.Context, q database.Querier, reservationID int64, seats []entity.ReservedSeat) error {
	query := `
		INSERT INTO reserved_seats (reservation_id, seat_id)
		VALUES ($1, $2)
		RETURNING id
	`

	for i := range seats {
		seats[i].ReservationID = reservationID

		if err := q.QueryRow(ctx, query, reservationID, seats[i].SeatID).Scan(&seats[i].ID); err != nil {
			r.log.Error("Failed to create reserved seat",
				zap.Error(err),
				zap.Int64("reservation_id", reservationID),
				zap.Int32("seat_id", seats[i].SeatID),
			)
			return errs.Internal(err, fmt.Sprintf("create reserved seat %d for reservation %d", seats[i].SeatID, reservationID))
		}
	}

	return nil
}

func (r *reservedSeatRepository) FindByReservationIDs(ctx context.Context, reservationIDs []int64) (map[int64][]entity.ReservedSeat, error) {
	result := make(map[int64][]entity.ReservedSeat, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, reservation_id, seat_id
		FROM reserved_seats
		WHERE reservation_id = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, reservationIDs)
	if err != nil {
		r.log.Error("Failed to find reserved seats",
			zap.Error(err),
			zap.Int("reservation_count", len(reservationIDs)),
		)
		return nil, errs.Internal(err, "find reserved seats")
	}
	defer rows.Close()

	for rows.Next() {
		var seat entity.ReservedSeat
		if err := rows.Scan(&seat.ID, &seat.ReservationID, &seat.SeatID); err != nil {
			r.log.Error("Failed to scan reserved seat row", zap.Error(err))
			return nil, errs.Internal(err, "scan reserved seat row")
		}
		result[seat.ReservationID] = append(result[seat.ReservationID], seat)
	}

	if err := rows.Err(); err != nil {
		return nil, errs.Internal(err, "iterate reserved seat rows")
	}

	return result, nil
}
