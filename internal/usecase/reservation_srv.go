package usecase

import (
	"context"
	"strings"
	"time"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/internal/data/repository"
	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/dto/response"
	"cinema-reservations/pkg/clock"
	"cinema-reservations/pkg/errs"
	"cinema-reservations/pkg/events"

	"go.uber.org/zap"
)

type ReservationService interface {
	ListReservations(ctx context.Context, req request.ListRequest) ([]*response.ReservationResponse, error)
	GetReservation(ctx context.Context, id int64) (*response.ReservationResponse, error)
	ListByUser(ctx context.Context, userID int64) ([]*response.ReservationResponse, error)
	ListByMovie(ctx context.Context, movieID string) ([]*response.ReservationResponse, error)
	ListBySchedule(ctx context.Context, scheduleID int32) ([]*response.ReservationResponse, error)

	// CreateReservation does not check seat availability or schedule capacity.
	// Two reservations may hold the same seat, and a resubmitted request creates a
	// second reservation.
	CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	// CancelReservation only rejects reservations that are already cancelled
	CancelReservation(ctx context.Context, id int64) (*response.ReservationResponse, error)
	DeleteReservation(ctx context.Context, id int64) error

	// ExpireStale moves PENDING reservations older than olderThan to EXPIRED and
	// returns how many changed
	ExpireStale(ctx context.Context, olderThan time.Duration) (int, error)
}

type reservationService struct {
	reservationRepo repository.ReservationRepository
	userRepo        repository.UserRepository
	publisher       events.Publisher
	clock           clock.Clock
	log             *zap.Logger
}

func NewReservationService(
	reservationRepo repository.ReservationRepository,
	userRepo repository.UserRepository,
	publisher events.Publisher,
	clk clock.Clock,
	log *zap.Logger,
) ReservationService {
	return &reservationService{
		reservationRepo: reservationRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		clock:           clk,
		log:             log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) ListReservations(ctx context.Context, req request.ListRequest) ([]*response.ReservationResponse, error) {
	reservations, err := s.reservationRepo.FindAll(ctx, req.Limit, req.Offset)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

func (s *reservationService) GetReservation(ctx context.Context, id int64) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, reservation)
}

func (s *reservationService) ListByUser(ctx context.Context, userID int64) ([]*response.ReservationResponse, error) {
	reservations, err := s.reservationRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

func (s *reservationService) ListByMovie(ctx context.Context, movieID string) ([]*response.ReservationResponse, error) {
	movieID = strings.TrimSpace(movieID)
	if movieID == "" {
		return nil, errs.Validation("Movie id must not be blank")
	}

	reservations, err := s.reservationRepo.FindByMovieID(ctx, movieID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

func (s *reservationService) ListBySchedule(ctx context.Context, scheduleID int32) ([]*response.ReservationResponse, error) {
	reservations, err := s.reservationRepo.FindByScheduleID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(ctx, reservations)
}

func (s *reservationService) CreateReservation(ctx context.Context, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.NotFound("User not found with id: %d", req.UserID)
	}

	seats := make([]entity.ReservedSeat, 0, len(req.SeatIDs))
	for _, seatID := range req.SeatIDs {
		seats = append(seats, entity.ReservedSeat{SeatID: seatID})
	}

	reservation := &entity.Reservation{
		UserID:          user.ID,
		ScheduleID:      req.ScheduleID,
		MovieID:         req.MovieID,
		TotalAmount:     req.TotalAmount,
		Status:          entity.ReservationStatusPending,
		ReservationDate: s.clock.Now(),
		ReservedSeats:   seats,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	s.log.Info("Reservation created",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("user_id", user.ID),
		zap.Int32("schedule_id", reservation.ScheduleID),
		zap.Int("seats", len(seats)),
	)
	s.emit(ctx, events.ReservationCreated, reservation)

	return s.project(reservation, user)
}

func (s *reservationService) CancelReservation(ctx context.Context, id int64) (*response.ReservationResponse, error) {
	reservation, err := s.findReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	if reservation.IsCancelled() {
		return nil, errs.Conflict("Reservation is already cancelled")
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, entity.ReservationStatusCancelled); err != nil {
		return nil, err
	}
	reservation.Status = entity.ReservationStatusCancelled

	s.log.Info("Reservation cancelled", zap.Int64("reservation_id", id))
	s.emit(ctx, events.ReservationCancelled, reservation)

	return s.toResponse(ctx, reservation)
}

func (s *reservationService) DeleteReservation(ctx context.Context, id int64) error {
	return s.reservationRepo.Delete(ctx, id)
}

func (s *reservationService) ExpireStale(ctx context.Context, olderThan time.Duration) (int, error) {
	now := s.clock.Now()
	ids, err := s.reservationRepo.ExpirePending(ctx, now.Add(-olderThan))
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		publish(ctx, s.publisher, s.log, events.Event{
			Type:          events.ReservationExpired,
			ReservationID: id,
			Status:        string(entity.ReservationStatusExpired),
			OccurredAt:    now,
		})
	}

	if len(ids) > 0 {
		s.log.Info("Expired stale reservations", zap.Int("count", len(ids)))
	}
	return len(ids), nil
}

func (s *reservationService) findReservation(ctx context.Context, id int64) (*entity.Reservation, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, errs.NotFound("Reservation not found with id: %d", id)
	}
	return reservation, nil
}

func (s *reservationService) emit(ctx context.Context, eventType events.Type, reservation *entity.Reservation) {
	publish(ctx, s.publisher, s.log, events.Event{
		Type:          eventType,
		ReservationID: reservation.ID,
		UserID:        reservation.UserID,
		Status:        string(reservation.Status),
		OccurredAt:    s.clock.Now(),
	})
}

func (s *reservationService) toResponse(ctx context.Context, reservation *entity.Reservation) (*response.ReservationResponse, error) {
	user, err := s.userRepo.FindByID(ctx, reservation.UserID)
	if err != nil {
		return nil, err
	}
	return s.project(reservation, user)
}

// toResponses loads the owners of all reservations in one query
func (s *reservationService) toResponses(ctx context.Context, reservations []*entity.Reservation) ([]*response.ReservationResponse, error) {
	result := make([]*response.ReservationResponse, 0, len(reservations))
	if len(reservations) == 0 {
		return result, nil
	}

	seen := make(map[int64]bool, len(reservations))
	userIDs := make([]int64, 0, len(reservations))
	for _, reservation := range reservations {
		if !seen[reservation.UserID] {
			seen[reservation.UserID] = true
			userIDs = append(userIDs, reservation.UserID)
		}
	}

	users, err := s.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*entity.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	for _, reservation := range reservations {
		resp, err := s.project(reservation, byID[reservation.UserID])
		if err != nil {
			return nil, err
		}
		result = append(result, resp)
	}
	return result, nil
}

func (s *reservationService) project(reservation *entity.Reservation, user *entity.User) (*response.ReservationResponse, error) {
	resp, err := response.ReservationToResponse(reservation, user)
	if err != nil {
		return nil, errs.Internal(err, "project reservation")
	}
	return resp, nil
}
