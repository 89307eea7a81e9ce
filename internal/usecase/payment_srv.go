package usecase

import (
	"context"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/internal/data/repository"
	"cinema-reservations/internal/dto/request"
	"cinema-reservations/internal/dto/response"
	"cinema-reservations/pkg/clock"
	"cinema-reservations/pkg/errs"
	"cinema-reservations/pkg/events"

	"go.uber.org/zap"
)

type PaymentService interface {
	// ProcessPayment attaches the single payment a reservation may have. An
	// approved payment confirms the reservation, a declined one leaves it as is.
	ProcessPayment(ctx context.Context, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error)
	// GetPaymentByReservation fails with NotFound only when the reservation is
	// missing. A reservation without a payment yields (nil, nil).
	GetPaymentByReservation(ctx context.Context, reservationID int64) (*response.PaymentResponse, error)
}

type paymentService struct {
	reservationRepo repository.ReservationRepository
	processor       Processor
	txnIDs          TransactionIDGenerator
	publisher       events.Publisher
	clock           clock.Clock
	log             *zap.Logger
}

func NewPaymentService(reservationRepo repository.ReservationRepository, deps Dependencies, log *zap.Logger) PaymentService {
	deps = deps.withDefaults()

	return &paymentService{
		reservationRepo: reservationRepo,
		processor:       deps.Processor,
		txnIDs:          deps.TransactionIDs,
		publisher:       deps.Publisher,
		clock:           deps.Clock,
		log:             log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) ProcessPayment(ctx context.Context, req *request.ProcessPaymentRequest) (*response.PaymentResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, req.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, errs.NotFound("Reservation not found with id: %d", req.ReservationID)
	}
	if reservation.HasPayment() {
		return nil, errs.Conflict("Payment already exists for this reservation")
	}

	payment := &entity.Payment{
		ReservationID: reservation.ID,
		Amount:        req.Amount,
		PaymentMethod: req.PaymentMethod,
		PaymentStatus: entity.PaymentStatusPending,
		TransactionID: s.txnIDs.Next(),
		PaymentDate:   s.clock.Now(),
	}

	approved, err := s.processor.Authorize(ctx, payment)
	if err != nil {
		s.log.Error("Payment authorization failed",
			zap.Error(err),
			zap.Int64("reservation_id", reservation.ID),
			zap.String("transaction_id", payment.TransactionID),
		)
		return nil, errs.Internal(err, "authorize payment")
	}

	var newStatus entity.ReservationStatus
	if approved {
		payment.PaymentStatus = entity.PaymentStatusCompleted
		newStatus = entity.ReservationStatusConfirmed
	} else {
		payment.PaymentStatus = entity.PaymentStatusFailed
	}

	// a concurrent payment for the same reservation loses here on UNIQUE(reservation_id)
	if err := s.reservationRepo.AttachPayment(ctx, payment, newStatus); err != nil {
		return nil, err
	}

	s.log.Info("Payment processed",
		zap.Int64("reservation_id", reservation.ID),
		zap.Int64("payment_id", payment.ID),
		zap.String("status", string(payment.PaymentStatus)),
	)

	if approved {
		publish(ctx, s.publisher, s.log, events.Event{
			Type:          events.ReservationConfirmed,
			ReservationID: reservation.ID,
			UserID:        reservation.UserID,
			Status:        string(entity.ReservationStatusConfirmed),
			OccurredAt:    payment.PaymentDate,
		})
	}

	return s.project(payment)
}

func (s *paymentService) GetPaymentByReservation(ctx context.Context, reservationID int64) (*response.PaymentResponse, error) {
	reservation, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, errs.NotFound("Reservation not found with id: %d", reservationID)
	}
	if !reservation.HasPayment() {
		return nil, nil
	}
	return s.project(reservation.Payment)
}

func (s *paymentService) project(payment *entity.Payment) (*response.PaymentResponse, error) {
	resp, err := response.PaymentToResponse(payment)
	if err != nil {
		return nil, errs.Internal(err, "project payment")
	}
	return resp, nil
}
