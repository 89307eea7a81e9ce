package usecase

import (
	"context"

	"cinema-reservations/internal/data/repository"
	"cinema-reservations/pkg/clock"
	"cinema-reservations/pkg/events"

	"go.uber.org/zap"
)

type Service struct {
	User        UserService
	Reservation ReservationService
	Payment     PaymentService
}

// Dependencies are the collaborators services share besides the repositories.
// Nil fields fall back to the real clock, a no-op publisher, the simulated
// processor and clock-derived transaction ids.
type Dependencies struct {
	Clock          clock.Clock
	Publisher      events.Publisher
	Processor      Processor
	TransactionIDs TransactionIDGenerator
}

func (d Dependencies) withDefaults() Dependencies {
	if d.Clock == nil {
		d.Clock = clock.NewRealClock()
	}
	if d.Publisher == nil {
		d.Publisher = events.NoopPublisher{}
	}
	if d.Processor == nil {
		d.Processor = SimulatedProcessor{}
	}
	if d.TransactionIDs == nil {
		d.TransactionIDs = NewClockTransactionIDs(d.Clock)
	}
	return d
}

func NewService(repo *repository.Repository, deps Dependencies, log *zap.Logger) *Service {
	deps = deps.withDefaults()

	return &Service{
		User:        NewUserService(repo.User, deps.Clock, log),
		Reservation: NewReservationService(repo.Reservation, repo.User, deps.Publisher, deps.Clock, log),
		Payment:     NewPaymentService(repo.Reservation, deps, log),
	}
}

// publish sends event without failing the caller; the database write already happened
func publish(ctx context.Context, pub events.Publisher, log *zap.Logger, event events.Event) {
	if err := pub.Publish(ctx, event); err != nil {
		log.Warn("Failed to publish event",
			zap.Error(err),
			zap.String("type", string(event.Type)),
			zap.Int64("reservation_id", event.ReservationID),
		)
	}
}
