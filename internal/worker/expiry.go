package worker

import (
	"context"
	"fmt"
	"time"

	"cinema-reservations/pkg/utils"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Expirer is the slice of the reservation service the sweeper drives
type Expirer interface {
	ExpireStale(ctx context.Context, olderThan time.Duration) (int, error)
}

// Invalidator is told when a sweep changed rows, so cached reads of them go stale
type Invalidator interface {
	Invalidate(ctx context.Context) error
}

// ExpirySweeper periodically moves PENDING reservations that were never paid to
// EXPIRED. Runs never overlap.
type ExpirySweeper struct {
	scheduler gocron.Scheduler
	expirer   Expirer
	cache     Invalidator
	after     time.Duration
	timeout   time.Duration
	log       *zap.Logger
}

// NewExpirySweeper builds the job. cache may be nil when no response cache runs.
func NewExpirySweeper(expirer Expirer, cache Invalidator, cfg utils.ReservationConfig, log *zap.Logger) (*ExpirySweeper, error) {
	if cfg.ExpiryAfter <= 0 {
		return nil, fmt.Errorf("expiry sweeper needs a positive expiry, got %s", cfg.ExpiryAfter)
	}
	interval := cfg.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	sweeper := &ExpirySweeper{
		scheduler: s,
		expirer:   expirer,
		cache:     cache,
		after:     cfg.ExpiryAfter,
		timeout:   interval,
		log:       log.With(zap.String("worker", "reservation_expiry")),
	}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sweeper.sweep),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("reservation-expiry"),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("register expiry job: %w", err)
	}

	return sweeper, nil
}

func (s *ExpirySweeper) Start() {
	s.scheduler.Start()
	s.log.Info("Expiry sweeper started", zap.Duration("expiry_after", s.after))
}

func (s *ExpirySweeper) Shutdown() error {
	return s.scheduler.Shutdown()
}

// RunOnce performs a single sweep outside the schedule. When rows changed the
// response cache is invalidated; a failed invalidation is logged, not returned.
func (s *ExpirySweeper) RunOnce(ctx context.Context) (int, error) {
	n, err := s.expirer.ExpireStale(ctx, s.after)
	if err != nil || n == 0 || s.cache == nil {
		return n, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("Cache invalidation after sweep failed", zap.Error(err), zap.Int("expired", n))
	}
	return n, nil
}

func (s *ExpirySweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := s.RunOnce(ctx)
	if err != nil {
		s.log.Error("Expiry sweep failed", zap.Error(err))
		return
	}
	if n > 0 {
		s.log.Info("Expiry sweep finished", zap.Int("expired", n))
	}
}
