package usecase

import (
	"context"
	"strconv"

	"cinema-reservations/internal/data/entity"
	"cinema-reservations/pkg/clock"
)

// Processor authorizes a payment with whatever gateway sits behind it
type Processor interface {
	Authorize(ctx context.Context, payment *entity.Payment) (bool, error)
}

// SimulatedProcessor approves every payment. There is no real gateway yet.
type SimulatedProcessor struct{}

func (SimulatedProcessor) Authorize(context.Context, *entity.Payment) (bool, error) {
	return true, nil
}

type TransactionIDGenerator interface {
	Next() string
}

// ClockTransactionIDs builds ids as "TXN" followed by the clock's unix millis.
// Two payments in the same millisecond get the same id.
type ClockTransactionIDs struct {
	clock clock.Clock
}

func NewClockTransactionIDs(clk clock.Clock) *ClockTransactionIDs {
	return &ClockTransactionIDs{clock: clk}
}

func (g *ClockTransactionIDs) Next() string {
	return "TXN" + strconv.FormatInt(g.clock.Now().UnixMilli(), 10)
}
