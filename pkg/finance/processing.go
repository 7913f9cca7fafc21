// Package finance provides common financial calculation utilities shared
// between the cashflow engine and its adapters.
package finance

import (
	"go.uber.org/zap"
)

// AmountSource is implemented by anything that contributes a cash amount
// in a given year of the simulation: a recurring income stream, a
// consulting ladder, a one-time lump inflow, or a one-time toy purchase.
type AmountSource interface {
	AmountForAge(age int) float64
}

// AmountProcessor sums the active amount sources for an age, the way the
// teacher's EventProcessor sums active events for a date.
type AmountProcessor struct {
	logger *zap.Logger
}

// NewAmountProcessor creates a new amount processor with the given
// logger. If logger is nil, it uses a no-op logger to prevent panics.
func NewAmountProcessor(logger *zap.Logger) *AmountProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmountProcessor{logger: logger}
}

// Total sums AmountForAge(age) across every source, skipping nils.
func (p *AmountProcessor) Total(age int, sources []AmountSource) float64 {
	total := 0.0
	for _, src := range sources {
		if src == nil {
			continue
		}
		amt := src.AmountForAge(age)
		if amt != 0 {
			p.logger.Debug("amount source active",
				zap.Int("age", age),
				zap.Float64("amount", amt),
			)
		}
		total += amt
	}
	return total
}
