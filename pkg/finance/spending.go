package finance

import (
	"math"

	"go.uber.org/zap"
)

// SpendingProcessor computes the stepped, inflation-grown annual spending
// schedule.
type SpendingProcessor struct {
	logger *zap.Logger
}

// NewSpendingProcessor creates a new spending processor with the given
// logger. If logger is nil, it uses a no-op logger to prevent panics.
func NewSpendingProcessor(logger *zap.Logger) *SpendingProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpendingProcessor{logger: logger}
}

// AnnualSpending returns the year's base withdrawal need before taxes:
// baseAnnual until reduceAtAge, reducedAnnual afterward, both compounded
// by inflation since currentAge.
func (p *SpendingProcessor) AnnualSpending(baseAnnual, reducedAnnual, inflation float64, age, reduceAtAge, currentAge int) float64 {
	base := baseAnnual
	if age >= reduceAtAge {
		base = reducedAnnual
	}
	yearsSinceStart := age - currentAge
	if yearsSinceStart < 0 {
		yearsSinceStart = 0
	}
	grown := base * math.Pow(1+inflation, float64(yearsSinceStart))
	p.logger.Debug("computed annual spending",
		zap.Int("age", age),
		zap.Float64("amount", grown),
	)
	return grown
}
