// Package adapters provides adapter implementations between different
// package interfaces.
package adapters

import (
	"math"

	"github.com/seaberger/retirement-calculator/internal/config"
	"github.com/seaberger/retirement-calculator/pkg/finance"
)

// IncomeStreamAdapter adapts a config.IncomeStream to finance.AmountSource,
// growing its monthly amount by COLA compounded from StartAge.
type IncomeStreamAdapter struct {
	Stream config.IncomeStream
}

// AmountForAge returns the stream's grown annual amount if active at age,
// else 0.
func (w IncomeStreamAdapter) AmountForAge(age int) float64 {
	if age < w.Stream.StartAge || age > w.Stream.EndAge {
		return 0
	}
	years := age - w.Stream.StartAge
	return w.Stream.Monthly * 12 * math.Pow(1+w.Stream.COLA, float64(years))
}

// ConsultingLadderAdapter adapts a config.ConsultingLadder to
// finance.AmountSource, active for its configured number of years.
type ConsultingLadderAdapter struct {
	Ladder config.ConsultingLadder
}

// AmountForAge returns the ladder's grown annual amount if active at age,
// else 0.
func (w ConsultingLadderAdapter) AmountForAge(age int) float64 {
	years := age - w.Ladder.StartAge
	if years < 0 || years >= w.Ladder.Years {
		return 0
	}
	return w.Ladder.StartAmount * math.Pow(1+w.Ladder.Growth, float64(years))
}

// LumpEventAdapter adapts a config.LumpEvent to finance.AmountSource: a
// one-time inflow at a single age.
type LumpEventAdapter struct {
	Lump config.LumpEvent
}

// AmountForAge returns the lump's amount if age matches its scheduled
// age, else 0.
func (w LumpEventAdapter) AmountForAge(age int) float64 {
	if age == w.Lump.Age {
		return w.Lump.Amount
	}
	return 0
}

// ToyPurchaseAdapter adapts a config.ToyPurchase to finance.AmountSource:
// a one-time extra spending outflow at a single age.
type ToyPurchaseAdapter struct {
	Toy config.ToyPurchase
}

// AmountForAge returns the toy's amount if age matches its scheduled
// age, else 0.
func (w ToyPurchaseAdapter) AmountForAge(age int) float64 {
	if age == w.Toy.Age {
		return w.Toy.Amount
	}
	return 0
}

// IncomeSources builds the uniform income source list for a scenario: the
// consulting ladder followed by each recurring income stream.
func IncomeSources(s *config.Scenario) []finance.AmountSource {
	sources := []finance.AmountSource{ConsultingLadderAdapter{Ladder: s.Consulting}}
	for _, inc := range s.Incomes {
		sources = append(sources, IncomeStreamAdapter{Stream: inc})
	}
	return sources
}

// LumpSources builds the uniform lump-inflow source list for a scenario.
func LumpSources(s *config.Scenario) []finance.AmountSource {
	sources := make([]finance.AmountSource, 0, len(s.Lumps))
	for _, l := range s.Lumps {
		sources = append(sources, LumpEventAdapter{Lump: l})
	}
	return sources
}

// ToySources builds the uniform toy-purchase source list for a scenario.
func ToySources(s *config.Scenario) []finance.AmountSource {
	sources := make([]finance.AmountSource, 0, len(s.Toys))
	for _, t := range s.Toys {
		sources = append(sources, ToyPurchaseAdapter{Toy: t})
	}
	return sources
}
