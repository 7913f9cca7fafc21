package adapters

import (
	"math"
	"testing"

	"github.com/seaberger/retirement-calculator/internal/config"
)

func TestIncomeStreamAdapterInactiveOutsideWindow(t *testing.T) {
	a := IncomeStreamAdapter{Stream: config.IncomeStream{StartAge: 65, EndAge: 90, Monthly: 2000}}
	if got := a.AmountForAge(60); got != 0 {
		t.Errorf("AmountForAge(60) = %v, want 0", got)
	}
	if got := a.AmountForAge(95); got != 0 {
		t.Errorf("AmountForAge(95) = %v, want 0", got)
	}
}

func TestIncomeStreamAdapterGrowsWithCOLA(t *testing.T) {
	a := IncomeStreamAdapter{Stream: config.IncomeStream{StartAge: 65, EndAge: 90, Monthly: 2000, COLA: 0.02}}
	got := a.AmountForAge(67)
	want := 2000 * 12 * math.Pow(1.02, 2)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("AmountForAge(67) = %v, want %v", got, want)
	}
}

func TestConsultingLadderAdapterActiveWindow(t *testing.T) {
	a := ConsultingLadderAdapter{Ladder: config.ConsultingLadder{StartAge: 55, Years: 5, StartAmount: 50000, Growth: 0.05}}
	if got := a.AmountForAge(54); got != 0 {
		t.Errorf("AmountForAge(54) = %v, want 0", got)
	}
	if got := a.AmountForAge(60); got != 0 {
		t.Errorf("AmountForAge(60) = %v, want 0 (ladder has ended)", got)
	}
	got := a.AmountForAge(57)
	want := 50000 * math.Pow(1.05, 2)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("AmountForAge(57) = %v, want %v", got, want)
	}
}

func TestLumpEventAdapterFiresOnce(t *testing.T) {
	a := LumpEventAdapter{Lump: config.LumpEvent{Age: 65, Amount: 100000}}
	if got := a.AmountForAge(64); got != 0 {
		t.Errorf("AmountForAge(64) = %v, want 0", got)
	}
	if got := a.AmountForAge(65); got != 100000 {
		t.Errorf("AmountForAge(65) = %v, want 100000", got)
	}
}

func TestToyPurchaseAdapterFiresOnce(t *testing.T) {
	a := ToyPurchaseAdapter{Toy: config.ToyPurchase{Age: 70, Amount: 40000}}
	if got := a.AmountForAge(70); got != 40000 {
		t.Errorf("AmountForAge(70) = %v, want 40000", got)
	}
	if got := a.AmountForAge(71); got != 0 {
		t.Errorf("AmountForAge(71) = %v, want 0", got)
	}
}

func TestIncomeSourcesIncludesLadderAndStreams(t *testing.T) {
	s := &config.Scenario{
		Consulting: config.ConsultingLadder{StartAge: 55, Years: 3, StartAmount: 30000},
		Incomes:    []config.IncomeStream{{StartAge: 65, EndAge: 90, Monthly: 1000}},
	}
	sources := IncomeSources(s)
	if len(sources) != 2 {
		t.Fatalf("expected 2 income sources, got %d", len(sources))
	}
}

func TestLumpAndToySourcesBuildOneAdapterEach(t *testing.T) {
	s := &config.Scenario{
		Lumps: []config.LumpEvent{{Age: 60, Amount: 1}, {Age: 70, Amount: 2}},
		Toys:  []config.ToyPurchase{{Age: 65, Amount: 3}},
	}
	if got := LumpSources(s); len(got) != 2 {
		t.Errorf("expected 2 lump sources, got %d", len(got))
	}
	if got := ToySources(s); len(got) != 1 {
		t.Errorf("expected 1 toy source, got %d", len(got))
	}
}
