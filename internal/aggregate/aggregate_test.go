package aggregate

import (
	"math"
	"testing"
)

func TestPercentilesOrdering(t *testing.T) {
	row := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	p20, p50, p80 := Percentiles(row)
	if !(p20 <= p50 && p50 <= p80) {
		t.Errorf("percentiles not ordered: p20=%v p50=%v p80=%v", p20, p50, p80)
	}
}

func TestPercentilesConstantRow(t *testing.T) {
	row := []float64{42, 42, 42, 42}
	p20, p50, p80 := Percentiles(row)
	if p20 != 42 || p50 != 42 || p80 != 42 {
		t.Errorf("percentiles of constant row = (%v, %v, %v), want all 42", p20, p50, p80)
	}
}

func TestAggregateShape(t *testing.T) {
	nYears := 5
	balances := make([][]float64, nYears+1)
	for y := range balances {
		balances[y] = []float64{100, 200, 300}
	}

	res := Aggregate(balances, 60)
	if len(res.Ages) != nYears+1 {
		t.Fatalf("len(Ages) = %d, want %d", len(res.Ages), nYears+1)
	}
	if len(res.P50) != nYears+1 {
		t.Fatalf("len(P50) = %d, want %d", len(res.P50), nYears+1)
	}
	if res.Ages[0] != 60 || res.Ages[nYears] != 65 {
		t.Errorf("Ages = %v, want first=60 last=65", res.Ages)
	}
}

func TestAggregateSuccessProbability(t *testing.T) {
	balances := [][]float64{
		{1000, 1000, 1000, 1000},
		{0, 500, 0, 1500},
	}
	res := Aggregate(balances, 60)
	want := 0.5
	if math.Abs(res.SuccessProb-want) > 1e-9 {
		t.Errorf("SuccessProb = %v, want %v", res.SuccessProb, want)
	}
}

func TestAggregateAllSurviveGivesSuccessProbOne(t *testing.T) {
	balances := [][]float64{
		{1000, 1000},
		{100, 200},
	}
	res := Aggregate(balances, 65)
	if res.SuccessProb != 1 {
		t.Errorf("SuccessProb = %v, want 1", res.SuccessProb)
	}
}

func TestAggregateAllDepletedGivesSuccessProbZero(t *testing.T) {
	balances := [][]float64{
		{1000, 1000},
		{0, 0},
	}
	res := Aggregate(balances, 65)
	if res.SuccessProb != 0 {
		t.Errorf("SuccessProb = %v, want 0", res.SuccessProb)
	}
}

func TestAggregateEndBalancePercentilesMatchLastYear(t *testing.T) {
	balances := [][]float64{
		{100, 100},
		{10, 20, 30, 40},
	}
	// unequal row lengths across years are fine; only the last row
	// matters for end-balance percentiles.
	res := Aggregate(balances, 60)
	if res.EndBalanceP50 != res.P50[len(res.P50)-1] {
		t.Errorf("EndBalanceP50 = %v, want %v", res.EndBalanceP50, res.P50[len(res.P50)-1])
	}
}

func TestAggregateSingleYearHorizon(t *testing.T) {
	balances := [][]float64{{100, 200, 300}}
	res := Aggregate(balances, 70)
	if len(res.Ages) != 1 || res.Ages[0] != 70 {
		t.Errorf("Ages = %v, want [70]", res.Ages)
	}
	if res.EndBalanceP50 != res.P50[0] {
		t.Errorf("EndBalanceP50 = %v, want %v", res.EndBalanceP50, res.P50[0])
	}
}
