package finance

import (
	"math"
	"testing"
)

func TestEffectiveWithdrawalGrossesUpPositiveNeed(t *testing.T) {
	p := NewTaxProcessor(nil)
	// w=10000, income=0: no income tax, just the portfolio gross-up.
	got := p.EffectiveWithdrawal(10000, 0, 0.15, 0.5, 0.5)
	want := 10000 * (1 + 0.15*0.5)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("EffectiveWithdrawal = %v, want %v", got, want)
	}
}

func TestEffectiveWithdrawalTaxesIncomeSeparately(t *testing.T) {
	p := NewTaxProcessor(nil)
	got := p.EffectiveWithdrawal(10000, 20000, 0.15, 0.5, 0.5)
	want := 10000*(1+0.15*0.5) + 20000*0.15*0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("EffectiveWithdrawal = %v, want %v", got, want)
	}
}

func TestEffectiveWithdrawalSurplusIncomeNoPortfolioGrossUp(t *testing.T) {
	p := NewTaxProcessor(nil)
	got := p.EffectiveWithdrawal(-5000, 20000, 0.15, 0.5, 0.5)
	want := -5000 + 20000*0.15*0.5
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("EffectiveWithdrawal = %v, want %v", got, want)
	}
}

func TestEffectiveWithdrawalZeroRateIsNoOp(t *testing.T) {
	p := NewTaxProcessor(nil)
	got := p.EffectiveWithdrawal(10000, 5000, 0, 0.5, 0.5)
	if got != 10000 {
		t.Errorf("EffectiveWithdrawal = %v, want 10000", got)
	}
}
