// Package cashflow implements the per-path, per-year cashflow engine
// (component E): income, spending, taxes, lump events, the black-swan
// shock, and portfolio return applied in a fixed order against a path's
// running balance.
package cashflow

import (
	"go.uber.org/zap"

	"github.com/seaberger/retirement-calculator/internal/config"
	"github.com/seaberger/retirement-calculator/internal/returns"
	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/finance"
)

// Inputs bundles the scenario-level data an Engine needs, computed once
// per run and shared read-only across every path.
type Inputs struct {
	CurrentAge    int
	NYears        int
	TargetWeights [constants.NumAssets]float64
	Spending      config.Spending
	Taxes         config.Taxes
	BlackSwan     config.BlackSwanEvent
	IncomeSources []finance.AmountSource
	LumpSources   []finance.AmountSource
	ToySources    []finance.AmountSource
}

// Engine evaluates the cashflow recurrence for one path at a time. It
// holds no per-path state, so a single Engine is safe to share across
// goroutines as long as its processors' loggers are themselves
// concurrency-safe (zap.Logger is).
type Engine struct {
	incomeProc   *finance.AmountProcessor
	lumpProc     *finance.AmountProcessor
	toyProc      *finance.AmountProcessor
	spendingProc *finance.SpendingProcessor
	taxProc      *finance.TaxProcessor
}

// NewEngine creates a cashflow engine with the given logger threaded
// through every processor. If logger is nil, the processors default to a
// no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		incomeProc:   finance.NewAmountProcessor(logger),
		lumpProc:     finance.NewAmountProcessor(logger),
		toyProc:      finance.NewAmountProcessor(logger),
		spendingProc: finance.NewSpendingProcessor(logger),
		taxProc:      finance.NewTaxProcessor(logger),
	}
}

// RunPath simulates one path's balance trajectory across every year,
// returning the (n_years+1)-length balance history starting at
// initialBalance. arith is the production arithmetic-return tensor; sim
// is this path's column index into it.
func (e *Engine) RunPath(in Inputs, initialBalance float64, arith *returns.Tensor, sim int) []float64 {
	history := make([]float64, in.NYears+1)
	history[0] = initialBalance

	balance := initialBalance
	alive := true

	for y := 0; y < in.NYears; y++ {
		age := in.CurrentAge + y

		if !alive {
			history[y+1] = 0
			continue
		}

		income := e.incomeProc.Total(age, in.IncomeSources)
		lumps := e.lumpProc.Total(age, in.LumpSources)
		toys := e.toyProc.Total(age, in.ToySources)

		spending := e.spendingProc.AnnualSpending(
			in.Spending.BaseAnnual, in.Spending.ReducedAnnual, in.Spending.Inflation,
			age, in.Spending.ReduceAtAge, in.CurrentAge,
		) + toys

		need := spending - income - lumps
		weff := e.taxProc.EffectiveWithdrawal(need, income,
			in.Taxes.EffectiveRate, in.Taxes.TaxablePortfolioRatio, in.Taxes.TaxableIncomeRatio)

		if in.BlackSwan.Enabled && age == in.BlackSwan.Age {
			balance *= 1 - in.BlackSwan.PortfolioDrop
		}

		r := portfolioReturn(in.TargetWeights, arith, y, sim)
		balance = (balance - weff) * (1 + r)

		if balance <= 0 {
			balance = 0
			alive = false
		}
		history[y+1] = balance
	}

	return history
}

func portfolioReturn(weights [constants.NumAssets]float64, arith *returns.Tensor, y, s int) float64 {
	r := 0.0
	for a := 0; a < constants.NumAssets; a++ {
		r += weights[a] * arith.At(y, s, a)
	}
	return r
}
