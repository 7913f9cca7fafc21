// Package aggregate computes the percentile paths, end-balance
// percentiles, and success probability summarizing a completed run
// (component F).
package aggregate

import (
	"math"
	"sort"

	"github.com/seaberger/retirement-calculator/pkg/constants"
)

// Percentiles computes p20/p50/p80 for one year's cross-path balance row
// using the conventional linear (type-7) interpolation rule between order
// statistics.
func Percentiles(row []float64) (p20, p50, p80 float64) {
	sorted := make([]float64, len(row))
	copy(sorted, row)
	sort.Float64s(sorted)

	quantile := func(p float64) float64 {
		h := p * float64(len(sorted)-1)
		lo := int(math.Floor(h))
		if lo >= len(sorted)-1 {
			return sorted[len(sorted)-1]
		}
		return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
	}

	p20 = quantile(constants.PercentileLow)
	p50 = quantile(constants.PercentileMedian)
	p80 = quantile(constants.PercentileHigh)
	return
}

// Result is the aggregator's output: age-by-age percentile paths,
// end-balance percentiles, and the fraction of paths that survived to
// end_age.
type Result struct {
	Ages []int
	P20  []float64
	P50  []float64
	P80  []float64

	EndBalanceP20 float64
	EndBalanceP50 float64
	EndBalanceP80 float64
	SuccessProb   float64
}

// Aggregate computes the full Result from an (n_years+1, S) balance
// matrix, where balances[y][s] is path s's balance at year y. currentAge
// is the first age reported in Result.Ages.
func Aggregate(balances [][]float64, currentAge int) Result {
	nYears := len(balances) - 1
	res := Result{
		Ages: make([]int, len(balances)),
		P20:  make([]float64, len(balances)),
		P50:  make([]float64, len(balances)),
		P80:  make([]float64, len(balances)),
	}

	for y, row := range balances {
		res.Ages[y] = currentAge + y
		res.P20[y], res.P50[y], res.P80[y] = Percentiles(row)
	}

	res.EndBalanceP20 = res.P20[nYears]
	res.EndBalanceP50 = res.P50[nYears]
	res.EndBalanceP80 = res.P80[nYears]

	final := balances[nYears]
	successes := 0
	for _, bal := range final {
		if bal > 0 {
			successes++
		}
	}
	if len(final) > 0 {
		res.SuccessProb = float64(successes) / float64(len(final))
	}

	return res
}
