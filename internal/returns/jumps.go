package returns

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/seaberger/retirement-calculator/internal/kou"
	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/mathutil"
)

// GenerateJumps produces the additive log-space jump tensor (component C):
// a market co-jump field shared across the market's affected assets (with
// a bond flight-to-quality beta), plus independent idiosyncratic jumps per
// asset. blackSwanYear is the 0-based year index whose market jump uses
// the black-swan-coordinated eta_neg, or -1 if no black swan is scheduled.
func GenerateJumps(stream *rand.Rand, pack kou.ParamPack, Y, S, blackSwanYear int) *Tensor {
	j := NewTensor(Y, S, constants.NumAssets)

	for y := 0; y < Y; y++ {
		market := pack.Market.KouParams
		if y == blackSwanYear {
			market.EtaNeg = mathutil.Min(market.EtaNeg, constants.BlackSwanMarketEtaNeg)
		}
		if pack.SequenceRiskBoost != 1.0 && y < pack.EarlyRetirementYears {
			market.Lam = mathutil.Min(market.Lam*pack.SequenceRiskBoost, constants.MaxSequenceRiskLambda)
		}

		for s := 0; s < S; s++ {
			field := drawJumpSum(stream, market, 0)
			for _, asset := range pack.Market.AffectedAssets {
				j.Add(y, s, int(asset), field)
			}
			j.Add(y, s, int(constants.Bonds), pack.Market.BondBeta*field)

			for a := 0; a < constants.NumAssets; a++ {
				p := pack.PerAsset[a]
				if p.Lam <= 0 {
					continue
				}
				p.Lam = mathutil.Min(p.Lam, constants.MaxIdiosyncraticLambda)
				j.Add(y, s, a, drawJumpSum(stream, p, pack.MaxIdioJumpsPerYear))
			}
		}
	}
	return j
}

// drawJumpSum draws a Poisson(lam) jump count, optionally capped at
// maxJumps when maxJumps > 0, then sums that many signed double-exponential
// jump sizes: one sign decision and one exponential draw per jump, each
// consumed from stream in that fixed order.
func drawJumpSum(stream *rand.Rand, p kou.KouParams, maxJumps int) float64 {
	if p.Lam <= 0 {
		return 0
	}
	count := int(distuv.Poisson{Lambda: p.Lam, Src: stream}.Rand())
	if maxJumps > 0 && count > maxJumps {
		count = maxJumps
	}

	sum := 0.0
	for i := 0; i < count; i++ {
		if stream.Float64() < p.PPos {
			sum += distuv.Exponential{Rate: 1 / p.EtaPos, Src: stream}.Rand()
		} else {
			sum -= distuv.Exponential{Rate: 1 / p.EtaNeg, Src: stream}.Rand()
		}
	}
	return sum
}
