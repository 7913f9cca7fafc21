// Package simulate is the orchestrator (component G): it wires the
// parameter pack, the Student-t/Kou return generator, and the cashflow
// engine together, runs the pilot mean-correction pass, fans the
// production pass out across a worker pool keyed on the simulation-path
// axis, and aggregates the results.
package simulate

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/seaberger/retirement-calculator/internal/aggregate"
	"github.com/seaberger/retirement-calculator/internal/cashflow"
	"github.com/seaberger/retirement-calculator/internal/config"
	"github.com/seaberger/retirement-calculator/internal/kou"
	"github.com/seaberger/retirement-calculator/internal/returns"
	"github.com/seaberger/retirement-calculator/pkg/adapters"
	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/simerrors"
	"github.com/seaberger/retirement-calculator/pkg/validation"
)

// pilotStream and mainStream offset the chunk index used as the second
// PCG stream parameter, keeping the pilot pass's substream disjoint from
// every production chunk's substream under the same master seed.
const (
	pilotStream uint64 = 1
	mainStream  uint64 = 1 << 32
)

// Run executes the full orchestrator sequence against a validated
// scenario and returns the aggregated percentile summary. cancel, if
// non-nil, is checked between paths within each worker so a caller can
// request cooperative cancellation; a nil cancel never cancels.
func Run(logger *zap.Logger, s *config.Scenario, cancel *atomic.Bool) (aggregate.Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := validation.ValidateScenario(s); err != nil {
		return aggregate.Result{}, err
	}

	seed := uint64(constants.DefaultSeed)
	if s.Seed != nil {
		seed = uint64(*s.Seed)
	}

	weights := s.TargetWeights()
	mu, sigmaArith, corr := s.CMA.Arrays()
	sigmaLog := returns.LogVols(mu, sigmaArith)
	cov := returns.BuildLogCovariance(sigmaLog, corr)
	l, err := returns.CholeskyFactor(cov)
	if err != nil {
		return aggregate.Result{}, err
	}

	pack, err := kou.LoadDefault()
	if err != nil {
		return aggregate.Result{}, err
	}
	mode := kou.ToggleMode(s.FatTailMode)
	if !s.CMA.FatTails {
		pack = flattenToGaussian(pack)
	} else {
		pack.TDF = s.CMA.TDF
		pack.SequenceRiskBoost = s.CMA.SequenceRiskBoost
		pack.EarlyRetirementYears = s.CMA.EarlyRetirementYears
		pack = kou.ApplyToggle(pack, mode)
	}

	df := pack.TDF
	floors := pack.Floors
	if mode == kou.ToggleExtreme {
		floors = pack.ExtremeFloors
	}

	blackSwanYear := -1
	if s.BlackSwan.Enabled {
		blackSwanYear = s.BlackSwan.Age - s.CurrentAge
	}

	nYears := s.NYears()

	pilotParams := returns.Params{
		L: l, DF: df, Pack: pack,
		MuArith: mu, SigmaLog: sigmaLog, Floors: floors,
		BlackSwanYear: -1,
	}
	pilotStreamRand := rand.New(rand.NewPCG(seed, pilotStream))
	delta, err := returns.RunPilot(pilotStreamRand, pilotParams, constants.DefaultPilotYears, constants.DefaultPilotSims)
	if err != nil {
		return aggregate.Result{}, err
	}

	mainParams := returns.Params{
		L: l, DF: df, Pack: pack,
		MuArith: mu, SigmaLog: sigmaLog, Floors: floors,
		BlackSwanYear: blackSwanYear,
	}

	inputs := cashflow.Inputs{
		CurrentAge:    s.CurrentAge,
		NYears:        nYears,
		TargetWeights: weights,
		Spending:      s.Spending,
		Taxes:         s.Taxes,
		BlackSwan:     s.BlackSwan,
		IncomeSources: adapters.IncomeSources(s),
		LumpSources:   adapters.LumpSources(s),
		ToySources:    adapters.ToySources(s),
	}
	initialBalance := s.InitialBalance()

	balances, err := runChunks(logger, mainParams, delta, inputs, initialBalance, seed, nYears, s.Sims, cancel)
	if err != nil {
		return aggregate.Result{}, err
	}

	return aggregate.Aggregate(balances, s.CurrentAge), nil
}

// flattenToGaussian disables every jump source and widens the Student-t
// body to its Gaussian limit, matching fat_tails=false (spec.md §8's
// "fat-tail off => Gaussian-like" property).
func flattenToGaussian(pack kou.ParamPack) kou.ParamPack {
	out := pack.Clone()
	out.TDF = constants.GaussianLimitDF
	for i := range out.PerAsset {
		out.PerAsset[i].Lam = 0
	}
	out.Market.Lam = 0
	return out
}

// runChunks fans the production pass out across a worker per
// constants.SimChunkSize paths, each seeded from an independent PCG
// substream keyed on the chunk index, and joins on a sync.WaitGroup. The
// balance matrix is year-major with disjoint per-chunk column ranges, so
// no worker ever writes another's columns.
func runChunks(logger *zap.Logger, p returns.Params, delta [constants.NumAssets]float64, in cashflow.Inputs, initialBalance float64, seed uint64, nYears, totalSims int, cancel *atomic.Bool) ([][]float64, error) {
	balances := make([][]float64, nYears+1)
	for y := range balances {
		balances[y] = make([]float64, totalSims)
	}

	numChunks := (totalSims + constants.SimChunkSize - 1) / constants.SimChunkSize
	errs := make([]error, numChunks)

	var wg sync.WaitGroup
	for c := 0; c < numChunks; c++ {
		start := c * constants.SimChunkSize
		end := start + constants.SimChunkSize
		if end > totalSims {
			end = totalSims
		}
		chunkSize := end - start

		wg.Add(1)
		go func(chunkIdx, start, chunkSize int) {
			defer wg.Done()

			if cancel != nil && cancel.Load() {
				errs[chunkIdx] = simerrors.NewCancelledError("cancelled before chunk start")
				return
			}

			stream := rand.New(rand.NewPCG(seed, mainStream+uint64(chunkIdx)))
			arith := returns.GenerateArithmetic(stream, p, delta, nYears, chunkSize)

			engine := cashflow.NewEngine(logger)
			for local := 0; local < chunkSize; local++ {
				if cancel != nil && cancel.Load() {
					errs[chunkIdx] = simerrors.NewCancelledError("cancelled mid-chunk")
					return
				}
				history := engine.RunPath(in, initialBalance, arith, local)
				global := start + local
				for y, bal := range history {
					balances[y][global] = bal
				}
			}
		}(c, start, chunkSize)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return balances, nil
}
