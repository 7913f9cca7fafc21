package returns

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/seaberger/retirement-calculator/internal/kou"
	"github.com/seaberger/retirement-calculator/pkg/constants"
)

// Params bundles everything components B-D need to generate a return
// tensor of a given (Y,S) shape, independent of whether the caller is
// running the pilot pass or the production pass.
type Params struct {
	L             *mat.TriDense
	DF            float64
	Pack          kou.ParamPack
	MuArith       [constants.NumAssets]float64
	SigmaLog      [constants.NumAssets]float64
	Floors        [constants.NumAssets]float64
	BlackSwanYear int // 0-based year index, or -1 if no black swan is scheduled
}

// GenerateLog runs components B, C, and D step 1: the Student-t body, the
// Kou jumps, and their assembly with Ito drift, before any pilot mean
// correction.
func GenerateLog(stream *rand.Rand, p Params, Y, S int) *Tensor {
	body := GenerateBody(stream, p.L, p.DF, Y, S)
	jumps := GenerateJumps(stream, p.Pack, Y, S, p.BlackSwanYear)
	muLog := ItoDrift(p.MuArith, p.SigmaLog)
	return Assemble(body, jumps, muLog)
}

// RunPilot generates an independent pilot tensor and returns the per-asset
// drift correction needed so the production pass's realized arithmetic
// mean matches p.MuArith (component D, step 2).
func RunPilot(stream *rand.Rand, p Params, Y, S int) ([constants.NumAssets]float64, error) {
	rLog := GenerateLog(stream, p, Y, S)
	muHat := EmpiricalArithmeticMeans(rLog)
	return DriftCorrection(p.MuArith, muHat)
}

// GenerateArithmetic runs the full production pipeline: body, jumps,
// drift assembly, the pilot-derived correction, and conversion to floored
// arithmetic returns.
func GenerateArithmetic(stream *rand.Rand, p Params, delta [constants.NumAssets]float64, Y, S int) *Tensor {
	rLog := GenerateLog(stream, p, Y, S)
	ApplyDrift(rLog, delta)
	return ArithmeticReturns(rLog, p.Floors)
}
