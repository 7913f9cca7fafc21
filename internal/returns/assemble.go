package returns

import (
	"fmt"
	"math"

	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/simerrors"
)

// ItoDrift returns the per-asset log-space drift mu_log = ln(1+mu) -
// 0.5*sigma_log^2, the correction that keeps E[exp(R_log)] = 1+mu absent
// jumps (component D, step 1).
func ItoDrift(mu, sigmaLog [constants.NumAssets]float64) [constants.NumAssets]float64 {
	var out [constants.NumAssets]float64
	for i := range out {
		out[i] = math.Log(1+mu[i]) - 0.5*sigmaLog[i]*sigmaLog[i]
	}
	return out
}

// Assemble combines the Student-t body and Kou jump tensors with the
// per-asset log drift: R_log = Z + J + mu_log.
func Assemble(body, jumps *Tensor, muLog [constants.NumAssets]float64) *Tensor {
	out := NewTensor(body.Y, body.S, body.A)
	for y := 0; y < body.Y; y++ {
		for s := 0; s < body.S; s++ {
			for a := 0; a < body.A; a++ {
				out.Set(y, s, a, body.At(y, s, a)+jumps.At(y, s, a)+muLog[a])
			}
		}
	}
	return out
}

// EmpiricalArithmeticMeans computes mean(exp(R_log)-1) per asset over the
// whole tensor, used by the pilot pass to estimate the realized mean
// before drift correction.
func EmpiricalArithmeticMeans(rLog *Tensor) [constants.NumAssets]float64 {
	var sum [constants.NumAssets]float64
	n := float64(rLog.Y * rLog.S)
	for y := 0; y < rLog.Y; y++ {
		for s := 0; s < rLog.S; s++ {
			for a := 0; a < rLog.A; a++ {
				sum[a] += math.Exp(rLog.At(y, s, a)) - 1
			}
		}
	}
	var mean [constants.NumAssets]float64
	for a := range mean {
		mean[a] = sum[a] / n
	}
	return mean
}

// DriftCorrection computes delta = ln((1+mu)/(1+muHat)) per asset, the
// additive log-space correction applied to the production tensor so jumps
// don't bias the realized mean. A |delta| beyond the divergence tolerance
// is reported as a NumericalError (spec §7).
func DriftCorrection(muTarget, muHat [constants.NumAssets]float64) ([constants.NumAssets]float64, error) {
	var delta [constants.NumAssets]float64
	for a := range delta {
		delta[a] = math.Log((1 + muTarget[a]) / (1 + muHat[a]))
		if math.Abs(delta[a]) > constants.MaxMeanCorrectionDrift {
			return delta, simerrors.NewNumericalError("pilot_drift_correction",
				fmt.Sprintf("asset %d: drift correction %.4f exceeds tolerance %.2f", a, delta[a], constants.MaxMeanCorrectionDrift))
		}
	}
	return delta, nil
}

// ApplyDrift adds the per-asset correction to every cell in place.
func ApplyDrift(rLog *Tensor, delta [constants.NumAssets]float64) {
	for y := 0; y < rLog.Y; y++ {
		for s := 0; s < rLog.S; s++ {
			for a := 0; a < rLog.A; a++ {
				rLog.Add(y, s, a, delta[a])
			}
		}
	}
}

// ArithmeticReturns converts a log-return tensor to arithmetic returns,
// clamping each asset to its configured floor (component D, step 4;
// floors supplement the distilled spec per original_source).
func ArithmeticReturns(rLog *Tensor, floors [constants.NumAssets]float64) *Tensor {
	out := NewTensor(rLog.Y, rLog.S, rLog.A)
	for y := 0; y < rLog.Y; y++ {
		for s := 0; s < rLog.S; s++ {
			for a := 0; a < rLog.A; a++ {
				r := math.Exp(rLog.At(y, s, a)) - 1
				if r < floors[a] {
					r = floors[a]
				}
				out.Set(y, s, a, r)
			}
		}
	}
	return out
}
