package returns

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/mathutil"
)

// GenerateBody produces the correlated Student-t diffusion body in log
// space (component B): zero-mean shocks whose covariance approximates
// Sigma_log for df > 2, with tails heavier than Gaussian for df <= 10. df
// is clamped to the minimum usable value before the variance-scaling
// factor is computed.
func GenerateBody(stream *rand.Rand, l *mat.TriDense, df float64, Y, S int) *Tensor {
	df = mathutil.Max(df, constants.MinStudentTDF)
	scale := math.Sqrt((df - 2) / df)

	t := NewTensor(Y, S, constants.NumAssets)
	tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df, Src: stream}

	raw := mat.NewVecDense(constants.NumAssets, nil)
	correlated := mat.NewVecDense(constants.NumAssets, nil)

	for y := 0; y < Y; y++ {
		for s := 0; s < S; s++ {
			for a := 0; a < constants.NumAssets; a++ {
				raw.SetVec(a, scale*tDist.Rand())
			}
			correlated.MulVec(l, raw)
			for a := 0; a < constants.NumAssets; a++ {
				t.Set(y, s, a, correlated.AtVec(a))
			}
		}
	}
	return t
}
