package returns

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/simerrors"
)

// LogVols converts annual arithmetic volatilities to log-space volatilities
// per asset, sigma_log^2 = ln(1 + sigma^2/(1+mu)^2).
func LogVols(mu, sigmaArith [constants.NumAssets]float64) [constants.NumAssets]float64 {
	var out [constants.NumAssets]float64
	for i := range out {
		ratio := sigmaArith[i] / (1 + mu[i])
		out[i] = math.Sqrt(math.Log(1 + ratio*ratio))
	}
	return out
}

// BuildLogCovariance assembles Sigma_log = diag(sigma_log) . rho .
// diag(sigma_log).
func BuildLogCovariance(sigmaLog [constants.NumAssets]float64, corr [constants.NumAssets][constants.NumAssets]float64) *mat.SymDense {
	n := constants.NumAssets
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, sigmaLog[i]*corr[i][j]*sigmaLog[j])
		}
	}
	return sym
}

// choleskyRidge is added to the covariance diagonal before factorization.
// It keeps a degenerate all-zero-variance asset (cash, CDs) from failing
// the positive-definite pivot check while staying far below any realistic
// variance.
const choleskyRidge = 1e-12

// CholeskyFactor factorizes the log-return covariance matrix. A non
// positive-semi-definite matrix is surfaced as a NumericalError rather
// than panicking.
func CholeskyFactor(cov *mat.SymDense) (*mat.TriDense, error) {
	n := cov.SymmetricDim()
	ridged := mat.NewSymDense(n, nil)
	ridged.CopySym(cov)
	for i := 0; i < n; i++ {
		ridged.SetSym(i, i, ridged.At(i, i)+choleskyRidge)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(ridged); !ok {
		return nil, simerrors.NewNumericalError("cholesky", "log-return covariance matrix is not positive semi-definite")
	}
	l := new(mat.TriDense)
	chol.LTo(l)
	return l, nil
}
