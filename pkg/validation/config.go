// Package validation provides hard structural validation for a scenario
// before it reaches the numerical core, and for the output format flag.
package validation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/seaberger/retirement-calculator/internal/config"
	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/mathutil"
	"github.com/seaberger/retirement-calculator/pkg/simerrors"
)

// ValidateScenario checks the structural invariants a scenario must
// satisfy before simulation: ages ordered and non-negative, non-negative
// balances, weights summing to one within tolerance, a usable degrees of
// freedom, and well-formed correlations. Any violation is returned as a
// simerrors.ValidationError.
func ValidateScenario(s *config.Scenario) error {
	if s.EndAge < s.CurrentAge {
		return simerrors.NewValidationError("end_age",
			fmt.Sprintf("end_age (%d) must be greater than or equal to current_age (%d)", s.EndAge, s.CurrentAge))
	}
	if s.CurrentAge < 0 {
		return simerrors.NewValidationError("current_age", "must be non-negative")
	}
	if s.Sims <= 0 {
		return simerrors.NewValidationError("sims", "must be positive")
	}

	for i, acc := range s.Accounts {
		if acc.Balance < 0 {
			return simerrors.NewValidationError(fmt.Sprintf("accounts[%d].balance", i), "must be non-negative")
		}
		if err := validateWeights(fmt.Sprintf("accounts[%d]", i), acc.Stocks, acc.Bonds, acc.Crypto, acc.CDs, acc.Cash); err != nil {
			return err
		}
	}

	if s.Taxes.EffectiveRate < 0 || s.Taxes.EffectiveRate > 1 {
		return simerrors.NewValidationError("taxes.effective_rate", "must be within [0, 1]")
	}

	if s.BlackSwan.Enabled {
		if s.BlackSwan.Age < s.CurrentAge || s.BlackSwan.Age > s.EndAge {
			return simerrors.NewValidationError("black_swan.age",
				fmt.Sprintf("must fall within [%d, %d]", s.CurrentAge, s.EndAge))
		}
		if s.BlackSwan.PortfolioDrop < 0 || s.BlackSwan.PortfolioDrop > 1 {
			return simerrors.NewValidationError("black_swan.portfolio_drop", "must be within [0, 1]")
		}
	}

	if s.CMA.TDF != 0 && s.CMA.TDF < 3 {
		return simerrors.NewValidationError("cma.t_df", "degrees of freedom must be at least 3")
	}

	mu, sigma, corr := s.CMA.Arrays()
	for i, a := range constants.Assets {
		if sigma[i] < 0 {
			return simerrors.NewValidationError(fmt.Sprintf("cma.vol.%s", a), "must be non-negative")
		}
		if mu[i] < -1 {
			return simerrors.NewValidationError(fmt.Sprintf("cma.exp_ret.%s", a), "must be greater than -1")
		}
	}
	for i := range corr {
		for j := range corr[i] {
			if corr[i][j] < -1 || corr[i][j] > 1 {
				return simerrors.NewValidationError(
					fmt.Sprintf("cma.corr.%s.%s", constants.Assets[i], constants.Assets[j]),
					"correlation must be within [-1, 1]")
			}
		}
	}
	if err := validateCorrelationPSD(corr); err != nil {
		return err
	}

	for _, inc := range s.Incomes {
		if inc.EndAge < inc.StartAge {
			return simerrors.NewValidationError("incomes[].end_age", "must not be before start_age")
		}
	}

	return nil
}

// validateCorrelationPSD rejects a correlation matrix that is internally
// inconsistent even though every pairwise entry individually falls within
// [-1, 1] (e.g. rho(a,b)=0.9, rho(a,c)=0.9, rho(b,c)=-0.9: each entry is a
// valid correlation on its own, but the three jointly cannot hold). A
// trial Cholesky factorization is the standard test for positive
// semi-definiteness; failure here is a user input error, distinct from the
// numerical failures internal/returns.CholeskyFactor guards against on the
// already-scaled log-covariance matrix.
func validateCorrelationPSD(corr [constants.NumAssets][constants.NumAssets]float64) error {
	n := constants.NumAssets
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, corr[i][j])
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return simerrors.NewValidationError("cma.corr", "correlation matrix is not positive semi-definite")
	}
	return nil
}

// validateWeights checks that a set of asset weights is either all zero
// (defaults to cash) or sums to 1 within constants.WeightTolerance, and
// that no weight is negative.
func validateWeights(field string, weights ...float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return simerrors.NewValidationError(field, "asset weights must be non-negative")
		}
		sum += w
	}
	if sum == 0 {
		return nil
	}
	if !mathutil.WithinTolerance(sum, 1.0, constants.WeightTolerance) {
		return simerrors.NewValidationError(field, fmt.Sprintf("asset weights sum to %v, want 1.0", sum))
	}
	return nil
}
