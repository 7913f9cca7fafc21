package finance

import "go.uber.org/zap"

// TaxProcessor applies the single effective-rate withdrawal tax model:
// income reduces the withdrawal need first, then the remainder is grossed
// up for portfolio withdrawal tax, and income itself is taxed separately.
type TaxProcessor struct {
	logger *zap.Logger
}

// NewTaxProcessor creates a new tax processor with the given logger. If
// logger is nil, it uses a no-op logger to prevent panics.
func NewTaxProcessor(logger *zap.Logger) *TaxProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TaxProcessor{logger: logger}
}

// EffectiveWithdrawal computes W_eff given the portfolio withdrawal need w
// (spending minus income minus lumps, already net of income) and that
// year's income. When w is positive, the portfolio-funded portion is
// grossed up by effectiveRate*taxablePortfolioRatio; income is always
// taxed separately at effectiveRate*taxableIncomeRatio since it was
// already spent covering the need.
func (p *TaxProcessor) EffectiveWithdrawal(w, income, effectiveRate, taxablePortfolioRatio, taxableIncomeRatio float64) float64 {
	incomeTax := income * effectiveRate * taxableIncomeRatio
	if w <= 0 {
		return w + incomeTax
	}
	portfolioTax := w * effectiveRate * taxablePortfolioRatio
	weff := w + portfolioTax + incomeTax
	p.logger.Debug("computed effective withdrawal",
		zap.Float64("w", w),
		zap.Float64("w_eff", weff),
	)
	return weff
}
