// Package config defines the data structures for a retirement scenario and
// provides functions for loading and validating them.
package config

import (
	"fmt"

	"github.com/seaberger/retirement-calculator/pkg/configprocessor"
	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/spf13/viper"
)

// LoggingConfig holds logging configuration options.
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options.
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// Account is an investment account with an asset allocation. Allocation
// fields should sum to 1.0; a zero-sum account defaults entirely to cash.
type Account struct {
	Kind    string // "401k", "IRA", "Taxable", "Crypto", ...
	Balance float64
	Stocks  float64
	Bonds   float64
	Crypto  float64
	CDs     float64
	Cash    float64
}

// Weights returns the account's allocation as a fixed asset-indexed array,
// normalized to sum to 1. An account with no allocation specified defaults
// to 100% cash.
func (a Account) Weights() [constants.NumAssets]float64 {
	w := [constants.NumAssets]float64{a.Stocks, a.Bonds, a.Crypto, a.CDs, a.Cash}
	sum := 0.0
	for _, v := range w {
		sum += v
	}
	if sum <= 0 {
		w = [constants.NumAssets]float64{}
		w[constants.Cash] = 1.0
		return w
	}
	for i := range w {
		w[i] /= sum
	}
	return w
}

// IncomeStream is a recurring income stream (Social Security, pension,
// etc.) active between StartAge and EndAge inclusive, growing at an annual
// compounded cost-of-living adjustment from StartAge.
type IncomeStream struct {
	StartAge int
	EndAge   int
	Monthly  float64
	COLA     float64
}

// ConsultingLadder is a post-retirement consulting income stream that
// grows for a fixed number of years starting at StartAge.
type ConsultingLadder struct {
	StartAge    int
	Years       int
	StartAmount float64
	Growth      float64
}

// LumpEvent is a one-time cash inflow (inheritance, home sale) applied at
// the start of the year in which Age occurs.
type LumpEvent struct {
	Age         int
	Amount      float64
	Description string
}

// ToyPurchase is a one-time cash outflow (car, vacation) applied as extra
// spending in the year Age occurs.
type ToyPurchase struct {
	Age         int
	Amount      float64
	Description string
}

// Taxes configures the single effective-rate tax model.
type Taxes struct {
	EffectiveRate         float64
	TaxablePortfolioRatio float64
	TaxableIncomeRatio    float64
}

// Spending configures the annual withdrawal schedule, which steps down at
// ReduceAtAge and grows with inflation compounded from CurrentAge.
type Spending struct {
	BaseAnnual    float64
	ReducedAnnual float64
	ReduceAtAge   int
	Inflation     float64
}

// BlackSwanEvent is a one-time, scheduled percentage drop in portfolio
// value at a specific age, applied before that year's market return.
type BlackSwanEvent struct {
	Enabled       bool
	Age           int
	PortfolioDrop float64
}

// CapitalMarketAssumptions holds expected returns, volatilities, and
// correlation across the fixed asset set, plus fat-tail toggles.
type CapitalMarketAssumptions struct {
	ExpRet map[string]float64
	Vol    map[string]float64
	Corr   map[string]map[string]float64

	FatTails bool
	TDF      float64
	TailProb float64
	// TailBoost defaults to 1.0 but is not read by the return generator;
	// it has no effect on the jump distribution.
	TailBoost float64

	// SequenceRiskBoost, supplemented from original_source, multiplies the
	// market jump intensity during EarlyRetirementYears. 1.0 disables it
	// and is the default so spec.md's benchmark scenarios stay
	// reproducible without it.
	SequenceRiskBoost    float64
	EarlyRetirementYears int
}

// Scenario is a complete retirement scenario as loaded from YAML, ready
// for structural validation and simulation.
type Scenario struct {
	Name        string
	CurrentAge  int
	EndAge      int
	Sims        int
	Seed        *int64
	Accounts    []Account
	Spending    Spending
	Incomes     []IncomeStream
	Lumps       []LumpEvent
	Toys        []ToyPurchase
	Consulting  ConsultingLadder
	Taxes       Taxes
	CMA         CapitalMarketAssumptions
	BlackSwan   BlackSwanEvent
	FatTailMode string // "", "extreme", "high_frequency", "negative_skew"; fat tails are switched off via CMA.FatTails

	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
}

// NYears returns the simulation horizon in whole years.
func (s Scenario) NYears() int {
	return s.EndAge - s.CurrentAge
}

// InitialBalance returns the sum of all account balances.
func (s Scenario) InitialBalance() float64 {
	total := 0.0
	for _, acc := range s.Accounts {
		total += acc.Balance
	}
	return total
}

// TargetWeights computes the aggregate asset allocation as the
// balance-weighted average of each account's weights, renormalized.
func (s Scenario) TargetWeights() [constants.NumAssets]float64 {
	var agg [constants.NumAssets]float64
	total := s.InitialBalance()
	if total <= 0 {
		agg[constants.Cash] = 1.0
		return agg
	}
	for _, acc := range s.Accounts {
		w := acc.Weights()
		share := acc.Balance / total
		for i := range agg {
			agg[i] += share * w[i]
		}
	}
	sum := 0.0
	for _, v := range agg {
		sum += v
	}
	if sum <= 0 {
		agg = [constants.NumAssets]float64{}
		agg[constants.Cash] = 1.0
		return agg
	}
	for i := range agg {
		agg[i] /= sum
	}
	return agg
}

// Arrays converts the map-keyed capital market assumptions into the
// fixed-size arrays the numerical core operates on, indexed in
// constants.Assets order. Missing entries default to zero.
func (c CapitalMarketAssumptions) Arrays() (mu, sigma [constants.NumAssets]float64, corr [constants.NumAssets][constants.NumAssets]float64) {
	for i, a := range constants.Assets {
		mu[i] = c.ExpRet[a.String()]
		sigma[i] = c.Vol[a.String()]
	}
	for i, ai := range constants.Assets {
		for j, aj := range constants.Assets {
			if i == j {
				corr[i][j] = 1.0
				continue
			}
			if row, ok := c.Corr[ai.String()]; ok {
				corr[i][j] = row[aj.String()]
			}
		}
	}
	return mu, sigma, corr
}

// LoadScenario takes a file path as input and loads the YAML-formatted
// scenario configuration there.
func LoadScenario(configPath string) (*Scenario, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading scenario file, %s", err)
	}

	var scenario Scenario
	if err := viper.Unmarshal(&scenario); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	applyDefaults(&scenario)

	return &scenario, nil
}

// applyDefaults fills in the scenario fields that the original Python
// models default at the dataclass/pydantic layer, so a minimal YAML file
// behaves the same way the original's field defaults would.
func applyDefaults(s *Scenario) {
	if s.Sims == 0 {
		s.Sims = constants.DefaultNumSims
	}
	if s.CMA.TDF == 0 {
		s.CMA.TDF = 8
	}
	if s.CMA.TailBoost == 0 {
		s.CMA.TailBoost = 1.0
	}
	if s.CMA.SequenceRiskBoost == 0 {
		s.CMA.SequenceRiskBoost = 1.0
	}
	if s.CMA.EarlyRetirementYears == 0 {
		s.CMA.EarlyRetirementYears = 10
	}
}

// ValidateConfiguration performs soft validation of the scenario and
// returns human-readable warnings. It never blocks a run; hard structural
// failures are reported separately as simerrors.ValidationError by
// pkg/validation.
func (s *Scenario) ValidateConfiguration() []string {
	var incomes []configprocessor.IncomeInfo
	for _, inc := range s.Incomes {
		incomes = append(incomes, configprocessor.IncomeInfo{
			StartAge: inc.StartAge,
			EndAge:   inc.EndAge,
		})
	}

	var lumpAges, toyAges []int
	for _, l := range s.Lumps {
		lumpAges = append(lumpAges, l.Age)
	}
	for _, t := range s.Toys {
		toyAges = append(toyAges, t.Age)
	}

	processor := configprocessor.NewProcessor()
	return processor.ValidateConfiguration(configprocessor.ScenarioInfo{
		CurrentAge: s.CurrentAge,
		EndAge:     s.EndAge,
		Incomes:    incomes,
		LumpAges:   lumpAges,
		ToyAges:    toyAges,
	})
}
