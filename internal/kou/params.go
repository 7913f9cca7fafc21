// Package kou defines the Kou jump-diffusion parameter pack (component A):
// immutable numerical parameters for the Student-t body and Kou jump
// generators, the market co-jump configuration, and the pure toggle
// transforms applied to a copy of the pack before a run.
package kou

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/seaberger/retirement-calculator/pkg/constants"
	"github.com/seaberger/retirement-calculator/pkg/mathutil"
)

// KouParams are the per-asset Kou double-exponential jump parameters in
// log space.
type KouParams struct {
	Lam    float64 `json:"lam"`     // annual Poisson jump intensity
	PPos   float64 `json:"p_pos"`   // P(jump is positive)
	EtaPos float64 `json:"eta_pos"` // mean +jump size (log-return scale)
	EtaNeg float64 `json:"eta_neg"` // mean -jump size (log-return scale)
}

// MarketJumpParams configures the market-wide co-jump shared across
// correlated assets.
type MarketJumpParams struct {
	KouParams
	AffectedAssets []constants.Asset `json:"-"`
	BondBeta       float64           `json:"bond_beta"`
}

// marketJumpJSON is the on-disk shape for MarketJumpParams; AffectedAssets
// is serialized as asset name strings.
type marketJumpJSON struct {
	Lam            float64  `json:"lam"`
	PPos           float64  `json:"p_pos"`
	EtaPos         float64  `json:"eta_pos"`
	EtaNeg         float64  `json:"eta_neg"`
	AffectedAssets []string `json:"affected_assets"`
	BondBeta       float64  `json:"bond_beta"`
}

// ParamPack is the complete, immutable set of numerical parameters driving
// the fat-tail return generator.
type ParamPack struct {
	PerAsset      [constants.NumAssets]KouParams
	Market        MarketJumpParams
	TDF           float64
	TailProb      float64
	TailBoost     float64
	Floors        [constants.NumAssets]float64
	ExtremeFloors [constants.NumAssets]float64

	MaxIdioJumpsPerYear int

	// SequenceRiskBoost and EarlyRetirementYears implement the
	// sequence-of-returns risk enhancement supplemented from
	// original_source/fat_tails_kou_logsafe.py. SequenceRiskBoost == 1.0
	// disables it.
	SequenceRiskBoost    float64
	EarlyRetirementYears int
}

// Clone returns a deep copy of the parameter pack so toggle transforms and
// black-swan coordination never mutate a shared instance.
func (p ParamPack) Clone() ParamPack {
	clone := p
	clone.PerAsset = p.PerAsset
	clone.Market.AffectedAssets = append([]constants.Asset(nil), p.Market.AffectedAssets...)
	return clone
}

// Defaults returns the production calibration from spec.md §4.1.
func Defaults() ParamPack {
	var perAsset [constants.NumAssets]KouParams
	perAsset[constants.Stocks] = KouParams{Lam: 0.20, PPos: 0.40, EtaPos: 0.030, EtaNeg: 0.075}
	perAsset[constants.Bonds] = KouParams{Lam: 0.03, PPos: 0.50, EtaPos: 0.006, EtaNeg: 0.012}
	perAsset[constants.Crypto] = KouParams{Lam: 0.90, PPos: 0.45, EtaPos: 0.140, EtaNeg: 0.170}
	perAsset[constants.CDs] = KouParams{Lam: 0, PPos: 0.50, EtaPos: 0, EtaNeg: 0}
	perAsset[constants.Cash] = KouParams{Lam: 0, PPos: 0.50, EtaPos: 0, EtaNeg: 0}

	return ParamPack{
		PerAsset: perAsset,
		Market: MarketJumpParams{
			KouParams:      KouParams{Lam: 0.25, PPos: 0.40, EtaPos: 0.055, EtaNeg: 0.075},
			AffectedAssets: []constants.Asset{constants.Stocks, constants.Crypto},
			BondBeta:       0.10,
		},
		TDF:                 8,
		TailProb:            0.025,
		TailBoost:           1.0,
		Floors:              [constants.NumAssets]float64{-0.60, -0.25, -0.85, -0.05, -0.02},
		ExtremeFloors:       [constants.NumAssets]float64{-0.70, -0.25, -0.85, -0.05, -0.02},
		MaxIdioJumpsPerYear: constants.MaxIdioJumpsPerYear,
		SequenceRiskBoost:   1.0,
		EarlyRetirementYears: 10,
	}
}

//go:embed kou_params_v1.json
var embeddedParamPack embed.FS

// packJSON is the on-disk shape of the versioned parameter pack. Unknown
// fields are tolerated by decoding into this struct directly (encoding/json
// ignores fields it doesn't recognize); required fields are checked
// explicitly in validatePackJSON().
type packJSON struct {
	Version             string             `json:"version"`
	PerAsset            map[string]KouParams `json:"per_asset"`
	Market              marketJumpJSON     `json:"market"`
	TDF                 float64            `json:"t_df"`
	TailProb            float64            `json:"tail_prob"`
	TailBoost           float64            `json:"tail_boost"`
	Floors              map[string]float64 `json:"floors"`
	ExtremeFloors       map[string]float64 `json:"extreme_floors"`
	MaxIdioJumpsPerYear int                `json:"max_idio_jumps_per_year"`
}

// LoadDefault loads the embedded kou_params_v1.json parameter pack.
func LoadDefault() (ParamPack, error) {
	data, err := embeddedParamPack.ReadFile("kou_params_v1.json")
	if err != nil {
		return ParamPack{}, fmt.Errorf("reading embedded parameter pack: %w", err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses a versioned Kou parameter pack from raw JSON. It
// tolerates unknown fields but rejects a pack missing any required field.
func LoadFromBytes(data []byte) (ParamPack, error) {
	var raw packJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return ParamPack{}, fmt.Errorf("parsing parameter pack: %w", err)
	}
	if err := validatePackJSON(raw); err != nil {
		return ParamPack{}, err
	}

	pack := Defaults()
	pack.TDF = raw.TDF
	pack.TailProb = raw.TailProb
	pack.TailBoost = raw.TailBoost
	pack.MaxIdioJumpsPerYear = raw.MaxIdioJumpsPerYear

	for i := range constants.Assets {
		name := constants.Assets[i].String()
		if kp, ok := raw.PerAsset[name]; ok {
			pack.PerAsset[i] = kp
		}
		if f, ok := raw.Floors[name]; ok {
			pack.Floors[i] = f
		}
		if f, ok := raw.ExtremeFloors[name]; ok {
			pack.ExtremeFloors[i] = f
		}
	}

	pack.Market = MarketJumpParams{
		KouParams: KouParams{
			Lam:    raw.Market.Lam,
			PPos:   raw.Market.PPos,
			EtaPos: raw.Market.EtaPos,
			EtaNeg: raw.Market.EtaNeg,
		},
		BondBeta: raw.Market.BondBeta,
	}
	for _, name := range raw.Market.AffectedAssets {
		for _, a := range constants.Assets {
			if a.String() == name {
				pack.Market.AffectedAssets = append(pack.Market.AffectedAssets, a)
			}
		}
	}

	return pack, nil
}

func validatePackJSON(raw packJSON) error {
	if raw.Version != constants.ParamPackVersion {
		return fmt.Errorf("unsupported parameter pack version %q, expected %q", raw.Version, constants.ParamPackVersion)
	}
	if raw.PerAsset == nil {
		return fmt.Errorf("parameter pack missing required field: per_asset")
	}
	if raw.Market.AffectedAssets == nil {
		return fmt.Errorf("parameter pack missing required field: market.affected_assets")
	}
	if raw.TDF == 0 {
		return fmt.Errorf("parameter pack missing required field: t_df")
	}
	return nil
}

// Marshal serializes the pack back to the versioned JSON shape, for
// round-trip load -> serialize -> load parity (spec.md §8).
func (p ParamPack) Marshal() ([]byte, error) {
	raw := packJSON{
		Version:             constants.ParamPackVersion,
		PerAsset:            make(map[string]KouParams, constants.NumAssets),
		TDF:                 p.TDF,
		TailProb:            p.TailProb,
		TailBoost:           p.TailBoost,
		Floors:              make(map[string]float64, constants.NumAssets),
		ExtremeFloors:       make(map[string]float64, constants.NumAssets),
		MaxIdioJumpsPerYear: p.MaxIdioJumpsPerYear,
	}
	for i, a := range constants.Assets {
		raw.PerAsset[a.String()] = p.PerAsset[i]
		raw.Floors[a.String()] = p.Floors[i]
		raw.ExtremeFloors[a.String()] = p.ExtremeFloors[i]
	}
	raw.Market = marketJumpJSON{
		Lam:      p.Market.Lam,
		PPos:     p.Market.PPos,
		EtaPos:   p.Market.EtaPos,
		EtaNeg:   p.Market.EtaNeg,
		BondBeta: p.Market.BondBeta,
	}
	for _, a := range p.Market.AffectedAssets {
		raw.Market.AffectedAssets = append(raw.Market.AffectedAssets, a.String())
	}
	return json.MarshalIndent(raw, "", "  ")
}

// ToggleMode names a fat-tail UI toggle combination applied to a parameter
// pack copy.
type ToggleMode string

const (
	ToggleStandard       ToggleMode = ""
	ToggleExtreme        ToggleMode = "extreme"
	ToggleHighFrequency  ToggleMode = "high_frequency"
	ToggleNegativeSkew   ToggleMode = "negative_skew"
)

// ApplyToggle returns a new ParamPack with the named toggle's calibrated
// multipliers applied. The input pack is never mutated (spec.md §4.1, §9;
// tested by spec.md §8's purity property). Black-swan coordination is not
// applied here: it is a per-(path, year) adjustment, not a pack-wide one,
// and is handled entirely by internal/returns's per-year blackSwanYear
// check against the toggle-scaled Market.EtaNeg this function returns.
func ApplyToggle(pack ParamPack, mode ToggleMode) ParamPack {
	out := pack.Clone()

	mag := 1.0
	freq := 1.0
	highFreqMagBoost := 1.0
	skewShift := 0.0
	skewMagScale := 1.0
	etaPosSkewScale := 1.0

	switch mode {
	case ToggleExtreme:
		mag = 1.30
	case ToggleHighFrequency:
		freq = 1.50
		highFreqMagBoost = 1.10
	case ToggleNegativeSkew:
		skewShift = -0.05
		skewMagScale = 1.10
		etaPosSkewScale = 0.95
	}

	for i := range out.PerAsset {
		p := out.PerAsset[i]
		out.PerAsset[i] = KouParams{
			Lam:    p.Lam * freq,
			PPos:   mathutil.Clamp(p.PPos+skewShift, 0.05, 0.95),
			EtaPos: p.EtaPos * mag * etaPosSkewScale,
			EtaNeg: p.EtaNeg * mag * skewMagScale,
		}
	}

	out.Market.KouParams = KouParams{
		Lam:    out.Market.Lam * freq,
		PPos:   mathutil.Clamp(out.Market.PPos+skewShift, 0.05, 0.95),
		EtaPos: out.Market.EtaPos * mag * etaPosSkewScale,
		EtaNeg: out.Market.EtaNeg * mag * highFreqMagBoost * skewMagScale,
	}

	return out
}
