package lr

import (
	"fmt"
	"math"

	"github.com/jtejido/afislr/internal/correspondence"
	"github.com/jtejido/afislr/internal/minutia"
	"github.com/jtejido/afislr/internal/similarity"
	"github.com/mcuadros/go-defaults"
)

// NoCorrespondenceLR is what EmpiricalLR returns for zero correspondences.
// It means "nothing matched", not that an error occurred.
const NoCorrespondenceLR = 1e-10

// EmpiricalLR is 10^(2.5n) for n correspondences, scaled by completeness
// n/min(|set1|, |set2|) and, when useQuality is set, by the mean pair
// quality. The result is clamped to [MinLR, MaxLR].
func EmpiricalLR(pairs []correspondence.Pair, set1, set2 []minutia.Minutia, useQuality bool) float64 {
	n := len(pairs)
	if n == 0 {
		return NoCorrespondenceLR
	}
	if !correspondence.Valid(pairs, len(set1), len(set2)) {
		panic(fmt.Sprintf("lr: correspondences do not index sets of size %d and %d one-to-one", len(set1), len(set2)))
	}

	lr := math.Pow(10, 2.5*float64(n))
	if denom := min(len(set1), len(set2)); denom > 0 {
		lr *= float64(n) / float64(denom)
	}
	if useQuality {
		if q := meanPairQuality(pairs, set1, set2); q > 0.01 {
			lr *= q
		}
	}
	return similarity.Clamp(lr, MinLR, MaxLR)
}

func meanPairQuality(pairs []correspondence.Pair, set1, set2 []minutia.Minutia) float64 {
	sum := 0.0
	for _, p := range pairs {
		sum += (set1[p.I].Quality + set2[p.J].Quality) / 2
	}
	return sum / float64(len(pairs))
}

// EmpiricalConfig configures the greedy-row likelihood calculator.
type EmpiricalConfig struct {
	Match               correspondence.Config `toml:"match" yaml:"match" json:"match"`
	Similarity          similarity.Options    `toml:"similarity" yaml:"similarity" json:"similarity"`
	UseQualityWeighting bool                  `toml:"use_quality_weighting" yaml:"useQualityWeighting" json:"useQualityWeighting" default:"true"`
}

// DefaultEmpiricalConfig returns the calculator defaults: 20 px and π/4
// gates, any qualifying match accepted.
func DefaultEmpiricalConfig() EmpiricalConfig {
	var c EmpiricalConfig
	defaults.SetDefaults(&c)
	c.Similarity = similarity.DefaultOptions()
	c.Match.PositionTolerance = 20
	c.Match.AngleTolerance = math.Pi / 4
	c.Match.MinMatchScore = 0
	return c
}

// EmpiricalResult is the outcome of Evaluate.
type EmpiricalResult struct {
	Pairs          []correspondence.Pair `json:"pairs" cbor:"pairs"`
	LR             float64               `json:"lr" cbor:"lr"`
	Log10LR        float64               `json:"log10Lr" cbor:"log10Lr"`
	Interpretation string                `json:"interpretation" cbor:"interpretation"`
}

// Evaluate matches set1 against set2 row by row and scores the result with
// the empirical model.
func (c EmpiricalConfig) Evaluate(set1, set2 []minutia.Minutia) EmpiricalResult {
	pairs := correspondence.GreedyRow(set1, set2, c.Similarity.Func(), c.Match)
	return ScoreEmpirical(pairs, set1, set2, c.UseQualityWeighting)
}

// ScoreEmpirical wraps already computed correspondences into a result.
func ScoreEmpirical(pairs []correspondence.Pair, set1, set2 []minutia.Minutia, useQuality bool) EmpiricalResult {
	value := EmpiricalLR(pairs, set1, set2, useQuality)
	log10LR := math.Log10(value)
	return EmpiricalResult{
		Pairs:          pairs,
		LR:             value,
		Log10LR:        log10LR,
		Interpretation: EmpiricalInterpretation(log10LR),
	}
}
