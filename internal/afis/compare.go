package afis

import (
	"github.com/jtejido/afislr/internal/correspondence"
	"github.com/jtejido/afislr/internal/lr"
	"github.com/jtejido/afislr/internal/minutia"
	"github.com/jtejido/afislr/internal/similarity"
	"github.com/mcuadros/go-defaults"
)

// FragmentConfig configures the 1:1 fragment comparison.
type FragmentConfig struct {
	Match               correspondence.Config `toml:"match" yaml:"match" json:"match"`
	UseQualityWeighting bool                  `toml:"use_quality_weighting" yaml:"useQualityWeighting" json:"useQualityWeighting" default:"true"`
}

// DefaultFragmentConfig uses the wide fragment tolerances.
func DefaultFragmentConfig() FragmentConfig {
	var c FragmentConfig
	defaults.SetDefaults(&c)
	c.Match = correspondence.FragmentConfig()
	return c
}

// Comparison is the outcome of CompareFragments.
type Comparison struct {
	FragmentA       string                `json:"fragmentA" cbor:"fragmentA"`
	FragmentB       string                `json:"fragmentB" cbor:"fragmentB"`
	Correspondences []correspondence.Pair `json:"correspondences" cbor:"correspondences"`
	MatchedMinutiae int                   `json:"matchedMinutiae" cbor:"matchedMinutiae"`
	// SimilarityScore is the mean score of the corresponded pairs.
	SimilarityScore float64 `json:"similarityScore" cbor:"similarityScore"`
	LikelihoodRatio float64 `json:"likelihoodRatio" cbor:"likelihoodRatio"`
	Log10LR         float64 `json:"log10Lr" cbor:"log10Lr"`
	Interpretation  string  `json:"interpretation" cbor:"interpretation"`
}

// CompareFragments pairs a with b row by row using the unweighted scorer and
// reports the empirical LR. nil fragments compare as empty.
func CompareFragments(a, b *minutia.Fragment, cfg FragmentConfig) Comparison {
	var setA, setB []minutia.Minutia
	var c Comparison
	if a != nil {
		setA, c.FragmentA = a.Minutiae, a.ID
	}
	if b != nil {
		setB, c.FragmentB = b.Minutiae, b.ID
	}

	pairs := correspondence.GreedyRow(setA, setB, similarity.SimpleScore, cfg.Match)
	emp := lr.ScoreEmpirical(pairs, setA, setB, cfg.UseQualityWeighting)

	c.Correspondences = pairs
	c.MatchedMinutiae = len(pairs)
	c.SimilarityScore = correspondence.MeanScore(pairs)
	c.LikelihoodRatio = emp.LR
	c.Log10LR = emp.Log10LR
	c.Interpretation = emp.Interpretation
	return c
}
