package afis

import (
	"math"

	"github.com/jtejido/afislr/internal/alignment"
	"github.com/jtejido/afislr/internal/correspondence"
	"github.com/jtejido/afislr/internal/lr"
	"github.com/jtejido/afislr/internal/minutia"
	"github.com/jtejido/afislr/internal/similarity"
)

const (
	weightMatchRatio = 0.6
	weightPairScore  = 0.4
)

// MatchResult is the outcome of comparing a query with one candidate.
type MatchResult struct {
	CandidateID       string  `json:"candidateId" cbor:"candidateId"`
	SimilarityScore   float64 `json:"similarityScore" cbor:"similarityScore"`
	MatchedMinutiae   int     `json:"matchedMinutiae" cbor:"matchedMinutiae"`
	QueryMinutiae     int     `json:"queryMinutiae" cbor:"queryMinutiae"`
	CandidateMinutiae int     `json:"candidateMinutiae" cbor:"candidateMinutiae"`
	// ConfidenceLevel is matchRatio × SimilarityScore.
	ConfidenceLevel float64 `json:"confidenceLevel" cbor:"confidenceLevel"`
	// GeometricallyConsistent is false when validation rejected the pairing.
	GeometricallyConsistent bool `json:"geometricallyConsistent" cbor:"geometricallyConsistent"`
	// LikelihoodRatio is the empirical LR of the correspondences.
	LikelihoodRatio float64               `json:"likelihoodRatio" cbor:"likelihoodRatio"`
	Log10LR         float64               `json:"log10Lr" cbor:"log10Lr"`
	Correspondences []correspondence.Pair `json:"correspondences" cbor:"correspondences"`
	Alignment       *alignment.Result     `json:"alignment,omitempty" cbor:"alignment,omitempty"`
}

// MatchRatio is matched / min(query, candidate) minutiae, 0 when either
// side is empty.
func (r MatchResult) MatchRatio() float64 {
	denom := min(r.QueryMinutiae, r.CandidateMinutiae)
	if denom == 0 {
		return 0
	}
	return float64(r.MatchedMinutiae) / float64(denom)
}

// Verify compares query with candidate using the global matcher.
//
// With geometric validation on, three or more correspondences must agree
// on a common transform; with fewer, the pairing is accepted iff it reaches
// MinMatchedMinutiae. A rejected pairing scores 0.
func Verify(query, candidate []minutia.Minutia, cfg Config) MatchResult {
	pairs := correspondence.Global(query, candidate, cfg.scorer(), cfg.matchConfig())
	res := MatchResult{
		MatchedMinutiae:         len(pairs),
		QueryMinutiae:           len(query),
		CandidateMinutiae:       len(candidate),
		GeometricallyConsistent: true,
		Correspondences:         pairs,
	}
	res.LikelihoodRatio = lr.EmpiricalLR(pairs, query, candidate, cfg.UseQualityWeighting)
	res.Log10LR = math.Log10(res.LikelihoodRatio)
	if len(pairs) == 0 {
		return res
	}

	if cfg.PerformGeometricValidation {
		if len(pairs) >= 3 {
			al := alignment.Estimate(query, candidate, pairs, cfg.Alignment)
			res.Alignment = &al
			res.GeometricallyConsistent = al.Consistent(cfg.Alignment)
		} else {
			res.GeometricallyConsistent = len(pairs) >= cfg.MinMatchedMinutiae
		}
	}
	if !res.GeometricallyConsistent {
		return res
	}

	ratio := res.MatchRatio()
	res.SimilarityScore = similarity.Clamp(weightMatchRatio*ratio+weightPairScore*correspondence.MeanScore(pairs), 0, 1)
	res.ConfidenceLevel = ratio * res.SimilarityScore
	return res
}

// accepted reports whether r clears both identify thresholds.
func (c Config) accepted(r MatchResult) bool {
	return r.SimilarityScore >= c.MinSimilarityScore && r.MatchedMinutiae >= c.MinMatchedMinutiae
}
