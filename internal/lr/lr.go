// Package lr computes likelihood ratios for minutiae comparisons.
//
// Two models coexist and serve different callers:
//
//   - the empirical model, LR = 10^(2.5n) scaled by completeness and
//     quality, reported on an 11-bucket verbal scale;
//   - the multi-component model, a product of shape, direction and type
//     ratios divided by the rarity of the configuration, reported on a
//     6-bucket ENFSI scale.
//
// Neither model returns errors. Degenerate input produces sentinel values
// (1e-10 for the empirical model, Neutral() for the multi-component one).
package lr

import (
	"math"

	"github.com/jtejido/afislr/internal/similarity"
)

// Bounds on the combined likelihood ratio.
const (
	MinLR = 1e-15
	MaxLR = 1e15
)

// Result is the outcome of the multi-component model.
type Result struct {
	LRShape      float64 `json:"lrShape" cbor:"lrShape"`
	LRDirection  float64 `json:"lrDirection" cbor:"lrDirection"`
	LRType       float64 `json:"lrType" cbor:"lrType"`
	PVHd         float64 `json:"pVHd" cbor:"pVHd"`
	LRTotal      float64 `json:"lrTotal" cbor:"lrTotal"`
	Log10LRTotal float64 `json:"log10LrTotal" cbor:"log10LrTotal"`
	// Interpretation is the verbal ENFSI equivalent of Log10LRTotal.
	Interpretation string `json:"interpretation" cbor:"interpretation"`
	// K is the number of minutiae used from each side.
	K int `json:"k" cbor:"k"`
}

// Neutral is returned when there is nothing to compare.
func Neutral() Result {
	return Result{
		LRShape:        1,
		LRDirection:    1,
		LRType:         1,
		PVHd:           1,
		LRTotal:        1,
		Log10LRTotal:   0,
		Interpretation: NoDataInterpretation,
	}
}

// IsNeutral reports whether r is the untouched default.
func (r Result) IsNeutral() bool {
	return r.K == 0 && r == Neutral()
}

// fromLog10 turns an accumulated log10 back into a ratio, saturating at the
// float64 range instead of overflowing.
func fromLog10(l float64) float64 {
	return math.Pow(10, similarity.Clamp(l, -300, 300))
}

// clampedLog10 clamps a per-element ratio and returns its log10. NaN and
// non-positive ratios collapse to the lower bound.
func clampedLog10(ratio, lo, hi float64) float64 {
	if math.IsNaN(ratio) || ratio <= 0 {
		ratio = lo
	}
	return math.Log10(similarity.Clamp(ratio, lo, hi))
}
