// Package similarity scores how alike two individual minutiae are.
//
// Both scorers use the same fixed weight layout:
//
//	0.4*distance + 0.3*angle + 0.2*type + 0.1*quality
//
// and clamp the result to [0, 1].
package similarity

import (
	"math"

	"github.com/jtejido/afislr/internal/geometry"
	"github.com/jtejido/afislr/internal/minutia"
	"github.com/mcuadros/go-defaults"
	"golang.org/x/exp/constraints"
)

const (
	weightDistance = 0.4
	weightAngle    = 0.3
	weightType     = 0.2
	weightQuality  = 0.1

	// distanceScale is the exponential decay constant in pixels.
	distanceScale = 10.0
	// undefinedQuality is the mean quality below which both minutiae are
	// treated as carrying no quality information.
	undefinedQuality = 0.01
)

// ScoreFunc scores a pair of minutiae in [0, 1].
type ScoreFunc func(a, b minutia.Minutia) float64

// Options configures Score.
type Options struct {
	// UseTypeWeighting multiplies agreeing types by their rarity weight.
	UseTypeWeighting bool `toml:"use_type_weighting" yaml:"useTypeWeighting" json:"useTypeWeighting" default:"true"`
}

// DefaultOptions enables type weighting.
func DefaultOptions() Options {
	var o Options
	defaults.SetDefaults(&o)
	return o
}

// Func binds opts into a ScoreFunc.
func (o Options) Func() ScoreFunc {
	return func(a, b minutia.Minutia) float64 { return Score(a, b, o) }
}

// Score is the AFIS local similarity.
func Score(a, b minutia.Minutia, opts Options) float64 {
	typeScore := 0.5
	if a.Type == b.Type {
		typeScore = 1.0
		if opts.UseTypeWeighting {
			typeScore *= a.Type.RarityWeight()
		}
	}
	return combine(a, b, typeScore)
}

// SimpleScore is the variant used when comparing two fragments 1:1: type
// agreement is 1.0 or 0.5 with no rarity weighting.
func SimpleScore(a, b minutia.Minutia) float64 {
	typeScore := 0.5
	if a.Type == b.Type {
		typeScore = 1.0
	}
	return combine(a, b, typeScore)
}

func combine(a, b minutia.Minutia, typeScore float64) float64 {
	distScore := math.Exp(-geometry.Distance(a.Position, b.Position) / distanceScale)
	angleScore := (math.Cos(geometry.AngleDiff(a.Angle, b.Angle)) + 1) / 2

	qualityScore := (a.Quality + b.Quality) / 2
	if qualityScore < undefinedQuality {
		qualityScore = 1.0
	}

	score := weightDistance*distScore +
		weightAngle*angleScore +
		weightType*typeScore +
		weightQuality*qualityScore
	return Clamp(score, 0, 1)
}

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
