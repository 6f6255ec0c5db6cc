// Package alignment estimates the similarity transform relating two
// corresponded minutiae sets, so correspondences can be re-scored after
// alignment and checked for geometric consistency.
//
// The estimator is RANSAC over 2-pair rigid (or similarity) hypotheses with a
// least squares refit on the consensus set. It is deterministic for a given
// Seed.
package alignment

import (
	"math"
	"math/rand"

	"github.com/jtejido/afislr/internal/correspondence"
	"github.com/jtejido/afislr/internal/geometry"
	"github.com/jtejido/afislr/internal/minutia"
	"github.com/mcuadros/go-defaults"
	"gonum.org/v1/gonum/mat"
)

// Config holds configuration for the estimator. Distances are in pixels.
type Config struct {
	Iterations      int     `toml:"iterations" yaml:"iterations" json:"iterations" default:"200"`
	InlierThreshold float64 `toml:"inlier_threshold" yaml:"inlierThreshold" json:"inlierThreshold" default:"8"`
	// MinInlierRatio is the consensus fraction Consistent requires.
	MinInlierRatio float64 `toml:"min_inlier_ratio" yaml:"minInlierRatio" json:"minInlierRatio" default:"0.5"`
	AllowScale     bool    `toml:"allow_scale" yaml:"allowScale" json:"allowScale"`
	Seed           int64   `toml:"seed" yaml:"seed" json:"seed" default:"1"`
}

// DefaultConfig returns sensible defaults for the estimator.
func DefaultConfig() Config {
	var c Config
	defaults.SetDefaults(&c)
	return c
}

// Result is the outcome of Estimate.
type Result struct {
	Transform Transform `json:"transform" cbor:"transform"`
	// Inliers indexes into the pairs passed to Estimate.
	Inliers []int `json:"inliers" cbor:"inliers"`
	// Confidence is the inlier fraction, 0 when nothing could be estimated.
	Confidence float64 `json:"confidence" cbor:"confidence"`
	// RMSE is the root mean square residual over the inliers.
	RMSE float64 `json:"rmse" cbor:"rmse"`
}

// Consistent reports whether the consensus is large enough.
func (r Result) Consistent(cfg Config) bool {
	return r.Confidence > 0 && r.Confidence >= cfg.MinInlierRatio
}

// Estimate finds T with T(set2[p.J]) ≈ set1[p.I] for the given pairs.
// Fewer than two pairs yields the identity with confidence 0.
func Estimate(set1, set2 []minutia.Minutia, pairs []correspondence.Pair, cfg Config) Result {
	none := Result{Transform: Identity(), Inliers: []int{}}
	if len(pairs) < 2 {
		return none
	}

	src := make([]geometry.Point, len(pairs))
	dst := make([]geometry.Point, len(pairs))
	for k, p := range pairs {
		src[k] = set2[p.J].Position
		dst[k] = set1[p.I].Position
	}

	best, bestInliers := Identity(), []int(nil)
	try := func(a, b int) {
		t, ok := fromTwoPairs(src[a], src[b], dst[a], dst[b], cfg.AllowScale)
		if !ok {
			return
		}
		if inliers := countInliers(src, dst, t, cfg.InlierThreshold); len(inliers) > len(bestInliers) {
			best, bestInliers = t, inliers
		}
	}

	n := len(pairs)
	if n*(n-1)/2 <= cfg.Iterations {
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				try(a, b)
			}
		}
	} else {
		rng := rand.New(rand.NewSource(cfg.Seed))
		for iter := 0; iter < cfg.Iterations; iter++ {
			idx := rng.Perm(n)[:2]
			try(idx[0], idx[1])
		}
	}

	if len(bestInliers) < 2 {
		return none
	}

	// Recompute transform using all inliers
	inSrc := make([]geometry.Point, len(bestInliers))
	inDst := make([]geometry.Point, len(bestInliers))
	for k, idx := range bestInliers {
		inSrc[k], inDst[k] = src[idx], dst[idx]
	}
	if refit, ok := leastSquares(inSrc, inDst, cfg.AllowScale); ok {
		if inliers := countInliers(src, dst, refit, cfg.InlierThreshold); len(inliers) >= len(bestInliers) {
			best, bestInliers = refit, inliers
		}
	}

	return Result{
		Transform:  best,
		Inliers:    bestInliers,
		Confidence: float64(len(bestInliers)) / float64(n),
		RMSE:       rmse(src, dst, best, bestInliers),
	}
}

func countInliers(src, dst []geometry.Point, t Transform, threshold float64) []int {
	var inliers []int
	for i := range src {
		if geometry.Distance(t.Apply(src[i]), dst[i]) <= threshold {
			inliers = append(inliers, i)
		}
	}
	return inliers
}

func rmse(src, dst []geometry.Point, t Transform, idx []int) float64 {
	if len(idx) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range idx {
		d := geometry.Distance(t.Apply(src[i]), dst[i])
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(idx)))
}

// leastSquares is the Umeyama closed form: the SVD of the cross covariance
// gives the rotation, the singular values the scale.
func leastSquares(src, dst []geometry.Point, withScale bool) (Transform, bool) {
	n := float64(len(src))
	muS, muD := geometry.Centroid(src), geometry.Centroid(dst)

	cov := mat.NewDense(2, 2, nil)
	varS := 0.0
	for i := range src {
		sx, sy := src[i].X-muS.X, src[i].Y-muS.Y
		dx, dy := dst[i].X-muD.X, dst[i].Y-muD.Y
		cov.Set(0, 0, cov.At(0, 0)+dx*sx/n)
		cov.Set(0, 1, cov.At(0, 1)+dx*sy/n)
		cov.Set(1, 0, cov.At(1, 0)+dy*sx/n)
		cov.Set(1, 1, cov.At(1, 1)+dy*sy/n)
		varS += (sx*sx + sy*sy) / n
	}
	if varS < 1e-12 {
		return Identity(), false
	}

	var svd mat.SVD
	if !svd.Factorize(cov, mat.SVDFull) {
		return Identity(), false
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	sigma := svd.Values(nil)

	d := 1.0
	if mat.Det(&u)*mat.Det(&v) < 0 {
		d = -1
	}
	s := mat.NewDiagDense(2, []float64{1, d})
	var r mat.Dense
	r.Product(&u, s, v.T())

	t := Transform{
		Rotation: math.Atan2(r.At(1, 0), r.At(0, 0)),
		Scale:    1,
	}
	if withScale {
		t.Scale = (sigma[0] + d*sigma[1]) / varS
	}
	moved := t.Apply(muS)
	t.Tx = muD.X - moved.X
	t.Ty = muD.Y - moved.Y
	return t, true
}

// Rescore aligns set2 onto set1 with t and matches again.
func Rescore(set1, set2 []minutia.Minutia, t Transform, match func(a, b []minutia.Minutia) []correspondence.Pair) []correspondence.Pair {
	return match(set1, t.ApplyAll(set2))
}
