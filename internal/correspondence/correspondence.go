// Package correspondence pairs minutiae from two sets one-to-one.
//
// Two strategies coexist. GreedyRow walks set 1 in index order and takes the
// best remaining partner for each row; it is order dependent. Global scores
// the whole same-type similarity matrix and repeatedly takes the best unused
// cell. The two generally disagree on the same input and callers pick the
// one their workflow was calibrated against.
package correspondence

import (
	"math"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/jtejido/afislr/internal/geometry"
	"github.com/jtejido/afislr/internal/minutia"
	"github.com/jtejido/afislr/internal/similarity"
	"github.com/mcuadros/go-defaults"
)

// Pair is a correspondence between set1[I] and set2[J].
type Pair struct {
	I     int     `json:"i" cbor:"i"`
	J     int     `json:"j" cbor:"j"`
	Score float64 `json:"score" cbor:"score"`
}

// Config holds the tolerance gates shared by both matchers.
type Config struct {
	// PositionTolerance is the maximum distance in pixels.
	PositionTolerance float64 `toml:"position_tolerance" yaml:"positionTolerance" json:"positionTolerance" default:"15"`
	// AngleTolerance is the maximum circular angle difference in radians.
	AngleTolerance float64 `toml:"angle_tolerance" yaml:"angleTolerance" json:"angleTolerance" default:"0.5235987755982988"`
	// MinMatchScore must be strictly exceeded for GreedyRow to accept a pair.
	MinMatchScore float64 `toml:"min_match_score" yaml:"minMatchScore" json:"minMatchScore" default:"0"`
}

// DefaultConfig returns the AFIS matcher tolerances.
func DefaultConfig() Config {
	var c Config
	defaults.SetDefaults(&c)
	return c
}

// FragmentConfig returns the wide tolerances of the 1:1 fragment comparison.
func FragmentConfig() Config {
	return Config{
		PositionTolerance: 120,
		AngleTolerance:    math.Pi,
		MinMatchScore:     0,
	}
}

func (c Config) admits(a, b minutia.Minutia) bool {
	return geometry.Distance(a.Position, b.Position) <= c.PositionTolerance &&
		geometry.AngleDiff(a.Angle, b.Angle) <= c.AngleTolerance
}

// GreedyRow matches each minutia of set1, in index order, to the highest
// scoring unmatched minutia of set2 inside the tolerance gates. A match is
// kept only if its score exceeds cfg.MinMatchScore. Ties go to the lowest j.
func GreedyRow(set1, set2 []minutia.Minutia, score similarity.ScoreFunc, cfg Config) []Pair {
	if len(set1) == 0 || len(set2) == 0 {
		return []Pair{}
	}

	used := make([]bool, len(set2))
	pairs := make([]Pair, 0, min(len(set1), len(set2)))
	for i, a := range set1 {
		bestJ := -1
		bestScore := cfg.MinMatchScore
		for j, b := range set2 {
			if used[j] || !cfg.admits(a, b) {
				continue
			}
			if s := score(a, b); s > bestScore {
				bestJ, bestScore = j, s
			}
		}
		if bestJ >= 0 {
			used[bestJ] = true
			pairs = append(pairs, Pair{I: i, J: bestJ, Score: bestScore})
		}
	}
	return pairs
}

// Matrix is the same-type similarity matrix used by Global. Cells for pairs
// of different type or outside the tolerance gates are zero.
func Matrix(set1, set2 []minutia.Minutia, score similarity.ScoreFunc, cfg Config) [][]float64 {
	m := make([][]float64, len(set1))
	for i, a := range set1 {
		m[i] = make([]float64, len(set2))
		for j, b := range set2 {
			if a.Type != b.Type || !cfg.admits(a, b) {
				continue
			}
			m[i][j] = score(a, b)
		}
	}
	return m
}

// Global repeatedly takes the highest scoring unused cell of the whole
// similarity matrix until no nonzero cell is left. On equal scores the cell
// found first in row-major order wins.
func Global(set1, set2 []minutia.Minutia, score similarity.ScoreFunc, cfg Config) []Pair {
	if len(set1) == 0 || len(set2) == 0 {
		return []Pair{}
	}

	heap := binaryheap.NewWith(byScoreThenIndex)
	for i, row := range Matrix(set1, set2, score, cfg) {
		for j, s := range row {
			if s > 0 {
				heap.Push(Pair{I: i, J: j, Score: s})
			}
		}
	}

	usedI := make([]bool, len(set1))
	usedJ := make([]bool, len(set2))
	pairs := make([]Pair, 0, min(len(set1), len(set2)))
	for len(pairs) < cap(pairs) {
		v, ok := heap.Pop()
		if !ok {
			break
		}
		p := v.(Pair)
		if usedI[p.I] || usedJ[p.J] {
			continue
		}
		usedI[p.I], usedJ[p.J] = true, true
		pairs = append(pairs, p)
	}
	return pairs
}

func byScoreThenIndex(a, b interface{}) int {
	pa, pb := a.(Pair), b.(Pair)
	switch {
	case pa.Score > pb.Score:
		return -1
	case pa.Score < pb.Score:
		return 1
	case pa.I != pb.I:
		return pa.I - pb.I
	default:
		return pa.J - pb.J
	}
}

// MeanScore averages the pair scores, 0 for no pairs.
func MeanScore(pairs []Pair) float64 {
	if len(pairs) == 0 {
		return 0
	}
	sum := 0.0
	for _, p := range pairs {
		sum += p.Score
	}
	return sum / float64(len(pairs))
}

// Valid reports whether pairs is a one-to-one mapping with in-range indices.
func Valid(pairs []Pair, n1, n2 int) bool {
	seenI := make(map[int]bool, len(pairs))
	seenJ := make(map[int]bool, len(pairs))
	for _, p := range pairs {
		if p.I < 0 || p.I >= n1 || p.J < 0 || p.J >= n2 || seenI[p.I] || seenJ[p.J] {
			return false
		}
		seenI[p.I], seenJ[p.J] = true, true
	}
	return true
}
