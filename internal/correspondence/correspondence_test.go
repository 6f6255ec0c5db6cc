package correspondence

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jtejido/afislr/internal/minutia"
	"github.com/jtejido/afislr/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var weighted = similarity.Options{UseTypeWeighting: true}.Func()

func ending(x, y, angle float64) minutia.Minutia {
	return minutia.New("", x, y, angle, minutia.TypeRidgeEnding, 1)
}

func randomSet(rng *rand.Rand, n int) []minutia.Minutia {
	types := []minutia.Type{minutia.TypeRidgeEnding, minutia.TypeBifurcation}
	out := make([]minutia.Minutia, n)
	for i := range out {
		out[i] = minutia.New("", rng.Float64()*60, rng.Float64()*60, rng.Float64()*2*math.Pi,
			types[rng.Intn(len(types))], rng.Float64())
	}
	return out
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 15.0, cfg.PositionTolerance)
	assert.InDelta(t, math.Pi/6, cfg.AngleTolerance, 1e-12)
	assert.Equal(t, 0.0, cfg.MinMatchScore)

	frag := FragmentConfig()
	assert.Equal(t, 120.0, frag.PositionTolerance)
	assert.Equal(t, math.Pi, frag.AngleTolerance)
}

func TestEmptyInputs(t *testing.T) {
	set := []minutia.Minutia{ending(0, 0, 0)}
	cfg := DefaultConfig()
	for name, match := range map[string]func(a, b []minutia.Minutia, s similarity.ScoreFunc, c Config) []Pair{
		"greedy": GreedyRow,
		"global": Global,
	} {
		t.Run(name, func(t *testing.T) {
			assert.Empty(t, match(nil, set, weighted, cfg))
			assert.Empty(t, match(set, nil, weighted, cfg))
			assert.NotNil(t, match(nil, nil, weighted, cfg))
		})
	}
}

func TestIdenticalSetsMatchFully(t *testing.T) {
	set := []minutia.Minutia{
		ending(0, 0, 0.1),
		minutia.New("", 40, 10, 1.2, minutia.TypeBifurcation, 1),
		ending(25, 60, 3.0),
		minutia.New("", 70, 70, 5.5, minutia.TypeDelta, 1),
	}
	cfg := DefaultConfig()

	for _, pairs := range [][]Pair{
		GreedyRow(set, set, weighted, cfg),
		Global(set, set, weighted, cfg),
	} {
		require.Len(t, pairs, len(set))
		for _, p := range pairs {
			assert.Equal(t, p.I, p.J)
			assert.InDelta(t, 1.0, p.Score, 1e-12)
		}
	}
}

func TestToleranceGates(t *testing.T) {
	set1 := []minutia.Minutia{ending(0, 0, 0)}
	cfg := Config{PositionTolerance: 10, AngleTolerance: 0.5}

	assert.Len(t, GreedyRow(set1, []minutia.Minutia{ending(10, 0, 0)}, weighted, cfg), 1, "distance on the boundary is admitted")
	assert.Empty(t, GreedyRow(set1, []minutia.Minutia{ending(10.5, 0, 0)}, weighted, cfg))
	assert.Empty(t, GreedyRow(set1, []minutia.Minutia{ending(1, 0, 0.6)}, weighted, cfg))
	assert.Empty(t, Global(set1, []minutia.Minutia{ending(10.5, 0, 0)}, weighted, cfg))
	assert.Empty(t, Global(set1, []minutia.Minutia{ending(1, 0, 0.6)}, weighted, cfg))
}

func TestGreedyRowMinMatchScore(t *testing.T) {
	set1 := []minutia.Minutia{ending(0, 0, 0)}
	set2 := []minutia.Minutia{ending(5, 0, 0)}
	s := similarity.SimpleScore(set1[0], set2[0])

	cfg := Config{PositionTolerance: 20, AngleTolerance: math.Pi, MinMatchScore: s}
	assert.Empty(t, GreedyRow(set1, set2, similarity.SimpleScore, cfg), "score must exceed the minimum")

	cfg.MinMatchScore = s - 1e-9
	assert.Len(t, GreedyRow(set1, set2, similarity.SimpleScore, cfg), 1)
}

func TestGreedyRowTieBreaksOnFirstIndex(t *testing.T) {
	set1 := []minutia.Minutia{ending(0, 0, 0)}
	set2 := []minutia.Minutia{ending(3, 0, 0), ending(-3, 0, 0), ending(0, 3, 0)}
	pairs := GreedyRow(set1, set2, weighted, Config{PositionTolerance: 10, AngleTolerance: 1})
	require.Len(t, pairs, 1)
	assert.Equal(t, 0, pairs[0].J)
}

func TestGlobalIgnoresCrossTypePairs(t *testing.T) {
	set1 := []minutia.Minutia{ending(0, 0, 0)}
	set2 := []minutia.Minutia{minutia.New("", 0, 0, 0, minutia.TypeBifurcation, 1)}
	cfg := DefaultConfig()

	assert.Empty(t, Global(set1, set2, weighted, cfg))
	assert.Equal(t, [][]float64{{0}}, Matrix(set1, set2, weighted, cfg))
	// the row matcher has no type restriction
	assert.Len(t, GreedyRow(set1, set2, weighted, cfg), 1)
}

func TestGlobalTieBreaksInRowMajorOrder(t *testing.T) {
	set1 := []minutia.Minutia{ending(0, 0, 0), ending(0, 0, 0)}
	set2 := []minutia.Minutia{ending(0, 0, 0), ending(0, 0, 0)}
	pairs := Global(set1, set2, weighted, DefaultConfig())
	require.Len(t, pairs, 2)
	assert.Equal(t, Pair{I: 0, J: 0, Score: pairs[0].Score}, pairs[0])
	assert.Equal(t, Pair{I: 1, J: 1, Score: pairs[1].Score}, pairs[1])
}

// The row matcher is order dependent and can be strictly worse than the
// global matcher on the same input. Both behaviors are kept on purpose.
func TestGreedyRowAndGlobalDiverge(t *testing.T) {
	set1 := []minutia.Minutia{ending(0, 0, 0), ending(9, 0, 0)}
	set2 := []minutia.Minutia{ending(5, 0, 0), ending(-6, 0, 0)}
	cfg := Config{PositionTolerance: 12, AngleTolerance: 0.5}

	greedy := GreedyRow(set1, set2, weighted, cfg)
	require.Len(t, greedy, 1)
	assert.Equal(t, Pair{I: 0, J: 0, Score: greedy[0].Score}, greedy[0])

	global := Global(set1, set2, weighted, cfg)
	require.Len(t, global, 2)
	assert.Equal(t, 1, global[0].I)
	assert.Equal(t, 0, global[0].J)
	assert.Equal(t, 0, global[1].I)
	assert.Equal(t, 1, global[1].J)
}

func TestPairsAreOneToOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	cfg := Config{PositionTolerance: 30, AngleTolerance: math.Pi / 2}
	for trial := 0; trial < 50; trial++ {
		a := randomSet(rng, 1+rng.Intn(15))
		b := randomSet(rng, 1+rng.Intn(15))
		limit := min(len(a), len(b))

		for _, pairs := range [][]Pair{
			GreedyRow(a, b, weighted, cfg),
			Global(a, b, weighted, cfg),
		} {
			assert.LessOrEqual(t, len(pairs), limit)
			assert.True(t, Valid(pairs, len(a), len(b)), "pairs %v", pairs)
		}
	}
}

func TestDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	a := randomSet(rng, 12)
	b := randomSet(rng, 12)
	cfg := Config{PositionTolerance: 40, AngleTolerance: math.Pi}
	assert.Equal(t, Global(a, b, weighted, cfg), Global(a, b, weighted, cfg))
	assert.Equal(t, GreedyRow(a, b, weighted, cfg), GreedyRow(a, b, weighted, cfg))
}

func TestMeanScore(t *testing.T) {
	assert.Equal(t, 0.0, MeanScore(nil))
	assert.InDelta(t, 0.5, MeanScore([]Pair{{Score: 0.25}, {Score: 0.75}}), 1e-12)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid([]Pair{{I: 0, J: 1}, {I: 1, J: 0}}, 2, 2))
	assert.False(t, Valid([]Pair{{I: 0, J: 1}, {I: 1, J: 1}}, 2, 2))
	assert.False(t, Valid([]Pair{{I: 2, J: 0}}, 2, 2))
}
