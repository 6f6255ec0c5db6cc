package similarity

import (
	"math"
	"testing"

	"github.com/jtejido/afislr/internal/minutia"
	"github.com/stretchr/testify/assert"
)

func TestScoreReflexive(t *testing.T) {
	for _, typ := range []minutia.Type{minutia.TypeRidgeEnding, minutia.TypeBifurcation} {
		m := minutia.New("a", 12, 30, 0.7, typ, 1.0)
		assert.InDelta(t, 1.0, Score(m, m, Options{UseTypeWeighting: true}), 1e-12)
		assert.InDelta(t, 1.0, Score(m, m, Options{}), 1e-12)
		assert.InDelta(t, 1.0, SimpleScore(m, m), 1e-12)
	}
}

func TestScoreRareTypeClampsAtOne(t *testing.T) {
	m := minutia.New("a", 0, 0, 0, minutia.TypeDelta, 1.0)
	assert.Equal(t, 1.0, Score(m, m, Options{UseTypeWeighting: true}))
}

func TestScoreComponents(t *testing.T) {
	a := minutia.New("a", 0, 0, 0, minutia.TypeRidgeEnding, 0.6)
	b := minutia.New("b", 10, 0, math.Pi/2, minutia.TypeBifurcation, 0.4)

	want := 0.4*math.Exp(-1) + 0.3*0.5 + 0.2*0.5 + 0.1*0.5
	assert.InDelta(t, want, Score(a, b, Options{UseTypeWeighting: true}), 1e-12)
	assert.InDelta(t, want, SimpleScore(a, b), 1e-12)
}

func TestScoreTypeWeighting(t *testing.T) {
	a := minutia.New("a", 0, 0, 0, minutia.TypeIsland, 1.0)
	b := minutia.New("b", 20, 0, math.Pi, minutia.TypeIsland, 1.0)

	base := 0.4*math.Exp(-2) + 0.3*0 + 0.1*1
	assert.InDelta(t, base+0.2*1.2, Score(a, b, Options{UseTypeWeighting: true}), 1e-12)
	assert.InDelta(t, base+0.2*1.0, Score(a, b, Options{UseTypeWeighting: false}), 1e-12)
	assert.InDelta(t, base+0.2*1.0, SimpleScore(a, b), 1e-12)
}

func TestScoreUndefinedQuality(t *testing.T) {
	a := minutia.New("a", 0, 0, 0, minutia.TypeRidgeEnding, 0)
	b := minutia.New("b", 0, 0, 0, minutia.TypeRidgeEnding, 0.01)
	// mean 0.005 is treated as undefined and replaced by 1.0
	assert.InDelta(t, 1.0, SimpleScore(a, b), 1e-12)

	c := minutia.New("c", 0, 0, 0, minutia.TypeRidgeEnding, 0.02)
	assert.InDelta(t, 0.9+0.1*0.01, SimpleScore(a, c), 1e-12)
}

func TestScoreSymmetric(t *testing.T) {
	pts := []minutia.Minutia{
		minutia.New("a", 3, 4, 0.1, minutia.TypeRidgeEnding, 0.9),
		minutia.New("b", 40, -2, 5.9, minutia.TypeBifurcation, 0.3),
		minutia.New("c", 7, 7, 3.0, minutia.TypeCore, 0),
		minutia.New("d", 7, 9, 2.0, minutia.TypeCore, 0.5),
	}
	opts := Options{UseTypeWeighting: true}
	for _, a := range pts {
		for _, b := range pts {
			assert.Equal(t, Score(a, b, opts), Score(b, a, opts))
			assert.Equal(t, SimpleScore(a, b), SimpleScore(b, a))
			s := Score(a, b, opts)
			assert.True(t, s >= 0 && s <= 1, "score %v out of range", s)
		}
	}
}

func TestOptionsFunc(t *testing.T) {
	a := minutia.New("a", 0, 0, 0, minutia.TypeTripod, 1)
	b := minutia.New("b", 5, 0, 0.2, minutia.TypeTripod, 1)
	opts := Options{UseTypeWeighting: true}
	assert.Equal(t, Score(a, b, opts), opts.Func()(a, b))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1.0, 0, 1))
	assert.Equal(t, 1.0, Clamp(2.0, 0, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
	assert.Equal(t, float32(1), Clamp(float32(3), 0, 1))
}

func TestDefaultOptions(t *testing.T) {
	assert.True(t, DefaultOptions().UseTypeWeighting)
}
