package priors

import (
	"testing"

	"github.com/jtejido/afislr/internal/minutia"
	"github.com/stretchr/testify/assert"
)

func TestFrequenciesSumToOne(t *testing.T) {
	for _, p := range []*Population{Standard(), Brazilian()} {
		t.Run(p.Name, func(t *testing.T) {
			assert.InDelta(t, 1.0, p.Total(), 0.01)
			for _, name := range p.TypeNames() {
				_, err := minutia.ParseType(name)
				assert.NoError(t, err, "table key %q is not a minutia type", name)
			}
		})
	}
}

func TestConfusionRowsAreDistributions(t *testing.T) {
	for _, p := range []*Population{Standard(), Brazilian()} {
		for ref := 0; ref < 3; ref++ {
			sum := 0.0
			for obs := 0; obs < 3; obs++ {
				sum += p.ConfusionProb(ref, obs)
			}
			assert.InDelta(t, 1.0, sum, 1e-12)
		}
	}
}

func TestConfusionOutOfRange(t *testing.T) {
	p := Standard()
	assert.Equal(t, DefaultConfusion, p.ConfusionProb(-1, 0))
	assert.Equal(t, DefaultConfusion, p.ConfusionProb(0, 3))
	assert.Equal(t, 0.80, p.ConfusionProb(minutia.CoarseEnding, minutia.CoarseEnding))
}

func TestFrequency(t *testing.T) {
	p := Standard()
	assert.Equal(t, 0.52, p.Frequency(minutia.TypeRidgeEnding))
	assert.Equal(t, DefaultFrequency, p.Frequency(minutia.TypeWart))
	assert.Equal(t, DefaultFrequency, p.Frequency(minutia.TypeUnknown))
	assert.NotEqual(t, Standard().Frequency(minutia.TypeBifurcation), Brazilian().Frequency(minutia.TypeBifurcation))
}

func TestSelect(t *testing.T) {
	assert.Same(t, Brazilian(), Select(true))
	assert.Same(t, Standard(), Select(false))
}

func TestPatternFactor(t *testing.T) {
	tests := map[string]float64{
		"arch":       0.5,
		"whorl":      1.5,
		"left_loop":  1.2,
		"right_loop": 1.2,
		" Whorl ":    1.5,
		"":           1.0,
		"tented":     1.0,
	}
	for pattern, want := range tests {
		assert.Equal(t, want, PatternFactor(pattern), "pattern %q", pattern)
	}
}

func TestAverageFor(t *testing.T) {
	assert.Equal(t, 51.0, Standard().AverageFor("WHORL"))
	assert.Equal(t, 0.0, Standard().AverageFor("unknown"))
}
