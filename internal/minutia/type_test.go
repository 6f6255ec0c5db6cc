package minutia

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeNamesRoundTrip(t *testing.T) {
	all := Types()
	require.Len(t, all, int(typeCount))
	seen := map[string]bool{}
	for _, typ := range all {
		name := typ.String()
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true

		parsed, err := ParseType(name)
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
}

func TestParseTypeLenient(t *testing.T) {
	typ, err := ParseType("  Ridge-Ending ")
	require.NoError(t, err)
	assert.Equal(t, TypeRidgeEnding, typ)

	_, err = ParseType("minotaur")
	assert.Error(t, err)
}

func TestCoarseIndex(t *testing.T) {
	tests := []struct {
		typ   Type
		index int
		label string
	}{
		{TypeRidgeEnding, CoarseEnding, "ridge_ending"},
		{TypeInterruption, CoarseEnding, "ridge_ending"},
		{TypeBifurcation, CoarseBifurcation, "bifurcation"},
		{TypeConvergence, CoarseBifurcation, "bifurcation"},
		{TypeTrifurcation, CoarseBifurcation, "bifurcation"},
		{TypeDot, CoarseUnknown, "unknown"},
		{TypeDelta, CoarseUnknown, "unknown"},
		{TypeUnknown, CoarseUnknown, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.index, tt.typ.CoarseIndex())
			assert.Equal(t, tt.label, tt.typ.CoarseLabel())
		})
	}
}

func TestRarityWeight(t *testing.T) {
	assert.Equal(t, 1.0, TypeRidgeEnding.RarityWeight())
	assert.Equal(t, 1.0, TypeBifurcation.RarityWeight())
	for _, rare := range []Type{TypeTripod, TypeTrifurcation, TypeTrifurcationLeft, TypeTrifurcationRight, TypeCore, TypeDelta} {
		assert.Equal(t, 1.5, rare.RarityWeight(), rare.String())
	}
	assert.Equal(t, 1.2, TypeIsland.RarityWeight())
	assert.Equal(t, 1.2, TypeUnknown.RarityWeight())
}

func TestMinutiaJSON(t *testing.T) {
	m := New("m1", 10, 20, 1.5, TypeLake, 0.8)
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"lake"`)

	var back Minutia
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, m, back)

	assert.Error(t, json.Unmarshal([]byte(`{"type":"minotaur"}`), &back))
}

func TestFragmentEmpty(t *testing.T) {
	var nilFrag *Fragment
	assert.True(t, nilFrag.Empty())
	assert.True(t, (&Fragment{ID: "a"}).Empty())
	assert.False(t, (&Fragment{Minutiae: []Minutia{New("", 0, 0, 0, TypeDot, 1)}}).Empty())
}
