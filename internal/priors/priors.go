// Package priors holds the population statistics consumed by the
// likelihood-ratio engine: minutia type frequencies, the examiner type
// confusion matrix and average minutiae counts per pattern class.
//
// These frequencies are independent of the rarity weights used by the
// local similarity scorer and the two are not meant to agree.
package priors

import (
	"strings"

	"github.com/jtejido/afislr/internal/minutia"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Henry pattern classes recognized by PatternFactor.
const (
	PatternArch      = "arch"
	PatternLeftLoop  = "left_loop"
	PatternRightLoop = "right_loop"
	PatternWhorl     = "whorl"
)

const (
	// DefaultFrequency is used for types absent from the table.
	DefaultFrequency = 0.01
	// DefaultConfusion is used for out-of-range coarse indices.
	DefaultConfusion = 0.75
)

// Population is one complete set of priors.
type Population struct {
	Name string `json:"name" cbor:"name"`
	// Frequencies maps type names to population frequency.
	Frequencies map[string]float64 `json:"frequencies" cbor:"frequencies"`
	// Confusion[true][observed] = P(observed coarse type | true coarse type).
	Confusion [3][3]float64 `json:"confusion" cbor:"confusion"`
	// AverageMinutiae per Henry pattern class.
	AverageMinutiae map[string]float64 `json:"averageMinutiae" cbor:"averageMinutiae"`
}

var confusion = [3][3]float64{
	{0.80, 0.12, 0.08},
	{0.12, 0.80, 0.08},
	{0.30, 0.30, 0.40},
}

var standard = Population{
	Name: "standard",
	Frequencies: map[string]float64{
		"ridge_ending":        0.520,
		"bifurcation":         0.300,
		"convergence":         0.050,
		"interruption":        0.020,
		"fragment":            0.025,
		"dot":                 0.020,
		"short_ridge":         0.015,
		"island":              0.012,
		"lake":                0.010,
		"spur":                0.006,
		"bridge":              0.004,
		"crossover":           0.003,
		"double_bifurcation":  0.003,
		"opposed_bifurcation": 0.002,
		"hook":                0.002,
		"return":              0.002,
		"delta":               0.001,
		"core":                0.001,
		"trifurcation":        0.001,
		"tripod":              0.001,
	},
	Confusion: confusion,
	AverageMinutiae: map[string]float64{
		PatternArch:      34.0,
		PatternLeftLoop:  45.0,
		PatternRightLoop: 44.0,
		PatternWhorl:     51.0,
	},
}

var brazilian = Population{
	Name: "brazilian",
	Frequencies: map[string]float64{
		"ridge_ending":        0.486,
		"bifurcation":         0.318,
		"convergence":         0.061,
		"interruption":        0.024,
		"fragment":            0.028,
		"dot":                 0.022,
		"short_ridge":         0.017,
		"island":              0.011,
		"lake":                0.009,
		"spur":                0.007,
		"bridge":              0.005,
		"crossover":           0.002,
		"double_bifurcation":  0.003,
		"opposed_bifurcation": 0.002,
		"hook":                0.001,
		"return":              0.001,
		"delta":               0.001,
		"core":                0.001,
		"trifurcation":        0.0005,
		"tripod":              0.0005,
	},
	Confusion: confusion,
	AverageMinutiae: map[string]float64{
		PatternArch:      36.0,
		PatternLeftLoop:  47.0,
		PatternRightLoop: 46.0,
		PatternWhorl:     53.0,
	},
}

// Standard returns the default population priors.
func Standard() *Population { return &standard }

// Brazilian returns priors estimated on a Brazilian population sample.
func Brazilian() *Population { return &brazilian }

// Select picks Brazilian or Standard.
func Select(useBrazilian bool) *Population {
	if useBrazilian {
		return Brazilian()
	}
	return Standard()
}

// Frequency returns the population frequency of t, DefaultFrequency when
// the type is not tabulated.
func (p *Population) Frequency(t minutia.Type) float64 {
	if f, ok := p.Frequencies[t.String()]; ok && f > 0 {
		return f
	}
	return DefaultFrequency
}

// ConfusionProb returns P(observed | reference) on the coarse axis.
func (p *Population) ConfusionProb(reference, observed int) float64 {
	if reference < 0 || reference > 2 || observed < 0 || observed > 2 {
		return DefaultConfusion
	}
	return p.Confusion[reference][observed]
}

// AverageFor returns the average minutiae count for a pattern, 0 if unknown.
func (p *Population) AverageFor(pattern string) float64 {
	return p.AverageMinutiae[NormalizePattern(pattern)]
}

// TypeNames lists the tabulated types in sorted order.
func (p *Population) TypeNames() []string {
	names := maps.Keys(p.Frequencies)
	slices.Sort(names)
	return names
}

// Total sums all tabulated frequencies.
func (p *Population) Total() float64 {
	sum := 0.0
	for _, name := range p.TypeNames() {
		sum += p.Frequencies[name]
	}
	return sum
}

// NormalizePattern lower-cases and trims a pattern name.
func NormalizePattern(pattern string) string {
	return strings.ToLower(strings.TrimSpace(pattern))
}

// PatternFactor scales the estimated rarity of a configuration by its
// pattern class.
func PatternFactor(pattern string) float64 {
	switch NormalizePattern(pattern) {
	case PatternArch:
		return 0.5
	case PatternWhorl:
		return 1.5
	case PatternLeftLoop, PatternRightLoop:
		return 1.2
	default:
		return 1.0
	}
}
