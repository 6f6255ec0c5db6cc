package lr

import (
	"math"

	"github.com/jtejido/afislr/internal/correspondence"
	"github.com/jtejido/afislr/internal/geometry"
	"github.com/jtejido/afislr/internal/minutia"
	"github.com/jtejido/afislr/internal/priors"
	"github.com/jtejido/afislr/internal/similarity"
	"github.com/mcuadros/go-defaults"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// hdSpread is σ_hd / σ_hp for the shape model.
	hdSpread = 5.0

	kappaHp = 10.0
	kappaHd = 1.0

	minRarity = 1e-9
	maxRarity = 0.1
)

// Per-element clamps.
const (
	minShapeRatio     = 1e-6
	maxShapeRatio     = 1e6
	minDirectionRatio = 1e-3
	maxDirectionRatio = 1e3
	minTypeRatio      = 1e-2
	maxTypeRatio      = 1e2
)

// Config configures the multi-component model.
type Config struct {
	UseBrazilianPriors bool `toml:"use_brazilian_priors" yaml:"useBrazilianPriors" json:"useBrazilianPriors"`
	// RarityFactor multiplies the estimated rarity.
	RarityFactor float64 `toml:"rarity_factor" yaml:"rarityFactor" json:"rarityFactor" default:"1.0"`
	// DistortionStdDev is σ_hp of the shape model, in pixels.
	DistortionStdDev float64 `toml:"distortion_std_dev" yaml:"distortionStdDev" json:"distortionStdDev" default:"2.0"`
	// Rarity overrides the estimated p(v=1|Hd) when positive.
	Rarity float64 `toml:"rarity" yaml:"rarity" json:"rarity,omitempty"`
	// Pattern is the Henry class: arch, whorl, left_loop, right_loop or empty.
	Pattern string `toml:"pattern" yaml:"pattern" json:"pattern,omitempty"`
}

// DefaultConfig returns the model defaults.
func DefaultConfig() Config {
	var c Config
	defaults.SetDefaults(&c)
	return c
}

// components holds the log10 of each factor before combination.
type components struct {
	shape, direction, typ float64
	rarity                float64
	k                     int
}

// CalculateLR evaluates questioned against reference. Both sets are cut to
// their first k = min(|q|, |r|) minutiae in the given order. A nil or empty
// fragment yields Neutral().
func CalculateLR(questioned, reference *minutia.Fragment, cfg Config) Result {
	if questioned.Empty() || reference.Empty() {
		return Neutral()
	}
	c := evaluate(questioned, reference, cfg)
	return c.combine(true, true, true)
}

func evaluate(questioned, reference *minutia.Fragment, cfg Config) components {
	k := min(len(questioned.Minutiae), len(reference.Minutiae))
	q := questioned.Minutiae[:k]
	r := reference.Minutiae[:k]

	pattern := cfg.Pattern
	if pattern == "" {
		pattern = reference.Pattern
	}
	if pattern == "" {
		pattern = questioned.Pattern
	}

	return components{
		shape:     shapeLog10(q, r, cfg.DistortionStdDev),
		direction: directionLog10(q, r),
		typ:       typeLog10(q, r, priors.Select(cfg.UseBrazilianPriors)),
		rarity:    Rarity(k, pattern, cfg),
		k:         k,
	}
}

func (c components) combine(shape, direction, typ bool) Result {
	res := Result{LRShape: 1, LRDirection: 1, LRType: 1, PVHd: c.rarity, K: c.k}
	total := -math.Log10(c.rarity)
	if shape {
		res.LRShape = fromLog10(c.shape)
		total += c.shape
	}
	if direction {
		res.LRDirection = fromLog10(c.direction)
		total += c.direction
	}
	if typ {
		res.LRType = fromLog10(c.typ)
		total += c.typ
	}
	res.Log10LRTotal = similarity.Clamp(total, math.Log10(MinLR), math.Log10(MaxLR))
	res.LRTotal = math.Pow(10, res.Log10LRTotal)
	res.Interpretation = ENFSIInterpretation(res.Log10LRTotal)
	return res
}

// ShapeLR compares the form factors of the aspect-ordered triangles under a
// narrow same-source Gaussian against a five times wider different-source
// one.
func ShapeLR(questioned, reference []minutia.Minutia, sigma float64) float64 {
	return fromLog10(shapeLog10(questioned, reference, sigma))
}

func shapeLog10(q, r []minutia.Minutia, sigma float64) float64 {
	if sigma <= 0 {
		sigma = DefaultConfig().DistortionStdDev
	}
	qs, rs := ExtractShape(q), ExtractShape(r)
	n := min(len(qs.Triangles), len(rs.Triangles))

	sum := 0.0
	for t := 0; t < n; t++ {
		ref := rs.Triangles[t].FormFactor
		obs := qs.Triangles[t].FormFactor
		hp := distuv.Normal{Mu: ref, Sigma: sigma}.Prob(obs)
		hd := distuv.Normal{Mu: ref, Sigma: hdSpread * sigma}.Prob(obs)
		ratio := minShapeRatio
		if hd > 0 {
			ratio = hp / hd
		}
		sum += clampedLog10(ratio, minShapeRatio, maxShapeRatio)
	}
	return sum
}

// DirectionLR compares relative minutia directions with a concentrated
// (κ=10) against a diffuse (κ=1) von Mises density.
func DirectionLR(questioned, reference []minutia.Minutia) float64 {
	return fromLog10(directionLog10(questioned, reference))
}

func directionLog10(q, r []minutia.Minutia) float64 {
	qd, rd := Directions(q), Directions(r)
	n := min(len(qd), len(rd))

	sum := 0.0
	for i := 0; i < n; i++ {
		diff := geometry.AngleDiff(qd[i], rd[i])
		ratio := VonMises(diff, 0, kappaHp) / VonMises(diff, 0, kappaHd)
		sum += clampedLog10(ratio, minDirectionRatio, maxDirectionRatio)
	}
	return sum
}

// TypeLR weighs the examiner's chance of observing the questioned coarse
// type given the reference one against the population frequency of the
// questioned type.
func TypeLR(questioned, reference []minutia.Minutia, pop *priors.Population) float64 {
	return fromLog10(typeLog10(questioned, reference, pop))
}

func typeLog10(q, r []minutia.Minutia, pop *priors.Population) float64 {
	qt, rt := Types(q), Types(r)
	n := min(len(qt), len(rt))

	sum := 0.0
	for i := 0; i < n; i++ {
		num := pop.ConfusionProb(rt[i].Index, qt[i].Index)
		den := pop.Frequency(qt[i].Type)
		sum += clampedLog10(num/den, minTypeRatio, maxTypeRatio)
	}
	return sum
}

// Rarity is p(v=1|Hd). A positive cfg.Rarity is used as given (capped at
// 1); otherwise it is estimated as 10^(-k/5) times the pattern and global
// rarity factors, clamped to [1e-9, 0.1].
func Rarity(k int, pattern string, cfg Config) float64 {
	if cfg.Rarity > 0 {
		return math.Min(cfg.Rarity, 1)
	}
	factor := cfg.RarityFactor
	if factor <= 0 {
		factor = 1
	}
	est := math.Pow(10, -float64(k)/5) * priors.PatternFactor(pattern) * factor
	return similarity.Clamp(est, minRarity, maxRarity)
}

// FromCorrespondences runs CalculateLR on the corresponded minutiae only,
// in pair order. No pairs yields Neutral().
func FromCorrespondences(set1, set2 []minutia.Minutia, pairs []correspondence.Pair, cfg Config) Result {
	if len(pairs) == 0 {
		return Neutral()
	}
	q, r := Corresponded(set1, set2, pairs)
	return CalculateLR(q, r, cfg)
}

// Corresponded builds two aligned fragments holding set1[p.I] and set2[p.J]
// for each pair, in pair order.
func Corresponded(set1, set2 []minutia.Minutia, pairs []correspondence.Pair) (questioned, reference *minutia.Fragment) {
	questioned = &minutia.Fragment{Minutiae: make([]minutia.Minutia, len(pairs))}
	reference = &minutia.Fragment{Minutiae: make([]minutia.Minutia, len(pairs))}
	for k, p := range pairs {
		questioned.Minutiae[k] = set1[p.I]
		reference.Minutiae[k] = set2[p.J]
	}
	return questioned, reference
}
