package minutia

import (
	"fmt"
	"strings"
)

// Type is the fine-grained minutia classification assigned by the examiner
// or the extractor.
type Type int

const (
	TypeUnknown Type = iota
	TypeRidgeEnding
	TypeInterruption
	TypeReturn
	TypeBifurcation
	TypeDoubleBifurcation
	TypeOpposedBifurcation
	TypeTripod
	TypeTrifurcation
	TypeTrifurcationLeft
	TypeTrifurcationRight
	TypeConvergence
	TypeDoubleConvergence
	TypeFragment
	TypeDot
	TypeShortRidge
	TypeIsland
	TypeLake
	TypeBridge
	TypeCrossover
	TypeSpur
	TypeHook
	TypeDelta
	TypeCore
	TypeMStructure
	TypeAssembly
	TypeOverlap
	TypeScar
	TypeCrease
	TypeWart
	typeCount
)

// Category groups fine-grained types.
type Category int

const (
	CategoryOther Category = iota
	CategoryEnding
	CategoryBifurcation
	CategoryConvergence
	CategoryFragment
)

// Coarse indices into the examiner confusion matrix.
const (
	CoarseEnding      = 0
	CoarseBifurcation = 1
	CoarseUnknown     = 2
)

var typeNames = [typeCount]string{
	TypeUnknown:            "unknown",
	TypeRidgeEnding:        "ridge_ending",
	TypeInterruption:       "interruption",
	TypeReturn:             "return",
	TypeBifurcation:        "bifurcation",
	TypeDoubleBifurcation:  "double_bifurcation",
	TypeOpposedBifurcation: "opposed_bifurcation",
	TypeTripod:             "tripod",
	TypeTrifurcation:       "trifurcation",
	TypeTrifurcationLeft:   "trifurcation_left",
	TypeTrifurcationRight:  "trifurcation_right",
	TypeConvergence:        "convergence",
	TypeDoubleConvergence:  "double_convergence",
	TypeFragment:           "fragment",
	TypeDot:                "dot",
	TypeShortRidge:         "short_ridge",
	TypeIsland:             "island",
	TypeLake:               "lake",
	TypeBridge:             "bridge",
	TypeCrossover:          "crossover",
	TypeSpur:               "spur",
	TypeHook:               "hook",
	TypeDelta:              "delta",
	TypeCore:               "core",
	TypeMStructure:         "m_structure",
	TypeAssembly:           "assembly",
	TypeOverlap:            "overlap",
	TypeScar:               "scar",
	TypeCrease:             "crease",
	TypeWart:               "wart",
}

// Types lists every known type in declaration order.
func Types() []Type {
	out := make([]Type, 0, typeCount)
	for t := TypeUnknown; t < typeCount; t++ {
		out = append(out, t)
	}
	return out
}

func (t Type) valid() bool { return t >= 0 && t < typeCount }

// String returns the snake_case name used in priors tables and on the wire.
func (t Type) String() string {
	if !t.valid() {
		return fmt.Sprintf("type(%d)", int(t))
	}
	return typeNames[t]
}

// ParseType is the inverse of String. Matching is case-insensitive and
// accepts dashes or spaces in place of underscores.
func ParseType(s string) (Type, error) {
	key := strings.NewReplacer("-", "_", " ", "_").Replace(strings.ToLower(strings.TrimSpace(s)))
	for t := TypeUnknown; t < typeCount; t++ {
		if typeNames[t] == key {
			return t, nil
		}
	}
	return TypeUnknown, fmt.Errorf("unknown minutia type %q", s)
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.valid() {
		return nil, fmt.Errorf("invalid minutia type %d", int(t))
	}
	return []byte(typeNames[t]), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Category reports the family the type belongs to.
func (t Type) Category() Category {
	switch t {
	case TypeRidgeEnding, TypeInterruption, TypeReturn:
		return CategoryEnding
	case TypeBifurcation, TypeDoubleBifurcation, TypeOpposedBifurcation,
		TypeTripod, TypeTrifurcation, TypeTrifurcationLeft, TypeTrifurcationRight:
		return CategoryBifurcation
	case TypeConvergence, TypeDoubleConvergence:
		return CategoryConvergence
	case TypeFragment, TypeDot, TypeShortRidge, TypeIsland:
		return CategoryFragment
	default:
		return CategoryOther
	}
}

// CoarseIndex maps the type onto the 3-way ending / bifurcation / unknown
// axis of the confusion matrix. Convergences count as bifurcations.
func (t Type) CoarseIndex() int {
	switch t.Category() {
	case CategoryEnding:
		return CoarseEnding
	case CategoryBifurcation, CategoryConvergence:
		return CoarseBifurcation
	default:
		return CoarseUnknown
	}
}

// CoarseLabel is the name of CoarseIndex.
func (t Type) CoarseLabel() string {
	switch t.CoarseIndex() {
	case CoarseEnding:
		return "ridge_ending"
	case CoarseBifurcation:
		return "bifurcation"
	default:
		return "unknown"
	}
}

// RarityWeight scales the type agreement term of the local similarity
// score. Plain endings and bifurcations are common, singular points and
// three-way splits are rare.
func (t Type) RarityWeight() float64 {
	switch t {
	case TypeRidgeEnding, TypeBifurcation:
		return 1.0
	case TypeTripod, TypeTrifurcation, TypeTrifurcationLeft, TypeTrifurcationRight,
		TypeCore, TypeDelta:
		return 1.5
	default:
		return 1.2
	}
}
