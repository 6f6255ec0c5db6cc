package lr

import "math"

// Verbal scale of the empirical model. Band edges are at ±0.5, ±1, ±2, ±4
// and ±6 in log10 units; the inconclusive band [-0.5, 0.5] is closed and
// every other edge belongs to the band nearer zero.
const (
	EmpiricalExtremelySame  = "Extremely supportive of same origin"
	EmpiricalVerySame       = "Very strongly supportive of same origin"
	EmpiricalStronglySame   = "Strongly supportive of same origin"
	EmpiricalModeratelySame = "Moderately supportive of same origin"
	EmpiricalLightlySame    = "Lightly supportive of same origin"
	EmpiricalInconclusive   = "Inconclusive"
	EmpiricalLightlyDiff    = "Lightly supportive of different origin"
	EmpiricalModeratelyDiff = "Moderately supportive of different origin"
	EmpiricalStronglyDiff   = "Strongly supportive of different origin"
	EmpiricalVeryDiff       = "Very strongly supportive of different origin"
	EmpiricalExtremelyDiff  = "Extremely supportive of different origin"
)

// ENFSI scale of the multi-component model. Band edges are at 0, 1, 2, 4 and
// 6 in log10 units and belong to the upper band.
const (
	ENFSIDifferentSources = "Support for different sources (Hd)"
	ENFSILimited          = "Limited support for same source (Hp)"
	ENFSIModerate         = "Moderate support for same source (Hp)"
	ENFSIModeratelyStrong = "Moderately strong support for same source (Hp)"
	ENFSIStrong           = "Strong support for same source (Hp)"
	ENFSIVeryStrong       = "Very strong support for same source (Hp)"

	NoDataInterpretation = "Inconclusive: no comparable minutiae"
)

// EmpiricalInterpretation maps log10(LR) of the empirical model to words.
func EmpiricalInterpretation(log10LR float64) string {
	switch {
	case math.IsNaN(log10LR):
		return EmpiricalInconclusive
	case log10LR > 6:
		return EmpiricalExtremelySame
	case log10LR > 4:
		return EmpiricalVerySame
	case log10LR > 2:
		return EmpiricalStronglySame
	case log10LR > 1:
		return EmpiricalModeratelySame
	case log10LR > 0.5:
		return EmpiricalLightlySame
	case log10LR >= -0.5:
		return EmpiricalInconclusive
	case log10LR >= -1:
		return EmpiricalLightlyDiff
	case log10LR >= -2:
		return EmpiricalModeratelyDiff
	case log10LR >= -4:
		return EmpiricalStronglyDiff
	case log10LR >= -6:
		return EmpiricalVeryDiff
	default:
		return EmpiricalExtremelyDiff
	}
}

// ENFSIInterpretation maps log10(LR) of the multi-component model to words.
func ENFSIInterpretation(log10LR float64) string {
	switch {
	case math.IsNaN(log10LR):
		return NoDataInterpretation
	case log10LR >= 6:
		return ENFSIVeryStrong
	case log10LR >= 4:
		return ENFSIStrong
	case log10LR >= 2:
		return ENFSIModeratelyStrong
	case log10LR >= 1:
		return ENFSIModerate
	case log10LR >= 0:
		return ENFSILimited
	default:
		return ENFSIDifferentSources
	}
}
