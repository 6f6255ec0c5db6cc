package lr

import "github.com/jtejido/afislr/internal/minutia"

// Sensitivity labels.
const (
	ShapeOnly      = "shape_only"
	ShapeDirection = "shape_direction"
	ShapeType      = "shape_type"
	Complete       = "complete"
)

// Sensitivity evaluates the model once and reports four combinations of its
// components. Every combination keeps the rarity term.
func Sensitivity(questioned, reference *minutia.Fragment, cfg Config) map[string]Result {
	if questioned.Empty() || reference.Empty() {
		return map[string]Result{
			ShapeOnly:      Neutral(),
			ShapeDirection: Neutral(),
			ShapeType:      Neutral(),
			Complete:       Neutral(),
		}
	}
	c := evaluate(questioned, reference, cfg)
	return map[string]Result{
		ShapeOnly:      c.combine(true, false, false),
		ShapeDirection: c.combine(true, true, false),
		ShapeType:      c.combine(true, false, true),
		Complete:       c.combine(true, true, true),
	}
}
