package alignment

import (
	"math"

	"github.com/jtejido/afislr/internal/geometry"
	"github.com/jtejido/afislr/internal/minutia"
)

// Transform is a similarity transform: scale and rotate around the origin,
// then translate.
type Transform struct {
	Rotation float64 `json:"rotation" cbor:"rotation"` // radians
	Scale    float64 `json:"scale" cbor:"scale"`
	Tx       float64 `json:"tx" cbor:"tx"`
	Ty       float64 `json:"ty" cbor:"ty"`
}

// Identity returns an identity transform (no transformation)
func Identity() Transform {
	return Transform{Scale: 1}
}

// Apply maps p through t.
func (t Transform) Apply(p geometry.Point) geometry.Point {
	cos, sin := math.Cos(t.Rotation), math.Sin(t.Rotation)
	return geometry.Point{
		X: t.Scale*(cos*p.X-sin*p.Y) + t.Tx,
		Y: t.Scale*(sin*p.X+cos*p.Y) + t.Ty,
	}
}

// ApplyMinutia moves m and turns its direction by the rotation.
func (t Transform) ApplyMinutia(m minutia.Minutia) minutia.Minutia {
	m.Position = t.Apply(m.Position)
	m.Angle = geometry.NormalizeAngle(m.Angle + t.Rotation)
	return m
}

// ApplyAll returns a transformed copy of ms.
func (t Transform) ApplyAll(ms []minutia.Minutia) []minutia.Minutia {
	out := make([]minutia.Minutia, len(ms))
	for i, m := range ms {
		out[i] = t.ApplyMinutia(m)
	}
	return out
}

// fromTwoPairs builds the transform taking s0->d0 and s1->d1. Scale is
// forced to 1 unless withScale is set.
func fromTwoPairs(s0, s1, d0, d1 geometry.Point, withScale bool) (Transform, bool) {
	sv := geometry.Point{X: s1.X - s0.X, Y: s1.Y - s0.Y}
	dv := geometry.Point{X: d1.X - d0.X, Y: d1.Y - d0.Y}
	srcLen := math.Hypot(sv.X, sv.Y)
	dstLen := math.Hypot(dv.X, dv.Y)
	if srcLen < 1e-10 || dstLen < 1e-10 {
		return Identity(), false
	}

	t := Transform{
		Rotation: math.Atan2(dv.Y, dv.X) - math.Atan2(sv.Y, sv.X),
		Scale:    1,
	}
	if withScale {
		t.Scale = dstLen / srcLen
	}
	// anchor on the midpoint so both pairs share the residual
	srcMid := geometry.Point{X: (s0.X + s1.X) / 2, Y: (s0.Y + s1.Y) / 2}
	dstMid := geometry.Point{X: (d0.X + d1.X) / 2, Y: (d0.Y + d1.Y) / 2}
	moved := t.Apply(srcMid)
	t.Tx = dstMid.X - moved.X
	t.Ty = dstMid.Y - moved.Y
	return t, true
}
