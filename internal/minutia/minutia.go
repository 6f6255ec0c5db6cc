// Package minutia defines the feature points compared by the matcher and the
// likelihood-ratio engine. Values are immutable inputs; ids are assigned by
// the caller and never generated here.
package minutia

import "github.com/jtejido/afislr/internal/geometry"

// Minutia is a single ridge feature.
type Minutia struct {
	ID       string         `json:"id,omitempty" cbor:"id,omitempty"`
	Position geometry.Point `json:"position" cbor:"position"`
	// Angle in radians, periodic mod 2π.
	Angle float64 `json:"angle" cbor:"angle"`
	Type  Type    `json:"type" cbor:"type"`
	// Quality in [0, 1]; 0 means undefined.
	Quality float64 `json:"quality" cbor:"quality"`
}

// New builds a minutia at (x, y).
func New(id string, x, y, angle float64, typ Type, quality float64) Minutia {
	return Minutia{
		ID:       id,
		Position: geometry.Pt(x, y),
		Angle:    angle,
		Type:     typ,
		Quality:  quality,
	}
}

// Positions extracts the positions of ms in order.
func Positions(ms []Minutia) []geometry.Point {
	out := make([]geometry.Point, len(ms))
	for i, m := range ms {
		out[i] = m.Position
	}
	return out
}

// Fragment is a named collection of minutiae, typically one latent or one
// reference print, optionally tagged with its Henry pattern class.
type Fragment struct {
	ID       string    `json:"id" cbor:"id"`
	Pattern  string    `json:"pattern,omitempty" cbor:"pattern,omitempty"`
	Minutiae []Minutia `json:"minutiae" cbor:"minutiae"`
}

// Empty reports whether f is nil or carries no minutiae.
func (f *Fragment) Empty() bool {
	return f == nil || len(f.Minutiae) == 0
}
