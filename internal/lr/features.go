package lr

import (
	"math"

	"github.com/jtejido/afislr/internal/geometry"
	"github.com/jtejido/afislr/internal/minutia"
	"golang.org/x/exp/slices"
)

// degenerate guards perimeters and incircle radii against division by zero.
const degenerate = 1e-6

// Triangle is formed by two consecutive ordered minutiae and the centroid.
type Triangle struct {
	// From and To index the minutiae in the original slice.
	From        int     `json:"from" cbor:"from"`
	To          int     `json:"to" cbor:"to"`
	FormFactor  float64 `json:"formFactor" cbor:"formFactor"`
	AspectRatio float64 `json:"aspectRatio" cbor:"aspectRatio"`
}

// ShapeFeatures describes the polygon a minutiae set draws around its
// centroid.
type ShapeFeatures struct {
	Centroid geometry.Point `json:"centroid" cbor:"centroid"`
	// Order lists minutiae indices counter-clockwise from the +x axis.
	Order []int `json:"order" cbor:"order"`
	// Triangles sorted ascending by aspect ratio.
	Triangles []Triangle `json:"triangles" cbor:"triangles"`
}

// ExtractShape computes ShapeFeatures. Minutiae sharing a bearing keep their
// input order.
func ExtractShape(ms []minutia.Minutia) ShapeFeatures {
	c := geometry.Centroid(minutia.Positions(ms))
	order := make([]int, len(ms))
	bearing := make([]float64, len(ms))
	for i, m := range ms {
		order[i] = i
		bearing[i] = geometry.Bearing(c, m.Position)
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case bearing[a] < bearing[b]:
			return -1
		case bearing[a] > bearing[b]:
			return 1
		}
		return 0
	})

	tris := make([]Triangle, len(order))
	for k := range order {
		from, to := order[k], order[(k+1)%len(order)]
		ff, ar := triangleShape(ms[from].Position, ms[to].Position, c)
		tris[k] = Triangle{From: from, To: to, FormFactor: ff, AspectRatio: ar}
	}
	slices.SortStableFunc(tris, func(a, b Triangle) int {
		switch {
		case a.AspectRatio < b.AspectRatio:
			return -1
		case a.AspectRatio > b.AspectRatio:
			return 1
		}
		return 0
	})

	return ShapeFeatures{Centroid: c, Order: order, Triangles: tris}
}

// triangleShape returns area/perimeter and the circumscribed to inscribed
// diameter ratio. Degenerate triangles yield 0 for either value.
func triangleShape(p, q, r geometry.Point) (formFactor, aspectRatio float64) {
	a := geometry.Distance(p, q)
	b := geometry.Distance(q, r)
	c := geometry.Distance(r, p)
	perimeter := a + b + c
	if perimeter < degenerate {
		return 0, 0
	}
	area := math.Abs((q.X-p.X)*(r.Y-p.Y)-(r.X-p.X)*(q.Y-p.Y)) / 2
	formFactor = area / perimeter

	inradius := area / (perimeter / 2)
	if inradius < degenerate {
		return formFactor, 0
	}
	circumradius := a * b * c / (4 * area)
	return formFactor, circumradius / inradius
}

// Directions returns each minutia's angle measured from the
// centroid-to-minutia axis, in [0, 2π).
func Directions(ms []minutia.Minutia) []float64 {
	c := geometry.Centroid(minutia.Positions(ms))
	out := make([]float64, len(ms))
	for i, m := range ms {
		out[i] = geometry.NormalizeAngle(m.Angle - geometry.Bearing(c, m.Position))
	}
	return out
}

// TypeFeature is the coarse view of a minutia type.
type TypeFeature struct {
	Type  minutia.Type `json:"type" cbor:"type"`
	Label string       `json:"label" cbor:"label"`
	Index int          `json:"index" cbor:"index"`
}

// Types returns the coarse type features of ms.
func Types(ms []minutia.Minutia) []TypeFeature {
	out := make([]TypeFeature, len(ms))
	for i, m := range ms {
		out[i] = TypeFeature{Type: m.Type, Label: m.Type.CoarseLabel(), Index: m.Type.CoarseIndex()}
	}
	return out
}
