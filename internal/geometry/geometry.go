// Package geometry holds the small planar helpers shared by the scoring,
// matching and likelihood-ratio code. All angles are in radians.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a 2D position in pixel units.
type Point = r2.Vec

// Pt is a shorthand constructor for Point.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Distance calculates Euclidean distance between two points
func Distance(p1, p2 Point) float64 {
	return r2.Norm(r2.Sub(p2, p1))
}

// NormalizeAngle maps an angle to [0, 2π).
func NormalizeAngle(rad float64) float64 {
	rad = math.Mod(rad, 2*math.Pi)
	if rad < 0 {
		rad += 2 * math.Pi
	}
	// math.Mod of a tiny negative value can round up to exactly 2π.
	if rad >= 2*math.Pi {
		rad = 0
	}
	return rad
}

// AngleDiff returns the circular difference between two angles in [0, π].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// Centroid calculates the center of mass of a set of points
func Centroid(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}
	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y
	}
	n := float64(len(points))
	return Point{X: floats.Sum(xs) / n, Y: floats.Sum(ys) / n}
}

// Bearing is the direction of the vector from -> to, in [0, 2π).
func Bearing(from, to Point) float64 {
	d := r2.Sub(to, from)
	return NormalizeAngle(math.Atan2(d.Y, d.X))
}
