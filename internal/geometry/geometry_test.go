package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const epsilon = 1e-12

func TestDistance(t *testing.T) {
	tests := []struct {
		name   string
		p1, p2 Point
		want   float64
	}{
		{"same point", Pt(3, 4), Pt(3, 4), 0},
		{"3-4-5", Pt(0, 0), Pt(3, 4), 5},
		{"negative coords", Pt(-1, -1), Pt(2, 3), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.p1, tt.p2), epsilon)
			assert.InDelta(t, tt.want, Distance(tt.p2, tt.p1), epsilon)
		})
	}
}

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi, math.Pi},
		{2 * math.Pi, 0},
		{-math.Pi / 2, 3 * math.Pi / 2},
		{5 * math.Pi, math.Pi},
		{-1e-18, 0},
	}
	for _, tt := range tests {
		got := NormalizeAngle(tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, "NormalizeAngle(%v)", tt.in)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 2*math.Pi)
	}
}

func TestAngleDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{"equal", 1, 1, 0},
		{"quarter", 0, math.Pi / 2, math.Pi / 2},
		{"wraps around zero", 0.1, 2*math.Pi - 0.1, 0.2},
		{"opposite", 0, math.Pi, math.Pi},
		{"unnormalized inputs", 4 * math.Pi, -0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AngleDiff(tt.a, tt.b), 1e-9)
			assert.InDelta(t, tt.want, AngleDiff(tt.b, tt.a), 1e-9)
		})
	}
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))
	c := Centroid([]Point{Pt(0, 0), Pt(4, 0), Pt(4, 4), Pt(0, 4)})
	assert.InDelta(t, 2.0, c.X, epsilon)
	assert.InDelta(t, 2.0, c.Y, epsilon)
}

func TestBearing(t *testing.T) {
	assert.InDelta(t, 0, Bearing(Pt(0, 0), Pt(1, 0)), epsilon)
	assert.InDelta(t, math.Pi/2, Bearing(Pt(0, 0), Pt(0, 1)), epsilon)
	assert.InDelta(t, 3*math.Pi/2, Bearing(Pt(0, 0), Pt(0, -1)), epsilon)
}
