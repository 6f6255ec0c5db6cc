package lr

import "math"

// BesselI0 approximates the modified Bessel function of the first kind of
// order zero (Abramowitz & Stegun 9.8.1 and 9.8.2).
func BesselI0(x float64) float64 {
	ax := math.Abs(x)
	if ax < 3.75 {
		y := x / 3.75
		y *= y
		return 1.0 + y*(3.5156229+y*(3.0899424+y*(1.2067492+
			y*(0.2659732+y*(0.360768e-1+y*0.45813e-2)))))
	}
	y := 3.75 / ax
	return (math.Exp(ax) / math.Sqrt(ax)) * (0.39894228 + y*(0.1328592e-1+
		y*(0.225319e-2+y*(-0.157565e-2+y*(0.916281e-2+
			y*(-0.2057706e-1+y*(0.2635537e-1+y*(-0.1647633e-1+
				y*0.392377e-2))))))))
}

// VonMises is the von Mises density with mean mu and concentration kappa.
func VonMises(x, mu, kappa float64) float64 {
	return math.Exp(kappa*math.Cos(x-mu)) / (2 * math.Pi * BesselI0(kappa))
}
