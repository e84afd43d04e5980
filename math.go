package rfs

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	deg2rad = math.Pi / 180
	// speedEpsilon is the speed below which a direction is undefined.
	speedEpsilon = 1e-9
	// crossingEpsilon is the smallest accepted change of a monitored quantity over one step.
	crossingEpsilon = 1e-12
)

// unitVec returns the unit vector of a given vector, or the zero vector if its norm is zero.
func unitVec(a r3.Vec) r3.Vec {
	n := r3.Norm(a)
	if scalar.EqualWithinAbs(n, 0, 1e-12) {
		return r3.Vec{}
	}
	return r3.Scale(1/n, a)
}

// bodyAxis returns the unit vector pointing along a compass heading at an angle from the vertical.
func bodyAxis(heading, angleToVertical float64) r3.Vec {
	sh, ch := math.Sincos(heading)
	sa, ca := math.Sincos(angleToVertical)
	return r3.Vec{X: sa * sh, Y: sa * ch, Z: ca}
}

// lerp returns a + f*(b-a).
func lerp(a, b, f float64) float64 {
	return a + f*(b-a)
}

func lerpVec(a, b r3.Vec, f float64) r3.Vec {
	return r3.Add(a, r3.Scale(f, r3.Sub(b, a)))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finiteVec(v r3.Vec) bool {
	return finite(v.X, v.Y, v.Z)
}

// Deg2rad converts an angle in degrees to radians in [0, 2pi).
func Deg2rad(a float64) float64 {
	r := math.Mod(a*deg2rad, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	return r
}

// Rad2deg converts an angle in radians to degrees in [0, 360).
func Rad2deg(a float64) float64 {
	d := math.Mod(a/deg2rad, 360)
	if d < 0 {
		d += 360
	}
	return d
}
