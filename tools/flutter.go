package tools

import (
	"errors"
	"fmt"
	"math"

	rfs "github.com/werocketry/RocketFlightSim"
)

// FinGeometry describes a trapezoidal fin. Lengths are in meters.
type FinGeometry struct {
	RootChord float64
	TipChord  float64
	SemiSpan  float64
	Sweep     float64 // sweep length of the leading edge, m
	Thickness float64
}

// Area returns the planform area of one fin.
func (f FinGeometry) Area() float64 {
	return (f.RootChord + f.TipChord) * f.SemiSpan / 2
}

// AspectRatio returns the aspect ratio of one fin.
func (f FinGeometry) AspectRatio() float64 {
	return f.SemiSpan * f.SemiSpan / f.Area()
}

func (f FinGeometry) validate() error {
	if f.RootChord <= 0 || f.TipChord < 0 || f.SemiSpan <= 0 || f.Thickness <= 0 {
		return fmt.Errorf("invalid fin geometry %+v", f)
	}
	return nil
}

// FlutterVelocity returns the airspeed at which the fin starts to flutter,
// from NACA TN 4197 as reworked by Apogee Components (Peak of Flight 615).
// The shear modulus and pressure are in Pa, the temperature in K.
func FlutterVelocity(fin FinGeometry, shearModulus, pressure, temperature float64) (float64, error) {
	if err := fin.validate(); err != nil {
		return 0, err
	}
	if shearModulus <= 0 || pressure <= 0 || temperature <= 0 {
		return 0, errors.New("shear modulus, pressure and temperature must be positive")
	}
	cr, ct := fin.RootChord, fin.TipChord
	λ := ct / cr
	ar := fin.AspectRatio()
	// Chordwise location of the centroid, as a fraction of the root chord aft of its quarter.
	cx := (2*ct*fin.Sweep + ct*ct + fin.Sweep*cr + cr*ct + cr*cr) / (3 * (ct + cr))
	ε := cx/cr - 0.25
	den := 24 * ε / math.Pi * (λ + 1) / 2 * math.Pow(ar, 3) / (math.Pow(fin.Thickness/cr, 3) * (ar + 2))
	a := math.Sqrt(rfs.HeatCapacityRatioAir * temperature * rfs.UniversalGasConstant / rfs.MolarMassAir)
	return a * math.Sqrt(shearModulus/den/(pressure*rfs.HeatCapacityRatioAir)), nil
}

// FlutterMargin returns the ratio of the flutter velocity at the given
// altitude over the airspeed: below 1 the fin flutters.
func FlutterMargin(fin FinGeometry, shearModulus float64, env *rfs.Environment, height, airspeed float64) (float64, error) {
	p, err := env.Pressure(height)
	if err != nil {
		return 0, err
	}
	temp, err := env.Temperature(height)
	if err != nil {
		return 0, err
	}
	vf, err := FlutterVelocity(fin, shearModulus, p, temp)
	if err != nil {
		return 0, err
	}
	if airspeed <= 0 {
		return math.Inf(1), nil
	}
	return vf / airspeed, nil
}
