package rfs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Motor is a solid motor described by its thrust and propellant mass curves.
type Motor struct {
	name       string
	dryMass    float64
	thrust     *Curve
	propellant *Curve
	impulse    float64
}

// NewMotor returns a Motor from a thrust curve (N) and a propellant mass curve (kg).
// Both curves may be keyed independently but the propellant curve must cover the burn.
func NewMotor(name string, thrustT, thrust, massT, mass []float64, dryMass float64) (*Motor, error) {
	tc, err := NewCurve(name+" thrust", thrustT, thrust)
	if err != nil {
		return nil, err
	}
	mc, err := NewCurve(name+" propellant", massT, mass)
	if err != nil {
		return nil, err
	}
	if dryMass < 0 {
		return nil, invalidf("%s: negative dry mass %f", name, dryMass)
	}
	for i, v := range thrust {
		if v < 0 {
			return nil, invalidf("%s: negative thrust at t=%f", name, thrustT[i])
		}
	}
	for i, v := range mass {
		if v < 0 {
			return nil, invalidf("%s: negative propellant mass at t=%f", name, massT[i])
		}
		if i > 0 && v > mass[i-1] {
			return nil, invalidf("%s: propellant mass increases at t=%f", name, massT[i])
		}
	}
	if mc.First() > tc.First() || mc.Last() < tc.Last() {
		return nil, invalidf("%s: propellant curve [%f, %f] does not cover the burn [%f, %f]", name, mc.First(), mc.Last(), tc.First(), tc.Last())
	}
	return &Motor{
		name:       name,
		dryMass:    dryMass,
		thrust:     tc,
		propellant: mc,
		impulse:    integrate.Trapezoidal(tc.ts, tc.vs),
	}, nil
}

// NewMotorFromImpulse returns a Motor whose propellant curve is derived from
// the thrust curve, assuming propellant is consumed in proportion to impulse.
func NewMotorFromImpulse(name string, thrustT, thrust []float64, propellantMass, dryMass float64) (*Motor, error) {
	if len(thrustT) != len(thrust) || len(thrustT) < 2 {
		return nil, invalidf("%s: thrust curve needs matching times and at least two samples", name)
	}
	if propellantMass <= 0 {
		return nil, invalidf("%s: propellant mass must be positive, got %f", name, propellantMass)
	}
	impulse := integrate.Trapezoidal(thrustT, thrust)
	if impulse <= 0 {
		return nil, invalidf("%s: thrust curve has no impulse", name)
	}
	mass := make([]float64, len(thrust))
	mass[0] = propellantMass
	for i := 1; i < len(thrust); i++ {
		used := (thrust[i] + thrust[i-1]) / 2 * (thrustT[i] - thrustT[i-1]) / impulse * propellantMass
		mass[i] = math.Max(mass[i-1]-used, 0)
	}
	mass[len(mass)-1] = 0
	return NewMotor(name, thrustT, thrust, thrustT, mass, dryMass)
}

// Name returns the motor designation.
func (m *Motor) Name() string { return m.name }

// DryMass returns the mass of the motor without propellant.
func (m *Motor) DryMass() float64 { return m.dryMass }

// BurnTime returns the time of the last thrust sample.
func (m *Motor) BurnTime() float64 { return m.thrust.Last() }

// TotalImpulse returns the integral of the thrust curve in N s.
func (m *Motor) TotalImpulse() float64 { return m.impulse }

// AverageThrust returns the total impulse divided by the burn duration.
func (m *Motor) AverageThrust() float64 {
	return m.impulse / (m.thrust.Last() - m.thrust.First())
}

// InitialPropellant returns the propellant mass at ignition.
func (m *Motor) InitialPropellant() float64 { return m.propellant.vs[0] }

// ThrustCurve returns the thrust table.
func (m *Motor) ThrustCurve() *Curve { return m.thrust }

// PropellantCurve returns the propellant mass table.
func (m *Motor) PropellantCurve() *Curve { return m.propellant }

// Thrust returns the thrust at time t after ignition.
func (m *Motor) Thrust(t float64) (float64, error) { return m.thrust.At(t) }

// Propellant returns the propellant mass at time t after ignition.
func (m *Motor) Propellant(t float64) (float64, error) { return m.propellant.At(t) }

// Class returns the impulse class letter of the motor (each letter doubles the impulse, A is up to 2.5 N s).
func (m *Motor) Class() string {
	if m.impulse <= 2.5 {
		return "A"
	}
	n := int(math.Ceil(math.Log2(m.impulse / 2.5)))
	if n > 25 {
		return "?"
	}
	return string(rune('A' + n))
}

func (m *Motor) String() string {
	return fmt.Sprintf("%s (%s, %.1f N s, %.3f s burn)", m.name, m.Class(), m.impulse, m.BurnTime())
}
