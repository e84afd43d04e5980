package rfs

import "fmt"

// DefaultRailButtonHeight is the height of the aft rail button above the base of the rocket, in m.
const DefaultRailButtonHeight = 0.8

// Rocket is a single stage rocket treated as a point mass.
type Rocket struct {
	mass         float64 // structure without the motor
	motor        *Motor
	area         float64
	drag         DragModel
	buttonHeight float64
}

// NewRocket returns a Rocket from its structural mass (kg, motor excluded),
// motor, reference area (m^2), drag model and aft rail button height (m).
func NewRocket(mass float64, motor *Motor, area float64, drag DragModel, buttonHeight float64) (*Rocket, error) {
	switch {
	case mass < 0:
		return nil, invalidf("negative rocket mass %f", mass)
	case motor == nil:
		return nil, invalidf("rocket without a motor")
	case area <= 0:
		return nil, invalidf("reference area must be positive, got %f", area)
	case drag == nil:
		return nil, invalidf("rocket without a drag model")
	case buttonHeight < 0:
		return nil, invalidf("negative rail button height %f", buttonHeight)
	}
	if mass+motor.DryMass() <= 0 {
		return nil, invalidf("rocket dry mass must be positive")
	}
	return &Rocket{mass: mass, motor: motor, area: area, drag: drag, buttonHeight: buttonHeight}, nil
}

// WithDrag returns a copy of the rocket with another drag model.
func (r *Rocket) WithDrag(d DragModel) *Rocket {
	cpy := *r
	cpy.drag = d
	return &cpy
}

// WithMass returns a copy of the rocket with another structural mass.
func (r *Rocket) WithMass(mass float64) *Rocket {
	cpy := *r
	cpy.mass = mass
	return &cpy
}

// Mass returns the structural mass, motor excluded.
func (r *Rocket) Mass() float64 { return r.mass }

// Motor returns the motor.
func (r *Rocket) Motor() *Motor { return r.motor }

// DryMass returns the structure and motor mass without propellant.
func (r *Rocket) DryMass() float64 { return r.mass + r.motor.dryMass }

// Area returns the reference area.
func (r *Rocket) Area() float64 { return r.area }

// Drag returns the drag model.
func (r *Rocket) Drag() DragModel { return r.drag }

// RailButtonHeight returns the height of the aft rail button.
func (r *Rocket) RailButtonHeight() float64 { return r.buttonHeight }

// CdA returns the drag area at a Mach number.
func (r *Rocket) CdA(mach float64) float64 { return r.drag.Cd(mach) * r.area }

// propulsion returns the thrust and total mass at t. After burnout the
// thrust is zero and the mass is the dry mass.
func (r *Rocket) propulsion(t float64) (thrust, mass float64, err error) {
	if t >= r.motor.BurnTime() {
		return 0, r.DryMass(), nil
	}
	if thrust, err = r.motor.Thrust(t); err != nil {
		return
	}
	prop, err := r.motor.Propellant(t)
	if err != nil {
		return
	}
	return thrust, r.DryMass() + prop, nil
}

func (r *Rocket) String() string {
	return fmt.Sprintf("rocket %.3fkg dry, %s, A=%.5fm^2, %s", r.DryMass(), r.motor, r.area, r.drag)
}
