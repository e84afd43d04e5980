package rfs

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// railDynamics constrains the rocket to the rail. Wind is ignored on the rail.
type railDynamics struct {
	rocket *Rocket
	env    *Environment
	axis   r3.Vec
}

func (d *railDynamics) begin(s State, _ float64) State { return s }

func (d *railDynamics) accel(s State) (r3.Vec, error) {
	a, err := d.env.airAt(s.Pos.Z)
	if err != nil {
		return r3.Vec{}, err
	}
	speed := r3.Dot(s.Vel, d.axis)
	drag := DynamicPressure(a.density, speed) * d.rocket.CdA(Mach(speed, a.temperature))
	if speed < 0 {
		drag = -drag
	}
	thrust, mass, err := d.rocket.propulsion(s.T)
	if err != nil {
		return r3.Vec{}, err
	}
	return r3.Scale((thrust-drag)/mass-d.env.gravity*d.axis.Z, d.axis), nil
}

// railClearanceHeight returns the height of the pad at which the aft rail button leaves the rail.
func railClearanceHeight(r *Rocket, pad *Launchpad) float64 {
	return (pad.railLength - r.buttonHeight) * pad.railUnit.Z
}

// Rail integrates the rail-guided ascent from liftoff until the aft rail
// button leaves the rail. The returned flag is false when the motor burned out
// before rail clearance: the phase then ends at burnout and the rocket is
// released from the rail.
func Rail(r *Rocket, env *Environment, pad *Launchpad, liftoff float64, opts Options) ([]State, bool, error) {
	h := railClearanceHeight(r, pad)
	if h <= 0 {
		return nil, false, invalidf("rail button height %f m exceeds the rail length %f m", r.buttonHeight, pad.railLength)
	}
	p, err := newPhase("rail", &railDynamics{rocket: r, env: env, axis: pad.railUnit}, opts,
		AboveAltitude{Height: h}, AtTime{Time: r.motor.BurnTime()})
	if err != nil {
		return nil, false, err
	}
	states, fired, err := p.run(State{T: liftoff})
	if err != nil {
		return nil, false, err
	}
	if fired == 1 {
		final := states[len(states)-1]
		p.logger.Log("level", "warning", "subsys", "rail", "status", "burnout before rail clearance", "t", final.T, "h", final.Pos.Z, "clearance(m)", h)
		return states, false, nil
	}
	return states, true, nil
}
