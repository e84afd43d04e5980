package rfs

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoostWindFactor is the share of the wind seen by the rocket during the
// powered ascent, standing in for an incomplete weathercocking after rail exit.
const BoostWindFactor = 0.2

// attitude is the last defined direction of flight. It is held when the
// velocity no longer defines a direction (vertical flight, zero airspeed).
type attitude struct {
	heading float64
	angle   float64
}

// freeFlight is the force model of the unconstrained flight with the body
// aligned with the air velocity: thrust and drag act along the body axis.
type freeFlight struct {
	rocket *Rocket
	env    *Environment
	wind   r3.Vec
	att    attitude
	brakes *brakeState
}

func newFreeFlight(r *Rocket, env *Environment, windFactor float64, seed attitude) *freeFlight {
	return &freeFlight{rocket: r, env: env, wind: r3.Scale(windFactor, env.wind.Vector()), att: seed}
}

// direction returns the heading of the ground track and the angle of the air velocity to the vertical.
func (f *freeFlight) direction(s State) attitude {
	att := f.att
	if math.Hypot(s.Vel.X, s.Vel.Y) >= speedEpsilon {
		att.heading = math.Atan2(s.Vel.X, s.Vel.Y)
	}
	if as := r3.Norm(r3.Sub(s.Vel, f.wind)); as >= speedEpsilon {
		att.angle = math.Acos(clamp(s.Vel.Z/as, -1, 1))
	}
	return att
}

func (f *freeFlight) begin(s State, dt float64) State {
	f.att = f.direction(s)
	if f.brakes != nil {
		s.Deployment = f.brakes.step(s, dt)
	}
	return s
}

func (f *freeFlight) accel(s State) (r3.Vec, error) {
	a, err := f.env.airAt(s.Pos.Z)
	if err != nil {
		return r3.Vec{}, err
	}
	airspeed := r3.Norm(r3.Sub(s.Vel, f.wind))
	cda := f.rocket.CdA(Mach(airspeed, a.temperature))
	if f.brakes != nil {
		cda += f.brakes.cda(s.Deployment)
	}
	thrust, mass, err := f.rocket.propulsion(s.T)
	if err != nil {
		return r3.Vec{}, err
	}
	att := f.direction(s)
	acc := r3.Scale((thrust-DynamicPressure(a.density, airspeed)*cda)/mass, bodyAxis(att.heading, att.angle))
	acc.Z -= f.env.gravity
	return acc, nil
}

// seedAttitude returns the attitude to hold until the velocity defines one.
func seedAttitude(s State, pad *Launchpad) attitude {
	att := attitude{heading: pad.heading, angle: pad.AngleToVertical()}
	if math.Hypot(s.Vel.X, s.Vel.Y) >= speedEpsilon {
		att.heading = math.Atan2(s.Vel.X, s.Vel.Y)
	}
	return att
}

// Boost integrates the unguided powered ascent from rail clearance until burnout.
func Boost(r *Rocket, env *Environment, pad *Launchpad, init State, opts Options) ([]State, error) {
	p, err := newPhase("boost", newFreeFlight(r, env, BoostWindFactor, seedAttitude(init, pad)), opts, AtTime{Time: r.motor.BurnTime()})
	if err != nil {
		return nil, err
	}
	states, _, err := p.run(init)
	return states, err
}
