package rfs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// State is the kinematic state of the rocket at a given time after ignition.
// Positions are relative to the pad in an east/north/up frame.
type State struct {
	T          float64
	Pos        r3.Vec
	Vel        r3.Vec
	Acc        r3.Vec
	Deployment float64 // airbrake deployment angle in rad
}

// Height returns the altitude above the pad.
func (s State) Height() float64 { return s.Pos.Z }

// Groundspeed returns the norm of the velocity.
func (s State) Groundspeed() float64 { return r3.Norm(s.Vel) }

// AirVelocity returns the velocity relative to the wind.
func (s State) AirVelocity(w Wind) r3.Vec { return r3.Sub(s.Vel, w.Vector()) }

// Airspeed returns the norm of the velocity relative to the wind.
func (s State) Airspeed(w Wind) float64 { return r3.Norm(s.AirVelocity(w)) }

// Heading returns the compass heading of the ground track in radians, or 0
// if the horizontal velocity is zero.
func (s State) Heading() float64 {
	if math.Hypot(s.Vel.X, s.Vel.Y) < speedEpsilon {
		return 0
	}
	return math.Atan2(s.Vel.X, s.Vel.Y)
}

// AngleToVertical returns the angle between the air velocity and the zenith.
func (s State) AngleToVertical(w Wind) float64 {
	as := s.Airspeed(w)
	if as < speedEpsilon {
		return 0
	}
	return math.Acos(clamp(s.Vel.Z/as, -1, 1))
}

// Mach returns the Mach number of the state in a given environment.
func (s State) Mach(env *Environment) (float64, error) {
	T, err := env.Temperature(s.Pos.Z)
	if err != nil {
		return 0, err
	}
	return Mach(s.Airspeed(env.wind), T), nil
}

// DynamicPressure returns the dynamic pressure of the state in a given environment.
func (s State) DynamicPressure(env *Environment) (float64, error) {
	rho, err := env.Density(s.Pos.Z)
	if err != nil {
		return 0, err
	}
	return DynamicPressure(rho, s.Airspeed(env.wind)), nil
}

// interpolate returns the state a fraction f of the way from s to o.
func (s State) interpolate(o State, f float64) State {
	return State{
		T:          lerp(s.T, o.T, f),
		Pos:        lerpVec(s.Pos, o.Pos, f),
		Vel:        lerpVec(s.Vel, o.Vel, f),
		Acc:        lerpVec(s.Acc, o.Acc, f),
		Deployment: lerp(s.Deployment, o.Deployment, f),
	}
}

func (s State) finite() bool {
	return finite(s.T, s.Deployment) && finiteVec(s.Pos) && finiteVec(s.Vel) && finiteVec(s.Acc)
}

func (s State) String() string {
	return fmt.Sprintf("t=%.4fs pos=(%.2f, %.2f, %.2f)m vel=(%.2f, %.2f, %.2f)m/s", s.T, s.Pos.X, s.Pos.Y, s.Pos.Z, s.Vel.X, s.Vel.Y, s.Vel.Z)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
