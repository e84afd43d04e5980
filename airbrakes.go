package rfs

import (
	"fmt"
	"math"
)

// Airbrakes are drag flaps deployed during the coast.
type Airbrakes struct {
	flaps          int
	flapArea       float64
	cd             float64
	maxAngle       float64 // rad
	maxDeployRate  float64 // rad/s
	maxRetractRate float64 // rad/s
}

// NewAirbrakes returns Airbrakes with a number of flaps of a given area (m^2)
// and drag coefficient. Angles are in degrees and rates in degrees per second.
// A non-positive retraction rate defaults to the deployment rate.
func NewAirbrakes(flaps int, flapArea, cd, maxAngleDeg, maxDeployRateDeg, maxRetractRateDeg float64) (*Airbrakes, error) {
	switch {
	case flaps <= 0:
		return nil, invalidf("airbrakes need at least one flap")
	case flapArea <= 0 || cd <= 0:
		return nil, invalidf("airbrake flaps need a positive area and Cd")
	case maxAngleDeg <= 0 || maxAngleDeg > 90:
		return nil, invalidf("airbrake max angle must be in (0, 90] degrees, got %f", maxAngleDeg)
	case maxDeployRateDeg <= 0:
		return nil, invalidf("airbrake deployment rate must be positive, got %f", maxDeployRateDeg)
	}
	if maxRetractRateDeg <= 0 {
		maxRetractRateDeg = maxDeployRateDeg
	}
	return &Airbrakes{
		flaps:          flaps,
		flapArea:       flapArea,
		cd:             cd,
		maxAngle:       maxAngleDeg * deg2rad,
		maxDeployRate:  maxDeployRateDeg * deg2rad,
		maxRetractRate: maxRetractRateDeg * deg2rad,
	}, nil
}

// CdA returns the drag area of the fully perpendicular flaps.
func (ab *Airbrakes) CdA() float64 { return float64(ab.flaps) * ab.flapArea * ab.cd }

// MaxAngle returns the maximum deployment angle in radians.
func (ab *Airbrakes) MaxAngle() float64 { return ab.maxAngle }

// MaxDeployRate returns the maximum deployment rate in rad/s.
func (ab *Airbrakes) MaxDeployRate() float64 { return ab.maxDeployRate }

// MaxRetractRate returns the maximum retraction rate in rad/s.
func (ab *Airbrakes) MaxRetractRate() float64 { return ab.maxRetractRate }

func (ab *Airbrakes) String() string {
	return fmt.Sprintf("%d flaps, CdA=%.5fm^2, max %.1fdeg @ %.1f/%.1fdeg/s", ab.flaps, ab.CdA(), ab.maxAngle/deg2rad, ab.maxDeployRate/deg2rad, ab.maxRetractRate/deg2rad)
}

// DeploymentLaw defines an enum of airbrake deployment laws.
type DeploymentLaw uint8

const (
	fullDeployment DeploymentLaw = iota + 1
	heightSchedule
	timeSchedule
)

func (l DeploymentLaw) String() string {
	switch l {
	case fullDeployment:
		return "full"
	case heightSchedule:
		return "f(height)"
	case timeSchedule:
		return "f(time)"
	}
	panic("cannot stringify unknown deployment law")
}

// DeploymentControl defines how the airbrakes deploy.
type DeploymentControl interface {
	// Target returns the commanded deployment angle in radians given the
	// state and the time elapsed since the airbrake phase started.
	Target(s State, elapsed float64) float64
	// RateLimited returns whether the commanded angle is reached within the kinematic limits of the flaps.
	RateLimited() bool
	Type() DeploymentLaw
}

// FullDeployment deploys the airbrakes to their maximum angle as fast as possible.
type FullDeployment struct{}

// Target implements the DeploymentControl interface.
func (FullDeployment) Target(State, float64) float64 { return math.Pi / 2 }

// RateLimited implements the DeploymentControl interface.
func (FullDeployment) RateLimited() bool { return true }

// Type implements the DeploymentControl interface.
func (FullDeployment) Type() DeploymentLaw { return fullDeployment }

// HeightSchedule commands the deployment angle (rad) as a function of the height above the pad.
type HeightSchedule struct {
	Angle   func(height float64) float64
	Limited bool
}

// Target implements the DeploymentControl interface.
func (c HeightSchedule) Target(s State, _ float64) float64 { return c.Angle(s.Pos.Z) }

// RateLimited implements the DeploymentControl interface.
func (c HeightSchedule) RateLimited() bool { return c.Limited }

// Type implements the DeploymentControl interface.
func (HeightSchedule) Type() DeploymentLaw { return heightSchedule }

// TimeSchedule commands the deployment angle (rad) as a function of the time since deployment began.
type TimeSchedule struct {
	Angle   func(elapsed float64) float64
	Limited bool
}

// Target implements the DeploymentControl interface.
func (c TimeSchedule) Target(_ State, elapsed float64) float64 { return c.Angle(elapsed) }

// RateLimited implements the DeploymentControl interface.
func (c TimeSchedule) RateLimited() bool { return c.Limited }

// Type implements the DeploymentControl interface.
func (TimeSchedule) Type() DeploymentLaw { return timeSchedule }

// brakeState tracks the deployment angle during one airbrake phase.
type brakeState struct {
	brakes  *Airbrakes
	control DeploymentControl
	start   float64
	angle   float64
}

// step returns the deployment angle for the step starting at s.
func (b *brakeState) step(s State, dt float64) float64 {
	target := clamp(b.control.Target(s, s.T-b.start), 0, b.brakes.maxAngle)
	if !b.control.RateLimited() {
		b.angle = target
		return b.angle
	}
	if target > b.angle {
		b.angle = math.Min(target, b.angle+b.brakes.maxDeployRate*dt)
	} else {
		b.angle = math.Max(target, b.angle-b.brakes.maxRetractRate*dt)
	}
	return b.angle
}

func (b *brakeState) cda(angle float64) float64 {
	return math.Sin(angle) * b.brakes.CdA()
}

// AirbrakeCoast integrates the coast with the airbrakes deploying from init
// according to the control until one of the stop conditions holds.
func AirbrakeCoast(r *Rocket, env *Environment, brakes *Airbrakes, control DeploymentControl, init State, opts Options, stops ...StopCondition) ([]State, error) {
	if brakes == nil || control == nil {
		return nil, invalidf("airbrake coast without airbrakes or control")
	}
	f := newFreeFlight(r, env, 1, attitude{})
	f.att = f.direction(init)
	f.brakes = &brakeState{brakes: brakes, control: control, start: init.T, angle: clamp(init.Deployment, 0, brakes.maxAngle)}
	p, err := newPhase("airbrakes", f, opts, stops...)
	if err != nil {
		return nil, err
	}
	p.logger.Log("level", "info", "subsys", "airbrakes", "law", control.Type().String(), "t", init.T, "h", init.Pos.Z)
	states, _, err := p.run(init)
	return states, err
}
