package rfs

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/log"
)

// DefaultTimestep is the integration step used by the scenario loader, in seconds.
const DefaultTimestep = 0.02

// Options are the numerical settings of a simulation.
type Options struct {
	Timestep float64
	Scheme   Scheme
	Logger   kitlog.Logger
}

func (o Options) validate() error {
	if o.Timestep <= 0 {
		return invalidf("timestep must be positive, got %f", o.Timestep)
	}
	return nil
}

func (o Options) logger() kitlog.Logger {
	if o.Logger == nil {
		return kitlog.NewNopLogger()
	}
	return o.Logger
}

// RecoveryStage is one parachute descent of a recovery sequence.
type RecoveryStage struct {
	Parachute Parachute
	// Stop ends the stage, Impact if nil.
	Stop StopCondition
	// Timestep of the stage, the simulation timestep if zero.
	Timestep float64
}

// Simulation is a single flight of a rocket from a launchpad.
type Simulation struct {
	Rocket *Rocket
	Env    *Environment
	Pad    *Launchpad
	Options
}

// NewSimulation returns a Simulation after checking its descriptors.
func NewSimulation(r *Rocket, env *Environment, pad *Launchpad, opts Options) (*Simulation, error) {
	if r == nil || env == nil || pad == nil {
		return nil, invalidf("simulation needs a rocket, an environment and a launchpad")
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Simulation{Rocket: r, Env: env, Pad: pad, Options: opts}, nil
}

// Ascent simulates the flight from ignition to apogee.
func (sim *Simulation) Ascent() (*Trajectory, error) {
	tr, err := sim.powered()
	if err != nil {
		return nil, err
	}
	states, err := Coast(sim.Rocket, sim.Env, tr.last(), sim.Options, Apogee{})
	if err != nil {
		return nil, err
	}
	tr.Apogee = tr.append(states)
	sim.logApogee(tr)
	return tr, nil
}

// Ballistic simulates the flight from ignition to impact without recovery.
func (sim *Simulation) Ballistic() (*Trajectory, error) {
	tr, err := sim.powered()
	if err != nil {
		return nil, err
	}
	states, err := Coast(sim.Rocket, sim.Env, tr.last(), sim.Options, Apogee{})
	if err != nil {
		return nil, err
	}
	tr.Apogee = tr.append(states)
	if states, err = Coast(sim.Rocket, sim.Env, tr.last(), sim.Options, Impact{}); err != nil {
		return nil, err
	}
	tr.Landing = tr.append(states)
	sim.logApogee(tr)
	return tr, nil
}

// Recovery simulates the ascent followed by the parachute descents of the
// stages, each starting where the previous one ended. A stage without a stop
// condition ends at the deployment height of the next stage, if it has one,
// or at impact.
func (sim *Simulation) Recovery(stages ...RecoveryStage) (*Trajectory, error) {
	if len(stages) == 0 {
		return nil, invalidf("recovery without a parachute")
	}
	tr, err := sim.Ascent()
	if err != nil {
		return nil, err
	}
	for i, stage := range stages {
		opts := sim.Options
		if stage.Timestep > 0 {
			opts.Timestep = stage.Timestep
		}
		var stops []StopCondition
		switch {
		case stage.Stop != nil:
			stops = append(stops, stage.Stop)
		case i+1 < len(stages) && stages[i+1].Parachute.Altitude > 0 && tr.last().Pos.Z > stages[i+1].Parachute.Altitude:
			// Hand over to the next parachute at its deployment height.
			stops = append(stops, BelowAltitude{Height: stages[i+1].Parachute.Altitude}, Impact{})
		}
		d, err := Descend(sim.Rocket, sim.Env, stage.Parachute, tr.last(), opts, stops...)
		if err != nil {
			return nil, err
		}
		offset := len(tr.States) - 1
		tr.append(d.States)
		if d.Deployed >= 0 {
			tr.Deployments = append(tr.Deployments, offset+d.Deployed)
		}
		if d.Landed {
			tr.Landing = len(tr.States) - 1
			break
		}
	}
	if tr.Landing >= 0 {
		land := tr.States[tr.Landing]
		sim.logger().Log("level", "info", "subsys", "flight", "status", "landed", "t", land.T, "drift(m)", math.Hypot(land.Pos.X, land.Pos.Y), "v(m/s)", land.Groundspeed())
	}
	return tr, nil
}

// AirbrakeAscent simulates the flight to apogee with the airbrakes deploying from burnout.
func (sim *Simulation) AirbrakeAscent(brakes *Airbrakes, control DeploymentControl) (*Trajectory, error) {
	tr, err := sim.powered()
	if err != nil {
		return nil, err
	}
	states, err := AirbrakeCoast(sim.Rocket, sim.Env, brakes, control, tr.last(), sim.Options, Apogee{})
	if err != nil {
		return nil, err
	}
	tr.Apogee = tr.append(states)
	sim.logApogee(tr)
	return tr, nil
}

// ZeroDrag returns a copy of the simulation without aerodynamic drag.
func (sim *Simulation) ZeroDrag() *Simulation {
	cpy := *sim
	cpy.Rocket = sim.Rocket.WithDrag(ConstantCd(0))
	return &cpy
}

// powered runs liftoff, the rail and the boost.
func (sim *Simulation) powered() (*Trajectory, error) {
	if err := sim.Options.validate(); err != nil {
		return nil, err
	}
	logger := kitlog.With(sim.logger(), "subsys", "flight")
	t0, err := Liftoff(sim.Rocket, sim.Env, sim.Pad)
	if err != nil {
		return nil, err
	}
	logger.Log("level", "info", "status", "liftoff", "t", t0)
	tr := newTrajectory()
	rail, cleared, err := Rail(sim.Rocket, sim.Env, sim.Pad, t0, sim.Options)
	if err != nil {
		return nil, err
	}
	tr.States = append(tr.States, rail...)
	tr.Liftoff = 0
	tr.RailClearance = len(tr.States) - 1
	tr.RailCleared = cleared
	exit := tr.last()
	logger.Log("level", "info", "status", "rail exit", "t", exit.T, "v(m/s)", exit.Groundspeed())

	if exit.T < sim.Rocket.motor.BurnTime() {
		boost, err := Boost(sim.Rocket, sim.Env, sim.Pad, exit, sim.Options)
		if err != nil {
			return nil, err
		}
		tr.append(boost)
	}
	tr.Burnout = len(tr.States) - 1
	bo := tr.last()
	logger.Log("level", "info", "status", "burnout", "t", bo.T, "h", bo.Pos.Z, "v(m/s)", bo.Groundspeed())
	return tr, nil
}

func (sim *Simulation) logApogee(tr *Trajectory) {
	ap := tr.States[tr.Apogee]
	sim.logger().Log("level", "notice", "subsys", "flight", "status", "apogee", "t", ap.T, "h", ap.Pos.Z)
}

func (sim *Simulation) String() string {
	return fmt.Sprintf("%s | %s | %s | dt=%gs %s", sim.Rocket, sim.Env, sim.Pad, sim.Timestep, sim.Scheme)
}
