package rfs

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// descentDynamics applies the parachute drag against the air velocity.
type descentDynamics struct {
	rocket *Rocket
	env    *Environment
	wind   r3.Vec
	cda    float64
}

func (d *descentDynamics) begin(s State, _ float64) State {
	s.Deployment = 0
	return s
}

func (d *descentDynamics) accel(s State) (r3.Vec, error) {
	a, err := d.env.airAt(s.Pos.Z)
	if err != nil {
		return r3.Vec{}, err
	}
	air := r3.Sub(s.Vel, d.wind)
	drag := DynamicPressure(a.density, r3.Norm(air)) * d.cda
	acc := r3.Scale(-drag/d.rocket.DryMass(), unitVec(air))
	acc.Z -= d.env.gravity
	return acc, nil
}

// Descent is the result of a parachute descent.
type Descent struct {
	States   []State
	Deployed int  // index of the deployment state, -1 if the rocket landed first
	Landed   bool // whether the descent ended on the ground
}

// Descend deploys the parachute, after its deployment gates if any, and
// integrates the descent from init until one of the stop conditions holds.
// Without stop conditions the descent ends at impact.
func Descend(r *Rocket, env *Environment, chute Parachute, init State, opts Options, stops ...StopCondition) (*Descent, error) {
	if err := chute.validate(); err != nil {
		return nil, err
	}
	logger := opts.logger()
	d := &Descent{States: []State{init}, Deployed: -1}
	gate := func(c StopCondition) (bool, error) {
		states, fired, err := coast(r, env, d.States[len(d.States)-1], opts, c, Impact{})
		if err != nil {
			return false, err
		}
		d.States = append(d.States, states[1:]...)
		if fired == 1 {
			logger.Log("level", "warning", "subsys", "descent", "parachute", chute.Name, "status", "landed before deployment", "t", states[len(states)-1].T)
			d.Landed = true
			return false, nil
		}
		return true, nil
	}
	if chute.Delay > 0 {
		ok, err := gate(AfterDelay{Delay: chute.Delay})
		if err != nil {
			return nil, err
		}
		if !ok {
			return d, nil
		}
	}
	if cur := d.States[len(d.States)-1]; chute.Altitude > 0 && cur.Pos.Z > chute.Altitude {
		ok, err := gate(BelowAltitude{Height: chute.Altitude})
		if err != nil {
			return nil, err
		}
		if !ok {
			return d, nil
		}
	}
	d.Deployed = len(d.States) - 1
	deploy := d.States[d.Deployed]
	logger.Log("level", "info", "subsys", "descent", "parachute", chute.Name, "status", "deployed", "t", deploy.T, "h", deploy.Pos.Z)

	if len(stops) == 0 {
		stops = []StopCondition{Impact{}}
	}
	p, err := newPhase("descent", &descentDynamics{rocket: r, env: env, wind: env.wind.Vector(), cda: chute.CdA()}, opts, stops...)
	if err != nil {
		return nil, err
	}
	states, fired, err := p.run(deploy)
	if err != nil {
		return nil, err
	}
	d.States = append(d.States, states[1:]...)
	_, d.Landed = stops[fired].(Impact)
	return d, nil
}
