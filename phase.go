package rfs

import (
	"fmt"
	"math"

	kitlog "github.com/go-kit/log"
	"gonum.org/v1/gonum/spatial/r3"
)

// dynamics is the force model of one flight phase.
type dynamics interface {
	// begin is called once per step with the state at the start of the step and
	// returns the working state of the step. It is the only place where a
	// force model may update its memory (attitude hold, airbrake deployment).
	begin(s State, dt float64) State
	// accel returns the acceleration at s without side effects.
	accel(s State) (r3.Vec, error)
}

// phase integrates one flight regime with a fixed step until one of its stop conditions holds.
type phase struct {
	name   string
	dyn    dynamics
	stops  []StopCondition
	dt     float64
	scheme Scheme
	logger kitlog.Logger
}

func newPhase(name string, dyn dynamics, opts Options, stops ...StopCondition) (*phase, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(stops) == 0 {
		return nil, invalidf("%s phase without a stop condition", name)
	}
	return &phase{name: name, dyn: dyn, stops: stops, dt: opts.Timestep, scheme: opts.Scheme, logger: opts.logger()}, nil
}

// run returns the states of the phase, starting with init and ending with the
// state interpolated at the crossing, and the index of the stop condition which ended it.
func (p *phase) run(init State) ([]State, int, error) {
	for _, c := range p.stops {
		if c.Reached(init, init) {
			return nil, -1, phaseErr(p.name, c.String(), init.T, ErrStopAtEntry)
		}
	}
	var (
		states []State
		fired  int
		err    error
	)
	switch p.scheme {
	case SchemeRK4:
		states, fired, err = p.runRK4(init)
	default:
		states, fired, err = p.runEuler(init)
	}
	if err != nil {
		return nil, -1, err
	}
	final := states[len(states)-1]
	p.logger.Log("level", "debug", "subsys", p.name, "status", "done", "stop", p.stops[fired].String(), "steps", len(states)-1, "t", final.T, "h", final.Pos.Z)
	return states, fired, nil
}

func (p *phase) runEuler(init State) ([]State, int, error) {
	states := []State{init}
	cur := init
	for {
		next, err := p.euler(cur)
		if err != nil {
			return nil, -1, err
		}
		states = append(states, next)
		done, fired, err := p.crossing(init, cur, next)
		if err != nil {
			return nil, -1, err
		}
		if done != nil {
			states[len(states)-1] = *done
			return states, fired, nil
		}
		if err := p.stranded(next); err != nil {
			return nil, -1, err
		}
		cur = next
	}
}

// euler performs one semi-implicit Euler step: the position is advanced with the updated velocity.
func (p *phase) euler(cur State) (State, error) {
	s := p.dyn.begin(cur, p.dt)
	a, err := p.dyn.accel(s)
	if err != nil {
		return State{}, phaseErr(p.name, "acceleration", s.T, err)
	}
	v := r3.Add(s.Vel, r3.Scale(p.dt, a))
	next := State{
		T:          s.T + p.dt,
		Pos:        r3.Add(s.Pos, r3.Scale(p.dt, v)),
		Vel:        v,
		Acc:        a,
		Deployment: s.Deployment,
	}
	if !next.finite() {
		return State{}, phaseErr(p.name, "state", next.T, fmt.Errorf("%w: %s", ErrNonFinite, next))
	}
	return next, nil
}

// crossing checks the stop conditions between two consecutive states. If any
// holds at next, it returns the state interpolated at the earliest crossing.
func (p *phase) crossing(start, prev, next State) (*State, int, error) {
	fired := -1
	frac := math.Inf(1)
	for i, c := range p.stops {
		if !c.Reached(start, next) {
			continue
		}
		q := c.Quantity()
		m1, m2 := q.of(prev), q.of(next)
		if math.Abs(m2-m1) < crossingEpsilon {
			return nil, -1, phaseErr(p.name, q.String(), next.T, fmt.Errorf("%w: %s changed by %g over the last step", ErrDegenerateCrossing, q, m2-m1))
		}
		f := clamp((c.Target(start)-m1)/(m2-m1), 0, 1)
		if f < frac {
			frac, fired = f, i
		}
	}
	if fired < 0 {
		return nil, -1, nil
	}
	final := prev.interpolate(next, frac)
	c := p.stops[fired]
	c.Quantity().set(&final, c.Target(start))
	return &final, fired, nil
}

// stranded returns an error once the rocket is below the pad and still
// descending, unless a time stop or a lower BelowAltitude can end the phase.
func (p *phase) stranded(s State) error {
	if s.Pos.Z >= 0 || s.Vel.Z > 0 {
		return nil
	}
	for _, c := range p.stops {
		if c.Quantity() == QuantityTime {
			return nil
		}
		if b, ok := c.(BelowAltitude); ok && b.Height < s.Pos.Z {
			return nil
		}
	}
	return phaseErr(p.name, "height", s.T, fmt.Errorf("%w: %.2fm below the pad", ErrUnreachableStop, -s.Pos.Z))
}
