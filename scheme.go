package rfs

import (
	"fmt"
	"strings"

	"github.com/ChristopherRabotin/ode"
	"gonum.org/v1/gonum/spatial/r3"
)

// Scheme is a fixed-step integration scheme.
type Scheme uint8

const (
	// SchemeEuler is the semi-implicit Euler scheme.
	SchemeEuler Scheme = iota
	// SchemeRK4 is the classical fourth order Runge-Kutta scheme.
	SchemeRK4
)

func (s Scheme) String() string {
	switch s {
	case SchemeEuler:
		return "euler"
	case SchemeRK4:
		return "rk4"
	}
	panic("cannot stringify unknown scheme")
}

// ParseScheme returns the scheme of the given name.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euler":
		return SchemeEuler, nil
	case "rk4":
		return SchemeRK4, nil
	}
	return SchemeEuler, fmt.Errorf("unknown integration scheme %q", name)
}

// rk4Offsets are the times of the four stages within a step, in steps.
var rk4Offsets = [4]float64{0, 0.5, 0.5, 1}

// rk4Phase adapts a phase to the ode integrator. The integrator calls Func
// for the four stages of a step in order, so the stage time is tracked here.
// Force-model memory (attitude, airbrake angle) is updated once per step.
type rk4Phase struct {
	p      *phase
	start  State
	cur    State
	work   State
	acc    r3.Vec
	stage  int
	states []State
	fired  int
	err    error
	done   bool
}

func (p *phase) runRK4(init State) ([]State, int, error) {
	r := &rk4Phase{p: p, start: init, cur: init, states: []State{init}, fired: -1}
	ode.NewRK4(0, p.dt, r).Solve() // Blocking.
	if r.err != nil {
		return nil, -1, r.err
	}
	return r.states, r.fired, nil
}

// Stop implements the ode.Integrable interface.
func (r *rk4Phase) Stop(t float64) bool {
	return r.done || r.err != nil
}

// GetState implements the ode.Integrable interface.
func (r *rk4Phase) GetState() []float64 {
	r.work = r.p.dyn.begin(r.cur, r.p.dt)
	a, err := r.p.dyn.accel(r.work)
	if err != nil {
		r.fail(phaseErr(r.p.name, "acceleration", r.work.T, err))
	}
	r.acc = a
	r.stage = 0
	return []float64{r.work.Pos.X, r.work.Pos.Y, r.work.Pos.Z, r.work.Vel.X, r.work.Vel.Y, r.work.Vel.Z}
}

// SetState implements the ode.Integrable interface.
func (r *rk4Phase) SetState(t float64, s []float64) {
	if r.err != nil {
		return
	}
	next := State{
		T:          r.work.T + r.p.dt,
		Pos:        r3.Vec{X: s[0], Y: s[1], Z: s[2]},
		Vel:        r3.Vec{X: s[3], Y: s[4], Z: s[5]},
		Acc:        r.acc,
		Deployment: r.work.Deployment,
	}
	if !next.finite() {
		r.fail(phaseErr(r.p.name, "state", next.T, fmt.Errorf("%w: %s", ErrNonFinite, next)))
		return
	}
	r.states = append(r.states, next)
	final, fired, err := r.p.crossing(r.start, r.cur, next)
	if err != nil {
		r.fail(err)
		return
	}
	if final != nil {
		r.states[len(r.states)-1] = *final
		r.fired = fired
		r.done = true
		return
	}
	if err := r.p.stranded(next); err != nil {
		r.fail(err)
		return
	}
	r.cur = next
}

// Func implements the ode.Integrable interface.
func (r *rk4Phase) Func(t float64, f []float64) []float64 {
	fDot := make([]float64, 6)
	if r.err != nil {
		return fDot
	}
	s := r.work
	s.T += rk4Offsets[min(r.stage, len(rk4Offsets)-1)] * r.p.dt
	r.stage++
	s.Pos = r3.Vec{X: f[0], Y: f[1], Z: f[2]}
	s.Vel = r3.Vec{X: f[3], Y: f[4], Z: f[5]}
	a, err := r.p.dyn.accel(s)
	if err != nil {
		r.fail(phaseErr(r.p.name, "acceleration", s.T, err))
		return fDot
	}
	fDot[0], fDot[1], fDot[2] = s.Vel.X, s.Vel.Y, s.Vel.Z
	fDot[3], fDot[4], fDot[5] = a.X, a.Y, a.Z
	return fDot
}

func (r *rk4Phase) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}
