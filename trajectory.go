package rfs

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Trajectory is the time ordered sequence of states of a flight with the
// indices of its events. An index is -1 when the event did not happen.
type Trajectory struct {
	States        []State
	Liftoff       int
	RailClearance int
	Burnout       int
	Apogee        int
	Landing       int
	Deployments   []int // parachute deployments
	RailCleared   bool  // false if the motor burned out on the rail
}

func newTrajectory() *Trajectory {
	return &Trajectory{Liftoff: -1, RailClearance: -1, Burnout: -1, Apogee: -1, Landing: -1}
}

func (tr *Trajectory) last() State {
	return tr.States[len(tr.States)-1]
}

// append appends the states of the next phase, whose first state is the last
// state of the trajectory, and returns the index of the final state.
func (tr *Trajectory) append(states []State) int {
	if len(states) > 1 {
		tr.States = append(tr.States, states[1:]...)
	}
	return len(tr.States) - 1
}

// Event returns the state at an event index.
func (tr *Trajectory) Event(idx int) (State, bool) {
	if idx < 0 || idx >= len(tr.States) {
		return State{}, false
	}
	return tr.States[idx], true
}

// ApogeeState returns the state at apogee.
func (tr *Trajectory) ApogeeState() (State, bool) { return tr.Event(tr.Apogee) }

// BurnoutState returns the state at burnout.
func (tr *Trajectory) BurnoutState() (State, bool) { return tr.Event(tr.Burnout) }

// MaxSpeed returns the state of largest groundspeed.
func (tr *Trajectory) MaxSpeed() State {
	return tr.maxOf(func(s State) float64 { return r3.Norm(s.Vel) })
}

// MaxAcceleration returns the state of largest acceleration.
func (tr *Trajectory) MaxAcceleration() State {
	return tr.maxOf(func(s State) float64 { return r3.Norm(s.Acc) })
}

// MaxMach returns the largest Mach number reached.
func (tr *Trajectory) MaxMach(env *Environment) (float64, error) {
	best := 0.
	for _, s := range tr.States {
		m, err := s.Mach(env)
		if err != nil {
			return 0, err
		}
		if m > best {
			best = m
		}
	}
	return best, nil
}

func (tr *Trajectory) maxOf(f func(State) float64) State {
	var best State
	v := -1.
	for _, s := range tr.States {
		if x := f(s); x > v {
			best, v = s, x
		}
	}
	return best
}

// PhaseOf returns the name of the flight phase of the state at index idx.
func (tr *Trajectory) PhaseOf(idx int) string {
	switch {
	case idx <= tr.RailClearance:
		return "rail"
	case idx <= tr.Burnout:
		return "boost"
	case tr.Apogee < 0 || idx <= tr.Apogee:
		return "coast"
	case len(tr.Deployments) > 0 && idx > tr.Deployments[0]:
		return "descent"
	}
	return "coast"
}
