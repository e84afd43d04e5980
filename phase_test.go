package rfs

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

// constantAccel is a force model of constant acceleration.
type constantAccel struct {
	a     r3.Vec
	steps int
}

func (c *constantAccel) begin(s State, _ float64) State {
	c.steps++
	return s
}

func (c *constantAccel) accel(State) (r3.Vec, error) { return c.a, nil }

func TestPhaseCrossing(t *testing.T) {
	init := State{T: 2, Pos: r3.Vec{Z: 100}}
	for _, scheme := range []Scheme{SchemeEuler, SchemeRK4} {
		dyn := &constantAccel{a: r3.Vec{Z: -10}}
		p, err := newPhase("test", dyn, Options{Timestep: 0.1, Scheme: scheme}, BelowAltitude{Height: 50}, Impact{})
		if err != nil {
			t.Fatalf("err %s", err)
		}
		states, fired, err := p.run(init)
		if err != nil {
			t.Fatalf("[%s] err %s", scheme, err)
		}
		if fired != 0 {
			t.Fatalf("[%s] the earliest condition should fire, got %d", scheme, fired)
		}
		if states[0] != init {
			t.Fatalf("[%s] first state should be the initial state", scheme)
		}
		final := states[len(states)-1]
		if final.Pos.Z != 50 {
			t.Fatalf("[%s] final height got %f exp 50", scheme, final.Pos.Z)
		}
		prev := states[len(states)-2]
		if final.T <= prev.T || final.T > prev.T+0.1 {
			t.Fatalf("[%s] final time %f not within the last step from %f", scheme, final.T, prev.T)
		}
		if len(states)-1 != dyn.steps {
			t.Fatalf("[%s] %d states for %d steps", scheme, len(states), dyn.steps)
		}
		for i := 1; i < len(states); i++ {
			if states[i].T <= states[i-1].T {
				t.Fatalf("[%s] time not increasing at %d", scheme, i)
			}
		}
	}
}

func TestPhaseSchemes(t *testing.T) {
	// 100 m free fall at 10 m/s^2 lasts sqrt(20) s.
	exp := 2 + math.Sqrt(20)
	for _, tc := range []struct {
		scheme Scheme
		tol    float64
	}{{SchemeEuler, 0.06}, {SchemeRK4, 1e-3}} {
		p, _ := newPhase("test", &constantAccel{a: r3.Vec{Z: -10}}, Options{Timestep: 0.1, Scheme: tc.scheme}, Impact{})
		states, _, err := p.run(State{T: 2, Pos: r3.Vec{Z: 100}})
		if err != nil {
			t.Fatalf("[%s] err %s", tc.scheme, err)
		}
		final := states[len(states)-1]
		if final.Pos.Z != 0 {
			t.Fatalf("[%s] impact height got %f exp 0", tc.scheme, final.Pos.Z)
		}
		if !scalar.EqualWithinAbs(final.T, exp, tc.tol) {
			t.Fatalf("[%s] impact time got %f exp %f", tc.scheme, final.T, exp)
		}
	}
}

func TestPhaseTimeStops(t *testing.T) {
	p, _ := newPhase("test", &constantAccel{}, Options{Timestep: 0.02}, AfterDelay{Delay: 1.234}, AtTime{Time: 10})
	states, fired, err := p.run(State{T: 3})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if final := states[len(states)-1]; fired != 0 || !scalar.EqualWithinAbs(final.T, 4.234, 1e-12) {
		t.Fatalf("delay stop fired %d at %f exp 0 at 4.234", fired, final.T)
	}
	p, _ = newPhase("test", &constantAccel{}, Options{Timestep: 0.02}, AfterDelay{Delay: 10}, AtTime{Time: 4.897})
	states, fired, _ = p.run(State{T: 3})
	if final := states[len(states)-1]; fired != 1 || final.T != 4.897 {
		t.Fatalf("time stop fired %d at %f exp 1 at 4.897", fired, final.T)
	}
}

func TestPhaseStopAtEntry(t *testing.T) {
	p, _ := newPhase("coast", &constantAccel{a: r3.Vec{Z: -10}}, Options{Timestep: 0.1}, Apogee{})
	_, _, err := p.run(State{T: 1, Pos: r3.Vec{Z: 10}})
	if !errors.Is(err, ErrStopAtEntry) {
		t.Fatalf("expected ErrStopAtEntry, got %v", err)
	}
	var pe *PhaseError
	if !errors.As(err, &pe) || pe.Phase != "coast" || pe.Quantity != "apogee" {
		t.Fatalf("expected a coast PhaseError, got %v", err)
	}
}

func TestPhaseDegenerateCrossing(t *testing.T) {
	p, _ := newPhase("test", &constantAccel{a: r3.Vec{Z: -5e-12}}, Options{Timestep: 0.1}, Apogee{})
	_, _, err := p.run(State{Pos: r3.Vec{Z: 10}, Vel: r3.Vec{Z: 1e-13}})
	if !errors.Is(err, ErrDegenerateCrossing) {
		t.Fatalf("expected ErrDegenerateCrossing, got %v", err)
	}
}

func TestPhaseNonFinite(t *testing.T) {
	p, _ := newPhase("test", &constantAccel{a: r3.Vec{Z: math.Inf(1)}}, Options{Timestep: 0.1}, Apogee{})
	_, _, err := p.run(State{Vel: r3.Vec{Z: 1}})
	if !errors.Is(err, ErrNonFinite) {
		t.Fatalf("expected ErrNonFinite, got %v", err)
	}
}

func TestPhaseInvalid(t *testing.T) {
	if _, err := newPhase("test", &constantAccel{}, Options{Timestep: 0.1}); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("phase without stop: got %v", err)
	}
	if _, err := newPhase("test", &constantAccel{}, Options{}, Impact{}); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("phase without timestep: got %v", err)
	}
	if s, err := ParseScheme("RK4"); err != nil || s != SchemeRK4 {
		t.Fatalf("ParseScheme got %v %v", s, err)
	}
	if _, err := ParseScheme("leapfrog"); err == nil {
		t.Fatal("expected an error for an unknown scheme")
	}
}

func TestPhaseUnreachableStop(t *testing.T) {
	for _, scheme := range []Scheme{SchemeEuler, SchemeRK4} {
		p, _ := newPhase("coast", &constantAccel{a: r3.Vec{Z: -10}}, Options{Timestep: 0.1, Scheme: scheme}, AboveAltitude{Height: 20})
		_, _, err := p.run(State{T: 1, Pos: r3.Vec{Z: 10}})
		if !errors.Is(err, ErrUnreachableStop) {
			t.Fatalf("[%s] expected ErrUnreachableStop, got %v", scheme, err)
		}
		var pe *PhaseError
		if !errors.As(err, &pe) || pe.Phase != "coast" || pe.Quantity != "height" {
			t.Fatalf("[%s] expected a coast PhaseError on the height, got %v", scheme, err)
		}
		// A time stop or a lower altitude can still end the phase below the pad.
		p, _ = newPhase("coast", &constantAccel{a: r3.Vec{Z: -10}}, Options{Timestep: 0.1, Scheme: scheme}, AboveAltitude{Height: 20}, AtTime{Time: 5})
		states, fired, err := p.run(State{T: 1, Pos: r3.Vec{Z: 10}})
		if err != nil || fired != 1 || states[len(states)-1].Pos.Z >= 0 {
			t.Fatalf("[%s] time stop below the pad: fired %d err %v", scheme, fired, err)
		}
		p, _ = newPhase("coast", &constantAccel{a: r3.Vec{Z: -10}}, Options{Timestep: 0.1, Scheme: scheme}, AboveAltitude{Height: 20}, BelowAltitude{Height: -5})
		states, fired, err = p.run(State{T: 1, Pos: r3.Vec{Z: 10}})
		if err != nil || fired != 1 || states[len(states)-1].Pos.Z != -5 {
			t.Fatalf("[%s] stop below the pad: fired %d err %v", scheme, fired, err)
		}
	}
}

// timeAccel accelerates upward at t m/s^2.
type timeAccel struct{}

func (timeAccel) begin(s State, _ float64) State { return s }

func (timeAccel) accel(s State) (r3.Vec, error) { return r3.Vec{Z: s.T}, nil }

func TestPhaseRK4TimeDependent(t *testing.T) {
	// v = t^2/2 and z = t^3/6 are integrated exactly by RK4.
	p, _ := newPhase("test", timeAccel{}, Options{Timestep: 0.1, Scheme: SchemeRK4}, AtTime{Time: 1})
	states, _, err := p.run(State{})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	final := states[len(states)-1]
	if !scalar.EqualWithinAbs(final.Vel.Z, 0.5, 1e-9) {
		t.Fatalf("velocity got %f exp 0.5", final.Vel.Z)
	}
	if !scalar.EqualWithinAbs(final.Pos.Z, 1./6, 1e-9) {
		t.Fatalf("height got %f exp %f", final.Pos.Z, 1./6)
	}
}
