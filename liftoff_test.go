package rfs

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestLiftoff(t *testing.T) {
	for _, tc := range []struct {
		mass, exp float64
	}{
		{15, 0.0059423},
		{0, 0.0018381},
	} {
		sim := spaceport(t, tc.mass, 0.4)
		t0, err := Liftoff(sim.Rocket, sim.Env, sim.Pad)
		if err != nil {
			t.Fatalf("err %s", err)
		}
		if !scalar.EqualWithinAbs(t0, tc.exp, 1e-6) {
			t.Fatalf("[mass=%f] liftoff got %f exp %f", tc.mass, t0, tc.exp)
		}
	}
}

func TestLiftoffHoldDown(t *testing.T) {
	sim := spaceport(t, 15, 0.4)
	r, env := sim.Rocket, sim.Env
	for _, tc := range []struct {
		force, release, exp float64
	}{
		{500, -1, 0.0199485},
		{1500, -1, 0.6129580},
		// Released after the thrust exceeds the weight.
		{5000, 0.1, 0.1},
		// Held until the release regardless of thrust.
		{0, 0.2, 0.2},
		// Released before the thrust exceeds the weight plus the clamp.
		{500, 0.01, 0.01},
		{500, 1, 0.0199485},
	} {
		t0, err := Liftoff(r, env, sim.Pad.WithHoldDown(tc.force, tc.release))
		if err != nil {
			t.Fatalf("[%+v] err %s", tc, err)
		}
		if !scalar.EqualWithinAbs(t0, tc.exp, 1e-6) {
			t.Fatalf("[%+v] liftoff got %f exp %f", tc, t0, tc.exp)
		}
	}
	// More clamping never lifts off earlier.
	prev := 0.
	for force := 0.; force <= 1600; force += 50 {
		t0, err := Liftoff(r, env, sim.Pad.WithHoldDown(force, -1))
		if err != nil {
			t.Fatalf("[force=%f] err %s", force, err)
		}
		if t0 < prev {
			t.Fatalf("liftoff at %f with %f N earlier than %f", t0, force, prev)
		}
		prev = t0
	}
}

func TestLiftoffFailures(t *testing.T) {
	sim := spaceport(t, 15, 0.4)
	var pe *PhaseError
	_, err := Liftoff(sim.Rocket, sim.Env, sim.Pad.WithHoldDown(1e5, -1))
	if !errors.Is(err, ErrNoLiftoff) || !errors.As(err, &pe) || pe.Phase != "liftoff" {
		t.Fatalf("expected a liftoff ErrNoLiftoff, got %v", err)
	}
	heavy := spaceport(t, 1000, 0.4)
	if _, err := Liftoff(heavy.Rocket, heavy.Env, heavy.Pad); !errors.Is(err, ErrNoLiftoff) {
		t.Fatalf("expected ErrNoLiftoff, got %v", err)
	}
	if _, err := Liftoff(sim.Rocket, sim.Env, sim.Pad.WithHoldDown(0, 10)); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("expected ErrInvalidDescriptor for a release after burnout, got %v", err)
	}
}
