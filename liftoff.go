package rfs

import (
	"fmt"
	"math"
	"sort"
)

// Liftoff returns the time after ignition at which the thrust first exceeds
// the weight of the rocket along the rail, plus the hold-down clamp force
// while the clamps hold. The instant is interpolated exactly between the
// samples of the motor curves.
func Liftoff(r *Rocket, env *Environment, pad *Launchpad) (float64, error) {
	m := r.motor
	burn := m.BurnTime()
	start := m.thrust.First()
	release, released := pad.HoldDownRelease()
	force := pad.holdDownForce
	if released && force == 0 {
		if release > burn {
			return 0, phaseErr("liftoff", "hold-down release", release, invalidf("the clamps release the rocket %.3fs after burnout at %.3fs", release-burn, burn))
		}
		start = math.Max(start, release)
	}

	// excess returns the thrust in excess of the liftoff threshold. At the
	// release instant, left selects the clamped side of the discontinuity.
	excess := func(t float64, left bool) (float64, float64, error) {
		thrust, err := m.Thrust(t)
		if err != nil {
			return 0, 0, err
		}
		mass := r.DryMass()
		if t < burn {
			prop, err := m.Propellant(t)
			if err != nil {
				return 0, 0, err
			}
			mass += prop
		}
		threshold := mass * env.gravity * pad.railUnit.Z
		if force > 0 && (!released || t < release || (left && t == release)) {
			threshold += force
		}
		return thrust - threshold, thrust / threshold, nil
	}

	grid := liftoffGrid(m, start, burn, release, released)
	peak := 0.
	prev, ratio, err := excess(grid[0], false)
	if err != nil {
		return 0, phaseErr("liftoff", "thrust", grid[0], err)
	}
	if prev > 0 {
		return grid[0], nil
	}
	peak = ratio
	for i := 1; i < len(grid); i++ {
		t0, t1 := grid[i-1], grid[i]
		e0, _, err := excess(t0, false)
		if err != nil {
			return 0, phaseErr("liftoff", "thrust", t0, err)
		}
		e1, ratio, err := excess(t1, true)
		if err != nil {
			return 0, phaseErr("liftoff", "thrust", t1, err)
		}
		peak = math.Max(peak, ratio)
		if e1 <= 0 {
			continue
		}
		if e0 > 0 {
			// Released while the thrust already exceeds the weight.
			return t0, nil
		}
		return t0 + -e0*(t1-t0)/(e1-e0), nil
	}
	return 0, phaseErr("liftoff", fmt.Sprintf("peak thrust-to-weight ratio %.3f below 1", peak), burn, ErrNoLiftoff)
}

// liftoffGrid returns the sorted sample times of both motor curves between start and burnout, with the clamp release.
func liftoffGrid(m *Motor, start, burn, release float64, released bool) []float64 {
	set := map[float64]struct{}{start: {}, burn: {}}
	for _, ts := range [][]float64{m.thrust.ts, m.propellant.ts} {
		for _, t := range ts {
			if t > start && t < burn {
				set[t] = struct{}{}
			}
		}
	}
	if released && release > start && release < burn {
		set[release] = struct{}{}
	}
	grid := make([]float64, 0, len(set))
	for t := range set {
		grid = append(grid, t)
	}
	sort.Float64s(grid)
	return grid
}
