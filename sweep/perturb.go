package sweep

import (
	"fmt"

	rfs "github.com/werocketry/RocketFlightSim"
)

// Perturbation returns a modified copy of a simulation.
type Perturbation func(*rfs.Simulation) (*rfs.Simulation, error)

// DragScale scales the drag coefficient of the rocket.
func DragScale(k float64) Perturbation {
	return func(sim *rfs.Simulation) (*rfs.Simulation, error) {
		if k < 0 {
			return nil, fmt.Errorf("negative drag scale %f", k)
		}
		base := sim.Rocket.Drag()
		cpy := *sim
		cpy.Rocket = sim.Rocket.WithDrag(rfs.CdFunc(func(mach float64) float64 { return k * base.Cd(mach) }))
		return &cpy, nil
	}
}

// ExtraMass adds dm kg to the structure of the rocket.
func ExtraMass(dm float64) Perturbation {
	return func(sim *rfs.Simulation) (*rfs.Simulation, error) {
		m := sim.Rocket.Mass() + dm
		if m < 0 || m+sim.Rocket.Motor().DryMass() <= 0 {
			return nil, fmt.Errorf("mass change %f leaves no rocket", dm)
		}
		cpy := *sim
		cpy.Rocket = sim.Rocket.WithMass(m)
		return &cpy, nil
	}
}

// WindSpeed replaces the speed of the wind, keeping its heading.
func WindSpeed(speed float64) Perturbation {
	return func(sim *rfs.Simulation) (*rfs.Simulation, error) {
		if speed < 0 {
			return nil, fmt.Errorf("negative wind speed %f", speed)
		}
		w := sim.Env.Wind()
		w.Speed = speed
		cpy := *sim
		cpy.Env = sim.Env.WithWind(w)
		return &cpy, nil
	}
}

// Elevation replaces the rail elevation of the launchpad, in degrees.
func Elevation(deg float64) Perturbation {
	return func(sim *rfs.Simulation) (*rfs.Simulation, error) {
		pad, err := rfs.NewLaunchpad(sim.Pad.RailLength(), deg, rfs.Rad2deg(sim.Pad.Heading()))
		if err != nil {
			return nil, err
		}
		if force, release := sim.Pad.HoldDownForce(), holdDownRelease(sim.Pad); force > 0 || release >= 0 {
			pad = pad.WithHoldDown(force, release)
		}
		cpy := *sim
		cpy.Pad = pad
		return &cpy, nil
	}
}

func holdDownRelease(pad *rfs.Launchpad) float64 {
	if t, ok := pad.HoldDownRelease(); ok {
		return t
	}
	return -1
}

// Vary returns one case per value, each the base simulation perturbed by
// the perturbation of that value.
func Vary(base *rfs.Simulation, name string, values []float64, p func(float64) Perturbation) ([]Case, error) {
	cases := make([]Case, 0, len(values))
	for _, v := range values {
		sim, err := p(v)(base)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", name, v, err)
		}
		cases = append(cases, Case{Name: fmt.Sprintf("%s=%g", name, v), Sim: sim})
	}
	return cases, nil
}

// Grid returns the cases of every combination of the values of two
// perturbations.
func Grid(base *rfs.Simulation, nameA string, as []float64, pa func(float64) Perturbation,
	nameB string, bs []float64, pb func(float64) Perturbation) ([]Case, error) {
	cases := make([]Case, 0, len(as)*len(bs))
	for _, a := range as {
		simA, err := pa(a)(base)
		if err != nil {
			return nil, fmt.Errorf("%s=%g: %w", nameA, a, err)
		}
		sub, err := Vary(simA, nameB, bs, pb)
		if err != nil {
			return nil, err
		}
		for _, c := range sub {
			c.Name = fmt.Sprintf("%s=%g %s", nameA, a, c.Name)
			cases = append(cases, c)
		}
	}
	return cases, nil
}
