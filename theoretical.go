package rfs

import "math"

// TheoreticalTimestep is the step of the drag-free speed integration, in seconds.
const TheoreticalTimestep = 0.0005

// MaxTheoreticalAcceleration returns the acceleration at peak thrust of a
// vertical, drag-free flight: an upper bound of the acceleration during the
// burn, assuming the motor performs at or below its curve.
func MaxTheoreticalAcceleration(r *Rocket, gravity float64) (float64, error) {
	t, thrust := r.motor.thrust.Max()
	_, mass, err := r.propulsion(t)
	if err != nil {
		return 0, err
	}
	return thrust/mass - gravity, nil
}

// MaxTheoreticalSpeed returns the speed at burnout of a vertical, drag-free
// flight which never accelerates downward: an upper bound of the speed.
func MaxTheoreticalSpeed(r *Rocket, gravity, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, invalidf("timestep must be positive, got %f", dt)
	}
	v := 0.
	burn := r.motor.BurnTime()
	for t := r.motor.thrust.First(); t < burn; t += dt {
		thrust, mass, err := r.propulsion(t)
		if err != nil {
			return 0, err
		}
		v += math.Max(thrust/mass-gravity, 0) * dt
	}
	return v, nil
}

// TheoreticalLimits are drag-free bounds of a flight.
type TheoreticalLimits struct {
	Acceleration float64 // m/s^2
	Speed        float64 // m/s
	Apogee       float64 // m, drag-free simulation
}

// Limits returns the drag-free bounds of the simulated flight.
func (sim *Simulation) Limits() (TheoreticalLimits, error) {
	var lim TheoreticalLimits
	var err error
	if lim.Acceleration, err = MaxTheoreticalAcceleration(sim.Rocket, sim.Env.gravity); err != nil {
		return lim, err
	}
	if lim.Speed, err = MaxTheoreticalSpeed(sim.Rocket, sim.Env.gravity, TheoreticalTimestep); err != nil {
		return lim, err
	}
	tr, err := sim.ZeroDrag().Ascent()
	if err != nil {
		return lim, err
	}
	lim.Apogee = tr.States[tr.Apogee].Pos.Z
	return lim, nil
}
