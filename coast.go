package rfs

// Coast integrates the unpowered flight from init until one of the stop
// conditions holds. The rocket sees the full wind.
func Coast(r *Rocket, env *Environment, init State, opts Options, stops ...StopCondition) ([]State, error) {
	states, _, err := coast(r, env, init, opts, stops...)
	return states, err
}

func coast(r *Rocket, env *Environment, init State, opts Options, stops ...StopCondition) ([]State, int, error) {
	f := newFreeFlight(r, env, 1, attitude{})
	f.att = f.direction(init)
	p, err := newPhase("coast", f, opts, stops...)
	if err != nil {
		return nil, -1, err
	}
	return p.run(init)
}
