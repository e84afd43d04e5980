package rfs

import (
	"math"
	"testing"
)

// Cesaroni 7579M1520-P.
var (
	m1520Times      = []float64{0, 0.04, 0.082, 0.176, 0.748, 1.652, 2.676, 3.89, 4.399, 4.616, 4.877, 4.897}
	m1520Thrust     = []float64{0, 1427.8, 1706.39, 1620.49, 1734.25, 1827.11, 1715.68, 1423.15, 1404.58, 661.661, 69.649, 0}
	m1520Propellant = []float64{3.737, 3.72292, 3.69047, 3.61337, 3.14029, 2.34658, 1.45221, 0.512779, 0.157939, 0.0473998, 0.000343417, 0}
)

// Aerotech L1390G.
var (
	l1390Times      = []float64{0, 0.02, 0.04, 0.1, 0.2, 0.4, 0.8, 1.1, 2.4, 2.8, 3, 3.18, 3.35, 3.45}
	l1390Thrust     = []float64{0, 100, 1400, 1800, 1500, 1540, 1591, 1641, 1481, 1446, 1500, 830, 100, 0}
	l1390Propellant = []float64{2.475, 2.47449, 2.46691, 2.41837, 2.33495, 2.18124, 1.86462, 1.6195, 0.593463, 0.297477, 0.148524, 0.0424968, 0.00252806, 0}
)

func m1520(t *testing.T) *Motor {
	m, err := NewMotor("7579M1520", m1520Times, m1520Thrust, m1520Times, m1520Propellant, 2.981)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	return m
}

func spaceportEnv(t *testing.T) *Environment {
	env, err := NewEnvironment(86400, 308.15, -0.00817, LocalGravity(32.99, 1401), Wind{})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	return env
}

func spaceportPad(t *testing.T) *Launchpad {
	pad, err := NewLaunchpad(5.1816, 86, 0)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	return pad
}

// spaceport returns the simulation of a 7579M1520 flight at Spaceport America.
func spaceport(t *testing.T, mass, cd float64) *Simulation {
	r, err := NewRocket(mass, m1520(t), 0.015326, ConstantCd(cd), DefaultRailButtonHeight)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	sim, err := NewSimulation(r, spaceportEnv(t), spaceportPad(t), Options{Timestep: DefaultTimestep})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	return sim
}

// ndrt returns the simulation of the 2020 Notre Dame Rocketry Team flight.
func ndrt(t *testing.T, cd float64) *Simulation {
	m, err := NewMotor("L1390G", l1390Times, l1390Thrust, l1390Times, l1390Propellant, 1.958)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	r, err := NewRocket(18.998, m, math.Pi*0.1015*0.1015, ConstantCd(cd), DefaultRailButtonHeight)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	env, err := NewEnvironment(99109, 278.03, StandardLapseRate, LocalGravity(41.775447, 206), Wind{})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	pad, err := NewLaunchpad(3.353, 90, 0)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	sim, err := NewSimulation(r, env, pad, Options{Timestep: DefaultTimestep})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	return sim
}
