package rfs

import (
	"fmt"
	"math"
)

const (
	// UniversalGasConstant in J/(mol K).
	UniversalGasConstant = 8.3144598
	// MolarMassAir in kg/mol.
	MolarMassAir = 0.0289644
	// GasConstantAir is the specific gas constant of dry air in J/(kg K).
	GasConstantAir = UniversalGasConstant / MolarMassAir
	// HeatCapacityRatioAir is the adiabatic index of dry air.
	HeatCapacityRatioAir = 1.4
	// StandardGravity in m/s^2.
	StandardGravity = 9.80665
	// StandardLapseRate of the troposphere in K/m.
	StandardLapseRate = -0.0065
	// CelsiusOffset converts Celsius to Kelvin.
	CelsiusOffset = 273.15
)

// Environment describes the launch site atmosphere, gravity and wind.
// Altitudes are measured above the launch pad.
type Environment struct {
	pressure    float64 // Pa
	temperature float64 // K
	lapseRate   float64 // K/m
	gravity     float64 // m/s^2
	wind        Wind

	densityMultiplier float64
	densityExponent   float64
}

// NewEnvironment returns an Environment from ground conditions.
func NewEnvironment(pressure, temperature, lapseRate, gravity float64, wind Wind) (*Environment, error) {
	switch {
	case pressure <= 0:
		return nil, invalidf("ground pressure must be positive, got %f Pa", pressure)
	case temperature <= 0:
		return nil, invalidf("ground temperature must be positive, got %f K", temperature)
	case lapseRate == 0:
		return nil, invalidf("lapse rate must be non-zero")
	case gravity <= 0:
		return nil, invalidf("gravity must be positive, got %f", gravity)
	case wind.Speed < 0:
		return nil, invalidf("wind speed must be non-negative, got %f", wind.Speed)
	}
	e := &Environment{pressure: pressure, temperature: temperature, lapseRate: lapseRate, gravity: gravity, wind: wind}
	// rho(h) = P0 / (R T0^(e+1)) * T(h)^e with e = -g/(R L) - 1
	e.densityExponent = -gravity/(GasConstantAir*lapseRate) - 1
	e.densityMultiplier = pressure / (GasConstantAir * math.Pow(temperature, e.densityExponent+1))
	return e, nil
}

// GroundPressure returns the pressure at the pad in Pa.
func (e *Environment) GroundPressure() float64 { return e.pressure }

// GroundTemperature returns the temperature at the pad in K.
func (e *Environment) GroundTemperature() float64 { return e.temperature }

// LapseRate returns the temperature lapse rate in K/m.
func (e *Environment) LapseRate() float64 { return e.lapseRate }

// Gravity returns the local gravitational acceleration.
func (e *Environment) Gravity() float64 { return e.gravity }

// Wind returns the constant wind.
func (e *Environment) Wind() Wind { return e.wind }

// DensityMultiplier returns the multiplier of the fast density formula.
func (e *Environment) DensityMultiplier() float64 { return e.densityMultiplier }

// DensityExponent returns the exponent of the fast density formula.
func (e *Environment) DensityExponent() float64 { return e.densityExponent }

// WithWind returns a copy of the environment with another wind.
func (e *Environment) WithWind(w Wind) *Environment {
	cpy := *e
	cpy.wind = w
	return &cpy
}

// Temperature returns the air temperature at height h.
func (e *Environment) Temperature(h float64) (float64, error) {
	T := e.temperature + e.lapseRate*h
	if T <= 0 {
		return 0, fmt.Errorf("%w: temperature %f K at %f m", ErrAtmosphereBounds, T, h)
	}
	return T, nil
}

// Pressure returns the air pressure at height h.
func (e *Environment) Pressure(h float64) (float64, error) {
	T, err := e.Temperature(h)
	if err != nil {
		return 0, err
	}
	return e.pressure * math.Pow(T/e.temperature, -e.gravity/(GasConstantAir*e.lapseRate)), nil
}

// DensityAt returns the air density for a temperature produced by Temperature.
func (e *Environment) DensityAt(T float64) float64 {
	return e.densityMultiplier * math.Pow(T, e.densityExponent)
}

// Density returns the air density at height h.
func (e *Environment) Density(h float64) (float64, error) {
	T, err := e.Temperature(h)
	if err != nil {
		return 0, err
	}
	return e.DensityAt(T), nil
}

// SpeedOfSound returns the speed of sound for a given air temperature.
func SpeedOfSound(T float64) float64 {
	return math.Sqrt(HeatCapacityRatioAir * GasConstantAir * T)
}

// Mach returns the Mach number of an airspeed at a given air temperature.
func Mach(airspeed, T float64) float64 {
	return airspeed / SpeedOfSound(T)
}

// DynamicPressure returns 0.5 rho v^2.
func DynamicPressure(density, airspeed float64) float64 {
	return 0.5 * density * airspeed * airspeed
}

// air bundles the atmosphere properties at one height.
type air struct {
	temperature float64
	density     float64
}

func (e *Environment) airAt(h float64) (air, error) {
	T, err := e.Temperature(h)
	if err != nil {
		return air{}, err
	}
	return air{temperature: T, density: e.DensityAt(T)}, nil
}

// String implements the Stringer interface.
func (e *Environment) String() string {
	return fmt.Sprintf("P0=%.0fPa T0=%.2fK L=%.5fK/m g=%.5fm/s^2 %s", e.pressure, e.temperature, e.lapseRate, e.gravity, e.wind)
}
