package rfs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// Flight modes of a scenario.
const (
	ModeAscent    = "ascent"
	ModeBallistic = "ballistic"
	ModeRecovery  = "recovery"
	ModeAirbrakes = "airbrakes"
)

// Scenario is a flight described in a TOML file.
type Scenario struct {
	Name       string
	Mode       string
	Epoch      time.Time
	Site       Site
	Simulation *Simulation
	Recovery   []RecoveryStage
	Airbrakes  *Airbrakes
}

// LoadScenario reads a TOML scenario. Values missing from the file take the
// defaults of this loader: standard lapse rate, IGF80 gravity at the site,
// default rail button height and timestep.
func LoadScenario(path string, logger kitlog.Logger) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	v.SetDefault("scenario.name", strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	v.SetDefault("scenario.mode", ModeAscent)
	v.SetDefault("site.lapse_rate", StandardLapseRate)
	v.SetDefault("rocket.rail_button_height", DefaultRailButtonHeight)
	v.SetDefault("simulation.timestep", DefaultTimestep)
	v.SetDefault("simulation.scheme", SchemeEuler.String())
	v.SetDefault("launchpad.hold_down_release", -1)

	sc := &Scenario{Name: v.GetString("scenario.name"), Mode: strings.ToLower(v.GetString("scenario.mode"))}
	if v.IsSet("scenario.epoch") {
		sc.Epoch = confReadJDEorTime(v, "scenario.epoch")
	}

	motor, err := scenarioMotor(v)
	if err != nil {
		return nil, err
	}
	rocket, err := scenarioRocket(v, motor)
	if err != nil {
		return nil, err
	}

	sc.Site = Site{Latitude: v.GetFloat64("site.latitude"), Longitude: v.GetFloat64("site.longitude"), Altitude: v.GetFloat64("site.altitude")}
	gravity := v.GetFloat64("site.gravity")
	if gravity == 0 {
		gravity = sc.Site.Gravity()
	}
	env, err := NewEnvironment(v.GetFloat64("site.pressure"), v.GetFloat64("site.temperature")+CelsiusOffset,
		v.GetFloat64("site.lapse_rate"), gravity, NewWind(v.GetFloat64("site.wind_speed"), v.GetFloat64("site.wind_heading")))
	if err != nil {
		return nil, err
	}

	pad, err := NewLaunchpad(v.GetFloat64("launchpad.rail_length"), v.GetFloat64("launchpad.elevation"), v.GetFloat64("launchpad.heading"))
	if err != nil {
		return nil, err
	}
	if force, release := v.GetFloat64("launchpad.hold_down_force"), v.GetFloat64("launchpad.hold_down_release"); force > 0 || release >= 0 {
		pad = pad.WithHoldDown(force, release)
	}

	scheme, err := ParseScheme(v.GetString("simulation.scheme"))
	if err != nil {
		return nil, err
	}
	if sc.Simulation, err = NewSimulation(rocket, env, pad, Options{Timestep: v.GetFloat64("simulation.timestep"), Scheme: scheme, Logger: logger}); err != nil {
		return nil, err
	}

	for no := 0; v.IsSet(fmt.Sprintf("recovery.%d", no)); no++ {
		key := fmt.Sprintf("recovery.%d", no)
		stage := RecoveryStage{
			Parachute: Parachute{
				Name:     v.GetString(key + ".name"),
				Cd:       v.GetFloat64(key + ".cd"),
				Area:     v.GetFloat64(key + ".area"),
				Altitude: v.GetFloat64(key + ".deploy_altitude"),
				Delay:    v.GetFloat64(key + ".deploy_delay"),
			},
			Timestep: v.GetFloat64(key + ".timestep"),
		}
		if v.IsSet(key + ".stop_below") {
			stage.Stop = BelowAltitude{Height: v.GetFloat64(key + ".stop_below")}
		}
		if err := stage.Parachute.validate(); err != nil {
			return nil, err
		}
		sc.Recovery = append(sc.Recovery, stage)
	}

	if v.IsSet("airbrakes") {
		if sc.Airbrakes, err = NewAirbrakes(v.GetInt("airbrakes.flaps"), v.GetFloat64("airbrakes.flap_area"), v.GetFloat64("airbrakes.cd"),
			v.GetFloat64("airbrakes.max_angle"), v.GetFloat64("airbrakes.deploy_rate"), v.GetFloat64("airbrakes.retract_rate")); err != nil {
			return nil, err
		}
	}

	switch sc.Mode {
	case ModeAscent, ModeBallistic:
	case ModeRecovery:
		if len(sc.Recovery) == 0 {
			return nil, fmt.Errorf("%s: recovery mode without a [recovery.0] parachute", path)
		}
	case ModeAirbrakes:
		if sc.Airbrakes == nil {
			return nil, fmt.Errorf("%s: airbrakes mode without [airbrakes]", path)
		}
	default:
		return nil, fmt.Errorf("%s: unknown mode %q", path, sc.Mode)
	}
	return sc, nil
}

// Run simulates the scenario in its mode.
func (sc *Scenario) Run() (*Trajectory, error) {
	switch sc.Mode {
	case ModeBallistic:
		return sc.Simulation.Ballistic()
	case ModeRecovery:
		return sc.Simulation.Recovery(sc.Recovery...)
	case ModeAirbrakes:
		return sc.Simulation.AirbrakeAscent(sc.Airbrakes, FullDeployment{})
	}
	return sc.Simulation.Ascent()
}

func scenarioMotor(v *viper.Viper) (*Motor, error) {
	name := v.GetString("motor.name")
	thrustT, err := floatSlice(v, "motor.thrust_times")
	if err != nil {
		return nil, err
	}
	thrust, err := floatSlice(v, "motor.thrust")
	if err != nil {
		return nil, err
	}
	if !v.IsSet("motor.propellant") {
		return NewMotorFromImpulse(name, thrustT, thrust, v.GetFloat64("motor.propellant_mass"), v.GetFloat64("motor.dry_mass"))
	}
	massT := thrustT
	if v.IsSet("motor.propellant_times") {
		if massT, err = floatSlice(v, "motor.propellant_times"); err != nil {
			return nil, err
		}
	}
	mass, err := floatSlice(v, "motor.propellant")
	if err != nil {
		return nil, err
	}
	return NewMotor(name, thrustT, thrust, massT, mass, v.GetFloat64("motor.dry_mass"))
}

func scenarioRocket(v *viper.Viper, motor *Motor) (*Rocket, error) {
	var drag DragModel = ConstantCd(v.GetFloat64("rocket.cd"))
	if v.IsSet("rocket.cd_mach") {
		machs, err := floatSlice(v, "rocket.cd_mach")
		if err != nil {
			return nil, err
		}
		cds, err := floatSlice(v, "rocket.cd")
		if err != nil {
			return nil, err
		}
		if drag, err = NewCdTable(machs, cds); err != nil {
			return nil, err
		}
	}
	return NewRocket(v.GetFloat64("rocket.mass"), motor, v.GetFloat64("rocket.area"), drag, v.GetFloat64("rocket.rail_button_height"))
}

func floatSlice(v *viper.Viper, key string) ([]float64, error) {
	raw, ok := v.Get(key).([]interface{})
	if !ok {
		return nil, fmt.Errorf("%s: expected an array of numbers", key)
	}
	out := make([]float64, len(raw))
	for i, r := range raw {
		f, err := cast.ToFloat64E(r)
		if err != nil {
			return nil, fmt.Errorf("%s[%d]: %w", key, i, err)
		}
		out[i] = f
	}
	return out, nil
}

// confReadJDEorTime reads a date given either as a Julian date or as a time.
func confReadJDEorTime(v *viper.Viper, key string) time.Time {
	if jde := v.GetFloat64(key); jde != 0 {
		return julian.JDToTime(jde)
	}
	return v.GetTime(key)
}
