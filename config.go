package rfs

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// ConfigEnv is the environment variable holding the directory of conf.toml.
const ConfigEnv = "RFS_CONFIG"

// Config holds the settings shared by the binaries.
type Config struct {
	OutputDir string
	Timestep  float64
	Scheme    Scheme
}

// Options returns the simulation options of the configuration.
func (c Config) Options() Options {
	return Options{Timestep: c.Timestep, Scheme: c.Scheme}
}

// LoadConfig reads conf.toml from dir, or from the directory named by
// $RFS_CONFIG when dir is empty.
func LoadConfig(dir string) (Config, error) {
	if dir == "" {
		dir = os.Getenv(ConfigEnv)
	}
	if dir == "" {
		return Config{}, fmt.Errorf("environment variable `%s` is missing or empty", ConfigEnv)
	}
	v := viper.New()
	v.SetConfigName("conf")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.SetDefault("general.output_path", ".")
	v.SetDefault("simulation.timestep", DefaultTimestep)
	v.SetDefault("simulation.scheme", SchemeEuler.String())
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("%s/conf.toml: %w", dir, err)
	}
	scheme, err := ParseScheme(v.GetString("simulation.scheme"))
	if err != nil {
		return Config{}, err
	}
	conf := Config{
		OutputDir: v.GetString("general.output_path"),
		Timestep:  v.GetFloat64("simulation.timestep"),
		Scheme:    scheme,
	}
	if conf.Timestep <= 0 {
		return Config{}, fmt.Errorf("simulation.timestep must be positive, got %f", conf.Timestep)
	}
	return conf, nil
}
