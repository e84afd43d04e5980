package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	kitlog "github.com/go-kit/log"
	rfs "github.com/werocketry/RocketFlightSim"
)

const defaultScenario = "~~unset~~"

var (
	scenario string
	verbose  bool
	export   bool
	limits   bool
	useConf  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file to simulate")
	flag.BoolVar(&verbose, "verbose", false, "log every phase")
	flag.BoolVar(&export, "export", false, "export the trajectory to CSV in the output path of $RFS_CONFIG/conf.toml")
	flag.BoolVar(&limits, "limits", false, "also compute the drag-free limits of the flight")
	flag.BoolVar(&useConf, "conf", false, "use the timestep and scheme of $RFS_CONFIG/conf.toml instead of the scenario's")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	logger := kitlog.NewNopLogger()
	if verbose {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	}
	sc, err := rfs.LoadScenario(scenario, logger)
	if err != nil {
		log.Fatal(err)
	}
	var conf rfs.Config
	if useConf || export {
		if conf, err = rfs.LoadConfig(""); err != nil {
			log.Fatal(err)
		}
	}
	if useConf {
		opts := conf.Options()
		opts.Logger = logger
		sc.Simulation.Options = opts
	}
	fmt.Printf("%s (%s)\n%s\n", sc.Name, sc.Mode, sc.Simulation)
	tr, err := sc.Run()
	if err != nil {
		log.Fatal(err)
	}
	for _, ev := range []struct {
		name string
		idx  int
	}{{"liftoff", tr.Liftoff}, {"rail exit", tr.RailClearance}, {"burnout", tr.Burnout}, {"apogee", tr.Apogee}, {"landing", tr.Landing}} {
		if s, ok := tr.Event(ev.idx); ok {
			fmt.Printf("%-10s t=%8.3fs h=%9.2fm v=%7.2fm/s\n", ev.name, s.T, s.Pos.Z, s.Groundspeed())
		}
	}
	for i, idx := range tr.Deployments {
		s, _ := tr.Event(idx)
		fmt.Printf("chute #%d   t=%8.3fs h=%9.2fm v=%7.2fm/s\n", i, s.T, s.Pos.Z, s.Groundspeed())
	}
	if !tr.RailCleared {
		fmt.Println("warning: rail not cleared before burnout")
	}
	fastest := tr.MaxSpeed()
	mach, err := tr.MaxMach(sc.Simulation.Env)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("max speed %.2fm/s (Mach %.3f) at t=%.3fs\n", fastest.Groundspeed(), mach, fastest.T)
	if s, ok := tr.Event(tr.Landing); ok {
		lat, lon := sc.Site.Locate(s.Pos)
		fmt.Printf("landing at %.6f, %.6f, %.1fm from the pad\n", lat, lon, math.Hypot(s.Pos.X, s.Pos.Y))
	}

	if limits {
		lim, err := sc.Simulation.Limits()
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("limits: acceleration %.2fm/s^2, speed %.2fm/s, apogee %.2fm\n", lim.Acceleration, lim.Speed, lim.Apogee)
	}

	if export {
		site := sc.Site
		path, err := tr.Export(rfs.ExportConfig{Filename: sc.Name, OutputDir: conf.OutputDir, Epoch: sc.Epoch, Env: sc.Simulation.Env, Site: &site})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("exported to %s\n", path)
	}
}
