package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"

	kitlog "github.com/go-kit/log"
	rfs "github.com/werocketry/RocketFlightSim"
	"github.com/werocketry/RocketFlightSim/sweep"
)

const defaultScenario = "~~unset~~"

var (
	scenario   string
	parameter  string
	values     string
	numCPUs    int
	trace      bool
	metricAddr string
)

var perturbations = map[string]func(float64) sweep.Perturbation{
	"cd":        sweep.DragScale,
	"mass":      sweep.ExtraMass,
	"wind":      sweep.WindSpeed,
	"elevation": sweep.Elevation,
}

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file of the nominal flight")
	flag.StringVar(&parameter, "param", "cd", "parameter to vary: cd (scale), mass (kg added), wind (m/s) or elevation (deg)")
	flag.StringVar(&values, "values", "0.8,0.9,1,1.1,1.2", "comma separated values of the parameter")
	flag.IntVar(&numCPUs, "cpus", 0, "number of CPUs to use (set to 0 for max CPUs)")
	flag.BoolVar(&trace, "trace", false, "print the spans of the sweep")
	flag.StringVar(&metricAddr, "metrics", "", "serve the Prometheus metrics on this address after the sweep, e.g. :9090")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	perturb, ok := perturbations[parameter]
	if !ok {
		log.Fatalf("unknown parameter %q", parameter)
	}
	var vs []float64
	for _, raw := range strings.Split(values, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			log.Fatalf("invalid value %q: %s", raw, err)
		}
		vs = append(vs, v)
	}
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))

	sc, err := rfs.LoadScenario(scenario, nil)
	if err != nil {
		log.Fatal(err)
	}
	cases, err := sweep.Vary(sc.Simulation, parameter, vs, perturb)
	if err != nil {
		log.Fatal(err)
	}

	shutdown, err := sweep.InitTracing(trace, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	defer shutdown(context.Background())
	metrics, err := sweep.NewCollector(nil)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	runner := sweep.Runner{Workers: numCPUs, Logger: logger, Metrics: metrics}
	results, err := runner.Run(ctx, cases)
	if err != nil {
		log.Fatal(err)
	}
	for _, res := range results {
		if res.Err != nil {
			fmt.Printf("%-20s failed: %s\n", res.Name, res.Err)
			continue
		}
		fmt.Printf("%-20s apogee %8.2fm at %6.2fs, max %7.2fm/s (Mach %.3f)\n", res.Name, res.Apogee, res.ApogeeTime, res.MaxSpeed, res.MaxMach)
	}
	fmt.Println(sweep.Summarize(results))

	if metricAddr != "" {
		http.Handle("/metrics", metrics.Handler())
		logger.Log("level", "info", "status", "serving metrics", "addr", metricAddr)
		log.Fatal(http.ListenAndServe(metricAddr, nil))
	}
}
