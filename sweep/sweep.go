// Package sweep runs many independent flight simulations in parallel, for
// sensitivity studies and Monte Carlo dispersions.
package sweep

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"time"

	kitlog "github.com/go-kit/log"
	rfs "github.com/werocketry/RocketFlightSim"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Case is one simulation of a sweep.
type Case struct {
	Name string
	Sim  *rfs.Simulation
}

// Result is the outcome of a Case. Err is set if the simulation failed, in
// which case the other fields are zero.
type Result struct {
	Name       string
	Apogee     float64 // m
	ApogeeTime float64 // s
	MaxSpeed   float64 // m/s
	MaxMach    float64
	Err        error
}

// Runner runs the cases of a sweep on a pool of workers.
type Runner struct {
	Workers int // runtime.NumCPU() if zero
	Logger  kitlog.Logger
	Metrics *Collector // optional
}

func (r *Runner) workers(n int) int {
	w := r.Workers
	if w <= 0 {
		w = runtime.NumCPU()
	}
	if w > n {
		w = n
	}
	return w
}

// Run simulates all the cases and returns their results in order. A failed
// simulation does not stop the sweep; its error is in its Result. Run only
// returns an error if the context is done before all cases ran.
func (r *Runner) Run(ctx context.Context, cases []Case) ([]Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	logger = kitlog.With(logger, "subsys", "sweep")
	ctx, span := tracer().Start(ctx, "sweep")
	defer span.End()
	span.SetAttributes(attribute.Int("sweep.cases", len(cases)))

	results := make([]Result, len(cases))
	if len(cases) == 0 {
		return results, nil
	}
	idxChan := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.workers(len(cases)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idxChan {
				results[i] = r.runCase(ctx, cases[i])
			}
		}()
	}
	start := time.Now()
	var err error
feed:
	for i := range cases {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case idxChan <- i:
		case <-ctx.Done():
			err = ctx.Err()
			break feed
		}
	}
	close(idxChan)
	wg.Wait()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Log("level", "warning", "status", "interrupted", "err", err)
		return results, err
	}
	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	span.SetAttributes(attribute.Int("sweep.failed", failed))
	logger.Log("level", "info", "status", "done", "cases", len(cases), "failed", failed, "duration", time.Since(start))
	return results, nil
}

func (r *Runner) runCase(ctx context.Context, c Case) Result {
	_, span := tracer().Start(ctx, "sweep.case")
	defer span.End()
	span.SetAttributes(attribute.String("case.name", c.Name))
	start := time.Now()
	res := simulate(c)
	if res.Err != nil {
		span.RecordError(res.Err)
		span.SetStatus(codes.Error, res.Err.Error())
		if r.Logger != nil {
			r.Logger.Log("level", "warning", "subsys", "sweep", "case", c.Name, "err", res.Err)
		}
	} else {
		span.SetAttributes(attribute.Float64("case.apogee", res.Apogee))
	}
	r.Metrics.observe(res, time.Since(start))
	return res
}

func simulate(c Case) Result {
	res := Result{Name: c.Name}
	if c.Sim == nil {
		res.Err = errors.New("case without a simulation")
		return res
	}
	tr, err := c.Sim.Ascent()
	if err != nil {
		res.Err = err
		return res
	}
	ap, _ := tr.ApogeeState()
	mach, err := tr.MaxMach(c.Sim.Env)
	if err != nil {
		res.Err = err
		return res
	}
	res.Apogee = ap.Pos.Z
	res.ApogeeTime = ap.T
	res.MaxSpeed = tr.MaxSpeed().Groundspeed()
	res.MaxMach = mach
	return res
}
