package sweep

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the Prometheus metrics of a sweep.
type Collector struct {
	gatherer prometheus.Gatherer

	Simulations *prometheus.CounterVec
	Durations   prometheus.Histogram
	Apogees     prometheus.Histogram
}

// NewCollector registers the sweep metrics against the registerer, the
// global Prometheus registry if nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	sims, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rfs_simulations_total",
		Help: "Total number of simulated flights, labeled by outcome.",
	}, []string{"outcome"}), "rfs_simulations_total")
	if err != nil {
		return nil, err
	}
	durations, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rfs_simulation_duration_seconds",
		Help:    "Wall time of one simulated flight in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 5},
	}), "rfs_simulation_duration_seconds")
	if err != nil {
		return nil, err
	}
	apogees, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rfs_apogee_meters",
		Help:    "Simulated apogee above the pad in meters.",
		Buckets: prometheus.ExponentialBuckets(100, 1.5, 14),
	}), "rfs_apogee_meters")
	if err != nil {
		return nil, err
	}
	return &Collector{gatherer: gatherer, Simulations: sims, Durations: durations, Apogees: apogees}, nil
}

func (c *Collector) observe(res Result, d time.Duration) {
	if c == nil {
		return
	}
	if res.Err != nil {
		c.Simulations.WithLabelValues("error").Inc()
		return
	}
	c.Simulations.WithLabelValues("ok").Inc()
	c.Durations.Observe(d.Seconds())
	c.Apogees.Observe(res.Apogee)
}

// Handler exposes the /metrics handler of the collector.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}
