package sweep

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary are the statistics of the apogees of a sweep.
type Summary struct {
	Runs, Failed  int
	Mean, StdDev  float64
	Min, Max      float64
	P05, P50, P95 float64
}

// Summarize returns the apogee statistics of the successful results.
func Summarize(results []Result) Summary {
	var s Summary
	apogees := make([]float64, 0, len(results))
	for _, r := range results {
		s.Runs++
		if r.Err != nil {
			s.Failed++
			continue
		}
		apogees = append(apogees, r.Apogee)
	}
	if len(apogees) == 0 {
		return s
	}
	sort.Float64s(apogees)
	s.Mean, s.StdDev = stat.MeanStdDev(apogees, nil)
	if len(apogees) == 1 {
		s.StdDev = 0
	}
	s.Min, s.Max = apogees[0], apogees[len(apogees)-1]
	s.P05 = stat.Quantile(0.05, stat.Empirical, apogees, nil)
	s.P50 = stat.Quantile(0.5, stat.Empirical, apogees, nil)
	s.P95 = stat.Quantile(0.95, stat.Empirical, apogees, nil)
	return s
}

func (s Summary) String() string {
	if s.Runs == s.Failed {
		return fmt.Sprintf("%d runs, all failed", s.Runs)
	}
	return fmt.Sprintf("%d runs (%d failed): apogee %.1f ± %.1f m [%.1f, %.1f] p05=%.1f p50=%.1f p95=%.1f",
		s.Runs, s.Failed, s.Mean, s.StdDev, s.Min, s.Max, s.P05, s.P50, s.P95)
}
