package rfs

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// Curve is a time-ordered table interpolated linearly between samples.
type Curve struct {
	name string
	ts   []float64
	vs   []float64
	pl   interp.PiecewiseLinear
}

// NewCurve returns a Curve from strictly increasing sample times and their values.
func NewCurve(name string, ts, vs []float64) (*Curve, error) {
	if len(ts) != len(vs) {
		return nil, invalidf("%s: %d times for %d values", name, len(ts), len(vs))
	}
	if len(ts) < 2 {
		return nil, invalidf("%s: at least two samples are required", name)
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			return nil, invalidf("%s: sample times must be strictly increasing (t[%d]=%f, t[%d]=%f)", name, i-1, ts[i-1], i, ts[i])
		}
	}
	if !finite(ts...) || !finite(vs...) {
		return nil, invalidf("%s: non-finite sample", name)
	}
	c := &Curve{name: name, ts: append([]float64(nil), ts...), vs: append([]float64(nil), vs...)}
	c.pl.Fit(c.ts, c.vs)
	return c, nil
}

// At returns the interpolated value at t. Sample times return the sample exactly.
func (c *Curve) At(t float64) (float64, error) {
	if t < c.ts[0] || t > c.ts[len(c.ts)-1] {
		return 0, fmt.Errorf("%w: %s at t=%f (samples %f to %f)", ErrOutOfRange, c.name, t, c.ts[0], c.ts[len(c.ts)-1])
	}
	return c.pl.Predict(t), nil
}

// First returns the first sample time.
func (c *Curve) First() float64 { return c.ts[0] }

// Last returns the last sample time.
func (c *Curve) Last() float64 { return c.ts[len(c.ts)-1] }

// Times returns a copy of the sample times.
func (c *Curve) Times() []float64 { return append([]float64(nil), c.ts...) }

// Values returns a copy of the sample values.
func (c *Curve) Values() []float64 { return append([]float64(nil), c.vs...) }

// Max returns the time and value of the largest sample.
func (c *Curve) Max() (t, v float64) {
	t, v = c.ts[0], c.vs[0]
	for i, val := range c.vs {
		if val > v {
			t, v = c.ts[i], val
		}
	}
	return
}

func (c *Curve) String() string {
	return fmt.Sprintf("%s[%d samples, %.3fs-%.3fs]", c.name, len(c.ts), c.First(), c.Last())
}
