package rfs

import (
	"fmt"

	"gonum.org/v1/gonum/interp"
)

// DragModel maps a Mach number to a drag coefficient.
type DragModel interface {
	Cd(mach float64) float64
	String() string
}

// ConstantCd is a drag coefficient independent of the Mach number.
type ConstantCd float64

// Cd implements the DragModel interface.
func (c ConstantCd) Cd(float64) float64 { return float64(c) }

func (c ConstantCd) String() string { return fmt.Sprintf("Cd=%.3f", float64(c)) }

// CdTable interpolates a drag coefficient table linearly in Mach. Outside of
// the table the closest sample is used.
type CdTable struct {
	machs []float64
	pl    interp.PiecewiseLinear
}

// NewCdTable returns a CdTable from strictly increasing Mach numbers.
func NewCdTable(machs, cds []float64) (*CdTable, error) {
	// Validated through NewCurve since Fit panics on bad input.
	if _, err := NewCurve("Cd(Mach)", machs, cds); err != nil {
		return nil, err
	}
	t := &CdTable{machs: append([]float64(nil), machs...)}
	t.pl.Fit(machs, cds)
	return t, nil
}

// Cd implements the DragModel interface.
func (t *CdTable) Cd(mach float64) float64 { return t.pl.Predict(mach) }

func (t *CdTable) String() string {
	return fmt.Sprintf("Cd(Mach %.2f-%.2f)", t.machs[0], t.machs[len(t.machs)-1])
}

// CdFunc is a drag coefficient given as a function of Mach.
type CdFunc func(mach float64) float64

// Cd implements the DragModel interface.
func (f CdFunc) Cd(mach float64) float64 { return f(mach) }

func (f CdFunc) String() string { return "Cd(Mach)" }
