package rfs

import (
	"errors"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestCurve(t *testing.T) {
	c, err := NewCurve("thrust", m1520Times, m1520Thrust)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	// Samples are returned exactly.
	for i, ti := range m1520Times {
		if v, _ := c.At(ti); v != m1520Thrust[i] {
			t.Fatalf("At(%f) got %f exp %f", ti, v, m1520Thrust[i])
		}
	}
	if v, _ := c.At(0.5); !scalar.EqualWithinAbs(v, 1684.92748, 1e-5) {
		t.Fatalf("At(0.5) got %f exp %f", v, 1684.92748)
	}
	for _, ti := range []float64{-1e-9, 4.8971} {
		if _, err := c.At(ti); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("At(%f) expected ErrOutOfRange, got %v", ti, err)
		}
	}
	if tm, vm := c.Max(); tm != 1.652 || vm != 1827.11 {
		t.Fatalf("max got (%f, %f)", tm, vm)
	}
	// Copies are returned.
	c.Times()[0] = 42
	if c.First() != 0 {
		t.Fatal("Times should return a copy")
	}
}

func TestCurveInvalid(t *testing.T) {
	for _, tc := range []struct {
		ts, vs []float64
	}{
		{[]float64{0}, []float64{1}},
		{[]float64{0, 1}, []float64{1}},
		{[]float64{0, 1, 1}, []float64{1, 2, 3}},
		{[]float64{1, 0}, []float64{1, 2}},
	} {
		if _, err := NewCurve("bad", tc.ts, tc.vs); !errors.Is(err, ErrInvalidDescriptor) {
			t.Fatalf("%+v: expected ErrInvalidDescriptor, got %v", tc, err)
		}
	}
}

func TestMotor(t *testing.T) {
	m := m1520(t)
	if m.BurnTime() != 4.897 {
		t.Fatalf("burn time got %f exp 4.897", m.BurnTime())
	}
	if !scalar.EqualWithinAbs(m.TotalImpulse(), 7579.0829, 1e-3) {
		t.Fatalf("impulse got %f exp %f", m.TotalImpulse(), 7579.0829)
	}
	if !scalar.EqualWithinAbs(m.AverageThrust(), 1547.699, 1e-3) {
		t.Fatalf("average thrust got %f exp %f", m.AverageThrust(), 1547.699)
	}
	if m.Class() != "M" {
		t.Fatalf("class got %s exp M", m.Class())
	}
	if m.InitialPropellant() != 3.737 {
		t.Fatalf("initial propellant got %f", m.InitialPropellant())
	}
	// Propellant never increases.
	prev := m.InitialPropellant()
	for ti := 0.; ti <= m.BurnTime(); ti += 0.01 {
		p, err := m.Propellant(ti)
		if err != nil {
			t.Fatalf("err %s", err)
		}
		if p > prev {
			t.Fatalf("propellant increases at t=%f", ti)
		}
		prev = p
	}
}

func TestMotorFromImpulse(t *testing.T) {
	m, err := NewMotorFromImpulse("7579M1520", m1520Times, m1520Thrust, 3.737, 2.981)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if p, _ := m.Propellant(0); p != 3.737 {
		t.Fatalf("propellant at ignition got %f exp 3.737", p)
	}
	if p, _ := m.Propellant(m.BurnTime()); p != 0 {
		t.Fatalf("propellant at burnout got %f exp 0", p)
	}
	// Consumed in proportion to the impulse delivered.
	if p, _ := m.Propellant(0.748); !scalar.EqualWithinAbs(p, 3.140293, 1e-5) {
		t.Fatalf("propellant at t=0.748 got %f exp %f", p, 3.140293)
	}
	if _, err := NewMotorFromImpulse("none", []float64{0, 1}, []float64{0, 0}, 1, 1); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("expected ErrInvalidDescriptor for a motor without impulse, got %v", err)
	}
}

func TestMotorInvalid(t *testing.T) {
	ts := []float64{0, 1, 2}
	if _, err := NewMotor("neg", ts, []float64{0, -1, 0}, ts, []float64{1, 0.5, 0}, 1); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("negative thrust: got %v", err)
	}
	if _, err := NewMotor("inc", ts, []float64{0, 1, 0}, ts, []float64{1, 1.5, 0}, 1); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("increasing propellant: got %v", err)
	}
	if _, err := NewMotor("short", ts, []float64{0, 1, 0}, []float64{0, 1}, []float64{1, 0}, 1); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("short propellant curve: got %v", err)
	}
	if _, err := NewMotor("dry", ts, []float64{0, 1, 0}, ts, []float64{1, 0.5, 0}, -1); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("negative dry mass: got %v", err)
	}
}

func TestRocketPropulsion(t *testing.T) {
	r, err := NewRocket(15, m1520(t), 0.015326, ConstantCd(0.4), DefaultRailButtonHeight)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !scalar.EqualWithinAbs(r.DryMass(), 17.981, 1e-12) {
		t.Fatalf("dry mass got %f exp 17.981", r.DryMass())
	}
	thrust, mass, err := r.propulsion(0.748)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if thrust != 1734.25 || !scalar.EqualWithinAbs(mass, 17.981+3.14029, 1e-12) {
		t.Fatalf("propulsion got (%f, %f)", thrust, mass)
	}
	thrust, mass, err = r.propulsion(10)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if thrust != 0 || mass != r.DryMass() {
		t.Fatalf("propulsion after burnout got (%f, %f)", thrust, mass)
	}
	if _, err := NewRocket(1, m1520(t), 0, ConstantCd(0.4), 0); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("null area: got %v", err)
	}
}

func TestDragModels(t *testing.T) {
	if ConstantCd(0.4).Cd(3) != 0.4 {
		t.Fatal("constant Cd")
	}
	tbl, err := NewCdTable([]float64{0, 0.8, 1.2}, []float64{0.4, 0.45, 0.6})
	if err != nil {
		t.Fatalf("err %s", err)
	}
	for _, tc := range []struct{ mach, cd float64 }{{0, 0.4}, {0.4, 0.425}, {1, 0.525}, {1.2, 0.6}, {3, 0.6}, {-1, 0.4}} {
		if cd := tbl.Cd(tc.mach); !scalar.EqualWithinAbs(cd, tc.cd, 1e-12) {
			t.Fatalf("Cd(%f) got %f exp %f", tc.mach, cd, tc.cd)
		}
	}
	if _, err := NewCdTable([]float64{1, 0}, []float64{0.4, 0.5}); !errors.Is(err, ErrInvalidDescriptor) {
		t.Fatalf("unsorted table: got %v", err)
	}
	f := CdFunc(func(m float64) float64 { return 0.3 + 0.1*m })
	if cd := f.Cd(2); !scalar.EqualWithinAbs(cd, 0.5, 1e-12) {
		t.Fatalf("CdFunc got %f", cd)
	}
}
