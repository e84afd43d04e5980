package rfs

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestAngles(t *testing.T) {
	for i := 0.0; i < 360; i += 0.5 {
		if a := Rad2deg(Deg2rad(i)); !scalar.EqualWithinAbs(a, i, 1e-10) {
			t.Fatalf("incorrect conversion for %3.2f: %f", i, a)
		}
	}
	if a := Rad2deg(Deg2rad(-359.)); !scalar.EqualWithinAbs(a, 1, 1e-10) {
		t.Fatalf("incorrect conversion for -359: %f", a)
	}
	if a := Rad2deg(Deg2rad(-180.)); !scalar.EqualWithinAbs(a, 180, 1e-10) {
		t.Fatalf("incorrect conversion for -180: %f", a)
	}
	if a := Deg2rad(Rad2deg(-5 * math.Pi / 3)); !scalar.EqualWithinAbs(a, math.Pi/3, 1e-10) {
		t.Fatalf("incorrect conversion for -5pi/3: %f", a)
	}
}

func TestHeadingNormalization(t *testing.T) {
	if w := NewWind(5, -90); !scalar.EqualWithinAbs(w.Heading, 3*math.Pi/2, 1e-12) {
		t.Fatalf("wind heading got %f exp 3pi/2", w.Heading)
	}
	pad, err := NewLaunchpad(5, 85, 450)
	if err != nil {
		t.Fatalf("err %s", err)
	}
	if !scalar.EqualWithinAbs(pad.Heading(), math.Pi/2, 1e-12) {
		t.Fatalf("pad heading got %f exp pi/2", pad.Heading())
	}
	if u := pad.RailUnit(); u.X <= 0 || !scalar.EqualWithinAbs(u.Y, 0, 1e-12) {
		t.Fatalf("rail toward the east got %+v", u)
	}
	if a := Rad2deg(-math.Pi / 2); !scalar.EqualWithinAbs(a, 270, 1e-10) {
		t.Fatalf("Rad2deg(-pi/2) got %f exp 270", a)
	}
}

func TestBodyAxis(t *testing.T) {
	for heading := 0.; heading < 2*math.Pi; heading += math.Pi / 7 {
		for angle := 0.; angle <= math.Pi; angle += math.Pi / 9 {
			u := bodyAxis(heading, angle)
			if !scalar.EqualWithinAbs(r3.Norm(u), 1, 1e-12) {
				t.Fatalf("|bodyAxis(%f, %f)| = %f", heading, angle, r3.Norm(u))
			}
			if !scalar.EqualWithinAbs(u.Z, math.Cos(angle), 1e-12) {
				t.Fatalf("bodyAxis(%f, %f).Z = %f", heading, angle, u.Z)
			}
		}
	}
	if u := bodyAxis(math.Pi/2, math.Pi/2); !scalar.EqualWithinAbs(u.X, 1, 1e-12) || !scalar.EqualWithinAbs(u.Y, 0, 1e-12) {
		t.Fatalf("horizontal toward the east got %+v", u)
	}
	if u := bodyAxis(0, 0); u != (r3.Vec{Z: 1}) {
		t.Fatalf("vertical got %+v", u)
	}
}

func TestMisc(t *testing.T) {
	if u := unitVec(r3.Vec{}); u != (r3.Vec{}) {
		t.Fatal("unit of a nil vector should be nil")
	}
	if u := unitVec(r3.Vec{X: 5, Y: 6, Z: 7}); !scalar.EqualWithinAbs(r3.Norm(u), 1, 1e-12) {
		t.Fatalf("|unit| = %f", r3.Norm(u))
	}
	if lerp(2, 4, 0.25) != 2.5 {
		t.Fatal("lerp")
	}
	if finite(1, math.NaN()) || finite(math.Inf(-1)) || !finite(0, 1e300) {
		t.Fatal("finite")
	}
	s := State{T: 1, Pos: r3.Vec{Z: 10}, Vel: r3.Vec{X: 3, Z: 4}}
	if s.Groundspeed() != 5 || s.Height() != 10 {
		t.Fatalf("derived quantities of %s", s)
	}
	if h := s.Heading(); !scalar.EqualWithinAbs(h, math.Pi/2, 1e-12) {
		t.Fatalf("heading got %f exp pi/2", h)
	}
	if a := s.AngleToVertical(Wind{}); !scalar.EqualWithinAbs(a, math.Acos(0.8), 1e-12) {
		t.Fatalf("angle to vertical got %f", a)
	}
	// Flying with the wind.
	if as := s.Airspeed(NewWind(3, 90)); !scalar.EqualWithinAbs(as, 4, 1e-12) {
		t.Fatalf("airspeed got %f exp 4", as)
	}
	mid := s.interpolate(State{T: 2, Pos: r3.Vec{Z: 20}}, 0.5)
	if mid.T != 1.5 || mid.Pos.Z != 15 || mid.Vel.X != 1.5 {
		t.Fatalf("interpolated %s", mid)
	}
}
