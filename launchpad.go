package rfs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Launchpad describes the launch rail.
type Launchpad struct {
	railLength      float64
	elevation       float64 // rad, from the horizontal
	heading         float64 // rad, clockwise from north
	railUnit        r3.Vec
	holdDownForce   float64 // N, 0 if unclamped
	holdDownRelease float64 // s after ignition, negative if none
}

// NewLaunchpad returns a Launchpad for a rail of the given length (m),
// elevation (degrees above the horizon) and heading (degrees from north).
func NewLaunchpad(railLength, elevationDeg, headingDeg float64) (*Launchpad, error) {
	if railLength <= 0 {
		return nil, invalidf("rail length must be positive, got %f", railLength)
	}
	if elevationDeg <= 0 || elevationDeg > 90 {
		return nil, invalidf("rail elevation must be in (0, 90] degrees, got %f", elevationDeg)
	}
	lp := &Launchpad{
		railLength:      railLength,
		elevation:       elevationDeg * deg2rad,
		heading:         Deg2rad(headingDeg),
		holdDownRelease: -1,
	}
	if elevationDeg == 90 {
		lp.elevation = math.Pi / 2
		lp.railUnit = r3.Vec{Z: 1}
	} else {
		lp.railUnit = bodyAxis(lp.heading, math.Pi/2-lp.elevation)
	}
	return lp, nil
}

// WithHoldDown returns a copy of the launchpad with a hold-down clamp.
// A zero force with a release time holds the vehicle down until the release
// regardless of thrust; a negative release time means the clamp is never released.
func (lp *Launchpad) WithHoldDown(force, release float64) *Launchpad {
	cpy := *lp
	cpy.holdDownForce = math.Max(force, 0)
	cpy.holdDownRelease = release
	return &cpy
}

// RailLength returns the rail length in m.
func (lp *Launchpad) RailLength() float64 { return lp.railLength }

// Elevation returns the rail elevation in radians.
func (lp *Launchpad) Elevation() float64 { return lp.elevation }

// Heading returns the rail heading in radians.
func (lp *Launchpad) Heading() float64 { return lp.heading }

// AngleToVertical returns the angle between the rail and the vertical.
func (lp *Launchpad) AngleToVertical() float64 { return math.Pi/2 - lp.elevation }

// RailUnit returns the unit vector along the rail, pointing up.
func (lp *Launchpad) RailUnit() r3.Vec { return lp.railUnit }

// HoldDownForce returns the hold-down clamp force.
func (lp *Launchpad) HoldDownForce() float64 { return lp.holdDownForce }

// HoldDownRelease returns the clamp release time and whether one is set.
func (lp *Launchpad) HoldDownRelease() (float64, bool) {
	return lp.holdDownRelease, lp.holdDownRelease >= 0
}

func (lp *Launchpad) String() string {
	return fmt.Sprintf("rail %.3fm @ %.1fdeg elev, %.1fdeg hdg", lp.railLength, lp.elevation/deg2rad, lp.heading/deg2rad)
}
