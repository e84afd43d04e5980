package rfs

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Wind is a ground-relative wind constant over the whole flight.
// Heading is the direction the wind blows toward, in radians clockwise from north.
type Wind struct {
	Speed   float64
	Heading float64
}

// NewWind returns a Wind from a speed in m/s and a heading in degrees.
func NewWind(speed, headingDeg float64) Wind {
	return Wind{Speed: speed, Heading: Deg2rad(headingDeg)}
}

// Vector returns the wind velocity in the east/north/up frame.
func (w Wind) Vector() r3.Vec {
	s, c := math.Sincos(w.Heading)
	return r3.Vec{X: w.Speed * s, Y: w.Speed * c}
}

func (w Wind) String() string {
	if w.Speed == 0 {
		return "wind=calm"
	}
	return fmt.Sprintf("wind=%.2fm/s@%.1fdeg", w.Speed, w.Heading/deg2rad)
}
