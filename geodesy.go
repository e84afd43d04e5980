package rfs

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/globe"
	"github.com/soniakeys/unit"
	"gonum.org/v1/gonum/spatial/r3"
)

// Site is the geodetic location of the launch pad.
type Site struct {
	Latitude  float64 // degrees
	Longitude float64 // degrees, east positive
	Altitude  float64 // m above sea level
}

// Gravity returns the IGF80 gravity at the pad.
func (s Site) Gravity() float64 {
	return LocalGravity(s.Latitude, s.Altitude)
}

// Locate returns the geodetic latitude and longitude (degrees) of a position
// relative to the pad, on the IAU 1976 ellipsoid. The offset is assumed small
// compared to the radius of the Earth.
func (s Site) Locate(pos r3.Vec) (lat, lon float64) {
	φ := unit.AngleFromDeg(s.Latitude)
	sφ, cφ := math.Sincos(φ.Rad())
	a := globe.Earth76.Er * 1000
	e2 := globe.Earth76.Fl * (2 - globe.Earth76.Fl)
	w := 1 - e2*sφ*sφ
	h := s.Altitude + pos.Z
	meridian := a*(1-e2)/math.Pow(w, 1.5) + h
	primeVertical := a/math.Sqrt(w) + h
	dLat := unit.Angle(pos.Y / meridian)
	dLon := unit.Angle(pos.X / (primeVertical * cφ))
	return s.Latitude + dLat.Deg(), s.Longitude + dLon.Deg()
}

func (s Site) String() string {
	return fmt.Sprintf("%.6f, %.6f @ %.0fm", s.Latitude, s.Longitude, s.Altitude)
}
