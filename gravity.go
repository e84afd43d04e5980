package rfs

import "math"

// International Gravity Formula 1980 coefficients.
const (
	igf80Equator = 9.780327
	igf80C1      = 0.0052790414
	igf80C2      = 0.0000232718
	igf80C3      = 0.0000001262
	igf80C4      = 0.0000000007
	igf80K1      = 3.15704e-07
	igf80K2      = 2.10269e-09
	igf80K3      = 7.37452e-14
)

// LocalGravity returns the gravitational acceleration at a geodetic latitude
// (degrees) and an altitude above sea level (meters) from the IGF80 formula
// with the free-air correction.
func LocalGravity(latitude, altitude float64) float64 {
	s := math.Sin(latitude * deg2rad)
	s2 := s * s
	surface := igf80Equator * (1 + igf80C1*s2 + igf80C2*s2*s2 + igf80C3*s2*s2*s2 + igf80C4*s2*s2*s2*s2)
	return surface * (1 - (igf80K1-igf80K2*s2)*altitude + igf80K3*altitude*altitude)
}

// AverageGravity returns the mean of the local gravity at the launch altitude
// and at an expected apogee (above the pad).
func AverageGravity(latitude, altitude, expectedApogee float64) float64 {
	return (LocalGravity(latitude, altitude) + LocalGravity(latitude, altitude+expectedApogee)) / 2
}
