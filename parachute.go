package rfs

import (
	"fmt"
	"strings"
)

// Parachute is a recovery device. Deployment is immediate unless gated by a
// delay after the previous phase and/or a height below which it opens.
type Parachute struct {
	Name     string
	Cd       float64
	Area     float64
	Altitude float64 // deploy below this height, if positive
	Delay    float64 // deploy this long after the previous phase ended, if positive
}

// CdA returns the drag area of the parachute.
func (p Parachute) CdA() float64 { return p.Cd * p.Area }

func (p Parachute) validate() error {
	if p.Cd <= 0 || p.Area <= 0 {
		return invalidf("parachute %q needs a positive Cd and area", p.Name)
	}
	if p.Altitude < 0 || p.Delay < 0 {
		return invalidf("parachute %q has a negative deployment gate", p.Name)
	}
	return nil
}

func (p Parachute) String() string {
	var gates []string
	if p.Delay > 0 {
		gates = append(gates, fmt.Sprintf("after %.2fs", p.Delay))
	}
	if p.Altitude > 0 {
		gates = append(gates, fmt.Sprintf("below %.1fm", p.Altitude))
	}
	if len(gates) == 0 {
		gates = append(gates, "immediately")
	}
	return fmt.Sprintf("%s (CdA=%.4fm^2, deploys %s)", p.Name, p.CdA(), strings.Join(gates, " and "))
}
