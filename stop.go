package rfs

import "fmt"

// Quantity is a state field monitored by a stop condition.
type Quantity uint8

const (
	// QuantityTime is the time since ignition.
	QuantityTime Quantity = iota + 1
	// QuantityHeight is the height above the pad.
	QuantityHeight
	// QuantityVerticalSpeed is the vertical velocity.
	QuantityVerticalSpeed
)

func (q Quantity) String() string {
	switch q {
	case QuantityTime:
		return "time"
	case QuantityHeight:
		return "height"
	case QuantityVerticalSpeed:
		return "vertical speed"
	}
	panic("cannot stringify unknown quantity")
}

func (q Quantity) of(s State) float64 {
	switch q {
	case QuantityTime:
		return s.T
	case QuantityHeight:
		return s.Pos.Z
	case QuantityVerticalSpeed:
		return s.Vel.Z
	}
	panic("unknown quantity")
}

func (q Quantity) set(s *State, v float64) {
	switch q {
	case QuantityTime:
		s.T = v
	case QuantityHeight:
		s.Pos.Z = v
	case QuantityVerticalSpeed:
		s.Vel.Z = v
	}
}

// StopCondition ends a flight phase. The phase integrator interpolates the
// final state to the instant the monitored quantity crosses its target.
type StopCondition interface {
	Quantity() Quantity
	Target(start State) float64 // start is the first state of the phase
	Reached(start, s State) bool
	String() string
}

// Apogee stops when the vertical velocity is no longer positive.
type Apogee struct{}

// Quantity implements the StopCondition interface.
func (Apogee) Quantity() Quantity { return QuantityVerticalSpeed }

// Target implements the StopCondition interface.
func (Apogee) Target(State) float64 { return 0 }

// Reached implements the StopCondition interface.
func (Apogee) Reached(_, s State) bool { return s.Vel.Z <= 0 }

func (Apogee) String() string { return "apogee" }

// Impact stops when the rocket reaches the height of the pad.
type Impact struct{}

// Quantity implements the StopCondition interface.
func (Impact) Quantity() Quantity { return QuantityHeight }

// Target implements the StopCondition interface.
func (Impact) Target(State) float64 { return 0 }

// Reached implements the StopCondition interface.
func (Impact) Reached(_, s State) bool { return s.Pos.Z <= 0 }

func (Impact) String() string { return "impact" }

// BelowAltitude stops when the height falls to the given value.
type BelowAltitude struct {
	Height float64
}

// Quantity implements the StopCondition interface.
func (BelowAltitude) Quantity() Quantity { return QuantityHeight }

// Target implements the StopCondition interface.
func (c BelowAltitude) Target(State) float64 { return c.Height }

// Reached implements the StopCondition interface.
func (c BelowAltitude) Reached(_, s State) bool { return s.Pos.Z <= c.Height }

func (c BelowAltitude) String() string { return fmt.Sprintf("below %.2fm", c.Height) }

// AboveAltitude stops when the height rises to the given value.
type AboveAltitude struct {
	Height float64
}

// Quantity implements the StopCondition interface.
func (AboveAltitude) Quantity() Quantity { return QuantityHeight }

// Target implements the StopCondition interface.
func (c AboveAltitude) Target(State) float64 { return c.Height }

// Reached implements the StopCondition interface.
func (c AboveAltitude) Reached(_, s State) bool { return s.Pos.Z >= c.Height }

func (c AboveAltitude) String() string { return fmt.Sprintf("above %.2fm", c.Height) }

// AfterDelay stops once the given duration has elapsed since the start of the phase.
type AfterDelay struct {
	Delay float64
}

// Quantity implements the StopCondition interface.
func (AfterDelay) Quantity() Quantity { return QuantityTime }

// Target implements the StopCondition interface.
func (c AfterDelay) Target(start State) float64 { return start.T + c.Delay }

// Reached implements the StopCondition interface.
func (c AfterDelay) Reached(start, s State) bool { return s.T >= start.T+c.Delay }

func (c AfterDelay) String() string { return fmt.Sprintf("after %.3fs", c.Delay) }

// AtTime stops at an absolute time since ignition.
type AtTime struct {
	Time float64
}

// Quantity implements the StopCondition interface.
func (AtTime) Quantity() Quantity { return QuantityTime }

// Target implements the StopCondition interface.
func (c AtTime) Target(State) float64 { return c.Time }

// Reached implements the StopCondition interface.
func (c AtTime) Reached(_, s State) bool { return s.T >= c.Time }

func (c AtTime) String() string { return fmt.Sprintf("at t=%.3fs", c.Time) }
