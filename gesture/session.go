package gesture

import (
	"tally.dev/tally/container"

	"gioui.org/f32"
)

// DeadZone is the distance, in pixels, that a pointer has to travel along
// either axis before a session commits to an axis.
const DeadZone = 5

type Axis uint8

const (
	Horizontal Axis = iota + 1
	Vertical
)

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "invalid"
	}
}

// Applicability describes whether a session is of interest to a controller
// that only consumes a single axis.
type Applicability uint8

const (
	// Pending means the session hasn't left the dead zone yet.
	Pending Applicability = iota
	Applicable
	// NotApplicable means the session locked to the other axis. The
	// controller must ignore the rest of the session.
	NotApplicable
)

// Session tracks a single touch from press to release. It classifies the
// movement into an axis once, and keeps that axis for its lifetime.
//
// The zero value is an inactive session.
type Session struct {
	Start f32.Point
	Delta f32.Point
	Axis  container.Option[Axis]

	active bool
}

// Begin starts a new session at p, discarding any previous state.
func (s *Session) Begin(p f32.Point) {
	*s = Session{
		Start:  p,
		active: true,
	}
}

// Move updates the session with the pointer's current position. It returns
// the locked axis, which is None while the pointer is still within the dead
// zone, and the raw delta from the start point.
func (s *Session) Move(p f32.Point) (container.Option[Axis], f32.Point) {
	if !s.active {
		return container.None[Axis](), f32.Point{}
	}
	s.Delta = p.Sub(s.Start)
	if !s.Axis.Set() {
		dx, dy := abs(s.Delta.X), abs(s.Delta.Y)
		if max(dx, dy) > DeadZone {
			if dx > dy {
				s.Axis = container.Some(Horizontal)
			} else {
				s.Axis = container.Some(Vertical)
			}
		}
	}
	return s.Axis, s.Delta
}

// Consumes reports whether the session is of interest to a controller that
// only handles movement along axis.
func (s *Session) Consumes(axis Axis) Applicability {
	locked, ok := s.Axis.Get()
	switch {
	case !ok:
		return Pending
	case locked == axis:
		return Applicable
	default:
		return NotApplicable
	}
}

// Moved reports whether the session ever left the dead zone.
func (s *Session) Moved() bool {
	return s.Axis.Set()
}

func (s *Session) Active() bool {
	return s.active
}

// End finalizes the session. It returns the state as it was before being
// discarded.
func (s *Session) End() Session {
	old := *s
	*s = Session{}
	return old
}
