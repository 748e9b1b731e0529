package gesture

import (
	"testing"

	"tally.dev/tally/container"

	"gioui.org/f32"
)

func TestSessionDeadZone(t *testing.T) {
	var s Session
	s.Begin(f32.Pt(100, 100))

	// Exactly DeadZone pixels isn't enough.
	axis, d := s.Move(f32.Pt(105, 100))
	if axis.Set() {
		t.Fatalf("axis locked at %v within the dead zone", d)
	}
	if d != f32.Pt(5, 0) {
		t.Errorf("delta=%v, want (5,0)", d)
	}
	if s.Consumes(Horizontal) != Pending {
		t.Errorf("Consumes(Horizontal)=%v, want Pending", s.Consumes(Horizontal))
	}

	axis, _ = s.Move(f32.Pt(105.5, 100))
	if got, ok := axis.Get(); !ok || got != Horizontal {
		t.Errorf("axis=%v, want Some(horizontal)", axis)
	}
}

func TestSessionAxisClassification(t *testing.T) {
	tests := []struct {
		to   f32.Point
		want Axis
	}{
		{f32.Pt(-10, 0), Horizontal},
		{f32.Pt(10, 9), Horizontal},
		{f32.Pt(0, 10), Vertical},
		{f32.Pt(0, -10), Vertical},
		// Ties go to vertical.
		{f32.Pt(8, 8), Vertical},
		{f32.Pt(-8, 8), Vertical},
	}
	for _, tt := range tests {
		var s Session
		s.Begin(f32.Pt(0, 0))
		axis, _ := s.Move(tt.to)
		if !container.Is(axis, tt.want) {
			t.Errorf("Move(%v) locked %v, want %v", tt.to, axis, tt.want)
		}
	}
}

func TestSessionAxisSticky(t *testing.T) {
	var s Session
	s.Begin(f32.Pt(0, 0))
	s.Move(f32.Pt(20, 2))
	for _, p := range []f32.Point{{X: 20, Y: 200}, {X: 0, Y: -300}, {X: 0, Y: 0}} {
		axis, d := s.Move(p)
		if !container.Is(axis, Horizontal) {
			t.Fatalf("axis changed to %v after moving to %v", axis, p)
		}
		if d != p {
			t.Errorf("delta=%v, want %v", d, p)
		}
	}
	if s.Consumes(Vertical) != NotApplicable {
		t.Errorf("Consumes(Vertical)=%v, want NotApplicable", s.Consumes(Vertical))
	}
	if s.Consumes(Horizontal) != Applicable {
		t.Errorf("Consumes(Horizontal)=%v, want Applicable", s.Consumes(Horizontal))
	}
}

func TestSessionInactive(t *testing.T) {
	var s Session
	axis, d := s.Move(f32.Pt(50, 50))
	if axis.Set() || d != (f32.Point{}) {
		t.Errorf("Move on inactive session returned %v, %v", axis, d)
	}
}

func TestSessionEnd(t *testing.T) {
	var s Session
	s.Begin(f32.Pt(1, 2))
	s.Move(f32.Pt(1, 30))
	old := s.End()
	if !old.Active() || !container.Is(old.Axis, Vertical) || old.Delta != f32.Pt(0, 28) {
		t.Errorf("End returned %+v", old)
	}
	if s.Active() || s.Moved() || s.Axis.Set() {
		t.Errorf("session not reset after End: %+v", s)
	}

	// A new session starts from scratch.
	s.Begin(f32.Pt(0, 0))
	axis, _ := s.Move(f32.Pt(30, 0))
	if !container.Is(axis, Horizontal) {
		t.Errorf("new session locked %v, want horizontal", axis)
	}
}
