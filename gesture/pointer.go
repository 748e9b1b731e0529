package gesture

import (
	"gioui.org/f32"
	"gioui.org/io/event"
	"gioui.org/io/pointer"
	"gioui.org/op"
)

const (
	// TouchStart is reported when the tracked pointer goes down.
	TouchStart TouchType = iota
	// TouchMove is reported for every movement of the tracked pointer while
	// it is down.
	TouchMove
	// TouchEnd is reported when the tracked pointer is lifted.
	TouchEnd
	// TouchCancel is reported when the system takes the pointer away from
	// us, for example because a scroll gesture grabbed it.
	TouchCancel
)

type TouchType uint8

func (typ TouchType) String() string {
	switch typ {
	case TouchStart:
		return "start"
	case TouchMove:
		return "move"
	case TouchEnd:
		return "end"
	case TouchCancel:
		return "cancel"
	default:
		return "invalid"
	}
}

// TouchEvent is a single-pointer event, stripped of everything the
// controllers don't care about.
type TouchEvent struct {
	Type     TouchType
	Position f32.Point
	Source   pointer.Source
}

// Touch follows a single pointer from press to release and turns Gio's
// pointer events into TouchEvents. Further pointers that go down while one
// is being tracked are ignored.
type Touch struct {
	// Mouse allows mouse drags with the primary button to act like touches.
	Mouse bool
	// Grab requests exclusive delivery of the tracked pointer, canceling it
	// for other handlers such as a surrounding scroll gesture. Set it once
	// the controller has claimed the session.
	Grab bool

	active bool
	// pid is the pointer.ID of the tracked pointer.
	pid pointer.ID
}

// Add the handler to the operation list to receive touch events.
func (t *Touch) Add(ops *op.Ops) {
	pointer.InputOp{
		Tag:   t,
		Grab:  t.Grab && t.active,
		Types: pointer.Press | pointer.Drag | pointer.Release | pointer.Cancel,
	}.Add(ops)
}

// Active reports whether a pointer is currently being tracked.
func (t *Touch) Active() bool {
	return t.active
}

// Events returns the next touch events, if any.
func (t *Touch) Events(q event.Queue) []TouchEvent {
	var events []TouchEvent
	for _, evt := range q.Events(t) {
		e, ok := evt.(pointer.Event)
		if !ok {
			continue
		}
		if ev, ok := t.process(e); ok {
			events = append(events, ev)
		}
	}
	return events
}

func (t *Touch) process(e pointer.Event) (TouchEvent, bool) {
	switch e.Type {
	case pointer.Press:
		if t.active {
			return TouchEvent{}, false
		}
		if e.Source == pointer.Mouse && (!t.Mouse || !e.Buttons.Contain(pointer.ButtonPrimary)) {
			return TouchEvent{}, false
		}
		t.active = true
		t.pid = e.PointerID
		return TouchEvent{Type: TouchStart, Position: e.Position, Source: e.Source}, true

	case pointer.Drag:
		if !t.active || e.PointerID != t.pid {
			return TouchEvent{}, false
		}
		return TouchEvent{Type: TouchMove, Position: e.Position, Source: e.Source}, true

	case pointer.Release:
		if !t.active || e.PointerID != t.pid {
			return TouchEvent{}, false
		}
		t.active = false
		return TouchEvent{Type: TouchEnd, Position: e.Position, Source: e.Source}, true

	case pointer.Cancel:
		// Cancel affects all pointers
		if !t.active {
			return TouchEvent{}, false
		}
		t.active = false
		return TouchEvent{Type: TouchCancel, Source: e.Source}, true
	}
	return TouchEvent{}, false
}

const (
	// TypePress is reported for the first pointer press.
	TypePress ClickType = iota
	// TypeClick is reported when a click action is complete.
	TypeClick
	// TypeCancel is reported when the gesture is cancelled.
	TypeCancel
)

type ClickType uint8

// ClickEvent represent a click action, either a TypePress for the beginning
// of a click or a TypeClick for a completed click.
type ClickEvent struct {
	Type     ClickType
	Position f32.Point
	Source   pointer.Source
}

// Click detects taps on an area, such as the backdrop behind a sheet. Only
// the primary button counts.
type Click struct {
	// Foremost ignores presses for which the handler isn't the foremost
	// one, so that presses on widgets stacked on top of the area don't
	// count.
	Foremost bool

	// hovered tracks whether the pointer is inside the gesture.
	hovered bool
	// entered tracks whether an Enter event has been received.
	entered bool
	pressed bool
	pid     pointer.ID
}

// Add the handler to the operation list to receive click events.
func (c *Click) Add(ops *op.Ops) {
	pointer.InputOp{
		Tag:   c,
		Types: pointer.Press | pointer.Release | pointer.Enter | pointer.Leave | pointer.Cancel,
	}.Add(ops)
}

// Pressed returns whether a pointer is pressing.
func (c *Click) Pressed() bool {
	return c.pressed
}

// Events returns the next click events, if any.
func (c *Click) Events(q event.Queue) []ClickEvent {
	var events []ClickEvent
	for _, evt := range q.Events(c) {
		e, ok := evt.(pointer.Event)
		if !ok {
			continue
		}
		if ev, ok := c.process(e); ok {
			events = append(events, ev)
		}
	}
	return events
}

func (c *Click) process(e pointer.Event) (ClickEvent, bool) {
	switch e.Type {
	case pointer.Press:
		if c.pressed {
			return ClickEvent{}, false
		}
		if e.Source == pointer.Mouse && !e.Buttons.Contain(pointer.ButtonPrimary) {
			return ClickEvent{}, false
		}
		if c.Foremost && e.Priority != pointer.Foremost && e.Priority != pointer.Grabbed {
			return ClickEvent{}, false
		}
		c.pressed = true
		c.pid = e.PointerID
		return ClickEvent{Type: TypePress, Position: e.Position, Source: e.Source}, true

	case pointer.Release:
		if !c.pressed || c.pid != e.PointerID {
			return ClickEvent{}, false
		}
		c.pressed = false
		if !c.entered || c.hovered {
			return ClickEvent{Type: TypeClick, Position: e.Position, Source: e.Source}, true
		}
		return ClickEvent{Type: TypeCancel}, true

	case pointer.Cancel:
		wasPressed := c.pressed
		c.pressed = false
		c.hovered = false
		c.entered = false
		if wasPressed {
			return ClickEvent{Type: TypeCancel}, true
		}

	case pointer.Leave:
		if !c.pressed || c.pid == e.PointerID {
			c.hovered = false
		}

	case pointer.Enter:
		if !c.pressed || c.pid == e.PointerID {
			c.hovered = true
			c.entered = true
		}
	}
	return ClickEvent{}, false
}
