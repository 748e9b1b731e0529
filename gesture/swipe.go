package gesture

import (
	"tally.dev/tally/container"

	"gioui.org/f32"
)

const (
	DefaultSwipeThreshold = 60
	DefaultSwipeMaxOffset = 120
)

type Direction uint8

const (
	Left Direction = iota + 1
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "invalid"
	}
}

type SwipePhase uint8

const (
	SwipeIdle SwipePhase = iota
	SwipeDragging
	SwipeRevealed
)

func (ph SwipePhase) String() string {
	switch ph {
	case SwipeIdle:
		return "idle"
	case SwipeDragging:
		return "dragging"
	case SwipeRevealed:
		return "revealed"
	default:
		return "invalid"
	}
}

type SwipeConfig struct {
	// Threshold is the offset at which an action is revealed and will be
	// committed on release.
	Threshold float32
	// MaxOffset bounds the offset in both directions.
	MaxOffset float32

	// OnSwipeLeft and OnSwipeRight are the row's actions. A direction without
	// an action cannot be dragged into.
	OnSwipeLeft  func()
	OnSwipeRight func()
	// OnReveal, if set, is called whenever the row becomes revealed in a
	// direction. Hosts use it for haptic feedback.
	OnReveal func(Direction)
}

func (cfg SwipeConfig) WithDefaults() SwipeConfig {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultSwipeThreshold
	}
	if cfg.MaxOffset <= 0 {
		cfg.MaxOffset = DefaultSwipeMaxOffset
	}
	return cfg
}

func (cfg SwipeConfig) action(d Direction) func() {
	switch d {
	case Left:
		return cfg.OnSwipeLeft
	case Right:
		return cfg.OnSwipeRight
	default:
		return nil
	}
}

// SwipeState is the visible state of a swipeable row.
type SwipeState struct {
	// Offset is the row's horizontal displacement. Negative values move the
	// row to the left.
	Offset    float32
	Phase     SwipePhase
	Committed container.Option[Direction]
}

// Swipe implements swipe-to-reveal for a single list row. Only horizontal
// sessions are consumed; a session that locks vertically is left to the
// surrounding scroll container.
type Swipe struct {
	Config SwipeConfig

	state    SwipeState
	session  Session
	tracking bool
}

func NewSwipe(cfg SwipeConfig) *Swipe {
	return &Swipe{Config: cfg}
}

func (sw *Swipe) State() SwipeState {
	return sw.state
}

// Dragging reports whether the row is following a pointer.
func (sw *Swipe) Dragging() bool {
	return sw.tracking && sw.session.Moved()
}

// Handle feeds a touch event to the controller. It reports whether the
// event committed an action.
func (sw *Swipe) Handle(ev TouchEvent) bool {
	switch ev.Type {
	case TouchStart:
		sw.Press(ev.Position)
	case TouchMove:
		sw.Drag(ev.Position)
	case TouchEnd:
		_, ok := sw.Release()
		return ok
	case TouchCancel:
		sw.Cancel()
	}
	return false
}

// Press starts a new session at p.
func (sw *Swipe) Press(p f32.Point) {
	sw.session.Begin(p)
	sw.tracking = true
	sw.state = SwipeState{}
}

// Drag moves the tracked pointer to p.
func (sw *Swipe) Drag(p f32.Point) {
	if !sw.tracking {
		return
	}
	_, d := sw.session.Move(p)
	switch sw.session.Consumes(Horizontal) {
	case Pending:
		return
	case NotApplicable:
		sw.tracking = false
		sw.state = SwipeState{}
		return
	}

	cfg := sw.Config.WithDefaults()
	off := clamp(d.X, -cfg.MaxOffset, cfg.MaxOffset)
	if off < 0 && cfg.OnSwipeLeft == nil {
		off = 0
	}
	if off > 0 && cfg.OnSwipeRight == nil {
		off = 0
	}

	prev := sw.state
	next := SwipeState{
		Offset: off,
		Phase:  SwipeDragging,
	}
	switch {
	case off < 0:
		next.Committed = container.Some(Left)
	case off > 0:
		next.Committed = container.Some(Right)
	}
	if abs(off) >= cfg.Threshold {
		next.Phase = SwipeRevealed
	}
	sw.state = next

	if next.Phase == SwipeRevealed && cfg.OnReveal != nil {
		dir := next.Committed.MustGet()
		if prev.Phase != SwipeRevealed || !container.Is(prev.Committed, dir) {
			cfg.OnReveal(dir)
		}
	}
}

// Release ends the session. If the row was revealed, the action bound to the
// revealed direction runs exactly once, before the row resets to idle. It
// returns the direction that was committed, if any.
//
// The action isn't awaited beyond its return; actions that start
// asynchronous work must not block.
func (sw *Swipe) Release() (Direction, bool) {
	if !sw.session.Active() {
		return 0, false
	}
	sw.session.End()
	sw.tracking = false

	st := sw.state
	// Reset after the action has run, even if it panics.
	defer func() { sw.state = SwipeState{} }()

	if st.Phase != SwipeRevealed {
		return 0, false
	}
	dir, ok := st.Committed.Get()
	if !ok {
		return 0, false
	}
	fn := sw.Config.action(dir)
	if fn == nil {
		return 0, false
	}
	fn()
	return dir, true
}

// Cancel discards the session without committing.
func (sw *Swipe) Cancel() {
	sw.session.End()
	sw.tracking = false
	sw.state = SwipeState{}
}
