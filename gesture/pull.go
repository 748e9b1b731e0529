package gesture

import (
	"context"

	"tally.dev/tally/mysync"

	"gioui.org/f32"
)

const (
	DefaultPullThreshold = 80
	DefaultPullDamping   = 0.4
	DefaultPullMax       = 120
	// DefaultPullSpinner is the distance at which the indicator is held while
	// a refresh is in flight.
	DefaultPullSpinner = 50
)

type PullPhase uint8

const (
	PullIdle PullPhase = iota
	PullPulling
	PullRefreshing
)

func (ph PullPhase) String() string {
	switch ph {
	case PullIdle:
		return "idle"
	case PullPulling:
		return "pulling"
	case PullRefreshing:
		return "refreshing"
	default:
		return "invalid"
	}
}

type PullConfig struct {
	// Threshold is the damped distance that has to be reached to trigger a
	// refresh.
	Threshold float32
	// Damping scales raw pointer movement into pull distance.
	Damping float32
	// MaxPull caps the pull distance while pulling.
	MaxPull float32
	// SpinnerDistance is the distance the indicator is pinned to while
	// refreshing. It is independent of MaxPull.
	SpinnerDistance float32

	// OnRefresh is run on its own goroutine when a pull is released past
	// the threshold.
	OnRefresh func(ctx context.Context) error
	// Invalidate, if set, is called from the refresh goroutine once
	// OnRefresh has returned.
	Invalidate func()
}

func (cfg PullConfig) WithDefaults() PullConfig {
	if cfg.Threshold <= 0 {
		cfg.Threshold = DefaultPullThreshold
	}
	if cfg.Damping <= 0 {
		cfg.Damping = DefaultPullDamping
	}
	if cfg.MaxPull <= 0 {
		cfg.MaxPull = DefaultPullMax
	}
	if cfg.SpinnerDistance <= 0 {
		cfg.SpinnerDistance = DefaultPullSpinner
	}
	return cfg
}

type PullState struct {
	Distance   float32
	Refreshing bool
	Phase      PullPhase
}

// Pull implements pull-to-refresh for one scroll container.
type Pull struct {
	Config PullConfig

	state   PullState
	session Session
	// armed is set when a session started at the top of the container and
	// hasn't been rejected since.
	armed   bool
	refresh *mysync.Future[error]
}

func NewPull(cfg PullConfig) *Pull {
	return &Pull{Config: cfg}
}

func (pl *Pull) State() PullState {
	return pl.state
}

// Pulling reports whether the indicator is following a pointer.
func (pl *Pull) Pulling() bool {
	return pl.state.Phase == PullPulling
}

// Handle feeds a touch event to the controller. atTop reports whether the
// container is scrolled to exactly its top. It reports whether the event
// started a refresh.
func (pl *Pull) Handle(ctx context.Context, ev TouchEvent, atTop bool) bool {
	switch ev.Type {
	case TouchStart:
		pl.Press(ev.Position, atTop)
	case TouchMove:
		pl.Drag(ev.Position, atTop)
	case TouchEnd:
		return pl.Release(ctx)
	case TouchCancel:
		pl.Cancel()
	}
	return false
}

// Press starts a session at p. Sessions only arm when the container is at
// its top and no refresh is in flight.
func (pl *Pull) Press(p f32.Point, atTop bool) {
	if pl.state.Refreshing {
		return
	}
	pl.state = PullState{}
	if !atTop {
		pl.armed = false
		pl.session.End()
		return
	}
	pl.session.Begin(p)
	pl.armed = true
}

// Drag moves the tracked pointer to p.
func (pl *Pull) Drag(p f32.Point, atTop bool) {
	if pl.state.Refreshing || !pl.armed {
		return
	}
	_, d := pl.session.Move(p)
	switch pl.session.Consumes(Vertical) {
	case Pending:
		return
	case NotApplicable:
		pl.armed = false
		pl.state = PullState{}
		return
	}
	if !atTop && pl.state.Distance == 0 {
		// The container scrolled away from the top; nothing to grow.
		return
	}

	cfg := pl.Config.WithDefaults()
	dist := clamp(d.Y*cfg.Damping, 0, cfg.MaxPull)
	if !atTop && dist > pl.state.Distance {
		dist = pl.state.Distance
	}
	pl.state.Distance = dist
	if dist > 0 {
		pl.state.Phase = PullPulling
	} else {
		pl.state.Phase = PullIdle
	}
}

// Release ends the session and starts a refresh if the pull distance
// reached the threshold. It reports whether a refresh was started.
func (pl *Pull) Release(ctx context.Context) bool {
	if pl.state.Refreshing || !pl.armed {
		return false
	}
	pl.armed = false
	pl.session.End()

	cfg := pl.Config.WithDefaults()
	if pl.state.Distance < cfg.Threshold || cfg.OnRefresh == nil {
		pl.state = PullState{}
		return false
	}

	pl.state = PullState{
		Distance:   cfg.SpinnerDistance,
		Refreshing: true,
		Phase:      PullRefreshing,
	}
	fn := cfg.OnRefresh
	pl.refresh = mysync.Go(func() error { return fn(ctx) }, cfg.Invalidate)
	return true
}

// Cancel discards the current session. An in-flight refresh is unaffected.
func (pl *Pull) Cancel() {
	pl.armed = false
	pl.session.End()
	if !pl.state.Refreshing {
		pl.state = PullState{}
	}
}

// Update checks whether the in-flight refresh has settled. Once it has, the
// controller returns to idle, whatever the outcome, and Update reports true
// along with the refresh's error. The error isn't interpreted; surfacing it
// is up to the caller.
func (pl *Pull) Update() (settled bool, err error) {
	if !pl.state.Refreshing || pl.refresh == nil {
		return false, nil
	}
	ft := pl.refresh
	select {
	case <-ft.Done():
	default:
		return false, nil
	}
	pl.refresh = nil
	pl.state = PullState{}
	// Result re-raises a panicking refresh, after the state has been reset.
	err, _ = ft.Result()
	return true, err
}

// RefreshDone returns a channel that is closed once the in-flight refresh
// has finished, or nil if there is none.
func (pl *Pull) RefreshDone() <-chan struct{} {
	if pl.refresh == nil {
		return nil
	}
	return pl.refresh.Done()
}
