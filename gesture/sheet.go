package gesture

import (
	"golang.org/x/exp/slices"

	"gioui.org/f32"
)

const DefaultSheetDismissThreshold = 100

// DefaultSnapPoint is the sheet height, in percent of the viewport height,
// used when no snap points are configured.
const DefaultSnapPoint = 60

// ScrollLocker prevents the content behind a sheet from scrolling.
type ScrollLocker interface {
	LockScroll()
	UnlockScroll()
}

type CloseReason uint8

const (
	CloseDragged CloseReason = iota + 1
	CloseBackdrop
	CloseExplicit
)

func (r CloseReason) String() string {
	switch r {
	case CloseDragged:
		return "dragged"
	case CloseBackdrop:
		return "backdrop"
	case CloseExplicit:
		return "explicit"
	default:
		return "invalid"
	}
}

type SheetConfig struct {
	// DismissThreshold is the distance the sheet has to be dragged down,
	// regardless of its height, for a release to close it.
	DismissThreshold float32
	// SnapPoints are sheet heights in percent of the viewport height. The
	// largest one bounds the sheet's height.
	SnapPoints []float32

	OnClose    func(CloseReason)
	ScrollLock ScrollLocker
}

func (cfg SheetConfig) WithDefaults() SheetConfig {
	if cfg.DismissThreshold <= 0 {
		cfg.DismissThreshold = DefaultSheetDismissThreshold
	}
	if len(cfg.SnapPoints) == 0 {
		cfg.SnapPoints = []float32{DefaultSnapPoint}
	}
	return cfg
}

type SheetState struct {
	// TranslateY is how far the sheet has been dragged down from its resting
	// position. It is never negative.
	TranslateY float32
	Committed  bool
	Open       bool
}

// Sheet implements drag-to-dismiss for a modal bottom sheet. Drags are only
// accepted from the sheet's handle, and only downwards.
type Sheet struct {
	Config SheetConfig

	state    SheetState
	session  Session
	dragging bool
}

func NewSheet(cfg SheetConfig) *Sheet {
	return &Sheet{Config: cfg}
}

func (sh *Sheet) State() SheetState {
	return sh.state
}

func (sh *Sheet) IsOpen() bool {
	return sh.state.Open
}

// Dragging reports whether the sheet is following a pointer.
func (sh *Sheet) Dragging() bool {
	return sh.dragging && sh.session.Moved()
}

// Height returns the sheet's maximum height for a viewport of the given
// height.
func (sh *Sheet) Height(viewport float32) float32 {
	cfg := sh.Config.WithDefaults()
	return viewport * slices.Max(cfg.SnapPoints) / 100
}

// Open shows the sheet at rest and locks scrolling behind it. Opening an
// open sheet only resets its position.
func (sh *Sheet) Open() {
	wasOpen := sh.state.Open
	sh.session.End()
	sh.dragging = false
	sh.state = SheetState{Open: true}
	if !wasOpen && sh.Config.ScrollLock != nil {
		sh.Config.ScrollLock.LockScroll()
	}
}

// Close closes the sheet, restores scrolling and calls OnClose. Closing a
// closed sheet does nothing. It reports whether the sheet was open.
func (sh *Sheet) Close(reason CloseReason) bool {
	if !sh.state.Open {
		return false
	}
	sh.state.Open = false
	sh.session.End()
	sh.dragging = false
	if sh.Config.ScrollLock != nil {
		sh.Config.ScrollLock.UnlockScroll()
	}
	if sh.Config.OnClose != nil {
		sh.Config.OnClose(reason)
	}
	return true
}

// Handle feeds a touch event from the sheet's handle region to the
// controller. It reports whether the event closed the sheet.
func (sh *Sheet) Handle(ev TouchEvent) bool {
	switch ev.Type {
	case TouchStart:
		sh.Press(ev.Position, true)
	case TouchMove:
		sh.Drag(ev.Position)
	case TouchEnd:
		return sh.Release()
	case TouchCancel:
		sh.Cancel()
	}
	return false
}

// Press starts a session at p. onHandle reports whether p lies within the
// sheet's handle region; presses elsewhere never start a drag.
func (sh *Sheet) Press(p f32.Point, onHandle bool) {
	if !sh.state.Open || !onHandle {
		return
	}
	sh.session.Begin(p)
	sh.dragging = true
	sh.state.TranslateY = 0
}

// Drag moves the tracked pointer to p.
func (sh *Sheet) Drag(p f32.Point) {
	if !sh.dragging {
		return
	}
	_, d := sh.session.Move(p)
	switch sh.session.Consumes(Vertical) {
	case Pending:
		return
	case NotApplicable:
		sh.dragging = false
		sh.state.TranslateY = 0
		return
	}
	sh.state.TranslateY = max(0, d.Y)
}

// Release ends the session. If the sheet was dragged past the dismiss
// threshold it closes, otherwise it returns to rest. It reports whether the
// sheet was closed.
func (sh *Sheet) Release() bool {
	if !sh.dragging {
		return false
	}
	sh.dragging = false
	sh.session.End()

	cfg := sh.Config.WithDefaults()
	if sh.state.TranslateY > cfg.DismissThreshold {
		sh.state.Committed = true
		return sh.Close(CloseDragged)
	}
	sh.state.TranslateY = 0
	return false
}

// Cancel discards the current session and returns the sheet to rest.
func (sh *Sheet) Cancel() {
	sh.dragging = false
	sh.session.End()
	sh.state.TranslateY = 0
}
