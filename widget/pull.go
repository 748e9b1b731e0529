package widget

import (
	"context"
	"image"
	"math"
	rtrace "runtime/trace"

	"tally.dev/tally/gesture"
	"tally.dev/tally/layout"
	"tally.dev/tally/platform"
	"tally.dev/tally/theme"

	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
)

// contentFollow is the fraction of the pull distance by which the list
// content follows the indicator.
const contentFollow = 0.3

// PullIndicator describes the pull indicator for a single frame.
type PullIndicator struct {
	Distance float32
	// Progress is the ratio of Distance to the refresh threshold, capped
	// at 1.
	Progress   float32
	Refreshing bool
}

// PullList is a vertical list that triggers a refresh when it is pulled
// down from its top. It also implements gesture.ScrollLocker, so that a
// sheet can keep it from scrolling while open.
type PullList struct {
	Pull gesture.Pull
	List layout.List

	ctx    context.Context
	touch  gesture.Touch
	settle theme.Animation[float32]
	locked int
}

// NewPullList returns a list whose refreshes run with ctx.
func NewPullList(ctx context.Context, caps platform.Capabilities, cfg gesture.PullConfig) *PullList {
	pl := &PullList{ctx: ctx}
	pl.Pull.Config = cfg
	pl.List.Axis = layout.Vertical
	pl.touch.Mouse = caps.MouseEmulation
	return pl
}

// AtTop reports whether the list is scrolled to exactly its top.
func (pl *PullList) AtTop() bool {
	return pl.List.Position.First == 0 && pl.List.Position.Offset == 0
}

func (pl *PullList) LockScroll() {
	pl.locked++
}

func (pl *PullList) UnlockScroll() {
	if pl.locked > 0 {
		pl.locked--
	}
}

func (pl *PullList) ScrollLocked() bool {
	return pl.locked > 0
}

// Update processes pending events. Once a refresh settles, it returns true
// and the refresh's error, if any.
func (pl *PullList) Update(gtx layout.Context) (settled bool, err error) {
	for _, ev := range pl.touch.Events(gtx.Queue) {
		prev := pl.Pull.State()
		if ev.Type == gesture.TouchStart {
			pl.settle.Cancel()
		}
		started := pl.Pull.Handle(pl.ctx, ev, pl.AtTop())
		switch ev.Type {
		case gesture.TouchEnd, gesture.TouchCancel:
			if !started && !prev.Refreshing && prev.Distance != 0 {
				pl.settle.Settle(gtx, prev.Distance)
			}
		}
	}

	settled, err = pl.Pull.Update()
	if settled {
		pl.settle.Settle(gtx, pl.Pull.Config.WithDefaults().SpinnerDistance)
	}
	return settled, err
}

// Distance returns the indicator's current distance, including the
// snap-back animation.
func (pl *PullList) Distance(gtx layout.Context) float32 {
	if st := pl.Pull.State(); st.Phase != gesture.PullIdle {
		return st.Distance
	}
	return pl.settle.Value(gtx)
}

// Layout lays out n list elements below the pull indicator. Update has to be
// called before Layout in every frame.
func (pl *PullList) Layout(gtx layout.Context, indicator func(gtx layout.Context, ind PullIndicator) layout.Dimensions, n int, el layout.ListElement) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.PullList.Layout").End()

	dist := pl.Distance(gtx)
	st := pl.Pull.State()
	size := gtx.Constraints.Max
	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()

	lgtx := gtx
	if pl.ScrollLocked() {
		lgtx.Queue = nil
	}
	shift := int(math.Round(float64(dist * contentFollow)))
	stack := op.Offset(image.Pt(0, shift)).Push(gtx.Ops)
	pl.List.Layout(lgtx, n, el)
	stack.Pop()

	if indicator != nil && (dist > 0 || st.Refreshing) {
		threshold := pl.Pull.Config.WithDefaults().Threshold
		igtx := gtx
		igtx.Constraints.Min = image.Point{}
		ind := PullIndicator{
			Distance:   dist,
			Progress:   min(dist/threshold, 1),
			Refreshing: st.Refreshing,
		}
		m := op.Record(gtx.Ops)
		idims := indicator(igtx, ind)
		call := m.Stop()
		// The indicator slides down from above the list.
		y := int(math.Round(float64(dist))) - idims.Size.Y
		x := (size.X - idims.Size.X) / 2
		stack := op.Offset(image.Pt(x, y)).Push(gtx.Ops)
		call.Add(gtx.Ops)
		stack.Pop()
	}

	if !pl.ScrollLocked() {
		defer pointer.PassOp{}.Push(gtx.Ops).Pop()
		// Keep the list from scrolling while the indicator follows the
		// pointer.
		pl.touch.Grab = pl.Pull.Pulling()
		pl.touch.Add(gtx.Ops)
	}

	return layout.Dimensions{Size: size}
}
