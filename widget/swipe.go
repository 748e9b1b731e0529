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

// SwipeRow is a list row that can be swiped sideways to reveal and commit an
// action.
type SwipeRow struct {
	Swipe gesture.Swipe

	touch  gesture.Touch
	settle theme.Animation[float32]
}

func NewSwipeRow(caps platform.Capabilities, cfg gesture.SwipeConfig) *SwipeRow {
	r := &SwipeRow{}
	r.Swipe.Config = cfg
	r.touch.Mouse = caps.MouseEmulation
	return r
}

// Update processes pending events and returns the direction of the action
// that was committed, if any.
func (r *SwipeRow) Update(gtx layout.Context) (gesture.Direction, bool) {
	var (
		dir       gesture.Direction
		committed bool
	)
	for _, ev := range r.touch.Events(gtx.Queue) {
		prev := r.Swipe.State()
		if ev.Type == gesture.TouchStart {
			r.settle.Cancel()
		}
		if r.Swipe.Handle(ev) {
			dir, committed = prev.Committed.MustGet(), true
		}
		switch ev.Type {
		case gesture.TouchEnd, gesture.TouchCancel:
			if prev.Offset != 0 {
				r.settle.Settle(gtx, prev.Offset)
			}
		}
	}
	return dir, committed
}

// Offset returns the row's current horizontal offset, including the
// snap-back animation after a release.
func (r *SwipeRow) Offset(gtx layout.Context) float32 {
	if st := r.Swipe.State(); st.Phase != gesture.SwipeIdle {
		return st.Offset
	}
	return r.settle.Value(gtx)
}

// SwipeActions draws what sits underneath a row while it is displaced
// towards dir. progress goes from 0 to 1 as the row approaches the reveal
// threshold.
type SwipeActions func(gtx layout.Context, dir gesture.Direction, progress float32) layout.Dimensions

// Layout lays out the row. actions may be nil.
func (r *SwipeRow) Layout(gtx layout.Context, actions SwipeActions, w layout.Widget) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.SwipeRow.Layout").End()

	r.Update(gtx)
	off := r.Offset(gtx)

	m := op.Record(gtx.Ops)
	dims := w(gtx)
	content := m.Stop()

	defer clip.Rect{Max: dims.Size}.Push(gtx.Ops).Pop()

	if off != 0 && actions != nil {
		dir := gesture.Right
		if off < 0 {
			dir = gesture.Left
		}
		agtx := gtx
		agtx.Constraints = layout.Exact(dims.Size)
		threshold := r.Swipe.Config.WithDefaults().Threshold
		actions(agtx, dir, min(float32(math.Abs(float64(off)))/threshold, 1))
	}

	stack := op.Offset(image.Pt(int(math.Round(float64(off))), 0)).Push(gtx.Ops)
	content.Add(gtx.Ops)
	stack.Pop()

	// Let the surrounding list see the same events, so that vertical drags
	// still scroll it.
	defer pointer.PassOp{}.Push(gtx.Ops).Pop()
	r.touch.Grab = r.Swipe.Dragging()
	r.touch.Add(gtx.Ops)

	return dims
}
