// Package widget implements the touch surfaces of tally: swipeable rows, a
// pull-to-refresh list and a bottom sheet. Each surface owns a controller
// from the gesture package and adds rendering and snap-back animation.
package widget

import (
	"context"
	"image"
	"image/color"
	rtrace "runtime/trace"

	"tally.dev/tally/layout"

	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

// Background fills the area of a widget before drawing it.
type Background struct {
	Color color.NRGBA
}

func (b Background) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.Background.Layout").End()

	macro := op.Record(gtx.Ops)
	dims := w(gtx)
	call := macro.Stop()

	paint.FillShape(gtx.Ops, b.Color, clip.Rect{Max: dims.Size}.Op())
	call.Add(gtx.Ops)
	return dims
}

// Separated draws a hairline along the bottom edge of a widget.
type Separated struct {
	Color color.NRGBA
	Width unit.Dp
}

func (s Separated) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	dims := w(gtx)
	sz := dims.Size
	width := max(1, gtx.Dp(s.Width))
	line := clip.Rect{Min: image.Pt(0, sz.Y-width), Max: sz}.Op()
	paint.FillShape(gtx.Ops, s.Color, line)
	return dims
}
