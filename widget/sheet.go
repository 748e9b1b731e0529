package widget

import (
	"context"
	"image"
	"image/color"
	"math"
	rtrace "runtime/trace"

	"tally.dev/tally/f32color"
	"tally.dev/tally/gesture"
	"tally.dev/tally/layout"
	"tally.dev/tally/platform"
	"tally.dev/tally/theme"

	"gioui.org/io/key"
	"gioui.org/io/pointer"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
)

const (
	sheetHandleHeight = unit.Dp(28)
	sheetHandleWidth  = unit.Dp(40)
	sheetHandleBar    = unit.Dp(4)
	sheetCornerRadius = unit.Dp(16)
)

// Sheet is a modal bottom sheet. It can be dismissed by dragging its handle
// down, by tapping the backdrop, or by pressing Escape.
type Sheet struct {
	Sheet gesture.Sheet

	Backdrop   color.NRGBA
	Background color.NRGBA
	Handle     color.NRGBA

	handle   gesture.Touch
	backdrop gesture.Click
	settle   theme.Animation[float32]
	keyTag   struct{}
	bodyTag  struct{}
}

func NewSheet(caps platform.Capabilities, cfg gesture.SheetConfig) *Sheet {
	s := &Sheet{
		Backdrop:   color.NRGBA{A: 0x66},
		Background: color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Handle:     color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0x4c},
	}
	s.Sheet.Config = cfg
	s.handle.Mouse = caps.MouseEmulation
	s.handle.Grab = true
	s.backdrop.Foremost = true
	return s
}

func (s *Sheet) Open() {
	s.settle.Cancel()
	s.Sheet.Open()
}

func (s *Sheet) Close() bool {
	return s.Sheet.Close(gesture.CloseExplicit)
}

// Update processes pending events and reports whether the sheet got closed.
func (s *Sheet) Update(gtx layout.Context) bool {
	closed := false
	for _, ev := range s.handle.Events(gtx.Queue) {
		prev := s.Sheet.State()
		if ev.Type == gesture.TouchStart {
			s.settle.Cancel()
		}
		if s.Sheet.Handle(ev) {
			closed = true
			continue
		}
		switch ev.Type {
		case gesture.TouchEnd, gesture.TouchCancel:
			if prev.TranslateY != 0 {
				s.settle.Settle(gtx, prev.TranslateY)
			}
		}
	}

	for _, ev := range s.backdrop.Events(gtx.Queue) {
		if ev.Type == gesture.TypeClick && s.Sheet.Close(gesture.CloseBackdrop) {
			closed = true
		}
	}

	for _, ev := range gtx.Events(&s.keyTag) {
		if ev, ok := ev.(key.Event); ok && ev.Name == "⎋" && ev.State == key.Press {
			if s.Sheet.Close(gesture.CloseExplicit) {
				closed = true
			}
		}
	}
	return closed
}

// TranslateY returns how far the sheet is currently displaced from rest.
func (s *Sheet) TranslateY(gtx layout.Context) float32 {
	if s.Sheet.Dragging() {
		return s.Sheet.State().TranslateY
	}
	return s.settle.Value(gtx)
}

// Layout lays out the sheet over the whole of gtx.Constraints.Max, with w as
// its content. A closed sheet takes up no space.
func (s *Sheet) Layout(gtx layout.Context, w layout.Widget) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "widget.Sheet.Layout").End()

	s.Update(gtx)
	if !s.Sheet.IsOpen() {
		return layout.Dimensions{}
	}

	size := gtx.Constraints.Max
	height := int(math.Round(float64(s.Sheet.Height(float32(size.Y)))))
	fty := s.TranslateY(gtx)
	ty := int(math.Round(float64(fty)))

	defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
	// The backdrop fades out as the sheet is dragged down.
	fade := float32(1)
	if height > 0 {
		fade = 1 - fty/float32(height)
	}
	paint.Fill(gtx.Ops, f32color.MulAlpha(s.Backdrop, fade))
	s.backdrop.Add(gtx.Ops)
	key.InputOp{Tag: &s.keyTag, Keys: "⎋"}.Add(gtx.Ops)
	defer op.Offset(image.Pt(0, size.Y-height+ty)).Push(gtx.Ops).Pop()

	r := gtx.Dp(sheetCornerRadius)
	body := clip.RRect{Rect: image.Rectangle{Max: image.Pt(size.X, height)}, NE: r, NW: r}
	paint.FillShape(gtx.Ops, s.Background, body.Op(gtx.Ops))

	// Swallow presses on the sheet so they don't reach the backdrop.
	bodyArea := clip.Rect{Max: image.Pt(size.X, height)}.Push(gtx.Ops)
	pointer.InputOp{Tag: &s.bodyTag, Types: pointer.Press | pointer.Release}.Add(gtx.Ops)
	bodyArea.Pop()

	handleH := gtx.Dp(sheetHandleHeight)
	handleArea := clip.Rect{Max: image.Pt(size.X, handleH)}.Push(gtx.Ops)
	s.handle.Add(gtx.Ops)
	handleArea.Pop()

	barW, barH := gtx.Dp(sheetHandleWidth), gtx.Dp(sheetHandleBar)
	bar := image.Rectangle{
		Min: image.Pt((size.X-barW)/2, (handleH-barH)/2),
		Max: image.Pt((size.X+barW)/2, (handleH+barH)/2),
	}
	paint.FillShape(gtx.Ops, s.Handle, clip.UniformRRect(bar, barH/2).Op(gtx.Ops))

	cgtx := gtx
	cgtx.Constraints = layout.Exact(image.Pt(size.X, max(0, height-handleH)))
	stack := op.Offset(image.Pt(0, handleH)).Push(gtx.Ops)
	contentArea := clip.Rect{Max: cgtx.Constraints.Max}.Push(gtx.Ops)
	w(cgtx)
	contentArea.Pop()
	stack.Pop()

	return layout.Dimensions{Size: size}
}
