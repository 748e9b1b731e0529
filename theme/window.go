package theme

import (
	"context"
	"image"
	rtrace "runtime/trace"
	"time"

	"tally.dev/tally/layout"

	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
)

// NotificationDuration is how long a notification stays on screen.
const NotificationDuration = 2500 * time.Millisecond

type Window struct {
	Theme *Theme

	notification notification
}

type Widget func(win *Window, gtx layout.Context) layout.Dimensions

// Render lays out a frame: the window background, w on top of it, and the
// current notification, if any, on top of everything.
func (win *Window) Render(ops *op.Ops, ev system.FrameEvent, w Widget) {
	defer rtrace.StartRegion(context.Background(), "theme.Window.Render").End()
	gtx := layout.NewContext(ops, ev)

	stack := clip.Rect{Max: gtx.Constraints.Max}.Push(gtx.Ops)
	paint.Fill(gtx.Ops, win.Theme.Palette.Background)
	w(win, gtx)
	win.notification.Layout(win, gtx)
	stack.Pop()
}

// ShowNotification shows msg near the bottom of the window, replacing any
// notification that is currently showing.
func (win *Window) ShowNotification(gtx layout.Context, msg string) {
	win.notification.message = msg
	win.notification.shownAt = gtx.Now
	op.InvalidateOp{}.Add(gtx.Ops)
}

// Notification returns the message of the visible notification.
func (win *Window) Notification(now time.Time) (string, bool) {
	if !win.notification.visible(now) {
		return "", false
	}
	return win.notification.message, true
}

type notification struct {
	message string
	shownAt time.Time
}

func (notif *notification) visible(now time.Time) bool {
	return notif.message != "" && now.Before(notif.shownAt.Add(NotificationDuration))
}

func (notif *notification) Layout(win *Window, gtx layout.Context) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "theme.notification.Layout").End()

	if !notif.visible(gtx.Now) {
		return layout.Dimensions{}
	}

	ngtx := gtx
	ngtx.Constraints.Max.X = min(gtx.Constraints.Max.X-gtx.Dp(32), gtx.Dp(480))
	macro := op.Record(gtx.Ops)
	dims := Bubble(win.Theme, notif.message).Layout(win.Theme, ngtx)
	call := macro.Stop()

	defer op.Offset(image.Pt(gtx.Constraints.Max.X/2-dims.Size.X/2, gtx.Constraints.Max.Y-dims.Size.Y-gtx.Dp(30))).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)

	op.InvalidateOp{At: notif.shownAt.Add(NotificationDuration)}.Add(gtx.Ops)

	return dims
}
