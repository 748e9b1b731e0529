package theme

import (
	"testing"
	"time"

	"tally.dev/tally/layout"

	"gioui.org/op"
)

func TestAnimationValue(t *testing.T) {
	start := time.Unix(1000, 0)
	gtx := layout.Context{Ops: new(op.Ops), Now: start}

	var anim Animation[float32]
	anim.Start(gtx, 0, 100, 100*time.Millisecond, EaseOut(1))
	if anim.Done() {
		t.Fatal("animation done right after starting")
	}

	gtx.Now = start.Add(50 * time.Millisecond)
	if got := anim.Value(gtx); got != 50 {
		t.Errorf("Value at half time = %v, want 50", got)
	}

	gtx.Now = start.Add(time.Second)
	if got := anim.Value(gtx); got != 100 || !anim.Done() {
		t.Errorf("Value after the end = %v (done %t), want 100", got, anim.Done())
	}
}

func TestAnimationSettle(t *testing.T) {
	start := time.Unix(1000, 0)
	gtx := layout.Context{Ops: new(op.Ops), Now: start}

	var anim Animation[float32]
	anim.Settle(gtx, 80)
	gtx.Now = start.Add(SettleDuration / 2)
	if v := anim.Value(gtx); v <= 0 || v >= 80 {
		t.Errorf("Value halfway through settling = %v, want between 0 and 80", v)
	}
	gtx.Now = start.Add(SettleDuration)
	if v := anim.Value(gtx); v != 0 {
		t.Errorf("Value after settling = %v, want 0", v)
	}

	anim.Settle(gtx, 0)
	if !anim.Done() {
		t.Error("settling from rest started an animation")
	}
}

func TestEaseOut(t *testing.T) {
	for power := 1; power <= 4; power++ {
		ease := EaseOut(power)
		if ease(0) != 0 || ease(1) != 1 {
			t.Errorf("EaseOut(%d) endpoints = %v, %v", power, ease(0), ease(1))
		}
		if power > 1 && ease(0.5) <= 0.5 {
			t.Errorf("EaseOut(%d)(0.5)=%v, want > 0.5", power, ease(0.5))
		}
	}
}

func TestNotification(t *testing.T) {
	now := time.Unix(1000, 0)
	gtx := layout.Context{Ops: new(op.Ops), Now: now}
	win := &Window{}

	if _, ok := win.Notification(now); ok {
		t.Error("new window has a notification")
	}
	win.ShowNotification(gtx, "3 new transactions")
	if msg, ok := win.Notification(now.Add(time.Second)); !ok || msg != "3 new transactions" {
		t.Errorf("Notification()=(%q, %t)", msg, ok)
	}
	if _, ok := win.Notification(now.Add(NotificationDuration)); ok {
		t.Error("notification still visible after NotificationDuration")
	}
}
