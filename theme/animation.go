package theme

import (
	"math"
	"time"

	"tally.dev/tally/layout"

	"gioui.org/op"
	"golang.org/x/exp/constraints"
	"honnef.co/go/stuff/math/mathutil"
)

// SettleDuration is how long a released surface takes to return to rest.
const SettleDuration = 200 * time.Millisecond

type EasingFunction func(float64) float64

// Animation interpolates between two numbers over time. It is driven by the
// frame time in gtx and invalidates the frame for as long as it is running.
type Animation[T constraints.Integer | constraints.Float] struct {
	StartValue T
	EndValue   T
	StartTime  time.Time
	Duration   time.Duration
	Ease       EasingFunction

	active bool
}

func (anim *Animation[T]) Start(gtx layout.Context, v1, v2 T, d time.Duration, ease EasingFunction) {
	anim.StartValue = v1
	anim.EndValue = v2
	anim.StartTime = gtx.Now
	anim.Duration = d
	anim.Ease = ease
	anim.active = v1 != v2 && d > 0
	op.InvalidateOp{}.Add(gtx.Ops)
}

// Settle animates from v back to zero, the way released gestures return to
// rest.
func (anim *Animation[T]) Settle(gtx layout.Context, v T) {
	anim.Start(gtx, v, 0, SettleDuration, EaseOut(3))
}

func (anim *Animation[T]) Value(gtx layout.Context) T {
	if !anim.active {
		return anim.EndValue
	}

	d := gtx.Now.Sub(anim.StartTime)
	if d >= anim.Duration {
		anim.active = false
		return anim.EndValue
	}

	ratio := anim.Ease(float64(d) / float64(anim.Duration))
	op.InvalidateOp{}.Add(gtx.Ops)
	return mathutil.Lerp(anim.StartValue, anim.EndValue, ratio)
}

func (anim *Animation[T]) Cancel() {
	anim.active = false
}

func (anim *Animation[T]) Done() bool {
	return !anim.active
}

func EaseOut(power int) EasingFunction {
	switch power {
	case 1:
		return func(r float64) float64 { return r }
	case 2:
		return func(r float64) float64 { r = 1 - r; return 1 - r*r }
	case 3:
		return func(r float64) float64 { r = 1 - r; return 1 - r*r*r }
	default:
		return func(r float64) float64 { return 1 - math.Pow(1-r, float64(power)) }
	}
}
