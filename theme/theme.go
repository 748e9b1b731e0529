package theme

import (
	"context"
	"image"
	"image/color"
	rtrace "runtime/trace"

	"tally.dev/tally/layout"

	"gioui.org/font"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
)

type Theme struct {
	Shaper        *text.Shaper
	Palette       Palette
	TextSize      unit.Sp
	TextSizeLarge unit.Sp

	RowHeight  unit.Dp
	RowPadding unit.Dp
}

type Palette struct {
	Background         color.NRGBA
	Foreground         color.NRGBA
	ForegroundDisabled color.NRGBA
	Separator          color.NRGBA

	Income  color.NRGBA
	Expense color.NRGBA

	// Colors of the actions revealed by swiping a row.
	Delete       color.NRGBA
	Recategorize color.NRGBA

	Indicator struct {
		Background color.NRGBA
		Track      color.NRGBA
		Progress   color.NRGBA
	}

	Sheet struct {
		Background color.NRGBA
		Backdrop   color.NRGBA
		Handle     color.NRGBA
		Selected   color.NRGBA
	}

	Notification struct {
		Background color.NRGBA
		Foreground color.NRGBA
	}
}

var DefaultPalette = Palette{
	Background:         rgba(0xFFFFFFFF),
	Foreground:         rgba(0x111111FF),
	ForegroundDisabled: rgba(0x727272FF),
	Separator:          rgba(0xE5E5E5FF),

	Income:  rgba(0x2E7D32FF),
	Expense: rgba(0x111111FF),

	Delete:       rgba(0xD32F2FFF),
	Recategorize: rgba(0x1976D2FF),

	Indicator: struct {
		Background color.NRGBA
		Track      color.NRGBA
		Progress   color.NRGBA
	}{
		Background: rgba(0xFFFFFFFF),
		Track:      rgba(0xDDDDDDFF),
		Progress:   rgba(0x1976D2FF),
	},

	Sheet: struct {
		Background color.NRGBA
		Backdrop   color.NRGBA
		Handle     color.NRGBA
		Selected   color.NRGBA
	}{
		Background: rgba(0xFFFFFFFF),
		Backdrop:   rgba(0x00000066),
		Handle:     rgba(0x9999994C),
		Selected:   rgba(0xE3F2FDFF),
	},

	Notification: struct {
		Background color.NRGBA
		Foreground color.NRGBA
	}{
		Background: rgba(0x323232F0),
		Foreground: rgba(0xFFFFFFFF),
	},
}

func NewTheme(fontCollection []font.FontFace) *Theme {
	return &Theme{
		Palette:       DefaultPalette,
		Shaper:        text.NewShaper(fontCollection),
		TextSize:      14,
		TextSizeLarge: 16,

		RowHeight:  64,
		RowPadding: 16,
	}
}

func rgba(c uint32) color.NRGBA {
	return color.NRGBA{
		A: uint8(c & 0xFF),
		B: uint8(c >> 8 & 0xFF),
		G: uint8(c >> 16 & 0xFF),
		R: uint8(c >> 24 & 0xFF),
	}
}

// ColorTextMaterial returns a text material that paints in c.
func ColorTextMaterial(gtx layout.Context, c color.NRGBA) op.CallOp {
	m := op.Record(gtx.Ops)
	paint.ColorOp{Color: c}.Add(gtx.Ops)
	return m.Stop()
}

type LabelStyle struct {
	Text      string
	Color     color.NRGBA
	TextSize  unit.Sp
	Font      font.Font
	Alignment text.Alignment
	MaxLines  int
}

func Label(th *Theme, txt string) LabelStyle {
	return LabelStyle{
		Text:     txt,
		Color:    th.Palette.Foreground,
		TextSize: th.TextSize,
		MaxLines: 1,
	}
}

func (l LabelStyle) Layout(th *Theme, gtx layout.Context) layout.Dimensions {
	return widget.Label{Alignment: l.Alignment, MaxLines: l.MaxLines}.Layout(gtx, th.Shaper, l.Font, l.TextSize, l.Text, ColorTextMaterial(gtx, l.Color))
}

// BubbleStyle draws text on a rounded, filled background.
type BubbleStyle struct {
	Text            string
	TextSize        unit.Sp
	TextColor       color.NRGBA
	BackgroundColor color.NRGBA
	Padding         unit.Dp
	CornerRadius    unit.Dp
}

func Bubble(th *Theme, s string) BubbleStyle {
	return BubbleStyle{
		Text:            s,
		TextSize:        th.TextSize,
		TextColor:       th.Palette.Notification.Foreground,
		BackgroundColor: th.Palette.Notification.Background,
		Padding:         12,
		CornerRadius:    8,
	}
}

func (bs BubbleStyle) Layout(th *Theme, gtx layout.Context) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "theme.BubbleStyle.Layout").End()

	gtx.Constraints.Min = image.Point{}
	padding := gtx.Dp(bs.Padding)
	lgtx := gtx
	lgtx.Constraints.Max.X = max(0, gtx.Constraints.Max.X-2*padding)

	macro := op.Record(gtx.Ops)
	dims := widget.Label{MaxLines: 2}.Layout(lgtx, th.Shaper, font.Font{}, bs.TextSize, bs.Text, ColorTextMaterial(gtx, bs.TextColor))
	call := macro.Stop()

	total := image.Rectangle{Max: image.Pt(dims.Size.X+2*padding, dims.Size.Y+2*padding)}
	paint.FillShape(gtx.Ops, bs.BackgroundColor, clip.UniformRRect(total, gtx.Dp(bs.CornerRadius)).Op(gtx.Ops))

	stack := op.Offset(image.Pt(padding, padding)).Push(gtx.Ops)
	call.Add(gtx.Ops)
	stack.Pop()

	return layout.Dimensions{
		Baseline: dims.Baseline + padding,
		Size:     total.Max,
	}
}

// ProgressRingStyle draws the pull-to-refresh indicator: a disc with a bar
// that fills up with Progress, or that sweeps back and forth while
// Refreshing.
type ProgressRingStyle struct {
	Size       unit.Dp
	Progress   float32
	Refreshing bool
	Colors     struct {
		Background color.NRGBA
		Track      color.NRGBA
		Progress   color.NRGBA
	}
}

func ProgressRing(th *Theme, progress float32, refreshing bool) ProgressRingStyle {
	return ProgressRingStyle{
		Size:       36,
		Progress:   progress,
		Refreshing: refreshing,
		Colors:     th.Palette.Indicator,
	}
}

func (pr ProgressRingStyle) Layout(gtx layout.Context) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "theme.ProgressRingStyle.Layout").End()

	sz := gtx.Dp(pr.Size)
	r := image.Rectangle{Max: image.Pt(sz, sz)}
	paint.FillShape(gtx.Ops, pr.Colors.Background, clip.Ellipse(r).Op(gtx.Ops))

	inset := sz / 4
	barH := max(2, sz/9)
	track := image.Rect(inset, (sz-barH)/2, sz-inset, (sz+barH)/2)
	paint.FillShape(gtx.Ops, pr.Colors.Track, clip.UniformRRect(track, barH/2).Op(gtx.Ops))

	w := track.Dx()
	bar := track
	if pr.Refreshing {
		// A third of the track, bouncing between its ends.
		seg := w / 3
		period := int64(1_000_000_000)
		t := float64(gtx.Now.UnixNano()%period) / float64(period)
		if t > 0.5 {
			t = 1 - t
		}
		x := track.Min.X + int(2*t*float64(w-seg))
		bar.Min.X, bar.Max.X = x, x+seg
		op.InvalidateOp{}.Add(gtx.Ops)
	} else {
		bar.Max.X = track.Min.X + int(float32(w)*min(max(pr.Progress, 0), 1))
	}
	if !bar.Empty() {
		paint.FillShape(gtx.Ops, pr.Colors.Progress, clip.UniformRRect(bar, barH/2).Op(gtx.Ops))
	}

	return layout.Dimensions{Size: r.Max}
}
