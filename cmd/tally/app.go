package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	rtrace "runtime/trace"

	"tally.dev/tally/config"
	"tally.dev/tally/container"
	"tally.dev/tally/f32color"
	"tally.dev/tally/gesture"
	"tally.dev/tally/layout"
	"tally.dev/tally/ledger"
	"tally.dev/tally/platform"
	"tally.dev/tally/theme"
	"tally.dev/tally/widget"

	"gioui.org/app"
	"gioui.org/font"
	"gioui.org/font/gofont"
	"gioui.org/io/system"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

const pickerRowHeight = unit.Dp(48)

type actionKind uint8

const (
	actionDelete actionKind = iota + 1
	actionPickCategory
	actionAssignCategory
)

// action is a change requested by a gesture. Gestures commit while the
// list is being laid out, so their effects are queued and applied once the
// frame's layout is done.
type action struct {
	kind     actionKind
	id       uint64
	category string
}

type row struct {
	tx    ledger.Transaction
	swipe *widget.SwipeRow
}

type pickerOption struct {
	category string
	click    gesture.Click
}

type Application struct {
	win    *app.Window
	mwin   *theme.Window
	logger *log.Logger
	store  *ledger.Store
	cfg    *config.Config
	caps   platform.Capabilities

	list  *widget.PullList
	sheet *widget.Sheet
	rows  map[uint64]*row
	order []uint64

	picker struct {
		target  container.Option[uint64]
		options []pickerOption
	}

	actions []action
}

func NewApplication(ctx context.Context, w *app.Window, logger *log.Logger, store *ledger.Store, cfg *config.Config, caps platform.Capabilities) *Application {
	a := &Application{
		win:    w,
		mwin:   &theme.Window{Theme: theme.NewTheme(gofont.Collection())},
		logger: logger,
		store:  store,
		cfg:    cfg,
		caps:   caps,
		rows:   map[uint64]*row{},
	}

	pullCfg := cfg.PullConfig()
	pullCfg.OnRefresh = func(ctx context.Context) error {
		_, err := store.Refresh(ctx)
		return err
	}
	pullCfg.Invalidate = w.Invalidate
	a.list = widget.NewPullList(ctx, caps, pullCfg)

	sheetCfg := cfg.SheetConfig()
	sheetCfg.ScrollLock = a.list
	sheetCfg.OnClose = func(reason gesture.CloseReason) {
		a.logger.Debug("closed category picker", "reason", reason)
		a.picker.target = container.None[uint64]()
	}
	a.sheet = widget.NewSheet(caps, sheetCfg)
	pal := a.mwin.Theme.Palette
	a.sheet.Backdrop = pal.Sheet.Backdrop
	a.sheet.Background = pal.Sheet.Background
	a.sheet.Handle = pal.Sheet.Handle

	for _, cat := range ledger.Categories() {
		a.picker.options = append(a.picker.options, pickerOption{category: cat})
	}

	a.reload()
	return a
}

// reload synchronizes the rows with the store. Rows of transactions that
// still exist are kept, so that their animations carry on.
func (a *Application) reload() {
	txs := a.store.List()
	seen := make(container.Set[uint64], len(txs))
	a.order = a.order[:0]
	for _, tx := range txs {
		seen.Add(tx.ID)
		a.order = append(a.order, tx.ID)
		if r, ok := a.rows[tx.ID]; ok {
			r.tx = tx
			continue
		}
		a.rows[tx.ID] = &row{
			tx:    tx,
			swipe: widget.NewSwipeRow(a.caps, a.swipeConfig(tx.ID)),
		}
	}
	for id := range a.rows {
		if !seen.Has(id) {
			delete(a.rows, id)
		}
	}
}

func (a *Application) swipeConfig(id uint64) gesture.SwipeConfig {
	cfg := a.cfg.SwipeConfig()
	cfg.OnSwipeLeft = func() {
		a.actions = append(a.actions, action{kind: actionDelete, id: id})
	}
	cfg.OnSwipeRight = func() {
		a.actions = append(a.actions, action{kind: actionPickCategory, id: id})
	}
	cfg.OnReveal = func(dir gesture.Direction) {
		// Gio has no haptics API; this is where impact feedback would go.
		if a.caps.Touch {
			a.logger.Debug("haptic feedback", "id", id, "direction", dir)
		}
	}
	return cfg
}

func (a *Application) Run() error {
	var ops op.Ops
	for {
		e := <-a.win.Events()
		switch ev := e.(type) {
		case system.DestroyEvent:
			return ev.Err
		case system.FrameEvent:
			a.mwin.Render(&ops, ev, a.Layout)
			ev.Frame(&ops)
		}
	}
}

func (a *Application) Layout(win *theme.Window, gtx layout.Context) layout.Dimensions {
	defer rtrace.StartRegion(context.Background(), "main.Application.Layout").End()

	if settled, err := a.list.Update(gtx); settled {
		if err != nil {
			if !errors.Is(err, context.Canceled) {
				a.logger.Error("refresh failed", "err", err)
				win.ShowNotification(gtx, "Couldn't refresh: "+err.Error())
			}
		} else {
			n := len(a.order)
			a.reload()
			if added := len(a.order) - n; added > 0 {
				win.ShowNotification(gtx, fmt.Sprintf("%d new transaction(s)", added))
			}
		}
	}

	th := win.Theme
	dims := a.list.Layout(gtx, a.layoutIndicator, len(a.order), func(gtx layout.Context, i int) layout.Dimensions {
		return a.layoutRow(th, gtx, a.rows[a.order[i]])
	})
	if len(a.order) == 0 {
		l := theme.Label(th, "No transactions. Pull down to refresh.")
		l.Color = th.Palette.ForegroundDisabled
		layout.UniformInset(th.RowPadding).Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			return l.Layout(th, gtx)
		})
	}

	a.sheet.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return a.layoutPicker(th, gtx)
	})

	a.apply(win, gtx)
	return dims
}

// apply runs the actions queued during layout.
func (a *Application) apply(win *theme.Window, gtx layout.Context) {
	if len(a.actions) == 0 {
		return
	}
	actions := a.actions
	a.actions = nil

	for _, act := range actions {
		switch act.kind {
		case actionDelete:
			r, ok := a.rows[act.id]
			if err := a.store.Delete(act.id); err != nil {
				a.logger.Warn("couldn't delete transaction", "id", act.id, "err", err)
				continue
			}
			if ok {
				win.ShowNotification(gtx, "Deleted "+r.tx.Merchant)
			}
			a.logger.Info("deleted transaction", "id", act.id)

		case actionPickCategory:
			a.picker.target = container.Some(act.id)
			a.sheet.Open()

		case actionAssignCategory:
			if err := a.store.Recategorize(act.id, act.category); err != nil {
				a.logger.Warn("couldn't recategorize transaction", "id", act.id, "err", err)
			} else {
				a.logger.Info("recategorized transaction", "id", act.id, "category", act.category)
				win.ShowNotification(gtx, "Moved to "+act.category)
			}
			a.sheet.Close()
		}
	}
	a.reload()
	op.InvalidateOp{}.Add(gtx.Ops)
}

func (a *Application) layoutIndicator(gtx layout.Context, ind widget.PullIndicator) layout.Dimensions {
	return theme.ProgressRing(a.mwin.Theme, ind.Progress, ind.Refreshing).Layout(gtx)
}

func (a *Application) layoutRow(th *theme.Theme, gtx layout.Context, r *row) layout.Dimensions {
	return widget.Separated{Color: th.Palette.Separator, Width: 1}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return r.swipe.Layout(gtx,
			func(gtx layout.Context, dir gesture.Direction, progress float32) layout.Dimensions {
				return layoutSwipeAction(th, gtx, dir, progress)
			},
			func(gtx layout.Context) layout.Dimensions {
				return widget.Background{Color: th.Palette.Background}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return layoutTransaction(th, gtx, r.tx)
				})
			})
	})
}

func layoutSwipeAction(th *theme.Theme, gtx layout.Context, dir gesture.Direction, progress float32) layout.Dimensions {
	size := gtx.Constraints.Max
	bg, txt := th.Palette.Delete, "Delete"
	if dir == gesture.Right {
		bg, txt = th.Palette.Recategorize, "Category"
	}
	// The action takes on its full color once releasing would commit it.
	if progress < 1 {
		bg = f32color.Mix(th.Palette.ForegroundDisabled, bg, progress*0.6)
	}
	paint.FillShape(gtx.Ops, bg, clip.Rect{Max: size}.Op())

	l := theme.Label(th, txt)
	l.Color = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	l.Font = font.Font{Weight: font.Bold}
	lgtx := gtx
	lgtx.Constraints.Min = image.Point{}
	m := op.Record(gtx.Ops)
	dims := l.Layout(th, lgtx)
	call := m.Stop()

	// The action sits on the side that the row uncovers.
	pad := gtx.Dp(th.RowPadding)
	x := pad
	if dir == gesture.Left {
		x = size.X - pad - dims.Size.X
	}
	defer op.Offset(image.Pt(x, (size.Y-dims.Size.Y)/2)).Push(gtx.Ops).Pop()
	call.Add(gtx.Ops)
	return layout.Dimensions{Size: size}
}

func layoutTransaction(th *theme.Theme, gtx layout.Context, tx ledger.Transaction) layout.Dimensions {
	gtx.Constraints = layout.Exact(image.Pt(gtx.Constraints.Max.X, gtx.Dp(th.RowHeight)))
	return layout.Inset{Left: th.RowPadding, Right: th.RowPadding, Top: 10, Bottom: 10}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		return layout.Flex{Axis: layout.Horizontal, Alignment: layout.Middle}.Layout(gtx,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Flex{Axis: layout.Vertical}.Layout(gtx,
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						return theme.Label(th, tx.Merchant).Layout(th, gtx)
					}),
					layout.Rigid(func(gtx layout.Context) layout.Dimensions {
						l := theme.Label(th, fmt.Sprintf("%s · %s", tx.Category, tx.Date.Format("Jan 2, 15:04")))
						l.Color = th.Palette.ForegroundDisabled
						l.TextSize = th.TextSize - 2
						return l.Layout(th, gtx)
					}),
				)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := theme.Label(th, formatAmount(tx.Amount))
				l.TextSize = th.TextSizeLarge
				if tx.Amount.IsPositive() {
					l.Color = th.Palette.Income
				} else {
					l.Color = th.Palette.Expense
				}
				return l.Layout(th, gtx)
			}),
		)
	})
}

func (a *Application) layoutPicker(th *theme.Theme, gtx layout.Context) layout.Dimensions {
	id, ok := a.picker.target.Get()
	if !ok {
		return layout.Dimensions{}
	}
	var current string
	if tx, err := a.store.Get(id); err == nil {
		current = tx.Category
	}

	for i := range a.picker.options {
		opt := &a.picker.options[i]
		for _, ev := range opt.click.Events(gtx.Queue) {
			if ev.Type == gesture.TypeClick {
				a.actions = append(a.actions, action{kind: actionAssignCategory, id: id, category: opt.category})
			}
		}
	}

	children := make([]layout.FlexChild, 0, len(a.picker.options)+1)
	children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
		return layout.Inset{Left: th.RowPadding, Right: th.RowPadding, Bottom: 8}.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
			l := theme.Label(th, "Move to category")
			l.TextSize = th.TextSizeLarge
			l.Font = font.Font{Weight: font.Bold}
			return l.Layout(th, gtx)
		})
	}))
	for i := range a.picker.options {
		opt := &a.picker.options[i]
		children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
			size := image.Pt(gtx.Constraints.Max.X, gtx.Dp(pickerRowHeight))
			defer clip.Rect{Max: size}.Push(gtx.Ops).Pop()
			if opt.category == current {
				paint.Fill(gtx.Ops, th.Palette.Sheet.Selected)
			}
			opt.click.Add(gtx.Ops)

			lgtx := gtx
			lgtx.Constraints.Min = image.Point{}
			m := op.Record(gtx.Ops)
			dims := theme.Label(th, opt.category).Layout(th, lgtx)
			call := m.Stop()
			stack := op.Offset(image.Pt(gtx.Dp(th.RowPadding), (size.Y-dims.Size.Y)/2)).Push(gtx.Ops)
			call.Add(gtx.Ops)
			stack.Pop()
			return layout.Dimensions{Size: size}
		}))
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
}

// formatAmount formats an amount of money with an explicit sign.
func formatAmount(d decimal.Decimal) string {
	switch d.Sign() {
	case -1:
		return "−$" + d.Neg().StringFixed(2)
	case 1:
		return "+$" + d.StringFixed(2)
	default:
		return "$" + d.StringFixed(2)
	}
}
