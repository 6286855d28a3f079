package ui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"pkt.systems/pslog"

	"LayerBoard/internal/config"
	"LayerBoard/internal/logx"
	"LayerBoard/internal/state"
)

// Tool selects what a primary-button drag does.
type Tool int

const (
	ToolPen Tool = iota
	ToolHand
)

// handleSize is the hit area, in pixels, around an image corner.
const handleSize = 8

type gesture int

const (
	gestureNone gesture = iota
	gestureDraw
	gestureDrag
	gestureResize
	gesturePan
)

// BoardWidget turns pointer input into store commands and renders the
// latest view.
type BoardWidget struct {
	widget.BaseWidget
	proc   *state.Processor
	canvas config.CanvasConfig
	log    pslog.Logger

	mu         sync.RWMutex
	view       state.View
	tool       Tool
	active     gesture
	panX, panY float32

	OnStatus func(text string)
	unsub    func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

// NewBoardWidget renders proc's views and feeds it pointer input.
func NewBoardWidget(proc *state.Processor, cfg config.CanvasConfig, logger pslog.Logger) *BoardWidget {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	b := &BoardWidget{
		proc:   proc,
		canvas: cfg,
		log:    logger,
		view:   proc.View(),
	}
	b.ExtendBaseWidget(b)
	b.unsub = proc.Subscribe(b.onView)
	return b
}

// Close stops listening for view changes.
func (b *BoardWidget) Close() {
	if b.unsub != nil {
		b.unsub()
	}
}

func (b *BoardWidget) onView(v state.View) {
	b.mu.Lock()
	b.view = v
	b.mu.Unlock()
	fyne.Do(b.Refresh)
}

// View returns the last view received.
func (b *BoardWidget) View() state.View {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.view
}

func (b *BoardWidget) SetTool(tool Tool) {
	b.finish()
	b.mu.Lock()
	b.tool = tool
	b.mu.Unlock()
}

func (b *BoardWidget) Tool() Tool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tool
}

func (b *BoardWidget) setStatus(text string) {
	if b.OnStatus != nil {
		b.OnStatus(text)
	}
}

func (b *BoardWidget) contentPoint(p fyne.Position) state.Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return state.Point{X: p.X - b.panX, Y: p.Y - b.panY}
}

func (b *BoardWidget) setGesture(g gesture) {
	b.mu.Lock()
	b.active = g
	b.mu.Unlock()
}

func (b *BoardWidget) currentGesture() gesture {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p := b.contentPoint(e.Position)
	if b.Tool() == ToolPen {
		st := b.proc.View().Style
		b.proc.Apply(state.StartDrawing{Width: st.Width, Color: st.Color, Point: TweakPoint(st.Width, p)})
		b.setGesture(gestureDraw)
		return
	}
	b.beginHand(p)
}

// beginHand resizes the selected image when a corner handle is hit, drags
// the topmost image under p otherwise, and pans on empty canvas.
func (b *BoardWidget) beginHand(p state.Point) {
	v := b.proc.View()
	if img, ok := v.Image(v.Selected); ok {
		if c := img.Bounds().CornerAt(p, handleSize); c != state.CornerNone {
			b.proc.Apply(state.StartResizing{Corner: c})
			b.setGesture(gestureResize)
			b.setStatus("Resizing " + img.Source.Name)
			return
		}
	}
	if img, ok := v.ImageAt(p); ok {
		logx.WithAction(b.log, img.ID).Debug("image grabbed", "name", img.Source.Name)
		b.proc.Apply(state.SelectImage{ID: img.ID})
		b.proc.Apply(state.StartDragging{})
		b.setGesture(gestureDrag)
		b.setStatus("Moving " + img.Source.Name)
		return
	}
	b.setGesture(gesturePan)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	mv := state.Move{DX: e.Dragged.DX, DY: e.Dragged.DY}
	switch b.currentGesture() {
	case gestureDraw:
		st := b.proc.View().Style
		p := b.contentPoint(e.Position)
		b.proc.Apply(state.PushPoint{Width: st.Width, Color: st.Color, Point: TweakPoint(st.Width, p)})
	case gestureDrag:
		b.proc.Apply(state.DragImage{Move: mv})
	case gestureResize:
		b.proc.Apply(state.ResizeImage{Move: mv})
	case gesturePan:
		b.mu.Lock()
		b.panX += mv.DX
		b.panY += mv.DY
		b.mu.Unlock()
		b.Refresh()
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.finish()
	}
}

func (b *BoardWidget) DragEnd() { b.finish() }

// MouseOut ends any gesture; the matching MouseUp may never arrive.
func (b *BoardWidget) MouseOut() { b.finish() }

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

// finish stops the current gesture. Stop commands are idempotent, so a
// MouseUp followed by DragEnd is harmless.
func (b *BoardWidget) finish() {
	switch b.currentGesture() {
	case gestureDraw:
		b.proc.Apply(state.StopDrawing{})
	case gestureDrag:
		b.proc.Apply(state.StopDragging{})
		b.setStatus("Ready")
	case gestureResize:
		b.proc.Apply(state.StopResizing{})
		b.setStatus("Ready")
	}
	b.setGesture(gestureNone)
}

func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.mu.Lock()
	b.panX += e.Scrolled.DX
	b.panY += e.Scrolled.DY
	b.mu.Unlock()
	b.Refresh()
}

// ResetView returns the pan offset to the origin.
func (b *BoardWidget) ResetView() {
	b.mu.Lock()
	b.panX, b.panY = 0, 0
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) ToggleGrid() {
	b.mu.Lock()
	b.canvas.Grid = !b.canvas.Grid
	b.mu.Unlock()
	b.Refresh()
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return newBoardRenderer(b)
}
