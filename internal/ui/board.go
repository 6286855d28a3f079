package ui

import (
	"bytes"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"LayerBoard/internal/state"
)

var (
	gridColor   = color.NRGBA{R: 220, G: 220, B: 220, A: 100}
	handleColor = color.NRGBA{R: 30, G: 120, B: 220, A: 255}
)

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
	images     map[state.ActionID]*canvas.Image
	size       fyne.Size
}

func newBoardRenderer(b *BoardWidget) *boardRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(state.ParseColor(b.canvas.Background)),
		images:     make(map[state.ActionID]*canvas.Image),
	}
	r.rebuild()
	return r
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) Layout(size fyne.Size) {
	r.size = size
	r.background.Resize(size)
	r.rebuild()
}

func (r *boardRenderer) MinSize() fyne.Size {
	return fyne.NewSize(r.board.canvas.Width, r.board.canvas.Height)
}

func (r *boardRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.board)
}

func (r *boardRenderer) Destroy() {}

// rebuild turns the current view into canvas objects: background, grid,
// each layer bottom-up, selection handles, then the stroke being drawn.
func (r *boardRenderer) rebuild() {
	b := r.board
	b.mu.RLock()
	v := b.view
	pan := fyne.NewPos(b.panX, b.panY)
	grid, gridSize := b.canvas.Grid, b.canvas.GridSize
	b.mu.RUnlock()

	objects := []fyne.CanvasObject{r.background}
	if grid && gridSize > 0 {
		objects = append(objects, r.gridLines(gridSize, pan)...)
	}

	seen := make(map[state.ActionID]bool)
	for _, layer := range v.Layers {
		for _, a := range layer.Actions {
			switch a := a.(type) {
			case *state.StrokeAction:
				objects = append(objects, strokeObjects(a, pan, 255)...)
			case *state.ImageAction:
				seen[a.ID] = true
				objects = append(objects, r.imageObject(a, pan))
			}
		}
	}
	for id := range r.images {
		if !seen[id] {
			delete(r.images, id)
		}
	}
	if img, ok := v.Image(v.Selected); ok {
		objects = append(objects, handleObjects(img.Bounds(), pan)...)
	}
	if v.Preview != nil {
		objects = append(objects, strokeObjects(v.Preview, pan, 160)...)
	}
	r.objects = objects
}

func (r *boardRenderer) gridLines(step float32, pan fyne.Position) []fyne.CanvasObject {
	var lines []fyne.CanvasObject
	w, h := r.size.Width, r.size.Height
	startX := mod(pan.X, step)
	startY := mod(pan.Y, step)
	for x := startX; x < w; x += step {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(x, 0)
		line.Position2 = fyne.NewPos(x, h)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	for y := startY; y < h; y += step {
		line := canvas.NewLine(gridColor)
		line.Position1 = fyne.NewPos(0, y)
		line.Position2 = fyne.NewPos(w, y)
		line.StrokeWidth = 0.5
		lines = append(lines, line)
	}
	return lines
}

func strokeObjects(s *state.StrokeAction, pan fyne.Position, alpha uint8) []fyne.CanvasObject {
	c := state.ParseColor(s.Style.Color)
	c.A = alpha
	if len(s.Points) == 1 {
		dot := canvas.NewCircle(c)
		d := s.Style.Width
		dot.Resize(fyne.NewSize(d, d))
		dot.Move(toPosition(s.Points[0]).Add(pan).SubtractXY(d/2, d/2))
		return []fyne.CanvasObject{dot}
	}
	segments := make([]fyne.CanvasObject, 0, len(s.Points)-1)
	for i := 1; i < len(s.Points); i++ {
		line := canvas.NewLine(c)
		line.StrokeWidth = s.Style.Width
		line.Position1 = toPosition(s.Points[i-1]).Add(pan)
		line.Position2 = toPosition(s.Points[i]).Add(pan)
		segments = append(segments, line)
	}
	return segments
}

func (r *boardRenderer) imageObject(a *state.ImageAction, pan fyne.Position) fyne.CanvasObject {
	g := a.Bounds()
	pos := fyne.NewPos(g.X, g.Y).Add(pan)
	size := fyne.NewSize(g.Width, g.Height)
	if len(a.Source.Data) == 0 {
		frame := canvas.NewRectangle(color.Transparent)
		frame.StrokeColor = color.Gray{Y: 150}
		frame.StrokeWidth = 1
		frame.Move(pos)
		frame.Resize(size)
		return frame
	}
	img, ok := r.images[a.ID]
	if !ok {
		img = canvas.NewImageFromReader(bytes.NewReader(a.Source.Data), a.Source.Name)
		img.FillMode = canvas.ImageFillStretch
		r.images[a.ID] = img
	}
	img.Move(pos)
	img.Resize(size)
	return img
}

func handleObjects(g state.Rect, pan fyne.Position) []fyne.CanvasObject {
	corners := []fyne.Position{
		fyne.NewPos(g.X, g.Y),
		fyne.NewPos(g.Right(), g.Y),
		fyne.NewPos(g.X, g.Bottom()),
		fyne.NewPos(g.Right(), g.Bottom()),
	}
	out := make([]fyne.CanvasObject, 0, len(corners)+1)
	outline := canvas.NewRectangle(color.Transparent)
	outline.StrokeColor = handleColor
	outline.StrokeWidth = 1
	outline.Move(fyne.NewPos(g.X, g.Y).Add(pan))
	outline.Resize(fyne.NewSize(g.Width, g.Height))
	out = append(out, outline)
	for _, c := range corners {
		h := canvas.NewRectangle(handleColor)
		h.Resize(fyne.NewSize(handleSize, handleSize))
		h.Move(c.Add(pan).SubtractXY(handleSize/2, handleSize/2))
		out = append(out, h)
	}
	return out
}

func mod(v, step float32) float32 {
	for v < 0 {
		v += step
	}
	for v >= step {
		v -= step
	}
	return v
}
