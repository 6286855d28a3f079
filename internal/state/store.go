package state

import (
	"context"

	"pkt.systems/pslog"
)

// Mode is the store's interaction state.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDrawing
	ModeDraggingImage
	ModeResizingImage
)

func (m Mode) String() string {
	switch m {
	case ModeDrawing:
		return "drawing"
	case ModeDraggingImage:
		return "dragging_image"
	case ModeResizingImage:
		return "resizing_image"
	default:
		return "idle"
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// DefaultStyle matches a fresh whiteboard: a 5px black pen.
var DefaultStyle = Style{Width: 5, Color: "black"}

// Store owns the drawing history of one whiteboard session.
//
// Mutators never fail. Calls made in the wrong mode, undo/redo past either
// end of the timeline and repeated stop calls are absorbed silently, since
// input adapters cannot guarantee well-paired start/stop events.
//
// A Store is not safe for concurrent use; see Processor.
type Store struct {
	log    commandLog
	layers layerTable

	buffer *StrokeAction
	mode   Mode
	corner Corner

	style    Style
	selected ActionID
	pasteAt  Point

	ids    IDSource
	logger pslog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for commit and precondition diagnostics.
func WithLogger(l pslog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithIDSource replaces the UUID action identities.
func WithIDSource(ids IDSource) Option {
	return func(s *Store) {
		if ids != nil {
			s.ids = ids
		}
	}
}

// WithPasteOrigin sets where pasted images land.
func WithPasteOrigin(p Point) Option {
	return func(s *Store) { s.pasteAt = p }
}

// WithStyle sets the initial pen. Invalid styles are ignored.
func WithStyle(st Style) Option {
	return func(s *Store) {
		if st.valid() {
			s.style = st
		}
	}
}

// NewStore returns an idle store with the default layer selected.
func NewStore(opts ...Option) *Store {
	s := &Store{
		log:    newCommandLog(),
		layers: newLayerTable(),
		style:  DefaultStyle,
		ids:    newActionID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = pslog.Ctx(context.Background())
	}
	return s
}

// StartDrawing opens a stroke on the current layer with p as its first point.
func (s *Store) StartDrawing(width float32, color string, p Point) {
	st := Style{Width: width, Color: color}
	if !st.valid() {
		s.logger.Warn("start drawing ignored", "width", width, "color", color)
		return
	}
	s.settle()
	s.open(st, p)
}

func (s *Store) open(st Style, points ...Point) {
	s.buffer = &StrokeAction{
		ID:     s.ids(),
		Layer:  s.layers.current,
		Style:  st,
		Points: append([]Point(nil), points...),
	}
	s.mode = ModeDrawing
}

// PushPoint extends the open stroke. A style that differs from the open
// stroke's commits it and continues in a new stroke from its last point.
func (s *Store) PushPoint(width float32, color string, p Point) {
	if s.mode != ModeDrawing || s.buffer == nil {
		return
	}
	st := Style{Width: width, Color: color}
	if st == s.buffer.Style || !st.valid() {
		s.buffer.Points = append(s.buffer.Points, p)
		return
	}
	last := s.buffer.Points[len(s.buffer.Points)-1]
	s.StopDrawing()
	s.open(st, last, p)
}

// StopDrawing commits the open stroke. Without one it only returns to idle
// from the drawing mode.
func (s *Store) StopDrawing() {
	if s.mode == ModeDrawing {
		s.mode = ModeIdle
	}
	if s.buffer == nil {
		return
	}
	stroke := s.buffer
	s.buffer = nil
	s.commit(stroke)
	s.logger.Debug("stroke committed", "action", stroke.ID, "layer", stroke.Layer, "points", len(stroke.Points))
}

// PasteImage commits img on the current layer at the paste origin and
// selects it as the drag/resize target.
func (s *Store) PasteImage(img ImageSource) {
	s.settle()
	w, h := max(img.Width, 0), max(img.Height, 0)
	a := &ImageAction{
		ID:       s.ids(),
		Layer:    s.layers.current,
		Source:   img,
		Geometry: &Rect{X: s.pasteAt.X, Y: s.pasteAt.Y, Width: w, Height: h},
	}
	s.commit(a)
	s.selected = a.ID
	s.logger.Debug("image pasted", "action", a.ID, "layer", a.Layer, "name", img.Name)
}

// SelectImage makes id the drag/resize target if it is a visible image.
func (s *Store) SelectImage(id ActionID) {
	if s.mode != ModeIdle {
		return
	}
	if s.imageByID(id) == nil {
		return
	}
	s.selected = id
}

// StartDragging targets the selected image.
func (s *Store) StartDragging() {
	s.settle()
	if s.target() == nil {
		return
	}
	s.mode = ModeDraggingImage
}

// DragImage moves the target's origin in place.
func (s *Store) DragImage(m Move) {
	if s.mode != ModeDraggingImage {
		return
	}
	if img := s.target(); img != nil {
		img.Geometry.Translate(m)
	}
}

// StopDragging returns to idle when dragging.
func (s *Store) StopDragging() {
	if s.mode == ModeDraggingImage {
		s.mode = ModeIdle
	}
}

// StartResizing targets the selected image's corner c.
func (s *Store) StartResizing(c Corner) {
	if c == CornerNone {
		return
	}
	s.settle()
	if s.target() == nil {
		return
	}
	s.mode = ModeResizingImage
	s.corner = c
}

// ResizeImage moves the active corner of the target in place.
func (s *Store) ResizeImage(m Move) {
	if s.mode != ModeResizingImage {
		return
	}
	if img := s.target(); img != nil {
		img.Geometry.Resize(s.corner, m)
	}
}

// StopResizing returns to idle when resizing.
func (s *Store) StopResizing() {
	if s.mode == ModeResizingImage {
		s.mode = ModeIdle
		s.corner = CornerNone
	}
}

// ChangeStrokeWidth commits any open stroke and sets the pen width.
func (s *Store) ChangeStrokeWidth(width float32) {
	s.settle()
	if width > 0 {
		s.style.Width = width
	}
}

// ChangeStrokeColor commits any open stroke and sets the pen color.
func (s *Store) ChangeStrokeColor(color string) {
	s.settle()
	if color != "" {
		s.style.Color = color
	}
}

// Undo hides the most recent visible action. An open stroke is committed first.
func (s *Store) Undo() {
	s.StopDrawing()
	if s.log.undo() {
		s.logger.Debug("undo", "cursor", s.log.cursor)
	}
}

// Redo re-shows the next hidden action. An open stroke is committed first,
// which discards the redo tail, so redo while drawing only ends the stroke.
func (s *Store) Redo() {
	s.StopDrawing()
	if s.log.redo() {
		s.logger.Debug("redo", "cursor", s.log.cursor)
	}
}

// Clear empties every layer and the timeline. It cannot be undone.
func (s *Store) Clear() {
	n := len(s.log.timeline)
	s.buffer = nil
	s.mode = ModeIdle
	s.corner = CornerNone
	s.selected = ""
	s.log.reset()
	s.layers.reset()
	s.logger.Info("board cleared", "discarded", n)
}

// AddLayer creates a layer and returns its id. The current layer is unchanged.
func (s *Store) AddLayer() LayerID {
	s.settle()
	return s.layers.add()
}

// SelectLayer routes later commits to id. id must come from AddLayer or be
// DefaultLayer; other values are ignored.
func (s *Store) SelectLayer(id LayerID) {
	s.settle()
	if !s.layers.selectLayer(id) {
		s.logger.Warn("select layer ignored", "layer", id, "layers", len(s.layers.layers))
	}
}

// Mode returns the current interaction state.
func (s *Store) Mode() Mode { return s.mode }

// Corner returns the active resize corner, CornerNone unless resizing.
func (s *Store) Corner() Corner { return s.corner }

// CurrentLayer returns the layer new actions are committed to.
func (s *Store) CurrentLayer() LayerID { return s.layers.current }

// Layers returns every layer id in creation order.
func (s *Store) Layers() []LayerID { return s.layers.ids() }

// Style returns the current pen.
func (s *Store) Style() Style { return s.style }

// Selected returns the drag/resize target, if it is still visible.
func (s *Store) Selected() (ActionID, bool) {
	if img := s.target(); img != nil {
		return img.ID, true
	}
	return "", false
}

func (s *Store) CanUndo() bool { return s.log.cursor > 0 }
func (s *Store) CanRedo() bool { return s.log.cursor < len(s.log.timeline) }

// Cursor returns the number of visible committed actions.
func (s *Store) Cursor() int { return s.log.cursor }

// Len returns the number of committed actions, including undone ones.
func (s *Store) Len() int { return len(s.log.timeline) }

// settle brings the store back to idle, committing an open stroke.
func (s *Store) settle() {
	s.StopDrawing()
	s.StopDragging()
	s.StopResizing()
}

func (s *Store) commit(a Action) {
	dropped := s.log.commit(a)
	if len(dropped) > 0 {
		s.layers.remove(dropped)
		s.logger.Debug("redo history discarded", "actions", len(dropped))
	}
	s.layers.append(a)
}

func (s *Store) imageByID(id ActionID) *ImageAction {
	if id == "" || !s.log.visible(id) {
		return nil
	}
	a, _ := s.log.lookup(id)
	img, _ := a.(*ImageAction)
	return img
}

func (s *Store) target() *ImageAction {
	return s.imageByID(s.selected)
}
