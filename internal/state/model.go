package state

// Point is a device-space coordinate.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

// Move is a pointer delta used by drag and resize.
type Move struct {
	DX float32 `json:"dx"`
	DY float32 `json:"dy"`
}

// ActionID identifies a committed action for the lifetime of a session.
type ActionID string

// LayerID identifies a layer. Layer 0 exists from construction.
type LayerID int

// DefaultLayer is created when the store is initialized.
const DefaultLayer LayerID = 0

// Style is the pen used for a stroke.
type Style struct {
	Width float32 `json:"width"`
	Color string  `json:"color"`
}

func (s Style) valid() bool { return s.Width > 0 && s.Color != "" }

// Action is a committed drawing primitive: *StrokeAction or *ImageAction.
type Action interface {
	ActionID() ActionID
	LayerID() LayerID
	Bounds() Rect
	Clone() Action
	isAction()
}

// StrokeAction is a freehand polyline.
type StrokeAction struct {
	ID     ActionID `json:"id"`
	Layer  LayerID  `json:"layer"`
	Style  Style    `json:"style"`
	Points []Point  `json:"points"`
}

func (s *StrokeAction) ActionID() ActionID { return s.ID }
func (s *StrokeAction) LayerID() LayerID   { return s.Layer }
func (*StrokeAction) isAction()            {}

// Bounds returns the bounding box of the stroke's points, ignoring width.
func (s *StrokeAction) Bounds() Rect {
	return boundsOf(s.Points)
}

func (s *StrokeAction) Clone() Action {
	c := *s
	c.Points = append([]Point(nil), s.Points...)
	return &c
}

// ImageSource is the pasted bitmap. Width and Height are its natural size.
type ImageSource struct {
	Name   string  `json:"name"`
	Format string  `json:"format"`
	Data   []byte  `json:"data"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// ImageAction places an ImageSource on a layer.
//
// Geometry is the only part of a committed action that changes after commit:
// drag and resize write through it directly and are not recorded in history.
type ImageAction struct {
	ID       ActionID    `json:"id"`
	Layer    LayerID     `json:"layer"`
	Source   ImageSource `json:"source"`
	Geometry *Rect       `json:"geometry"`
}

func (i *ImageAction) ActionID() ActionID { return i.ID }
func (i *ImageAction) LayerID() LayerID   { return i.Layer }
func (*ImageAction) isAction()            {}

func (i *ImageAction) Bounds() Rect {
	if i.Geometry == nil {
		return Rect{}
	}
	return *i.Geometry
}

// Clone copies the geometry; the image bytes are shared since they are never written.
func (i *ImageAction) Clone() Action {
	c := *i
	g := i.Bounds()
	c.Geometry = &g
	return &c
}
