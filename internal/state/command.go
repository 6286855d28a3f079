package state

// Command is one store operation. The set is closed: Dispatch switches over
// every implementation.
type Command interface {
	command()
}

type (
	StartDrawing struct {
		Width float32
		Color string
		Point Point
	}
	PushPoint struct {
		Width float32
		Color string
		Point Point
	}
	StopDrawing       struct{}
	PasteImage        struct{ Image ImageSource }
	SelectImage       struct{ ID ActionID }
	StartDragging     struct{}
	DragImage         struct{ Move Move }
	StopDragging      struct{}
	StartResizing     struct{ Corner Corner }
	ResizeImage       struct{ Move Move }
	StopResizing      struct{}
	ChangeStrokeWidth struct{ Width float32 }
	ChangeStrokeColor struct{ Color string }
	Undo              struct{}
	Redo              struct{}
	Clear             struct{}
	AddLayer          struct{}
	SelectLayer       struct{ ID LayerID }
)

func (StartDrawing) command()      {}
func (PushPoint) command()         {}
func (StopDrawing) command()       {}
func (PasteImage) command()        {}
func (SelectImage) command()       {}
func (StartDragging) command()     {}
func (DragImage) command()         {}
func (StopDragging) command()      {}
func (StartResizing) command()     {}
func (ResizeImage) command()       {}
func (StopResizing) command()      {}
func (ChangeStrokeWidth) command() {}
func (ChangeStrokeColor) command() {}
func (Undo) command()              {}
func (Redo) command()              {}
func (Clear) command()             {}
func (AddLayer) command()          {}
func (SelectLayer) command()       {}

// Dispatch applies cmd to the store.
func (s *Store) Dispatch(cmd Command) {
	switch c := cmd.(type) {
	case StartDrawing:
		s.StartDrawing(c.Width, c.Color, c.Point)
	case PushPoint:
		s.PushPoint(c.Width, c.Color, c.Point)
	case StopDrawing:
		s.StopDrawing()
	case PasteImage:
		s.PasteImage(c.Image)
	case SelectImage:
		s.SelectImage(c.ID)
	case StartDragging:
		s.StartDragging()
	case DragImage:
		s.DragImage(c.Move)
	case StopDragging:
		s.StopDragging()
	case StartResizing:
		s.StartResizing(c.Corner)
	case ResizeImage:
		s.ResizeImage(c.Move)
	case StopResizing:
		s.StopResizing()
	case ChangeStrokeWidth:
		s.ChangeStrokeWidth(c.Width)
	case ChangeStrokeColor:
		s.ChangeStrokeColor(c.Color)
	case Undo:
		s.Undo()
	case Redo:
		s.Redo()
	case Clear:
		s.Clear()
	case AddLayer:
		s.AddLayer()
	case SelectLayer:
		s.SelectLayer(c.ID)
	default:
		s.logger.Warn("unknown command ignored", "command", cmd)
	}
}
