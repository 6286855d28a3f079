package state

// LayerView is the visible content of one layer in commit order.
type LayerView struct {
	ID      LayerID  `json:"id"`
	Actions []Action `json:"actions"`
}

// View is a read-only snapshot of what should be on screen.
type View struct {
	Mode         Mode        `json:"mode"`
	Corner       Corner      `json:"corner"`
	CurrentLayer LayerID     `json:"current_layer"`
	Cursor       int         `json:"cursor"`
	Len          int         `json:"len"`
	Style        Style       `json:"style"`
	Selected     ActionID    `json:"selected,omitempty"`
	Layers       []LayerView `json:"layers"`
	// Preview is the stroke being drawn, drawn above every layer.
	Preview *StrokeAction `json:"preview,omitempty"`
}

// View projects the store into a fresh snapshot. Nothing in the snapshot
// aliases store memory.
func (s *Store) View() View {
	v := View{
		Mode:         s.mode,
		Corner:       s.corner,
		CurrentLayer: s.layers.current,
		Cursor:       s.log.cursor,
		Len:          len(s.log.timeline),
		Style:        s.style,
		Layers:       project(&s.layers, &s.log),
	}
	if id, ok := s.Selected(); ok {
		v.Selected = id
	}
	if s.buffer != nil {
		v.Preview = s.buffer.Clone().(*StrokeAction)
	}
	return v
}

// project keeps each layer's actions that sit before the history cursor.
func project(layers *layerTable, log *commandLog) []LayerView {
	out := make([]LayerView, 0, len(layers.layers))
	for _, l := range layers.layers {
		lv := LayerView{ID: l.id, Actions: make([]Action, 0, len(l.actions))}
		for _, a := range l.actions {
			if log.visible(a.ActionID()) {
				lv.Actions = append(lv.Actions, a.Clone())
			}
		}
		out = append(out, lv)
	}
	return out
}

// Layer returns the view of id, or an empty view if it does not exist.
func (v View) Layer(id LayerID) LayerView {
	for _, l := range v.Layers {
		if l.ID == id {
			return l
		}
	}
	return LayerView{ID: id}
}

// Count returns the number of visible committed actions across all layers.
func (v View) Count() int {
	n := 0
	for _, l := range v.Layers {
		n += len(l.Actions)
	}
	return n
}

// Bounds covers every visible action and the preview. ok is false when
// there is nothing to cover.
func (v View) Bounds() (r Rect, ok bool) {
	add := func(b Rect) {
		if !ok {
			r, ok = b, true
			return
		}
		r = r.Union(b)
	}
	for _, l := range v.Layers {
		for _, a := range l.Actions {
			add(a.Bounds())
		}
	}
	if v.Preview != nil {
		add(v.Preview.Bounds())
	}
	return r, ok
}

// ImageAt returns the topmost visible image containing p.
func (v View) ImageAt(p Point) (*ImageAction, bool) {
	for i := len(v.Layers) - 1; i >= 0; i-- {
		actions := v.Layers[i].Actions
		for j := len(actions) - 1; j >= 0; j-- {
			if img, ok := actions[j].(*ImageAction); ok && img.Bounds().Contains(p) {
				return img, true
			}
		}
	}
	return nil, false
}

// Image returns the visible image with the given id.
func (v View) Image(id ActionID) (*ImageAction, bool) {
	for _, l := range v.Layers {
		for _, a := range l.Actions {
			if img, ok := a.(*ImageAction); ok && img.ID == id {
				return img, true
			}
		}
	}
	return nil, false
}
