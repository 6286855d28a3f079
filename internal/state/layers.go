package state

type layer struct {
	id      LayerID
	actions []Action
}

// layerTable maps layer ids to their committed actions. Ids are dense and
// start at DefaultLayer, so a slice index doubles as the id.
type layerTable struct {
	layers  []*layer
	current LayerID
}

func newLayerTable() layerTable {
	return layerTable{layers: []*layer{{id: DefaultLayer}}}
}

func (t *layerTable) add() LayerID {
	id := LayerID(len(t.layers))
	t.layers = append(t.layers, &layer{id: id})
	return id
}

func (t *layerTable) exists(id LayerID) bool {
	return id >= 0 && int(id) < len(t.layers)
}

func (t *layerTable) selectLayer(id LayerID) bool {
	if !t.exists(id) {
		return false
	}
	t.current = id
	return true
}

func (t *layerTable) ids() []LayerID {
	out := make([]LayerID, len(t.layers))
	for i, l := range t.layers {
		out[i] = l.id
	}
	return out
}

func (t *layerTable) append(a Action) {
	l := t.layers[a.LayerID()]
	l.actions = append(l.actions, a)
}

// remove drops the given actions from their layers. Dropped actions are
// always a layer's newest entries, so each layer is trimmed from the tail.
func (t *layerTable) remove(dropped []Action) {
	for i := len(dropped) - 1; i >= 0; i-- {
		a := dropped[i]
		l := t.layers[a.LayerID()]
		for j := len(l.actions) - 1; j >= 0; j-- {
			if l.actions[j].ActionID() == a.ActionID() {
				l.actions = append(l.actions[:j], l.actions[j+1:]...)
				break
			}
		}
	}
}

func (t *layerTable) reset() {
	for _, l := range t.layers {
		l.actions = nil
	}
}
