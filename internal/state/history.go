package state

// commandLog is the linear timeline of committed actions, interleaved across
// layers in commit order. Entries at or past cursor are hidden and can be redone.
type commandLog struct {
	timeline []Action
	index    map[ActionID]int
	cursor   int
}

func newCommandLog() commandLog {
	return commandLog{index: make(map[ActionID]int)}
}

// commit appends a, first discarding the redo tail. It returns the discarded actions.
func (l *commandLog) commit(a Action) []Action {
	dropped := l.truncate()
	l.index[a.ActionID()] = len(l.timeline)
	l.timeline = append(l.timeline, a)
	l.cursor = len(l.timeline)
	return dropped
}

func (l *commandLog) truncate() []Action {
	if l.cursor == len(l.timeline) {
		return nil
	}
	dropped := append([]Action(nil), l.timeline[l.cursor:]...)
	for _, a := range dropped {
		delete(l.index, a.ActionID())
	}
	clear(l.timeline[l.cursor:])
	l.timeline = l.timeline[:l.cursor]
	return dropped
}

func (l *commandLog) undo() bool {
	if l.cursor == 0 {
		return false
	}
	l.cursor--
	return true
}

func (l *commandLog) redo() bool {
	if l.cursor == len(l.timeline) {
		return false
	}
	l.cursor++
	return true
}

func (l *commandLog) reset() {
	l.timeline = nil
	l.index = make(map[ActionID]int)
	l.cursor = 0
}

// visible reports whether id is committed and not undone.
func (l *commandLog) visible(id ActionID) bool {
	pos, ok := l.index[id]
	return ok && pos < l.cursor
}

func (l *commandLog) lookup(id ActionID) (Action, bool) {
	pos, ok := l.index[id]
	if !ok {
		return nil, false
	}
	return l.timeline[pos], true
}
