package state

import (
	"context"
	"sync"

	"pkt.systems/pslog"
)

// Processor serializes commands from every input adapter onto one Store and
// tells subscribers about the resulting view.
type Processor struct {
	mu    sync.Mutex
	store *Store
	seq   uint64

	// deliverMu orders notifications; delivered is the seq of the last
	// view handed to subscribers.
	deliverMu sync.Mutex
	delivered uint64

	subMu  sync.Mutex
	subs   map[int]func(View)
	nextID int

	log pslog.Logger
}

// NewProcessor wraps store. A nil logger uses the background context logger.
func NewProcessor(store *Store, logger pslog.Logger) *Processor {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	if store == nil {
		store = NewStore(WithLogger(logger))
	}
	return &Processor{
		store: store,
		subs:  make(map[int]func(View)),
		log:   logger,
	}
}

// Apply runs cmd and returns the view after it. Subscribers are called
// after the store is released and never see a view older than one they
// already received. A subscriber must not call Apply from its callback.
func (p *Processor) Apply(cmd Command) View {
	p.mu.Lock()
	p.store.Dispatch(cmd)
	v := p.store.View()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	p.log.Trace("command applied", "command", commandName(cmd), "mode", v.Mode, "cursor", v.Cursor)
	p.deliver(seq, v)
	return v
}

// AddLayer creates a layer and returns its id.
func (p *Processor) AddLayer() LayerID {
	p.mu.Lock()
	id := p.store.AddLayer()
	v := p.store.View()
	p.seq++
	seq := p.seq
	p.mu.Unlock()
	p.deliver(seq, v)
	return id
}

// deliver notifies subscribers with v unless a newer view already went out.
func (p *Processor) deliver(seq uint64, v View) {
	p.deliverMu.Lock()
	defer p.deliverMu.Unlock()
	if seq <= p.delivered {
		return
	}
	p.delivered = seq
	p.notify(v)
}

// View returns the current snapshot.
func (p *Processor) View() View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.View()
}

// LayerIDs lists every layer, including empty ones.
func (p *Processor) LayerIDs() []LayerID {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.store.Layers()
}

// Subscribe registers fn for every view change. The returned func removes it.
func (p *Processor) Subscribe(fn func(View)) func() {
	p.subMu.Lock()
	id := p.nextID
	p.nextID++
	p.subs[id] = fn
	count := len(p.subs)
	p.subMu.Unlock()
	p.log.Debug("view subscribe", "subs", count)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.subMu.Lock()
			delete(p.subs, id)
			p.subMu.Unlock()
			p.log.Debug("view unsubscribe")
		})
	}
}

func (p *Processor) notify(v View) {
	p.subMu.Lock()
	fns := make([]func(View), 0, len(p.subs))
	for _, fn := range p.subs {
		fns = append(fns, fn)
	}
	p.subMu.Unlock()
	for _, fn := range fns {
		fn(v)
	}
}

func commandName(cmd Command) string {
	switch cmd.(type) {
	case StartDrawing:
		return "start_drawing"
	case PushPoint:
		return "push_point"
	case StopDrawing:
		return "stop_drawing"
	case PasteImage:
		return "paste_image"
	case SelectImage:
		return "select_image"
	case StartDragging:
		return "start_dragging"
	case DragImage:
		return "drag_image"
	case StopDragging:
		return "stop_dragging"
	case StartResizing:
		return "start_resizing"
	case ResizeImage:
		return "resize_image"
	case StopResizing:
		return "stop_resizing"
	case ChangeStrokeWidth:
		return "change_stroke_width"
	case ChangeStrokeColor:
		return "change_stroke_color"
	case Undo:
		return "undo"
	case Redo:
		return "redo"
	case Clear:
		return "clear"
	case AddLayer:
		return "add_layer"
	case SelectLayer:
		return "select_layer"
	}
	return "unknown"
}
