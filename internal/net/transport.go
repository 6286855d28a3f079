package net

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"pkt.systems/pslog"

	"LayerBoard/internal/export"
	"LayerBoard/internal/logx"
	"LayerBoard/internal/state"
)

// ErrSurfaceBusy is returned when a second controller tries to connect.
var ErrSurfaceBusy = errors.New("surface already has a controller")

const writeTimeout = 5 * time.Second

// Surface exposes one board over a websocket. A single controller at a
// time sends input commands and receives every resulting view.
type Surface struct {
	proc     *state.Processor
	upgrader websocket.Upgrader
	log      pslog.Logger

	mu     sync.Mutex
	active bool
}

// NewSurface builds a Surface for proc.
func NewSurface(proc *state.Processor, logger pslog.Logger) *Surface {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Surface{
		proc: proc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: logger,
	}
}

func (s *Surface) claim() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active {
		return false
	}
	s.active = true
	return true
}

func (s *Surface) release() {
	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// ServeHTTP upgrades the request and runs the controller session until the
// peer disconnects.
func (s *Surface) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logx.WithPeer(s.log, r.RemoteAddr)
	if !s.claim() {
		log.Warn("surface busy, rejecting peer")
		http.Error(w, ErrSurfaceBusy.Error(), http.StatusConflict)
		return
	}
	defer s.release()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer conn.Close()
	log.Info("controller connected")

	out := newOutbox()
	cancel := s.proc.Subscribe(out.offerView)
	defer cancel()
	out.offerView(s.proc.View())

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.writeLoop(conn, out, log)
	}()

	open := s.readLoop(conn, out, log)
	out.close()
	<-done

	// The pointer left the surface: finish what this controller started,
	// leaving gestures begun elsewhere alone.
	for _, cmd := range open.stops(s.proc.View()) {
		s.proc.Apply(cmd)
	}
	log.Info("controller disconnected")
}

// gesture is the interaction a controller left the store in.
type gesture struct {
	mode   state.Mode
	stroke state.ActionID
	target state.ActionID
}

func gestureOf(v state.View) gesture {
	g := gesture{mode: v.Mode, target: v.Selected}
	if v.Preview != nil {
		g.stroke = v.Preview.ID
	}
	return g
}

// stops returns the commands that end g, provided the store is still in it.
func (g gesture) stops(now state.View) []state.Command {
	if g.mode == state.ModeIdle || now.Mode != g.mode {
		return nil
	}
	switch g.mode {
	case state.ModeDrawing:
		if now.Preview != nil && now.Preview.ID == g.stroke {
			return []state.Command{state.StopDrawing{}}
		}
	case state.ModeDraggingImage:
		if now.Selected == g.target {
			return []state.Command{state.StopDragging{}}
		}
	case state.ModeResizingImage:
		if now.Selected == g.target {
			return []state.Command{state.StopResizing{}}
		}
	}
	return nil
}

// readLoop applies commands until the peer goes away and returns the
// gesture its last command left open.
func (s *Surface) readLoop(conn *websocket.Conn, out *outbox, log pslog.Logger) gesture {
	var open gesture
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("websocket read ended", "err", err)
			}
			return open
		}
		cmd, err := DecodeCommand(data)
		if err != nil {
			log.Warn("bad command from controller", "err", err)
			out.offerError(err)
			continue
		}
		open = gestureOf(s.proc.Apply(ResolveStyle(cmd, s.proc.View().Style)))
	}
}

func (s *Surface) writeLoop(conn *websocket.Conn, out *outbox, log pslog.Logger) {
	for {
		data, ok := out.next()
		if !ok {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeTimeout))
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debug("websocket write failed", "err", err)
			out.close()
			return
		}
	}
}

// outbox holds at most the latest view plus pending error messages. Views
// are full snapshots, so a slow peer only ever needs the newest one.
type outbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	view   *state.View
	errs   [][]byte
	closed bool
}

func newOutbox() *outbox {
	o := &outbox{}
	o.cond = sync.NewCond(&o.mu)
	return o
}

func (o *outbox) offerView(v state.View) {
	o.mu.Lock()
	if !o.closed {
		o.view = &v
		o.cond.Signal()
	}
	o.mu.Unlock()
}

func (o *outbox) offerError(err error) {
	o.mu.Lock()
	if !o.closed {
		o.errs = append(o.errs, EncodeError(err))
		o.cond.Signal()
	}
	o.mu.Unlock()
}

func (o *outbox) close() {
	o.mu.Lock()
	o.closed = true
	o.cond.Broadcast()
	o.mu.Unlock()
}

// next blocks until there is something to send. ok is false once closed.
func (o *outbox) next() (data []byte, ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for {
		if o.closed {
			return nil, false
		}
		if len(o.errs) > 0 {
			data = o.errs[0]
			o.errs = o.errs[1:]
			return data, true
		}
		if o.view != nil {
			v := *o.view
			o.view = nil
			encoded, err := EncodeView(v)
			if err != nil {
				encoded = EncodeError(err)
			}
			return encoded, true
		}
		o.cond.Wait()
	}
}

// Handler routes the websocket surface plus read-only view and PDF endpoints.
func Handler(proc *state.Processor, surface *Surface, pdf export.Options) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/ws", surface)
	mux.HandleFunc("/view", func(w http.ResponseWriter, r *http.Request) {
		data, err := EncodeView(proc.View())
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
	mux.HandleFunc("/export.pdf", func(w http.ResponseWriter, r *http.Request) {
		v := proc.View()
		if v.Count() == 0 {
			http.Error(w, export.ErrEmptyView.Error(), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		if err := export.WritePDF(w, v, pdf); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
	return mux
}

// Serve runs the HTTP server on addr until ctx is done. ready, when not
// nil, receives the bound address once listening.
func Serve(ctx context.Context, addr string, h http.Handler, ready func(net.Addr)) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}
	log := pslog.Ctx(ctx)
	log.Info("remote surface listening", "addr", ln.Addr().String())
	if ready != nil {
		ready(ln.Addr())
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
