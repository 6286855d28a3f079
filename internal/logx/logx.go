package logx

import (
	"context"
	"io"

	"pkt.systems/pslog"

	"LayerBoard/internal/state"
)

// Ctx returns the logger bound to the provided context.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// New builds a logger writing to w. Console mode is for terminals,
// structured mode emits one JSON object per line.
func New(w io.Writer, console bool, verbose bool) pslog.Logger {
	opts := pslog.Options{Mode: pslog.ModeStructured, MinLevel: pslog.InfoLevel}
	if console {
		opts.Mode = pslog.ModeConsole
	}
	if verbose {
		opts.MinLevel = pslog.DebugLevel
	}
	return pslog.NewWithOptions(w, opts)
}

// WithLayer annotates the logger with a layer id.
func WithLayer(log pslog.Logger, id state.LayerID) pslog.Logger {
	return log.With("layer", int(id))
}

// WithAction annotates the logger with an action id when present.
func WithAction(log pslog.Logger, id state.ActionID) pslog.Logger {
	if id == "" {
		return log
	}
	return log.With("action", string(id))
}

// WithPeer annotates the logger with a remote surface peer address.
func WithPeer(log pslog.Logger, addr string) pslog.Logger {
	if addr == "" {
		return log
	}
	return log.With("peer", addr)
}
