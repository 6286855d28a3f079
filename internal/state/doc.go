// Package state holds the whiteboard's drawing history.
//
// A Store keeps three things:
//
//   - a linear command log of committed strokes and images with a cursor
//     separating visible actions from ones that can be redone,
//   - a layer table routing each commit to the selected layer,
//   - the stroke currently being drawn, committed only when it stops.
//
// Undo and redo only move the cursor. Dragging or resizing an image edits
// the committed ImageAction's geometry directly and is never recorded, so
// undo rewinds the creation of actions and not their later placement.
//
// View projects the store into a snapshot for renderers; it is recomputed
// on every call. Processor wraps a Store for adapters running on different
// goroutines:
//
//	proc := state.NewProcessor(state.NewStore(), logger)
//	stop := proc.Subscribe(func(v state.View) { redraw(v) })
//	defer stop()
//	proc.Apply(state.StartDrawing{Width: 5, Color: "black", Point: state.Point{}})
package state
