package ui

import (
	"fyne.io/fyne/v2"

	"LayerBoard/internal/state"
)

// TweakPoint shifts a pointer position so the pen tip sits under the cursor
// hotspot; thicker pens need a larger vertical nudge.
func TweakPoint(width float32, p state.Point) state.Point {
	switch {
	case width <= 3:
		return state.Point{X: p.X - 2, Y: p.Y + 2}
	case width <= 6:
		return state.Point{X: p.X - 2, Y: p.Y + 4}
	default:
		return state.Point{X: p.X - 2, Y: p.Y + 6}
	}
}

func toPosition(p state.Point) fyne.Position {
	return fyne.NewPos(p.X, p.Y)
}
