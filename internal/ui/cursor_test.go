package ui

import (
	"testing"

	"LayerBoard/internal/state"
)

func TestTweakPoint(t *testing.T) {
	p := state.Point{X: 10, Y: 10}
	tests := []struct {
		width float32
		want  state.Point
	}{
		{width: 1, want: state.Point{X: 8, Y: 12}},
		{width: 3, want: state.Point{X: 8, Y: 12}},
		{width: 5, want: state.Point{X: 8, Y: 14}},
		{width: 6, want: state.Point{X: 8, Y: 14}},
		{width: 20, want: state.Point{X: 8, Y: 16}},
	}
	for _, tc := range tests {
		if got := TweakPoint(tc.width, p); got != tc.want {
			t.Fatalf("TweakPoint(%v) = %+v, want %+v", tc.width, got, tc.want)
		}
	}
}

func TestModWrapsNegativeOffsets(t *testing.T) {
	tests := []struct {
		v, step, want float32
	}{
		{v: 0, step: 50, want: 0},
		{v: 70, step: 50, want: 20},
		{v: -20, step: 50, want: 30},
		{v: -120, step: 50, want: 30},
	}
	for _, tc := range tests {
		if got := mod(tc.v, tc.step); got != tc.want {
			t.Fatalf("mod(%v, %v) = %v, want %v", tc.v, tc.step, got, tc.want)
		}
	}
}
