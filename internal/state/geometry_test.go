package state

import (
	"image/color"
	"testing"
)

func TestRectContainsAndOverlaps(t *testing.T) {
	r := Rect{X: 10, Y: 10, Width: 20, Height: 10}
	if !r.Contains(Point{10, 10}) || !r.Contains(Point{30, 20}) {
		t.Fatalf("edges should be inside")
	}
	if r.Contains(Point{31, 15}) {
		t.Fatalf("point right of box reported inside")
	}
	if !r.Overlaps(Rect{X: 25, Y: 15, Width: 10, Height: 10}) {
		t.Fatalf("expected overlap")
	}
	if r.Overlaps(Rect{X: 40, Y: 40, Width: 1, Height: 1}) {
		t.Fatalf("unexpected overlap")
	}
}

func TestRectUnionAndPad(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 5, Y: -5, Width: 10, Height: 5}
	if got := a.Union(b); got != (Rect{X: 0, Y: -5, Width: 15, Height: 15}) {
		t.Fatalf("unexpected union %+v", got)
	}
	if got := a.Pad(2); got != (Rect{X: -2, Y: -2, Width: 14, Height: 14}) {
		t.Fatalf("unexpected pad %+v", got)
	}
}

func TestCornerAt(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		p    Point
		want Corner
	}{
		{Point{1, 1}, CornerNW},
		{Point{99, -2}, CornerNE},
		{Point{3, 48}, CornerSW},
		{Point{100, 50}, CornerSE},
		{Point{50, 25}, CornerNone},
	}
	for _, tt := range tests {
		if got := r.CornerAt(tt.p, 4); got != tt.want {
			t.Errorf("CornerAt(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestParseCorner(t *testing.T) {
	for _, c := range []Corner{CornerNW, CornerNE, CornerSW, CornerSE} {
		got, ok := ParseCorner(c.String())
		if !ok || got != c {
			t.Errorf("ParseCorner(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseCorner("middle"); ok {
		t.Errorf("expected unknown corner to fail")
	}
}

func TestStrokeBounds(t *testing.T) {
	s := &StrokeAction{Points: []Point{{3, 4}, {-1, 10}, {6, 2}}}
	if got := s.Bounds(); got != (Rect{X: -1, Y: 2, Width: 7, Height: 8}) {
		t.Fatalf("unexpected bounds %+v", got)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"black", color.NRGBA{A: 255}},
		{"Red", color.NRGBA{R: 255, A: 255}},
		{"#336699", color.NRGBA{R: 0x33, G: 0x66, B: 0x99, A: 255}},
		{"not-a-color", color.NRGBA{A: 255}},
	}
	for _, tt := range tests {
		if got := ParseColor(tt.in); got != tt.want {
			t.Errorf("ParseColor(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := ColorName(color.NRGBA{B: 255, A: 255}); got != "blue" {
		t.Errorf("ColorName(blue) = %q", got)
	}
	if got := ColorName(color.NRGBA{R: 0x12, G: 0x34, B: 0x56, A: 255}); got != "#123456" {
		t.Errorf("ColorName(hex) = %q", got)
	}
}
