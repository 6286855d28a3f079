package state

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// Corner names a resize handle of an image.
type Corner int

const (
	CornerNone Corner = iota
	CornerNW
	CornerNE
	CornerSW
	CornerSE
)

var cornerNames = map[Corner]string{
	CornerNone: "",
	CornerNW:   "nw",
	CornerNE:   "ne",
	CornerSW:   "sw",
	CornerSE:   "se",
}

func (c Corner) String() string { return cornerNames[c] }

func (c Corner) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// ParseCorner maps "nw", "ne", "sw", "se" to a Corner.
func ParseCorner(s string) (Corner, bool) {
	for c, name := range cornerNames {
		if c != CornerNone && name == s {
			return c, true
		}
	}
	return CornerNone, false
}

// Right and Bottom are the far edges.
func (r Rect) Right() float32  { return r.X + r.Width }
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() &&
		p.Y >= r.Y && p.Y <= r.Bottom()
}

// Overlaps reports whether the two boxes touch or intersect.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.Right() < o.X || o.Right() < r.X ||
		r.Bottom() < o.Y || o.Bottom() < r.Y)
}

// Union returns the smallest box covering both.
func (r Rect) Union(o Rect) Rect {
	minX, minY := min(r.X, o.X), min(r.Y, o.Y)
	maxX, maxY := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Pad grows r by n on every side.
func (r Rect) Pad(n float32) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, Width: r.Width + 2*n, Height: r.Height + 2*n}
}

// CornerAt returns the corner whose handle lies within tolerance of p.
func (r Rect) CornerAt(p Point, tolerance float32) Corner {
	near := func(x, y float32) bool {
		return abs(p.X-x) <= tolerance && abs(p.Y-y) <= tolerance
	}
	switch {
	case near(r.X, r.Y):
		return CornerNW
	case near(r.Right(), r.Y):
		return CornerNE
	case near(r.X, r.Bottom()):
		return CornerSW
	case near(r.Right(), r.Bottom()):
		return CornerSE
	}
	return CornerNone
}

// Translate moves the origin by m.
func (r *Rect) Translate(m Move) {
	r.X += m.DX
	r.Y += m.DY
}

// Resize drags the given corner by m while the opposite corner stays put.
// A drag past the opposite edge clamps that dimension to zero instead of
// flipping the box.
func (r *Rect) Resize(c Corner, m Move) {
	switch c {
	case CornerNW:
		r.X, r.Width = dragLeading(r.X, r.Width, m.DX)
		r.Y, r.Height = dragLeading(r.Y, r.Height, m.DY)
	case CornerNE:
		r.Width = dragTrailing(r.Width, m.DX)
		r.Y, r.Height = dragLeading(r.Y, r.Height, m.DY)
	case CornerSW:
		r.X, r.Width = dragLeading(r.X, r.Width, m.DX)
		r.Height = dragTrailing(r.Height, m.DY)
	case CornerSE:
		r.Width = dragTrailing(r.Width, m.DX)
		r.Height = dragTrailing(r.Height, m.DY)
	}
}

// dragLeading moves the near edge of a span, keeping the far edge fixed.
func dragLeading(origin, size, d float32) (float32, float32) {
	if d > size {
		d = size
	}
	return origin + d, size - d
}

// dragTrailing moves the far edge of a span, keeping the near edge fixed.
func dragTrailing(size, d float32) float32 {
	if size+d < 0 {
		return 0
	}
	return size + d
}

func boundsOf(points []Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
