package geom

// Rect is an axis-aligned box. Pos is the bottom-left corner and y grows upward.
type Rect struct {
	Pos  Vector2
	Size Vector2
}

// NewRect creates a rect from its bottom-left corner and size
func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: Vec(x, y), Size: Vec(w, h)}
}

func (r Rect) Left() float64   { return r.Pos.X }
func (r Rect) Right() float64  { return r.Pos.X + r.Size.X }
func (r Rect) Bottom() float64 { return r.Pos.Y }
func (r Rect) Top() float64    { return r.Pos.Y + r.Size.Y }

// Center returns the midpoint of the rect
func (r Rect) Center() Vector2 {
	return Vector2{X: r.Pos.X + r.Size.X/2, Y: r.Pos.Y + r.Size.Y/2}
}

// CenteredAt returns a copy of r moved so its center is c
func (r Rect) CenteredAt(c Vector2) Rect {
	return Rect{Pos: Vector2{X: c.X - r.Size.X/2, Y: c.Y - r.Size.Y/2}, Size: r.Size}
}

// Overlaps reports whether r and o share any point. Touching edges count.
func (r Rect) Overlaps(o Rect) bool {
	if r.Right() < o.Left() || r.Left() > o.Right() {
		return false
	}
	if r.Top() < o.Bottom() || r.Bottom() > o.Top() {
		return false
	}
	return true
}
