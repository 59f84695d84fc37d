// Package geom holds the small amount of 2D math the simulation needs.
package geom

// Vector2 is a 2D vector value
type Vector2 struct {
	X, Y float64
}

// Vec is shorthand for Vector2{x, y}
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// Add returns the component-wise sum
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale multiplies both components by factor
func (v Vector2) Scale(factor float64) Vector2 {
	return Vector2{X: v.X * factor, Y: v.Y * factor}
}

// Clamp keeps value within [lo, hi]
func Clamp(lo, hi, value float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ClampVector clamps each component of v into [lo, hi]
func ClampVector(lo, hi float64, v Vector2) Vector2 {
	return Vector2{X: Clamp(lo, hi, v.X), Y: Clamp(lo, hi, v.Y)}
}
