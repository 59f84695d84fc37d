package game

import (
	"github.com/diegok/botpong/internal/geom"
)

// Heading tells which paddle the ball is travelling toward
type Heading int

const (
	TowardsPlayer Heading = 0
	TowardsBot    Heading = 1
)

type Ball struct {
	Pos      geom.Vector2 // bottom-left corner
	Size     geom.Vector2
	Velocity geom.Vector2
	Heading  Heading
}

// NewBall creates a ball of the given size centered on center, at rest
func NewBall(center, size geom.Vector2) *Ball {
	b := &Ball{Size: size, Heading: TowardsBot}
	b.SetCenter(center)
	return b
}

// Advance moves the ball by its velocity. Bounds are the match's concern.
func (b *Ball) Advance() {
	b.Pos = b.Pos.Add(b.Velocity)
}

// Bounds returns the ball's bounding box
func (b *Ball) Bounds() geom.Rect {
	return geom.Rect{Pos: b.Pos, Size: b.Size}
}

func (b *Ball) Center() geom.Vector2 {
	return b.Bounds().Center()
}

func (b *Ball) SetCenter(c geom.Vector2) {
	b.Pos = b.Bounds().CenteredAt(c).Pos
}

// BounceVertical reverses vertical direction (wall bounce)
func (b *Ball) BounceVertical() {
	b.Velocity.Y = -b.Velocity.Y
}
