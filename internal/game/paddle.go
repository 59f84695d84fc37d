package game

import (
	"math"

	"github.com/diegok/botpong/internal/geom"
)

const (
	ManualSpeed     = 8.0  // max vertical step per tick for the manual paddle
	AutonomousSpeed = 12.0 // initial step for the autonomous paddle, overwritten while tracking

	ManualBounceGain     = 1.01
	AutonomousBounceGain = 1.05

	// NoTarget marks an idle paddle
	NoTarget = -1.0
)

// Profile selects how a paddle behaves
type Profile int

const (
	Manual Profile = iota
	Autonomous
)

func (p Profile) String() string {
	if p == Autonomous {
		return "autonomous"
	}
	return "manual"
}

// BounceGain is the velocity multiplier applied to a ball returned by this profile
func (p Profile) BounceGain() float64 {
	if p == Autonomous {
		return AutonomousBounceGain
	}
	return ManualBounceGain
}

// DefaultSpeed is the per-tick step a fresh paddle of this profile starts with
func (p Profile) DefaultSpeed() float64 {
	if p == Autonomous {
		return AutonomousSpeed
	}
	return ManualSpeed
}

// returnHeading is where a ball goes after this paddle hits it
func (p Profile) returnHeading() Heading {
	if p == Autonomous {
		return TowardsPlayer
	}
	return TowardsBot
}

// Paddle moves vertically toward Target. Width doubles as the ball speed ceiling
// on bounce, and Target is NoTarget while idle.
type Paddle struct {
	Profile  Profile
	Pos      geom.Vector2 // bottom-left corner
	Size     geom.Vector2
	Score    int
	Velocity float64
	Target   float64
	Speed    float64

	// field the paddle lives in, used to clamp targets
	field geom.Rect
}

// NewPaddle creates an idle paddle. Sizes must be positive.
func NewPaddle(profile Profile, pos, size geom.Vector2, field geom.Rect) *Paddle {
	return &Paddle{
		Profile:  profile,
		Pos:      pos,
		Size:     size,
		Velocity: 1,
		Target:   NoTarget,
		Speed:    profile.DefaultSpeed(),
		field:    field,
	}
}

// Bounds returns the paddle's bounding box
func (p *Paddle) Bounds() geom.Rect {
	return geom.Rect{Pos: p.Pos, Size: p.Size}
}

func (p *Paddle) Center() geom.Vector2 {
	return p.Bounds().Center()
}

// Tracking reports whether the paddle has an active target
func (p *Paddle) Tracking() bool {
	return p.Target != NoTarget
}

// SetTarget clamps y so the paddle center stays inside the field and starts tracking it
func (p *Paddle) SetTarget(y float64) {
	half := p.Size.Y / 2
	p.Target = geom.Clamp(p.field.Bottom()+half, p.field.Top()-half, y)
}

// Stop drops the current target
func (p *Paddle) Stop() {
	p.Target = NoTarget
}

// HandleInput retargets the paddle to y. x is accepted for symmetry with pointer input.
func (p *Paddle) HandleInput(x, y float64) {
	if y == p.Center().Y {
		p.Stop()
		return
	}
	p.SetTarget(y)
}

// Tick moves the paddle one step toward its target
func (p *Paddle) Tick(ball *Ball) {
	if p.Profile == Autonomous {
		p.chase(ball)
		return
	}

	// arrival is decided before any motion so the paddle never overshoots
	if p.Tracking() && math.Abs(p.Center().Y-p.Target) <= p.Speed {
		p.Stop()
	}
	if !p.Tracking() || p.Speed == 0 {
		return
	}
	p.step()
}

// chase is the autonomous tick. The paddle only reacts to a ball heading its way,
// compares ball x against its own center y, and steps as fast as the ball travels.
func (p *Paddle) chase(ball *Ball) {
	if !p.Tracking() {
		return
	}
	if ball.Heading != TowardsBot || ball.Center().X <= p.Center().Y {
		return
	}
	p.Speed = math.Abs(ball.Velocity.X)
	if p.Speed == 0 {
		return
	}
	p.step()
}

func (p *Paddle) step() {
	delta := p.Target - p.Center().Y
	if delta == 0 {
		p.Stop()
		return
	}
	dir := 1.0
	if delta < 0 {
		dir = -1.0
	}
	p.Velocity = dir * p.Speed
	p.Pos = p.Pos.Add(geom.Vec(0, p.Velocity))
}

// Bounce sends the ball back if it overlaps the paddle and reports whether it did.
// The hit point relative to the paddle center adds vertical spin, and both
// components are capped at the paddle width.
func (p *Paddle) Bounce(ball *Ball) bool {
	if !p.Bounds().Overlaps(ball.Bounds()) {
		return false
	}

	ball.Heading = p.Profile.returnHeading()

	offset := (ball.Center().Y - p.Center().Y) / (p.Size.Y / 2)
	vel := geom.Vec(-ball.Velocity.X, ball.Velocity.Y).Scale(p.Profile.BounceGain())
	vel.Y += offset

	maxVelocity := p.Size.X
	ball.Velocity = geom.ClampVector(-maxVelocity, maxVelocity, vel)
	return true
}
