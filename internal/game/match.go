package game

import (
	"github.com/rs/zerolog"

	"github.com/diegok/botpong/internal/geom"
	"github.com/diegok/botpong/internal/protocol"
)

const (
	TickRate       = 300 // ticks per second the speeds and gains are tuned for
	DefaultServe   = 6.0 // horizontal serve speed
	DefaultPoints  = 10  // reaching this resets both scores
	NudgeStep      = 40.0
	DefaultPaddleW = 25.0
	DefaultPaddleH = 200.0
	DefaultBallW   = 50.0
)

// Setup describes a match. Field, paddle and ball sizes must be positive.
type Setup struct {
	Field       geom.Rect
	PaddleSize  geom.Vector2
	BallSize    geom.Vector2
	PlayerSpeed float64 // 0 uses ManualSpeed
	BotSpeed    float64 // 0 uses AutonomousSpeed
	ServeSpeed  float64 // 0 uses DefaultServe
	PointsToWin int     // 0 uses DefaultPoints
	Logger      *zerolog.Logger
}

// DefaultSetup is an 800x600 field with the classic paddle and ball sizes
func DefaultSetup() Setup {
	return Setup{
		Field:      geom.NewRect(0, 0, 800, 600),
		PaddleSize: geom.Vec(DefaultPaddleW, DefaultPaddleH),
		BallSize:   geom.Vec(DefaultBallW, DefaultBallW),
	}
}

// Match owns the ball and both paddles and runs the per-tick update.
// Tick and the Handle* methods must be called from one goroutine.
type Match struct {
	Field       geom.Rect
	Ball        *Ball
	Player      *Paddle // left, driven by input
	Bot         *Paddle // right, tracks the ball
	PointsToWin int

	serveSpeed float64
	tick       int
	observers  []func(protocol.Event)
	log        zerolog.Logger
}

// NewMatch builds a match and serves toward the player
func NewMatch(s Setup) *Match {
	m := &Match{
		Field:       s.Field,
		PointsToWin: s.PointsToWin,
		serveSpeed:  s.ServeSpeed,
		log:         zerolog.Nop(),
	}
	if s.Logger != nil {
		m.log = s.Logger.With().Str("component", "match").Logger()
	}
	if m.PointsToWin <= 0 {
		m.PointsToWin = DefaultPoints
	}
	if m.serveSpeed == 0 {
		m.serveSpeed = DefaultServe
	}

	center := s.Field.Center()
	paddleY := center.Y - s.PaddleSize.Y/2

	m.Player = NewPaddle(Manual, geom.Vec(s.Field.Left(), paddleY), s.PaddleSize, s.Field)
	m.Bot = NewPaddle(Autonomous, geom.Vec(s.Field.Right()-s.PaddleSize.X, paddleY), s.PaddleSize, s.Field)
	if s.PlayerSpeed > 0 {
		m.Player.Speed = s.PlayerSpeed
	}
	if s.BotSpeed > 0 {
		m.Bot.Speed = s.BotSpeed
	}

	m.Ball = NewBall(center, s.BallSize)
	m.Serve(TowardsPlayer, geom.Vec(-m.serveSpeed, 0))
	return m
}

// Observe registers fn to receive every event the match emits
func (m *Match) Observe(fn func(protocol.Event)) {
	m.observers = append(m.observers, fn)
}

// TickCount returns the number of ticks run so far
func (m *Match) TickCount() int {
	return m.tick
}

// Serve recenters the ball and launches it with velocity
func (m *Match) Serve(heading Heading, velocity geom.Vector2) {
	m.Ball.SetCenter(m.Field.Center())
	m.Ball.Velocity = velocity
	m.Ball.Heading = heading

	m.log.Debug().Int("tick", m.tick).Float64("vx", velocity.X).Float64("vy", velocity.Y).Msg("serve")
	m.emit(protocol.EventServe, headingSide(heading))
}

// Tick runs one simulation step. The order of the steps is significant.
func (m *Match) Tick() {
	m.tick++

	m.Ball.Advance()
	m.Player.Tick(m.Ball)

	// the bot only wakes up past the quarter line and while it is not covering the ball
	if m.Ball.Center().X > m.Field.Left()+m.Field.Size.X/4 {
		ball, bot := m.Ball.Bounds(), m.Bot.Bounds()
		if ball.Bottom() > bot.Top() || ball.Top() < bot.Bottom() {
			c := m.Ball.Center()
			m.Bot.HandleInput(c.X, c.Y)
			m.Bot.Tick(m.Ball)
		}
	}

	if m.Player.Bounce(m.Ball) {
		m.emit(protocol.EventPaddleHit, protocol.SidePlayer)
	}
	if m.Bot.Bounce(m.Ball) {
		m.emit(protocol.EventPaddleHit, protocol.SideBot)
	}

	if ball := m.Ball.Bounds(); ball.Bottom() < m.Field.Bottom() || ball.Top() > m.Field.Top() {
		m.Ball.BounceVertical()
		m.emit(protocol.EventWallBounce, headingSide(m.Ball.Heading))
	}

	m.checkScore()
}

// checkScore awards a point when the ball leaves the field on either side
func (m *Match) checkScore() {
	if m.Ball.Bounds().Left() < m.Field.Left() {
		m.award(protocol.SideBot)
		m.Serve(TowardsBot, geom.Vec(m.serveSpeed, 0))
	}
	if m.Ball.Bounds().Right() > m.Field.Right() {
		m.award(protocol.SidePlayer)
		m.Serve(TowardsPlayer, geom.Vec(-m.serveSpeed, 0))
	}
}

func (m *Match) award(side protocol.Side) {
	p := m.paddle(side)
	p.Score++
	m.log.Debug().Int("tick", m.tick).Stringer("side", side).
		Int("player", m.Player.Score).Int("bot", m.Bot.Score).Msg("score")
	m.emit(protocol.EventScore, side)

	if p.Score >= m.PointsToWin {
		m.Player.Score = 0
		m.Bot.Score = 0
		m.log.Info().Int("tick", m.tick).Stringer("winner", side).Msg("match reset")
		m.emit(protocol.EventMatchReset, side)
	}
}

// HandleManualInput forwards pointer coordinates to the player paddle when they fall
// on the player's half of the field.
func (m *Match) HandleManualInput(x, y float64) {
	if x < m.Field.Center().X {
		m.Player.HandleInput(x, y)
	}
}

// HandleManualRelease zeroes the player paddle velocity. Tracking continues.
func (m *Match) HandleManualRelease() {
	m.Player.Velocity = 0
}

// NudgeManual moves the player target one NudgeStep up (dir > 0) or down (dir < 0)
func (m *Match) NudgeManual(dir int) {
	if dir == 0 {
		return
	}
	base := m.Player.Center().Y
	if m.Player.Tracking() {
		base = m.Player.Target
	}
	step := NudgeStep
	if dir < 0 {
		step = -step
	}
	m.Player.HandleInput(m.Player.Center().X, base+step)
}

// Snapshot returns the read-only observables a renderer needs
func (m *Match) Snapshot() protocol.MatchState {
	return protocol.MatchState{
		Tick:  m.tick,
		Field: rectState(m.Field),
		Ball: protocol.BallState{
			RectState:  rectState(m.Ball.Bounds()),
			VX:         m.Ball.Velocity.X,
			VY:         m.Ball.Velocity.Y,
			TowardsBot: m.Ball.Heading == TowardsBot,
		},
		Player:      paddleState(m.Player, protocol.SidePlayer),
		Bot:         paddleState(m.Bot, protocol.SideBot),
		PointsToWin: m.PointsToWin,
	}
}

func (m *Match) paddle(side protocol.Side) *Paddle {
	if side == protocol.SideBot {
		return m.Bot
	}
	return m.Player
}

func (m *Match) emit(kind protocol.EventKind, side protocol.Side) {
	ev := protocol.Event{Kind: kind, Tick: m.tick, Side: side}
	for _, fn := range m.observers {
		fn(ev)
	}
}

func headingSide(h Heading) protocol.Side {
	if h == TowardsBot {
		return protocol.SideBot
	}
	return protocol.SidePlayer
}

func rectState(r geom.Rect) protocol.RectState {
	return protocol.RectState{X: r.Pos.X, Y: r.Pos.Y, W: r.Size.X, H: r.Size.Y}
}

func paddleState(p *Paddle, side protocol.Side) protocol.PaddleState {
	return protocol.PaddleState{
		RectState: rectState(p.Bounds()),
		Side:      side,
		Score:     p.Score,
		Target:    p.Target,
		Tracking:  p.Tracking(),
	}
}
