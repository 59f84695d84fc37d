package protocol

import (
	"encoding/gob"
)

// Side identifies one of the two paddles
type Side int

const (
	SidePlayer Side = 0 // left, manual paddle
	SideBot    Side = 1 // right, autonomous paddle
)

func (s Side) String() string {
	if s == SideBot {
		return "bot"
	}
	return "player"
}

// EventKind identifies something that happened during a tick
type EventKind int

const (
	EventPaddleHit EventKind = iota
	EventWallBounce
	EventScore
	EventMatchReset
	EventServe
)

func (k EventKind) String() string {
	switch k {
	case EventPaddleHit:
		return "paddle_hit"
	case EventWallBounce:
		return "wall_bounce"
	case EventScore:
		return "score"
	case EventMatchReset:
		return "match_reset"
	case EventServe:
		return "serve"
	}
	return "unknown"
}

// Event is emitted by the match while it runs a tick
type Event struct {
	Kind EventKind
	Tick int
	Side Side // paddle that hit, scored or is being served toward
}

// MessageType identifies the type of a recorded message
type MessageType int

const (
	MsgMatchState MessageType = iota
	MsgEvent
	MsgHeader
)

// Message is the wrapper for every recorded message
type Message struct {
	Type    MessageType
	Payload interface{}
}

// Header opens a recording
type Header struct {
	Version   int
	TickRate  int
	FrameRate int
}

// RectState is a bottom-left anchored box in field coordinates
type RectState struct {
	X, Y float64
	W, H float64
}

// BallState represents the ball's position and velocity
type BallState struct {
	RectState
	VX         float64
	VY         float64
	TowardsBot bool
}

// PaddleState represents a paddle's state
type PaddleState struct {
	RectState
	Side     Side
	Score    int
	Target   float64
	Tracking bool
}

// MatchState is everything a renderer needs to draw one frame
type MatchState struct {
	Tick        int
	Field       RectState
	Ball        BallState
	Player      PaddleState
	Bot         PaddleState
	PointsToWin int
}

// Score returns the score for side
func (s MatchState) Score(side Side) int {
	if side == SideBot {
		return s.Bot.Score
	}
	return s.Player.Score
}

func init() {
	gob.Register(Header{})
	gob.Register(Event{})
	gob.Register(RectState{})
	gob.Register(BallState{})
	gob.Register(PaddleState{})
	gob.Register(MatchState{})
}
