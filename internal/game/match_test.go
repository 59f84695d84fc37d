package game

import (
	"testing"

	"github.com/diegok/botpong/internal/geom"
	"github.com/diegok/botpong/internal/protocol"
)

// newTestMatch returns a match on an 800x600 field with a small ball
func newTestMatch() *Match {
	setup := DefaultSetup()
	setup.BallSize = geom.Vec(4, 4)
	return NewMatch(setup)
}

// recordEvents collects every event the match emits
func recordEvents(m *Match) *[]protocol.Event {
	events := &[]protocol.Event{}
	m.Observe(func(ev protocol.Event) {
		*events = append(*events, ev)
	})
	return events
}

func countKind(events []protocol.Event, kind protocol.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func TestNewMatch(t *testing.T) {
	m := NewMatch(DefaultSetup())

	if m.Ball.Center() != geom.Vec(400, 300) {
		t.Errorf("expected ball at field center, got %v", m.Ball.Center())
	}
	if m.Ball.Velocity != geom.Vec(-6, 0) {
		t.Errorf("expected initial velocity (-6,0), got %v", m.Ball.Velocity)
	}
	if m.Ball.Heading != TowardsPlayer {
		t.Errorf("expected initial serve toward player, got %d", m.Ball.Heading)
	}
	if m.Player.Profile != Manual || m.Bot.Profile != Autonomous {
		t.Errorf("unexpected profiles: player=%s bot=%s", m.Player.Profile, m.Bot.Profile)
	}
	if m.Player.Bounds().Left() != 0 {
		t.Errorf("expected player on the left edge, got x=%f", m.Player.Pos.X)
	}
	if m.Bot.Bounds().Right() != 800 {
		t.Errorf("expected bot on the right edge, got right=%f", m.Bot.Bounds().Right())
	}
	if m.Player.Center().Y != 300 || m.Bot.Center().Y != 300 {
		t.Errorf("expected paddles centered vertically, got %f and %f", m.Player.Center().Y, m.Bot.Center().Y)
	}
	if m.PointsToWin != DefaultPoints {
		t.Errorf("expected PointsToWin=%d, got %d", DefaultPoints, m.PointsToWin)
	}
}

func TestMatch_SetupOverrides(t *testing.T) {
	setup := DefaultSetup()
	setup.PlayerSpeed = 4
	setup.BotSpeed = 3
	setup.ServeSpeed = 2
	setup.PointsToWin = 3

	m := NewMatch(setup)

	if m.Player.Speed != 4 || m.Bot.Speed != 3 {
		t.Errorf("expected speeds 4/3, got %f/%f", m.Player.Speed, m.Bot.Speed)
	}
	if m.Ball.Velocity != geom.Vec(-2, 0) {
		t.Errorf("expected serve velocity (-2,0), got %v", m.Ball.Velocity)
	}
	if m.PointsToWin != 3 {
		t.Errorf("expected PointsToWin=3, got %d", m.PointsToWin)
	}
}

func TestMatch_Serve(t *testing.T) {
	tests := []struct {
		name    string
		heading Heading
		vel     geom.Vector2
	}{
		{"toward bot", TowardsBot, geom.Vec(6, 0)},
		{"toward player", TowardsPlayer, geom.Vec(-6, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch()
			m.Ball.Pos = geom.Vec(12, 34)
			m.Ball.Velocity = geom.Vec(20, 20)

			m.Serve(tt.heading, tt.vel)

			if m.Ball.Center() != m.Field.Center() {
				t.Errorf("expected ball at %v, got %v", m.Field.Center(), m.Ball.Center())
			}
			if m.Ball.Velocity != tt.vel {
				t.Errorf("expected velocity %v, got %v", tt.vel, m.Ball.Velocity)
			}
			if m.Ball.Heading != tt.heading {
				t.Errorf("expected heading %d, got %d", tt.heading, m.Ball.Heading)
			}
		})
	}
}

func TestMatch_BallAdvancesEachTick(t *testing.T) {
	m := newTestMatch()
	m.Player.Pos.Y = 0 // keep the paddle out of the ball's path

	for i := 0; i < 10; i++ {
		prev := m.Ball.Pos
		m.Tick()
		want := prev.Add(m.Ball.Velocity)
		if m.Ball.Pos != want {
			t.Fatalf("tick %d: expected %v, got %v", i+1, want, m.Ball.Pos)
		}
	}
	if m.TickCount() != 10 {
		t.Errorf("expected TickCount=10, got %d", m.TickCount())
	}
}

func TestMatch_MissOnLeftScoresForBot(t *testing.T) {
	m := newTestMatch()
	m.Player.Pos.Y = 0 // paddle spans 0..200, clear of the ball at y=300
	events := recordEvents(m)

	for i := 0; i < 66; i++ {
		m.Tick()
	}
	if m.Bot.Score != 0 {
		t.Fatalf("scored too early: bot=%d", m.Bot.Score)
	}
	if m.Ball.Center().X != 400-6*66 {
		t.Fatalf("expected ball x=%d after 66 ticks, got %f", 400-6*66, m.Ball.Center().X)
	}

	m.Tick()

	if m.Bot.Score != 1 {
		t.Errorf("expected bot score 1 after tick 67, got %d", m.Bot.Score)
	}
	if m.Player.Score != 0 {
		t.Errorf("expected player score 0, got %d", m.Player.Score)
	}
	if m.Ball.Center() != geom.Vec(400, 300) {
		t.Errorf("expected re-serve from center, got %v", m.Ball.Center())
	}
	if m.Ball.Velocity != geom.Vec(6, 0) {
		t.Errorf("expected serve velocity (6,0), got %v", m.Ball.Velocity)
	}
	if m.Ball.Heading != TowardsBot {
		t.Errorf("expected heading toward bot, got %d", m.Ball.Heading)
	}
	if n := countKind(*events, protocol.EventScore); n != 1 {
		t.Errorf("expected exactly one score event, got %d", n)
	}
	if n := countKind(*events, protocol.EventServe); n != 1 {
		t.Errorf("expected exactly one serve event, got %d", n)
	}
	if n := countKind(*events, protocol.EventPaddleHit); n != 0 {
		t.Errorf("expected no paddle hits, got %d", n)
	}
}

func TestMatch_MissOnRightScoresForPlayer(t *testing.T) {
	m := newTestMatch()
	// a short bot parked at the top cannot reach the ball in time
	m.Bot.Size = geom.Vec(25, 10)
	m.Bot.Pos.Y = 590
	m.Serve(TowardsBot, geom.Vec(6, 0))
	events := recordEvents(m)

	for i := 0; i < 100 && m.Player.Score == 0; i++ {
		m.Tick()
	}

	if m.Player.Score != 1 {
		t.Fatalf("expected player score 1, got %d", m.Player.Score)
	}
	if m.Ball.Velocity != geom.Vec(-6, 0) {
		t.Errorf("expected serve velocity (-6,0), got %v", m.Ball.Velocity)
	}
	if m.Ball.Heading != TowardsPlayer {
		t.Errorf("expected heading toward player, got %d", m.Ball.Heading)
	}
	if m.Ball.Center() != geom.Vec(400, 300) {
		t.Errorf("expected ball recentered, got %v", m.Ball.Center())
	}
	if n := countKind(*events, protocol.EventScore); n != 1 {
		t.Errorf("expected exactly one score event, got %d", n)
	}
}

func TestMatch_ScoresResetAtPointsToWin(t *testing.T) {
	m := newTestMatch()
	events := recordEvents(m)
	m.Bot.Score = 9
	m.Player.Score = 4
	m.Ball.Pos = geom.Vec(-1, 298)

	m.Tick()

	if m.Bot.Score != 0 || m.Player.Score != 0 {
		t.Errorf("expected both scores reset, got player=%d bot=%d", m.Player.Score, m.Bot.Score)
	}
	if n := countKind(*events, protocol.EventMatchReset); n != 1 {
		t.Errorf("expected one reset event, got %d", n)
	}
}

func TestMatch_ScoreNeverExceedsPointsToWin(t *testing.T) {
	m := newTestMatch()
	m.Player.Pos.Y = 0
	events := recordEvents(m)

	max := 0
	for i := 0; i < 2000; i++ {
		m.Tick()
		if m.Bot.Score > max {
			max = m.Bot.Score
		}
		if m.Bot.Score >= m.PointsToWin {
			t.Fatalf("tick %d: bot score reached %d", i, m.Bot.Score)
		}
	}
	if max != m.PointsToWin-1 {
		t.Errorf("expected bot score to climb to %d, max was %d", m.PointsToWin-1, max)
	}
	if n := countKind(*events, protocol.EventMatchReset); n != 1 {
		t.Errorf("expected one reset event, got %d", n)
	}
}

func TestMatch_WallBounce(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		vy   float64
	}{
		{"through floor", 1, -3},
		{"through ceiling", 597, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch()
			events := recordEvents(m)
			m.Ball.Pos = geom.Vec(398, tt.y)
			m.Ball.Velocity = geom.Vec(-6, tt.vy)

			m.Tick()

			if m.Ball.Velocity.Y != -tt.vy {
				t.Errorf("expected VY=%f, got %f", -tt.vy, m.Ball.Velocity.Y)
			}
			if n := countKind(*events, protocol.EventWallBounce); n != 1 {
				t.Errorf("expected one wall bounce event, got %d", n)
			}
		})
	}
}

func TestMatch_NoWallBounceInsideField(t *testing.T) {
	m := newTestMatch()
	m.Ball.Velocity = geom.Vec(-6, 2)

	m.Tick()

	if m.Ball.Velocity.Y != 2 {
		t.Errorf("expected VY unchanged, got %f", m.Ball.Velocity.Y)
	}
}

func TestMatch_PlayerPaddleReturnsBall(t *testing.T) {
	m := newTestMatch()
	events := recordEvents(m)

	for i := 0; i < 70 && m.Ball.Heading == TowardsPlayer; i++ {
		m.Tick()
	}

	if m.Ball.Heading != TowardsBot {
		t.Fatal("expected player paddle to return the ball")
	}
	if m.Ball.Velocity.X <= 0 {
		t.Errorf("expected ball moving right, got VX=%f", m.Ball.Velocity.X)
	}
	if !almostEqual(m.Ball.Velocity.X, 6.06) {
		t.Errorf("expected VX=6.06, got %f", m.Ball.Velocity.X)
	}
	if m.Bot.Score != 0 {
		t.Errorf("expected no score, got bot=%d", m.Bot.Score)
	}
	if n := countKind(*events, protocol.EventPaddleHit); n == 0 {
		t.Error("expected a paddle hit event")
	}
	if (*events)[0].Side != protocol.SidePlayer {
		t.Errorf("expected first hit by player, got %s", (*events)[0].Side)
	}
}

func TestMatch_BotNeverMovesWhileBallHeadsAway(t *testing.T) {
	m := newTestMatch()
	m.Player.Pos.Y = 0
	m.Ball.SetCenter(geom.Vec(700, 550))
	m.Ball.Velocity = geom.Vec(-6, 0)
	m.Ball.Heading = TowardsPlayer

	start := m.Bot.Pos
	for i := 0; i < 40; i++ {
		m.Tick()
	}

	if m.Bot.Pos != start {
		t.Errorf("bot moved from %v to %v while the ball headed away", start, m.Bot.Pos)
	}
}

func TestMatch_BotTracksIncomingBall(t *testing.T) {
	m := newTestMatch()
	m.Ball.SetCenter(geom.Vec(500, 480))
	m.Ball.Velocity = geom.Vec(6, 0)
	m.Ball.Heading = TowardsBot

	m.Tick()

	if !m.Bot.Tracking() {
		t.Fatal("expected bot to pick up a target")
	}
	if m.Bot.Target != 480 {
		t.Errorf("expected bot target 480, got %f", m.Bot.Target)
	}
	if m.Bot.Center().Y != 306 {
		t.Errorf("expected bot to step 6 toward the ball, center Y=%f", m.Bot.Center().Y)
	}
}

func TestMatch_BotLazyBeforeQuarterLine(t *testing.T) {
	m := newTestMatch()
	m.Ball.SetCenter(geom.Vec(150, 480))
	m.Ball.Velocity = geom.Vec(6, 0)
	m.Ball.Heading = TowardsBot

	m.Tick()

	if m.Bot.Tracking() {
		t.Errorf("expected bot idle before the quarter line, target=%f", m.Bot.Target)
	}
}

func TestMatch_BotStaysWhileCoveringBall(t *testing.T) {
	m := newTestMatch()
	m.Ball.SetCenter(geom.Vec(500, 320))
	m.Ball.Velocity = geom.Vec(6, 0)
	m.Ball.Heading = TowardsBot

	m.Tick()

	if m.Bot.Tracking() || m.Bot.Center().Y != 300 {
		t.Errorf("expected bot to hold while covering the ball, center Y=%f", m.Bot.Center().Y)
	}
}

func TestMatch_HandleManualInput(t *testing.T) {
	m := newTestMatch()

	m.HandleManualInput(500, 450) // right half is ignored
	if m.Player.Tracking() {
		t.Errorf("expected input on the right half to be ignored, target=%f", m.Player.Target)
	}

	m.HandleManualInput(100, 450)
	if m.Player.Target != 450 {
		t.Errorf("expected target 450, got %f", m.Player.Target)
	}

	m.HandleManualInput(100, 590)
	if m.Player.Target != 500 {
		t.Errorf("expected target clamped to 500, got %f", m.Player.Target)
	}
}

func TestMatch_HandleManualRelease(t *testing.T) {
	m := newTestMatch()
	m.HandleManualInput(100, 450)
	m.Tick()

	m.HandleManualRelease()

	if m.Player.Velocity != 0 {
		t.Errorf("expected velocity 0, got %f", m.Player.Velocity)
	}
	if !m.Player.Tracking() {
		t.Error("release must not stop tracking")
	}
}

func TestMatch_NudgeManual(t *testing.T) {
	m := newTestMatch()

	m.NudgeManual(1)
	if m.Player.Target != 300+NudgeStep {
		t.Errorf("expected target %f, got %f", 300+NudgeStep, m.Player.Target)
	}

	m.NudgeManual(1)
	if m.Player.Target != 300+2*NudgeStep {
		t.Errorf("expected nudges to accumulate, got %f", m.Player.Target)
	}

	m.NudgeManual(-1)
	if m.Player.Target != 300+NudgeStep {
		t.Errorf("expected target %f, got %f", 300+NudgeStep, m.Player.Target)
	}

	before := m.Player.Target
	m.NudgeManual(0)
	if m.Player.Target != before {
		t.Errorf("zero nudge changed target to %f", m.Player.Target)
	}
}

func TestMatch_Snapshot(t *testing.T) {
	m := newTestMatch()
	m.Bot.Score = 3
	m.HandleManualInput(100, 450)
	m.Tick()

	s := m.Snapshot()

	if s.Tick != 1 {
		t.Errorf("expected Tick=1, got %d", s.Tick)
	}
	if s.Field != (protocol.RectState{W: 800, H: 600}) {
		t.Errorf("unexpected field %+v", s.Field)
	}
	if s.Ball.X != m.Ball.Pos.X || s.Ball.W != 4 || s.Ball.VX != -6 || s.Ball.TowardsBot {
		t.Errorf("unexpected ball %+v", s.Ball)
	}
	if s.Player.Side != protocol.SidePlayer || !s.Player.Tracking || s.Player.Target != 450 {
		t.Errorf("unexpected player %+v", s.Player)
	}
	if s.Bot.Side != protocol.SideBot || s.Bot.Score != 3 || s.Score(protocol.SideBot) != 3 {
		t.Errorf("unexpected bot %+v", s.Bot)
	}
	if s.PointsToWin != DefaultPoints {
		t.Errorf("expected PointsToWin=%d, got %d", DefaultPoints, s.PointsToWin)
	}
}
