package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/diegok/botpong/internal/config"
	"github.com/diegok/botpong/internal/game"
	"github.com/diegok/botpong/internal/protocol"
	"github.com/diegok/botpong/internal/replay"
)

// Summary counts what happened during a headless run
type Summary struct {
	Ticks       int
	PaddleHits  [2]int // indexed by protocol.Side
	Points      [2]int
	WallBounces int
	Resets      int
	Frames      int
	Final       protocol.MatchState
}

func (s *Summary) observe(ev protocol.Event) {
	switch ev.Kind {
	case protocol.EventPaddleHit:
		s.PaddleHits[ev.Side]++
	case protocol.EventScore:
		s.Points[ev.Side]++
	case protocol.EventWallBounce:
		s.WallBounces++
	case protocol.EventMatchReset:
		s.Resets++
	}
}

// Write prints the summary as aligned text
func (s Summary) Write(w io.Writer) error {
	_, err := fmt.Fprintf(w,
		"ticks:        %d\n"+
			"paddle hits:  player %d, bot %d\n"+
			"points:       player %d, bot %d\n"+
			"wall bounces: %d\n"+
			"resets:       %d\n"+
			"final score:  player %d, bot %d\n",
		s.Ticks,
		s.PaddleHits[protocol.SidePlayer], s.PaddleHits[protocol.SideBot],
		s.Points[protocol.SidePlayer], s.Points[protocol.SideBot],
		s.WallBounces, s.Resets,
		s.Final.Player.Score, s.Final.Bot.Score,
	)
	if err == nil && s.Frames > 0 {
		_, err = fmt.Fprintf(w, "frames:       %d\n", s.Frames)
	}
	return err
}

// Simulate runs ticks match steps without a terminal. The player paddle gets no
// input. When cfg.RecordPath is set, a frame is recorded every TickRate/FrameRate ticks.
func Simulate(cfg *config.Config, ticks int, log zerolog.Logger) (Summary, error) {
	var sum Summary

	setup := cfg.Setup()
	setup.Logger = &log
	m := game.NewMatch(setup)
	m.Observe(sum.observe)

	var rec *replay.Recorder
	if cfg.RecordPath != "" {
		var err error
		rec, err = replay.Create(cfg.RecordPath, protocol.Header{TickRate: cfg.TickRate, FrameRate: cfg.FrameRate})
		if err != nil {
			return sum, err
		}
		m.Observe(func(ev protocol.Event) {
			if err := rec.WriteEvent(ev); err != nil {
				log.Error().Err(err).Msg("failed to record event")
			}
		})
	}

	every := cfg.TickRate / cfg.FrameRate
	if every < 1 {
		every = 1
	}

	log.Info().Int("ticks", ticks).Msg("simulation started")
	for i := 1; i <= ticks; i++ {
		m.Tick()
		if rec != nil && i%every == 0 {
			if err := rec.WriteFrame(m.Snapshot()); err != nil {
				rec.Close()
				return sum, fmt.Errorf("failed to record frame: %w", err)
			}
		}
	}

	sum.Ticks = m.TickCount()
	sum.Final = m.Snapshot()
	if rec != nil {
		sum.Frames = rec.Frames()
		if err := rec.Close(); err != nil {
			return sum, err
		}
	}
	log.Info().Int("ticks", sum.Ticks).Int("resets", sum.Resets).Msg("simulation finished")
	return sum, nil
}
