package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/diegok/botpong/internal/audio"
	"github.com/diegok/botpong/internal/config"
	"github.com/diegok/botpong/internal/game"
	"github.com/diegok/botpong/internal/protocol"
	"github.com/diegok/botpong/internal/replay"
	"github.com/diegok/botpong/internal/ui"
)

// App drives a match from the terminal: it owns the screen, feeds input into the
// match and calls Tick at the configured rate.
type App struct {
	cfg      *config.Config
	log      zerolog.Logger
	screen   *ui.Screen
	renderer *ui.Renderer
	match    *game.Match
	recorder *replay.Recorder
	pointer  ui.Pointer

	paused bool

	quit     chan struct{}
	quitOnce sync.Once
	sigChan  chan os.Signal
}

// NewApp creates a new App instance with the given configuration.
func NewApp(cfg *config.Config, log zerolog.Logger) *App {
	return &App{
		cfg:  cfg,
		log:  log.With().Str("component", "app").Logger(),
		quit: make(chan struct{}),
	}
}

// attach binds the app to a screen
func (a *App) attach(screen *ui.Screen) {
	a.screen = screen
	a.renderer = ui.NewRenderer(screen)
}

// start opens audio, the terminal and signal handling
func (a *App) start() error {
	if a.cfg.Mute {
		audio.SetMuted(true)
	}
	// the game works without sound
	if err := audio.Init(); err != nil {
		a.log.Warn().Err(err).Msg("audio unavailable")
	}

	screen, err := ui.InitScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	a.attach(screen)

	a.sigChan = make(chan os.Signal, 1)
	signal.Notify(a.sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if _, ok := <-a.sigChan; ok {
			a.log.Info().Msg("signal received, shutting down")
			a.stop()
		}
	}()
	return nil
}

func (a *App) stop() {
	a.quitOnce.Do(func() { close(a.quit) })
}

// Run plays a match until the user quits
func (a *App) Run() error {
	if err := a.start(); err != nil {
		return err
	}
	defer a.cleanup()

	setup := a.cfg.Setup()
	setup.Logger = &a.log
	a.match = game.NewMatch(setup)
	a.match.Observe(a.onEvent)

	if a.cfg.RecordPath != "" {
		rec, err := replay.Create(a.cfg.RecordPath, a.header())
		if err != nil {
			return err
		}
		a.recorder = rec
		a.log.Info().Str("path", a.cfg.RecordPath).Msg("recording match")
	}

	a.log.Info().Int("tick_rate", a.cfg.TickRate).Int("frame_rate", a.cfg.FrameRate).
		Int("points", a.match.PointsToWin).Msg("match started")
	err := a.mainLoop()
	a.log.Info().Int("ticks", a.match.TickCount()).
		Int("player", a.match.Player.Score).Int("bot", a.match.Bot.Score).Msg("match stopped")
	return err
}

func (a *App) header() protocol.Header {
	return protocol.Header{TickRate: a.cfg.TickRate, FrameRate: a.cfg.FrameRate}
}

// pollEvents forwards screen events until quit
func (a *App) pollEvents() <-chan tcell.Event {
	events := make(chan tcell.Event)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-a.quit:
				return
			}
		}
	}()
	return events
}

// mainLoop is the only goroutine touching the match, so input and ticks never race
func (a *App) mainLoop() error {
	events := a.pollEvents()

	tick := time.NewTicker(time.Second / time.Duration(a.cfg.TickRate))
	defer tick.Stop()
	frame := time.NewTicker(time.Second / time.Duration(a.cfg.FrameRate))
	defer frame.Stop()

	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			if a.handleEvent(ev) {
				return nil
			}

		case <-tick.C:
			if !a.paused {
				a.match.Tick()
			}

		case <-frame.C:
			if err := a.render(); err != nil {
				return err
			}
		}
	}
}

// handleEvent processes keyboard and mouse events.
// Returns true if the application should quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		key, r := ev.Key(), ev.Rune()
		switch {
		case ui.IsQuitKey(key, r):
			return true
		case ui.IsPauseKey(key, r):
			a.paused = !a.paused
			a.log.Debug().Bool("paused", a.paused).Msg("pause toggled")
		case ui.IsMuteKey(key, r):
			muted := audio.ToggleMute()
			a.log.Debug().Bool("muted", muted).Msg("mute toggled")
		default:
			if dir := ui.KeyToNudge(key, r); dir != 0 && !a.paused {
				a.match.NudgeManual(dir)
			}
		}

	case *tcell.EventMouse:
		if a.paused {
			return false
		}
		switch a.pointer.Handle(ev.Buttons()) {
		case ui.PointerMove:
			col, row := ev.Position()
			x, y := a.renderer.Viewport(a.match.Snapshot().Field).Point(col, row)
			a.match.HandleManualInput(x, y)
		case ui.PointerRelease:
			a.match.HandleManualRelease()
		}

	case *tcell.EventResize:
		a.screen.Clear()
	}

	return false
}

func (a *App) status() ui.Status {
	return ui.Status{
		Paused:    a.paused,
		Muted:     audio.Muted(),
		Recording: a.recorder != nil,
	}
}

// render draws the current frame and appends it to the recording
func (a *App) render() error {
	state := a.match.Snapshot()
	a.renderer.RenderMatch(state, a.status())
	if a.recorder == nil || a.paused {
		return nil
	}
	if err := a.recorder.WriteFrame(state); err != nil {
		return fmt.Errorf("failed to record frame: %w", err)
	}
	return nil
}

// onEvent receives every match event
func (a *App) onEvent(ev protocol.Event) {
	audio.PlayEvent(ev)
	if ev.Kind == protocol.EventScore {
		a.log.Info().Int("tick", ev.Tick).Stringer("side", ev.Side).Msg("point")
	}
	if a.recorder == nil {
		return
	}
	if err := a.recorder.WriteEvent(ev); err != nil {
		a.log.Error().Err(err).Msg("failed to record event")
	}
}

// Replay plays back a recording made with --record
func (a *App) Replay(path string) error {
	rd, err := replay.Open(path)
	if err != nil {
		return err
	}
	defer rd.Close()

	if err := a.start(); err != nil {
		return err
	}
	defer a.cleanup()

	hdr := rd.Header()
	rate := hdr.FrameRate
	if rate < 1 {
		rate = a.cfg.FrameRate
	}
	a.log.Info().Str("path", path).Int("frame_rate", rate).Msg("replay started")

	events := a.pollEvents()
	frame := time.NewTicker(time.Second / time.Duration(rate))
	defer frame.Stop()

	var last protocol.MatchState
	frames := 0
	done := false
	for {
		select {
		case <-a.quit:
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ui.IsQuitKey(ev.Key(), ev.Rune()) {
					return nil
				}
				if ui.IsPauseKey(ev.Key(), ev.Rune()) {
					a.paused = !a.paused
				}
				if ui.IsMuteKey(ev.Key(), ev.Rune()) {
					audio.ToggleMute()
				}
			case *tcell.EventResize:
				a.screen.Clear()
			}

		case <-frame.C:
			if done || a.paused {
				if frames == 0 {
					continue
				}
				if done {
					a.renderer.RenderReplayEnd(last, frames)
				} else {
					a.renderer.RenderMatch(last, ui.Status{Paused: true, Muted: audio.Muted(), Replay: true})
				}
				continue
			}
			state, evs, err := rd.Next()
			if errors.Is(err, io.EOF) {
				done = true
				a.log.Info().Int("frames", frames).Msg("replay finished")
				continue
			}
			if err != nil {
				a.renderer.RenderError(err.Error())
				a.screen.PollEvent()
				return err
			}
			for _, e := range evs {
				audio.PlayEvent(e)
			}
			last = state
			frames++
			a.renderer.RenderMatch(state, ui.Status{Muted: audio.Muted(), Replay: true})
		}
	}
}

// cleanup shuts down all resources.
func (a *App) cleanup() {
	audio.Close()

	if a.recorder != nil {
		if err := a.recorder.Close(); err != nil {
			a.log.Error().Err(err).Msg("failed to close recording")
		} else {
			a.log.Info().Int("frames", a.recorder.Frames()).Msg("recording saved")
		}
		a.recorder = nil
	}

	a.stop()
	if a.screen != nil {
		a.screen.Fini()
	}

	if a.sigChan != nil {
		signal.Stop(a.sigChan)
		close(a.sigChan)
	}
}
