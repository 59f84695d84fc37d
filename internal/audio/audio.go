package audio

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/diegok/botpong/internal/protocol"
)

const (
	sampleRate = beep.SampleRate(44100)
)

var (
	initialized bool
	muted       atomic.Bool
)

// Init initializes the audio system
func Init() error {
	if initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Second/30))
	if err != nil {
		return err
	}

	initialized = true
	return nil
}

// Close shuts down the audio system
func Close() {
	if initialized {
		speaker.Close()
		initialized = false
	}
}

// SetMuted silences or restores every cue
func SetMuted(m bool) {
	muted.Store(m)
}

// ToggleMute flips the mute state and returns the new value
func ToggleMute() bool {
	m := !muted.Load()
	muted.Store(m)
	return m
}

// Muted reports whether cues are silenced
func Muted() bool {
	return muted.Load()
}

// tone generates a sine wave at freq for duration
func tone(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := 2 * math.Pi * freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := math.Sin(phase) * 0.3
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// squareWave generates a square wave (more retro/8-bit feel)
func squareWave(freq float64, duration time.Duration) beep.Streamer {
	numSamples := sampleRate.N(duration)
	phase := 0.0
	phaseStep := freq / float64(sampleRate)

	return beep.StreamerFunc(func(samples [][2]float64) (n int, ok bool) {
		for i := range samples {
			if numSamples <= 0 {
				return i, false
			}
			val := 0.2
			if math.Mod(phase, 1.0) > 0.5 {
				val = -val
			}
			samples[i][0] = val
			samples[i][1] = val
			phase += phaseStep
			numSamples--
		}
		return len(samples), true
	})
}

// cue returns the sound for an event, or nil when the event is silent
func cue(ev protocol.Event) beep.Streamer {
	switch ev.Kind {
	case protocol.EventPaddleHit:
		// the bot's hits sound a fifth lower
		if ev.Side == protocol.SideBot {
			return squareWave(587, 50*time.Millisecond)
		}
		return squareWave(880, 50*time.Millisecond)
	case protocol.EventWallBounce:
		return squareWave(440, 30*time.Millisecond)
	case protocol.EventScore:
		if ev.Side == protocol.SidePlayer {
			return beep.Seq(
				squareWave(330, 100*time.Millisecond),
				squareWave(440, 100*time.Millisecond),
				squareWave(660, 150*time.Millisecond),
			)
		}
		return beep.Seq(
			squareWave(660, 100*time.Millisecond),
			squareWave(440, 100*time.Millisecond),
			squareWave(330, 150*time.Millisecond),
		)
	case protocol.EventMatchReset:
		return beep.Seq(
			tone(523, 120*time.Millisecond),
			tone(659, 120*time.Millisecond),
			tone(784, 240*time.Millisecond),
		)
	}
	return nil
}

// PlayEvent plays the cue for ev unless audio is off
func PlayEvent(ev protocol.Event) {
	if !initialized || muted.Load() {
		return
	}
	if s := cue(ev); s != nil {
		speaker.Play(s)
	}
}
