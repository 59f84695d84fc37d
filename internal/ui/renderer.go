package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/diegok/botpong/internal/protocol"
)

const (
	BallChar   = '\u2B24' // ⬤
	PaddleChar = '\u2588' // █
)

// Status holds the flags shown in the bottom bar
type Status struct {
	Paused    bool
	Muted     bool
	Recording bool
	Replay    bool
}

// Renderer handles rendering all game screens
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a new renderer with the given screen
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Viewport returns the mapping for the current terminal size
func (r *Renderer) Viewport(field protocol.RectState) Viewport {
	w, h := r.screen.Size()
	return NewViewport(field, w, h)
}

// RenderMatch draws one frame of the match
func (r *Renderer) RenderMatch(state protocol.MatchState, status Status) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()
	vp := NewViewport(state.Field, screenW, screenH)

	courtStyle := tcell.StyleDefault.Background(tcell.ColorBlack)
	r.screen.FillRect(0, 1, screenW, vp.Rows, courtStyle, ' ')

	// Center dashed line
	centerX := screenW / 2
	lineStyle := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	for y := 1; vp.InCourt(y); y += 2 {
		r.screen.SetCell(centerX, y, lineStyle, '|')
	}

	r.renderScoreboard(state, screenW)

	r.drawPaddle(vp, state.Player)
	r.drawPaddle(vp, state.Bot)

	// The ball is a single cell at its center
	cx := state.Ball.X + state.Ball.W/2
	cy := state.Ball.Y + state.Ball.H/2
	col, row := vp.Cell(cx, cy)
	if col >= 0 && col < screenW && vp.InCourt(row) {
		r.screen.SetCell(col, row, tcell.StyleDefault.Foreground(tcell.ColorWhite), BallChar)
	}

	r.renderStatus(state, status, screenW, screenH-1)

	if status.Paused {
		r.screen.DrawCentered(screenH/2, " PAUSED ", tcell.StyleDefault.Reverse(true).Bold(true))
	}

	r.screen.Show()
}

func (r *Renderer) drawPaddle(vp Viewport, p protocol.PaddleState) {
	col, row, w, h := vp.Span(p.RectState)
	style := SideStyle(p.Side)
	for dy := 0; dy < h; dy++ {
		if !vp.InCourt(row + dy) {
			continue
		}
		for dx := 0; dx < w; dx++ {
			x := col + dx
			if x >= 0 && x < vp.Cols {
				r.screen.SetCell(x, row+dy, style, PaddleChar)
			}
		}
	}
}

// scoreboardText formats the top line: [ PLAYER 3 - 2 BOT ]
func scoreboardText(state protocol.MatchState) string {
	return fmt.Sprintf("[ PLAYER %d - %d BOT ]", state.Player.Score, state.Bot.Score)
}

// renderScoreboard draws a stadium-style scoreboard at top center
func (r *Renderer) renderScoreboard(state protocol.MatchState, screenW int) {
	playerLabel := "PLAYER"
	botLabel := "BOT"
	separator := " - "
	playerScore := fmt.Sprintf("%d", state.Player.Score)
	botScore := fmt.Sprintf("%d", state.Bot.Score)

	x := (screenW - len(scoreboardText(state))) / 2
	base := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite).Bold(true)

	parts := []struct {
		text  string
		style tcell.Style
	}{
		{"[ ", base},
		{playerLabel, base.Foreground(SideColor(protocol.SidePlayer))},
		{" " + playerScore + separator + botScore + " ", base},
		{botLabel, base.Foreground(SideColor(protocol.SideBot))},
		{" ]", base},
	}
	for _, p := range parts {
		r.screen.DrawText(x, 0, p.text, p.style)
		x += len(p.text)
	}
}

// statusText formats the bottom bar
func statusText(state protocol.MatchState, status Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, " Tick: %d | First to %d resets", state.Tick, state.PointsToWin)
	if status.Replay {
		b.WriteString(" | REPLAY")
	}
	if status.Recording {
		b.WriteString(" | REC")
	}
	if status.Muted {
		b.WriteString(" | MUTED")
	}
	if status.Paused {
		b.WriteString(" | PAUSED")
	}
	return b.String()
}

func (r *Renderer) renderStatus(state protocol.MatchState, status Status, screenW, y int) {
	style := tcell.StyleDefault.Background(tcell.ColorDarkGray).Foreground(tcell.ColorWhite)
	r.screen.FillRect(0, y, screenW, 1, style, ' ')
	r.screen.DrawText(0, y, statusText(state, status), style)
}

// RenderReplayEnd is shown once a recording has been played back
func (r *Renderer) RenderReplayEnd(last protocol.MatchState, frames int) {
	r.screen.Clear()
	_, screenH := r.screen.Size()

	r.screen.DrawCentered(screenH/2-2, "=== REPLAY FINISHED ===", tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow))
	r.screen.DrawCentered(screenH/2, scoreboardText(last), tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.screen.DrawCentered(screenH/2+1, fmt.Sprintf("%d frames, %d ticks", frames, last.Tick), tcell.StyleDefault.Foreground(tcell.ColorGray))
	r.screen.DrawCentered(screenH/2+3, "Press 'q' to quit", tcell.StyleDefault.Foreground(tcell.ColorGreen))

	r.screen.Show()
}

// RenderError displays an error screen
func (r *Renderer) RenderError(err string) {
	r.screen.Clear()
	screenW, screenH := r.screen.Size()

	r.screen.DrawCentered(screenH/2-2, "ERROR", tcell.StyleDefault.Bold(true).Foreground(tcell.ColorRed))

	// Truncate if too long
	maxErrLen := screenW - 4
	errMsg := err
	if maxErrLen > 3 && len(errMsg) > maxErrLen {
		errMsg = errMsg[:maxErrLen-3] + "..."
	}
	r.screen.DrawCentered(screenH/2, errMsg, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	r.screen.DrawCentered(screenH/2+3, "Press any key to continue", tcell.StyleDefault.Foreground(tcell.ColorGray))

	r.screen.Show()
}
