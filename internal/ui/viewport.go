package ui

import (
	"math"

	"github.com/diegok/botpong/internal/protocol"
)

// Viewport maps y-up field coordinates onto terminal cells. Row 0 holds the
// scoreboard and the last row the status bar; the court fills the rows between.
type Viewport struct {
	Field      protocol.RectState
	Cols, Rows int // court size in cells
	scaleX     float64
	scaleY     float64
}

// NewViewport fits field into a screenW x screenH terminal
func NewViewport(field protocol.RectState, screenW, screenH int) Viewport {
	rows := screenH - 2
	if rows < 1 {
		rows = 1
	}
	if screenW < 1 {
		screenW = 1
	}
	return Viewport{
		Field:  field,
		Cols:   screenW,
		Rows:   rows,
		scaleX: float64(screenW) / field.W,
		scaleY: float64(rows) / field.H,
	}
}

// Cell returns the screen cell holding field point (x, y)
func (v Viewport) Cell(x, y float64) (col, row int) {
	col = int(math.Floor((x - v.Field.X) * v.scaleX))
	row = 1 + int(math.Floor((v.Field.Y+v.Field.H-y)*v.scaleY))
	return col, row
}

// Span returns the cells covered by a field rect, at least one cell each way
func (v Viewport) Span(r protocol.RectState) (col, row, w, h int) {
	col, row = v.Cell(r.X, r.Y+r.H)
	right, bottom := v.Cell(r.X+r.W, r.Y)
	w = right - col
	h = bottom - row
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return col, row, w, h
}

// Point returns the field point at the middle of a screen cell
func (v Viewport) Point(col, row int) (x, y float64) {
	x = v.Field.X + (float64(col)+0.5)/v.scaleX
	y = v.Field.Y + v.Field.H - (float64(row-1)+0.5)/v.scaleY
	return x, y
}

// InCourt reports whether a screen row belongs to the court
func (v Viewport) InCourt(row int) bool {
	return row >= 1 && row <= v.Rows
}
