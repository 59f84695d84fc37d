package ui

import (
	"github.com/gdamore/tcell/v2"
)

// KeyToNudge converts a key event into a paddle nudge: +1 up, -1 down, 0 none
func KeyToNudge(key tcell.Key, r rune) int {
	switch key {
	case tcell.KeyUp:
		return 1
	case tcell.KeyDown:
		return -1
	case tcell.KeyRune:
		switch r {
		case 'w', 'W':
			return 1
		case 's', 'S':
			return -1
		}
	}
	return 0
}

// IsQuitKey returns true if the key should quit the application
func IsQuitKey(key tcell.Key, r rune) bool {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		return true
	}
	if key == tcell.KeyRune && (r == 'q' || r == 'Q') {
		return true
	}
	return false
}

func IsMuteKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyRune && (r == 'm' || r == 'M')
}

func IsPauseKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyRune && (r == 'p' || r == 'P' || r == ' ')
}

// PointerAction is what a mouse event means for the player paddle
type PointerAction int

const (
	PointerNone PointerAction = iota
	PointerMove
	PointerRelease
)

// Pointer turns raw button masks into press/drag and release actions
type Pointer struct {
	down bool
}

// Handle classifies a mouse event by its button mask
func (p *Pointer) Handle(buttons tcell.ButtonMask) PointerAction {
	if buttons&tcell.ButtonPrimary != 0 {
		p.down = true
		return PointerMove
	}
	if p.down {
		p.down = false
		return PointerRelease
	}
	return PointerNone
}
