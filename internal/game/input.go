package game

import (
	"github.com/gdamore/tcell/v2"

	"tile-raycaster/internal/viewer"
)

// Command is a non-movement request from the keyboard.
type Command uint8

const (
	CmdNone Command = iota
	CmdMove         // the key drives the viewer
	CmdQuit
	CmdToggleMap
	CmdTheme
)

// keyToCommand maps a tcell key event to a command and, for CmdMove, the
// control key it drives.
func keyToCommand(ev *tcell.EventKey) (Command, viewer.Key) {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return CmdMove, viewer.KeyForward
	case tcell.KeyDown:
		return CmdMove, viewer.KeyBack
	case tcell.KeyLeft:
		return CmdMove, viewer.KeyTurnLeft
	case tcell.KeyRight:
		return CmdMove, viewer.KeyTurnRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit, viewer.KeyNone
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W', 'k', 'K':
		return CmdMove, viewer.KeyForward
	case 's', 'S', 'j', 'J':
		return CmdMove, viewer.KeyBack
	case 'a', 'A', 'h', 'H':
		return CmdMove, viewer.KeyTurnLeft
	case 'd', 'D', 'l', 'L':
		return CmdMove, viewer.KeyTurnRight
	case 'm', 'M':
		return CmdToggleMap, viewer.KeyNone
	case 't', 'T':
		return CmdTheme, viewer.KeyNone
	case 'q', 'Q':
		return CmdQuit, viewer.KeyNone
	}
	return CmdNone, viewer.KeyNone
}
