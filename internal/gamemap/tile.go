package gamemap

import "errors"

// Cell is the occupancy of one grid cell.
type Cell uint8

const (
	Empty Cell = iota
	Wall
)

// Construction errors. New and ParseLayout wrap these with position details.
var (
	ErrInvalidTileSize = errors.New("tile size must be a positive finite number")
	ErrEmptyGrid       = errors.New("grid has no cells")
	ErrRaggedRows      = errors.New("grid rows differ in length")
	ErrBadCell         = errors.New("unknown cell value")
)

// cellFromValue converts an authoring-table value (0 or 1).
func cellFromValue(v int) (Cell, bool) {
	switch v {
	case 0:
		return Empty, true
	case 1:
		return Wall, true
	}
	return Empty, false
}

// cellFromGlyph converts an ASCII layout glyph.
func cellFromGlyph(r rune) (Cell, bool) {
	switch r {
	case '#', '1':
		return Wall, true
	case '.', '0', ' ':
		return Empty, true
	}
	return Empty, false
}

// Glyph returns the ASCII layout glyph for the cell.
func (c Cell) Glyph() rune {
	if c == Wall {
		return '#'
	}
	return '.'
}
