package gamemap

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultTileSize is the tile size of the reference map.
const DefaultTileSize = 32

// defaultLayout is the reference 11×15 map.
var defaultLayout = []string{
	"###############",
	"#...........#.#",
	"#....#......#.#",
	"######....#.#.#",
	"#.........#.#.#",
	"#.......#####.#",
	"#.............#",
	"#.............#",
	"######....###.#",
	"#.............#",
	"###############",
}

// Default returns the reference map at DefaultTileSize.
func Default() *Grid {
	g, err := ParseLayout(defaultLayout, DefaultTileSize)
	if err != nil {
		panic(err) // the built-in layout is known good
	}
	return g
}

// DefaultLayout returns a copy of the reference layout rows.
func DefaultLayout() []string {
	return append([]string(nil), defaultLayout...)
}

// ParseLayout builds a Grid from ASCII rows: '#' or '1' is a wall,
// '.', '0' or ' ' is empty.
func ParseLayout(lines []string, tileSize float64) (*Grid, error) {
	if err := checkTileSize(tileSize); err != nil {
		return nil, err
	}
	if len(lines) == 0 || lines[0] == "" {
		return nil, ErrEmptyGrid
	}
	cols := utf8.RuneCountInString(lines[0])
	cells := make([]Cell, 0, len(lines)*cols)
	for r, line := range lines {
		if n := utf8.RuneCountInString(line); n != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, n, cols, ErrRaggedRows)
		}
		c := 0
		for _, ch := range line {
			cell, ok := cellFromGlyph(ch)
			if !ok {
				return nil, fmt.Errorf("cell (%d,%d) = %q: %w", r, c, ch, ErrBadCell)
			}
			cells = append(cells, cell)
			c++
		}
	}
	return &Grid{rows: len(lines), cols: cols, tileSize: tileSize, cells: cells}, nil
}

// Layout renders the grid back to ASCII rows.
func (g *Grid) Layout() []string {
	out := make([]string, g.rows)
	var b strings.Builder
	for r := 0; r < g.rows; r++ {
		b.Reset()
		for c := 0; c < g.cols; c++ {
			b.WriteRune(g.cells[r*g.cols+c].Glyph())
		}
		out[r] = b.String()
	}
	return out
}
