package gamemap

import (
	"fmt"
	"math"
)

// Grid is an immutable occupancy map. Cells are square, TileSize world
// units on a side, with cell (0, 0) at the world origin.
type Grid struct {
	rows, cols int
	tileSize   float64
	cells      []Cell // row-major: index = row*cols + col
}

// New builds a Grid from a rectangular table of 0 (empty) / 1 (wall) values.
func New(table [][]int, tileSize float64) (*Grid, error) {
	if err := checkTileSize(tileSize); err != nil {
		return nil, err
	}
	if len(table) == 0 || len(table[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	rows, cols := len(table), len(table[0])
	cells := make([]Cell, 0, rows*cols)
	for r, line := range table {
		if len(line) != cols {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", r, len(line), cols, ErrRaggedRows)
		}
		for c, v := range line {
			cell, ok := cellFromValue(v)
			if !ok {
				return nil, fmt.Errorf("cell (%d,%d) = %d: %w", r, c, v, ErrBadCell)
			}
			cells = append(cells, cell)
		}
	}
	return &Grid{rows: rows, cols: cols, tileSize: tileSize, cells: cells}, nil
}

func checkTileSize(ts float64) error {
	if !(ts > 0) || math.IsInf(ts, 0) {
		return fmt.Errorf("tile size %v: %w", ts, ErrInvalidTileSize)
	}
	return nil
}

// Rows returns the number of cell rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of cell columns.
func (g *Grid) Cols() int { return g.cols }

// TileSize returns the world size of one cell.
func (g *Grid) TileSize() float64 { return g.tileSize }

// Width returns the world width of the grid (cols × tile size).
func (g *Grid) Width() float64 { return float64(g.cols) * g.tileSize }

// Height returns the world height of the grid (rows × tile size).
func (g *Grid) Height() float64 { return float64(g.rows) * g.tileSize }

// InBounds reports whether (row, col) names a cell of the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell at (row, col); out-of-bounds cells read as Wall.
func (g *Grid) At(row, col int) Cell {
	if !g.InBounds(row, col) {
		return Wall
	}
	return g.cells[row*g.cols+col]
}

// CellOf returns the (row, col) containing world point (x, y). The result
// may be out of bounds; check with InBounds.
func (g *Grid) CellOf(x, y float64) (row, col int) {
	return int(math.Floor(y / g.tileSize)), int(math.Floor(x / g.tileSize))
}

// CellOrigin returns the world position of the top-left corner of a cell.
func (g *Grid) CellOrigin(row, col int) (x, y float64) {
	return float64(col) * g.tileSize, float64(row) * g.tileSize
}

// HasWallAt reports whether world point (x, y) is solid. Everything outside
// [0, Width) × [0, Height) is solid, NaN included.
func (g *Grid) HasWallAt(x, y float64) bool {
	if !(x >= 0 && x < g.Width() && y >= 0 && y < g.Height()) {
		return true
	}
	row, col := g.CellOf(x, y)
	// Floor of a value just below Width can round up to cols.
	if !g.InBounds(row, col) {
		return true
	}
	return g.cells[row*g.cols+col] == Wall
}

// Walls returns the number of wall cells.
func (g *Grid) Walls() int {
	n := 0
	for _, c := range g.cells {
		if c == Wall {
			n++
		}
	}
	return n
}
