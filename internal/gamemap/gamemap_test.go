package gamemap

import (
	"errors"
	"math"
	"testing"
)

func openGrid(t *testing.T, rows, cols int, ts float64) *Grid {
	t.Helper()
	table := make([][]int, rows)
	for r := range table {
		table[r] = make([]int, cols)
	}
	g, err := New(table, ts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestNewRejectsBadInput(t *testing.T) {
	cases := []struct {
		name  string
		table [][]int
		ts    float64
		want  error
	}{
		{"zero tile size", [][]int{{0}}, 0, ErrInvalidTileSize},
		{"negative tile size", [][]int{{0}}, -4, ErrInvalidTileSize},
		{"NaN tile size", [][]int{{0}}, math.NaN(), ErrInvalidTileSize},
		{"infinite tile size", [][]int{{0}}, math.Inf(1), ErrInvalidTileSize},
		{"no rows", nil, 32, ErrEmptyGrid},
		{"empty row", [][]int{{}}, 32, ErrEmptyGrid},
		{"ragged", [][]int{{0, 0}, {0}}, 32, ErrRaggedRows},
		{"bad value", [][]int{{0, 2}}, 32, ErrBadCell},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.table, tc.ts); !errors.Is(err, tc.want) {
				t.Errorf("New() err = %v; want %v", err, tc.want)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	g := Default()
	if g.Rows() != 11 || g.Cols() != 15 {
		t.Fatalf("default grid is %dx%d, want 11x15", g.Rows(), g.Cols())
	}
	if g.Width() != 480 || g.Height() != 352 {
		t.Errorf("world size = %vx%v, want 480x352", g.Width(), g.Height())
	}
}

func TestHasWallAtOutOfBounds(t *testing.T) {
	g := openGrid(t, 4, 6, 10)
	cases := []struct {
		x, y float64
	}{
		{-0.001, 5},
		{5, -0.001},
		{60, 5}, // far edge has no cell
		{5, 40},
		{1e9, 1e9},
		{-1e9, 20},
		{math.Inf(1), 5},
		{5, math.Inf(-1)},
		{math.NaN(), 5},
		{5, math.NaN()},
	}
	for _, c := range cases {
		if !g.HasWallAt(c.x, c.y) {
			t.Errorf("HasWallAt(%v,%v) = false; out-of-bounds must be solid", c.x, c.y)
		}
	}
	if g.HasWallAt(0, 0) || g.HasWallAt(59.999, 39.999) {
		t.Error("in-bounds cells of an open grid must not be solid")
	}
}

func TestHasWallAtFloorsCoordinates(t *testing.T) {
	g, err := ParseLayout([]string{
		"...",
		".#.",
		"...",
	}, 32)
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		x, y float64
		want bool
	}{
		{32, 32, true},
		{63.99, 63.99, true},
		{31.99, 40, false},
		{64, 40, false},
		{40, 64, false},
	}
	for _, c := range cases {
		if got := g.HasWallAt(c.x, c.y); got != c.want {
			t.Errorf("HasWallAt(%v,%v) = %v; want %v", c.x, c.y, got, c.want)
		}
	}
}

func TestCellOfAndOrigin(t *testing.T) {
	g := Default()
	row, col := g.CellOf(240, 176)
	if row != 5 || col != 7 {
		t.Errorf("CellOf(240,176) = (%d,%d); want (5,7)", row, col)
	}
	x, y := g.CellOrigin(row, col)
	if x != 224 || y != 160 {
		t.Errorf("CellOrigin(5,7) = (%v,%v); want (224,160)", x, y)
	}
	if g.At(5, 7) != Empty {
		t.Error("reference map center must be empty")
	}
	if g.At(-1, 0) != Wall || g.At(0, 99) != Wall {
		t.Error("At out of bounds must read as Wall")
	}
}

func TestParseLayoutRoundTrip(t *testing.T) {
	g := Default()
	got := g.Layout()
	want := DefaultLayout()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %q; want %q", i, got[i], want[i])
		}
	}
}

func TestParseLayoutErrors(t *testing.T) {
	if _, err := ParseLayout([]string{"#.", "#"}, 8); !errors.Is(err, ErrRaggedRows) {
		t.Errorf("ragged layout err = %v", err)
	}
	if _, err := ParseLayout([]string{"#x"}, 8); !errors.Is(err, ErrBadCell) {
		t.Errorf("bad glyph err = %v", err)
	}
	if _, err := ParseLayout(nil, 8); !errors.Is(err, ErrEmptyGrid) {
		t.Errorf("empty layout err = %v", err)
	}
}

func TestWalls(t *testing.T) {
	g, _ := ParseLayout([]string{"#0", "1 "}, 4)
	if n := g.Walls(); n != 2 {
		t.Errorf("Walls() = %d; want 2", n)
	}
}
