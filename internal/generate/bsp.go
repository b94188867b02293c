// Package generate carves random maps: BSP rooms joined by corridors,
// rendered as layout rows that gamemap.ParseLayout accepts.
package generate

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// MinSize is the smallest map Generate accepts on either axis: one 3×3
// room inside a solid border, with a tile of padding.
const MinSize = 7

// ErrTooSmall is returned for maps below MinSize.
var ErrTooSmall = errors.New("map too small to generate")

// CorridorStyle selects the shape of connecting tunnels.
type CorridorStyle uint8

const (
	CorridorLShaped CorridorStyle = iota
	CorridorZShaped
	CorridorStraight
)

// ParseCorridorStyle maps "l", "z" or "straight" to a style. The empty
// string is L-shaped.
func ParseCorridorStyle(s string) (CorridorStyle, error) {
	switch strings.ToLower(s) {
	case "", "l":
		return CorridorLShaped, nil
	case "z":
		return CorridorZShaped, nil
	case "straight":
		return CorridorStraight, nil
	}
	return 0, fmt.Errorf("unknown corridor style %q", s)
}

// Rect is an inclusive cell rectangle.
type Rect struct {
	X1, Y1, X2, Y2 int
}

// Center returns the middle cell.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Intersects reports whether r and o share any cell.
func (r Rect) Intersects(o Rect) bool {
	return r.X1 <= o.X2 && r.X2 >= o.X1 && r.Y1 <= o.Y2 && r.Y2 >= o.Y1
}

// Config drives one generation run.
type Config struct {
	Cols, Rows    int
	MinLeafSize   int
	MaxLeafSize   int
	MinRoomSize   int
	RoomPadding   int
	CorridorStyle CorridorStyle
	Rand          *rand.Rand
}

// DefaultConfig returns leaf and room sizes suited to small raycaster maps.
// The same seed always produces the same map.
func DefaultConfig(rows, cols int, seed int64) *Config {
	return &Config{
		Cols:        cols,
		Rows:        rows,
		MinLeafSize: 6,
		MaxLeafSize: 12,
		MinRoomSize: 3,
		RoomPadding: 1,
		Rand:        rand.New(rand.NewSource(seed)),
	}
}

// Result is a generated map.
type Result struct {
	Layout []string
	Rooms  []Rect
	// StartCol, StartRow is the centre cell of the first room.
	StartCol, StartRow int
}

// canvas is the carve buffer; true is open floor.
type canvas struct {
	cols, rows int
	open       []bool
}

func newCanvas(cols, rows int) *canvas {
	return &canvas{cols: cols, rows: rows, open: make([]bool, cols*rows)}
}

// inner reports whether (x, y) is inside the solid border.
func (c *canvas) inner(x, y int) bool {
	return x > 0 && y > 0 && x < c.cols-1 && y < c.rows-1
}

func (c *canvas) carve(x, y int) {
	if c.inner(x, y) {
		c.open[y*c.cols+x] = true
	}
}

func (c *canvas) isOpen(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.cols && y < c.rows && c.open[y*c.cols+x]
}

func (c *canvas) layout() []string {
	out := make([]string, c.rows)
	var b strings.Builder
	for y := 0; y < c.rows; y++ {
		b.Reset()
		for x := 0; x < c.cols; x++ {
			if c.open[y*c.cols+x] {
				b.WriteByte('.')
			} else {
				b.WriteByte('#')
			}
		}
		out[y] = b.String()
	}
	return out
}

// bspLeaf is a node in the BSP tree.
type bspLeaf struct {
	X, Y, W, H  int
	left, right *bspLeaf
	room        *Rect
}

// split divides the leaf into two children, returning false when leaf is too small.
func (l *bspLeaf) split(cfg *Config) bool {
	if l.left != nil || l.right != nil {
		return false // already split
	}
	// Horizontal when taller, vertical when wider.
	splitH := cfg.Rand.Intn(2) == 0
	if l.W > l.H && float64(l.W)/float64(l.H) >= 1.25 {
		splitH = false
	} else if l.H > l.W && float64(l.H)/float64(l.W) >= 1.25 {
		splitH = true
	}

	maxSize := l.H
	if !splitH {
		maxSize = l.W
	}
	if maxSize <= cfg.MinLeafSize*2 {
		return false
	}
	lo, hi := cfg.MinLeafSize, maxSize-cfg.MinLeafSize
	if lo >= hi {
		return false
	}
	at := lo + cfg.Rand.Intn(hi-lo+1)

	if splitH {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: l.W, H: at}
		l.right = &bspLeaf{X: l.X, Y: l.Y + at, W: l.W, H: l.H - at}
	} else {
		l.left = &bspLeaf{X: l.X, Y: l.Y, W: at, H: l.H}
		l.right = &bspLeaf{X: l.X + at, Y: l.Y, W: l.W - at, H: l.H}
	}
	return true
}

// createRooms recursively carves rooms inside terminal leaves.
func (l *bspLeaf) createRooms(c *canvas, cfg *Config, rooms *[]Rect) {
	if l.left != nil || l.right != nil {
		if l.left != nil {
			l.left.createRooms(c, cfg, rooms)
		}
		if l.right != nil {
			l.right.createRooms(c, cfg, rooms)
		}
		return
	}
	pad := cfg.RoomPadding
	minSize := cfg.MinRoomSize
	availW := max(l.W-2*pad, minSize)
	availH := max(l.H-2*pad, minSize)

	rw := min(minSize+cfg.Rand.Intn(max(1, availW-minSize+1)), l.W-2*pad)
	rh := min(minSize+cfg.Rand.Intn(max(1, availH-minSize+1)), l.H-2*pad)
	rw, rh = max(rw, 3), max(rh, 3)

	rx := max(l.X+pad+cfg.Rand.Intn(max(1, l.W-rw-2*pad+1)), 1)
	ry := max(l.Y+pad+cfg.Rand.Intn(max(1, l.H-rh-2*pad+1)), 1)
	// Keep a one-cell solid border.
	if rx+rw >= c.cols {
		rw = c.cols - rx - 1
	}
	if ry+rh >= c.rows {
		rh = c.rows - ry - 1
	}
	if rw < 3 || rh < 3 {
		return
	}

	room := Rect{X1: rx, Y1: ry, X2: rx + rw - 1, Y2: ry + rh - 1}
	l.room = &room
	for y := room.Y1; y <= room.Y2; y++ {
		for x := room.X1; x <= room.X2; x++ {
			c.carve(x, y)
		}
	}
	*rooms = append(*rooms, room)
}

// getRoom returns a room from this leaf or its children.
func (l *bspLeaf) getRoom() *Rect {
	if l.room != nil {
		return l.room
	}
	var lRoom, rRoom *Rect
	if l.left != nil {
		lRoom = l.left.getRoom()
	}
	if l.right != nil {
		rRoom = l.right.getRoom()
	}
	if lRoom == nil {
		return rRoom
	}
	return lRoom
}

// connectChildren carves corridors between the two children of a split leaf.
func (l *bspLeaf) connectChildren(c *canvas, cfg *Config) {
	if l.left == nil || l.right == nil {
		return
	}
	l.left.connectChildren(c, cfg)
	l.right.connectChildren(c, cfg)

	lRoom, rRoom := l.left.getRoom(), l.right.getRoom()
	if lRoom == nil || rRoom == nil {
		return
	}
	lCX, lCY := lRoom.Center()
	rCX, rCY := rRoom.Center()
	carveCorridor(c, lCX, lCY, rCX, rCY, cfg)
}

// Generate builds a BSP tree over the map, carves one room per leaf and
// joins sibling rooms with corridors.
func Generate(cfg *Config) (*Result, error) {
	if cfg.Cols < MinSize || cfg.Rows < MinSize {
		return nil, fmt.Errorf("%d×%d: %w", cfg.Rows, cfg.Cols, ErrTooSmall)
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(0))
	}
	c := newCanvas(cfg.Cols, cfg.Rows)
	root := &bspLeaf{W: cfg.Cols, H: cfg.Rows}

	leaves := []*bspLeaf{root}
	for splitAny := true; splitAny; {
		splitAny = false
		var next []*bspLeaf
		for _, leaf := range leaves {
			if leaf.left != nil || leaf.right != nil {
				next = append(next, leaf.left, leaf.right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize || cfg.Rand.Float64() > 0.25 {
				if leaf.split(cfg) {
					next = append(next, leaf.left, leaf.right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}

	var rooms []Rect
	root.createRooms(c, cfg, &rooms)
	root.connectChildren(c, cfg)
	if len(rooms) == 0 {
		// Leaves too cramped for a room; open the interior instead.
		room := Rect{X1: 1, Y1: 1, X2: cfg.Cols - 2, Y2: cfg.Rows - 2}
		for y := room.Y1; y <= room.Y2; y++ {
			for x := room.X1; x <= room.X2; x++ {
				c.carve(x, y)
			}
		}
		rooms = append(rooms, room)
	}

	sx, sy := rooms[0].Center()
	return &Result{Layout: c.layout(), Rooms: rooms, StartCol: sx, StartRow: sy}, nil
}
