package generate

import (
	"errors"
	"reflect"
	"testing"

	"tile-raycaster/internal/gamemap"
)

func defaultTestConfig(seed int64) *Config {
	return DefaultConfig(30, 60, seed)
}

// TestGenerateAllRoomsConnected verifies that every open cell is reachable
// from the start cell via BFS (flood-fill).
func TestGenerateAllRoomsConnected(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		res, err := Generate(defaultTestConfig(seed))
		if err != nil {
			t.Fatalf("seed=%d: %v", seed, err)
		}
		open := func(x, y int) bool {
			return y >= 0 && y < len(res.Layout) && x >= 0 && x < len(res.Layout[y]) && res.Layout[y][x] == '.'
		}
		if !open(res.StartCol, res.StartRow) {
			t.Fatalf("seed=%d: start (%d,%d) is not open", seed, res.StartCol, res.StartRow)
		}

		visited := make(map[[2]int]bool)
		queue := [][2]int{{res.StartCol, res.StartRow}}
		visited[queue[0]] = true
		dirs := [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, d := range dirs {
				next := [2]int{cur[0] + d[0], cur[1] + d[1]}
				if visited[next] || !open(next[0], next[1]) {
					continue
				}
				visited[next] = true
				queue = append(queue, next)
			}
		}

		for y, row := range res.Layout {
			for x := range row {
				if open(x, y) && !visited[[2]int{x, y}] {
					t.Errorf("seed=%d: unreachable open cell at (%d,%d)", seed, x, y)
				}
			}
		}
	}
}

// TestGenerateRoomsDoNotOverlap verifies that no two rooms share interior cells.
func TestGenerateRoomsDoNotOverlap(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		res, err := Generate(defaultTestConfig(seed))
		if err != nil {
			t.Fatal(err)
		}
		rooms := res.Rooms
		for i := 0; i < len(rooms); i++ {
			for j := i + 1; j < len(rooms); j++ {
				if rooms[i].Intersects(rooms[j]) {
					t.Errorf("seed=%d: room %d %v overlaps room %d %v",
						seed, i, rooms[i], j, rooms[j])
				}
			}
		}
	}
}

func TestGenerateBorderIsSolid(t *testing.T) {
	res, err := Generate(defaultTestConfig(3))
	if err != nil {
		t.Fatal(err)
	}
	rows, cols := len(res.Layout), len(res.Layout[0])
	for y, row := range res.Layout {
		for x := range row {
			edge := x == 0 || y == 0 || x == cols-1 || y == rows-1
			if edge && row[x] != '#' {
				t.Errorf("border cell (%d,%d) = %q, want '#'", x, y, row[x])
			}
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := Generate(defaultTestConfig(42))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Generate(defaultTestConfig(42))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different maps")
	}
}

func TestGenerateParsesAsGrid(t *testing.T) {
	res, err := Generate(DefaultConfig(11, 15, 7))
	if err != nil {
		t.Fatal(err)
	}
	g, err := gamemap.ParseLayout(res.Layout, 32)
	if err != nil {
		t.Fatalf("ParseLayout: %v", err)
	}
	if g.Rows() != 11 || g.Cols() != 15 {
		t.Errorf("grid %d×%d, want 11×15", g.Rows(), g.Cols())
	}
	if g.At(res.StartRow, res.StartCol) != gamemap.Empty {
		t.Error("start cell is a wall")
	}
}

func TestGenerateTooSmall(t *testing.T) {
	_, err := Generate(DefaultConfig(MinSize-1, 20, 0))
	if !errors.Is(err, ErrTooSmall) {
		t.Errorf("err = %v, want ErrTooSmall", err)
	}
	if _, err := Generate(DefaultConfig(MinSize, MinSize, 0)); err != nil {
		t.Errorf("smallest map: %v", err)
	}
}

func TestParseCorridorStyle(t *testing.T) {
	cases := map[string]CorridorStyle{
		"":         CorridorLShaped,
		"l":        CorridorLShaped,
		"Z":        CorridorZShaped,
		"straight": CorridorStraight,
	}
	for in, want := range cases {
		got, err := ParseCorridorStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseCorridorStyle(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseCorridorStyle("spiral"); err == nil {
		t.Error("want error for unknown style")
	}
}
