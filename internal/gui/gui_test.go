package gui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"tile-raycaster/internal/sim"
	"tile-raycaster/internal/viewer"
)

// fakeInput replays key edges queued for the next Update.
type fakeInput struct {
	pressed  map[ebiten.Key]bool
	released map[ebiten.Key]bool
}

func newFakeInput() *fakeInput {
	return &fakeInput{pressed: map[ebiten.Key]bool{}, released: map[ebiten.Key]bool{}}
}

func (f *fakeInput) JustPressed(k ebiten.Key) bool  { return f.pressed[k] }
func (f *fakeInput) JustReleased(k ebiten.Key) bool { return f.released[k] }

func (f *fakeInput) clear() {
	clear(f.pressed)
	clear(f.released)
}

func newTestGame(t *testing.T) (*Game, *fakeInput) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	cfg := sim.DefaultConfig()
	cfg.RayCount = 8
	g, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	in := newFakeInput()
	g.input = in
	return g, in
}

// tick runs one Update with the given edges, then clears them.
func tick(t *testing.T, g *Game, in *fakeInput) {
	t.Helper()
	if err := g.Update(); err != nil {
		t.Fatalf("Update: %v", err)
	}
	in.clear()
}

func TestSizeFitsMapAndHUD(t *testing.T) {
	g, _ := newTestGame(t)
	w, h := g.Size()
	if w != 480 || h != 352+hudHeight {
		t.Errorf("Size = %d×%d, want 480×%d", w, h, 352+hudHeight)
	}
	if lw, lh := g.Layout(1920, 1080); lw != w || lh != h {
		t.Errorf("Layout = %d×%d, want %d×%d", lw, lh, w, h)
	}
}

func TestHeldKeyMovesUntilReleased(t *testing.T) {
	g, in := newTestGame(t)
	start := g.Frame().Pose

	in.pressed[ebiten.KeyArrowUp] = true
	tick(t, g, in)
	for range 9 {
		tick(t, g, in)
	}
	moved := g.Frame().Pose
	if moved.Y <= start.Y {
		t.Fatalf("y = %v after holding forward, want > %v", moved.Y, start.Y)
	}
	if g.Frame().Move != viewer.MoveOK {
		t.Errorf("Move = %v, want ok", g.Frame().Move)
	}

	in.released[ebiten.KeyArrowUp] = true
	tick(t, g, in)
	stopped := g.Frame().Pose
	tick(t, g, in)
	if g.Frame().Move != viewer.MoveIdle || g.Frame().Pose != stopped {
		t.Errorf("after release Move = %v pose %+v, want idle at %+v", g.Frame().Move, g.Frame().Pose, stopped)
	}
}

func TestReleasingOneOfTwoForwardKeysKeepsMoving(t *testing.T) {
	g, in := newTestGame(t)
	in.pressed[ebiten.KeyW] = true
	in.pressed[ebiten.KeyArrowUp] = true
	tick(t, g, in)

	in.released[ebiten.KeyArrowUp] = true
	tick(t, g, in)
	before := g.Frame().Pose
	tick(t, g, in)
	if g.Frame().Move != viewer.MoveOK || g.Frame().Pose.Y <= before.Y {
		t.Fatalf("with W still held Move = %v y = %v, want ok past %v", g.Frame().Move, g.Frame().Pose.Y, before.Y)
	}

	in.released[ebiten.KeyW] = true
	tick(t, g, in)
	tick(t, g, in)
	if g.Frame().Move != viewer.MoveIdle {
		t.Errorf("after releasing both keys Move = %v, want idle", g.Frame().Move)
	}
}

func TestReleasingOldKeyKeepsNewTurn(t *testing.T) {
	g, in := newTestGame(t)
	in.pressed[ebiten.KeyA] = true
	tick(t, g, in)
	in.pressed[ebiten.KeyD] = true
	tick(t, g, in)
	in.released[ebiten.KeyA] = true
	tick(t, g, in)

	before := g.Frame().Pose.Heading
	tick(t, g, in)
	if d := viewer.AngleDiff(before, g.Frame().Pose.Heading); d <= 0 {
		t.Errorf("heading change = %v, want a right turn", d)
	}
}

func TestCopyReport(t *testing.T) {
	g, in := newTestGame(t)
	var copied string
	g.copyText = func(s string) error {
		copied = s
		return nil
	}
	in.pressed[ebiten.KeyC] = true
	tick(t, g, in)

	if !strings.HasPrefix(copied, "tick ") {
		t.Errorf("copied %q, want a frame report", copied)
	}
	if !strings.Contains(g.hudText(), "report copied") {
		t.Errorf("HUD %q missing confirmation", g.hudText())
	}

	g.copyText = func(string) error { return errors.New("no clipboard") }
	in.pressed[ebiten.KeyC] = true
	tick(t, g, in)
	if !strings.Contains(g.hudText(), "copy failed") {
		t.Errorf("HUD %q missing failure message", g.hudText())
	}
}

func TestMessageExpires(t *testing.T) {
	g, in := newTestGame(t)
	g.setMessage("hello")
	for range messageTicks {
		tick(t, g, in)
	}
	if strings.Contains(g.hudText(), "hello") {
		t.Errorf("message still shown after %d ticks", messageTicks)
	}
	if !strings.Contains(g.hudText(), "q quit") {
		t.Errorf("HUD %q missing key help", g.hudText())
	}
}

func TestQuitWritesSessionLog(t *testing.T) {
	g, in := newTestGame(t)
	in.pressed[ebiten.KeyQ] = true
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update = %v, want ebiten.Termination", err)
	}
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("Update after quit = %v, want ebiten.Termination", err)
	}
	g.Close()

	data, err := os.ReadFile(filepath.Join(os.Getenv("XDG_DATA_HOME"), "tile-raycaster", "sessions.jsonl"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d session lines, want 1", len(lines))
	}
	if !strings.Contains(lines[0], `"frontend":"gui"`) {
		t.Errorf("session line %s missing frontend", lines[0])
	}
}
