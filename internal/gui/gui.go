// Package gui is the desktop frontend: an ebiten window showing the map from
// above with the viewer and its ray fan, as the raycaster sees it.
package gui

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"tile-raycaster/internal/game"
	"tile-raycaster/internal/gamemap"
	"tile-raycaster/internal/sim"
	"tile-raycaster/internal/viewer"
)

const (
	hudHeight    = 36
	messageTicks = 120
	viewerRadius = 3
	headingLen   = 30
)

var (
	colorWall       = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	colorFloor      = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorGridLine   = color.RGBA{R: 0x22, G: 0x22, B: 0x22, A: 0xff}
	colorRay        = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0x4c}
	colorViewer     = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	colorBackground = color.RGBA{R: 0x10, G: 0x10, B: 0x10, A: 0xff}
	colorHUD        = color.RGBA{R: 0xcc, G: 0xcc, B: 0xcc, A: 0xff}
)

// bindings maps window keys to viewer keys.
var bindings = []struct {
	key ebiten.Key
	to  viewer.Key
}{
	{ebiten.KeyArrowUp, viewer.KeyForward},
	{ebiten.KeyW, viewer.KeyForward},
	{ebiten.KeyArrowDown, viewer.KeyBack},
	{ebiten.KeyS, viewer.KeyBack},
	{ebiten.KeyArrowLeft, viewer.KeyTurnLeft},
	{ebiten.KeyA, viewer.KeyTurnLeft},
	{ebiten.KeyArrowRight, viewer.KeyTurnRight},
	{ebiten.KeyD, viewer.KeyTurnRight},
}

// Input reports key edges for the current tick.
type Input interface {
	JustPressed(k ebiten.Key) bool
	JustReleased(k ebiten.Key) bool
}

type ebitenInput struct{}

func (ebitenInput) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenInput) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }

// Game implements ebiten.Game. Update advances the simulation one tick;
// Draw renders the frame Update produced.
type Game struct {
	sim      *sim.Sim
	controls viewer.Controls
	held     map[ebiten.Key]bool
	frame    sim.Frame
	input    Input
	face     text.Face
	logger   *slog.Logger

	// copyText puts a report on the clipboard.
	copyText func(string) error

	message      string
	messageTicks int
	started      time.Time
	done         bool
}

// New builds a windowed game from cfg. The first frame is cast
// immediately so Draw always has something to show.
func New(cfg *sim.Config, logger *slog.Logger) (*Game, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		sim:      s,
		held:     make(map[ebiten.Key]bool),
		input:    ebitenInput{},
		face:     text.NewGoXFace(basicfont.Face7x13),
		logger:   logger,
		copyText: clipboard.WriteAll,
		started:  time.Now(),
	}
	g.frame = s.Tick()
	return g, nil
}

// Sim exposes the simulation.
func (g *Game) Sim() *sim.Sim { return g.sim }

// Frame returns the last frame produced by Update.
func (g *Game) Frame() sim.Frame { return g.frame }

// Size returns the window size needed to show the whole map and the HUD.
func (g *Game) Size() (int, int) {
	grid := g.sim.Grid()
	return int(grid.Width()), int(grid.Height()) + hudHeight
}

// Update handles input and runs one simulation tick. It returns
// ebiten.Termination once the player quits.
func (g *Game) Update() error {
	if g.done {
		return ebiten.Termination
	}
	for _, b := range bindings {
		if g.input.JustPressed(b.key) {
			g.held[b.key] = true
			g.controls.Press(b.to)
		}
		if g.input.JustReleased(b.key) {
			delete(g.held, b.key)
			if !g.boundKeyHeld(b.to) {
				g.controls.Release(b.to)
			}
		}
	}
	if g.input.JustPressed(ebiten.KeyEscape) || g.input.JustPressed(ebiten.KeyQ) {
		g.quit()
		return ebiten.Termination
	}
	if g.input.JustPressed(ebiten.KeyC) {
		g.copyReport()
	}

	g.sim.Apply(&g.controls)
	g.frame = g.sim.Tick()
	if g.messageTicks > 0 {
		g.messageTicks--
	}
	return nil
}

// boundKeyHeld reports whether any window key bound to k is still down.
func (g *Game) boundKeyHeld(k viewer.Key) bool {
	for _, b := range bindings {
		if b.to == k && g.held[b.key] {
			return true
		}
	}
	return false
}

func (g *Game) copyReport() {
	if err := g.copyText(g.frame.Report()); err != nil {
		g.logger.Warn("clipboard: copy failed", "error", err)
		g.setMessage("copy failed")
		return
	}
	g.setMessage("report copied")
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.messageTicks = messageTicks
}

// quit records the session once.
func (g *Game) quit() {
	if g.done {
		return
	}
	g.done = true
	game.SaveSessionLog(game.SessionLog{
		Timestamp: time.Now(),
		Frontend:  "gui",
		Seconds:   time.Since(g.started).Seconds(),
		Stats:     g.sim.Stats(),
	}, g.logger)
}

// Close records the session if the window was closed without quitting.
func (g *Game) Close() { g.quit() }

// Draw renders the map, then the rays, then the viewer, then the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	grid := g.sim.Grid()
	drawGrid(screen, grid)
	drawRays(screen, g.frame)
	drawViewer(screen, g.frame.Pose)
	g.drawHUD(screen, float32(grid.Height()))
}

// Layout keeps the logical screen at map size; ebiten scales the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.Size()
}

func drawGrid(dst *ebiten.Image, grid *gamemap.Grid) {
	ts := float32(grid.TileSize())
	for r := 0; r < grid.Rows(); r++ {
		for c := 0; c < grid.Cols(); c++ {
			x, y := grid.CellOrigin(r, c)
			fill := colorFloor
			if grid.At(r, c) == gamemap.Wall {
				fill = colorWall
			}
			vector.FillRect(dst, float32(x), float32(y), ts, ts, fill, false)
			vector.StrokeRect(dst, float32(x), float32(y), ts, ts, 1, colorGridLine, false)
		}
	}
}

func drawRays(dst *ebiten.Image, f sim.Frame) {
	px, py := float32(f.Pose.X), float32(f.Pose.Y)
	for _, r := range f.Rays {
		if !r.Hit {
			continue
		}
		vector.StrokeLine(dst, px, py, float32(r.HitX), float32(r.HitY), 1, colorRay, true)
	}
}

func drawViewer(dst *ebiten.Image, p viewer.Pose) {
	x, y := float32(p.X), float32(p.Y)
	dx, dy := math.Cos(p.Heading), math.Sin(p.Heading)
	vector.FillCircle(dst, x, y, viewerRadius, colorViewer, true)
	vector.StrokeLine(dst, x, y, x+float32(dx*headingLen), y+float32(dy*headingLen), 1, colorViewer, true)
}

func (g *Game) drawHUD(dst *ebiten.Image, top float32) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(6, float64(top)+4)
	op.ColorScale.ScaleWithColor(colorHUD)
	op.LineSpacing = 14
	text.Draw(dst, g.hudText(), g.face, op)
}

// hudText is the two HUD lines: pose and move result, then the nearest wall
// and either a transient message or the key help.
func (g *Game) hudText() string {
	f := g.frame
	line1 := fmt.Sprintf("tick %d  (%.0f, %.0f)  %.1f°  %s",
		f.Tick, f.Pose.X, f.Pose.Y, f.Pose.Heading*180/math.Pi, f.Move)
	line2 := "arrows/wasd move  c copy report  q quit"
	if g.messageTicks > 0 {
		line2 = g.message
	}
	if near, ok := f.Nearest(); ok {
		line2 = fmt.Sprintf("wall %.1f  %s", near.Distance, line2)
	}
	return line1 + "\n" + line2
}
