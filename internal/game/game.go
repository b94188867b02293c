// Package game runs the raycaster on a terminal: tcell input, a fixed-rate
// tick and the strip renderer.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	channerics "github.com/niceyeti/channerics/channels"

	"tile-raycaster/internal/render"
	"tile-raycaster/internal/sim"
	"tile-raycaster/internal/viewer"
)

// DefaultHoldTimeout is how long a key counts as held after its last press
// or auto-repeat. Terminals never report releases.
const DefaultHoldTimeout = 300 * time.Millisecond

// messageTTL is how long a HUD message stays up.
const messageTTL = 2 * time.Second

// Game is one terminal session.
type Game struct {
	screen   tcell.Screen
	renderer *render.Renderer
	sim      *sim.Sim
	logger   *slog.Logger

	controls    viewer.Controls
	lastPress   map[viewer.Key]time.Time
	holdTimeout time.Duration

	message      string
	messageUntil time.Time

	frontend string
	player   string
	started  time.Time
	now      func() time.Time
}

// New creates a Game on the process terminal.
func New(cfg *sim.Config, logger *slog.Logger) (*Game, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	g, err := NewWithScreen(screen, cfg, logger)
	if err != nil {
		screen.Fini()
		return nil, err
	}
	return g, nil
}

// NewWithScreen creates a Game on an already initialised screen, e.g. one
// backed by an SSH channel. The ray count follows the screen width, so
// cfg.RayCount is only used until the first frame.
func NewWithScreen(screen tcell.Screen, cfg *sim.Config, logger *slog.Logger) (*Game, error) {
	s, err := sim.New(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	g := &Game{
		screen:      screen,
		renderer:    render.NewRenderer(screen),
		sim:         s,
		logger:      logger,
		lastPress:   make(map[viewer.Key]time.Time),
		holdTimeout: DefaultHoldTimeout,
		frontend:    "terminal",
		now:         time.Now,
	}
	if err := g.fitView(); err != nil {
		return nil, err
	}
	g.started = g.now()
	return g, nil
}

// SetPlayer tags the session log with a player name and frontend.
func (g *Game) SetPlayer(frontend, name string) {
	g.frontend, g.player = frontend, name
}

// Sim returns the simulation the game drives.
func (g *Game) Sim() *sim.Sim { return g.sim }

// Run is the main loop. It returns when the player quits, the screen is
// closed or ctx is done, after restoring the terminal and writing the
// session log.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Fini()
	defer g.saveLog()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// PollEvent returns nil once the screen is finalised.
	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			select {
			case eventCh <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticks := channerics.NewTicker(ctx.Done(), g.sim.Config().TickInterval())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventCh:
			if !ok {
				return nil // screen closed / disconnected
			}
			if g.handleEvent(ev) {
				return nil
			}
		case <-ticks:
			g.step()
		}
	}
}

// handleEvent applies one input event and reports whether to quit.
func (g *Game) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		g.screen.Sync()
		if err := g.fitView(); err != nil {
			g.logger.Warn("resize", "error", err)
		}
	case *tcell.EventKey:
		cmd, key := keyToCommand(ev)
		switch cmd {
		case CmdQuit:
			return true
		case CmdMove:
			g.controls.Press(key)
			g.lastPress[key] = g.now()
		case CmdToggleMap:
			if g.renderer.ToggleMap() {
				g.addMessage("minimap on")
			} else {
				g.addMessage("minimap off")
			}
		case CmdTheme:
			g.addMessage("theme " + g.renderer.CycleTheme())
		}
	}
	return false
}

// step releases keys that stopped repeating, advances one tick and draws.
func (g *Game) step() sim.Frame {
	now := g.now()
	for key, at := range g.lastPress {
		if now.Sub(at) > g.holdTimeout {
			g.controls.Release(key)
			delete(g.lastPress, key)
		}
	}
	g.sim.Apply(&g.controls)
	f := g.sim.Tick()

	msg := ""
	if now.Before(g.messageUntil) {
		msg = g.message
	}
	g.renderer.DrawFrame(f, g.sim.Grid())
	g.renderer.DrawHUD(f, msg)
	return f
}

// fitView matches the ray count to the view width.
func (g *Game) fitView() error {
	cols, _ := g.renderer.ViewSize()
	return g.sim.SetRayCount(cols)
}

func (g *Game) addMessage(msg string) {
	g.message = msg
	g.messageUntil = g.now().Add(messageTTL)
}

func (g *Game) saveLog() {
	now := g.now()
	SaveSessionLog(SessionLog{
		Timestamp: now,
		Frontend:  g.frontend,
		Player:    g.player,
		Seconds:   now.Sub(g.started).Seconds(),
		Stats:     g.sim.Stats(),
	}, g.logger)
}
