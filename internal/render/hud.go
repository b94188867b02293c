package render

import (
	"fmt"
	"math"

	"tile-raycaster/internal/sim"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// DrawHUD renders the status line below the view and shows the screen.
// message, if not empty, replaces the key help on the right.
func (r *Renderer) DrawHUD(f sim.Frame, message string) {
	w, h := r.screen.Size()
	hudY := h - hudRows
	if hudY < 0 {
		r.screen.Show()
		return
	}

	r.drawHLine(hudY, tcell.ColorGray)

	status := fmt.Sprintf("(%.0f, %.0f) %5.1f°  %-7s", f.Pose.X, f.Pose.Y, f.Pose.Heading*180/math.Pi, f.Move)
	if n, ok := f.Nearest(); ok {
		status += fmt.Sprintf("  wall %.1f", n.Distance)
	}
	if message == "" {
		message = "↑↓ move  ←→ turn  m map  t theme  q quit"
	}
	line := status + "  │ " + message
	r.drawText(0, hudY+1, runewidth.Truncate(line, w, "…"), tcell.StyleDefault.Foreground(tcell.ColorWhite))

	r.screen.Show()
}

func (r *Renderer) drawHLine(y int, color tcell.Color) {
	w, _ := r.screen.Size()
	style := tcell.StyleDefault.Foreground(color)
	for x := 0; x < w; x++ {
		r.screen.SetContent(x, y, '─', nil, style)
	}
}

func (r *Renderer) drawText(x, y int, text string, style tcell.Style) {
	col := x
	for _, ch := range text {
		r.screen.SetContent(col, y, ch, nil, style)
		col += max(runewidth.RuneWidth(ch), 1)
	}
}
