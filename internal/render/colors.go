package render

import "github.com/gdamore/tcell/v2"

// Theme holds the colors used to draw one look of the view. Walls hit on a
// vertical grid line use Vertical, walls hit on a horizontal line use the
// dimmer Horizontal, which is what gives corners their edge.
type Theme struct {
	Name       string
	Ceiling    tcell.Color
	Floor      tcell.Color
	Vertical   tcell.Color
	Horizontal tcell.Color
	MapWall    tcell.Color
	MapRay     tcell.Color
}

// Themes lists the selectable looks; the first is the default.
var Themes = []Theme{
	{
		Name:       "stone",
		Ceiling:    tcell.ColorBlack,
		Floor:      tcell.NewRGBColor(40, 34, 28),
		Vertical:   tcell.NewRGBColor(220, 220, 220),
		Horizontal: tcell.NewRGBColor(150, 150, 150),
		MapWall:    tcell.ColorGray,
		MapRay:     tcell.ColorYellow,
	},
	{
		Name:       "ice",
		Ceiling:    tcell.NewRGBColor(8, 12, 30),
		Floor:      tcell.NewRGBColor(20, 30, 45),
		Vertical:   tcell.NewRGBColor(170, 220, 255),
		Horizontal: tcell.NewRGBColor(90, 140, 200),
		MapWall:    tcell.ColorLightBlue,
		MapRay:     tcell.ColorWhite,
	},
	{
		Name:       "fungal",
		Ceiling:    tcell.NewRGBColor(10, 5, 15),
		Floor:      tcell.NewRGBColor(25, 40, 20),
		Vertical:   tcell.NewRGBColor(120, 230, 140),
		Horizontal: tcell.NewRGBColor(60, 150, 80),
		MapWall:    tcell.ColorGreen,
		MapRay:     tcell.ColorFuchsia,
	},
}

// shades runs from nearest to farthest.
var shades = []rune{'█', '▓', '▒', '░'}
