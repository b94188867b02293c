package render

import "math"

// Camera translates world coordinates into minimap screen cells. Each map
// tile takes 2 terminal columns and 1 row so tiles come out roughly square.
type Camera struct {
	TileSize   float64
	OffsetX    float64 // leftmost visible tile column
	OffsetY    float64 // topmost visible tile row
	ViewWidth  int     // in terminal columns
	ViewHeight int     // in terminal rows
}

// NewCamera creates a minimap camera centered on world position (cx, cy).
func NewCamera(tileSize, cx, cy float64, viewW, viewH int) *Camera {
	c := &Camera{TileSize: tileSize, ViewWidth: viewW, ViewHeight: viewH}
	c.Center(cx, cy)
	return c
}

// Center repositions the camera so world position (cx, cy) is in the middle.
func (c *Camera) Center(cx, cy float64) {
	c.OffsetX = cx/c.TileSize - float64(c.ViewWidth)/4
	c.OffsetY = cy/c.TileSize - float64(c.ViewHeight)/2
}

// Clamp pins the camera inside a map of rows×cols tiles when the map is
// larger than the view, and to the top-left corner when it is not.
func (c *Camera) Clamp(rows, cols int) {
	c.OffsetX = clampOffset(c.OffsetX, float64(cols), float64(c.ViewWidth)/2)
	c.OffsetY = clampOffset(c.OffsetY, float64(rows), float64(c.ViewHeight))
}

func clampOffset(off, size, view float64) float64 {
	if size <= view {
		return 0
	}
	return math.Max(0, math.Min(off, size-view))
}

// WorldToScreen converts world (wx, wy) to a screen cell. visible is false
// when the cell falls outside the viewport.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy int, visible bool) {
	sx = int(math.Floor((wx/c.TileSize - c.OffsetX) * 2))
	sy = int(math.Floor(wy/c.TileSize - c.OffsetY))
	visible = sx >= 0 && sx < c.ViewWidth && sy >= 0 && sy < c.ViewHeight
	return
}

// ScreenToWorld converts a screen cell to the world position of its
// top-left corner.
func (c *Camera) ScreenToWorld(sx, sy int) (float64, float64) {
	return (float64(sx)/2 + c.OffsetX) * c.TileSize, (float64(sy) + c.OffsetY) * c.TileSize
}
