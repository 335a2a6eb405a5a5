// Package camera provides a 2D camera system for viewport control.
package camera

// Camera controls the viewport into a bounded tile world.
// World coordinates are tiles; TileSize pixels per tile at zoom 1.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = TileSize pixels per tile)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World side length in tiles and pixels per tile
	WorldSize float32
	TileSize  float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera centered on the world, zoomed so the whole world fits.
func New(viewportW, viewportH, worldSize, tileSize float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldSize: worldSize,
		TileSize:  tileSize,
		MaxZoom:   8.0,
	}
	c.MinZoom = c.fitZoom() / 2
	c.Reset()
	return c
}

// fitZoom is the zoom at which the whole world fits the viewport.
func (c *Camera) fitZoom() float32 {
	world := c.WorldSize * c.TileSize
	return min(c.ViewportW/world, c.ViewportH/world)
}

// scale returns screen pixels per world tile.
func (c *Camera) scale() float32 {
	return c.TileSize * c.Zoom
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.scale()
	sy = c.ViewportH/2 + (wy-c.Y)*c.scale()
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
// The result may lie outside the world; callers clamp or reject it.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.scale()
	wy = c.Y + (sy-c.ViewportH/2)/c.scale()
	return wx, wy
}

// ScreenToTile converts screen coordinates to a tile index.
// ok is false when the point is outside the world.
func (c *Camera) ScreenToTile(sx, sy float32) (tx, ty int, ok bool) {
	wx, wy := c.ScreenToWorld(sx, sy)
	if wx < 0 || wy < 0 || wx >= c.WorldSize || wy >= c.WorldSize {
		return 0, 0, false
	}
	return int(wx), int(wy), true
}

// IsVisible returns true if a circle at (wx, wy) with given radius (in tiles)
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.scale()) + radius
	halfH := c.ViewportH/(2*c.scale()) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.MinZoom = c.fitZoom() / 2
	c.SetZoom(c.Zoom)
}

// Pan moves the camera by the given delta in screen pixels.
// The centre stays within the world.
func (c *Camera) Pan(dx, dy float32) {
	c.X = clamp(c.X+dx/c.scale(), 0, c.WorldSize)
	c.Y = clamp(c.Y+dy/c.scale(), 0, c.WorldSize)
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// Reset centres the camera and fits the world to the viewport.
func (c *Camera) Reset() {
	c.X = c.WorldSize / 2
	c.Y = c.WorldSize / 2
	c.SetZoom(c.fitZoom())
}

// VisibleTiles returns the inclusive tile range covered by the viewport,
// clipped to the world.
func (c *Camera) VisibleTiles() (minX, minY, maxX, maxY int) {
	x0, y0 := c.ScreenToWorld(0, 0)
	x1, y1 := c.ScreenToWorld(c.ViewportW, c.ViewportH)
	last := c.WorldSize - 1
	return int(clamp(x0, 0, last)), int(clamp(y0, 0, last)),
		int(clamp(x1, 0, last)), int(clamp(y1, 0, last))
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
