// Package camera provides a 2D camera system for viewport control.
package camera

import "math"

// Camera controls the viewport into the grid. World coordinates are pixels
// at zoom 1, so a cell spans CellPitch world units.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// World dimensions (grid size times cell pitch)
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// Zoom limits relative to the zoom that fits the whole map.
const (
	minZoomFactor = 1.0 / 16
	maxZoomFactor = 1 << 16
)

// New creates a camera that shows the whole world centered in the viewport.
func New(viewportW, viewportH, worldW, worldH float32) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		WorldW:    worldW,
		WorldH:    worldH,
	}
	c.Reset()
	return c
}

// FitZoom returns the zoom at which the whole world just fits the viewport.
func (c *Camera) FitZoom() float32 {
	return min(c.ViewportW/c.WorldW, c.ViewportH/c.WorldH)
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX && wy+radius >= minY && wy-radius <= maxY
}

// Resize updates viewport dimensions and refits the whole world.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.Reset()
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the world point under (sx, sy) fixed
// on screen.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	ax, ay := c.ScreenToWorld(sx, sy)
	c.X += wx - ax
	c.Y += wy - ay
}

// Reset centers the world and fits it to the viewport.
func (c *Camera) Reset() {
	c.X = c.WorldW / 2
	c.Y = c.WorldH / 2
	fit := c.FitZoom()
	c.MinZoom = fit * minZoomFactor
	c.MaxZoom = fit * maxZoomFactor
	c.Zoom = fit
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
// Returns (minX, minY, maxX, maxY) in world coordinates.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// VisibleCells returns the inclusive column and row range of a cols x rows
// grid with the given pitch that intersects the view. ok is false when the
// view lies entirely off the grid.
func (c *Camera) VisibleCells(cols, rows uint64, pitch float32) (minCol, minRow, maxCol, maxRow uint64, ok bool) {
	if cols == 0 || rows == 0 {
		return 0, 0, 0, 0, false
	}
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	if maxX < 0 || maxY < 0 || minX >= float32(cols)*pitch || minY >= float32(rows)*pitch {
		return 0, 0, 0, 0, false
	}

	minCol = cellIndex(minX, pitch, cols)
	maxCol = cellIndex(maxX, pitch, cols)
	minRow = cellIndex(minY, pitch, rows)
	maxRow = cellIndex(maxY, pitch, rows)
	return minCol, minRow, maxCol, maxRow, true
}

// cellIndex converts a world coordinate to a cell index clamped to [0, n-1].
func cellIndex(w, pitch float32, n uint64) uint64 {
	i := math.Floor(float64(w / pitch))
	if i < 0 {
		return 0
	}
	if i >= float64(n) {
		return n - 1
	}
	return uint64(i)
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
