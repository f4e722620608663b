package render

import (
	"image/color"

	"github.com/Garsondee/Sphere-Search/internal/grid"
	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

// View selects how the map is laid out on the canvas.
type View uint8

const (
	Flat View = iota
	Sphere
)

func (v View) String() string {
	if v == Sphere {
		return "3D"
	}
	return "2D"
}

// Toggle returns the other view.
func (v View) Toggle() View {
	if v == Sphere {
		return Flat
	}
	return Sphere
}

// Compositor paints cells of a map onto a square canvas of the given side.
// It reads the map but never writes to it.
type Compositor struct {
	canvas Canvas
	side   float32
	view   View
	m      *grid.Map
	proj   *sphere.Projector
	poly   []sphere.Point2 // projection scratch
}

// NewCompositor returns a compositor for a square canvas. The map may be
// attached later with SetMap.
func NewCompositor(c Canvas, side float32, m *grid.Map, proj *sphere.Projector) *Compositor {
	return &Compositor{
		canvas: c,
		side:   side,
		m:      m,
		proj:   proj,
		poly:   make([]sphere.Point2, 0, 4),
	}
}

// SetMap replaces the map being painted. Call RedrawAll afterwards.
func (c *Compositor) SetMap(m *grid.Map) { c.m = m }

// Map returns the attached map.
func (c *Compositor) Map() *grid.Map { return c.m }

// Canvas returns the drawing surface.
func (c *Compositor) Canvas() Canvas { return c.canvas }

// Side returns the canvas side length in pixels.
func (c *Compositor) Side() float32 { return c.side }

// View returns the current layout.
func (c *Compositor) View() View { return c.view }

// SetView switches the layout and repaints the whole map.
func (c *Compositor) SetView(v View) {
	if c.view == v {
		return
	}
	c.view = v
	c.RedrawAll()
}

// Projector returns the sphere projector used in the Sphere view.
func (c *Compositor) Projector() *sphere.Projector { return c.proj }

// RedrawCell paints one cell in the given colour. In the Sphere view a
// culled face is skipped.
func (c *Compositor) RedrawCell(p grid.Point, col color.RGBA) {
	if c.view == Sphere {
		poly, ok := sphere.Project(c.proj.Face(p.X, p.Y), float64(c.side), c.poly)
		c.poly = poly
		if ok {
			c.canvas.FillPolygon(poly, col)
		}
		return
	}
	w := c.side / float32(c.m.Width)
	h := c.side / float32(c.m.Height)
	c.canvas.FillRect(float32(p.X)*w, float32(p.Y)*h, w, h, col)
}

// Repaint paints cell p in the colour its current state calls for.
func (c *Compositor) Repaint(p grid.Point) {
	c.RedrawCell(p, CellColor(c.m, p))
}

// RepaintAll repaints each of pts.
func (c *Compositor) RepaintAll(pts []grid.Point) {
	for _, p := range pts {
		c.Repaint(p)
	}
}

// RedrawAll clears the canvas and repaints every cell. In the Sphere view
// the faces are rebuilt first so a resized map is picked up.
func (c *Compositor) RedrawAll() {
	c.redraw(true)
}

func (c *Compositor) redraw(rebuild bool) {
	c.canvas.Clear(colBackground)
	if c.m == nil {
		return
	}
	if rebuild && c.view == Sphere {
		c.proj.RebuildFaces(c.m.Width, c.m.Height)
	}
	for y := 0; y < c.m.Height; y++ {
		for x := 0; x < c.m.Width; x++ {
			c.Repaint(grid.Point{X: x, Y: y})
		}
	}
}

// Rotate turns the sphere and repaints. It does nothing in the Flat view.
func (c *Compositor) Rotate(dir sphere.Direction) bool {
	if c.view != Sphere {
		return false
	}
	c.proj.Rotate(dir)
	c.redraw(false)
	return true
}
