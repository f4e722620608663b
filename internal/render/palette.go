package render

import (
	"image/color"

	"github.com/Garsondee/Sphere-Search/internal/grid"
)

var (
	colStart     = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	colGoal      = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	colWall      = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	colUnvisited = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colPath      = color.RGBA{R: 255, G: 255, B: 0, A: 255}

	// Background behind the sphere.
	colBackground = color.RGBA{R: 0, G: 0, B: 0, A: 255}
)

// minBlue keeps far cells visible against the black background.
const minBlue = 63

// CellColor returns the colour for cell p of m.
func CellColor(m *grid.Map, p grid.Point) color.RGBA {
	switch {
	case p == m.Start:
		return colStart
	case p == m.Goal:
		return colGoal
	}
	switch d := m.At(p); d {
	case grid.Wall:
		return colWall
	case grid.Unvisited:
		return colUnvisited
	case grid.OnPath:
		return colPath
	default:
		return DistanceColor(d, m.Height)
	}
}

// DistanceColor shades a distance in blue, fading with distance until the
// floor is reached.
func DistanceColor(d, rows int) color.RGBA {
	b := 255 - d*(240/rows)
	if b < minBlue {
		b = minBlue
	}
	return color.RGBA{B: uint8(b), A: 255}
}
