// Package render paints a grid.Map onto a drawing surface, either as flat
// tiles or as projected sphere faces.
package render

import (
	"image/color"

	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

// Canvas is the drawing surface the compositor paints onto. Coordinates are
// in pixels with the origin at the top left.
type Canvas interface {
	Clear(c color.RGBA)
	FillRect(x, y, w, h float32, c color.RGBA)
	FillPolygon(pts []sphere.Point2, c color.RGBA)
}
