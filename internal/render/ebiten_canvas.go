package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

// EbitenCanvas is a Canvas drawing onto an offscreen ebiten image. The
// image persists between frames; only changed cells are redrawn into it.
type EbitenCanvas struct {
	img *ebiten.Image
}

// NewEbitenCanvas allocates a side x side offscreen image.
func NewEbitenCanvas(side int) *EbitenCanvas {
	return &EbitenCanvas{img: ebiten.NewImage(side, side)}
}

// Image returns the offscreen image for blitting.
func (ec *EbitenCanvas) Image() *ebiten.Image { return ec.img }

func (ec *EbitenCanvas) Clear(c color.RGBA) {
	ec.img.Fill(c)
}

func (ec *EbitenCanvas) FillRect(x, y, w, h float32, c color.RGBA) {
	vector.FillRect(ec.img, x, y, w, h, c, false)
}

func (ec *EbitenCanvas) FillPolygon(pts []sphere.Point2, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		path.LineTo(p.X, p.Y)
	}
	path.Close()

	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(ec.img, &path, &vector.FillOptions{}, op)
}
