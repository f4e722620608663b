package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

// RasterCanvas is a Canvas backed by an in-memory RGBA image. It needs no
// window and is used for snapshots and headless runs.
type RasterCanvas struct {
	img *image.RGBA
	ras *vector.Rasterizer
}

// NewRasterCanvas allocates a w x h canvas.
func NewRasterCanvas(w, h int) *RasterCanvas {
	return &RasterCanvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		ras: vector.NewRasterizer(w, h),
	}
}

// Image returns the backing image.
func (rc *RasterCanvas) Image() *image.RGBA { return rc.img }

// Clear fills the whole canvas.
func (rc *RasterCanvas) Clear(c color.RGBA) {
	draw.Draw(rc.img, rc.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect fills a rectangle. Edges are snapped to whole pixels by flooring
// both ends so neighbouring tiles share an edge without gaps or overlap.
func (rc *RasterCanvas) FillRect(x, y, w, h float32, c color.RGBA) {
	r := image.Rect(
		int(math.Floor(float64(x))),
		int(math.Floor(float64(y))),
		int(math.Floor(float64(x+w))),
		int(math.Floor(float64(y+h))),
	)
	draw.Draw(rc.img, r.Intersect(rc.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillPolygon rasterizes a closed polygon with anti-aliased edges.
func (rc *RasterCanvas) FillPolygon(pts []sphere.Point2, c color.RGBA) {
	if len(pts) < 3 {
		return
	}
	b := rc.img.Bounds()
	rc.ras.Reset(b.Dx(), b.Dy())
	rc.ras.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		rc.ras.LineTo(p.X, p.Y)
	}
	rc.ras.ClosePath()
	rc.ras.Draw(rc.img, b, image.NewUniform(c), image.Point{})
}

// Label stamps text with its top-left corner at (x, y).
func (rc *RasterCanvas) Label(x, y int, s string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  rc.img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y+basicfont.Face7x13.Ascent),
	}
	d.DrawString(s)
}

// WritePNG encodes the canvas as PNG.
func (rc *RasterCanvas) WritePNG(w io.Writer) error {
	if err := png.Encode(w, rc.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SavePNG writes the canvas to a PNG file at path.
func (rc *RasterCanvas) SavePNG(path string) error {
	f, err := os.Create(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := rc.WritePNG(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
