package render

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Garsondee/Sphere-Search/internal/grid"
	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

type rectCall struct {
	x, y, w, h float32
	c          color.RGBA
}

// recordingCanvas logs every draw request.
type recordingCanvas struct {
	clears int
	rects  []rectCall
	polys  [][]sphere.Point2
}

func (rc *recordingCanvas) Clear(color.RGBA) { rc.clears++ }

func (rc *recordingCanvas) FillRect(x, y, w, h float32, c color.RGBA) {
	rc.rects = append(rc.rects, rectCall{x, y, w, h, c})
}

func (rc *recordingCanvas) FillPolygon(pts []sphere.Point2, _ color.RGBA) {
	rc.polys = append(rc.polys, append([]sphere.Point2(nil), pts...))
}

func TestCellColor(t *testing.T) {
	m, err := grid.ParseMap([]string{
		"S.#",
		"..G",
	})
	require.NoError(t, err)
	m.Set(grid.Point{X: 1, Y: 0}, 3)
	m.Set(grid.Point{X: 1, Y: 1}, grid.OnPath)

	require.Equal(t, colStart, CellColor(m, m.Start))
	require.Equal(t, colGoal, CellColor(m, m.Goal))
	require.Equal(t, colWall, CellColor(m, grid.Point{X: 2, Y: 0}))
	require.Equal(t, colUnvisited, CellColor(m, grid.Point{X: 0, Y: 1}))
	require.Equal(t, colPath, CellColor(m, grid.Point{X: 1, Y: 1}))
	// 240/2 = 120 per step, so distance 3 is already at the floor.
	require.Equal(t, color.RGBA{B: minBlue, A: 255}, CellColor(m, grid.Point{X: 1, Y: 0}))
}

func TestDistanceColor_MonotonicWithFloor(t *testing.T) {
	prev := 256
	for d := 0; d < 200; d++ {
		b := int(DistanceColor(d, 16).B)
		require.LessOrEqual(t, b, prev)
		require.GreaterOrEqual(t, b, minBlue)
		prev = b
	}
	require.Equal(t, uint8(255), DistanceColor(0, 80).B)
	require.Equal(t, uint8(255-5*3), DistanceColor(5, 80).B)
}

func TestRedrawCell_FlatTileSize(t *testing.T) {
	rc := &recordingCanvas{}
	m := grid.NewOpenMap(16, 24, grid.Point{}, grid.Point{X: 3, Y: 3})
	c := NewCompositor(rc, 480, m, sphere.NewProjector(16, 24))

	c.RedrawCell(grid.Point{X: 2, Y: 5}, colPath)
	require.Len(t, rc.rects, 1)
	r := rc.rects[0]
	require.InDelta(t, 60, r.x, 1e-4)
	require.InDelta(t, 100, r.y, 1e-4)
	require.InDelta(t, 30, r.w, 1e-4)
	require.InDelta(t, 20, r.h, 1e-4)
	require.Equal(t, colPath, r.c)
}

func TestRedrawAll_PaintsEveryCellOnce(t *testing.T) {
	rc := &recordingCanvas{}
	m := grid.NewOpenMap(16, 16, grid.Point{}, grid.Point{X: 3, Y: 3})
	c := NewCompositor(rc, 320, m, sphere.NewProjector(16, 16))
	c.RedrawAll()
	require.Equal(t, 1, rc.clears)
	require.Len(t, rc.rects, 16*16)
	require.Empty(t, rc.polys)
}

func TestSphereView_CullsBackFaces(t *testing.T) {
	rc := &recordingCanvas{}
	m := grid.NewOpenMap(16, 8, grid.Point{}, grid.Point{X: 3, Y: 3})
	c := NewCompositor(rc, 320, m, sphere.NewProjector(16, 16))
	c.SetView(Sphere)
	require.Equal(t, Sphere, c.View())
	require.Empty(t, rc.rects)
	require.NotEmpty(t, rc.polys)
	require.Less(t, len(rc.polys), 16*8)

	cols, rows := c.Projector().Dims()
	require.Equal(t, 16, cols)
	require.Equal(t, 8, rows, "switching view rebuilds faces for the map size")
}

func TestRotate_IgnoredInFlatView(t *testing.T) {
	rc := &recordingCanvas{}
	m := grid.NewOpenMap(16, 16, grid.Point{}, grid.Point{X: 3, Y: 3})
	proj := sphere.NewProjector(16, 16)
	c := NewCompositor(rc, 320, m, proj)

	require.False(t, c.Rotate(sphere.Right))
	require.Zero(t, proj.PolarAngle())
	require.Zero(t, rc.clears)

	c.SetView(Sphere)
	require.True(t, c.Rotate(sphere.Right))
	require.NotZero(t, proj.PolarAngle())
	require.Equal(t, 2, rc.clears)
}

func TestRasterCanvas_RedrawAllIsIdempotent(t *testing.T) {
	for _, view := range []View{Flat, Sphere} {
		m := grid.NewOpenMap(24, 16, grid.Point{X: 1, Y: 1}, grid.Point{X: 20, Y: 9})
		s := grid.NewSearch(m, grid.Breadth)
		s.Run(0)
		_, err := s.Backtrack()
		require.NoError(t, err)

		rc := NewRasterCanvas(200, 200)
		c := NewCompositor(rc, 200, m, sphere.NewProjector(24, 16))
		c.SetView(view)
		c.RedrawAll()
		first := append([]byte(nil), rc.Image().Pix...)
		c.RedrawAll()
		require.Equal(t, first, rc.Image().Pix, "view %s", view)
	}
}

func TestRasterCanvas_FlatTilesCoverCanvas(t *testing.T) {
	// 100/16 is a fractional but exact tile size.
	m := grid.NewOpenMap(16, 16, grid.Point{}, grid.Point{X: 5, Y: 5})
	rc := NewRasterCanvas(100, 100)
	c := NewCompositor(rc, 100, m, sphere.NewProjector(16, 16))
	// Paint every cell as wall so any gap shows as background.
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			c.RedrawCell(grid.Point{X: x, Y: y}, colWall)
		}
	}
	img := rc.Image()
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			require.Equal(t, colWall, img.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}
}

func TestRasterCanvas_PolygonCentre(t *testing.T) {
	rc := NewRasterCanvas(50, 50)
	rc.Clear(colBackground)
	rc.FillPolygon([]sphere.Point2{{X: 10, Y: 10}, {X: 40, Y: 10}, {X: 40, Y: 40}, {X: 10, Y: 40}}, colGoal)
	require.Equal(t, colGoal, rc.Image().RGBAAt(25, 25))
	require.Equal(t, colBackground, rc.Image().RGBAAt(2, 2))
}

func TestRasterCanvas_PNGRoundTrip(t *testing.T) {
	rc := NewRasterCanvas(64, 48)
	rc.Clear(colBackground)
	rc.Label(2, 2, "Distance: 8", colWall)

	var buf bytes.Buffer
	require.NoError(t, rc.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 48, img.Bounds().Dy())

	var lit int
	for y := 0; y < 20; y++ {
		for x := 0; x < 64; x++ {
			if rc.Image().RGBAAt(x, y) != colBackground {
				lit++
			}
		}
	}
	require.Positive(t, lit, "label left no pixels")
}
