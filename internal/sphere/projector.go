// Package sphere maps grid cells onto a rotatable sphere and projects the
// resulting faces onto a square viewport.
package sphere

import "math"

const (
	// Radius of the sphere in model units.
	Radius = 2.5
	// Offset is added to z before the perspective divide. It must exceed
	// Radius so the divisor stays positive for every point on the sphere.
	Offset = 3.0
	// NearPlane is how far below z=0 a corner may sit before its face is culled.
	NearPlane = 0.15 / Radius
)

// Vec3 is a point in model space.
type Vec3 struct {
	X, Y, Z float64
}

// Unused fills the fourth corner of a triangular pole face. Its length is
// not Radius, so it can never collide with a real corner.
var Unused = Vec3{1, 1, 1}

// Point2 is a projected screen coordinate.
type Point2 struct {
	X, Y float32
}

// Face holds the corners of one grid cell on the sphere.
type Face [4]Vec3

// Triangle reports whether the face touches a pole.
func (f *Face) Triangle() bool {
	return f[3] == Unused
}

// Corners returns the real corners, skipping the Unused marker.
func (f *Face) Corners() []Vec3 {
	if f.Triangle() {
		return f[:3]
	}
	return f[:]
}

// Direction is a rotation request.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "right"
	}
}

// Projector keeps the rotation state and the face mesh for one grid size.
// Rotations are stored as quarter turns so repeated turns stay exact.
type Projector struct {
	polarQ  int // quarter turns about the vertical axis
	zenithQ int // quarter turns about the horizontal axis
	cols    int
	rows    int
	faces   [][]Face // [row][col]
}

// NewProjector builds the mesh for a cols x rows grid with no rotation.
func NewProjector(cols, rows int) *Projector {
	p := &Projector{}
	p.RebuildFaces(cols, rows)
	return p
}

// PolarAngle returns the rotation about the vertical axis in [0, 2π).
func (p *Projector) PolarAngle() float64 {
	return float64(p.polarQ) * math.Pi / 2
}

// ZenithAngle returns the rotation about the horizontal axis in [0, 2π).
func (p *Projector) ZenithAngle() float64 {
	return float64(p.zenithQ) * math.Pi / 2
}

// Dims returns the grid size the mesh was built for.
func (p *Projector) Dims() (cols, rows int) {
	return p.cols, p.rows
}

// Faces returns the mesh indexed [row][col]. The slices are reused by the
// next RebuildFaces.
func (p *Projector) Faces() [][]Face {
	return p.faces
}

// Face returns the mesh face for cell (col, row).
func (p *Projector) Face(col, row int) *Face {
	return &p.faces[row][col]
}

// PolarToCartesian converts a longitude/latitude pair (latitude measured
// from the top pole) to model space and applies the zenith rotation.
// Longitude is taken as given; RebuildFaces adds the polar angle itself.
func (p *Projector) PolarToCartesian(lon, lat float64) Vec3 {
	x := math.Cos(lon) * math.Sin(lat) * Radius
	y := math.Cos(lat) * Radius
	z := math.Sin(lon) * math.Sin(lat) * Radius

	sz, cz := math.Sin(p.ZenithAngle()), math.Cos(p.ZenithAngle())
	return Vec3{
		X: x,
		Y: y*cz + z*sz,
		Z: -y*sz + z*cz,
	}
}

// RebuildFaces recomputes every face for a cols x rows grid under the
// current rotation. It costs O(cols*rows) and runs only on rotation,
// resize or a switch into the sphere view.
func (p *Projector) RebuildFaces(cols, rows int) {
	if p.cols != cols || p.rows != rows || p.faces == nil {
		p.faces = make([][]Face, rows)
		for r := range p.faces {
			p.faces[r] = make([]Face, cols)
		}
		p.cols, p.rows = cols, rows
	}

	lon := make([]float64, cols+1)
	for i := 0; i < cols; i++ {
		lon[i] = math.Mod(float64(i)*2*math.Pi/float64(cols)+p.PolarAngle(), 2*math.Pi)
	}
	lon[cols] = lon[0]
	// rows-1 interior latitude lines split the sphere into rows bands.
	lat := make([]float64, rows+1)
	for j := 0; j <= rows; j++ {
		lat[j] = float64(j) * math.Pi / float64(rows)
	}

	north := p.PolarToCartesian(0, 0)
	south := p.PolarToCartesian(0, math.Pi)
	for c := 0; c < cols; c++ {
		x0, x1 := lon[c], lon[c+1]
		if rows == 1 {
			p.faces[0][c] = Face{north, p.PolarToCartesian(x0, math.Pi/2), south, Unused}
			continue
		}
		p.faces[0][c] = Face{north, p.PolarToCartesian(x0, lat[1]), p.PolarToCartesian(x1, lat[1]), Unused}
		p.faces[rows-1][c] = Face{south, p.PolarToCartesian(x0, lat[rows-1]), p.PolarToCartesian(x1, lat[rows-1]), Unused}
		for r := 1; r < rows-1; r++ {
			y0, y1 := lat[r], lat[r+1]
			p.faces[r][c] = Face{
				p.PolarToCartesian(x0, y0),
				p.PolarToCartesian(x0, y1),
				p.PolarToCartesian(x1, y1),
				p.PolarToCartesian(x1, y0),
			}
		}
	}
}

// Visible reports whether every real corner lies on the drawable side of
// the near plane.
func Visible(f *Face) bool {
	for _, v := range f.Corners() {
		if v.Z < -NearPlane {
			return false
		}
	}
	return true
}

// Project appends the screen polygon of f to dst for a square viewport of
// the given side, centred on the viewport. ok is false when the face is culled.
func Project(f *Face, side float64, dst []Point2) (poly []Point2, ok bool) {
	if !Visible(f) {
		return dst[:0], false
	}
	half := side / 2
	poly = dst[:0]
	for _, v := range f.Corners() {
		d := v.Z + Offset
		poly = append(poly, Point2{
			X: float32(half + v.X*side/(2*d)),
			Y: float32(half - v.Y*side/(2*d)),
		})
	}
	return poly, true
}

// Rotate turns the sphere a quarter turn and rebuilds the mesh.
func (p *Projector) Rotate(dir Direction) {
	switch dir {
	case Up:
		p.zenithQ = (p.zenithQ + 1) % 4
	case Down:
		p.zenithQ = (p.zenithQ + 3) % 4
	case Right:
		p.polarQ = (p.polarQ + 1) % 4
	case Left:
		p.polarQ = (p.polarQ + 3) % 4
	}
	p.RebuildFaces(p.cols, p.rows)
}
