package grid

import (
	"errors"
	"fmt"
	"math/rand"
)

// Cell values below zero are markers; anything >= 0 is a distance from Start.
const (
	Wall      = -1
	Unvisited = -2
	OnPath    = -3
)

// Point is a grid coordinate: X is the column (longitude), Y the row (latitude).
type Point struct {
	X, Y int
}

// offsets is the fixed neighbour scan order: +x, +y, -x, -y.
var offsets = [4]Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}}

// Map is the explored grid. Columns wrap around, rows do not, which models
// the surface of a sphere: longitude wraps, latitude stops at the poles.
type Map struct {
	Width  int
	Height int
	Start  Point
	Goal   Point
	cells  []int
}

// NewMap creates a map and randomises it with Reset.
func NewMap(cfg Config, rng *rand.Rand) *Map {
	m := &Map{}
	m.Reset(cfg, rng)
	return m
}

// NewOpenMap creates a wall-free map with the given endpoints.
func NewOpenMap(cols, rows int, start, goal Point) *Map {
	m := &Map{Width: cols, Height: rows, cells: make([]int, cols*rows)}
	for i := range m.cells {
		m.cells[i] = Unvisited
	}
	m.Start, m.Goal = start, goal
	m.Set(goal, Unvisited)
	m.Set(start, 0)
	return m
}

// Reset regenerates walls, start and goal using cfg's dimensions and clears
// all distances. Dimension changes only ever take effect here.
func (m *Map) Reset(cfg Config, rng *rand.Rand) {
	oneIn := cfg.WallOneIn
	if oneIn < 1 {
		oneIn = 3
	}
	m.Width = cfg.Cols
	m.Height = cfg.Rows
	if n := m.Width * m.Height; cap(m.cells) >= n {
		m.cells = m.cells[:n]
	} else {
		m.cells = make([]int, n)
	}
	for i := range m.cells {
		if rng.Intn(oneIn) == 0 {
			m.cells[i] = Wall
		} else {
			m.cells[i] = Unvisited
		}
	}
	m.Start = Point{rng.Intn(m.Width), rng.Intn(m.Height)}
	m.Goal = Point{rng.Intn(m.Width), rng.Intn(m.Height)}
	// Start is written last so a shared cell keeps distance 0.
	m.Set(m.Goal, Unvisited)
	m.Set(m.Start, 0)
}

// ClearDistances resets every non-wall cell to Unvisited and the start to 0,
// keeping the wall layout. Used to re-run a map with another mode.
func (m *Map) ClearDistances() {
	for i, v := range m.cells {
		if v != Wall {
			m.cells[i] = Unvisited
		}
	}
	m.Set(m.Start, 0)
}

// Clone returns an independent copy of the map.
func (m *Map) Clone() *Map {
	c := *m
	c.cells = append([]int(nil), m.cells...)
	return &c
}

// InBounds reports whether p addresses a cell without wrapping.
func (m *Map) InBounds(p Point) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// At returns the cell value at p.
func (m *Map) At(p Point) int {
	return m.cells[p.Y*m.Width+p.X]
}

// Set writes the cell value at p.
func (m *Map) Set(p Point, v int) {
	m.cells[p.Y*m.Width+p.X] = v
}

// IsWall reports whether p is a wall.
func (m *Map) IsWall(p Point) bool {
	return m.At(p) == Wall
}

// Walls counts wall cells.
func (m *Map) Walls() int {
	n := 0
	for _, v := range m.cells {
		if v == Wall {
			n++
		}
	}
	return n
}

// Neighbors appends the neighbours of p to buf in scan order (+x, +y, -x, -y)
// and returns it. X wraps modulo Width; a Y offset leaving [0, Height) is
// dropped rather than wrapped.
func (m *Map) Neighbors(p Point, buf []Point) []Point {
	buf = buf[:0]
	for _, o := range offsets {
		y := p.Y + o.Y
		if y < 0 || y >= m.Height {
			continue
		}
		x := (p.X + o.X + m.Width) % m.Width
		buf = append(buf, Point{x, y})
	}
	return buf
}

// Adjacent reports whether a and b are neighbours under the wrap rule.
func (m *Map) Adjacent(a, b Point) bool {
	var buf [4]Point
	for _, n := range m.Neighbors(a, buf[:0]) {
		if n == b {
			return true
		}
	}
	return false
}

// ErrBadMap is wrapped by every ParseMap failure.
var ErrBadMap = errors.New("grid: malformed map")

// ParseMap builds a map from text rows: '#' wall, '.' open, 'S' start,
// 'G' goal and '*' for a start and goal sharing a cell.
func ParseMap(rows []string) (*Map, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrBadMap)
	}
	w := len(rows[0])
	m := &Map{Width: w, Height: len(rows), cells: make([]int, w*len(rows))}
	haveStart, haveGoal := false, false
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadMap, y, len(row), w)
		}
		for x, ch := range row {
			p := Point{x, y}
			switch ch {
			case '#':
				m.Set(p, Wall)
			case '.':
				m.Set(p, Unvisited)
			case 'S':
				m.Set(p, Unvisited)
				m.Start, haveStart = p, true
			case 'G':
				m.Set(p, Unvisited)
				m.Goal, haveGoal = p, true
			case '*':
				m.Set(p, Unvisited)
				m.Start, m.Goal = p, p
				haveStart, haveGoal = true, true
			default:
				return nil, fmt.Errorf("%w: unexpected %q at (%d,%d)", ErrBadMap, ch, x, y)
			}
		}
	}
	if !haveStart || !haveGoal {
		return nil, fmt.Errorf("%w: missing start or goal", ErrBadMap)
	}
	m.Set(m.Start, 0)
	return m, nil
}
