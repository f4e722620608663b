package grid

import "errors"

// State is the lifecycle of one search episode.
type State uint8

const (
	Running State = iota
	Arrived
	Exhausted
)

func (s State) String() string {
	switch s {
	case Arrived:
		return "arrived"
	case Exhausted:
		return "exhausted"
	default:
		return "running"
	}
}

// ErrNotArrived is returned by Backtrack before the goal has been reached.
var ErrNotArrived = errors.New("grid: backtrack before arrival")

// Stats counts the work done by a search.
type Stats struct {
	Steps         int // frontier pops
	Relaxations   int // distance improvements, including first visits
	StaleRemovals int // frontier entries dropped because a shorter route arrived
	MaxFrontier   int
}

// Search is an incremental relaxation search over a Map. It writes
// distances into the map it was given; the caller keeps ownership of the map.
//
// Breadth and Depth only change which end of the frontier is popped. Both
// relax distances lazily instead of marking cells visited once, so the
// goal distance is the true shortest path length even in Depth mode. Once
// the goal has a distance, cells at or beyond it are no longer queued.
type Search struct {
	m        *Map
	mode     Mode
	frontier []Point
	queued   []bool // per cell: present in frontier
	state    State
	pos      Point
	stats    Stats
	nbuf     [4]Point
}

// NewSearch starts a search from m.Start. When Start and Goal coincide the
// frontier starts empty and the first Step reports Arrived.
func NewSearch(m *Map, mode Mode) *Search {
	s := &Search{
		m:      m,
		mode:   mode,
		queued: make([]bool, m.Width*m.Height),
		pos:    m.Start,
	}
	if m.Start != m.Goal {
		s.push(m.Start)
	}
	return s
}

// Map returns the map being explored.
func (s *Search) Map() *Map { return s.m }

// Mode returns the frontier discipline.
func (s *Search) Mode() Mode { return s.mode }

// State returns the current lifecycle state.
func (s *Search) State() State { return s.state }

// Done reports whether the search reached a terminal state.
func (s *Search) Done() bool { return s.state != Running }

// Pos returns the most recently expanded cell.
func (s *Search) Pos() Point { return s.pos }

// Frontier returns the number of cells awaiting expansion.
func (s *Search) Frontier() int { return len(s.frontier) }

// Stats returns the work counters so far.
func (s *Search) Stats() Stats { return s.stats }

// GoalDistance returns the recorded goal distance, or Unvisited.
func (s *Search) GoalDistance() int { return s.m.At(s.m.Goal) }

// Step expands one frontier cell and returns the neighbours whose distance
// changed. With an empty frontier it moves to Arrived or Exhausted and
// returns nil.
func (s *Search) Step() []Point {
	if s.state != Running {
		return nil
	}
	if len(s.frontier) == 0 {
		if s.m.At(s.m.Goal) == Unvisited {
			s.state = Exhausted
		} else {
			s.state = Arrived
		}
		return nil
	}

	s.pos = s.pop()
	s.stats.Steps++

	m := s.m
	d := m.At(s.pos)
	var changed []Point
	for _, n := range m.Neighbors(s.pos, s.nbuf[:0]) {
		nd := m.At(n)
		if nd != Unvisited && nd <= d+1 {
			continue
		}
		if s.queued[n.Y*m.Width+n.X] {
			s.remove(n)
			s.stats.StaleRemovals++
		}
		m.Set(n, d+1)
		s.stats.Relaxations++
		if g := m.At(m.Goal); g == Unvisited || d < g {
			s.push(n)
		}
		changed = append(changed, n)
	}
	return changed
}

// Run steps until the search is terminal or maxSteps pops have been made
// (maxSteps <= 0 means no limit) and returns the resulting state.
func (s *Search) Run(maxSteps int) State {
	for n := 0; s.state == Running; n++ {
		if maxSteps > 0 && n >= maxSteps {
			break
		}
		s.Step()
	}
	return s.state
}

// Backtrack walks from the goal to the start along cells whose distance
// drops by exactly one, marking the cells in between OnPath. Ties go to the
// first neighbour in scan order (+x, +y, -x, -y). The returned path runs
// from start to goal inclusive.
func (s *Search) Backtrack() ([]Point, error) {
	if s.state != Arrived {
		return nil, ErrNotArrived
	}
	m := s.m
	cur := m.Goal
	d := m.At(cur)
	path := make([]Point, d+1)
	path[d] = cur
	for cur != m.Start {
		next := cur
		for _, n := range m.Neighbors(cur, s.nbuf[:0]) {
			if m.At(n) == d-1 {
				next = n
				break
			}
		}
		if next == cur {
			// Distances are consistent after Arrived; this is unreachable.
			return nil, ErrNotArrived
		}
		if cur != m.Goal {
			m.Set(cur, OnPath)
		}
		cur = next
		d--
		path[d] = cur
	}
	s.pos = m.Start
	return path, nil
}

func (s *Search) push(p Point) {
	s.frontier = append(s.frontier, p)
	s.queued[p.Y*s.m.Width+p.X] = true
	if len(s.frontier) > s.stats.MaxFrontier {
		s.stats.MaxFrontier = len(s.frontier)
	}
}

func (s *Search) pop() Point {
	var p Point
	if s.mode == Depth {
		p = s.frontier[len(s.frontier)-1]
		s.frontier = s.frontier[:len(s.frontier)-1]
	} else {
		p = s.frontier[0]
		s.frontier = s.frontier[1:]
	}
	s.queued[p.Y*s.m.Width+p.X] = false
	return p
}

// remove drops p from the frontier, preserving the order of the rest.
func (s *Search) remove(p Point) {
	for i, q := range s.frontier {
		if q == p {
			s.frontier = append(s.frontier[:i], s.frontier[i+1:]...)
			break
		}
	}
	s.queued[p.Y*s.m.Width+p.X] = false
}
