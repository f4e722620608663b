package grid

// ShortestDistance runs a plain visited-once breadth-first search over the
// wall layout of m (ignoring any distances already written) and returns the
// number of moves from a to b. ok is false when b cannot be reached.
// It is an independent reference for checking Search.
func ShortestDistance(m *Map, a, b Point) (dist int, ok bool) {
	if a == b {
		return 0, true
	}
	seen := make([]int, m.Width*m.Height)
	for i := range seen {
		seen[i] = -1
	}
	seen[a.Y*m.Width+a.X] = 0
	queue := []Point{a}
	var buf [4]Point
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		d := seen[p.Y*m.Width+p.X]
		for _, n := range m.Neighbors(p, buf[:0]) {
			i := n.Y*m.Width + n.X
			if seen[i] >= 0 || m.cells[i] == Wall {
				continue
			}
			if n == b {
				return d + 1, true
			}
			seen[i] = d + 1
			queue = append(queue, n)
		}
	}
	return 0, false
}

// Reachable reports whether b can be reached from a.
func Reachable(m *Map, a, b Point) bool {
	_, ok := ShortestDistance(m, a, b)
	return ok
}
