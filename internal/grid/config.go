package grid

// Mode selects which end of the frontier is expanded next.
type Mode uint8

const (
	Breadth Mode = iota // FIFO: pop the oldest frontier entry
	Depth               // LIFO: pop the newest frontier entry
)

// String returns the short label shown in the UI.
func (m Mode) String() string {
	if m == Depth {
		return "DFS"
	}
	return "BFS"
}

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == Depth {
		return Breadth
	}
	return Depth
}

// DimensionOptions is the fixed ordered set of row/column counts.
var DimensionOptions = []int{16, 24, 48, 60, 80, 120, 160, 240}

// NextDimension returns the option after n, wrapping to the first.
// A value outside the set maps to the first option.
func NextDimension(n int) int {
	for i, v := range DimensionOptions {
		if v == n {
			return DimensionOptions[(i+1)%len(DimensionOptions)]
		}
	}
	return DimensionOptions[0]
}

// Config is the per-episode configuration handed to Map.Reset and NewSearch.
type Config struct {
	Cols      int
	Rows      int
	Mode      Mode
	WallOneIn int // each cell is a wall with probability 1/WallOneIn
}

// DefaultConfig matches the interactive defaults: 80x80, breadth-first,
// roughly one wall in three cells.
func DefaultConfig() Config {
	return Config{Cols: 80, Rows: 80, Mode: Breadth, WallOneIn: 3}
}
