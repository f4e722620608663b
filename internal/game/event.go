package game

import "github.com/Garsondee/Sphere-Search/internal/sphere"

// EventKind enumerates the discrete control events the Controller accepts.
type EventKind uint8

const (
	EvPauseToggle EventKind = iota
	EvRotate
	EvChangeRows
	EvChangeCols
	EvToggleView
	EvToggleAlgorithm
	EvQuit
	EvSpeedUp
	EvSlowDown
)

var eventNames = [...]string{
	EvPauseToggle:     "pause_toggle",
	EvRotate:          "rotate",
	EvChangeRows:      "change_rows",
	EvChangeCols:      "change_cols",
	EvToggleView:      "toggle_view",
	EvToggleAlgorithm: "toggle_algorithm",
	EvQuit:            "quit",
	EvSpeedUp:         "speed_up",
	EvSlowDown:        "slow_down",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is one already-debounced control event. Dir is only meaningful
// for EvRotate.
type Event struct {
	Kind EventKind
	Dir  sphere.Direction
}

// Ev returns an event of the given kind.
func Ev(k EventKind) Event { return Event{Kind: k} }

// RotateEvent returns a rotation event.
func RotateEvent(dir sphere.Direction) Event {
	return Event{Kind: EvRotate, Dir: dir}
}

func (e Event) String() string {
	if e.Kind == EvRotate {
		return "rotate_" + e.Dir.String()
	}
	return e.Kind.String()
}
