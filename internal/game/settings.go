package game

import (
	"time"

	"github.com/Garsondee/Sphere-Search/internal/grid"
	"github.com/Garsondee/Sphere-Search/internal/render"
)

// SpeedOptions are the selectable search steps per frame.
var SpeedOptions = []int{1, 2, 4, 8, 16, 64}

// Settings configures a Controller and the window around it.
type Settings struct {
	Side          int         // map viewport side in pixels
	Seed          int64       // RNG seed for map generation
	Grid          grid.Config // first episode's configuration
	View          render.View
	StepsPerFrame int // one of SpeedOptions
	AutoAdvance   int // frames to wait after an episode ends; 0 waits for acknowledgement
	Verbose       bool
}

// Option adjusts Settings during construction.
type Option func(*Settings)

// DefaultSettings returns the interactive defaults seeded from the clock.
func DefaultSettings() Settings {
	return Settings{
		Side:          800,
		Seed:          time.Now().UnixNano(),
		Grid:          grid.DefaultConfig(),
		View:          render.Flat,
		StepsPerFrame: 1,
	}
}

// NewSettings applies opts over DefaultSettings.
func NewSettings(opts ...Option) Settings {
	s := DefaultSettings()
	for _, o := range opts {
		o(&s)
	}
	return s
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) Option {
	return func(s *Settings) { s.Seed = seed }
}

// WithSide sets the map viewport size.
func WithSide(px int) Option {
	return func(s *Settings) { s.Side = px }
}

// WithGrid sets the configuration of the first episode.
func WithGrid(cfg grid.Config) Option {
	return func(s *Settings) { s.Grid = cfg }
}

// WithView selects the starting view.
func WithView(v render.View) Option {
	return func(s *Settings) { s.View = v }
}

// WithStepsPerFrame sets the starting speed. Values outside SpeedOptions
// are rounded down to the nearest option.
func WithStepsPerFrame(n int) Option {
	return func(s *Settings) { s.StepsPerFrame = SpeedOptions[speedIndex(n)] }
}

// WithAutoAdvance starts the next episode n frames after one ends.
func WithAutoAdvance(frames int) Option {
	return func(s *Settings) { s.AutoAdvance = frames }
}

// WithVerbose enables per-step log entries.
func WithVerbose(v bool) Option {
	return func(s *Settings) { s.Verbose = v }
}

// speedIndex returns the index of the largest option not above n.
func speedIndex(n int) int {
	idx := 0
	for i, v := range SpeedOptions {
		if v <= n {
			idx = i
		}
	}
	return idx
}
