package game

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/Garsondee/Sphere-Search/internal/grid"
	"github.com/Garsondee/Sphere-Search/internal/render"
	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

// Phase is what the controller is doing between frames.
type Phase uint8

const (
	PhaseSearching Phase = iota
	PhasePaused
	PhaseArrived  // path shown, waiting for acknowledgement
	PhaseNoPath   // exhausted, waiting for acknowledgement
)

func (p Phase) String() string {
	switch p {
	case PhasePaused:
		return "paused"
	case PhaseArrived:
		return "arrived"
	case PhaseNoPath:
		return "no_path"
	default:
		return "searching"
	}
}

// Finished reports whether the episode is over.
func (p Phase) Finished() bool { return p == PhaseArrived || p == PhaseNoPath }

// EpisodeResult summarises one finished search.
type EpisodeResult struct {
	Episode  int
	Seed     int64
	Cols     int
	Rows     int
	Mode     grid.Mode
	Walls    int
	Start    grid.Point
	Goal     grid.Point
	State    grid.State
	Distance int // -1 when no path
	PathLen  int
	Frames   int // frames spent searching
	Stats    grid.Stats
}

// maxHistory bounds the results kept for the report.
const maxHistory = 20

// Controller owns the map and drives one search episode after another. It
// has no window dependency: events come in through Frame and drawing goes
// out through the compositor's Canvas.
type Controller struct {
	settings Settings
	rng      *rand.Rand
	log      *SearchLog

	cfg     grid.Config // active episode
	pending grid.Config // applied at the next reset

	m      *grid.Map
	search *grid.Search
	comp   *render.Compositor

	phase      Phase
	status     string
	speedIdx   int
	episode    int
	frame      int
	epStart    int // frame the current episode started on
	waitFrames int
	path       []grid.Point
	quit       bool

	history []EpisodeResult
	onEnd   func(EpisodeResult, *grid.Map)
}

// NewController builds the first map from s.Grid and starts searching it.
// The canvas must be s.Side pixels square.
func NewController(canvas render.Canvas, s Settings, log *SearchLog) *Controller {
	if log == nil {
		log = NewSearchLog(s.Verbose)
	}
	c := &Controller{
		settings: s,
		rng:      rand.New(rand.NewSource(s.Seed)), // #nosec G404 -- map generation, not security
		log:      log,
		cfg:      s.Grid,
		pending:  s.Grid,
		speedIdx: speedIndex(s.StepsPerFrame),
	}
	c.m = grid.NewMap(c.cfg, c.rng)
	proj := sphere.NewProjector(c.cfg.Cols, c.cfg.Rows)
	c.comp = render.NewCompositor(canvas, float32(s.Side), c.m, proj)
	c.log.Add(0, 0, CatConfig, "seed", fmt.Sprintf("%d", s.Seed), float64(s.Seed))
	c.startEpisode()
	if s.View != render.Flat {
		c.comp.SetView(s.View)
	}
	return c
}

// OnEpisodeEnd registers fn to run after each episode finishes, with the
// final map (distances and path still painted in).
func (c *Controller) OnEpisodeEnd(fn func(EpisodeResult, *grid.Map)) {
	c.onEnd = fn
}

// Map returns the current map.
func (c *Controller) Map() *grid.Map { return c.m }

// Search returns the current search.
func (c *Controller) Search() *grid.Search { return c.search }

// Compositor returns the compositor painting the map.
func (c *Controller) Compositor() *render.Compositor { return c.comp }

// Log returns the session log.
func (c *Controller) Log() *SearchLog { return c.log }

// Phase returns the current phase.
func (c *Controller) Phase() Phase { return c.phase }

// Status returns the status line: Searching, Paused, Distance: N or No Path.
func (c *Controller) Status() string { return c.status }

// Config returns the configuration of the running episode.
func (c *Controller) Config() grid.Config { return c.cfg }

// Pending returns the configuration the next episode will use.
func (c *Controller) Pending() grid.Config { return c.pending }

// View returns the current layout.
func (c *Controller) View() render.View { return c.comp.View() }

// StepsPerFrame returns the current speed.
func (c *Controller) StepsPerFrame() int { return SpeedOptions[c.speedIdx] }

// Episode returns the 1-based episode number.
func (c *Controller) Episode() int { return c.episode }

// FrameCount returns the number of frames processed.
func (c *Controller) FrameCount() int { return c.frame }

// Path returns the highlighted path of a finished episode, start first.
func (c *Controller) Path() []grid.Point { return c.path }

// History returns results of recent episodes, oldest first.
func (c *Controller) History() []EpisodeResult { return c.history }

// Quitting reports whether a Quit event was received.
func (c *Controller) Quitting() bool { return c.quit }

// Frame applies events in order, then advances the search by the current
// number of steps. Once an episode is over it waits for EvPauseToggle, or
// for AutoAdvance frames when that is set.
func (c *Controller) Frame(events []Event) {
	c.frame++
	for _, ev := range events {
		c.apply(ev)
		if c.quit {
			return
		}
	}

	if c.phase.Finished() {
		if c.settings.AutoAdvance > 0 {
			c.waitFrames++
			if c.waitFrames >= c.settings.AutoAdvance {
				c.startEpisode()
			}
		}
		return
	}
	if c.phase == PhasePaused {
		return
	}

	for i := 0; i < c.StepsPerFrame(); i++ {
		changed := c.search.Step()
		c.comp.RepaintAll(changed)
		if c.log.Verbose() && len(changed) > 0 {
			pos := c.search.Pos()
			c.log.AddVerbose(c.episode, c.frame, CatSearch, "step",
				fmt.Sprintf("pos=(%d,%d) relaxed=%d frontier=%d", pos.X, pos.Y, len(changed), c.search.Frontier()),
				float64(len(changed)))
		}
		if c.search.Done() {
			c.finish()
			return
		}
	}
}

func (c *Controller) apply(ev Event) {
	switch ev.Kind {
	case EvPauseToggle:
		switch {
		case c.phase.Finished():
			c.log.Add(c.episode, c.frame, CatEpisode, "ack", c.status, 0)
			c.startEpisode()
		case c.phase == PhasePaused:
			c.phase = PhaseSearching
			c.status = "Searching"
			c.log.Add(c.episode, c.frame, CatSearch, "resume", "", 0)
		default:
			c.phase = PhasePaused
			c.status = "Paused"
			c.log.Add(c.episode, c.frame, CatSearch, "pause", "", 0)
		}
	case EvRotate:
		if c.comp.Rotate(ev.Dir) {
			p := c.comp.Projector()
			c.log.Add(c.episode, c.frame, CatView, "rotate",
				fmt.Sprintf("%s polar=%.0f zenith=%.0f", ev.Dir, degrees(p.PolarAngle()), degrees(p.ZenithAngle())), 0)
		}
	case EvChangeRows:
		c.pending.Rows = grid.NextDimension(c.pending.Rows)
		c.log.Add(c.episode, c.frame, CatConfig, "rows", fmt.Sprintf("%d (next episode)", c.pending.Rows), float64(c.pending.Rows))
	case EvChangeCols:
		c.pending.Cols = grid.NextDimension(c.pending.Cols)
		c.log.Add(c.episode, c.frame, CatConfig, "cols", fmt.Sprintf("%d (next episode)", c.pending.Cols), float64(c.pending.Cols))
	case EvToggleAlgorithm:
		c.pending.Mode = c.pending.Mode.Toggle()
		c.log.Add(c.episode, c.frame, CatConfig, "mode", fmt.Sprintf("%s (next episode)", c.pending.Mode), float64(c.pending.Mode))
	case EvToggleView:
		c.comp.SetView(c.comp.View().Toggle())
		c.log.Add(c.episode, c.frame, CatView, "view", c.comp.View().String(), float64(c.comp.View()))
	case EvSpeedUp:
		if c.speedIdx < len(SpeedOptions)-1 {
			c.speedIdx++
		}
		c.log.Add(c.episode, c.frame, CatConfig, "speed", fmt.Sprintf("%d steps/frame", c.StepsPerFrame()), float64(c.StepsPerFrame()))
	case EvSlowDown:
		if c.speedIdx > 0 {
			c.speedIdx--
		}
		c.log.Add(c.episode, c.frame, CatConfig, "speed", fmt.Sprintf("%d steps/frame", c.StepsPerFrame()), float64(c.StepsPerFrame()))
	case EvQuit:
		c.quit = true
		c.log.Add(c.episode, c.frame, CatUI, "quit", "", 0)
	}
}

// startEpisode regenerates the map with the pending configuration and
// begins a new search.
func (c *Controller) startEpisode() {
	c.cfg = c.pending
	c.m.Reset(c.cfg, c.rng)
	c.begin()
}

// LoadMap replaces the current map with m and starts searching it with the
// pending mode. Later episodes generate random maps again.
func (c *Controller) LoadMap(m *grid.Map) {
	c.m = m
	c.cfg.Cols, c.cfg.Rows = m.Width, m.Height
	c.cfg.Mode = c.pending.Mode
	c.comp.SetMap(m)
	c.begin()
}

func (c *Controller) begin() {
	c.episode++
	c.search = grid.NewSearch(c.m, c.cfg.Mode)
	c.phase = PhaseSearching
	c.status = "Searching"
	c.path = nil
	c.waitFrames = 0
	c.epStart = c.frame
	c.comp.RedrawAll()
	c.log.Add(c.episode, c.frame, CatEpisode, "start",
		fmt.Sprintf("%dx%d %s walls=%d start=(%d,%d) goal=(%d,%d)",
			c.m.Width, c.m.Height, c.cfg.Mode, c.m.Walls(),
			c.m.Start.X, c.m.Start.Y, c.m.Goal.X, c.m.Goal.Y),
		float64(c.m.Walls()))
}

func (c *Controller) finish() {
	res := EpisodeResult{
		Episode:  c.episode,
		Seed:     c.settings.Seed,
		Cols:     c.m.Width,
		Rows:     c.m.Height,
		Mode:     c.search.Mode(),
		Walls:    c.m.Walls(),
		Start:    c.m.Start,
		Goal:     c.m.Goal,
		State:    c.search.State(),
		Distance: -1,
		Frames:   c.frame - c.epStart,
		Stats:    c.search.Stats(),
	}

	if c.search.State() == grid.Arrived {
		path, err := c.search.Backtrack()
		if err != nil {
			c.log.Add(c.episode, c.frame, CatSearch, "backtrack_error", err.Error(), 0)
		}
		c.path = path
		c.comp.RepaintAll(path)
		res.Distance = c.search.GoalDistance()
		res.PathLen = len(path)
		c.phase = PhaseArrived
		c.status = fmt.Sprintf("Distance: %d", res.Distance)
		c.log.Add(c.episode, c.frame, CatEpisode, "arrived", fmt.Sprintf("distance %d", res.Distance), float64(res.Distance))
	} else {
		c.phase = PhaseNoPath
		c.status = "No Path"
		c.log.Add(c.episode, c.frame, CatEpisode, "no_path", "goal unreachable", 0)
	}
	st := res.Stats
	c.log.Add(c.episode, c.frame, CatSearch, "stats",
		fmt.Sprintf("steps=%d relax=%d stale=%d max_frontier=%d", st.Steps, st.Relaxations, st.StaleRemovals, st.MaxFrontier),
		float64(st.Steps))

	c.history = append(c.history, res)
	if len(c.history) > maxHistory {
		c.history = c.history[len(c.history)-maxHistory:]
	}
	c.waitFrames = 0
	if c.onEnd != nil {
		c.onEnd(res, c.m)
	}
}

func degrees(rad float64) float64 {
	return rad * 180 / math.Pi
}
