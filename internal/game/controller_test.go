package game

import (
	"image/color"
	"strconv"
	"strings"
	"testing"

	"github.com/Garsondee/Sphere-Search/internal/grid"
	"github.com/Garsondee/Sphere-Search/internal/render"
	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

// nullCanvas discards drawing and counts full clears.
type nullCanvas struct {
	clears int
}

func (nc *nullCanvas) Clear(color.RGBA)                           { nc.clears++ }
func (nc *nullCanvas) FillRect(_, _, _, _ float32, _ color.RGBA)  {}
func (nc *nullCanvas) FillPolygon(_ []sphere.Point2, _ color.RGBA) {}

func newTestController(t *testing.T, opts ...Option) (*Controller, *nullCanvas) {
	t.Helper()
	base := []Option{
		WithSeed(7),
		WithSide(160),
		WithGrid(grid.Config{Cols: 16, Rows: 16, Mode: grid.Breadth, WallOneIn: 3}),
	}
	nc := &nullCanvas{}
	s := NewSettings(append(base, opts...)...)
	return NewController(nc, s, NewSearchLog(s.Verbose)), nc
}

// runUntilFinished steps frames until the episode is over.
func runUntilFinished(t *testing.T, c *Controller) {
	t.Helper()
	for i := 0; i < 100000; i++ {
		if c.Phase().Finished() {
			return
		}
		c.Frame(nil)
	}
	t.Fatalf("episode %d did not finish", c.Episode())
}

func TestController_FinishesAndWaitsForAck(t *testing.T) {
	c, _ := newTestController(t, WithStepsPerFrame(64))
	for ep := 1; ep <= 10; ep++ {
		if c.Episode() != ep {
			t.Fatalf("expected episode %d, got %d", ep, c.Episode())
		}
		runUntilFinished(t, c)

		m := c.Map()
		want, ok := grid.ShortestDistance(m, m.Start, m.Goal)
		switch c.Phase() {
		case PhaseArrived:
			if !ok || c.Status() != "Distance: "+strconv.Itoa(want) {
				t.Fatalf("episode %d: status %q, oracle %d (reachable=%v)", ep, c.Status(), want, ok)
			}
			if len(c.Path()) != want+1 {
				t.Fatalf("episode %d: path has %d cells for distance %d", ep, len(c.Path()), want)
			}
		case PhaseNoPath:
			if ok || c.Status() != "No Path" {
				t.Fatalf("episode %d: status %q but oracle reachable=%v", ep, c.Status(), ok)
			}
		}

		for i := 0; i < 5; i++ {
			c.Frame(nil)
		}
		if c.Episode() != ep || !c.Phase().Finished() {
			t.Fatal("controller must wait for acknowledgement")
		}
		c.Frame([]Event{Ev(EvPauseToggle)})
		if c.Episode() != ep+1 {
			t.Fatalf("ack should start episode %d, got %d", ep+1, c.Episode())
		}
		if !c.Log().HasEntry(CatEpisode, "ack", "") {
			t.Fatal("ack not logged")
		}
	}
	if len(c.History()) != 10 {
		t.Fatalf("expected 10 results, got %d", len(c.History()))
	}
}

func TestController_PauseStopsStepping(t *testing.T) {
	c, _ := newTestController(t)
	c.LoadMap(grid.NewOpenMap(16, 16, grid.Point{}, grid.Point{X: 8, Y: 8}))
	c.Frame(nil)
	c.Frame([]Event{Ev(EvPauseToggle)})
	if c.Phase() != PhasePaused || c.Status() != "Paused" {
		t.Fatalf("expected paused, got %s %q", c.Phase(), c.Status())
	}
	steps := c.Search().Stats().Steps
	for i := 0; i < 10; i++ {
		c.Frame(nil)
	}
	if c.Search().Stats().Steps != steps {
		t.Fatal("search advanced while paused")
	}
	c.Frame([]Event{Ev(EvPauseToggle)})
	if c.Phase() != PhaseSearching {
		t.Fatalf("expected searching after resume, got %s", c.Phase())
	}
	if c.Search().Stats().Steps != steps+1 {
		t.Fatalf("expected one step on the resume frame, got %d", c.Search().Stats().Steps-steps)
	}
}

func TestController_PendingConfigAppliesAtReset(t *testing.T) {
	c, _ := newTestController(t, WithStepsPerFrame(64))
	c.Frame([]Event{Ev(EvChangeRows), Ev(EvChangeCols), Ev(EvChangeCols), Ev(EvToggleAlgorithm)})

	if cfg := c.Config(); cfg.Rows != 16 || cfg.Cols != 16 || cfg.Mode != grid.Breadth {
		t.Fatalf("active config changed mid-episode: %+v", cfg)
	}
	if c.Map().Width != 16 || c.Map().Height != 16 {
		t.Fatal("map resized mid-episode")
	}
	p := c.Pending()
	if p.Rows != 24 || p.Cols != 48 || p.Mode != grid.Depth {
		t.Fatalf("pending config = %+v", p)
	}

	runUntilFinished(t, c)
	c.Frame([]Event{Ev(EvPauseToggle)})
	if c.Map().Width != 48 || c.Map().Height != 24 {
		t.Fatalf("expected 48x24 after reset, got %dx%d", c.Map().Width, c.Map().Height)
	}
	if c.Search().Mode() != grid.Depth {
		t.Fatalf("expected DFS after reset, got %s", c.Search().Mode())
	}
	if c.Log().CountCategory(CatConfig, "cols") != 2 {
		t.Fatal("expected two cols config entries")
	}
}

func TestController_RotateOnlyInSphereView(t *testing.T) {
	c, nc := newTestController(t)
	clears := nc.clears
	proj := c.Compositor().Projector()

	c.Frame([]Event{RotateEvent(sphere.Right)})
	if proj.PolarAngle() != 0 || nc.clears != clears {
		t.Fatal("rotation must be ignored in the flat view")
	}
	if c.Log().CountCategory(CatView, "rotate") != 0 {
		t.Fatal("ignored rotation was logged")
	}

	c.Frame([]Event{Ev(EvToggleView), RotateEvent(sphere.Right), RotateEvent(sphere.Up)})
	if c.View() != render.Sphere {
		t.Fatalf("expected sphere view, got %s", c.View())
	}
	if proj.PolarAngle() == 0 || proj.ZenithAngle() == 0 {
		t.Fatal("rotation not applied in sphere view")
	}
	if c.Log().CountCategory(CatView, "rotate") != 2 {
		t.Fatalf("expected 2 rotate entries, got %d", c.Log().CountCategory(CatView, "rotate"))
	}
	if nc.clears != clears+3 {
		t.Fatalf("expected a full redraw per view change and rotation, got %d", nc.clears-clears)
	}
}

func TestController_AutoAdvance(t *testing.T) {
	c, _ := newTestController(t, WithStepsPerFrame(64), WithAutoAdvance(3))
	for i := 0; i < 100000 && c.Episode() < 4; i++ {
		c.Frame(nil)
	}
	if c.Episode() < 4 {
		t.Fatalf("auto advance stalled at episode %d", c.Episode())
	}
	if len(c.History()) < 3 {
		t.Fatalf("expected at least 3 results, got %d", len(c.History()))
	}
}

func TestController_SpeedCycling(t *testing.T) {
	c, _ := newTestController(t)
	if c.StepsPerFrame() != 1 {
		t.Fatalf("default speed = %d, want 1", c.StepsPerFrame())
	}
	for i := 0; i < 10; i++ {
		c.Frame([]Event{Ev(EvSpeedUp)})
	}
	if c.StepsPerFrame() != SpeedOptions[len(SpeedOptions)-1] {
		t.Fatalf("speed should cap at %d, got %d", SpeedOptions[len(SpeedOptions)-1], c.StepsPerFrame())
	}
	for i := 0; i < 10; i++ {
		c.Frame([]Event{Ev(EvSlowDown)})
	}
	if c.StepsPerFrame() != 1 {
		t.Fatalf("speed should floor at 1, got %d", c.StepsPerFrame())
	}
}

func TestController_Quit(t *testing.T) {
	c, _ := newTestController(t)
	steps := c.Search().Stats().Steps
	c.Frame([]Event{Ev(EvQuit), Ev(EvToggleView)})
	if !c.Quitting() {
		t.Fatal("expected Quitting after EvQuit")
	}
	if c.View() != render.Flat || c.Search().Stats().Steps != steps {
		t.Fatal("nothing after Quit should be applied")
	}
}

func TestController_LoadMapStartEqualsGoal(t *testing.T) {
	c, _ := newTestController(t)
	m, err := grid.ParseMap([]string{"*..", "..."})
	if err != nil {
		t.Fatal(err)
	}
	c.LoadMap(m)
	c.Frame(nil)
	if c.Phase() != PhaseArrived || c.Status() != "Distance: 0" {
		t.Fatalf("expected immediate arrival, got %s %q", c.Phase(), c.Status())
	}
	if len(c.Path()) != 1 {
		t.Fatalf("expected trivial path, got %v", c.Path())
	}
}

func TestController_EnclosedGoalReportsNoPath(t *testing.T) {
	c, _ := newTestController(t, WithStepsPerFrame(64))
	m, err := grid.ParseMap([]string{
		"S.......",
		"...#....",
		"..#G#...",
		"...#....",
	})
	if err != nil {
		t.Fatal(err)
	}
	var got []EpisodeResult
	c.OnEpisodeEnd(func(r EpisodeResult, _ *grid.Map) { got = append(got, r) })
	c.LoadMap(m)
	runUntilFinished(t, c)
	if c.Status() != "No Path" {
		t.Fatalf("expected No Path, got %q", c.Status())
	}
	if len(got) != 1 || got[0].State != grid.Exhausted || got[0].Distance != -1 {
		t.Fatalf("episode hook got %+v", got)
	}
	if !c.Log().HasEntry(CatEpisode, "no_path", "") {
		t.Fatal("no_path not logged")
	}
}

func TestController_VerboseLogsSteps(t *testing.T) {
	quiet, _ := newTestController(t)
	loud, _ := newTestController(t, WithVerbose(true))
	quiet.LoadMap(grid.NewOpenMap(16, 16, grid.Point{}, grid.Point{X: 8, Y: 8}))
	loud.LoadMap(grid.NewOpenMap(16, 16, grid.Point{}, grid.Point{X: 8, Y: 8}))
	for i := 0; i < 20; i++ {
		quiet.Frame(nil)
		loud.Frame(nil)
	}
	if quiet.Log().CountCategory(CatSearch, "step") != 0 {
		t.Fatal("step entries recorded without verbose")
	}
	if loud.Log().CountCategory(CatSearch, "step") == 0 {
		t.Fatal("verbose log has no step entries")
	}
}

func TestController_Report(t *testing.T) {
	c, _ := newTestController(t, WithStepsPerFrame(64))
	runUntilFinished(t, c)
	c.Frame([]Event{Ev(EvChangeRows)})
	r := c.Report()
	for _, want := range []string{"Sphere Search report", "seed=7", "grid=16x16", "history:", "pending: 16x24", "log:"} {
		if !strings.Contains(r, want) {
			t.Fatalf("report missing %q:\n%s", want, r)
		}
	}
}
