package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Garsondee/Sphere-Search/internal/game"
	"github.com/Garsondee/Sphere-Search/internal/grid"
	"github.com/Garsondee/Sphere-Search/internal/render"
	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

// maxFramesPerEpisode guards against a run that never finishes.
const maxFramesPerEpisode = 1 << 20

type runStats struct {
	runIndex int
	seed     int64
	results  []game.EpisodeResult
	verified int
	mismatch []string
}

type options struct {
	runs      int
	episodes  int
	cols      int
	rows      int
	mode      string
	wallOneIn int
	seedBase  int64
	seedStep  int64
	verify    bool
	pngPath   string
	view      string
	rotate    string
	mapPath   string
	side      int
}

func main() {
	var o options
	flag.IntVar(&o.runs, "runs", 5, "number of seeded runs")
	flag.IntVar(&o.episodes, "episodes", 20, "search episodes per run")
	flag.IntVar(&o.cols, "cols", 80, "grid columns (one of 16,24,48,60,80,120,160,240)")
	flag.IntVar(&o.rows, "rows", 80, "grid rows (one of 16,24,48,60,80,120,160,240)")
	flag.StringVar(&o.mode, "mode", "bfs", "frontier order: bfs, dfs or alt (alternate per episode)")
	flag.IntVar(&o.wallOneIn, "wall-one-in", 3, "each cell is a wall with probability 1/N")
	flag.Int64Var(&o.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&o.seedStep, "seed-step", 1, "seed increment between runs")
	flag.BoolVar(&o.verify, "verify", true, "check every distance against a plain BFS")
	flag.StringVar(&o.pngPath, "png", "", "write the final map of the last run to this PNG file")
	flag.StringVar(&o.view, "view", "2d", "snapshot view: 2d or 3d")
	flag.StringVar(&o.rotate, "rotate", "", "sphere rotations before the snapshot, e.g. RRU (U/D/L/R)")
	flag.StringVar(&o.mapPath, "map", "", "text map file (#=wall .=open S=start G=goal); implies one episode per run")
	flag.IntVar(&o.side, "side", 480, "snapshot size in pixels")
	flag.Parse()

	if err := run(o); err != nil {
		fmt.Printf("error: %v\n", err)
	}
}

func run(o options) error {
	if o.runs <= 0 {
		return errors.New("-runs must be > 0")
	}
	if o.episodes <= 0 {
		return errors.New("-episodes must be > 0")
	}
	if !validDimension(o.cols) || !validDimension(o.rows) {
		return fmt.Errorf("-cols/-rows must be one of %v", grid.DimensionOptions)
	}
	if o.wallOneIn < 1 {
		return errors.New("-wall-one-in must be >= 1")
	}
	mode, alternate, err := parseMode(o.mode)
	if err != nil {
		return err
	}
	view, err := parseView(o.view)
	if err != nil {
		return err
	}
	rotations, err := parseRotations(o.rotate)
	if err != nil {
		return err
	}
	var fixed *grid.Map
	if o.mapPath != "" {
		if fixed, err = loadMapFile(o.mapPath); err != nil {
			return err
		}
		o.episodes = 1
	}

	fmt.Printf("=== Headless Search Report ===\n")
	fmt.Printf("grid=%dx%d mode=%s walls=1/%d runs=%d episodes=%d seed_base=%d seed_step=%d verify=%v\n\n",
		o.cols, o.rows, o.mode, o.wallOneIn, o.runs, o.episodes, o.seedBase, o.seedStep, o.verify)

	all := make([]runStats, 0, o.runs)
	var last *game.Controller
	var canvas *render.RasterCanvas
	for i := 0; i < o.runs; i++ {
		seed := o.seedBase + int64(i)*o.seedStep
		canvas = render.NewRasterCanvas(o.side, o.side)
		ctl := game.NewController(canvas, game.NewSettings(
			game.WithSeed(seed),
			game.WithSide(o.side),
			game.WithGrid(grid.Config{Cols: o.cols, Rows: o.rows, Mode: mode, WallOneIn: o.wallOneIn}),
			game.WithView(view),
			game.WithStepsPerFrame(game.SpeedOptions[len(game.SpeedOptions)-1]),
			game.WithAutoAdvance(1),
		), nil)
		if fixed != nil {
			ctl.LoadMap(fixed.Clone())
		}
		rs := runEpisodes(i+1, seed, ctl, o, alternate, rotations)
		all = append(all, rs)
		printRun(rs)
		last = ctl
	}
	printAggregate(all)

	if o.pngPath != "" {
		canvas.Label(6, 6, last.Status(), game.StatusColor(last.Phase()))
		if err := canvas.SavePNG(o.pngPath); err != nil {
			return err
		}
		fmt.Printf("\nsnapshot=%s view=%s\n", o.pngPath, last.View())
	}
	return nil
}

// runEpisodes drives ctl until it has finished o.episodes searches. The
// loop stops right after the last one so its painted map is kept.
func runEpisodes(runIndex int, seed int64, ctl *game.Controller, o options, alternate bool, rotations []game.Event) runStats {
	rs := runStats{runIndex: runIndex, seed: seed}
	ctl.OnEpisodeEnd(func(r game.EpisodeResult, m *grid.Map) {
		rs.results = append(rs.results, r)
		if o.verify {
			rs.verified++
			if msg := verifyResult(r, m); msg != "" {
				rs.mismatch = append(rs.mismatch, msg)
			}
		}
	})

	// The toggle lands while the finished episode waits, so the auto
	// advance on the same frame picks up the flipped mode.
	pending := rotations
	done := 0
	for f := 0; f < maxFramesPerEpisode*o.episodes && len(rs.results) < o.episodes; f++ {
		ctl.Frame(pending)
		pending = nil
		if len(rs.results) > done {
			done = len(rs.results)
			if alternate {
				pending = []game.Event{game.Ev(game.EvToggleAlgorithm)}
			}
		}
	}
	return rs
}

// verifyResult compares an episode's outcome with a plain BFS over the
// same walls. It returns an empty string when they agree.
func verifyResult(r game.EpisodeResult, m *grid.Map) string {
	want, ok := grid.ShortestDistance(m, r.Start, r.Goal)
	switch {
	case r.State == grid.Arrived && !ok:
		return fmt.Sprintf("episode %d: arrived at distance %d but goal is unreachable", r.Episode, r.Distance)
	case r.State == grid.Exhausted && ok:
		return fmt.Sprintf("episode %d: exhausted but goal is %d away", r.Episode, want)
	case r.State == grid.Arrived && r.Distance != want:
		return fmt.Sprintf("episode %d: distance %d, expected %d", r.Episode, r.Distance, want)
	}
	return ""
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	a := summarize(rs.results)
	fmt.Printf("episodes=%d arrived=%d no_path=%d\n", a.episodes, a.arrived, a.episodes-a.arrived)
	for _, mode := range []grid.Mode{grid.Breadth, grid.Depth} {
		m := a.byMode[mode]
		if m.episodes == 0 {
			continue
		}
		fmt.Printf("  %s: episodes=%d avg_distance=%s avg_steps=%.1f avg_relax=%.1f avg_stale=%.1f max_frontier=%d\n",
			mode, m.episodes, avgString(m.distances), avg(m.steps, m.episodes), avg(m.relax, m.episodes), avg(m.stale, m.episodes), m.maxFrontier)
	}
	if rs.verified > 0 {
		fmt.Printf("verify: %d/%d ok\n", rs.verified-len(rs.mismatch), rs.verified)
		for _, msg := range rs.mismatch {
			fmt.Printf("  MISMATCH %s\n", msg)
		}
	}
	fmt.Println()
}

type modeAgg struct {
	episodes    int
	steps       int
	relax       int
	stale       int
	maxFrontier int
	distances   []int
}

type aggregate struct {
	episodes int
	arrived  int
	byMode   [2]modeAgg
}

func summarize(results []game.EpisodeResult) aggregate {
	var a aggregate
	for _, r := range results {
		a.episodes++
		m := &a.byMode[r.Mode]
		m.episodes++
		m.steps += r.Stats.Steps
		m.relax += r.Stats.Relaxations
		m.stale += r.Stats.StaleRemovals
		if r.Stats.MaxFrontier > m.maxFrontier {
			m.maxFrontier = r.Stats.MaxFrontier
		}
		if r.State == grid.Arrived {
			a.arrived++
			m.distances = append(m.distances, r.Distance)
		}
	}
	return a
}

func printAggregate(all []runStats) {
	var results []game.EpisodeResult
	verified, mismatches := 0, 0
	for _, rs := range all {
		results = append(results, rs.results...)
		verified += rs.verified
		mismatches += len(rs.mismatch)
	}
	a := summarize(results)

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d episodes=%d arrival_rate=%.1f%%\n", len(all), a.episodes, 100*avg(a.arrived, a.episodes))
	for _, mode := range []grid.Mode{grid.Breadth, grid.Depth} {
		m := a.byMode[mode]
		if m.episodes == 0 {
			continue
		}
		fmt.Printf("%s: avg_steps=%.1f avg_relax=%.1f relax_per_step=%.2f distance[min/median/max]=%s\n",
			mode, avg(m.steps, m.episodes), avg(m.relax, m.episodes), avg(m.relax, m.steps), spread(m.distances))
	}
	if verified > 0 {
		fmt.Printf("verify: %d checked, %d mismatches\n", verified, mismatches)
	}
}

func parseMode(s string) (grid.Mode, bool, error) {
	switch strings.ToLower(s) {
	case "bfs", "breadth":
		return grid.Breadth, false, nil
	case "dfs", "depth":
		return grid.Depth, false, nil
	case "alt", "both":
		return grid.Breadth, true, nil
	}
	return 0, false, fmt.Errorf("unsupported mode %q (supported: bfs, dfs, alt)", s)
}

func parseView(s string) (render.View, error) {
	switch strings.ToLower(s) {
	case "2d", "flat":
		return render.Flat, nil
	case "3d", "sphere":
		return render.Sphere, nil
	}
	return 0, fmt.Errorf("unsupported view %q (supported: 2d, 3d)", s)
}

func parseRotations(s string) ([]game.Event, error) {
	var out []game.Event
	for _, r := range strings.ToUpper(s) {
		switch r {
		case 'U':
			out = append(out, game.RotateEvent(sphere.Up))
		case 'D':
			out = append(out, game.RotateEvent(sphere.Down))
		case 'L':
			out = append(out, game.RotateEvent(sphere.Left))
		case 'R':
			out = append(out, game.RotateEvent(sphere.Right))
		default:
			return nil, fmt.Errorf("bad rotation %q in %q (use U, D, L, R)", r, s)
		}
	}
	return out, nil
}

func loadMapFile(path string) (*grid.Map, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("open map: %w", err)
	}
	defer f.Close()

	var rows []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r ")
		if line == "" {
			continue
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read map %s: %w", path, err)
	}
	m, err := grid.ParseMap(rows)
	if err != nil {
		return nil, fmt.Errorf("parse map %s: %w", path, err)
	}
	return m, nil
}

func validDimension(n int) bool {
	for _, v := range grid.DimensionOptions {
		if v == n {
			return true
		}
	}
	return false
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func spread(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	s := append([]int(nil), vals...)
	sort.Ints(s)
	return fmt.Sprintf("%d/%d/%d", s[0], s[len(s)/2], s[len(s)-1])
}
