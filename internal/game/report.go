package game

import (
	"fmt"
	"strings"

	"github.com/Garsondee/Sphere-Search/internal/grid"
)

// reportLogTail is how many log lines the report includes.
const reportLogTail = 25

// Report renders a plain-text summary of the session: the current episode,
// recent results and the tail of the log.
func (c *Controller) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Sphere Search report ---\n")
	fmt.Fprintf(&b, "seed=%d episode=%d frame=%d\n", c.settings.Seed, c.episode, c.frame)

	m := c.m
	fmt.Fprintf(&b, "grid=%dx%d mode=%s walls=%d (%.1f%%) start=(%d,%d) goal=(%d,%d)\n",
		m.Width, m.Height, c.cfg.Mode, m.Walls(), 100*float64(m.Walls())/float64(m.Width*m.Height),
		m.Start.X, m.Start.Y, m.Goal.X, m.Goal.Y)

	p := c.comp.Projector()
	fmt.Fprintf(&b, "view=%s polar=%.0f zenith=%.0f speed=%d/frame\n",
		c.comp.View(), degrees(p.PolarAngle()), degrees(p.ZenithAngle()), c.StepsPerFrame())

	st := c.search.Stats()
	fmt.Fprintf(&b, "phase=%s status=%q frontier=%d\n", c.phase, c.status, c.search.Frontier())
	fmt.Fprintf(&b, "stats: steps=%d relax=%d stale=%d max_frontier=%d\n",
		st.Steps, st.Relaxations, st.StaleRemovals, st.MaxFrontier)
	if len(c.path) > 0 {
		fmt.Fprintf(&b, "path: %d cells %s\n", len(c.path), formatPath(c.path, 12))
	}
	if c.pending != c.cfg {
		fmt.Fprintf(&b, "pending: %dx%d %s\n", c.pending.Cols, c.pending.Rows, c.pending.Mode)
	}

	if len(c.history) > 0 {
		b.WriteString("\nhistory:\n")
		for _, r := range c.history {
			b.WriteString("  ")
			b.WriteString(r.String())
			b.WriteByte('\n')
		}
		b.WriteString(summarizeHistory(c.history))
	}

	b.WriteString("\nlog:\n")
	b.WriteString(c.log.FormatTail(reportLogTail))
	return b.String()
}

// String formats the result as one line.
func (r EpisodeResult) String() string {
	outcome := "no path"
	if r.State == grid.Arrived {
		outcome = fmt.Sprintf("d=%d", r.Distance)
	}
	return fmt.Sprintf("#%03d %dx%d %s %-8s steps=%d relax=%d stale=%d frames=%d",
		r.Episode, r.Cols, r.Rows, r.Mode, outcome,
		r.Stats.Steps, r.Stats.Relaxations, r.Stats.StaleRemovals, r.Frames)
}

// summarizeHistory reports arrival rate and mean work per mode.
func summarizeHistory(hist []EpisodeResult) string {
	type agg struct {
		n, arrived, steps, relax int
	}
	var byMode [2]agg
	for _, r := range hist {
		a := &byMode[r.Mode]
		a.n++
		a.steps += r.Stats.Steps
		a.relax += r.Stats.Relaxations
		if r.State == grid.Arrived {
			a.arrived++
		}
	}
	var b strings.Builder
	for mode, a := range byMode {
		if a.n == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s: %d/%d arrived, avg steps=%.1f avg relax=%.1f\n",
			grid.Mode(mode), a.arrived, a.n, float64(a.steps)/float64(a.n), float64(a.relax)/float64(a.n))
	}
	return b.String()
}

// formatPath lists up to limit cells, eliding the middle of longer paths.
func formatPath(path []grid.Point, limit int) string {
	cells := func(pts []grid.Point) string {
		parts := make([]string, len(pts))
		for i, p := range pts {
			parts[i] = fmt.Sprintf("(%d,%d)", p.X, p.Y)
		}
		return strings.Join(parts, " ")
	}
	if len(path) <= limit {
		return cells(path)
	}
	half := limit / 2
	return cells(path[:half]) + " ... " + cells(path[len(path)-half:])
}
