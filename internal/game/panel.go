package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	sidePanelWidth = 160
	buttonW        = 140
	buttonH        = 40
)

var (
	colButton        = color.RGBA{R: 0, G: 90, B: 90, A: 255}
	colButtonPressed = color.RGBA{R: 0, G: 200, B: 200, A: 255}
	colButtonBorder  = color.RGBA{R: 0, G: 255, B: 255, A: 255}

	statusColors = map[Phase]color.RGBA{
		PhaseSearching: {R: 180, G: 255, B: 0, A: 255},
		PhasePaused:    {R: 255, G: 165, B: 0, A: 255},
		PhaseArrived:   {R: 0, G: 255, B: 0, A: 255},
		PhaseNoPath:    {R: 255, G: 0, B: 0, A: 255},
	}
)

// StatusColor is the fill of the status label for phase p.
func StatusColor(p Phase) color.RGBA { return statusColors[p] }

// button is a clickable rectangle in the side panel. A button with no
// event is a read-only label.
type button struct {
	x, y, w, h int
	label      func(c *Controller) string
	ev         *Event
}

func (b *button) contains(mx, my int) bool {
	return mx >= b.x && mx < b.x+b.w && my >= b.y && my < b.y+b.h
}

// newPanelButtons lays out the status label and the four config buttons
// along the bottom of the side panel.
func newPanelButtons(side int) []*button {
	x := side + 10
	evp := func(e Event) *Event { return &e }
	return []*button{
		{x: x, y: side - 320, w: buttonW, h: buttonH, label: func(c *Controller) string { return c.Status() }},
		{x: x, y: side - 240, w: buttonW, h: buttonH, ev: evp(Ev(EvChangeRows)),
			label: func(c *Controller) string { return fmt.Sprintf("Rows: %d", c.Pending().Rows) }},
		{x: x, y: side - 180, w: buttonW, h: buttonH, ev: evp(Ev(EvChangeCols)),
			label: func(c *Controller) string { return fmt.Sprintf("Cols: %d", c.Pending().Cols) }},
		{x: x, y: side - 120, w: buttonW, h: buttonH, ev: evp(Ev(EvToggleView)),
			label: func(c *Controller) string { return c.View().String() + " Map" }},
		{x: x, y: side - 60, w: buttonW, h: buttonH, ev: evp(Ev(EvToggleAlgorithm)),
			label: func(c *Controller) string { return c.Pending().Mode.String() }},
	}
}

// hitButton returns the event of the clickable button under (mx, my).
func hitButton(buttons []*button, mx, my int) (Event, bool) {
	for _, b := range buttons {
		if b.ev != nil && b.contains(mx, my) {
			return *b.ev, true
		}
	}
	return Event{}, false
}

var helpLines = []string{
	"Space  pause / next",
	"Arrows rotate (3D)",
	"R K    rows / cols",
	"V      2D / 3D",
	"A      BFS / DFS",
	", .    speed",
	"C      copy report",
	"Esc    quit",
}

func (g *Game) drawSidePanel(screen *ebiten.Image) {
	px := float32(g.side)
	vector.FillRect(screen, px, 0, sidePanelWidth, float32(g.height), color.RGBA{R: 14, G: 14, B: 20, A: 255}, false)
	vector.StrokeLine(screen, px, 0, px, float32(g.height), 1.0, color.RGBA{R: 50, G: 50, B: 80, A: 255}, false)

	x := g.side + 10
	y := 8
	ebitenutil.DebugPrintAt(screen, "SPHERE SEARCH", x, y)
	y += 24
	for _, l := range helpLines {
		ebitenutil.DebugPrintAt(screen, l, x, y)
		y += 16
	}
	y += 8
	cfg := g.ctl.Config()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("episode %d", g.ctl.Episode()), x, y)
	y += 16
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%dx%d %s", cfg.Cols, cfg.Rows, cfg.Mode), x, y)
	y += 16
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("speed %dx", g.ctl.StepsPerFrame()), x, y)
	y += 16
	if s := g.ctl.Search(); s != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("frontier %d", s.Frontier()), x, y)
		y += 16
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("steps %d", s.Stats().Steps), x, y)
		y += 16
	}
	if p := g.ctl.Pending(); p != cfg {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("next %dx%d %s", p.Cols, p.Rows, p.Mode), x, y)
		y += 16
	}
	if g.noticeFrames > 0 {
		ebitenutil.DebugPrintAt(screen, g.notice, x, y)
	}

	for i, b := range g.buttons {
		fill := colButton
		switch {
		case i == 0:
			fill = StatusColor(g.ctl.Phase())
			fill.A = 200
		case i == g.held:
			fill = colButtonPressed
		}
		vector.FillRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), fill, false)
		vector.StrokeRect(screen, float32(b.x), float32(b.y), float32(b.w), float32(b.h), 1.0, colButtonBorder, false)
		label := b.label(g.ctl)
		lx := b.x + (b.w-len(label)*logCharWidth)/2
		ebitenutil.DebugPrintAt(screen, label, lx, b.y+b.h/2-8)
	}
}
