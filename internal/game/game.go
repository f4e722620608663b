package game

import (
	"fmt"
	"image/color"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/Sphere-Search/internal/render"
)

// noticeDuration is how long a one-line notice stays in the side panel.
const noticeDuration = 120

// Game is the ebiten shell around a Controller. It decodes raw input into
// events, blits the persistent map image and draws the side panels.
type Game struct {
	width  int
	height int
	side   int

	canvas   *render.EbitenCanvas
	ctl      *Controller
	log      *SearchLog
	logPanel *LogPanel

	keys    *keyInput
	buttons []*button
	held    int // index of the button under a held mouse press, -1 if none

	notice       string
	noticeFrames int
}

// New builds the game window state from the given options.
func New(opts ...Option) *Game {
	s := NewSettings(opts...)
	g := &Game{
		width:    s.Side + sidePanelWidth + logPanelWidth,
		height:   s.Side,
		side:     s.Side,
		canvas:   render.NewEbitenCanvas(s.Side),
		log:      NewSearchLog(s.Verbose),
		logPanel: NewLogPanel(),
		keys:     newKeyInput(),
		buttons:  newPanelButtons(s.Side),
		held:     -1,
	}
	g.log.SetSink(g.logPanel.Add)
	g.ctl = NewController(g.canvas, s, g.log)
	return g
}

// WindowSize returns the preferred outer window size.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}

// Controller returns the controller driven by this shell.
func (g *Game) Controller() *Controller { return g.ctl }

func (g *Game) Update() error {
	events, copyReport := g.keys.poll(ebiten.IsKeyPressed)
	events = append(events, g.pollMouse()...)
	if copyReport {
		g.copyReport()
	}
	if g.noticeFrames > 0 {
		g.noticeFrames--
	}

	g.ctl.Frame(events)
	if g.ctl.Quitting() {
		return ebiten.Termination
	}
	return nil
}

// pollMouse turns a left click on a panel button into its event.
func (g *Game) pollMouse() []Event {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.held = -1
		return nil
	}
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return nil
	}
	mx, my := ebiten.CursorPosition()
	ev, ok := hitButton(g.buttons, mx, my)
	if !ok {
		return nil
	}
	for i, b := range g.buttons {
		if b.contains(mx, my) {
			g.held = i
		}
	}
	return []Event{ev}
}

func (g *Game) copyReport() {
	report := g.ctl.Report()
	if err := clipboard.WriteAll(report); err != nil {
		g.log.Add(g.ctl.Episode(), g.ctl.FrameCount(), CatUI, "clipboard_error", fmt.Errorf("copy report: %w", err).Error(), 0)
		g.setNotice("copy failed")
		return
	}
	g.log.Add(g.ctl.Episode(), g.ctl.FrameCount(), CatUI, "report_copied", fmt.Sprintf("%d bytes", len(report)), float64(len(report)))
	g.setNotice("report copied")
}

func (g *Game) setNotice(s string) {
	g.notice = s
	g.noticeFrames = noticeDuration
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 0, G: 0, B: 0, A: 255})

	// The map image is only repainted where cells change; blit it as is.
	var op ebiten.DrawImageOptions
	screen.DrawImage(g.canvas.Image(), &op)

	g.drawSidePanel(screen)
	g.logPanel.Draw(screen, g.side+sidePanelWidth, g.height)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
