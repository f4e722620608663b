package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	logPanelWidth = 300
	logMaxEntries = 60
	logLineHeight = 16
	logCharWidth  = 6 // DebugPrint glyph width
)

// LogPanel is a ring buffer of recent SearchLog entries rendered on-screen.
type LogPanel struct {
	entries []SearchLogEntry
	head    int
	count   int
}

// NewLogPanel creates a panel with a fixed capacity.
func NewLogPanel() *LogPanel {
	return &LogPanel{
		entries: make([]SearchLogEntry, logMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest once full. It matches the
// SearchLog sink signature.
func (lp *LogPanel) Add(e SearchLogEntry) {
	lp.entries[lp.head] = e
	lp.head = (lp.head + 1) % logMaxEntries
	if lp.count < logMaxEntries {
		lp.count++
	}
}

// Len returns the number of buffered entries.
func (lp *LogPanel) Len() int { return lp.count }

// Recent returns entries in chronological order (oldest first).
func (lp *LogPanel) Recent() []SearchLogEntry {
	result := make([]SearchLogEntry, lp.count)
	for i := 0; i < lp.count; i++ {
		idx := (lp.head - lp.count + i + logMaxEntries) % logMaxEntries
		result[i] = lp.entries[idx]
	}
	return result
}

var categoryColors = map[string]color.RGBA{
	CatEpisode: {R: 0, G: 220, B: 80, A: 255},
	CatSearch:  {R: 60, G: 120, B: 255, A: 255},
	CatView:    {R: 0, G: 220, B: 220, A: 255},
	CatConfig:  {R: 255, G: 165, B: 0, A: 255},
	CatUI:      {R: 200, G: 200, B: 200, A: 255},
}

// Draw renders the panel at panelX, newest entry at the bottom.
func (lp *LogPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), float32(panelH), color.RGBA{R: 10, G: 10, B: 16, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 50, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(logPanelWidth), 16, color.RGBA{R: 20, G: 20, B: 36, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "SEARCH LOG", panelX+8, 0)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+logPanelWidth), 16, 1.0, color.RGBA{R: 50, G: 50, B: 90, A: 200}, false)

	entries := lp.Recent()
	maxVisible := (panelH - 24) / logLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}
	maxChars := (logPanelWidth - 16) / logCharWidth

	y := 20
	for i, e := range entries {
		if i == len(entries)-1 {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(logPanelWidth-4), float32(logLineHeight), color.RGBA{R: 30, G: 30, B: 50, A: 160}, false)
		}
		dot, ok := categoryColors[e.Category]
		if !ok {
			dot = categoryColors[CatUI]
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+5), 3, 5, dot, false)

		line := fmt.Sprintf("%3d %s %s", e.Episode, e.Key, e.Value)
		if len(line) > maxChars {
			line = line[:maxChars]
		}
		ebitenutil.DebugPrintAt(screen, line, panelX+12, y)
		y += logLineHeight
	}
}
