package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

func pressedSet(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := map[ebiten.Key]bool{}
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestKeyInput_EdgeTriggered(t *testing.T) {
	in := newKeyInput()

	evs, _ := in.poll(pressedSet(ebiten.KeySpace))
	if len(evs) != 1 || evs[0].Kind != EvPauseToggle {
		t.Fatalf("first press: %v", evs)
	}
	evs, _ = in.poll(pressedSet(ebiten.KeySpace))
	if len(evs) != 0 {
		t.Fatalf("held key repeated: %v", evs)
	}
	in.poll(pressedSet())
	evs, _ = in.poll(pressedSet(ebiten.KeySpace))
	if len(evs) != 1 {
		t.Fatalf("second press after release: %v", evs)
	}
}

func TestKeyInput_Bindings(t *testing.T) {
	in := newKeyInput()
	evs, copyReport := in.poll(pressedSet(ebiten.KeyArrowLeft, ebiten.KeyR, ebiten.KeyPeriod, ebiten.KeyC))
	if !copyReport {
		t.Fatal("C should request a report copy")
	}
	want := []Event{RotateEvent(sphere.Left), Ev(EvChangeRows), Ev(EvSpeedUp)}
	if len(evs) != len(want) {
		t.Fatalf("events = %v, want %v", evs, want)
	}
	for i := range want {
		if evs[i] != want[i] {
			t.Fatalf("event %d = %v, want %v", i, evs[i], want[i])
		}
	}
	_, copyReport = in.poll(pressedSet(ebiten.KeyC))
	if copyReport {
		t.Fatal("held C must not copy again")
	}
}

func TestHitButton(t *testing.T) {
	buttons := newPanelButtons(800)
	cases := []struct {
		x, y int
		want EventKind
		hit  bool
	}{
		{820, 480 + 5, 0, false}, // status label is not clickable
		{820, 560 + 5, EvChangeRows, true},
		{900, 620 + 39, EvChangeCols, true},
		{820, 680 + 20, EvToggleView, true},
		{949, 740 + 1, EvToggleAlgorithm, true},
		{950, 740 + 1, 0, false},
		{400, 400, 0, false},
	}
	for _, tc := range cases {
		ev, ok := hitButton(buttons, tc.x, tc.y)
		if ok != tc.hit || (ok && ev.Kind != tc.want) {
			t.Fatalf("click (%d,%d): got %v %v, want %v %v", tc.x, tc.y, ev, ok, tc.want, tc.hit)
		}
	}
}

func TestSettings_Options(t *testing.T) {
	s := NewSettings(WithSeed(3), WithStepsPerFrame(10), WithAutoAdvance(5), WithVerbose(true))
	if s.Seed != 3 || s.AutoAdvance != 5 || !s.Verbose {
		t.Fatalf("options not applied: %+v", s)
	}
	if s.StepsPerFrame != 8 {
		t.Fatalf("10 steps should round down to 8, got %d", s.StepsPerFrame)
	}
	if NewSettings(WithStepsPerFrame(0)).StepsPerFrame != 1 {
		t.Fatal("speed below the first option should clamp to it")
	}
	if s.Grid.Cols != 80 || s.Grid.Rows != 80 {
		t.Fatalf("default grid = %+v", s.Grid)
	}
}
