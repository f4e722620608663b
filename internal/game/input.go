package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Sphere-Search/internal/sphere"
)

type keyBinding struct {
	key ebiten.Key
	ev  Event
}

var keyBindings = []keyBinding{
	{ebiten.KeySpace, Ev(EvPauseToggle)},
	{ebiten.KeyP, Ev(EvPauseToggle)},
	{ebiten.KeyArrowUp, RotateEvent(sphere.Up)},
	{ebiten.KeyArrowDown, RotateEvent(sphere.Down)},
	{ebiten.KeyArrowLeft, RotateEvent(sphere.Left)},
	{ebiten.KeyArrowRight, RotateEvent(sphere.Right)},
	{ebiten.KeyR, Ev(EvChangeRows)},
	{ebiten.KeyK, Ev(EvChangeCols)},
	{ebiten.KeyV, Ev(EvToggleView)},
	{ebiten.KeyA, Ev(EvToggleAlgorithm)},
	{ebiten.KeyComma, Ev(EvSlowDown)},
	{ebiten.KeyPeriod, Ev(EvSpeedUp)},
	{ebiten.KeyEscape, Ev(EvQuit)},
}

// copyKey copies the session report to the clipboard. It is handled by
// the window shell, not the Controller.
const copyKey = ebiten.KeyC

// keyInput turns held-key state into edge-triggered events.
type keyInput struct {
	prevKeys map[ebiten.Key]bool
}

func newKeyInput() *keyInput {
	return &keyInput{prevKeys: make(map[ebiten.Key]bool)}
}

// poll reads the current key state through pressed and returns the events
// for keys that went down since the previous call, in binding order.
func (in *keyInput) poll(pressed func(ebiten.Key) bool) (events []Event, copyReport bool) {
	currentKeys := make(map[ebiten.Key]bool, len(keyBindings)+1)
	for _, b := range keyBindings {
		down := pressed(b.key)
		currentKeys[b.key] = down
		if down && !in.prevKeys[b.key] {
			events = append(events, b.ev)
		}
	}
	currentKeys[copyKey] = pressed(copyKey)
	copyReport = currentKeys[copyKey] && !in.prevKeys[copyKey]
	in.prevKeys = currentKeys
	return events, copyReport
}
