package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

type keyBinding struct {
	key    ebiten.Key
	action core.Action
}

var keyBindings = []keyBinding{
	{ebiten.KeyArrowLeft, core.ActionLeft},
	{ebiten.KeyA, core.ActionLeft},
	{ebiten.KeyArrowRight, core.ActionRight},
	{ebiten.KeyD, core.ActionRight},
	{ebiten.KeyArrowDown, core.ActionDown},
	{ebiten.KeyS, core.ActionDown},
	{ebiten.KeyArrowUp, core.ActionRotate},
	{ebiten.KeyW, core.ActionRotate},
	{ebiten.KeyX, core.ActionRotate},
	{ebiten.KeySpace, core.ActionHardDrop},
	{ebiten.KeyC, core.ActionSwap},
	{ebiten.KeyTab, core.ActionSwap},
	{ebiten.KeyEscape, core.ActionBack},
	{ebiten.KeyP, core.ActionBack},
	{ebiten.KeyEnter, core.ActionConfirm},
	{ebiten.KeyQ, core.ActionQuit},
}

// keyboard reports key transitions for the current tick.
type keyboard interface {
	JustPressed(ebiten.Key) bool
	JustReleased(ebiten.Key) bool
	Pressed(ebiten.Key) bool
}

type ebitenKeyboard struct{}

func (ebitenKeyboard) JustPressed(k ebiten.Key) bool  { return inpututil.IsKeyJustPressed(k) }
func (ebitenKeyboard) JustReleased(k ebiten.Key) bool { return inpututil.IsKeyJustReleased(k) }
func (ebitenKeyboard) Pressed(k ebiten.Key) bool      { return ebiten.IsKeyPressed(k) }

// pollKeys feeds this tick's key transitions into the tracker. An action is
// released only once none of its keys is still down.
func pollKeys(kb keyboard, t *core.InputTracker) {
	for _, b := range keyBindings {
		if kb.JustPressed(b.key) {
			t.KeyDown(b.action)
		}
		if kb.JustReleased(b.key) && !actionDown(kb, b.action) {
			t.KeyUp(b.action)
		}
	}
}

func actionDown(kb keyboard, a core.Action) bool {
	for _, b := range keyBindings {
		if b.action == a && kb.Pressed(b.key) {
			return true
		}
	}
	return false
}
