package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionRotate            // W, Up, X - rotate piece clockwise
	ActionLeft              // A, Left - move left
	ActionRight             // D, Right - move right
	ActionDown              // S, Down - soft drop
	ActionHardDrop          // Space - drop to the floor and lock
	ActionBack              // Escape, P - pause and resume
	ActionSwap              // C, Tab - exchange active and next piece
	ActionConfirm           // Enter - start or restart
	ActionQuit              // Q, Ctrl+C - exit game/session
	ActionScoreboard        // H - show high scores
	actionCount
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRotate:
		return "Rotate"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionHardDrop:
		return "HardDrop"
	case ActionBack:
		return "Back"
	case ActionSwap:
		return "Swap"
	case ActionConfirm:
		return "Confirm"
	case ActionQuit:
		return "Quit"
	case ActionScoreboard:
		return "Scoreboard"
	default:
		return "Unknown"
	}
}

func (a Action) valid() bool {
	return a > ActionNone && a < actionCount
}

// ButtonState is the per-frame state of one action's button.
type ButtonState uint8

const (
	ButtonUp       ButtonState = iota // not down, was not down last frame
	ButtonPressed                     // went down since the previous frame
	ButtonHeld                        // down for at least two consecutive frames
	ButtonReleased                    // went up since the previous frame
)

// String returns a human-readable name for the button state.
func (s ButtonState) String() string {
	switch s {
	case ButtonUp:
		return "Up"
	case ButtonPressed:
		return "Pressed"
	case ButtonHeld:
		return "Held"
	case ButtonReleased:
		return "Released"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for a single simulation step.
// The zero value has every button up.
type InputFrame struct {
	buttons [actionCount]ButtonState
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// PressedFrame returns a frame where the given actions were just pressed.
func PressedFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a, ButtonPressed)
	}
	return f
}

// HeldFrame returns a frame where the given actions are being held.
func HeldFrame(actions ...Action) InputFrame {
	var f InputFrame
	for _, a := range actions {
		f.Set(a, ButtonHeld)
	}
	return f
}

// Set assigns the state of an action's button.
func (f *InputFrame) Set(a Action, s ButtonState) {
	if !a.valid() {
		return
	}
	f.buttons[a] = s
}

// State returns the state of an action's button.
func (f InputFrame) State(a Action) ButtonState {
	if !a.valid() {
		return ButtonUp
	}
	return f.buttons[a]
}

// Pressed reports whether the button went down this frame.
func (f InputFrame) Pressed(a Action) bool {
	return f.State(a) == ButtonPressed
}

// Held reports whether the button stayed down from the previous frame.
func (f InputFrame) Held(a Action) bool {
	return f.State(a) == ButtonHeld
}

// Down reports whether the button is currently down.
func (f InputFrame) Down(a Action) bool {
	s := f.State(a)
	return s == ButtonPressed || s == ButtonHeld
}

// InputTracker turns raw key-down/key-up events into per-frame button states.
//
// Terminals report key presses and auto-repeats but never releases. For those
// platforms a non-zero releaseAfter treats a key as released once no event for
// it has arrived in that many seconds. A key also stays down through at least
// one whole frame without events, so frames longer than releaseAfter still
// see it held. Platforms with real release events pass zero and call KeyUp.
type InputTracker struct {
	releaseAfter float64

	down       [actionCount]bool
	wasDown    [actionCount]bool
	edge       [actionCount]bool
	idleTime   [actionCount]float64
	idleFrames [actionCount]int
}

// NewInputTracker creates a tracker with the given auto-release timeout in seconds.
func NewInputTracker(releaseAfter float64) *InputTracker {
	return &InputTracker{releaseAfter: releaseAfter}
}

// KeyDown records a press or auto-repeat for the action.
func (t *InputTracker) KeyDown(a Action) {
	if !a.valid() {
		return
	}
	if !t.down[a] {
		t.edge[a] = true
	}
	t.down[a] = true
	t.idleTime[a] = 0
	t.idleFrames[a] = 0
}

// KeyUp records a release for the action.
func (t *InputTracker) KeyUp(a Action) {
	if !a.valid() {
		return
	}
	t.down[a] = false
}

// Frame computes the button states for one simulation step of dt seconds
// and advances the tracker to the next frame.
func (t *InputTracker) Frame(dt float64) InputFrame {
	var f InputFrame
	for a := ActionNone + 1; a < actionCount; a++ {
		if t.releaseAfter > 0 && t.down[a] && !t.edge[a] && t.idleFrames[a] > 1 && t.idleTime[a] >= t.releaseAfter {
			t.down[a] = false
		}

		switch {
		case t.edge[a]:
			// A press and release within one frame still counts as a press.
			f.buttons[a] = ButtonPressed
		case t.down[a] && t.wasDown[a]:
			f.buttons[a] = ButtonHeld
		case t.down[a]:
			f.buttons[a] = ButtonPressed
		case t.wasDown[a]:
			f.buttons[a] = ButtonReleased
		default:
			f.buttons[a] = ButtonUp
		}

		t.wasDown[a] = t.down[a]
		t.edge[a] = false
		t.idleTime[a] += dt
		t.idleFrames[a]++
	}
	return f
}

// Reset releases every button without producing Released states.
func (t *InputTracker) Reset() {
	*t = InputTracker{releaseAfter: t.releaseAfter}
}
