package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// keyCodes names the raylib keys the controller tracks with their DOM code spelling.
var keyCodes = []struct {
	key  int32
	code string
}{
	{rl.KeyW, "KeyW"},
	{rl.KeyUp, "ArrowUp"},
	{rl.KeyS, "KeyS"},
	{rl.KeyDown, "ArrowDown"},
	{rl.KeyA, "KeyA"},
	{rl.KeyLeft, "ArrowLeft"},
	{rl.KeyD, "KeyD"},
	{rl.KeyRight, "ArrowRight"},
	{rl.KeyLeftShift, "ShiftLeft"},
	{rl.KeyRightShift, "ShiftRight"},
}

// KeySink receives key edges.
type KeySink interface {
	KeyDown(code string)
	KeyUp(code string)
}

// PollKeys forwards this frame's press and release edges of the tracked keys.
func PollKeys(sink KeySink) {
	for _, k := range keyCodes {
		if rl.IsKeyPressed(k.key) {
			sink.KeyDown(k.code)
		}
		if rl.IsKeyReleased(k.key) {
			sink.KeyUp(k.code)
		}
	}
}

// HeldKeys returns the codes of tracked keys that are down right now.
func HeldKeys() []string {
	var held []string
	for _, k := range keyCodes {
		if rl.IsKeyDown(k.key) {
			held = append(held, k.code)
		}
	}
	return held
}

// LeftClick reports a left button press this frame.
func LeftClick() bool {
	return rl.IsMouseButtonPressed(rl.MouseButtonLeft)
}

// Focused reports whether the window has input focus.
func Focused() bool {
	return rl.IsWindowFocused()
}
