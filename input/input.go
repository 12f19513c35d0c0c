// The input package tracks keyboard state and quit requests coming from SDL events.
//
// EventLoopStart must be called once per frame before events are handled, as it resets
// the per-frame state (pressed/released this frame, quit requests).
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

type keyState struct {
	Key                 sdl.Keycode
	State               int
	IsPressedThisFrame  bool
	IsReleasedThisFrame bool
}

var (
	keyMap = make(map[sdl.Keycode]keyState)

	isQuitRequested bool
	isResized       bool
)

func EventLoopStart() {

	for k, v := range keyMap {
		v.IsPressedThisFrame = false
		v.IsReleasedThisFrame = false
		keyMap[k] = v
	}

	isQuitRequested = false
	isResized = false
}

func ClearKeyboardState() {
	clear(keyMap)
}

func HandleQuitEvent(e *sdl.QuitEvent) {
	isQuitRequested = true
}

// HandleWindowEvent records size changes so they can be queried with WindowResized
func HandleWindowEvent(e *sdl.WindowEvent) {
	if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
		isResized = true
	}
}

func IsQuitClicked() bool {
	return isQuitRequested
}

// WindowResized reports whether the window changed size this frame
func WindowResized() bool {
	return isResized
}

func HandleKeyboardEvent(e *sdl.KeyboardEvent) {

	ks, ok := keyMap[e.Keysym.Sym]
	if !ok {
		ks = keyState{Key: e.Keysym.Sym}
	}

	ks.State = int(e.State)
	ks.IsPressedThisFrame = e.State == sdl.PRESSED && e.Repeat == 0
	ks.IsReleasedThisFrame = e.State == sdl.RELEASED && e.Repeat == 0

	keyMap[ks.Key] = ks
}

// KeyClicked returns true only on the frame the key was pressed
func KeyClicked(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.IsPressedThisFrame
}

// KeyReleased returns true only on the frame the key was released
func KeyReleased(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.IsReleasedThisFrame
}

// KeyDown returns true for as long as the key is held
func KeyDown(kc sdl.Keycode) bool {

	ks, ok := keyMap[kc]
	if !ok {
		return false
	}

	return ks.State == sdl.PRESSED
}

func KeyUp(kc sdl.Keycode) bool {
	return !KeyDown(kc)
}
