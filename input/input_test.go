package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func keyEvent(kc sdl.Keycode, state uint8, repeat uint8) *sdl.KeyboardEvent {
	return &sdl.KeyboardEvent{
		State:  state,
		Repeat: repeat,
		Keysym: sdl.Keysym{Sym: kc},
	}
}

func TestKeyFrameState(t *testing.T) {

	ClearKeyboardState()

	EventLoopStart()
	HandleKeyboardEvent(keyEvent(sdl.K_r, sdl.PRESSED, 0))

	if !KeyClicked(sdl.K_r) || !KeyDown(sdl.K_r) {
		t.Errorf("KeyClicked = %v, KeyDown = %v, want true, true", KeyClicked(sdl.K_r), KeyDown(sdl.K_r))
	}

	// Held keys stay down but are no longer clicked, even with repeats
	EventLoopStart()
	HandleKeyboardEvent(keyEvent(sdl.K_r, sdl.PRESSED, 1))
	if KeyClicked(sdl.K_r) || !KeyDown(sdl.K_r) {
		t.Errorf("after repeat KeyClicked = %v, KeyDown = %v, want false, true", KeyClicked(sdl.K_r), KeyDown(sdl.K_r))
	}

	EventLoopStart()
	HandleKeyboardEvent(keyEvent(sdl.K_r, sdl.RELEASED, 0))
	if !KeyReleased(sdl.K_r) || !KeyUp(sdl.K_r) {
		t.Errorf("KeyReleased = %v, KeyUp = %v, want true, true", KeyReleased(sdl.K_r), KeyUp(sdl.K_r))
	}

	EventLoopStart()
	if KeyReleased(sdl.K_r) {
		t.Error("KeyReleased still true a frame after release")
	}

	if KeyDown(sdl.K_SPACE) || KeyClicked(sdl.K_SPACE) {
		t.Error("unknown key reported as down")
	}
}

func TestQuitAndResizeAreFrameScoped(t *testing.T) {

	EventLoopStart()
	HandleQuitEvent(&sdl.QuitEvent{})
	HandleWindowEvent(&sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED})

	if !IsQuitClicked() || !WindowResized() {
		t.Errorf("IsQuitClicked = %v, WindowResized = %v, want true, true", IsQuitClicked(), WindowResized())
	}

	EventLoopStart()
	if IsQuitClicked() || WindowResized() {
		t.Errorf("after a new frame IsQuitClicked = %v, WindowResized = %v, want false, false", IsQuitClicked(), WindowResized())
	}
}
