package engine

import (
	"github.com/bloeys/fourgl/logging"
)

var (
	isRunning = false
)

type Game interface {
	Init()
	Update()
	// Render draws the frame. A returned error aborts the frame, which is then not presented
	Render() error
	FrameEnd()
	DeInit()
}

// Run calls Init on the game then drives it frame by frame until Quit is called or a frame fails to render.
// DeInit is always called before returning. The error of the failed frame, if any, is returned
func Run(g Game, w *Window) error {

	isRunning = true
	g.Init()
	defer g.DeInit()

	for isRunning {

		w.handleInputs()

		g.Update()
		if !isRunning {
			break
		}

		if err := g.Render(); err != nil {
			logging.ErrLog.Printf("Frame aborted: %v\n", err)
			isRunning = false
			return err
		}

		w.SDLWin.GLSwap()
		g.FrameEnd()
	}

	return nil
}

// Quit makes Run return after the current frame
func Quit() {
	isRunning = false
}

func IsRunning() bool {
	return isRunning
}
