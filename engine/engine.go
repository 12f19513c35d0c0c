package engine

import (
	"runtime"

	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/gpu"
	"github.com/bloeys/fourgl/gpu/glbackend"
	"github.com/bloeys/fourgl/input"
	"github.com/bloeys/fourgl/renderer"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	isInited = false
)

var _ renderer.Surface = &Window{}

// Window is an SDL window with an OpenGL context and the backend bound to that context.
// It is the surface the renderer presents to
type Window struct {
	SDLWin         *sdl.Window
	GlCtx          sdl.GLContext
	Backend        *glbackend.GLBackend
	EventCallbacks []func(sdl.Event)

	bufWidth  int32
	bufHeight int32
}

// Size returns the drawable size of the window in pixels, which on high DPI displays
// is larger than the window size in screen coordinates
func (w *Window) Size() (width, height int32) {
	return w.SDLWin.GLGetDrawableSize()
}

// BufferSize returns the size last given to SetBufferSize
func (w *Window) BufferSize() (width, height int32) {
	return w.bufWidth, w.bufHeight
}

// SetBufferSize records the size the renderer configured its viewport for.
// The default framebuffer itself is resized by SDL along with the window
func (w *Window) SetBufferSize(width, height int32) {
	w.bufWidth = width
	w.bufHeight = height
}

func (w *Window) handleInputs() {

	input.EventLoopStart()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {

		//Fire callbacks
		for i := 0; i < len(w.EventCallbacks); i++ {
			w.EventCallbacks[i](event)
		}

		//Internal processing
		switch e := event.(type) {

		case *sdl.KeyboardEvent:
			input.HandleKeyboardEvent(e)

		case *sdl.WindowEvent:
			input.HandleWindowEvent(e)

		case *sdl.QuitEvent:
			input.HandleQuitEvent(e)
		}
	}
}

func (w *Window) Destroy() error {

	if w.Backend != nil {
		w.Backend.Delete()
		w.Backend = nil
	}

	sdl.GLDeleteContext(w.GlCtx)
	return w.SDLWin.Destroy()
}

func Init() error {

	isInited = true

	runtime.LockOSThread()
	err := initSDL()

	return err
}

func initSDL() error {

	err := sdl.Init(sdl.INIT_TIMER | sdl.INIT_VIDEO)
	if err != nil {
		return err
	}

	sdl.ShowCursor(1)

	sdl.GLSetAttribute(sdl.MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.MINOR_VERSION, 1)

	sdl.GLSetAttribute(sdl.GL_RED_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_GREEN_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_BLUE_SIZE, 8)
	sdl.GLSetAttribute(sdl.GL_ALPHA_SIZE, 8)

	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)
	sdl.GLSetAttribute(sdl.GL_STENCIL_SIZE, 8)

	// Allows us to do MSAA
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
	sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, 4)

	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)

	return nil
}

func DeInit() {
	sdl.Quit()
	isInited = false
}

func CreateOpenGLWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, x, y, width, height, WindowFlags_OPENGL|flags)
}

func CreateOpenGLWindowCentered(title string, width, height int32, flags WindowFlags) (*Window, error) {
	return createWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, WindowFlags_OPENGL|flags)
}

func createWindow(title string, x, y, width, height int32, flags WindowFlags) (*Window, error) {

	assert.T(isInited, "engine.Init() was not called!")

	sdlWin, err := sdl.CreateWindow(title, x, y, width, height, uint32(flags))
	if err != nil {
		return nil, err
	}

	win := &Window{
		SDLWin:         sdlWin,
		EventCallbacks: make([]func(sdl.Event), 0),
	}

	win.GlCtx, err = sdlWin.GLCreateContext()
	if err != nil {
		sdlWin.Destroy()
		return nil, err
	}

	win.Backend, err = glbackend.Init()
	if err != nil {
		sdl.GLDeleteContext(win.GlCtx)
		sdlWin.Destroy()
		return nil, err
	}

	initOpenGL(win.Backend)
	win.bufWidth, win.bufHeight = win.Size()

	// Get rid of the blinding white startup screen (unfortunately there is still one frame of white)
	win.Backend.Clear(gpu.ClearMask_All)
	sdlWin.GLSwap()

	return win, nil
}

// initOpenGL sets state the renderer does not manage itself
func initOpenGL(b gpu.Backend) {
	b.Enable(gpu.Capability_DepthTest)
	b.ClearColor(0, 0, 0, 1)
}

func SetVSync(enabled bool) {

	if enabled {
		sdl.GLSetSwapInterval(1)
	} else {
		sdl.GLSetSwapInterval(0)
	}
}

func SetMSAA(isEnabled bool) {

	if isEnabled {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}
}
