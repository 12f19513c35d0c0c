package renderer

import (
	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/scene"
)

// Surface is the drawable area a renderer presents to (e.g. a window).
//
// Size is the logical size the area currently has, while BufferSize is the size of the
// backing buffer. The renderer calls SetBufferSize when the two disagree.
type Surface interface {
	Size() (width, height int32)
	BufferSize() (width, height int32)
	SetBufferSize(width, height int32)
}

type Render interface {
	// Render draws the visible meshes of the scene into target, or into the surface if target is nil.
	// An error aborts the frame, in which case it should not be presented
	Render(scn *scene.Scene, target *buffers.RenderTarget) error
	Resize(force bool)
	ClearColor(r, g, b, a float32)
}
