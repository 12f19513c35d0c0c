package buffers

import (
	"sync/atomic"

	"github.com/bloeys/fourgl/assert"
)

var (
	lastRenderTargetId atomic.Uint32
)

// RenderTarget is an off-screen destination made of a framebuffer with a single RGBA8 color texture.
//
// Like attributes, the GPU objects are owned by the renderer's resource cache and found using Id.
// All attachments share the size of the target.
type RenderTarget struct {
	Id     uint32
	Width  int32
	Height int32

	dirty bool
}

// Resize changes the size of the target. The texture storage is reallocated on the next render into it.
// Resizing to the current size does nothing
func (rt *RenderTarget) Resize(width, height int32) {

	assert.T(width > 0 && height > 0, "Render target size must be positive, but got (%d, %d)", width, height)

	if rt.Width == width && rt.Height == height {
		return
	}

	rt.Width = width
	rt.Height = height
	rt.dirty = true
}

// TextureSize lets a render target be sampled by texture uniforms
func (rt *RenderTarget) TextureSize() (width, height int32) {
	return rt.Width, rt.Height
}

func (rt *RenderTarget) MarkDirty() {
	rt.dirty = true
}

func (rt *RenderTarget) IsDirty() bool {
	return rt.dirty
}

func (rt *RenderTarget) ClearDirty() {
	rt.dirty = false
}

func NewRenderTarget(width, height int32) *RenderTarget {

	assert.T(width > 0 && height > 0, "Render target size must be positive, but got (%d, %d)", width, height)

	return &RenderTarget{
		Id:     lastRenderTargetId.Add(1),
		Width:  width,
		Height: height,
		dirty:  true,
	}
}
