package rend3dgl

import (
	"fmt"
	"image"

	"github.com/bloeys/fourgl/assets"
	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/gpu"
	"github.com/bloeys/fourgl/meshes"
	"github.com/bloeys/fourgl/renderer"
	"github.com/bloeys/fourgl/scene"
)

var _ renderer.Render = &Rend3DGL{}

type Options struct {
	Backend gpu.Backend

	// Surface may be nil if only render targets are drawn into
	Surface renderer.Surface

	// By default every Render call clears the destination first
	DisableAutoClear bool
}

type Rend3DGL struct {
	Backend gpu.Backend
	Surface renderer.Surface
	Cache   *ResourceCache
	Binder  *BufferBinder

	AutoClear bool

	clearRed   float32
	clearGreen float32
	clearBlue  float32
	clearAlpha float32

	// Set after rendering into a target, so the next surface render restores the surface viewport
	viewportIsTarget bool
}

// Render draws the visible meshes of scn in insertion order into target, or into the surface
// if target is nil.
//
// Surface size changes are picked up on every call, target or not. When drawing into a target
// the viewport is then set to the target size for the rest of the frame.
//
// The first mesh that fails stops the frame and its error is returned wrapped with the mesh name.
func (r *Rend3DGL) Render(scn *scene.Scene, target *buffers.RenderTarget) error {

	var fbo gpu.Framebuffer
	if target != nil {
		fbo = r.Cache.PrepareRenderTarget(target)
	}
	r.Cache.BindFramebuffer(fbo)

	if r.AutoClear {
		r.Clear()
	}

	r.Resize(target == nil && r.viewportIsTarget)
	r.viewportIsTarget = target != nil
	if target != nil {
		r.Backend.Viewport(0, 0, target.Width, target.Height)
	}

	children := scn.Children()
	for i := 0; i < len(children); i++ {

		m := children[i]
		if !m.Visible {
			continue
		}

		if err := r.RenderObject(m); err != nil {
			return fmt.Errorf("failed to render '%s': %w", m.Name, err)
		}
	}

	return nil
}

// PrepareObject uploads whatever the mesh needs and makes its material current.
// Returns the number of elements to draw
func (r *Rend3DGL) PrepareObject(m *meshes.Mesh) (int32, error) {

	drawCount := r.Cache.PrepareGeometry(m.Geometry)
	if err := r.Cache.PrepareMaterial(m.Material, m.Geometry); err != nil {
		return 0, err
	}

	return drawCount, nil
}

func (r *Rend3DGL) RenderObject(m *meshes.Mesh) error {

	drawCount, err := r.PrepareObject(m)
	if err != nil {
		return err
	}

	if m.Material.Transparent {
		r.Backend.Enable(gpu.Capability_Blend)
		r.Backend.BlendFunc(gpu.BlendFactor_SrcAlpha, gpu.BlendFactor_OneMinusSrcAlpha)
	} else {
		r.Backend.Disable(gpu.Capability_Blend)
	}

	if m.Kind == meshes.DrawableKind_Line {

		if va := m.Geometry.VertexCountSource(); va != nil {
			buf, _ := r.Cache.Buffer(va)
			r.Binder.Bind(gpu.BufferKind_Array, buf)
		}

		r.Backend.DrawArrays(gpu.PrimitiveMode_Lines, 0, drawCount)
		return nil
	}

	ia := m.Geometry.IndexAttribute()
	if ia == nil {
		r.Backend.DrawArrays(gpu.PrimitiveMode_Triangles, 0, drawCount)
		return nil
	}

	buf, _ := r.Cache.Buffer(ia)
	r.Binder.Bind(gpu.BufferKind_ElementArray, buf)
	r.Backend.DrawElements(gpu.PrimitiveMode_Triangles, drawCount, 0)
	return nil
}

// Clear clears the color, depth and stencil of the bound framebuffer using the clear color
func (r *Rend3DGL) Clear() {
	r.Backend.ClearColor(r.clearRed, r.clearGreen, r.clearBlue, r.clearAlpha)
	r.Backend.Clear(gpu.ClearMask_All)
}

// Resize matches the surface's buffer size and the viewport to the surface's current size.
// Nothing is done when the sizes already match unless force is true
func (r *Rend3DGL) Resize(force bool) {

	if r.Surface == nil {
		return
	}

	w, h := r.Surface.Size()
	bufW, bufH := r.Surface.BufferSize()
	if !force && bufW == w && bufH == h {
		return
	}

	r.Surface.SetBufferSize(w, h)
	r.Backend.Viewport(0, 0, w, h)
}

func (r *Rend3DGL) ClearColor(red, green, blue, alpha float32) {
	r.clearRed = red
	r.clearGreen = green
	r.clearBlue = blue
	r.clearAlpha = alpha
}

// Snapshot reads back the contents of target, or of the surface if target is nil.
// The target must have been rendered into at least once
func (r *Rend3DGL) Snapshot(target *buffers.RenderTarget) *image.NRGBA {

	var w, h int32
	var fbo gpu.Framebuffer
	if target != nil {
		fbo = r.Cache.PrepareRenderTarget(target)
		w, h = target.Width, target.Height
	} else if r.Surface != nil {
		w, h = r.Surface.BufferSize()
	}

	prevFbo := r.Cache.BoundFramebuffer()
	if prevFbo != fbo {
		r.Backend.BindFramebuffer(fbo)
	}

	pixels := r.Backend.ReadPixels(0, 0, w, h)

	if prevFbo != fbo {
		r.Backend.BindFramebuffer(prevFbo)
	}

	return assets.ImageFromPixels(w, h, pixels)
}

// Delete frees all backend objects created by the renderer
func (r *Rend3DGL) Delete() {
	r.Cache.Release()
}

func NewRend3DGL(opts Options) *Rend3DGL {

	binder := &BufferBinder{Backend: opts.Backend}

	return &Rend3DGL{
		Backend:    opts.Backend,
		Surface:    opts.Surface,
		Cache:      NewResourceCache(opts.Backend, binder),
		Binder:     binder,
		AutoClear:  !opts.DisableAutoClear,
		clearAlpha: 1,
	}
}
