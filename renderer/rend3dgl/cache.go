package rend3dgl

import (
	"errors"
	"fmt"

	"github.com/bloeys/fourgl/assets"
	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/gpu"
	"github.com/bloeys/fourgl/logging"
	"github.com/bloeys/fourgl/materials"
	"github.com/bloeys/fourgl/meshes"
	"github.com/bloeys/fourgl/shaders"
)

var (
	ErrMissingGeometryAttribute = errors.New("geometry has no attribute with the bound name")
	ErrWrongAttributeKind       = errors.New("only vertex attributes can feed shader attributes")
	ErrUnboundAttribute         = errors.New("shader attribute binding has neither a geometry attribute nor inline data")
	ErrUnknownTextureSource     = errors.New("unknown texture source type")
)

// locKey identifies a shader location: the material (and so the program) it was resolved
// against, plus the binding or uniform it belongs to
type locKey struct {
	MatId uint32
	Id    uint32
}

type programState struct {
	Prog shaders.ShaderProgram
	// Err is set if the material failed to compile or link, in which case Prog is empty
	Err error
}

type renderTargetState struct {
	Fbo gpu.Framebuffer
	Tex gpu.Texture
}

// ResourceCache turns attributes, materials, textures and render targets into backend objects.
//
// Every backend object is created the first time it is needed and then kept for the life of the cache.
// Data is uploaded only while the owning object is dirty, and the dirty flag is cleared after upload.
// Backend objects are found using the Ids of the logical objects, which keeps the logical objects
// free of any backend state.
//
// A cache belongs to one backend context and is not safe for concurrent use.
type ResourceCache struct {
	Backend gpu.Backend
	Binder  *BufferBinder

	buffers       map[uint32]gpu.Buffer
	programs      map[uint32]*programState
	attribLocs    map[locKey]gpu.AttribLoc
	unifLocs      map[locKey]gpu.UniformLoc
	renderTargets map[uint32]renderTargetState
	textures      map[uint32]gpu.Texture

	boundFramebuffer gpu.Framebuffer
}

// PrepareGeometry makes sure every attribute of the geometry has an up to date buffer, and returns
// how many indices (or vertices, if the geometry has no index attribute) should be drawn.
//
// Index attributes take precedence over vertex attributes regardless of which one is marked as the
// count source. Within a kind the count source wins, otherwise the first attribute of that kind is used.
func (c *ResourceCache) PrepareGeometry(geom *meshes.Geometry) int32 {

	attribs := geom.Attributes()
	for i := 0; i < len(attribs); i++ {
		c.prepareAttribute(attribs[i].Attrib)
	}

	if ia := geom.IndexAttribute(); ia != nil {
		return ia.DrawCount()
	}

	if va := geom.VertexCountSource(); va != nil {
		return va.DrawCount()
	}

	return 0
}

func (c *ResourceCache) prepareAttribute(a *buffers.Attribute) gpu.Buffer {

	buf, ok := c.buffers[a.Id]
	if !ok {

		buf = c.Backend.CreateBuffer()
		c.buffers[a.Id] = buf

		// A new buffer is empty, even if the attribute was uploaded to another (or a released) one
		a.MarkDirty()

		if logging.Verbose {
			logging.InfoLog.Printf("Created buffer %d for %s attribute %d\n", buf, a.Kind, a.Id)
		}
	}

	if a.IsDirty() {
		kind := a.Kind.BufferKind()
		c.Binder.Bind(kind, buf)
		c.Backend.BufferData(kind, a.Bytes(), gpu.BufUsage_Dynamic_Draw)
		a.ClearDirty()
	}

	return buf
}

// PrepareMaterial makes the material's program current and brings its attribute pointers and uniforms
// up to date. geom is the geometry of the mesh being drawn, used to resolve geometry attribute bindings.
//
// Shader compile and link failures are returned as *shaders.ShaderCompileError and *shaders.ProgramLinkError.
// A material that failed once keeps failing with the same error without being recompiled.
func (c *ResourceCache) PrepareMaterial(mat *materials.Material, geom *meshes.Geometry) error {

	prog, err := c.program(mat)
	if err != nil {
		return err
	}

	c.Backend.UseProgram(prog)

	if err := c.prepareAttribBindings(mat, prog, geom); err != nil {
		return err
	}

	return c.prepareUniforms(mat, prog)
}

func (c *ResourceCache) program(mat *materials.Material) (gpu.Program, error) {

	st, ok := c.programs[mat.Id]
	if ok {
		return st.Prog.Id, st.Err
	}

	shdrProg, err := shaders.NewShaderProgram(c.Backend, mat.VertSrc, mat.FragSrc)
	if err != nil {
		err = fmt.Errorf("material '%s': %w", mat.Name, err)
		c.programs[mat.Id] = &programState{Err: err}
		return 0, err
	}

	c.programs[mat.Id] = &programState{Prog: shdrProg}

	if logging.Verbose {
		logging.InfoLog.Printf("Compiled program %d for material '%s'\n", shdrProg.Id, mat.Name)
	}

	return shdrProg.Id, nil
}

func (c *ResourceCache) prepareAttribBindings(mat *materials.Material, prog gpu.Program, geom *meshes.Geometry) error {

	for i := 0; i < len(mat.Attribs); i++ {

		binding := mat.Attribs[i]

		key := locKey{MatId: mat.Id, Id: binding.Id}
		loc, ok := c.attribLocs[key]
		if !ok {

			loc = c.Backend.GetAttribLocation(prog, binding.Name)
			c.attribLocs[key] = loc

			if loc != gpu.InvalidLoc {
				c.Backend.EnableVertexAttribArray(loc)
			}
		}

		if loc == gpu.InvalidLoc {
			continue
		}

		var src *buffers.Attribute
		if binding.GeomAttrib != "" {

			if geom != nil {
				src = geom.Attribute(binding.GeomAttrib)
			}

			if src == nil {
				return fmt.Errorf("%w: '%s' (bound to attribute '%s' of material '%s')", ErrMissingGeometryAttribute, binding.GeomAttrib, binding.Name, mat.Name)
			}

		} else if binding.Data != nil {
			src = binding.Data
		} else {
			return fmt.Errorf("%w: attribute '%s' of material '%s'", ErrUnboundAttribute, binding.Name, mat.Name)
		}

		if src.Kind != buffers.AttribKind_Vertex {
			return fmt.Errorf("%w: attribute '%s' of material '%s' is bound to a %s attribute", ErrWrongAttributeKind, binding.Name, mat.Name, src.Kind)
		}

		buf := c.prepareAttribute(src)
		c.Binder.Bind(gpu.BufferKind_Array, buf)
		c.Backend.VertexAttribPointer(loc, src.ItemSize, false, 0, 0)
	}

	return nil
}

// prepareUniforms pushes dirty uniforms. Texture uniforms get texture units in order starting from 0,
// and their textures are bound on every call since units are shared by all programs
func (c *ResourceCache) prepareUniforms(mat *materials.Material, prog gpu.Program) error {

	var textureSlot uint32
	for i := 0; i < len(mat.Uniforms); i++ {

		u := mat.Uniforms[i]

		key := locKey{MatId: mat.Id, Id: u.Id}
		loc, ok := c.unifLocs[key]
		if !ok {
			loc = c.Backend.GetUniformLocation(prog, u.Name)
			c.unifLocs[key] = loc
			u.MarkDirty()
		}

		if loc == gpu.InvalidLoc {
			continue
		}

		if u.Type == materials.UniformType_Texture {

			// Select the unit first, as creating the texture binds it
			c.Backend.ActiveTexture(textureSlot)
			tex, err := c.textureHandle(u.Texture)
			if err != nil {
				return fmt.Errorf("uniform '%s' of material '%s': %w", u.Name, mat.Name, err)
			}
			c.Backend.BindTexture(tex)

			if u.IsDirty() {
				c.Backend.Uniform1i(loc, int32(textureSlot))
				u.ClearDirty()
			}

			textureSlot++
			continue
		}

		if !u.IsDirty() {
			continue
		}

		switch u.Type {
		case materials.UniformType_Float32:
			c.Backend.Uniform1f(loc, u.Float32)
		case materials.UniformType_Int32:
			c.Backend.Uniform1i(loc, u.Int32)
		case materials.UniformType_Vec2:
			c.Backend.Uniform2fv(loc, &u.Vec2.Data)
		case materials.UniformType_Vec3:
			c.Backend.Uniform3fv(loc, &u.Vec3.Data)
		case materials.UniformType_Vec4:
			c.Backend.Uniform4fv(loc, &u.Vec4.Data)
		case materials.UniformType_Mat4:
			c.Backend.UniformMatrix4fv(loc, &u.Mat4.Data)
		default:
			logging.WarnLog.Printf("Uniform '%s' of material '%s' has unsupported type %s and will not be set\n", u.Name, mat.Name, u.Type)
		}

		u.ClearDirty()
	}

	return nil
}

func (c *ResourceCache) textureHandle(src materials.TextureSource) (gpu.Texture, error) {

	switch t := src.(type) {
	case nil:
		return 0, nil
	case *assets.Texture:
		return c.PrepareTexture(t), nil
	case *buffers.RenderTarget:
		c.PrepareRenderTarget(t)
		return c.renderTargets[t.Id].Tex, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrUnknownTextureSource, src)
	}
}

// PrepareTexture creates the texture on first use and uploads its pixels while dirty.
// The texture is left bound to the active unit
func (c *ResourceCache) PrepareTexture(t *assets.Texture) gpu.Texture {

	tex, ok := c.textures[t.Id]
	if !ok {

		tex = c.Backend.CreateTexture()
		c.Backend.BindTexture(tex)
		c.Backend.TexParameters(gpu.TexFilter_Linear, gpu.TexWrap_ClampToEdge)
		c.textures[t.Id] = tex
		t.MarkDirty()

		if logging.Verbose {
			logging.InfoLog.Printf("Created texture %d for texture asset %d\n", tex, t.Id)
		}
	}

	if t.IsDirty() {
		c.Backend.BindTexture(tex)
		c.Backend.TexImage2D(t.Width, t.Height, t.Pix)
		t.ClearDirty()
	}

	return tex
}

// PrepareRenderTarget creates the framebuffer and color texture of the target on first use, and
// (re)allocates the texture storage while the target is dirty. Returns the framebuffer to bind.
// The framebuffer binding is left as it was
func (c *ResourceCache) PrepareRenderTarget(rt *buffers.RenderTarget) gpu.Framebuffer {

	st, ok := c.renderTargets[rt.Id]
	if !ok {

		st.Tex = c.Backend.CreateTexture()
		c.Backend.BindTexture(st.Tex)
		c.Backend.TexParameters(gpu.TexFilter_Linear, gpu.TexWrap_ClampToEdge)

		st.Fbo = c.Backend.CreateFramebuffer()
		c.Backend.BindFramebuffer(st.Fbo)
		c.Backend.FramebufferTexture2D(st.Tex)
		c.Backend.BindFramebuffer(c.boundFramebuffer)

		c.renderTargets[rt.Id] = st
		rt.MarkDirty()

		if logging.Verbose {
			logging.InfoLog.Printf("Created framebuffer %d with texture %d for render target %d\n", st.Fbo, st.Tex, rt.Id)
		}
	}

	if rt.IsDirty() {
		c.Backend.BindTexture(st.Tex)
		c.Backend.TexImage2D(rt.Width, rt.Height, nil)
		rt.ClearDirty()
	}

	return st.Fbo
}

// BindFramebuffer binds fb (0 being the default framebuffer) and remembers it
func (c *ResourceCache) BindFramebuffer(fb gpu.Framebuffer) {
	c.Backend.BindFramebuffer(fb)
	c.boundFramebuffer = fb
}

func (c *ResourceCache) BoundFramebuffer() gpu.Framebuffer {
	return c.boundFramebuffer
}

// Buffer returns the buffer created for the attribute, if any
func (c *ResourceCache) Buffer(a *buffers.Attribute) (gpu.Buffer, bool) {
	buf, ok := c.buffers[a.Id]
	return buf, ok
}

// Program returns the program of the material, if it was compiled successfully
func (c *ResourceCache) Program(mat *materials.Material) (gpu.Program, bool) {

	st, ok := c.programs[mat.Id]
	if !ok || st.Err != nil {
		return 0, false
	}

	return st.Prog.Id, true
}

// RenderTarget returns the framebuffer and texture of the render target, if created
func (c *ResourceCache) RenderTarget(rt *buffers.RenderTarget) (gpu.Framebuffer, gpu.Texture, bool) {
	st, ok := c.renderTargets[rt.Id]
	return st.Fbo, st.Tex, ok
}

// Release deletes every backend object created by the cache. The cache starts from scratch if used again,
// recreating and re-uploading whatever it is asked to prepare
func (c *ResourceCache) Release() {

	for _, buf := range c.buffers {
		c.Backend.DeleteBuffer(buf)
	}

	for _, st := range c.programs {
		if st.Err == nil {
			st.Prog.Delete(c.Backend)
		}
	}

	for _, tex := range c.textures {
		c.Backend.DeleteTexture(tex)
	}

	for _, st := range c.renderTargets {
		c.Backend.DeleteFramebuffer(st.Fbo)
		c.Backend.DeleteTexture(st.Tex)
	}

	c.reset()
	c.Binder.LastBound = 0
}

func (c *ResourceCache) reset() {
	c.buffers = make(map[uint32]gpu.Buffer)
	c.programs = make(map[uint32]*programState)
	c.attribLocs = make(map[locKey]gpu.AttribLoc)
	c.unifLocs = make(map[locKey]gpu.UniformLoc)
	c.renderTargets = make(map[uint32]renderTargetState)
	c.textures = make(map[uint32]gpu.Texture)
}

func NewResourceCache(backend gpu.Backend, binder *BufferBinder) *ResourceCache {

	c := &ResourceCache{
		Backend: backend,
		Binder:  binder,
	}
	c.reset()

	return c
}
