// Package glbackend implements gpu.Backend on top of OpenGL 4.1 core.
//
// A GL context must be current on the calling thread before Init is called, and every
// method must be called from that same thread.
package glbackend

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bloeys/fourgl/gpu"
	"github.com/bloeys/fourgl/logging"
	"github.com/go-gl/gl/v4.1-core/gl"
)

var _ gpu.Backend = &GLBackend{}

type GLBackend struct {
	// Vao is the single vertex array object all attribute state is recorded into.
	// Core profile refuses vertex attribute calls without one bound.
	Vao uint32
}

func (b *GLBackend) CreateBuffer() gpu.Buffer {

	var id uint32
	gl.GenBuffers(1, &id)
	if id == 0 {
		logging.ErrLog.Println("Failed to create OpenGL buffer")
	}

	return gpu.Buffer(id)
}

func (b *GLBackend) BindBuffer(kind gpu.BufferKind, buf gpu.Buffer) {
	gl.BindBuffer(bufferKindToGL(kind), uint32(buf))
}

func (b *GLBackend) BufferData(kind gpu.BufferKind, data []byte, usage gpu.BufUsage) {

	if len(data) == 0 {
		gl.BufferData(bufferKindToGL(kind), 0, gl.Ptr(nil), bufUsageToGL(usage))
		return
	}

	gl.BufferData(bufferKindToGL(kind), len(data), gl.Ptr(&data[0]), bufUsageToGL(usage))
}

func (b *GLBackend) DeleteBuffer(buf gpu.Buffer) {
	id := uint32(buf)
	gl.DeleteBuffers(1, &id)
}

func (b *GLBackend) CreateShader(stage gpu.ShaderStage) gpu.Shader {

	id := gl.CreateShader(shaderStageToGL(stage))
	if id == 0 {
		logging.ErrLog.Printf("Failed to create OpenGL shader. OpenGL Error=%d\n", gl.GetError())
	}

	return gpu.Shader(id)
}

func (b *GLBackend) CompileShader(shader gpu.Shader, src string) (ok bool, infoLog string) {

	id := uint32(shader)

	shaderCStr, shaderFree := gl.Strs(src + "\x00")
	defer shaderFree()
	gl.ShaderSource(id, 1, shaderCStr, nil)

	gl.CompileShader(id)

	var compiledSuccessfully int32
	gl.GetShaderiv(id, gl.COMPILE_STATUS, &compiledSuccessfully)
	if compiledSuccessfully == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetShaderiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetShaderInfoLog(id, logLength, nil, log)
	return false, gl.GoStr(log)
}

func (b *GLBackend) DeleteShader(shader gpu.Shader) {
	gl.DeleteShader(uint32(shader))
}

func (b *GLBackend) CreateProgram() gpu.Program {
	return gpu.Program(gl.CreateProgram())
}

func (b *GLBackend) AttachShader(prog gpu.Program, shader gpu.Shader) {
	gl.AttachShader(uint32(prog), uint32(shader))
}

func (b *GLBackend) LinkProgram(prog gpu.Program) (ok bool, infoLog string) {

	id := uint32(prog)
	gl.LinkProgram(id)

	var linkedSuccessfully int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &linkedSuccessfully)
	if linkedSuccessfully == gl.TRUE {
		return true, ""
	}

	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
	if logLength == 0 {
		return false, ""
	}

	log := gl.Str(strings.Repeat("\x00", int(logLength)))
	gl.GetProgramInfoLog(id, logLength, nil, log)
	return false, gl.GoStr(log)
}

func (b *GLBackend) UseProgram(prog gpu.Program) {
	gl.UseProgram(uint32(prog))
}

func (b *GLBackend) DeleteProgram(prog gpu.Program) {
	gl.DeleteProgram(uint32(prog))
}

func (b *GLBackend) GetAttribLocation(prog gpu.Program, name string) gpu.AttribLoc {
	return gpu.AttribLoc(gl.GetAttribLocation(uint32(prog), gl.Str(name+"\x00")))
}

func (b *GLBackend) EnableVertexAttribArray(loc gpu.AttribLoc) {
	gl.EnableVertexAttribArray(uint32(loc))
}

func (b *GLBackend) VertexAttribPointer(loc gpu.AttribLoc, size int32, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointerWithOffset(uint32(loc), size, gl.FLOAT, normalized, stride, uintptr(offset))
}

func (b *GLBackend) GetUniformLocation(prog gpu.Program, name string) gpu.UniformLoc {
	return gpu.UniformLoc(gl.GetUniformLocation(uint32(prog), gl.Str(name+"\x00")))
}

func (b *GLBackend) Uniform1i(loc gpu.UniformLoc, v int32) {
	gl.Uniform1i(int32(loc), v)
}

func (b *GLBackend) Uniform1f(loc gpu.UniformLoc, v float32) {
	gl.Uniform1f(int32(loc), v)
}

func (b *GLBackend) Uniform2fv(loc gpu.UniformLoc, v *[2]float32) {
	gl.Uniform2fv(int32(loc), 1, &v[0])
}

func (b *GLBackend) Uniform3fv(loc gpu.UniformLoc, v *[3]float32) {
	gl.Uniform3fv(int32(loc), 1, &v[0])
}

func (b *GLBackend) Uniform4fv(loc gpu.UniformLoc, v *[4]float32) {
	gl.Uniform4fv(int32(loc), 1, &v[0])
}

func (b *GLBackend) UniformMatrix4fv(loc gpu.UniformLoc, v *[4][4]float32) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &v[0][0])
}

func (b *GLBackend) ActiveTexture(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
}

func (b *GLBackend) CreateTexture() gpu.Texture {

	var id uint32
	gl.GenTextures(1, &id)
	if id == 0 {
		logging.ErrLog.Printf("Failed to generate texture. GlError=%d\n", gl.GetError())
	}

	return gpu.Texture(id)
}

func (b *GLBackend) BindTexture(tex gpu.Texture) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(tex))
}

func (b *GLBackend) TexParameters(filter gpu.TexFilter, wrap gpu.TexWrap) {

	glFilter := texFilterToGL(filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, glFilter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, glFilter)

	glWrap := texWrapToGL(wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, glWrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, glWrap)
}

func (b *GLBackend) TexImage2D(width, height int32, pixels []byte) {

	if len(pixels) == 0 {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		return
	}

	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
}

func (b *GLBackend) DeleteTexture(tex gpu.Texture) {
	id := uint32(tex)
	gl.DeleteTextures(1, &id)
}

func (b *GLBackend) CreateFramebuffer() gpu.Framebuffer {

	var id uint32
	gl.GenFramebuffers(1, &id)
	if id == 0 {
		logging.ErrLog.Printf("Failed to generate framebuffer. GlError=%d\n", gl.GetError())
	}

	return gpu.Framebuffer(id)
}

func (b *GLBackend) BindFramebuffer(fb gpu.Framebuffer) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, uint32(fb))
}

func (b *GLBackend) FramebufferTexture2D(tex gpu.Texture) {
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, uint32(tex), 0)
}

func (b *GLBackend) DeleteFramebuffer(fb gpu.Framebuffer) {
	id := uint32(fb)
	gl.DeleteFramebuffers(1, &id)
}

func (b *GLBackend) Viewport(x, y, width, height int32) {
	gl.Viewport(x, y, width, height)
}

func (b *GLBackend) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *GLBackend) Clear(mask gpu.ClearMask) {

	var glMask uint32
	if mask&gpu.ClearMask_Color != 0 {
		glMask |= gl.COLOR_BUFFER_BIT
	}

	if mask&gpu.ClearMask_Depth != 0 {
		glMask |= gl.DEPTH_BUFFER_BIT
	}

	if mask&gpu.ClearMask_Stencil != 0 {
		glMask |= gl.STENCIL_BUFFER_BIT
	}

	gl.Clear(glMask)
}

func (b *GLBackend) Enable(c gpu.Capability) {
	gl.Enable(capabilityToGL(c))
}

func (b *GLBackend) Disable(c gpu.Capability) {
	gl.Disable(capabilityToGL(c))
}

func (b *GLBackend) BlendFunc(src, dst gpu.BlendFactor) {
	gl.BlendFunc(blendFactorToGL(src), blendFactorToGL(dst))
}

func (b *GLBackend) DrawElements(mode gpu.PrimitiveMode, count int32, offset int) {
	gl.DrawElementsWithOffset(primitiveModeToGL(mode), count, gl.UNSIGNED_SHORT, uintptr(offset))
}

func (b *GLBackend) DrawArrays(mode gpu.PrimitiveMode, first, count int32) {
	gl.DrawArrays(primitiveModeToGL(mode), first, count)
}

func (b *GLBackend) ReadPixels(x, y, width, height int32) []byte {

	if width <= 0 || height <= 0 {
		return nil
	}

	pixels := make([]byte, width*height*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(x, y, width, height, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels
}

func (b *GLBackend) Delete() {

	if b.Vao == 0 {
		return
	}

	gl.DeleteVertexArrays(1, &b.Vao)
	b.Vao = 0
}

// Init loads the OpenGL function pointers of the current context and binds the vertex
// array object all attribute state goes into.
func Init() (*GLBackend, error) {

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to init OpenGL: %w", err)
	}

	b := &GLBackend{}
	gl.GenVertexArrays(1, &b.Vao)
	if b.Vao == 0 {
		return nil, errors.New("failed to create OpenGL vertex array object")
	}
	gl.BindVertexArray(b.Vao)

	if logging.Verbose {
		logging.InfoLog.Printf("OpenGL version: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))
	}

	return b, nil
}
