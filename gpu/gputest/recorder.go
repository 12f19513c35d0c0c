// Package gputest provides a gpu.Backend that records every call instead of talking to a GPU.
package gputest

import (
	"fmt"
	"strings"

	"github.com/bloeys/fourgl/gpu"
)

var _ gpu.Backend = &Recorder{}

type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {

	if len(c.Args) == 0 {
		return c.Name
	}

	args := make([]string, len(c.Args))
	for i := 0; i < len(c.Args); i++ {
		args[i] = fmt.Sprint(c.Args[i])
	}

	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Recorder implements gpu.Backend by appending a Call per method invocation.
//
// Handles of all object kinds come from one counter starting at 1, so no two objects ever
// share a handle. Attribute and uniform names get a stable location the first time they are
// queried unless AttribLocs/UniformLocs say otherwise; map a name to gpu.InvalidLoc to
// simulate an attribute or uniform the shader does not use.
type Recorder struct {
	Calls []Call

	// CompileErrors maps a shader stage to the info log returned when compiling a shader of that stage
	CompileErrors map[gpu.ShaderStage]string
	// LinkError, if not empty, makes every LinkProgram call fail with it as the info log
	LinkError string

	AttribLocs  map[string]gpu.AttribLoc
	UniformLocs map[string]gpu.UniformLoc

	lastHandle     uint32
	nextAttribLoc  gpu.AttribLoc
	nextUniformLoc gpu.UniformLoc
	shaderStages   map[gpu.Shader]gpu.ShaderStage
}

func (r *Recorder) record(name string, args ...any) {
	r.Calls = append(r.Calls, Call{Name: name, Args: args})
}

func (r *Recorder) newHandle() uint32 {
	r.lastHandle++
	return r.lastHandle
}

// Count returns how many times the named method was called
func (r *Recorder) Count(name string) int {

	n := 0
	for i := 0; i < len(r.Calls); i++ {
		if r.Calls[i].Name == name {
			n++
		}
	}

	return n
}

// Filter returns the calls to any of the given methods, in call order
func (r *Recorder) Filter(names ...string) []Call {

	out := make([]Call, 0)
	for i := 0; i < len(r.Calls); i++ {
		for j := 0; j < len(names); j++ {
			if r.Calls[i].Name == names[j] {
				out = append(out, r.Calls[i])
				break
			}
		}
	}

	return out
}

// Reset forgets recorded calls. Handles and locations handed out so far stay valid
func (r *Recorder) Reset() {
	r.Calls = r.Calls[:0]
}

func (r *Recorder) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(r.newHandle())
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) BindBuffer(kind gpu.BufferKind, buf gpu.Buffer) {
	r.record("BindBuffer", kind, buf)
}

func (r *Recorder) BufferData(kind gpu.BufferKind, data []byte, usage gpu.BufUsage) {
	r.record("BufferData", kind, len(data), usage)
}

func (r *Recorder) DeleteBuffer(buf gpu.Buffer) {
	r.record("DeleteBuffer", buf)
}

func (r *Recorder) CreateShader(stage gpu.ShaderStage) gpu.Shader {

	s := gpu.Shader(r.newHandle())
	if r.shaderStages == nil {
		r.shaderStages = make(map[gpu.Shader]gpu.ShaderStage)
	}
	r.shaderStages[s] = stage

	r.record("CreateShader", stage, s)
	return s
}

func (r *Recorder) CompileShader(shader gpu.Shader, src string) (ok bool, infoLog string) {

	r.record("CompileShader", shader)

	if errLog, failed := r.CompileErrors[r.shaderStages[shader]]; failed {
		return false, errLog
	}

	return true, ""
}

func (r *Recorder) DeleteShader(shader gpu.Shader) {
	r.record("DeleteShader", shader)
}

func (r *Recorder) CreateProgram() gpu.Program {
	p := gpu.Program(r.newHandle())
	r.record("CreateProgram", p)
	return p
}

func (r *Recorder) AttachShader(prog gpu.Program, shader gpu.Shader) {
	r.record("AttachShader", prog, shader)
}

func (r *Recorder) LinkProgram(prog gpu.Program) (ok bool, infoLog string) {

	r.record("LinkProgram", prog)
	if r.LinkError != "" {
		return false, r.LinkError
	}

	return true, ""
}

func (r *Recorder) UseProgram(prog gpu.Program) {
	r.record("UseProgram", prog)
}

func (r *Recorder) DeleteProgram(prog gpu.Program) {
	r.record("DeleteProgram", prog)
}

func (r *Recorder) GetAttribLocation(prog gpu.Program, name string) gpu.AttribLoc {

	r.record("GetAttribLocation", prog, name)

	if r.AttribLocs == nil {
		r.AttribLocs = make(map[string]gpu.AttribLoc)
	}

	loc, ok := r.AttribLocs[name]
	if !ok {
		loc = r.nextAttribLoc
		r.nextAttribLoc++
		r.AttribLocs[name] = loc
	}

	return loc
}

func (r *Recorder) EnableVertexAttribArray(loc gpu.AttribLoc) {
	r.record("EnableVertexAttribArray", loc)
}

func (r *Recorder) VertexAttribPointer(loc gpu.AttribLoc, size int32, normalized bool, stride int32, offset int) {
	r.record("VertexAttribPointer", loc, size, normalized, stride, offset)
}

func (r *Recorder) GetUniformLocation(prog gpu.Program, name string) gpu.UniformLoc {

	r.record("GetUniformLocation", prog, name)

	if r.UniformLocs == nil {
		r.UniformLocs = make(map[string]gpu.UniformLoc)
	}

	loc, ok := r.UniformLocs[name]
	if !ok {
		loc = r.nextUniformLoc
		r.nextUniformLoc++
		r.UniformLocs[name] = loc
	}

	return loc
}

func (r *Recorder) Uniform1i(loc gpu.UniformLoc, v int32) {
	r.record("Uniform1i", loc, v)
}

func (r *Recorder) Uniform1f(loc gpu.UniformLoc, v float32) {
	r.record("Uniform1f", loc, v)
}

func (r *Recorder) Uniform2fv(loc gpu.UniformLoc, v *[2]float32) {
	r.record("Uniform2fv", loc, *v)
}

func (r *Recorder) Uniform3fv(loc gpu.UniformLoc, v *[3]float32) {
	r.record("Uniform3fv", loc, *v)
}

func (r *Recorder) Uniform4fv(loc gpu.UniformLoc, v *[4]float32) {
	r.record("Uniform4fv", loc, *v)
}

func (r *Recorder) UniformMatrix4fv(loc gpu.UniformLoc, v *[4][4]float32) {
	r.record("UniformMatrix4fv", loc, *v)
}

func (r *Recorder) ActiveTexture(unit uint32) {
	r.record("ActiveTexture", unit)
}

func (r *Recorder) CreateTexture() gpu.Texture {
	t := gpu.Texture(r.newHandle())
	r.record("CreateTexture", t)
	return t
}

func (r *Recorder) BindTexture(tex gpu.Texture) {
	r.record("BindTexture", tex)
}

func (r *Recorder) TexParameters(filter gpu.TexFilter, wrap gpu.TexWrap) {
	r.record("TexParameters", filter, wrap)
}

func (r *Recorder) TexImage2D(width, height int32, pixels []byte) {
	r.record("TexImage2D", width, height, len(pixels))
}

func (r *Recorder) DeleteTexture(tex gpu.Texture) {
	r.record("DeleteTexture", tex)
}

func (r *Recorder) CreateFramebuffer() gpu.Framebuffer {
	fb := gpu.Framebuffer(r.newHandle())
	r.record("CreateFramebuffer", fb)
	return fb
}

func (r *Recorder) BindFramebuffer(fb gpu.Framebuffer) {
	r.record("BindFramebuffer", fb)
}

func (r *Recorder) FramebufferTexture2D(tex gpu.Texture) {
	r.record("FramebufferTexture2D", tex)
}

func (r *Recorder) DeleteFramebuffer(fb gpu.Framebuffer) {
	r.record("DeleteFramebuffer", fb)
}

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask gpu.ClearMask) {
	r.record("Clear", mask)
}

func (r *Recorder) Enable(c gpu.Capability) {
	r.record("Enable", c)
}

func (r *Recorder) Disable(c gpu.Capability) {
	r.record("Disable", c)
}

func (r *Recorder) BlendFunc(src, dst gpu.BlendFactor) {
	r.record("BlendFunc", src, dst)
}

func (r *Recorder) DrawElements(mode gpu.PrimitiveMode, count int32, offset int) {
	r.record("DrawElements", mode, count, offset)
}

func (r *Recorder) DrawArrays(mode gpu.PrimitiveMode, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

// ReadPixels returns opaque white pixels
func (r *Recorder) ReadPixels(x, y, width, height int32) []byte {

	r.record("ReadPixels", x, y, width, height)
	if width <= 0 || height <= 0 {
		return nil
	}

	pixels := make([]byte, width*height*4)
	for i := 0; i < len(pixels); i++ {
		pixels[i] = 255
	}

	return pixels
}

func NewRecorder() *Recorder {
	return &Recorder{
		CompileErrors: make(map[gpu.ShaderStage]string),
		AttribLocs:    make(map[string]gpu.AttribLoc),
		UniformLocs:   make(map[string]gpu.UniformLoc),
	}
}
