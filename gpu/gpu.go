// Package gpu defines the graphics backend contract the renderer drives.
//
// The contract is shaped after OpenGL (ES) since that is what the renderer was written
// against, but nothing in here imports a GL binding. The OpenGL implementation lives in
// gpu/glbackend and a call-recording implementation for tests lives in gpu/gputest.
//
// All methods are expected to be called from the thread owning the graphics context.
package gpu

// Handles to backend objects. Zero is never a valid created object; binding zero
// means binding the default (e.g. the on-screen framebuffer).
type (
	Buffer      uint32
	Shader      uint32
	Program     uint32
	Texture     uint32
	Framebuffer uint32
)

// AttribLoc and UniformLoc are shader locations. InvalidLoc is returned when the
// name is not an active attribute/uniform of the program.
type (
	AttribLoc  int32
	UniformLoc int32
)

const InvalidLoc = -1

type ShaderStage int32

const (
	ShaderStage_Unknown ShaderStage = iota
	ShaderStage_Vertex
	ShaderStage_Fragment
)

func (s ShaderStage) String() string {

	switch s {
	case ShaderStage_Vertex:
		return "vertex"
	case ShaderStage_Fragment:
		return "fragment"
	default:
		return "unknown"
	}
}

type PrimitiveMode int32

const (
	PrimitiveMode_Triangles PrimitiveMode = iota
	PrimitiveMode_Lines
)

type Capability int32

const (
	Capability_Blend Capability = iota
	Capability_DepthTest
	Capability_CullFace
)

type BlendFactor int32

const (
	BlendFactor_Zero BlendFactor = iota
	BlendFactor_One
	BlendFactor_SrcAlpha
	BlendFactor_OneMinusSrcAlpha
)

type ClearMask uint32

const (
	ClearMask_Color ClearMask = 1 << iota
	ClearMask_Depth
	ClearMask_Stencil

	ClearMask_All = ClearMask_Color | ClearMask_Depth | ClearMask_Stencil
)

type TexFilter int32

const (
	TexFilter_Linear TexFilter = iota
	TexFilter_Nearest
)

type TexWrap int32

const (
	TexWrap_ClampToEdge TexWrap = iota
	TexWrap_Repeat
)

// Backend is everything the renderer needs from a graphics API.
//
// Errors are only reported by shader compilation and program linking. Every other call
// is assumed to succeed; lost contexts and allocation failures are outside what the
// renderer handles.
type Backend interface {
	CreateBuffer() Buffer
	BindBuffer(kind BufferKind, buf Buffer)
	// BufferData uploads data to the buffer currently bound to kind
	BufferData(kind BufferKind, data []byte, usage BufUsage)
	DeleteBuffer(buf Buffer)

	CreateShader(stage ShaderStage) Shader
	// CompileShader sets the source of the shader and compiles it. On failure ok
	// is false and infoLog holds the compiler output
	CompileShader(shader Shader, src string) (ok bool, infoLog string)
	DeleteShader(shader Shader)

	CreateProgram() Program
	AttachShader(prog Program, shader Shader)
	LinkProgram(prog Program) (ok bool, infoLog string)
	UseProgram(prog Program)
	DeleteProgram(prog Program)

	GetAttribLocation(prog Program, name string) AttribLoc
	EnableVertexAttribArray(loc AttribLoc)
	// VertexAttribPointer configures loc to read float32 components from the
	// buffer currently bound as BufferKind_Array
	VertexAttribPointer(loc AttribLoc, size int32, normalized bool, stride int32, offset int)

	GetUniformLocation(prog Program, name string) UniformLoc
	Uniform1i(loc UniformLoc, v int32)
	Uniform1f(loc UniformLoc, v float32)
	Uniform2fv(loc UniformLoc, v *[2]float32)
	Uniform3fv(loc UniformLoc, v *[3]float32)
	Uniform4fv(loc UniformLoc, v *[4]float32)
	UniformMatrix4fv(loc UniformLoc, v *[4][4]float32)

	ActiveTexture(unit uint32)
	CreateTexture() Texture
	BindTexture(tex Texture)
	// TexParameters sets filtering and wrapping of the bound 2D texture
	TexParameters(filter TexFilter, wrap TexWrap)
	// TexImage2D (re)allocates RGBA8 storage for the bound 2D texture. pixels may be nil,
	// in which case the storage is left uninitialized
	TexImage2D(width, height int32, pixels []byte)
	DeleteTexture(tex Texture)

	CreateFramebuffer() Framebuffer
	BindFramebuffer(fb Framebuffer)
	// FramebufferTexture2D attaches tex as the first color attachment of the bound framebuffer
	FramebufferTexture2D(tex Texture)
	DeleteFramebuffer(fb Framebuffer)

	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)
	Enable(c Capability)
	Disable(c Capability)
	BlendFunc(src, dst BlendFactor)

	// DrawElements draws count uint16 indices from the bound element buffer starting at byte offset
	DrawElements(mode PrimitiveMode, count int32, offset int)
	DrawArrays(mode PrimitiveMode, first, count int32)

	// ReadPixels returns RGBA8 rows of the bound framebuffer, bottom row first
	ReadPixels(x, y, width, height int32) []byte
}
