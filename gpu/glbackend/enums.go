package glbackend

import (
	"fmt"

	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/gpu"
	"github.com/go-gl/gl/v4.1-core/gl"
)

func bufUsageToGL(b gpu.BufUsage) uint32 {

	switch b {
	case gpu.BufUsage_Static_Draw:
		return gl.STATIC_DRAW
	case gpu.BufUsage_Dynamic_Draw:
		return gl.DYNAMIC_DRAW
	case gpu.BufUsage_Stream_Draw:
		return gl.STREAM_DRAW
	}

	assert.T(false, fmt.Sprintf("Unexpected BufUsage value '%v'", b))
	return 0
}

func bufferKindToGL(k gpu.BufferKind) uint32 {

	switch k {
	case gpu.BufferKind_Array:
		return gl.ARRAY_BUFFER
	case gpu.BufferKind_ElementArray:
		return gl.ELEMENT_ARRAY_BUFFER
	}

	assert.T(false, "Unexpected BufferKind value '%v'", k)
	return 0
}

func shaderStageToGL(s gpu.ShaderStage) uint32 {

	switch s {
	case gpu.ShaderStage_Vertex:
		return gl.VERTEX_SHADER
	case gpu.ShaderStage_Fragment:
		return gl.FRAGMENT_SHADER
	}

	assert.T(false, "Unknown shader stage '%d'", s)
	return 0
}

func primitiveModeToGL(m gpu.PrimitiveMode) uint32 {

	switch m {
	case gpu.PrimitiveMode_Triangles:
		return gl.TRIANGLES
	case gpu.PrimitiveMode_Lines:
		return gl.LINES
	}

	assert.T(false, "Unknown primitive mode '%d'", m)
	return 0
}

func capabilityToGL(c gpu.Capability) uint32 {

	switch c {
	case gpu.Capability_Blend:
		return gl.BLEND
	case gpu.Capability_DepthTest:
		return gl.DEPTH_TEST
	case gpu.Capability_CullFace:
		return gl.CULL_FACE
	}

	assert.T(false, "Unknown capability '%d'", c)
	return 0
}

func blendFactorToGL(f gpu.BlendFactor) uint32 {

	switch f {
	case gpu.BlendFactor_Zero:
		return gl.ZERO
	case gpu.BlendFactor_One:
		return gl.ONE
	case gpu.BlendFactor_SrcAlpha:
		return gl.SRC_ALPHA
	case gpu.BlendFactor_OneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	}

	assert.T(false, "Unknown blend factor '%d'", f)
	return 0
}

func texFilterToGL(f gpu.TexFilter) int32 {

	switch f {
	case gpu.TexFilter_Linear:
		return gl.LINEAR
	case gpu.TexFilter_Nearest:
		return gl.NEAREST
	}

	assert.T(false, "Unknown texture filter '%d'", f)
	return 0
}

func texWrapToGL(w gpu.TexWrap) int32 {

	switch w {
	case gpu.TexWrap_ClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gpu.TexWrap_Repeat:
		return gl.REPEAT
	}

	assert.T(false, "Unknown texture wrap '%d'", w)
	return 0
}
