package shaders

import (
	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/gpu"
)

type ShaderType int32

func (s ShaderType) Stage() gpu.ShaderStage {

	switch s {
	case ShaderType_Vertex:
		return gpu.ShaderStage_Vertex
	case ShaderType_Fragment:
		return gpu.ShaderStage_Fragment

	default:
		assert.T(false, "Unknown shader type '%d'", s)
		return gpu.ShaderStage_Unknown
	}
}

// Tag is the name used after '//shader:' in combined shader sources
func (s ShaderType) Tag() string {

	switch s {
	case ShaderType_Vertex:
		return "vertex"
	case ShaderType_Fragment:
		return "fragment"
	default:
		return "unknown"
	}
}

func (s ShaderType) String() string {
	return s.Tag()
}

const (
	ShaderType_Unknown ShaderType = iota
	ShaderType_Vertex
	ShaderType_Fragment
)
