package shaders

import (
	"errors"
	"fmt"
)

var (
	ErrNoVertexShader   = errors.New("no valid vertex shader found. Please put '//shader:vertex' before your vertex shader")
	ErrNoFragmentShader = errors.New("no valid fragment shader found. Please put '//shader:fragment' before your fragment shader")
)

// ShaderCompileError is returned when a single shader stage fails to compile.
// Compilation is deterministic, so retrying with the same source will fail the same way.
type ShaderCompileError struct {
	Type ShaderType
	Log  string
}

func (e *ShaderCompileError) Error() string {
	return fmt.Sprintf("failed to compile %s shader: %s", e.Type, e.Log)
}

// ProgramLinkError is returned when compiled stages fail to link into a program
type ProgramLinkError struct {
	Log string
}

func (e *ProgramLinkError) Error() string {
	return "failed to link shader program: " + e.Log
}
