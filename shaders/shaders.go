package shaders

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/bloeys/fourgl/gpu"
	"github.com/bloeys/fourgl/logging"
)

type Shader struct {
	Id   gpu.Shader
	Type ShaderType
}

func (s *Shader) Delete(b gpu.Backend) {
	b.DeleteShader(s.Id)
	s.Id = 0
}

// LoadCombinedShader reads a file holding both shader stages, each starting with a '//shader:<type>' line
func LoadCombinedShader(shaderPath string) (vertSrc, fragSrc string, err error) {

	combinedSource, err := os.ReadFile(shaderPath)
	if err != nil {
		logging.ErrLog.Println("Failed to read shader. Err: ", err)
		return "", "", err
	}

	return SplitCombinedShaderSrc(combinedSource)
}

// SplitCombinedShaderSrc splits a source of the form:
//
//	//shader:vertex
//	...
//	//shader:fragment
//	...
//
// into its vertex and fragment sources
func SplitCombinedShaderSrc(shaderSrc []byte) (vertSrc, fragSrc string, err error) {

	shaderSources := bytes.Split(shaderSrc, []byte("//shader:"))
	if len(shaderSources) < 2 {
		return "", "", errors.New("failed to read combined shader. The minimum shader types to have are '//shader:vertex' and '//shader:fragment'")
	}

	for i := 0; i < len(shaderSources); i++ {

		src := shaderSources[i]

		//This can happen when the shader type is at the start of the file
		if len(bytes.TrimSpace(src)) == 0 {
			continue
		}

		if bytes.HasPrefix(src, []byte(ShaderType_Vertex.Tag())) {
			vertSrc = string(src[len(ShaderType_Vertex.Tag()):])
		} else if bytes.HasPrefix(src, []byte(ShaderType_Fragment.Tag())) {
			fragSrc = string(src[len(ShaderType_Fragment.Tag()):])
		} else if i > 0 {
			return "", "", errors.New("unknown shader type. Must be '//shader:vertex' or '//shader:fragment'")
		}
	}

	if vertSrc == "" {
		return "", "", ErrNoVertexShader
	}

	if fragSrc == "" {
		return "", "", ErrNoFragmentShader
	}

	return vertSrc, fragSrc, nil
}

// CompileShaderOfType creates and compiles a shader. On failure the shader is deleted and a
// *ShaderCompileError is returned
func CompileShaderOfType(b gpu.Backend, shaderSource string, shaderType ShaderType) (Shader, error) {

	shaderId := b.CreateShader(shaderType.Stage())
	if shaderId == 0 {
		return Shader{}, fmt.Errorf("failed to create %s shader", shaderType)
	}

	ok, infoLog := b.CompileShader(shaderId, shaderSource)
	if !ok {
		b.DeleteShader(shaderId)
		logging.ErrLog.Println("Compilation of shader with id ", shaderId, " failed. Err: ", infoLog)
		return Shader{}, &ShaderCompileError{Type: shaderType, Log: infoLog}
	}

	return Shader{Id: shaderId, Type: shaderType}, nil
}
