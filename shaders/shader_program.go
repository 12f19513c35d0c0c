package shaders

import (
	"errors"

	"github.com/bloeys/fourgl/gpu"
	"github.com/bloeys/fourgl/logging"
)

type ShaderProgram struct {
	Id           gpu.Program
	VertShaderId gpu.Shader
	FragShaderId gpu.Shader
}

func (sp *ShaderProgram) AttachShader(b gpu.Backend, shader Shader) {

	b.AttachShader(sp.Id, shader.Id)
	switch shader.Type {
	case ShaderType_Vertex:
		sp.VertShaderId = shader.Id
	case ShaderType_Fragment:
		sp.FragShaderId = shader.Id
	default:
		logging.ErrLog.Fatalf("Unknown shader type '%d' for shader id '%d'\n", shader.Type, shader.Id)
	}
}

// Link links the attached shaders and deletes them, as they are not needed once linked.
// Returns a *ProgramLinkError on failure
func (sp *ShaderProgram) Link(b gpu.Backend) error {

	ok, infoLog := b.LinkProgram(sp.Id)

	if sp.VertShaderId != 0 {
		b.DeleteShader(sp.VertShaderId)
		sp.VertShaderId = 0
	}

	if sp.FragShaderId != 0 {
		b.DeleteShader(sp.FragShaderId)
		sp.FragShaderId = 0
	}

	if !ok {
		logging.ErrLog.Println("Linking of shader program with id ", sp.Id, " failed. Err: ", infoLog)
		return &ProgramLinkError{Log: infoLog}
	}

	return nil
}

func (sp *ShaderProgram) Bind(b gpu.Backend) {
	b.UseProgram(sp.Id)
}

func (sp *ShaderProgram) Delete(b gpu.Backend) {

	if sp.Id == 0 {
		return
	}

	b.DeleteProgram(sp.Id)
	sp.Id = 0
}

// NewShaderProgram compiles both stages and links them. Nothing is left allocated on failure
func NewShaderProgram(b gpu.Backend, vertSrc, fragSrc string) (ShaderProgram, error) {

	vert, err := CompileShaderOfType(b, vertSrc, ShaderType_Vertex)
	if err != nil {
		return ShaderProgram{}, err
	}

	frag, err := CompileShaderOfType(b, fragSrc, ShaderType_Fragment)
	if err != nil {
		vert.Delete(b)
		return ShaderProgram{}, err
	}

	id := b.CreateProgram()
	if id == 0 {
		vert.Delete(b)
		frag.Delete(b)
		return ShaderProgram{}, errors.New("failed to create shader program")
	}

	shdrProg := ShaderProgram{Id: id}
	shdrProg.AttachShader(b, vert)
	shdrProg.AttachShader(b, frag)

	if err := shdrProg.Link(b); err != nil {
		shdrProg.Delete(b)
		return ShaderProgram{}, err
	}

	return shdrProg, nil
}
