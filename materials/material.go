package materials

import (
	"sync/atomic"

	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/shaders"
	"github.com/bloeys/gglm/gglm"
)

var (
	lastMatId     atomic.Uint32
	lastBindingId atomic.Uint32
)

// AttribBinding feeds the shader attribute Name from either a geometry attribute
// (GeomAttrib, looked up on the geometry of whatever mesh is drawn) or from Data,
// an attribute owned by the binding itself. GeomAttrib wins if both are set.
type AttribBinding struct {
	Id         uint32
	Name       string
	GeomAttrib string
	Data       *buffers.Attribute
}

// Material is a vertex+fragment shader pair together with the values its attributes and uniforms
// are fed with.
//
// The compiled program, and the shader locations of attributes and uniforms, are created by the renderer
// the first time the material is drawn and stored in its resource cache (keyed by the Ids here), not on the material.
// Attributes and uniforms are processed in the order they were added.
type Material struct {
	Id          uint32
	Name        string
	VertSrc     string
	FragSrc     string
	Transparent bool

	Attribs  []*AttribBinding
	Uniforms []*Uniform
}

// BindGeometryAttrib makes the shader attribute shaderAttrib read the geometry attribute geomAttrib
func (m *Material) BindGeometryAttrib(shaderAttrib, geomAttrib string) *AttribBinding {

	b := m.getOrAddBinding(shaderAttrib)
	b.GeomAttrib = geomAttrib
	b.Data = nil
	return b
}

// BindInlineAttrib makes the shader attribute shaderAttrib read data regardless of the geometry being drawn
func (m *Material) BindInlineAttrib(shaderAttrib string, data *buffers.Attribute) *AttribBinding {

	assert.T(data != nil, "Inline attribute '%s' of material '%s' has nil data", shaderAttrib, m.Name)
	assert.T(data.Kind == buffers.AttribKind_Vertex, "Inline attribute '%s' of material '%s' must be a vertex attribute", shaderAttrib, m.Name)

	b := m.getOrAddBinding(shaderAttrib)
	b.GeomAttrib = ""
	b.Data = data
	return b
}

func (m *Material) getOrAddBinding(shaderAttrib string) *AttribBinding {

	for i := 0; i < len(m.Attribs); i++ {
		if m.Attribs[i].Name == shaderAttrib {
			return m.Attribs[i]
		}
	}

	b := &AttribBinding{Id: lastBindingId.Add(1), Name: shaderAttrib}
	m.Attribs = append(m.Attribs, b)
	return b
}

func (m *Material) GetAttrib(shaderAttrib string) *AttribBinding {

	for i := 0; i < len(m.Attribs); i++ {
		if m.Attribs[i].Name == shaderAttrib {
			return m.Attribs[i]
		}
	}

	return nil
}

// GetUnif returns the uniform with the given name, or nil if the material has none
func (m *Material) GetUnif(uniformName string) *Uniform {

	for i := 0; i < len(m.Uniforms); i++ {
		if m.Uniforms[i].Name == uniformName {
			return m.Uniforms[i]
		}
	}

	return nil
}

func (m *Material) getOrAddUnif(uniformName string, unifType UniformType) *Uniform {

	u := m.GetUnif(uniformName)
	if u != nil {
		assert.T(u.Type == unifType, "Uniform '%s' of material '%s' has type %s but is being set as %s", uniformName, m.Name, u.Type, unifType)
		return u
	}

	u = NewUniform(uniformName, unifType)
	m.Uniforms = append(m.Uniforms, u)
	return u
}

func (m *Material) SetUnifTexture(uniformName string, tex TextureSource) {
	m.getOrAddUnif(uniformName, UniformType_Texture).SetTexture(tex)
}

func (m *Material) SetUnifInt32(uniformName string, val int32) {
	m.getOrAddUnif(uniformName, UniformType_Int32).SetInt32(val)
}

func (m *Material) SetUnifFloat32(uniformName string, val float32) {
	m.getOrAddUnif(uniformName, UniformType_Float32).SetFloat32(val)
}

func (m *Material) SetUnifVec2(uniformName string, vec2 *gglm.Vec2) {
	m.getOrAddUnif(uniformName, UniformType_Vec2).SetVec2(vec2)
}

func (m *Material) SetUnifVec3(uniformName string, vec3 *gglm.Vec3) {
	m.getOrAddUnif(uniformName, UniformType_Vec3).SetVec3(vec3)
}

func (m *Material) SetUnifVec4(uniformName string, vec4 *gglm.Vec4) {
	m.getOrAddUnif(uniformName, UniformType_Vec4).SetVec4(vec4)
}

func (m *Material) SetUnifMat4(uniformName string, mat4 *gglm.Mat4) {
	m.getOrAddUnif(uniformName, UniformType_Mat4).SetMat4(mat4)
}

func NewMaterial(matName, vertSrc, fragSrc string) *Material {
	return &Material{
		Id:       lastMatId.Add(1),
		Name:     matName,
		VertSrc:  vertSrc,
		FragSrc:  fragSrc,
		Attribs:  make([]*AttribBinding, 0),
		Uniforms: make([]*Uniform, 0),
	}
}

// NewMaterialSrc creates a material from a combined shader source (see shaders.SplitCombinedShaderSrc).
// Only the source is checked here, compilation happens when the material is first drawn
func NewMaterialSrc(matName string, shaderSrc []byte) (*Material, error) {

	vertSrc, fragSrc, err := shaders.SplitCombinedShaderSrc(shaderSrc)
	if err != nil {
		return nil, err
	}

	return NewMaterial(matName, vertSrc, fragSrc), nil
}

func NewMaterialFromFile(matName, shaderPath string) (*Material, error) {

	vertSrc, fragSrc, err := shaders.LoadCombinedShader(shaderPath)
	if err != nil {
		return nil, err
	}

	return NewMaterial(matName, vertSrc, fragSrc), nil
}
