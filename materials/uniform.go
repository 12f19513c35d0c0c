package materials

import (
	"sync/atomic"

	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/gglm/gglm"
)

var (
	lastUniformId atomic.Uint32
)

// TextureSource is anything a texture uniform can sample: an *assets.Texture or a *buffers.RenderTarget
type TextureSource interface {
	TextureSize() (width, height int32)
}

type UniformType int32

const (
	UniformType_Unknown UniformType = iota
	UniformType_Texture
	UniformType_Float32
	UniformType_Int32
	UniformType_Vec2
	UniformType_Vec3
	UniformType_Vec4
	UniformType_Mat4
)

func (ut UniformType) String() string {

	switch ut {
	case UniformType_Texture:
		return "Texture"
	case UniformType_Float32:
		return "float32"
	case UniformType_Int32:
		return "int32"
	case UniformType_Vec2:
		return "Vec2"
	case UniformType_Vec3:
		return "Vec3"
	case UniformType_Vec4:
		return "Vec4"
	case UniformType_Mat4:
		return "Mat4"
	default:
		return "Unknown"
	}
}

// Uniform is a named shader input along with its value. Only the field matching Type is used.
//
// A uniform is only sent to the GPU when it is dirty. The setters mark it dirty, but if
// a value field is changed directly (e.g. u.Mat4.Data[0][0] = 1) MarkDirty must be called.
// Uniforms are also always sent the first time the renderer sees them.
type Uniform struct {
	Id   uint32
	Name string
	Type UniformType

	Texture TextureSource
	Float32 float32
	Int32   int32
	Vec2    gglm.Vec2
	Vec3    gglm.Vec3
	Vec4    gglm.Vec4
	Mat4    gglm.Mat4

	dirty bool
}

func (u *Uniform) SetTexture(tex TextureSource) {
	assert.T(u.Type == UniformType_Texture, "SetTexture called on uniform '%s' of type %s", u.Name, u.Type)
	u.Texture = tex
	u.dirty = true
}

func (u *Uniform) SetFloat32(val float32) {
	assert.T(u.Type == UniformType_Float32, "SetFloat32 called on uniform '%s' of type %s", u.Name, u.Type)
	u.Float32 = val
	u.dirty = true
}

func (u *Uniform) SetInt32(val int32) {
	assert.T(u.Type == UniformType_Int32, "SetInt32 called on uniform '%s' of type %s", u.Name, u.Type)
	u.Int32 = val
	u.dirty = true
}

func (u *Uniform) SetVec2(val *gglm.Vec2) {
	assert.T(u.Type == UniformType_Vec2, "SetVec2 called on uniform '%s' of type %s", u.Name, u.Type)
	u.Vec2 = *val
	u.dirty = true
}

func (u *Uniform) SetVec3(val *gglm.Vec3) {
	assert.T(u.Type == UniformType_Vec3, "SetVec3 called on uniform '%s' of type %s", u.Name, u.Type)
	u.Vec3 = *val
	u.dirty = true
}

func (u *Uniform) SetVec4(val *gglm.Vec4) {
	assert.T(u.Type == UniformType_Vec4, "SetVec4 called on uniform '%s' of type %s", u.Name, u.Type)
	u.Vec4 = *val
	u.dirty = true
}

func (u *Uniform) SetMat4(val *gglm.Mat4) {
	assert.T(u.Type == UniformType_Mat4, "SetMat4 called on uniform '%s' of type %s", u.Name, u.Type)
	u.Mat4 = *val
	u.dirty = true
}

func (u *Uniform) MarkDirty() {
	u.dirty = true
}

func (u *Uniform) IsDirty() bool {
	return u.dirty
}

func (u *Uniform) ClearDirty() {
	u.dirty = false
}

func NewUniform(name string, unifType UniformType) *Uniform {

	assert.T(unifType != UniformType_Unknown, "Uniform '%s' created with unknown type", name)

	return &Uniform{
		Id:   lastUniformId.Add(1),
		Name: name,
		Type: unifType,
	}
}
