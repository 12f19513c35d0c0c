package buffers

import (
	"sync/atomic"
	"unsafe"

	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/gpu"
)

var (
	lastAttribId atomic.Uint32
)

type AttribKind int32

const (
	AttribKind_Unknown AttribKind = iota
	// AttribKind_Vertex holds float32 per-vertex data (positions, uvs, colors...)
	AttribKind_Vertex
	// AttribKind_Index holds uint16 indices into the vertex attributes
	AttribKind_Index
)

func (k AttribKind) BufferKind() gpu.BufferKind {

	switch k {
	case AttribKind_Vertex:
		return gpu.BufferKind_Array
	case AttribKind_Index:
		return gpu.BufferKind_ElementArray
	default:
		assert.T(false, "Unknown attribute kind '%d'", k)
		return gpu.BufferKind_Unknown
	}
}

func (k AttribKind) String() string {

	switch k {
	case AttribKind_Vertex:
		return "Vertex"
	case AttribKind_Index:
		return "Index"
	default:
		return "Unknown"
	}
}

// Attribute is one channel of vertex data (or the index list) destined for a GPU buffer.
//
// The GPU buffer itself is owned by whoever uploads the attribute (see rend3dgl.ResourceCache),
// which finds it using Id. The attribute only tracks whether its data changed since the last upload.
type Attribute struct {
	Id uint32
	// ItemSize is the number of components per vertex (e.g. 3 for positions, 2 for uvs)
	ItemSize int32
	Kind     AttribKind
	// IsCountSource marks the attribute whose length decides how many vertices/indices are drawn
	IsCountSource bool

	vertices []float32
	indices  []uint16
	dirty    bool
}

// Len returns the number of values (not vertices) held by the attribute
func (a *Attribute) Len() int {

	if a.Kind == AttribKind_Index {
		return len(a.indices)
	}

	return len(a.vertices)
}

// DrawCount is the number of indices for index attributes, and the number of vertices for vertex attributes.
// A vertex attribute with a non-positive ItemSize has no whole vertices and returns 0
func (a *Attribute) DrawCount() int32 {

	if a.Kind == AttribKind_Index {
		return int32(len(a.indices))
	}

	if a.ItemSize <= 0 {
		return 0
	}

	return int32(len(a.vertices)) / a.ItemSize
}

func (a *Attribute) Vertices() []float32 {
	return a.vertices
}

func (a *Attribute) Indices() []uint16 {
	return a.indices
}

// SetVertexData replaces the data of a vertex attribute and marks it dirty
func (a *Attribute) SetVertexData(values []float32) {
	assert.T(a.Kind == AttribKind_Vertex, "SetVertexData called on attribute %d of kind %s", a.Id, a.Kind)
	a.vertices = values
	a.dirty = true
}

// SetIndexData replaces the data of an index attribute and marks it dirty
func (a *Attribute) SetIndexData(values []uint16) {
	assert.T(a.Kind == AttribKind_Index, "SetIndexData called on attribute %d of kind %s", a.Id, a.Kind)
	a.indices = values
	a.dirty = true
}

// Bytes returns the raw bytes of the attribute data without copying
func (a *Attribute) Bytes() []byte {

	if a.Kind == AttribKind_Index {
		if len(a.indices) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&a.indices[0])), len(a.indices)*2)
	}

	if len(a.vertices) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&a.vertices[0])), len(a.vertices)*4)
}

// MarkDirty should be called after modifying the slice returned by Vertices/Indices in place,
// so the new values get uploaded
func (a *Attribute) MarkDirty() {
	a.dirty = true
}

func (a *Attribute) IsDirty() bool {
	return a.dirty
}

func (a *Attribute) ClearDirty() {
	a.dirty = false
}

func NewVertexAttribute(itemSize int32, values []float32) *Attribute {

	assert.T(itemSize > 0, "Attribute item size must be positive, but got %d", itemSize)

	return &Attribute{
		Id:       lastAttribId.Add(1),
		ItemSize: itemSize,
		Kind:     AttribKind_Vertex,
		vertices: values,
		dirty:    true,
	}
}

// NewIndexAttribute creates an index attribute. itemSize is the number of indices per primitive
// (3 for triangles, 2 for lines) and does not affect the draw count
func NewIndexAttribute(itemSize int32, values []uint16) *Attribute {

	assert.T(itemSize > 0, "Attribute item size must be positive, but got %d", itemSize)

	return &Attribute{
		Id:       lastAttribId.Add(1),
		ItemSize: itemSize,
		Kind:     AttribKind_Index,
		indices:  values,
		dirty:    true,
	}
}
