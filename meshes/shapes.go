package meshes

import (
	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/buffers"
)

// NewPlaneGeometry creates a width*height quad on the XY plane centered at the origin, with
// 'vertices' (vec3), 'faces' (two triangles) and 'uvs' (vec2) attributes. 'faces' is the count source
func NewPlaneGeometry(width, height float32) *Geometry {

	g := NewGeometry()

	g.SetAttribute(AttribName_Vertices, buffers.NewVertexAttribute(3, []float32{
		-width / 2, -height / 2, 0,
		-width / 2, height / 2, 0,
		width / 2, height / 2, 0,
		width / 2, -height / 2, 0,
	}))

	g.SetAttribute(AttribName_Faces, buffers.NewIndexAttribute(3, []uint16{
		0, 1, 3,
		1, 2, 3,
	}))

	g.SetAttribute(AttribName_Uvs, buffers.NewVertexAttribute(2, []float32{
		0, 0,
		0, 1,
		1, 1,
		1, 0,
	}))

	g.SetCountSource(AttribName_Faces)
	return g
}

// NewLineGeometry creates a geometry with a single 'vertices' attribute holding xyz triplets,
// where each two consecutive vertices form a line segment when drawn by a line mesh
func NewLineGeometry(vertices []float32) *Geometry {

	assert.T(len(vertices)%3 == 0, "Line geometry vertices must be xyz triplets, but got %d floats", len(vertices))

	verts := make([]float32, len(vertices))
	copy(verts, vertices)

	g := NewGeometry()
	g.SetAttribute(AttribName_Vertices, buffers.NewVertexAttribute(3, verts))
	g.SetCountSource(AttribName_Vertices)
	return g
}
