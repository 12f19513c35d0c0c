package meshes

import (
	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/materials"
)

type DrawableKind int32

const (
	// DrawableKind_Mesh draws indexed triangles using the geometry's index attribute
	DrawableKind_Mesh DrawableKind = iota
	// DrawableKind_Line draws the vertices as a line list
	DrawableKind_Line
)

func (k DrawableKind) String() string {

	switch k {
	case DrawableKind_Mesh:
		return "Mesh"
	case DrawableKind_Line:
		return "Line"
	default:
		return "Unknown"
	}
}

// Mesh is something that can be drawn: a geometry drawn with a material.
// Both the geometry and the material may be shared with other meshes.
type Mesh struct {
	Name     string
	Kind     DrawableKind
	Geometry *Geometry
	Material *materials.Material
	// Visible meshes are drawn, invisible ones are skipped by the renderer
	Visible bool
}

func NewMesh(name string, geom *Geometry, mat *materials.Material) *Mesh {

	assert.T(geom != nil, "Mesh '%s' created with a nil geometry", name)
	assert.T(mat != nil, "Mesh '%s' created with a nil material", name)

	return &Mesh{
		Name:     name,
		Kind:     DrawableKind_Mesh,
		Geometry: geom,
		Material: mat,
		Visible:  true,
	}
}

func NewLine(name string, geom *Geometry, mat *materials.Material) *Mesh {
	m := NewMesh(name, geom, mat)
	m.Kind = DrawableKind_Line
	return m
}
