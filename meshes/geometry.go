package meshes

import (
	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/buffers"
)

// Conventional attribute names used by the geometry constructors in this package
const (
	AttribName_Vertices = "vertices"
	AttribName_Normals  = "normals"
	AttribName_Uvs      = "uvs"
	AttribName_Faces    = "faces"
)

type NamedAttribute struct {
	Name   string
	Attrib *buffers.Attribute
}

// Geometry is an ordered set of named attributes. Attributes keep the order they were added in,
// which is also the order they get uploaded in.
//
// A geometry can be shared by any number of meshes.
type Geometry struct {
	attribs []NamedAttribute
	index   map[string]int
}

// SetAttribute adds the attribute under name, or replaces the existing attribute of that name in place
func (g *Geometry) SetAttribute(name string, a *buffers.Attribute) {

	assert.T(a != nil, "SetAttribute got a nil attribute for '%s'", name)

	if i, ok := g.index[name]; ok {
		g.attribs[i].Attrib = a
		return
	}

	g.index[name] = len(g.attribs)
	g.attribs = append(g.attribs, NamedAttribute{Name: name, Attrib: a})
}

// Attribute returns the attribute of the given name, or nil if there isn't one
func (g *Geometry) Attribute(name string) *buffers.Attribute {

	i, ok := g.index[name]
	if !ok {
		return nil
	}

	return g.attribs[i].Attrib
}

// Attributes returns the attributes in insertion order. The returned slice must not be modified
func (g *Geometry) Attributes() []NamedAttribute {
	return g.attribs
}

// SetCountSource makes the named attribute the only count source of the geometry
func (g *Geometry) SetCountSource(name string) {

	_, ok := g.index[name]
	assert.T(ok, "SetCountSource called with unknown attribute '%s'", name)

	for i := 0; i < len(g.attribs); i++ {
		g.attribs[i].Attrib.IsCountSource = g.attribs[i].Name == name
	}
}

// IndexAttribute returns the count source if it is an index attribute,
// otherwise the first index attribute. Returns nil if there are no index attributes
func (g *Geometry) IndexAttribute() *buffers.Attribute {

	var first *buffers.Attribute
	for i := 0; i < len(g.attribs); i++ {

		a := g.attribs[i].Attrib
		if a.Kind != buffers.AttribKind_Index {
			continue
		}

		if a.IsCountSource {
			return a
		}

		if first == nil {
			first = a
		}
	}

	return first
}

// VertexCountSource returns the count source if it is a vertex attribute,
// otherwise the first vertex attribute. Returns nil if there are no vertex attributes
func (g *Geometry) VertexCountSource() *buffers.Attribute {

	var first *buffers.Attribute
	for i := 0; i < len(g.attribs); i++ {

		a := g.attribs[i].Attrib
		if a.Kind != buffers.AttribKind_Vertex {
			continue
		}

		if a.IsCountSource {
			return a
		}

		if first == nil {
			first = a
		}
	}

	return first
}

func NewGeometry() *Geometry {
	return &Geometry{
		attribs: make([]NamedAttribute, 0, 4),
		index:   make(map[string]int, 4),
	}
}
