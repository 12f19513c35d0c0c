package meshes

import (
	"testing"

	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/materials"
)

func TestNewPlaneGeometry(t *testing.T) {

	g := NewPlaneGeometry(4, 2)

	verts := g.Attribute(AttribName_Vertices)
	faces := g.Attribute(AttribName_Faces)
	uvs := g.Attribute(AttribName_Uvs)
	if verts == nil || faces == nil || uvs == nil {
		t.Fatalf("plane attributes = %v, want vertices, faces and uvs", g.Attributes())
	}

	if verts.DrawCount() != 4 || uvs.DrawCount() != 4 {
		t.Errorf("vertex counts = (%d, %d), want (4, 4)", verts.DrawCount(), uvs.DrawCount())
	}

	if !faces.IsCountSource || verts.IsCountSource {
		t.Error("faces should be the only count source")
	}

	if g.IndexAttribute() != faces {
		t.Error("IndexAttribute() is not faces")
	}

	v := verts.Vertices()
	if v[0] != -2 || v[1] != -1 || v[6] != 2 || v[7] != 1 {
		t.Errorf("plane corners = %v, want a 4x2 quad centered on the origin", v)
	}
}

func TestNewLineGeometryCopies(t *testing.T) {

	in := []float32{0, 0, 0, 1, 1, 1}
	g := NewLineGeometry(in)
	in[0] = 9

	verts := g.Attribute(AttribName_Vertices)
	if verts.Vertices()[0] != 0 {
		t.Error("line geometry shares the caller's slice")
	}

	if g.VertexCountSource() != verts || verts.DrawCount() != 2 {
		t.Errorf("count source = %v with %d vertices, want vertices with 2", g.VertexCountSource(), verts.DrawCount())
	}

	if g.IndexAttribute() != nil {
		t.Error("line geometry should have no index attribute")
	}
}

func TestGeometryAttributes(t *testing.T) {

	g := NewGeometry()
	first := buffers.NewVertexAttribute(3, nil)
	g.SetAttribute("a", first)
	g.SetAttribute("b", buffers.NewVertexAttribute(2, nil))

	replacement := buffers.NewVertexAttribute(3, nil)
	g.SetAttribute("a", replacement)

	attribs := g.Attributes()
	if len(attribs) != 2 || attribs[0].Name != "a" || attribs[0].Attrib != replacement {
		t.Errorf("attributes = %v, want 'a' replaced in place", attribs)
	}

	if g.Attribute("missing") != nil {
		t.Error("Attribute() of a missing name is not nil")
	}

	g.SetCountSource("b")
	if g.VertexCountSource() != attribs[1].Attrib {
		t.Error("VertexCountSource() is not the count source")
	}

	g.SetCountSource("a")
	if attribs[1].Attrib.IsCountSource {
		t.Error("SetCountSource left the previous count source flagged")
	}
}

func TestMeshKinds(t *testing.T) {

	geom := NewLineGeometry([]float32{0, 0, 0, 1, 0, 0})
	mat := materials.NewMaterial("m", "v", "f")
	m := NewMesh("m", geom, mat)
	l := NewLine("l", geom, mat)

	if m.Kind != DrawableKind_Mesh || l.Kind != DrawableKind_Line {
		t.Errorf("kinds = (%v, %v), want (Mesh, Line)", m.Kind, l.Kind)
	}

	if !m.Visible || !l.Visible {
		t.Error("new drawables should be visible")
	}
}
