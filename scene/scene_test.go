package scene

import (
	"testing"

	"github.com/bloeys/fourgl/materials"
	"github.com/bloeys/fourgl/meshes"
)

func names(s *Scene) []string {

	children := s.Children()
	out := make([]string, len(children))
	for i := 0; i < len(children); i++ {
		out[i] = children[i].Name
	}

	return out
}

func TestSceneOrder(t *testing.T) {

	mat := materials.NewMaterial("m", "v", "f")
	geom := meshes.NewPlaneGeometry(1, 1)
	a := meshes.NewMesh("a", geom, mat)
	b := meshes.NewMesh("b", geom, mat)
	c := meshes.NewMesh("c", geom, mat)

	s := NewScene()
	s.Add(a, b)
	s.Add(c)

	if got := names(s); len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("children = %v, want [a b c]", got)
	}

	if !s.Remove(b) {
		t.Fatal("Remove(b) = false, want true")
	}

	if got := names(s); len(got) != 2 || got[0] != "a" || got[1] != "c" {
		t.Errorf("children after Remove = %v, want [a c]", got)
	}

	if s.Remove(b) {
		t.Error("removing a mesh twice returned true")
	}
}
