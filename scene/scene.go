// Package scene holds the root of what gets rendered.
package scene

import (
	"github.com/bloeys/fourgl/assert"
	"github.com/bloeys/fourgl/meshes"
)

// Scene is an ordered list of meshes. The renderer draws the visible ones in the order they were added.
//
// The scene does not own its meshes, the same mesh can be added to many scenes (or twice to the same one,
// in which case it is drawn twice).
type Scene struct {
	children []*meshes.Mesh
}

func (s *Scene) Add(ms ...*meshes.Mesh) {

	for i := 0; i < len(ms); i++ {
		assert.T(ms[i] != nil, "Scene.Add got a nil mesh at index %d", i)
	}

	s.children = append(s.children, ms...)
}

// Remove removes the first occurrence of m, returning false if m was not in the scene
func (s *Scene) Remove(m *meshes.Mesh) bool {

	for i := 0; i < len(s.children); i++ {
		if s.children[i] == m {
			s.children = append(s.children[:i], s.children[i+1:]...)
			return true
		}
	}

	return false
}

// Children returns the meshes in insertion order. The returned slice must not be modified
func (s *Scene) Children() []*meshes.Mesh {
	return s.children
}

func NewScene() *Scene {
	return &Scene{
		children: make([]*meshes.Mesh, 0),
	}
}
