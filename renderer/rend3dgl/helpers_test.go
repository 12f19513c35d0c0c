package rend3dgl

import (
	"reflect"
	"testing"

	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/fourgl/gpu/gputest"
	"github.com/bloeys/fourgl/materials"
	"github.com/bloeys/fourgl/meshes"
)

const (
	testVertSrc = `#version 410
in vec3 vertPos;
void main() { gl_Position = vec4(vertPos, 1.0); }
`
	testFragSrc = `#version 410
out vec4 fragColor;
void main() { fragColor = vec4(1.0); }
`
)

type fakeSurface struct {
	Width, Height       int32
	BufWidth, BufHeight int32
	SetCalls            int
}

func (s *fakeSurface) Size() (int32, int32) {
	return s.Width, s.Height
}

func (s *fakeSurface) BufferSize() (int32, int32) {
	return s.BufWidth, s.BufHeight
}

func (s *fakeSurface) SetBufferSize(width, height int32) {
	s.BufWidth = width
	s.BufHeight = height
	s.SetCalls++
}

func newTestRenderer() (*Rend3DGL, *gputest.Recorder, *fakeSurface) {

	rec := gputest.NewRecorder()
	surf := &fakeSurface{Width: 800, Height: 600, BufWidth: 800, BufHeight: 600}
	r := NewRend3DGL(Options{Backend: rec, Surface: surf})

	return r, rec, surf
}

func newTestMaterial(name string) *materials.Material {
	mat := materials.NewMaterial(name, testVertSrc, testFragSrc)
	mat.BindGeometryAttrib("vertPos", meshes.AttribName_Vertices)
	return mat
}

// newIndexedGeometry returns a geometry with 4 vertices and indexCount indices
func newIndexedGeometry(indexCount int) *meshes.Geometry {

	geom := meshes.NewGeometry()
	geom.SetAttribute(meshes.AttribName_Vertices, buffers.NewVertexAttribute(3, make([]float32, 12)))
	geom.SetAttribute(meshes.AttribName_Faces, buffers.NewIndexAttribute(1, make([]uint16, indexCount)))
	geom.SetCountSource(meshes.AttribName_Faces)

	return geom
}

func call(name string, args ...any) gputest.Call {
	return gputest.Call{Name: name, Args: args}
}

func checkCalls(t *testing.T, got []gputest.Call, want ...gputest.Call) {

	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("got %d calls %v, want %d calls %v", len(got), got, len(want), want)
	}

	for i := 0; i < len(want); i++ {
		if got[i].Name != want[i].Name || !reflect.DeepEqual(got[i].Args, want[i].Args) {
			t.Errorf("call %d = %v, want %v", i, got[i], want[i])
		}
	}
}
