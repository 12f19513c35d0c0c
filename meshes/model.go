package meshes

import (
	"errors"
	"fmt"
	"math"

	"github.com/bloeys/assimp-go/asig"
	"github.com/bloeys/fourgl/buffers"
	"github.com/bloeys/gglm/gglm"
)

var (
	// DefaultMeshLoadFlags are the flags always applied when loading a geometry regardless
	// of what post process flags are passed.
	//
	// Defaults to: asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace
	DefaultMeshLoadFlags asig.PostProcess = asig.PostProcessTriangulate | asig.PostProcessCalcTangentSpace

	ErrIndexOverflow = errors.New("model has more vertices than 16-bit indices can address")
)

// NewGeometryFromFile loads all meshes of a model file into one geometry with the attributes
// 'vertices', 'normals' (if the model has them), 'uvs' and 'faces'. 'faces' is the count source.
//
// Indices are 16-bit, so the combined vertex count of all meshes must fit in a uint16.
func NewGeometryFromFile(modelPath string, postProcessFlags asig.PostProcess) (*Geometry, error) {

	finalPostProcessFlags := DefaultMeshLoadFlags | postProcessFlags

	scene, release, err := asig.ImportFile(modelPath, finalPostProcessFlags)
	if err != nil {
		return nil, errors.New("Failed to load model. Err: " + err.Error())
	}
	defer release()

	if len(scene.Meshes) == 0 {
		return nil, errors.New("No meshes found in file: " + modelPath)
	}

	totalVerts := 0
	totalIndices := 0
	hasNormals := true
	for i := 0; i < len(scene.Meshes); i++ {
		totalVerts += len(scene.Meshes[i].Vertices)
		totalIndices += len(scene.Meshes[i].Faces) * 3
		hasNormals = hasNormals && len(scene.Meshes[i].Normals) == len(scene.Meshes[i].Vertices)
	}

	if totalVerts > math.MaxUint16+1 {
		return nil, fmt.Errorf("%w: %s has %d vertices", ErrIndexOverflow, modelPath, totalVerts)
	}

	positions := make([]float32, 0, totalVerts*3)
	normals := make([]float32, 0, totalVerts*3)
	uvs := make([]float32, 0, totalVerts*2)
	indices := make([]uint16, 0, totalIndices)

	for i := 0; i < len(scene.Meshes); i++ {

		sceneMesh := scene.Meshes[i]

		// Index of the first vertex of this mesh within the combined attributes
		baseVertex := uint16(len(positions) / 3)

		positions = appendV3s(positions, sceneMesh.Vertices)
		if hasNormals {
			normals = appendV3s(normals, sceneMesh.Normals)
		}

		// We always want UV0, even if zeroed
		if len(sceneMesh.TexCoords[0]) == len(sceneMesh.Vertices) {
			uvs = appendV3sAsV2s(uvs, sceneMesh.TexCoords[0])
		} else {
			uvs = append(uvs, make([]float32, len(sceneMesh.Vertices)*2)...)
		}

		faceIndices, err := flattenFaces(sceneMesh.Faces, baseVertex)
		if err != nil {
			return nil, fmt.Errorf("mesh %d of %s: %w", i, modelPath, err)
		}
		indices = append(indices, faceIndices...)
	}

	g := NewGeometry()
	g.SetAttribute(AttribName_Vertices, buffers.NewVertexAttribute(3, positions))
	if hasNormals {
		g.SetAttribute(AttribName_Normals, buffers.NewVertexAttribute(3, normals))
	}
	g.SetAttribute(AttribName_Uvs, buffers.NewVertexAttribute(2, uvs))
	g.SetAttribute(AttribName_Faces, buffers.NewIndexAttribute(3, indices))
	g.SetCountSource(AttribName_Faces)

	return g, nil
}

func appendV3s(out []float32, v3s []gglm.Vec3) []float32 {

	for i := 0; i < len(v3s); i++ {
		out = append(out, v3s[i].Data[0], v3s[i].Data[1], v3s[i].Data[2])
	}

	return out
}

func appendV3sAsV2s(out []float32, v3s []gglm.Vec3) []float32 {

	for i := 0; i < len(v3s); i++ {
		out = append(out, v3s[i].Data[0], v3s[i].Data[1])
	}

	return out
}

func flattenFaces(faces []asig.Face, baseVertex uint16) ([]uint16, error) {

	indices := make([]uint16, len(faces)*3)
	for i := 0; i < len(faces); i++ {

		if len(faces[i].Indices) != 3 {
			return nil, fmt.Errorf("face %d doesn't have 3 indices. Index count: %d", i, len(faces[i].Indices))
		}

		indices[i*3+0] = baseVertex + uint16(faces[i].Indices[0])
		indices[i*3+1] = baseVertex + uint16(faces[i].Indices[1])
		indices[i*3+2] = baseVertex + uint16(faces[i].Indices[2])
	}

	return indices, nil
}
