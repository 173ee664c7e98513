package geometry

import "github.com/slyedoc/raven-bvh/pkg/core"

// MeshToTriangles converts an indexed triangle-list mesh (flat position
// array plus flat index array, 3 indices per triangle) into a slice of
// Tri. It returns ErrEmptyMesh for a mesh with no indices and
// ErrUnsupportedTopology when the index count isn't a multiple of 3 or an
// index falls outside the position buffer; malformed input is reported as
// an error here, not a panic, since a mesh may come from untrusted content.
func MeshToTriangles(positions []core.Vec3, indices []int) ([]Tri, error) {
	if len(indices) == 0 {
		return nil, ErrEmptyMesh
	}
	if len(indices)%3 != 0 {
		return nil, ErrUnsupportedTopology
	}

	tris := make([]Tri, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if i0 < 0 || i1 < 0 || i2 < 0 ||
			i0 >= len(positions) || i1 >= len(positions) || i2 >= len(positions) {
			return nil, ErrUnsupportedTopology
		}
		tris = append(tris, NewTri(positions[i0], positions[i1], positions[i2]))
	}
	return tris, nil
}
