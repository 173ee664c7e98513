package geometry

import (
	"errors"
	"testing"

	"github.com/slyedoc/raven-bvh/pkg/core"
)

func TestMeshToTrianglesSingleTriangle(t *testing.T) {
	positions := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}
	tris, err := MeshToTriangles(positions, []int{0, 1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tris) != 1 {
		t.Fatalf("expected 1 triangle, got %d", len(tris))
	}
	if !tris[0].V0.Equals(positions[0]) {
		t.Errorf("V0 = %v, want %v", tris[0].V0, positions[0])
	}
}

func TestMeshToTrianglesEmptyIsError(t *testing.T) {
	_, err := MeshToTriangles(nil, nil)
	if !errors.Is(err, ErrEmptyMesh) {
		t.Fatalf("expected ErrEmptyMesh, got %v", err)
	}
}

func TestMeshToTrianglesBadIndexCount(t *testing.T) {
	positions := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)}
	_, err := MeshToTriangles(positions, []int{0, 1})
	if !errors.Is(err, ErrUnsupportedTopology) {
		t.Fatalf("expected ErrUnsupportedTopology, got %v", err)
	}
}

func TestMeshToTrianglesOutOfRangeIndex(t *testing.T) {
	positions := []core.Vec3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)}
	_, err := MeshToTriangles(positions, []int{0, 1, 5})
	if !errors.Is(err, ErrUnsupportedTopology) {
		t.Fatalf("expected ErrUnsupportedTopology for an out-of-range index, got %v", err)
	}
}
