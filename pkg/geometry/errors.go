package geometry

import "errors"

// ErrEmptyMesh is returned when a mesh has no triangles to build a BVH over.
var ErrEmptyMesh = errors.New("geometry: mesh has no triangles")

// ErrUnsupportedTopology is returned when an index buffer's length isn't a
// multiple of 3, or references a position outside the vertex buffer.
// Non-triangle-list topologies (strips, fans) are not supported.
var ErrUnsupportedTopology = errors.New("geometry: mesh topology is not a supported triangle list")
