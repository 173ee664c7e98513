package geometry

import "github.com/slyedoc/raven-bvh/pkg/core"

// Tri is a single triangle stored in mesh-local space. Centroid is
// precomputed once at mesh-build time since the BVH builder reads it
// repeatedly while binning.
type Tri struct {
	V0, V1, V2 core.Vec3
	Centroid   core.Vec3
}

// NewTri builds a Tri from its three vertices.
func NewTri(v0, v1, v2 core.Vec3) Tri {
	return Tri{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		Centroid: v0.Add(v1).Add(v2).Multiply(1.0 / 3.0),
	}
}

// Bounds returns the tight AABB of the triangle.
func (t Tri) Bounds() core.AABB {
	return core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Hit performs a Möller–Trumbore ray/triangle intersection. It returns the
// hit distance and barycentric (u, v) coordinates. No backface culling is
// performed: triangles are hit from either side.
func (t Tri) Hit(ray core.Ray, tMax float64) (dist, u, v float64, hit bool) {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	if a > -EpsilonParallel && a < EpsilonParallel {
		return 0, 0, 0, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u = f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, 0, 0, false
	}

	q := s.Cross(edge1)
	v = f * ray.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, 0, 0, false
	}

	dist = f * edge2.Dot(q)
	if dist < EpsilonT || dist > tMax {
		return 0, 0, 0, false
	}
	return dist, u, v, true
}
