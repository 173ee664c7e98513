package core

import "math"

// Inf is the sentinel value used to represent an "inverted" (identity)
// AABB, per the spec's Min=+INF, Max=-INF convention.
const Inf = 1e30

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB creates an AABB from explicit min/max corners.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns the inverted sentinel AABB: the identity element under Union.
func EmptyAABB() AABB {
	return AABB{
		Min: NewVec3(Inf, Inf, Inf),
		Max: NewVec3(-Inf, -Inf, -Inf),
	}
}

// NewAABBFromPoints returns an AABB tightly bounding the given points.
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.ExpandPoint(p)
	}
	return box
}

// ExpandPoint returns an AABB grown to include the given point.
func (aabb AABB) ExpandPoint(p Vec3) AABB {
	return AABB{Min: aabb.Min.Min(p), Max: aabb.Max.Max(p)}
}

// Union returns an AABB bounding both this AABB and another.
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Center returns the center point of the AABB.
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the extent of the AABB along each axis.
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// SurfaceArea returns the surface area of the AABB. A degenerate or
// inverted box has non-positive area.
func (aabb AABB) SurfaceArea() float64 {
	e := aabb.Size()
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return 0
	}
	return 2.0 * (e.X*e.Y + e.Y*e.Z + e.Z*e.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the largest extent.
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Hit performs the slab test against the ray, returning the entry distance
// and whether the ray enters the box within (tMin, tMax).
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) (float64, bool) {
	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Component(axis)
		invDir := ray.InvDir.Component(axis)
		min := aabb.Min.Component(axis)
		max := aabb.Max.Component(axis)

		t1 := (min - origin) * invDir
		t2 := (max - origin) * invDir
		if invDir < 0 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}

// Corners returns the eight corners of the box, used by the 8-corner
// world-AABB transform method (spec §4.3): non-uniform scale or rotation
// makes a naive scale-then-translate of the center/extent wrong.
func (aabb AABB) Corners() [8]Vec3 {
	var c [8]Vec3
	for i := 0; i < 8; i++ {
		x := aabb.Min.X
		if i&1 != 0 {
			x = aabb.Max.X
		}
		y := aabb.Min.Y
		if i&2 != 0 {
			y = aabb.Max.Y
		}
		z := aabb.Min.Z
		if i&4 != 0 {
			z = aabb.Max.Z
		}
		c[i] = NewVec3(x, y, z)
	}
	return c
}
