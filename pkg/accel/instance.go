package accel

import (
	"github.com/slyedoc/raven-bvh/pkg/core"
	"github.com/slyedoc/raven-bvh/pkg/geometry"
)

// InstanceID identifies an instance within a Scene.
type InstanceID int

// Instance places a registered mesh BVH into world space via an affine
// transform. Instances are immutable; UpdateInstance on a Scene replaces
// one rather than mutating it in place.
type Instance struct {
	ID        InstanceID
	Mesh      BvhHandle
	Transform core.Mat4
	Inverse   core.Mat4
	bounds    core.AABB
}

// NewInstance places mesh in world space via transform. localBounds is the
// mesh BVH's own root bounding box, in mesh-local space.
func NewInstance(id InstanceID, mesh BvhHandle, transform core.Mat4, localBounds core.AABB) Instance {
	return Instance{
		ID:        id,
		Mesh:      mesh,
		Transform: transform,
		Inverse:   transform.Inverse(),
		bounds:    worldBounds(transform, localBounds),
	}
}

// Bounds returns the instance's tight world-space bounding box.
func (inst Instance) Bounds() core.AABB { return inst.bounds }

// worldBounds transforms all eight corners of localBounds by transform and
// returns their tight bounding box. A naive scale-then-translate of the
// local box's center and extent is wrong under rotation or non-uniform
// scale; transforming every corner and re-bounding is the only correct way.
func worldBounds(transform core.Mat4, localBounds core.AABB) core.AABB {
	box := core.EmptyAABB()
	for _, c := range localBounds.Corners() {
		box = box.ExpandPoint(transform.TransformPoint(c))
	}
	return box
}

// toLocal converts a world-space ray into the instance's local space. Under
// non-uniform scale, the local-space direction's length differs from the
// world-space direction's length; dirScale is that ratio. The local ray's
// direction is normalized (as every core.Ray's is), so its t parameter
// measures local-space distance; ray.Max is scaled by dirScale before local
// traversal to keep the bound in the same units, and the resulting local
// hit distance must be divided by dirScale to recover the world-space
// distance.
func (inst Instance) toLocal(ray core.Ray) (core.Ray, float64, error) {
	worldLen := ray.Direction.Length()
	if worldLen == 0 {
		return core.Ray{}, 0, ErrDegenerateDirection
	}

	localOrigin := inst.Inverse.TransformPoint(ray.Origin)
	localDir := inst.Inverse.TransformVector(ray.Direction)
	localLen := localDir.Length()
	if localLen == 0 {
		return core.Ray{}, 0, ErrDegenerateDirection
	}

	dirScale := localLen / worldLen
	localRay := core.NewRay(localOrigin, localDir, ray.Max*dirScale)
	return localRay, dirScale, nil
}

// IntersectLocal transforms ray into the instance's local space, intersects
// it against the instance's mesh BVH, and converts the resulting distance
// back into world space.
func (inst Instance) IntersectLocal(registry *MeshRegistry, ray core.Ray) (geometry.Hit, bool, error) {
	localRay, dirScale, err := inst.toLocal(ray)
	if err != nil {
		return geometry.Hit{}, false, err
	}

	hit, ok, err := registry.CastRayBVH(inst.Mesh, localRay)
	if err != nil || !ok {
		return geometry.Hit{}, false, err
	}

	hit.Distance /= dirScale
	return hit, true, nil
}
