package accel

import (
	"github.com/slyedoc/raven-bvh/pkg/core"
	"github.com/slyedoc/raven-bvh/pkg/geometry"
)

// tlasNode is either a leaf, referencing a single instance, or a branch
// with two children stored at arbitrary indices (unlike geometry.Bvh,
// agglomerative clustering doesn't keep siblings contiguous).
type tlasNode struct {
	bounds      core.AABB
	left, right int
	instance    int
}

func (n tlasNode) isLeaf() bool { return n.left < 0 }

// Tlas is a top-level acceleration structure over a fixed set of Instances,
// built by agglomerative clustering rather than binned SAH: TLAS input
// sizes are orders of magnitude smaller than mesh triangle counts, so an
// O(M^2) build is cheap and tends to produce a tighter tree for small M
// than axis splitting would.
type Tlas struct {
	nodes     []tlasNode
	root      int
	instances []Instance
}

// BuildTlas constructs a Tlas over instances. It always performs a full
// build; there is no incremental refit.
func BuildTlas(instances []Instance) *Tlas {
	t := &Tlas{instances: instances}
	if len(instances) == 0 {
		return t
	}

	n := len(instances)
	t.nodes = make([]tlasNode, 0, 2*n-1)
	active := make([]int, n)
	for i, inst := range instances {
		t.nodes = append(t.nodes, tlasNode{bounds: inst.Bounds(), left: -1, right: -1, instance: i})
		active[i] = i
	}

	if n == 1 {
		t.root = 0
		return t
	}

	count := n
	a := 0
	b := t.findBestMatch(active, count, a)
	for count > 1 {
		c := t.findBestMatch(active, count, b)
		if a == c {
			left, right := active[a], active[b]
			merged := tlasNode{
				bounds: t.nodes[left].bounds.Union(t.nodes[right].bounds),
				left:   left,
				right:  right,
			}
			mergedIdx := len(t.nodes)
			t.nodes = append(t.nodes, merged)

			active[a] = mergedIdx
			active[b] = active[count-1]
			count--
			b = t.findBestMatch(active, count, a)
		} else {
			a = b
			b = c
		}
	}

	t.root = active[0]
	return t
}

// findBestMatch returns the index (into active[0:count)) of the cluster
// whose union with active[a] has the smallest surface area, excluding a
// itself. Ties go to the smallest index, matching the first strictly
// smaller candidate found.
func (t *Tlas) findBestMatch(active []int, count, a int) int {
	best := -1
	bestArea := core.Inf
	boxA := t.nodes[active[a]].bounds
	for b := 0; b < count; b++ {
		if b == a {
			continue
		}
		area := boxA.Union(t.nodes[active[b]].bounds).SurfaceArea()
		if area < bestArea {
			bestArea = area
			best = b
		}
	}
	return best
}

// Intersect finds the nearest intersection between ray and the instances in
// the Tlas, recursing into each hit instance's local-space BVH via the
// registry. It returns the hit, the ID of the instance it belongs to, and
// whether anything was hit.
func (t *Tlas) Intersect(registry *MeshRegistry, ray core.Ray) (geometry.Hit, InstanceID, bool, error) {
	if len(t.nodes) == 0 {
		return geometry.Hit{}, 0, false, nil
	}

	best := geometry.Hit{Distance: ray.Max}
	bestID := InstanceID(0)
	found := false

	var stack [maxStackDepth]int
	sp := 0
	nodeIdx := t.root

	for {
		node := t.nodes[nodeIdx]
		if node.isLeaf() {
			inst := t.instances[node.instance]
			hit, ok, err := inst.IntersectLocal(registry, ray.WithMax(best.Distance))
			if err != nil {
				return geometry.Hit{}, 0, false, err
			}
			if ok && hit.Distance < best.Distance {
				best = hit
				bestID = inst.ID
				found = true
			}
			if sp == 0 {
				break
			}
			sp--
			nodeIdx = stack[sp]
			continue
		}

		left, right := node.left, node.right
		leftDist, leftHit := t.nodes[left].bounds.Hit(ray, 0, best.Distance)
		rightDist, rightHit := t.nodes[right].bounds.Hit(ray, 0, best.Distance)

		switch {
		case !leftHit && !rightHit:
			if sp == 0 {
				return best, bestID, found, nil
			}
			sp--
			nodeIdx = stack[sp]
		case leftHit && !rightHit:
			nodeIdx = left
		case !leftHit && rightHit:
			nodeIdx = right
		default:
			if leftDist > rightDist {
				left, right = right, left
			}
			if sp >= maxStackDepth {
				panic("accel: tlas traversal stack overflow")
			}
			stack[sp] = right
			sp++
			nodeIdx = left
		}
	}

	return best, bestID, found, nil
}
