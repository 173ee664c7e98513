package geometry

import "github.com/slyedoc/raven-bvh/pkg/core"

// Node is a single BVH node. Interior nodes store the index of their first
// child in LeftFirst (the second child immediately follows it in Nodes);
// leaf nodes store the first index into TriIdx and how many triangles
// starting there belong to the leaf.
type Node struct {
	Bounds    core.AABB
	LeftFirst int
	TriCount  int
}

// IsLeaf reports whether the node is a leaf.
func (n Node) IsLeaf() bool { return n.TriCount > 0 }

// Hit is the result of a successful ray/triangle intersection against a Bvh.
type Hit struct {
	Distance float64
	U, V     float64
	TriIndex int
}

// leafThreshold is the triangle count at or below which a node is never
// split further, regardless of what the SAH estimate says.
const leafThreshold = 2

// Bvh is a binned-SAH bounding volume hierarchy over a fixed triangle set.
// Triangles themselves are never reordered; TriIdx holds a permutation of
// [0, len(Tris)) and leaf nodes slice into it via (LeftFirst, TriCount).
// A Bvh is immutable once built: there is no refit operation, matching the
// "rebuild, don't refit" choice made at the TLAS level too.
type Bvh struct {
	Nodes  []Node
	Tris   []Tri
	TriIdx []int

	rootIdx  int
	binCount int
}

// Build constructs a Bvh over tris using binned SAH splitting. An empty
// tris slice produces an empty, always-miss Bvh rather than an error;
// callers that require at least one triangle (MeshRegistry.Build) check
// that before calling Build.
func Build(tris []Tri, config BuildConfig) *Bvh {
	binCount := config.BinCount
	if binCount < 2 {
		binCount = BinCount
	}

	b := &Bvh{Tris: tris, binCount: binCount}
	n := len(tris)
	if n == 0 {
		return b
	}

	b.TriIdx = make([]int, n)
	for i := range b.TriIdx {
		b.TriIdx[i] = i
	}

	b.Nodes = make([]Node, 0, 2*n-1)
	root := Node{LeftFirst: 0, TriCount: n}
	root.Bounds = b.nodeBounds(root)
	b.Nodes = append(b.Nodes, root)

	b.subdivide(0)
	return b
}

// IsEmpty reports whether the Bvh has no triangles.
func (b *Bvh) IsEmpty() bool { return len(b.Tris) == 0 }

// Root returns the bounding box of the whole tree, or an inverted
// (never-hit) box if the Bvh is empty.
func (b *Bvh) Root() core.AABB {
	if len(b.Nodes) == 0 {
		return core.EmptyAABB()
	}
	return b.Nodes[b.rootIdx].Bounds
}

func (b *Bvh) nodeBounds(node Node) core.AABB {
	box := core.EmptyAABB()
	for i := 0; i < node.TriCount; i++ {
		tri := b.Tris[b.TriIdx[node.LeftFirst+i]]
		box = box.Union(tri.Bounds())
	}
	return box
}

func (b *Bvh) subdivide(nodeIdx int) {
	node := b.Nodes[nodeIdx]
	if node.TriCount <= leafThreshold {
		return
	}

	axis, splitPos, splitCost, ok := b.findBestSplitPlane(node)
	noSplitCost := node.Bounds.SurfaceArea() * float64(node.TriCount)
	if !ok || splitCost >= noSplitCost {
		return
	}

	i := node.LeftFirst
	j := node.LeftFirst + node.TriCount - 1
	for i <= j {
		if b.Tris[b.TriIdx[i]].Centroid.Component(axis) < splitPos {
			i++
		} else {
			b.TriIdx[i], b.TriIdx[j] = b.TriIdx[j], b.TriIdx[i]
			j--
		}
	}

	leftCount := i - node.LeftFirst
	if leftCount == 0 || leftCount == node.TriCount {
		return
	}

	left := Node{LeftFirst: node.LeftFirst, TriCount: leftCount}
	left.Bounds = b.nodeBounds(left)
	leftIdx := len(b.Nodes)
	b.Nodes = append(b.Nodes, left)

	right := Node{LeftFirst: i, TriCount: node.TriCount - leftCount}
	right.Bounds = b.nodeBounds(right)
	rightIdx := len(b.Nodes)
	b.Nodes = append(b.Nodes, right)

	b.Nodes[nodeIdx].LeftFirst = leftIdx
	b.Nodes[nodeIdx].TriCount = 0

	b.subdivide(leftIdx)
	b.subdivide(rightIdx)
}

type bin struct {
	bounds core.AABB
	count  int
}

// findBestSplitPlane performs a single binned sweep per axis: populate
// BinCount bins from triangle centroids, then walk the bin boundaries once
// accumulating a left-to-right prefix (area, count) and a right-to-left
// suffix (area, count), scoring each of the BinCount-1 candidate planes by
// the standard SAH cost (leftCount*leftArea + rightCount*rightArea).
func (b *Bvh) findBestSplitPlane(node Node) (bestAxis int, bestPos, bestCost float64, ok bool) {
	bestCost = core.Inf

	for axis := 0; axis < 3; axis++ {
		lo, hi := core.Inf, -core.Inf
		for i := 0; i < node.TriCount; i++ {
			c := b.Tris[b.TriIdx[node.LeftFirst+i]].Centroid.Component(axis)
			if c < lo {
				lo = c
			}
			if c > hi {
				hi = c
			}
		}
		if lo == hi {
			continue
		}

		bins := make([]bin, b.binCount)
		for i := range bins {
			bins[i].bounds = core.EmptyAABB()
		}
		scale := float64(b.binCount) / (hi - lo)
		for i := 0; i < node.TriCount; i++ {
			tri := b.Tris[b.TriIdx[node.LeftFirst+i]]
			idx := int((tri.Centroid.Component(axis) - lo) * scale)
			if idx >= b.binCount {
				idx = b.binCount - 1
			}
			bins[idx].count++
			bins[idx].bounds = bins[idx].bounds.Union(tri.Bounds())
		}

		planes := b.binCount - 1
		leftArea := make([]float64, planes)
		leftCount := make([]int, planes)
		rightArea := make([]float64, planes)
		rightCount := make([]int, planes)

		leftBox, rightBox := core.EmptyAABB(), core.EmptyAABB()
		leftSum, rightSum := 0, 0
		for i := 0; i < planes; i++ {
			leftSum += bins[i].count
			leftCount[i] = leftSum
			leftBox = leftBox.Union(bins[i].bounds)
			leftArea[i] = leftBox.SurfaceArea()

			rightSum += bins[planes-i].count
			rightCount[planes-1-i] = rightSum
			rightBox = rightBox.Union(bins[planes-i].bounds)
			rightArea[planes-1-i] = rightBox.SurfaceArea()
		}

		binWidth := (hi - lo) / float64(b.binCount)
		for i := 0; i < planes; i++ {
			cost := float64(leftCount[i])*leftArea[i] + float64(rightCount[i])*rightArea[i]
			if cost < bestCost {
				bestCost = cost
				bestAxis = axis
				bestPos = lo + float64(i+1)*binWidth
				ok = true
			}
		}
	}
	return
}

// Intersect finds the nearest intersection between ray and the triangles in
// the Bvh, using an explicit stack and nearest-child-first descent so
// ray.Max tightens as quickly as possible.
func (b *Bvh) Intersect(ray core.Ray) (Hit, bool) {
	if len(b.Nodes) == 0 {
		return Hit{}, false
	}

	best := Hit{Distance: ray.Max}
	found := false

	var stack [maxStackDepth]int
	sp := 0
	nodeIdx := b.rootIdx

	for {
		node := b.Nodes[nodeIdx]
		if node.IsLeaf() {
			for i := 0; i < node.TriCount; i++ {
				triIdx := b.TriIdx[node.LeftFirst+i]
				if d, u, v, ok := b.Tris[triIdx].Hit(ray, best.Distance); ok {
					best = Hit{Distance: d, U: u, V: v, TriIndex: triIdx}
					found = true
				}
			}
			if sp == 0 {
				break
			}
			sp--
			nodeIdx = stack[sp]
			continue
		}

		left := node.LeftFirst
		right := left + 1
		leftDist, leftHit := b.Nodes[left].Bounds.Hit(ray, 0, best.Distance)
		rightDist, rightHit := b.Nodes[right].Bounds.Hit(ray, 0, best.Distance)

		switch {
		case !leftHit && !rightHit:
			if sp == 0 {
				return best, found
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
				panic("geometry: bvh traversal stack overflow")
			}
			stack[sp] = right
			sp++
			nodeIdx = left
		}
	}

	return best, found
}
