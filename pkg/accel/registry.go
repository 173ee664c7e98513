package accel

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/slyedoc/raven-bvh/pkg/core"
	"github.com/slyedoc/raven-bvh/pkg/geometry"
)

// BvhHandle opaquely identifies a mesh BVH owned by a MeshRegistry. The
// zero value never refers to a live entry.
type BvhHandle uuid.UUID

func (h BvhHandle) String() string { return uuid.UUID(h).String() }

type registryEntry struct {
	name string
	bvh  *geometry.Bvh
}

// MeshRegistry owns a set of built mesh BVHs, keyed by opaque handle. Each
// Build mints a fresh random handle; handles are not derived from mesh
// content, so building the same mesh twice yields two separate entries.
// Readers (CastRayBVH, Get, Stats) share a read lock and may run
// concurrently with each other; Build and Remove take the write lock, so
// all methods are safe to call from multiple goroutines.
type MeshRegistry struct {
	mu      sync.RWMutex
	entries map[BvhHandle]*registryEntry
	logger  core.Logger
}

// NewMeshRegistry creates an empty registry. A nil logger is replaced with
// one that discards all output.
func NewMeshRegistry(logger core.Logger) *MeshRegistry {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &MeshRegistry{
		entries: make(map[BvhHandle]*registryEntry),
		logger:  logger,
	}
}

// Build converts an indexed triangle-list mesh into triangles, constructs a
// BVH over them, and registers the result under a freshly minted handle.
func (r *MeshRegistry) Build(name string, positions []core.Vec3, indices []int, config geometry.BuildConfig) (BvhHandle, error) {
	tris, err := geometry.MeshToTriangles(positions, indices)
	if err != nil {
		return BvhHandle{}, fmt.Errorf("accel: building mesh bvh %q: %w", name, err)
	}

	bvh := geometry.Build(tris, config)
	handle := BvhHandle(uuid.New())

	r.mu.Lock()
	r.entries[handle] = &registryEntry{name: name, bvh: bvh}
	r.mu.Unlock()

	r.logger.Printf("accel: built bvh %s (%q): %d triangles, %d nodes", handle, name, len(tris), len(bvh.Nodes))
	return handle, nil
}

// Remove deletes a previously built BVH. Removing an unknown handle is a
// no-op, since the caller's intent (this mesh should no longer exist) is
// already satisfied.
func (r *MeshRegistry) Remove(handle BvhHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, handle)
}

// Get returns the Bvh registered under handle.
func (r *MeshRegistry) Get(handle BvhHandle) (*geometry.Bvh, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHandle, handle)
	}
	return e.bvh, nil
}

// CastRayBVH intersects ray, already expressed in the mesh's local space,
// against the BVH registered under handle.
func (r *MeshRegistry) CastRayBVH(handle BvhHandle, ray core.Ray) (geometry.Hit, bool, error) {
	bvh, err := r.Get(handle)
	if err != nil {
		return geometry.Hit{}, false, err
	}
	hit, ok := bvh.Intersect(ray)
	return hit, ok, nil
}

// Stats summarizes a registered BVH's shape, grounded on the teacher's own
// bvhStats/collectStats diagnostics.
type Stats struct {
	Name          string
	TriangleCount int
	NodeCount     int
	LeafCount     int
	MaxDepth      int
}

// Stats reports summary statistics for the BVH registered under handle.
func (r *MeshRegistry) Stats(handle BvhHandle) (Stats, error) {
	r.mu.RLock()
	e, ok := r.entries[handle]
	r.mu.RUnlock()
	if !ok {
		return Stats{}, fmt.Errorf("%w: %s", ErrInvalidHandle, handle)
	}

	stats := collectStats(e.bvh)
	stats.Name = e.name
	return stats, nil
}

func collectStats(bvh *geometry.Bvh) Stats {
	stats := Stats{TriangleCount: len(bvh.Tris)}
	if len(bvh.Nodes) == 0 {
		return stats
	}
	stats.NodeCount = len(bvh.Nodes)
	walkStats(bvh, 0, 1, &stats)
	return stats
}

func walkStats(bvh *geometry.Bvh, nodeIdx, depth int, stats *Stats) {
	node := bvh.Nodes[nodeIdx]
	if node.IsLeaf() {
		stats.LeafCount++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		return
	}
	walkStats(bvh, node.LeftFirst, depth+1, stats)
	walkStats(bvh, node.LeftFirst+1, depth+1, stats)
}
