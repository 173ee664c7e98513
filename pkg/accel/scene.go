package accel

import (
	"fmt"
	"sort"
	"sync"

	"github.com/slyedoc/raven-bvh/pkg/core"
	"github.com/slyedoc/raven-bvh/pkg/geometry"
)

// Scene owns a set of instances drawn from a shared MeshRegistry and the
// Tlas built over them. RebuildTLAS performs the actual (always-full)
// rebuild; AddInstance/UpdateInstance/RemoveInstance only mark the scene
// dirty so repeated CastRay calls between topology changes don't pay for
// redundant rebuilds.
type Scene struct {
	mu        sync.RWMutex
	registry  *MeshRegistry
	instances map[InstanceID]Instance
	nextID    InstanceID
	tlas      *Tlas
	dirty     bool
	logger    core.Logger
}

// NewScene creates an empty scene backed by registry. A nil logger is
// replaced with one that discards all output.
func NewScene(registry *MeshRegistry, logger core.Logger) *Scene {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &Scene{
		registry:  registry,
		instances: make(map[InstanceID]Instance),
		tlas:      BuildTlas(nil),
		logger:    logger,
	}
}

// AddInstance places mesh into the scene at transform and returns its ID.
func (s *Scene) AddInstance(mesh BvhHandle, transform core.Mat4) (InstanceID, error) {
	bvh, err := s.registry.Get(mesh)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.instances[id] = NewInstance(id, mesh, transform, bvh.Root())
	s.dirty = true
	return id, nil
}

// UpdateInstance replaces the transform of an existing instance.
func (s *Scene) UpdateInstance(id InstanceID, transform core.Mat4) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inst, ok := s.instances[id]
	if !ok {
		return fmt.Errorf("%w: instance %d", ErrInvalidHandle, id)
	}

	bvh, err := s.registry.Get(inst.Mesh)
	if err != nil {
		return err
	}

	s.instances[id] = NewInstance(id, inst.Mesh, transform, bvh.Root())
	s.dirty = true
	return nil
}

// RemoveInstance removes an instance from the scene. Removing an unknown ID
// is a no-op.
func (s *Scene) RemoveInstance(id InstanceID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.instances[id]; ok {
		delete(s.instances, id)
		s.dirty = true
	}
}

// RebuildTLAS performs a full TLAS rebuild if the scene has changed since
// the last rebuild; otherwise it is a no-op. CastRay never rebuilds
// implicitly: callers own the decision of when topology changes should
// become visible to readers.
func (s *Scene) RebuildTLAS() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return
	}

	ids := make([]InstanceID, 0, len(s.instances))
	for id := range s.instances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	instances := make([]Instance, len(ids))
	for i, id := range ids {
		instances[i] = s.instances[id]
	}

	s.tlas = BuildTlas(instances)
	s.dirty = false
	s.logger.Printf("accel: rebuilt tlas: %d instances", len(instances))
}

// CastRay intersects ray against the scene's current Tlas. It panics if the
// scene has pending topology changes that RebuildTLAS has never applied:
// querying a stale tree silently would be worse than failing loudly, since
// the caller would get plausible-looking but wrong results.
func (s *Scene) CastRay(ray core.Ray) (geometry.Hit, InstanceID, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.dirty {
		panic("accel: Scene.CastRay called with pending changes; call RebuildTLAS first")
	}
	return s.tlas.Intersect(s.registry, ray)
}
