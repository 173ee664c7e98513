package accel

import (
	"math/rand"
	"testing"

	"github.com/slyedoc/raven-bvh/pkg/core"
	"github.com/slyedoc/raven-bvh/pkg/geometry"
)

// randomScene builds a deterministic scene of numInstances copies of a small
// mesh scattered at random positions, seeded so repeated runs produce the same
// geometry and therefore the same benchmark workload.
func randomScene(b *testing.B, numInstances int) (*MeshRegistry, *Scene) {
	b.Helper()
	rng := rand.New(rand.NewSource(1))

	reg := NewMeshRegistry(nil)
	positions := make([]core.Vec3, 0, 64)
	indices := make([]int, 0, 96)
	for i := 0; i < 16; i++ {
		base := len(positions)
		cx, cy, cz := rng.Float64(), rng.Float64(), rng.Float64()
		positions = append(positions,
			core.NewVec3(cx-0.5, cy-0.5, cz),
			core.NewVec3(cx+0.5, cy-0.5, cz),
			core.NewVec3(cx, cy+0.5, cz),
		)
		indices = append(indices, base, base+1, base+2)
	}

	handle, err := reg.Build("scattered", positions, indices, geometry.DefaultBuildConfig())
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}

	scene := NewScene(reg, nil)
	for i := 0; i < numInstances; i++ {
		transform := core.Translate(core.NewVec3(
			rng.Float64()*100-50,
			rng.Float64()*100-50,
			rng.Float64()*100-50,
		))
		if _, err := scene.AddInstance(handle, transform); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
	scene.RebuildTLAS()
	return reg, scene
}

func BenchmarkSceneCastRay(b *testing.B) {
	_, scene := randomScene(b, 500)
	rng := rand.New(rand.NewSource(2))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		origin := core.NewVec3(rng.Float64()*200-100, rng.Float64()*200-100, -200)
		ray := core.NewRay(origin, core.NewVec3(0, 0, 1), core.Inf)
		scene.CastRay(ray)
	}
}

func BenchmarkSceneRebuildTLAS(b *testing.B) {
	reg := NewMeshRegistry(nil)
	handle := buildTriHandleForBench(b, reg)
	scene := NewScene(reg, nil)

	rng := rand.New(rand.NewSource(3))
	ids := make([]InstanceID, 0, 300)
	for i := 0; i < 300; i++ {
		transform := core.Translate(core.NewVec3(rng.Float64()*100, rng.Float64()*100, rng.Float64()*100))
		id, err := scene.AddInstance(handle, transform)
		if err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		ids = append(ids, id)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := scene.UpdateInstance(ids[i%len(ids)], core.Translate(core.NewVec3(rng.Float64()*100, 0, 0))); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
		scene.RebuildTLAS()
	}
}

func buildTriHandleForBench(b *testing.B, reg *MeshRegistry) BvhHandle {
	b.Helper()
	positions := []core.Vec3{
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	}
	handle, err := reg.Build("tri", positions, []int{0, 1, 2}, geometry.DefaultBuildConfig())
	if err != nil {
		b.Fatalf("unexpected error: %v", err)
	}
	return handle
}
