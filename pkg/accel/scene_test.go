package accel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slyedoc/raven-bvh/pkg/core"
	"github.com/slyedoc/raven-bvh/pkg/geometry"
)

func buildTriHandle(t *testing.T, reg *MeshRegistry) BvhHandle {
	t.Helper()
	positions := []core.Vec3{
		core.NewVec3(-1, -1, 0),
		core.NewVec3(1, -1, 0),
		core.NewVec3(0, 1, 0),
	}
	handle, err := reg.Build("tri", positions, []int{0, 1, 2}, geometry.DefaultBuildConfig())
	require.NoError(t, err)
	return handle
}

func TestSceneCastRayRequiresRebuildToSeeNewInstances(t *testing.T) {
	reg := NewMeshRegistry(nil)
	handle := buildTriHandle(t, reg)
	scene := NewScene(reg, nil)

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), core.Inf)

	_, _, ok, err := scene.CastRay(ray)
	require.NoError(t, err)
	assert.False(t, ok, "expected no hit against a freshly built empty scene")

	_, err = scene.AddInstance(handle, core.Identity())
	require.NoError(t, err)

	assert.Panics(t, func() { scene.CastRay(ray) },
		"expected CastRay to refuse a stale scene rather than silently miss")

	scene.RebuildTLAS()
	_, _, ok, err = scene.CastRay(ray)
	require.NoError(t, err)
	assert.True(t, ok, "expected a hit once the tlas has been rebuilt")
}

func TestSceneUpdateInstanceMovesHit(t *testing.T) {
	reg := NewMeshRegistry(nil)
	handle := buildTriHandle(t, reg)
	scene := NewScene(reg, nil)

	id, err := scene.AddInstance(handle, core.Identity())
	require.NoError(t, err)
	scene.RebuildTLAS()

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), core.Inf)
	_, _, ok, err := scene.CastRay(ray)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, scene.UpdateInstance(id, core.Translate(core.NewVec3(100, 0, 0))))
	scene.RebuildTLAS()

	_, _, ok, err = scene.CastRay(ray)
	require.NoError(t, err)
	assert.False(t, ok, "expected no hit after moving the instance far away")
}

func TestSceneRemoveInstance(t *testing.T) {
	reg := NewMeshRegistry(nil)
	handle := buildTriHandle(t, reg)
	scene := NewScene(reg, nil)

	id, err := scene.AddInstance(handle, core.Identity())
	require.NoError(t, err)
	scene.RebuildTLAS()

	scene.RemoveInstance(id)
	scene.RebuildTLAS()

	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), core.Inf)
	_, _, ok, err := scene.CastRay(ray)
	require.NoError(t, err)
	assert.False(t, ok, "expected no hit after removing the only instance")
}

func TestSceneUpdateUnknownInstanceIsError(t *testing.T) {
	reg := NewMeshRegistry(nil)
	scene := NewScene(reg, nil)
	err := scene.UpdateInstance(999, core.Identity())
	assert.ErrorIs(t, err, ErrInvalidHandle)
}
