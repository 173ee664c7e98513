package renderer

import (
	"testing"

	"github.com/slyedoc/raven-bvh/pkg/accel"
	"github.com/slyedoc/raven-bvh/pkg/core"
	"github.com/slyedoc/raven-bvh/pkg/geometry"
)

func buildSceneWithOneTriangle(t *testing.T) *accel.Scene {
	t.Helper()
	reg := accel.NewMeshRegistry(nil)
	positions := []core.Vec3{
		core.NewVec3(-5, -5, 3),
		core.NewVec3(5, -5, 3),
		core.NewVec3(0, 5, 3),
	}
	handle, err := reg.Build("fill", positions, []int{0, 1, 2}, geometry.DefaultBuildConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scene := accel.NewScene(reg, nil)
	if _, err := scene.AddInstance(handle, core.Identity()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	scene.RebuildTLAS()
	return scene
}

func newResultsGrid(width, height int) [][]PixelResult {
	results := make([][]PixelResult, height)
	for y := range results {
		results[y] = make([]PixelResult, width)
	}
	return results
}

func TestWorkerPoolRendersAllTiles(t *testing.T) {
	const width, height = 16, 16
	scene := buildSceneWithOneTriangle(t)
	camera := NewCamera(float64(width) / float64(height))

	pool := NewWorkerPool(scene, camera, width, height, 4, 2)
	pool.Start()

	tiles := SplitIntoTiles(width, height, 4)
	results := newResultsGrid(width, height)
	for _, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, Results: results})
	}
	pool.Stop()

	completed := 0
	totalHits := 0
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil {
			t.Fatalf("unexpected error rendering tile %d: %v", result.TaskID, result.Error)
		}
		completed++
		totalHits += result.Hits
	}

	if completed != len(tiles) {
		t.Fatalf("expected %d tile results, got %d", len(tiles), completed)
	}
	if totalHits == 0 {
		t.Errorf("expected at least one pixel to hit the triangle filling the frame")
	}
}

func TestWorkerPoolDefaultsWorkerCount(t *testing.T) {
	scene := buildSceneWithOneTriangle(t)
	camera := NewCamera(1.0)
	pool := NewWorkerPool(scene, camera, 8, 8, 4, 0)
	if pool.NumWorkers() <= 0 {
		t.Errorf("expected a positive default worker count, got %d", pool.NumWorkers())
	}
}
