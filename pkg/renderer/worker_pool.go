package renderer

import (
	"runtime"
	"sync"

	"github.com/slyedoc/raven-bvh/pkg/accel"
)

// PixelResult holds the outcome of casting a single ray through the scene:
// no shading, just whether something was hit, at what distance, and which
// instance it belongs to.
type PixelResult struct {
	Hit      bool
	Distance float64
	Instance accel.InstanceID
}

// TileTask is a unit of work dispatched to a worker: cast a ray for every
// pixel in Tile.Bounds and write the outcome into the shared Results grid,
// indexed [y][x]. Each tile's bounds are non-overlapping, so concurrent
// workers write disjoint cells of Results and need no synchronization.
type TileTask struct {
	Tile    Tile
	Results [][]PixelResult
}

// TileResult reports that a tile finished, along with how many of its
// pixels hit something.
type TileResult struct {
	TaskID int
	Hits   int
	Error  error
}

// WorkerPool dispatches TileTasks across a fixed number of goroutines, each
// casting rays through a shared Scene via a shared Camera.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*worker
	numWorkers  int
	wg          sync.WaitGroup
}

type worker struct {
	id          int
	camera      *Camera
	scene       *accel.Scene
	width       int
	height      int
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a pool of numWorkers goroutines, each casting rays
// through scene via camera over a width x height image. numWorkers <= 0
// uses runtime.NumCPU().
func NewWorkerPool(scene *accel.Scene, camera *Camera, width, height, tileSize, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	maxTiles := ((width + tileSize - 1) / tileSize) * ((height + tileSize - 1) / tileSize)
	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &worker{
			id:          i,
			camera:      camera,
			scene:       scene,
			width:       width,
			height:      height,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}
	return wp
}

// Start launches all workers.
func (wp *WorkerPool) Start() {
	for _, w := range wp.workers {
		wp.wg.Add(1)
		go w.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for every worker to drain it, then
// closes the result queue.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask enqueues a tile for rendering.
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult retrieves one completed tile's result.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool.
func (wp *WorkerPool) NumWorkers() int { return wp.numWorkers }

func (w *worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		hits, err := w.renderTile(task)
		if err != nil {
			w.resultQueue <- TileResult{TaskID: task.Tile.ID, Error: err}
			continue
		}
		w.resultQueue <- TileResult{TaskID: task.Tile.ID, Hits: hits}
	}
}

func (w *worker) renderTile(task TileTask) (int, error) {
	hits := 0
	bounds := task.Tile.Bounds
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			s := (float64(x) + 0.5) / float64(w.width)
			t := 1 - (float64(y)+0.5)/float64(w.height)
			ray := w.camera.GetRay(s, t)

			hit, instance, ok, err := w.scene.CastRay(ray)
			if err != nil {
				return hits, err
			}
			if ok {
				hits++
			}
			task.Results[y][x] = PixelResult{Hit: ok, Distance: hit.Distance, Instance: instance}
		}
	}
	return hits, nil
}
