package renderer

import "image"

// Tile is a rectangular, non-overlapping region of the output image handed
// to a single worker.
type Tile struct {
	ID     int
	Bounds image.Rectangle
}

// SplitIntoTiles partitions a width x height image into tileSize x tileSize
// tiles, in row-major order, with TaskIDs assigned deterministically so
// results can be reassembled regardless of completion order.
func SplitIntoTiles(width, height, tileSize int) []Tile {
	if tileSize <= 0 {
		tileSize = width
	}

	var tiles []Tile
	id := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			maxX := x + tileSize
			if maxX > width {
				maxX = width
			}
			maxY := y + tileSize
			if maxY > height {
				maxY = height
			}
			tiles = append(tiles, Tile{
				ID:     id,
				Bounds: image.Rect(x, y, maxX, maxY),
			})
			id++
		}
	}
	return tiles
}
