package renderer

import "testing"

func TestSplitIntoTilesCoversImage(t *testing.T) {
	tiles := SplitIntoTiles(10, 7, 4)

	covered := make([][]bool, 7)
	for i := range covered {
		covered[i] = make([]bool, 10)
	}

	for _, tile := range tiles {
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				if covered[y][x] {
					t.Fatalf("pixel (%d,%d) covered by more than one tile", x, y)
				}
				covered[y][x] = true
			}
		}
	}

	for y := 0; y < 7; y++ {
		for x := 0; x < 10; x++ {
			if !covered[y][x] {
				t.Errorf("pixel (%d,%d) never covered by any tile", x, y)
			}
		}
	}
}

func TestSplitIntoTilesAssignsSequentialIDs(t *testing.T) {
	tiles := SplitIntoTiles(8, 8, 4)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("tile %d has ID %d, want %d", i, tile.ID, i)
		}
	}
}
