package model

import (
	"crypto/md5"
	"fmt"
	"runtime"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/exrok/game-of-life/rules"
)

// Reference is the straightforward cell-by-cell board the packed kernel is
// checked against. It applies the same rule with the same dead-border policy
// but keeps one bool per cell and builds each generation into a fresh board.
type Reference struct {
	width  int
	height int
	cells  [][]bool
}

// NewReference creates an all-dead reference board of the specified dimensions
func NewReference(width, height int) *Reference {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Reference{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// GetWidth returns the width of the board
func (r *Reference) GetWidth() int {
	return r.width
}

// GetHeight returns the height of the board
func (r *Reference) GetHeight() int {
	return r.height
}

// Set sets a cell to alive (true) or dead (false)
func (r *Reference) Set(x, y int, alive bool) error {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d,%d) on %dx%d board", x, y, r.width, r.height)
	}
	r.cells[y][x] = alive
	return nil
}

// Cell reports whether a cell is alive; cells outside the board are dead
func (r *Reference) Cell(x, y int) bool {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return false
	}
	return r.cells[y][x]
}

// CountNeighbors counts living neighbors with bounds-clamped iteration
func (r *Reference) CountNeighbors(x, y int) int {
	count := 0

	minX := max(0, x-1)
	maxX := min(r.width-1, x+1)
	minY := max(0, y-1)
	maxY := min(r.height-1, y+1)

	for ny := minY; ny <= maxY; ny++ {
		for nx := minX; nx <= maxX; nx++ {
			if nx == x && ny == y {
				continue // Skip the cell itself
			}
			if r.cells[ny][nx] {
				count++
			}
		}
	}

	return count
}

// NextGeneration applies the Life rule to every cell and returns the
// resulting board, splitting the rows across workers.
func (r *Reference) NextGeneration() *Reference {
	next := NewReference(r.width, r.height)

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (r.height + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := 0; i < numWorkers; i++ {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, r.height)
		)
		if startRow >= r.height {
			break
		}

		eg.Go(func() error {
			for y := startRow; y < endRow; y++ {
				for x := 0; x < r.width; x++ {
					if rules.ApplyConwayRules(r.CountNeighbors(x, y), r.cells[y][x]) {
						next.cells[y][x] = true
					}
				}
			}
			return nil
		})
	}

	// The workers never fail; Wait just joins them.
	_ = eg.Wait()

	return next
}

// Population returns the total number of living cells
func (r *Reference) Population() (count int) {
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if r.cells[y][x] {
				count++
			}
		}
	}
	return
}

// StateHash returns an MD5 hash of the current board state
func (r *Reference) StateHash() string {
	h := md5.New()
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			if r.cells[y][x] {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
