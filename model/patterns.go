package model

import "math/rand"

// CellSetter is the writable surface shared by the packed kernel and the
// naive reference board, so the same seeding runs against either.
type CellSetter interface {
	GetWidth() int
	GetHeight() int
	Set(x, y int, alive bool) error
}

// Randomize fills the board from the given source, each cell alive with the
// given density. Deterministic for a fixed seed and board size because the
// traversal order is fixed.
func Randomize(g CellSetter, rng *rand.Rand, density float64) error {
	for y := 0; y < g.GetHeight(); y++ {
		for x := 0; x < g.GetWidth(); x++ {
			if err := g.Set(x, y, rng.Float64() < density); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddGlider adds a glider pattern at the specified position
func AddGlider(g CellSetter, startX, startY int) error {
	pattern := [][]bool{
		{false, true, false},
		{false, false, true},
		{true, true, true},
	}

	for y, row := range pattern {
		for x, cell := range row {
			if err := g.Set(startX+x, startY+y, cell); err != nil {
				return err
			}
		}
	}
	return nil
}

// AddBlinker adds a horizontal blinker oscillator at the specified position
func AddBlinker(g CellSetter, startX, startY int) error {
	for i := 0; i < 3; i++ {
		if err := g.Set(startX+i, startY, true); err != nil {
			return err
		}
	}
	return nil
}

// AddBlock adds a 2x2 block still life at the specified position
func AddBlock(g CellSetter, startX, startY int) error {
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if err := g.Set(startX+x, startY+y, true); err != nil {
				return err
			}
		}
	}
	return nil
}
