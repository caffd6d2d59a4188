package model

import (
	"math/bits"

	"github.com/pkg/errors"
)

// Errors reported by the kernel's construction and accessors. Advance has no
// failure mode: once a kernel exists its geometry is valid for good.
var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrOutOfBounds       = errors.New("cell coordinates out of bounds")
)

const (
	// Each word carries 62 cells in bits 1..62. Bits 0 and 63 are halo
	// bits mirroring the edge cells of the neighboring words, so the
	// horizontal neighbor sums for every payload bit reduce to plain
	// in-word shifts.
	payloadBits = 62

	payloadMask uint64 = ((1 << payloadBits) - 1) << 1
	haloMask    uint64 = 1 | 1<<63
)

/*
Kernel is a bit-packed Game of Life board optimized for single-threaded
update throughput.

Rows are stored back to back in one flat buffer of uint64 words, 62 cells per
word, row-major. Advance rewrites the buffer in place using a carry-save
adder network that computes the neighbor count of all cells in a word at
once, so the cost per generation is a fixed sequence of word operations
independent of the grid contents.

The board has a dead border: cells outside the grid never come alive and
contribute nothing to neighbor counts. There is no wraparound.
*/
type Kernel struct {
	width, height int
	wordsPerRow   int
	lastWordMask  uint64 // payload mask of the final, possibly partial, word in a row
	buf           []uint64

	// Row-sized scratch reused across Advance calls so stepping never
	// allocates. prev/cur hold the pre-update state of the rows above and
	// at the cursor; zero stands in for the dead rows outside the grid.
	prev, cur, zero []uint64
}

// NewKernel allocates an all-dead board of the given dimensions.
func NewKernel(width, height int) (*Kernel, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewKernel] %dx%d", width, height)
	}

	const maxWords = uint64(1) << 40

	wordsPerRow := (width + payloadBits - 1) / payloadBits
	if uint64(wordsPerRow) > maxWords/uint64(height) {
		return nil, errors.Wrapf(ErrInvalidDimensions, "[NewKernel] %dx%d exceeds the word budget", width, height)
	}

	rem := width - (wordsPerRow-1)*payloadBits
	return &Kernel{
		width:        width,
		height:       height,
		wordsPerRow:  wordsPerRow,
		lastWordMask: (uint64(1)<<rem - 1) << 1,
		buf:          make([]uint64, wordsPerRow*height),
		prev:         make([]uint64, wordsPerRow),
		cur:          make([]uint64, wordsPerRow),
		zero:         make([]uint64, wordsPerRow),
	}, nil
}

// GetWidth returns the width of the board
func (k *Kernel) GetWidth() int {
	return k.width
}

// GetHeight returns the height of the board
func (k *Kernel) GetHeight() int {
	return k.height
}

// Set sets a cell to alive (true) or dead (false). The halo bits of the
// neighboring words are not touched here; they are refreshed in bulk at the
// top of Advance, keeping single-cell writes O(1).
func (k *Kernel) Set(x, y int, alive bool) error {
	if x < 0 || x >= k.width || y < 0 || y >= k.height {
		return errors.Wrapf(ErrOutOfBounds, "[Set] (%d,%d) on %dx%d board", x, y, k.width, k.height)
	}
	word := y*k.wordsPerRow + x/payloadBits
	bit := uint64(1) << (x%payloadBits + 1)
	if alive {
		k.buf[word] |= bit
	} else {
		k.buf[word] &^= bit
	}
	return nil
}

// Get returns the state of a cell, failing loudly on out-of-range
// coordinates: the harness only ever seeds and reads in-range cells, so a
// bad coordinate is a caller bug rather than something to clamp.
func (k *Kernel) Get(x, y int) (bool, error) {
	if x < 0 || x >= k.width || y < 0 || y >= k.height {
		return false, errors.Wrapf(ErrOutOfBounds, "[Get] (%d,%d) on %dx%d board", x, y, k.width, k.height)
	}
	return k.Cell(x, y), nil
}

// Cell reports whether a cell is alive, treating anything outside the board
// as dead. This is the unchecked read used by rendering and verification
// sweeps that already iterate in range.
func (k *Kernel) Cell(x, y int) bool {
	if x < 0 || x >= k.width || y < 0 || y >= k.height {
		return false
	}
	word := y*k.wordsPerRow + x/payloadBits
	return k.buf[word]>>(x%payloadBits+1)&1 == 1
}

// Population returns the number of living cells.
func (k *Kernel) Population() (count int) {
	for y := 0; y < k.height; y++ {
		row := k.buf[y*k.wordsPerRow : (y+1)*k.wordsPerRow]
		for i, w := range row {
			count += bits.OnesCount64(w & k.wordMask(i))
		}
	}
	return
}

// Checksum folds the payload bits of every word into a single order-sensitive
// fingerprint (rotate-xor over the row-major traversal). It is a cheap
// structural parity check for cross-run determinism, not a digest.
func (k *Kernel) Checksum() uint64 {
	var sum uint64
	for y := 0; y < k.height; y++ {
		row := k.buf[y*k.wordsPerRow : (y+1)*k.wordsPerRow]
		for i, w := range row {
			sum = bits.RotateLeft64(sum, 1) ^ (w & k.wordMask(i))
		}
	}
	return sum
}

func (k *Kernel) wordMask(i int) uint64 {
	if i == k.wordsPerRow-1 {
		return k.lastWordMask
	}
	return payloadMask
}

// refreshHalos copies each word's missing edge neighbors into its halo bits:
// bit 0 receives the left word's last payload bit, bit 63 the right word's
// first. The outermost halos of a row stay zero, which is what gives the
// board its dead vertical borders. One linear left-to-right pass per row;
// only halo bits change, so reading row[i-1] mid-pass is safe.
func (k *Kernel) refreshHalos() {
	for y := 0; y < k.height; y++ {
		row := k.buf[y*k.wordsPerRow : (y+1)*k.wordsPerRow]
		for i := range row {
			w := row[i] &^ haloMask
			if i > 0 {
				w |= row[i-1] >> payloadBits & 1
			}
			if i < len(row)-1 {
				w |= row[i+1] << payloadBits & (1 << 63)
			}
			row[i] = w
		}
	}
}

// nextWord computes the next generation of the 62 cells in mid, given the
// words directly above and below. All three words must have fresh halo bits.
//
// The neighbor count of every bit position is built in carry-save form:
// each of the three columns (left, center, right of a cell) is summed
// vertically into a two-bit value (b,a) with half/full-adder logic, the
// center column excluding mid itself, and the three column sums are then
// combined into "count is exactly 3" (x3) and "count is exactly 2" (x2)
// bit-planes. The Life rule is x3 | (mid & x2). No branches, no per-cell
// arithmetic; the halo bits absorb the word-boundary shifts and come out as
// garbage that the caller masks away.
func nextWord(top, mid, bot uint64) uint64 {
	a2 := top ^ mid ^ bot
	b2 := (top & mid & bot) | ((top | mid | bot) &^ a2)
	a1, a3 := a2<<1, a2>>1
	b1, b3 := b2<<1, b2>>1

	// Center column: the cell itself is not its own neighbor.
	a2 = top ^ bot
	b2 = (top | bot) &^ a2

	x3 := (^(b1 | b2 | b3) & (a1 & a2 & a3)) |
		(((b1 ^ b2 ^ b3) &^ (b1 & b2 & b3)) & ((a1 ^ a2 ^ a3) &^ (a1 & a2 & a3)))

	x2 := (^(b1 | b2 | b3) & (^(a1 ^ a2 ^ a3) & (a1 | a2 | a3))) |
		(((b1 ^ b2 ^ b3) &^ (b1 & b2 & b3)) &^ (a1 | a2 | a3))

	return x3 | (mid & x2)
}

// Advance steps the whole board one generation in place.
//
// Rows are processed top to bottom. Before a row is overwritten its old
// words are copied into a scratch row, so the row below always reads the
// previous generation's state from the buffer and the row above reads it
// from scratch. That single-row lookahead is the only working memory the
// update needs.
func (k *Kernel) Advance() {
	k.refreshHalos()

	prev, cur := k.prev, k.cur
	clear(prev) // dead row above the top edge

	last := k.wordsPerRow - 1
	for y := 0; y < k.height; y++ {
		row := k.buf[y*k.wordsPerRow : (y+1)*k.wordsPerRow]
		copy(cur, row)

		below := k.zero // dead row below the bottom edge
		if y+1 < k.height {
			below = k.buf[(y+1)*k.wordsPerRow : (y+2)*k.wordsPerRow]
		}

		for i := 0; i < last; i++ {
			row[i] = nextWord(prev[i], cur[i], below[i]) & payloadMask
		}
		row[last] = nextWord(prev[last], cur[last], below[last]) & k.lastWordMask

		prev, cur = cur, prev
	}
}
