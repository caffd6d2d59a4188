package model

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
)

func mustKernel(t *testing.T, width, height int) *Kernel {
	t.Helper()
	k, err := NewKernel(width, height)
	if err != nil {
		t.Fatalf("NewKernel(%d,%d): %v", width, height, err)
	}
	return k
}

func mustSet(t *testing.T, g CellSetter, x, y int, alive bool) {
	t.Helper()
	if err := g.Set(x, y, alive); err != nil {
		t.Fatalf("Set(%d,%d,%v): %v", x, y, alive, err)
	}
}

// seedBoth fills a kernel and a reference board with the same random state.
func seedBoth(t *testing.T, k *Kernel, ref *Reference, seed int64, density float64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	for y := 0; y < k.GetHeight(); y++ {
		for x := 0; x < k.GetWidth(); x++ {
			alive := rng.Float64() < density
			mustSet(t, k, x, y, alive)
			mustSet(t, ref, x, y, alive)
		}
	}
}

func assertMatchesReference(t *testing.T, k *Kernel, ref *Reference, generation int) {
	t.Helper()
	for y := 0; y < k.GetHeight(); y++ {
		for x := 0; x < k.GetWidth(); x++ {
			if k.Cell(x, y) != ref.Cell(x, y) {
				t.Fatalf("generation %d: cell (%d,%d) kernel=%v reference=%v",
					generation, x, y, k.Cell(x, y), ref.Cell(x, y))
			}
		}
	}
}

// The widths deliberately straddle the 62-cell word payload: one narrower,
// one exact, one spilling a single cell into a second word, and multi-word
// rows whose final word is only partially filled.
func TestAdvanceMatchesReference(t *testing.T) {
	dims := []struct{ width, height int }{
		{1, 1},
		{3, 3},
		{8, 8},
		{16, 16},
		{61, 7},
		{62, 9},
		{63, 5},
		{100, 33},
		{124, 4},
		{130, 65},
	}

	for _, d := range dims {
		k := mustKernel(t, d.width, d.height)
		ref := NewReference(d.width, d.height)
		seedBoth(t, k, ref, int64(d.width*1000+d.height), 0.3)

		for generation := 1; generation <= 4; generation++ {
			k.Advance()
			ref = ref.NextGeneration()
			assertMatchesReference(t, k, ref, generation)
		}
	}
}

func TestNewKernelIsAllDead(t *testing.T) {
	k := mustKernel(t, 70, 12)
	if pop := k.Population(); pop != 0 {
		t.Errorf("fresh board population = %d, want 0", pop)
	}
	for y := 0; y < 12; y++ {
		for x := 0; x < 70; x++ {
			if k.Cell(x, y) {
				t.Fatalf("fresh board has live cell at (%d,%d)", x, y)
			}
		}
	}

	other := mustKernel(t, 70, 12)
	if k.Checksum() != other.Checksum() {
		t.Errorf("fresh boards of equal dimensions disagree on checksum: %016x vs %016x",
			k.Checksum(), other.Checksum())
	}
}

func TestInvalidDimensions(t *testing.T) {
	var table = map[string]struct{ width, height int }{
		"zero width":  {0, 10},
		"zero height": {10, 0},
		"both zero":   {0, 0},
		"negative":    {-4, 8},
	}
	for name, d := range table {
		if _, err := NewKernel(d.width, d.height); errors.Cause(err) != ErrInvalidDimensions {
			t.Errorf("%s: NewKernel(%d,%d) error = %v, want ErrInvalidDimensions",
				name, d.width, d.height, err)
		}
	}

	if _, err := NewKernel(64, 64); err != nil {
		t.Errorf("NewKernel(64,64) unexpected error: %v", err)
	}
}

func TestAccessorsOutOfBounds(t *testing.T) {
	k := mustKernel(t, 10, 10)

	var table = map[string]struct{ x, y int }{
		"negative x": {-1, 0},
		"negative y": {0, -1},
		"x at width": {10, 0},
		"y past end": {3, 11},
	}
	for name, c := range table {
		if err := k.Set(c.x, c.y, true); errors.Cause(err) != ErrOutOfBounds {
			t.Errorf("%s: Set error = %v, want ErrOutOfBounds", name, err)
		}
		if _, err := k.Get(c.x, c.y); errors.Cause(err) != ErrOutOfBounds {
			t.Errorf("%s: Get error = %v, want ErrOutOfBounds", name, err)
		}
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	k := mustKernel(t, 100, 20)

	// Positions chosen to land on word-edge payload bits as well as
	// interior ones.
	cells := []struct{ x, y int }{{0, 0}, {61, 3}, {62, 3}, {63, 3}, {99, 19}, {50, 10}}
	for _, c := range cells {
		mustSet(t, k, c.x, c.y, true)
		alive, err := k.Get(c.x, c.y)
		if err != nil {
			t.Fatalf("Get(%d,%d): %v", c.x, c.y, err)
		}
		if !alive {
			t.Errorf("cell (%d,%d) not alive after Set", c.x, c.y)
		}

		mustSet(t, k, c.x, c.y, false)
		if alive, _ = k.Get(c.x, c.y); alive {
			t.Errorf("cell (%d,%d) still alive after clearing", c.x, c.y)
		}
	}
}

func TestBlockStillLife(t *testing.T) {
	k := mustKernel(t, 20, 20)
	if err := AddBlock(k, 8, 8); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	want := k.Checksum()

	for i := 0; i < 10; i++ {
		k.Advance()
		if got := k.Checksum(); got != want {
			t.Fatalf("block changed after %d generations: checksum %016x, want %016x", i+1, got, want)
		}
	}
	if pop := k.Population(); pop != 4 {
		t.Errorf("block population = %d, want 4", pop)
	}
}

func TestBlinkerPeriodTwo(t *testing.T) {
	k := mustKernel(t, 16, 16)
	if err := AddBlinker(k, 5, 5); err != nil {
		t.Fatalf("AddBlinker: %v", err)
	}
	horizontal := k.Checksum()

	k.Advance()
	vertical := k.Checksum()
	if vertical == horizontal {
		t.Fatal("blinker did not change after one generation")
	}
	for _, c := range []struct{ x, y int }{{6, 4}, {6, 5}, {6, 6}} {
		if !k.Cell(c.x, c.y) {
			t.Errorf("vertical phase missing cell (%d,%d)", c.x, c.y)
		}
	}

	k.Advance()
	if got := k.Checksum(); got != horizontal {
		t.Errorf("blinker did not return to original phase: checksum %016x, want %016x", got, horizontal)
	}
}

// A blinker centered on the last payload bit of the first word exercises the
// halo bits on both sides of the word boundary.
func TestBlinkerAcrossWordBoundary(t *testing.T) {
	k := mustKernel(t, 124, 9)
	if err := AddBlinker(k, 60, 4); err != nil { // cells at x=60,61,62
		t.Fatalf("AddBlinker: %v", err)
	}

	k.Advance()
	for _, c := range []struct{ x, y int }{{61, 3}, {61, 4}, {61, 5}} {
		if !k.Cell(c.x, c.y) {
			t.Errorf("vertical phase missing cell (%d,%d)", c.x, c.y)
		}
	}
	if pop := k.Population(); pop != 3 {
		t.Errorf("population after one generation = %d, want 3", pop)
	}

	k.Advance()
	for _, c := range []struct{ x, y int }{{60, 4}, {61, 4}, {62, 4}} {
		if !k.Cell(c.x, c.y) {
			t.Errorf("horizontal phase missing cell (%d,%d)", c.x, c.y)
		}
	}
}

func TestDeadBorder(t *testing.T) {
	// A lone corner cell has no neighbors and dies; nothing wraps around
	// from the far edges.
	k := mustKernel(t, 8, 8)
	mustSet(t, k, 0, 0, true)
	mustSet(t, k, 7, 7, true)
	k.Advance()
	if k.Population() != 0 {
		t.Error("isolated corner cells survived; border is not dead")
	}

	// A corner block is a still life even with two of its sides on the
	// border.
	k = mustKernel(t, 8, 8)
	if err := AddBlock(k, 0, 0); err != nil {
		t.Fatalf("AddBlock: %v", err)
	}
	k.Advance()
	for _, c := range []struct{ x, y int }{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if !k.Cell(c.x, c.y) {
			t.Errorf("corner block lost cell (%d,%d)", c.x, c.y)
		}
	}
}

// A row of live cells along the right edge of a partially filled final word
// must not pick up neighbors from the unused padding bits.
func TestPartialFinalWord(t *testing.T) {
	const width, height = 100, 12

	k := mustKernel(t, width, height)
	ref := NewReference(width, height)
	for y := 3; y <= 8; y++ {
		mustSet(t, k, width-1, y, true)
		mustSet(t, ref, width-1, y, true)
	}

	for generation := 1; generation <= 3; generation++ {
		k.Advance()
		ref = ref.NextGeneration()
		assertMatchesReference(t, k, ref, generation)
	}
}

func TestChecksumDeterminism(t *testing.T) {
	const seed, density = 1234, 0.25

	a := mustKernel(t, 90, 40)
	b := mustKernel(t, 90, 40)
	if err := Randomize(a, rand.New(rand.NewSource(seed)), density); err != nil {
		t.Fatalf("Randomize: %v", err)
	}
	if err := Randomize(b, rand.New(rand.NewSource(seed)), density); err != nil {
		t.Fatalf("Randomize: %v", err)
	}

	for generation := 0; generation < 20; generation++ {
		if a.Checksum() != b.Checksum() {
			t.Fatalf("checksums diverged at generation %d: %016x vs %016x",
				generation, a.Checksum(), b.Checksum())
		}
		a.Advance()
		b.Advance()
	}
}

func TestChecksumIsOrderSensitive(t *testing.T) {
	a := mustKernel(t, 10, 10)
	b := mustKernel(t, 10, 10)
	mustSet(t, a, 2, 1, true)
	mustSet(t, b, 1, 2, true)
	if a.Checksum() == b.Checksum() {
		t.Error("transposed states produced equal checksums")
	}
}

func TestPopulationMatchesReference(t *testing.T) {
	k := mustKernel(t, 77, 21)
	ref := NewReference(77, 21)
	seedBoth(t, k, ref, 99, 0.4)

	if k.Population() != ref.Population() {
		t.Errorf("population = %d, reference counts %d", k.Population(), ref.Population())
	}
}

func benchmarkAdvance(b *testing.B, width, height int) {
	k, err := NewKernel(width, height)
	if err != nil {
		b.Fatalf("NewKernel: %v", err)
	}
	if err = Randomize(k, rand.New(rand.NewSource(42)), 0.3); err != nil {
		b.Fatalf("Randomize: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		k.Advance()
	}
}

func BenchmarkAdvance256(b *testing.B)  { benchmarkAdvance(b, 256, 256) }
func BenchmarkAdvance1024(b *testing.B) { benchmarkAdvance(b, 1024, 1024) }
func BenchmarkAdvance4096(b *testing.B) { benchmarkAdvance(b, 4096, 4096) }
