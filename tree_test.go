// This is free and unencumbered software released into the public domain.
//
// Anyone is free to copy, modify, publish, use, compile, sell, or
// distribute this software, either in source code form or as a compiled
// binary, for any purpose, commercial or non-commercial, and by any
// means.
//
// In jurisdictions that recognize copyright laws, the author or authors
// of this software dedicate any and all copyright interest in the
// software to the public domain. We make this dedication for the benefit
// of the public at large and to the detriment of our heirs and
// successors. We intend this dedication to be an overt act of
// relinquishment in perpetuity of all present and future rights to this
// software under copyright law.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND,
// EXPRESS OR IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF
// MERCHANTABILITY, FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.
// IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY CLAIM, DAMAGES OR
// OTHER LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE,
// ARISING FROM, OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR
// OTHER DEALINGS IN THE SOFTWARE.
//
// For more information, please refer to <https://unlicense.org>

package ndcell

import (
	"math/big"
	mRand "math/rand/v2"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// gliderCells is a 3x3 glider anchored at (10,12), as decoded from the
// RLE test pattern.
var gliderCells = [][2]int64{
	{11, 14},
	{12, 13},
	{10, 12},
	{11, 12},
	{12, 12},
}

func setGlider(t *Tree) *Tree {
	for _, c := range gliderCells {
		t = t.SetCell(BigVecOf(c[0], c[1]), 1)
	}
	return t
}

func TestSetGetSingleCell(t *testing.T) {
	t.Parallel()

	tree := NewTree(Dim2D)
	pos := BigVecOf(3, -5)
	tree = tree.SetCell(pos, 7)
	if got := tree.GetCell(pos); got != 7 {
		t.Fatalf("expected state 7 at %v, got %d", pos, got)
	}
	if pop := tree.Population(); pop.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected population 1, got %v", pop)
	}
}

func TestSetDoesNotDisturbOthers(t *testing.T) {
	t.Parallel()

	tree := NewTree(Dim2D)
	p := BigVecOf(2, 2)
	q := BigVecOf(-7, 13)
	tree = tree.SetCell(q, 9)
	before := tree.GetCell(q)
	tree = tree.SetCell(p, 3)
	if got := tree.GetCell(q); got != before {
		t.Fatalf("setting %v changed the cell at %v: %d != %d", p, q, got, before)
	}
}

func TestOldHandleSeesOldState(t *testing.T) {
	t.Parallel()

	pos := BigVecOf(0, 0)
	old := NewTree(Dim2D)
	updated := old.SetCell(pos, 5)
	if got := old.GetCell(pos); got != 0 {
		t.Fatalf("old handle observed the write: got %d", got)
	}
	if got := updated.GetCell(pos); got != 5 {
		t.Fatalf("new handle missed the write: got %d", got)
	}
}

// TestRandomSetGet compares the tree against a plain map under a random
// workload of writes and reads, in 3 dimensions.
func TestRandomSetGet(t *testing.T) {
	t.Parallel()

	rng := mRand.New(mRand.NewPCG(0xdecade, 0xce11))
	randPos := func() [3]int64 {
		return [3]int64{
			rng.Int64N(101) - 50,
			rng.Int64N(101) - 50,
			rng.Int64N(101) - 50,
		}
	}

	tree := NewTree(Dim3D)
	expected := make(map[[3]int64]Cell)
	for i := 0; i < 500; i++ {
		pos := randPos()
		state := Cell(rng.UintN(256))
		expected[pos] = state
		tree = tree.SetCell(BigVecOf(pos[0], pos[1], pos[2]), state)
	}
	for i := 0; i < 500; i++ {
		pos := randPos()
		got := tree.GetCell(BigVecOf(pos[0], pos[1], pos[2]))
		if got != expected[pos] {
			t.Fatalf("cell %v: expected %d, got %d\nwrites: %s",
				pos, expected[pos], got, spew.Sdump(expected))
		}
	}

	pop := big.NewInt(0)
	for _, state := range expected {
		if state != 0 {
			pop.Add(pop, big.NewInt(1))
		}
	}
	if got := tree.Population(); got.Cmp(pop) != 0 {
		t.Fatalf("expected population %v, got %v", pop, got)
	}
}

// TestLargeCoordinate writes a single cell near 10^18 and checks that the
// tree grows enough layers to cover it.
func TestLargeCoordinate(t *testing.T) {
	t.Parallel()

	far := big.NewInt(0)
	far.SetString("1000000000000000000", 10)
	pos := BigVec{new(big.Int).Set(far), new(big.Int).Neg(far)}

	tree := NewTree(Dim2D)
	tree = tree.SetCell(pos, 7)

	if got := tree.GetCell(pos); got != 7 {
		t.Fatalf("expected state 7 at %v, got %d", pos, got)
	}
	if got := tree.GetCell(BigOrigin(Dim2D)); got != 0 {
		t.Fatalf("expected empty origin, got %d", got)
	}
	if pop := tree.Population(); pop.Cmp(big.NewInt(1)) != 0 {
		t.Fatalf("expected population 1, got %v", pop)
	}
	// ceil(log2(10^18)) == 60, so at least layer 61 is needed for the
	// origin-centered root to reach the cell.
	if tree.Root().Layer() < 61 {
		t.Fatalf("root layer %d cannot cover %v", tree.Root().Layer(), pos)
	}
}

// TestGrowthPreservesCells checks that expanding the root never moves or
// loses cells.
func TestGrowthPreservesCells(t *testing.T) {
	t.Parallel()

	tree := setGlider(NewTree(Dim2D))
	before := tree.Population()

	// Force growth far beyond the glider.
	grown := tree.ExpandToFit(BigVecOf(1<<20, -(1 << 20)))
	if grown.Root().Layer() <= tree.Root().Layer() {
		t.Fatal("expected the root to grow")
	}
	if pop := grown.Population(); pop.Cmp(before) != 0 {
		t.Fatalf("growth changed population: %v != %v", pop, before)
	}
	for _, c := range gliderCells {
		if got := grown.GetCell(BigVecOf(c[0], c[1])); got != 1 {
			t.Fatalf("growth lost the cell at %v", c)
		}
	}
}

// TestPopulationSums checks that a node's population is the sum of its
// branches' populations, and that a leaf counts 1 for any non-default
// state.
func TestPopulationSums(t *testing.T) {
	t.Parallel()

	tree := setGlider(NewTree(Dim2D))
	tree = tree.SetCell(BigVecOf(-100, 3), 200)

	var check func(n *Node)
	check = func(n *Node) {
		sum := new(big.Int)
		for _, b := range n.Branches() {
			switch b := b.(type) {
			case Leaf:
				one := big.NewInt(0)
				if b != 0 {
					one.SetInt64(1)
				}
				sum.Add(sum, one)
			case *Node:
				sum.Add(sum, b.Population())
				check(b)
			}
		}
		if n.Population().Cmp(sum) != 0 {
			t.Fatalf("node at layer %d has population %v, branches sum to %v",
				n.Layer(), n.Population(), sum)
		}
	}
	check(tree.Root())
}

// TestStructuralSharing builds the same glider twice from scratch on one
// cache and expects pointer-equal roots.
func TestStructuralSharing(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim2D)
	a := setGlider(NewTreeWithCache(cache))
	b := setGlider(NewTreeWithCache(cache))
	if a.Root() != b.Root() {
		t.Fatal("identical trees did not intern to the same root node")
	}
}

// TestSetCellSequencePointerEqual checks that any identical sequence of
// writes against a shared cache converges on the same interned root.
func TestSetCellSequencePointerEqual(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim3D)
	build := func() *Tree {
		tree := NewTreeWithCache(cache)
		tree = tree.SetCell(BigVecOf(1, -2, 3), 17)
		tree = tree.SetCell(BigVecOf(-4, 5, -6), 34)
		tree = tree.SetCell(BigVecOf(1, -2, 3), 0)
		return tree
	}
	if build().Root() != build().Root() {
		t.Fatal("identical write sequences produced distinct roots")
	}
}

// TestExpandContractIdentity wraps a tree in one expansion and contracts
// it back, expecting the original root pointer.
func TestExpandContractIdentity(t *testing.T) {
	t.Parallel()

	// Straddle the origin so the root cannot contract below its current
	// layer.
	tree := NewTree(Dim2D)
	tree = tree.SetCell(BigVecOf(-1, -1), 1)
	tree = tree.SetCell(BigVecOf(1, 1), 2)
	tree = tree.Contract()

	root := tree.Root()
	contracted := root.ExpandCentered().ContractCentered()
	if contracted != root {
		t.Fatalf("expand+contract changed the root: %v != %v", contracted, root)
	}
}

func TestContractKeepsCells(t *testing.T) {
	t.Parallel()

	tree := setGlider(NewTree(Dim2D))
	grown := tree.ExpandToFit(BigVecOf(1<<30, 1<<30))
	shrunk := grown.Contract()
	if shrunk.Root().Layer() >= grown.Root().Layer() {
		t.Fatal("expected contraction to shrink the root")
	}
	for _, c := range gliderCells {
		if got := shrunk.GetCell(BigVecOf(c[0], c[1])); got != 1 {
			t.Fatalf("contraction lost the cell at %v", c)
		}
	}
	if pop := shrunk.Population(); pop.Cmp(tree.Population()) != 0 {
		t.Fatalf("contraction changed population: %v", pop)
	}
}

func TestGetCellOutsideRoot(t *testing.T) {
	t.Parallel()

	tree := NewTree(Dim2D)
	if got := tree.GetCell(BigVecOf(1<<40, 0)); got != 0 {
		t.Fatalf("expected default state outside the root, got %d", got)
	}
}

func TestNonDefaultCells(t *testing.T) {
	t.Parallel()

	tree := setGlider(NewTree(Dim2D))
	cells := tree.NonDefaultCells()
	if len(cells) != len(gliderCells) {
		t.Fatalf("expected %d cells, got %d: %v", len(gliderCells), len(cells), cells)
	}
	for _, want := range gliderCells {
		found := false
		for _, got := range cells {
			if got.Eq(BigVecOf(want[0], want[1])) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing cell %v in %v", want, cells)
		}
	}
}

func BenchmarkSetCell(b *testing.B) {
	tree := NewTree(Dim2D)
	rng := mRand.New(mRand.NewPCG(1, 2))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos := BigVecOf(rng.Int64N(1<<16)-1<<15, rng.Int64N(1<<16)-1<<15)
		tree = tree.SetCell(pos, Cell(i))
	}
}
