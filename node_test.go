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
	"testing"
)

// TestBranchIdx checks the bit-packing of branch indices: bit layer-1 of
// each coordinate, first axis most significant.
func TestBranchIdx(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim2D)
	node := cache.GetEmptyNode(1)
	cases := []struct {
		pos  [2]int64
		want int
	}{
		{[2]int64{0, 0}, 0},
		{[2]int64{0, 1}, 1},
		{[2]int64{1, 0}, 2},
		{[2]int64{1, 1}, 3},
	}
	for _, tc := range cases {
		if got := node.branchIdx(BigVecOf(tc.pos[0], tc.pos[1])); got != tc.want {
			t.Fatalf("branchIdx(%v) = %d, want %d", tc.pos, got, tc.want)
		}
		if got := node.branchIdxLocal(IVec{int(tc.pos[0]), int(tc.pos[1])}); got != tc.want {
			t.Fatalf("branchIdxLocal(%v) = %d, want %d", tc.pos, got, tc.want)
		}
	}

	// At layer 2, bit 1 selects the branch.
	layer2 := cache.GetEmptyNode(2)
	if got := layer2.branchIdx(BigVecOf(2, 1)); got != 2 {
		t.Fatalf("layer-2 branchIdx(2,1) = %d, want 2", got)
	}
	// Negative coordinates use their two's complement bits, so -1 has
	// every bit set.
	if got := layer2.branchIdx(BigVecOf(-1, -2)); got != 3 {
		t.Fatalf("layer-2 branchIdx(-1,-2) = %d, want 3", got)
	}
}

func TestBranchOffset(t *testing.T) {
	t.Parallel()

	// For a layer-3 node in 2D, branch bits map to offsets of 4.
	cases := []struct {
		idx  int
		want IVec
	}{
		{0, IVec{0, 0}},
		{1, IVec{0, 4}},
		{2, IVec{4, 0}},
		{3, IVec{4, 4}},
	}
	for _, tc := range cases {
		if got := branchOffsetAtLayer(Dim2D, 3, tc.idx); !got.Eq(tc.want) {
			t.Fatalf("branchOffsetAtLayer(3, %d) = %v, want %v", tc.idx, got, tc.want)
		}
	}
}

func TestNodeRect(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim3D)
	node := cache.GetEmptyNode(4)
	rect := node.Rect()
	if !rect.Min().Eq(IVec{0, 0, 0}) || !rect.Max().Eq(IVec{15, 15, 15}) {
		t.Fatalf("layer-4 node rect = %v", rect)
	}
	if node.Len() != 16 {
		t.Fatalf("layer-4 node len = %d", node.Len())
	}
}

// TestExpandCenteredGeometry checks that every branch lands in the
// opposite corner of its new intermediate node.
func TestExpandCenteredGeometry(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim2D)
	source := cache.GetNode(leafBranches(Dim2D, 1, 2, 3, 4))
	expanded := source.ExpandCentered()

	if expanded.Layer() != source.Layer()+1 {
		t.Fatalf("expected layer %d, got %d", source.Layer()+1, expanded.Layer())
	}
	if expanded.Population().Cmp(source.Population()) != 0 {
		t.Fatalf("expansion changed population")
	}
	mask := Dim2D.Branches() - 1
	for i, b := range expanded.Branches() {
		inner := b.(*Node)
		for j, leaf := range inner.Branches() {
			want := Cell(0)
			if j == i^mask {
				want = Cell(i + 1)
			}
			if got := leaf.(Leaf); got != Leaf(want) {
				t.Fatalf("intermediate %d branch %d = %d, want %d", i, j, got, want)
			}
		}
	}
}

// TestInnerNodeInvertsExpansion checks the node-level half of the
// expand/contract identity.
func TestInnerNodeInvertsExpansion(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim3D)
	source := cache.GetNode(leafBranches(Dim3D, 0, 7, 0, 0, 9, 0, 0, 1))
	if inner := source.ExpandCentered().innerNode(); inner != source {
		t.Fatalf("inner node of expansion is not the source: %v != %v", inner, source)
	}
}

func TestGetSubtree(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim2D)
	node := cache.GetSmallNodeFromCellFn(3, Origin[int](Dim2D), func(pos IVec) Cell {
		return Cell(pos[X]*8 + pos[Y])
	})

	// An aligned subtree delegates to a single branch.
	aligned := node.GetSubtree(2, IVec{4, 0})
	for pos := range aligned.Rect().Iter() {
		want := Cell((pos[X]+4)*8 + pos[Y])
		if got := aligned.cellAt(AsBigVec(pos)); got != want {
			t.Fatalf("aligned subtree cell %v = %d, want %d", pos, got, want)
		}
	}

	// An unaligned subtree is reassembled across branches.
	offset := IVec{3, 5}
	sub := node.GetSubtree(1, offset)
	for pos := range sub.Rect().Iter() {
		want := Cell((pos[X]+offset[X])*8 + (pos[Y] + offset[Y]))
		if got := sub.cellAt(AsBigVec(pos)); got != want {
			t.Fatalf("subtree cell %v = %d, want %d", pos, got, want)
		}
	}

	// The whole node is its own subtree.
	if got := node.GetSubtree(3, IVec{0, 0}); got != node {
		t.Fatal("identity subtree is not the node itself")
	}

	// Out-of-bounds requests are programming errors.
	defer func() {
		if recover() == nil {
			t.Fatal("expected out-of-bounds subtree to panic")
		}
	}()
	node.GetSubtree(2, IVec{5, 0})
}

func TestNodeEqual(t *testing.T) {
	t.Parallel()

	// Two caches so that equal structures are distinct pointers.
	a := NewNodeCache(Dim2D).GetNode(leafBranches(Dim2D, 1, 2, 3, 4))
	b := NewNodeCache(Dim2D).GetNode(leafBranches(Dim2D, 1, 2, 3, 4))
	c := NewNodeCache(Dim2D).GetNode(leafBranches(Dim2D, 4, 3, 2, 1))

	if a == b {
		t.Fatal("separate caches returned the same pointer")
	}
	if !a.Equal(b) {
		t.Fatal("equal structures compared unequal")
	}
	if a.HashCode() != b.HashCode() {
		t.Fatal("equal structures hashed differently")
	}
	if a.Equal(c) {
		t.Fatal("distinct structures compared equal")
	}
}

func TestNodeNonDefaultCells(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim1D)
	node := cache.GetSmallNodeFromCellFn(2, Origin[int](Dim1D), func(pos IVec) Cell {
		if pos[X] == 2 {
			return 5
		}
		return 0
	})
	cells := node.NonDefaultCells(BigVecOf(100))
	if len(cells) != 1 || !cells[0].Eq(BigVecOf(102)) {
		t.Fatalf("expected one cell at (102), got %v", cells)
	}
}
