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
	"slices"
)

// Tree is a sparse infinite grid of cells stored as a rooted interned
// node. The root always covers the hypercube centered on the origin: the
// low half of each axis holds negative coordinates, the high half holds
// non-negative ones.
//
// Edits are functional: SetCell returns a new Tree and leaves the old
// handle valid, observing the grid as it was. All trees descending from a
// common root share one NodeCache, so identical subtrees anywhere share
// one interned node.
type Tree struct {
	root  *Node
	cache *NodeCache
}

// NewTree returns an empty tree of the given dimensionality with a fresh
// cache.
func NewTree(dim Dim) *Tree {
	return NewTreeWithCache(NewNodeCache(dim))
}

// NewTreeWithCache returns an empty tree interning its nodes in the given
// cache. Trees sharing a cache share structure.
func NewTreeWithCache(cache *NodeCache) *Tree {
	return &Tree{root: cache.GetEmptyNode(1), cache: cache}
}

// Dim returns the dimensionality of the tree.
func (t *Tree) Dim() Dim {
	return t.cache.dim
}

// Root returns the interned root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Cache returns the node cache shared by this tree and its ancestors.
func (t *Tree) Cache() *NodeCache {
	return t.cache
}

// Population returns the number of non-default cells in the tree.
func (t *Tree) Population() *big.Int {
	return t.root.Population()
}

// IsEmpty reports whether the tree holds only default cells.
func (t *Tree) IsEmpty() bool {
	return t.root.IsEmpty()
}

// Rect returns the hypercube currently covered by the root:
// [-2^(L-1), 2^(L-1)) along each axis.
func (t *Tree) Rect() BigRect {
	half := new(big.Int).Lsh(bigOne, uint(t.root.layer-1))
	return BigRect{
		Start: BigRepeat(t.Dim(), new(big.Int).Neg(half)),
		Size:  BigRepeat(t.Dim(), new(big.Int).Lsh(half, 1)),
	}
}

// Contains reports whether the given position lies inside the root's
// hypercube. Positions outside simply hold the default state.
func (t *Tree) Contains(pos BigVec) bool {
	return nodeContainsCentered(t.root, pos)
}

// rootBranchIdx computes the root's branch index for a position. The
// root is origin-centered, so the raw index is XOR-ed with the bitmask:
// coordinates with a set sign bit must sort below the positive ones.
func rootBranchIdx(root *Node, pos BigVec) int {
	return root.branchIdx(pos) ^ (root.dim.Branches() - 1)
}

// GetCell returns the cell state at the given position. Positions outside
// the root return the default state.
func (t *Tree) GetCell(pos BigVec) Cell {
	t.checkDim(pos)
	if !t.Contains(pos) {
		return 0
	}
	switch b := t.root.branches[rootBranchIdx(t.root, pos)].(type) {
	case Leaf:
		return Cell(b)
	case *Node:
		return b.cellAt(pos)
	default:
		panic("unreachable")
	}
}

// SetCell returns a new tree with the cell at the given position set to
// the given state, growing the root as needed to cover the position. The
// receiver is unchanged, and the two trees share all untouched structure.
func (t *Tree) SetCell(pos BigVec, state Cell) *Tree {
	root := t.expandedRoot(pos)
	newBranches := slices.Clone(root.branches)
	i := rootBranchIdx(root, pos)
	switch b := newBranches[i].(type) {
	case Leaf:
		newBranches[i] = Leaf(state)
	case *Node:
		newBranches[i] = b.setCell(pos, state)
	}
	return &Tree{root: t.cache.GetNode(newBranches), cache: t.cache}
}

// ExpandToFit returns a tree whose root covers the given position,
// doubling by ExpandCentered steps as needed.
func (t *Tree) ExpandToFit(pos BigVec) *Tree {
	root := t.expandedRoot(pos)
	if root == t.root {
		return t
	}
	return &Tree{root: root, cache: t.cache}
}

func (t *Tree) expandedRoot(pos BigVec) *Node {
	t.checkDim(pos)
	root := t.root
	for !nodeContainsCentered(root, pos) {
		root = root.ExpandCentered()
	}
	return root
}

func nodeContainsCentered(root *Node, pos BigVec) bool {
	half := new(big.Int).Lsh(bigOne, uint(root.layer-1))
	negHalf := new(big.Int).Neg(half)
	for _, c := range pos {
		if c.Cmp(negHalf) < 0 || c.Cmp(half) >= 0 {
			return false
		}
	}
	return true
}

// Contract returns a tree with the root shrunk as far as possible without
// losing non-default cells.
func (t *Tree) Contract() *Tree {
	root := t.root.ContractCentered()
	if root == t.root {
		return t
	}
	return &Tree{root: root, cache: t.cache}
}

// NonDefaultCells returns the positions of every non-default cell.
func (t *Tree) NonDefaultCells() []BigVec {
	half := new(big.Int).Lsh(bigOne, uint(t.root.layer-1))
	offset := BigRepeat(t.Dim(), new(big.Int).Neg(half))
	return t.root.NonDefaultCells(offset)
}

func (t *Tree) checkDim(pos BigVec) {
	if len(pos) != t.Dim().NDim() {
		panic("position dimension does not match tree")
	}
}
