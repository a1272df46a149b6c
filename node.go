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
	"encoding/binary"
	"fmt"
	"math/big"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Cell is a single cell state. The zero value is the distinguished
// default ("dead") state; boolean automata use the states 0 and 1.
type Cell uint8

// Branch is one of the 2^d immediate children of a node: either a Leaf
// holding a single cell state, or an interned *Node one layer lower.
type Branch interface {
	// Layer returns the layer of the branch; a Leaf is layer 0.
	Layer() int

	// IsEmpty reports whether the branch contains only default cells.
	IsEmpty() bool

	// population returns a shared count of non-default cells. Callers
	// must treat the result as read-only.
	population() *big.Int

	hashInto(h *xxhash.Digest)
}

// Leaf is a branch holding a single cell state at layer 0.
type Leaf Cell

func (l Leaf) Layer() int {
	return 0
}

func (l Leaf) IsEmpty() bool {
	return l == 0
}

func (l Leaf) population() *big.Int {
	if l == 0 {
		return bigZero
	}
	return bigOne
}

func (l Leaf) hashInto(h *xxhash.Digest) {
	h.Write([]byte{0, byte(l)})
}

// Node is a non-leaf tree node covering a hypercube of side 2^layer. It
// stores its 2^d branches in a fixed flattening order: bit i of a branch
// index, counting from the most significant, is the branch's offset along
// axis i. Nodes are immutable after interning, are created only through
// NodeCache.GetNode, and cache their structural hash and population.
type Node struct {
	layer    int
	dim      Dim
	branches []Branch
	hash     uint64
	pop      *big.Int
	cache    *NodeCache
}

func (n *Node) Layer() int {
	return n.layer
}

func (n *Node) Dim() Dim {
	return n.dim
}

// Len returns the length of a single side of the hypercube covered by
// this node. It panics for nodes too large to address with native
// integers; such nodes can still be addressed with BigVec positions.
func (n *Node) Len() int {
	if n.layer >= 63 {
		panic(fmt.Sprintf("node at layer %d is too large to address locally", n.layer))
	}
	return 1 << n.layer
}

// Rect returns the bounding rectangle of this node placed at the origin.
func (n *Node) Rect() IRect {
	return rectAtLayer(n.dim, n.layer)
}

// rectAtLayer returns the bounding rectangle of a node at the given
// layer, with the origin as the lower bound.
func rectAtLayer(d Dim, layer int) IRect {
	if layer >= 63 {
		panic(fmt.Sprintf("node at layer %d is too large to address locally", layer))
	}
	return NewRect(Origin[int](d), Repeat(d, 1<<layer))
}

// Branches returns the branches of this node in flattening order. The
// returned slice is shared and must not be modified.
func (n *Node) Branches() []Branch {
	return n.branches
}

// HashCode returns the cached structural hash, which depends only on the
// layer and branches.
func (n *Node) HashCode() uint64 {
	return n.hash
}

// Population returns the number of non-default cells inside this node.
func (n *Node) Population() *big.Int {
	return new(big.Int).Set(n.pop)
}

func (n *Node) IsEmpty() bool {
	return n.pop.Sign() == 0
}

func (n *Node) population() *big.Int {
	return n.pop
}

func (n *Node) hashInto(h *xxhash.Digest) {
	var buf [9]byte
	buf[0] = 1
	binary.LittleEndian.PutUint64(buf[1:], n.hash)
	h.Write(buf[:])
}

func (n *Node) String() string {
	return fmt.Sprintf("Node{layer: %d, population: %v}", n.layer, n.pop)
}

// Equal reports structural equality. It short-circuits on pointer
// identity, then on the cached hashes, and only then compares branches.
func (n *Node) Equal(other *Node) bool {
	if n == other {
		return true
	}
	if n == nil || other == nil {
		return false
	}
	if n.hash != other.hash || n.layer != other.layer {
		return false
	}
	return branchesEqual(n.branches, other.branches)
}

func branchesEqual(a, b []Branch) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		switch x := a[i].(type) {
		case Leaf:
			y, ok := b[i].(Leaf)
			if !ok || x != y {
				return false
			}
		case *Node:
			y, ok := b[i].(*Node)
			if !ok || !x.Equal(y) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// hashNode computes the structural hash of a prospective node from its
// layer and branches. Child hashes stand in for child contents; hash
// collisions are resolved by deep comparison in the cache.
func hashNode(layer int, branches []Branch) uint64 {
	h := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(layer))
	h.Write(buf[:])
	for _, b := range branches {
		b.hashInto(h)
	}
	return h.Sum64()
}

// branchIdx computes the index of the branch containing the given
// position, modulo the node size. Bit layer-1 of each coordinate, in the
// two's complement sense, selects the halves; the bits are packed with
// the first axis most significant.
func (n *Node) branchIdx(pos BigVec) int {
	idx := 0
	for _, ax := range n.dim.Axes() {
		idx <<= 1
		idx |= int(pos[ax].Bit(n.layer - 1))
	}
	return idx
}

// branchIdxLocal is branchIdx for non-negative node-local coordinates.
func (n *Node) branchIdxLocal(pos IVec) int {
	idx := 0
	for _, ax := range n.dim.Axes() {
		idx <<= 1
		idx |= (pos[ax] >> (n.layer - 1)) & 1
	}
	return idx
}

// branchOffset returns the node-local spatial offset of the given branch.
func (n *Node) branchOffset(idx int) IVec {
	return branchOffsetAtLayer(n.dim, n.layer, idx)
}

// branchOffsetAtLayer returns the spatial offset of branch idx within a
// node at the given layer: half the node length along each axis whose bit
// is set in the index.
func branchOffsetAtLayer(d Dim, layer int, idx int) IVec {
	ret := Origin[int](d)
	for _, ax := range d.Axes() {
		axisBit := (idx >> (d.NDim() - 1 - int(ax))) & 1
		ret[ax] = axisBit << (layer - 1)
	}
	return ret
}

// bigBranchOffset is branchOffset without the native-integer size limit.
func (n *Node) bigBranchOffset(idx int) BigVec {
	half := new(big.Int).Lsh(bigOne, uint(n.layer-1))
	ret := BigOrigin(n.dim)
	for _, ax := range n.dim.Axes() {
		if (idx>>(n.dim.NDim()-1-int(ax)))&1 == 1 {
			ret[ax].Set(half)
		}
	}
	return ret
}

// cellAt returns the cell state at the given position, modulo the node
// size.
func (n *Node) cellAt(pos BigVec) Cell {
	switch b := n.branches[n.branchIdx(pos)].(type) {
	case Leaf:
		return Cell(b)
	case *Node:
		return b.cellAt(pos)
	default:
		panic("unreachable")
	}
}

// setCell constructs a new interned node with the cell at the given
// position, modulo the node size, set to the given state. All untouched
// branches are shared with the old node.
func (n *Node) setCell(pos BigVec, state Cell) *Node {
	newBranches := slices.Clone(n.branches)
	i := n.branchIdx(pos)
	switch b := newBranches[i].(type) {
	case Leaf:
		newBranches[i] = Leaf(state)
	case *Node:
		newBranches[i] = b.setCell(pos, state)
	}
	return n.cache.GetNode(newBranches)
}

// ExpandCentered doubles the side length of this node while preserving
// centering: branch i becomes the opposite-corner branch of a new
// intermediate node that is otherwise empty. XOR with the branch-index
// bitmask produces the opposite corner.
func (n *Node) ExpandCentered() *Node {
	mask := n.dim.Branches() - 1
	empty := n.cache.GetEmptyBranch(n.layer - 1)
	newBranches := make([]Branch, len(n.branches))
	for i, old := range n.branches {
		inner := make([]Branch, len(n.branches))
		for j := range inner {
			inner[j] = empty
		}
		inner[i^mask] = old
		newBranches[i] = n.cache.GetNode(inner)
	}
	return n.cache.GetNode(newBranches)
}

// ContractCentered shrinks this node as far as possible without losing
// non-default cells: while the concentric inner node of half the side
// length holds the entire population, it replaces the node. Contraction
// stops at layer 1.
func (n *Node) ContractCentered() *Node {
	ret := n
	for ret.layer > 1 {
		inner := ret.innerNode()
		if ret.pop.Cmp(inner.pop) != 0 {
			break
		}
		ret = inner
	}
	return ret
}

// innerNode returns the concentric subnode of half the side length.
// Branch i of the result is the opposite-corner grandchild of branch i.
func (n *Node) innerNode() *Node {
	if n.layer < 2 {
		panic(fmt.Sprintf("node at layer %d has no inner node", n.layer))
	}
	mask := n.dim.Branches() - 1
	return n.cache.GetNodeFromFn(func(i int) Branch {
		return n.branches[i].(*Node).branches[i^mask]
	})
}

// GetSubtree returns the interned subnode of the given layer whose lower
// bound is at the given node-local offset. This may be expensive when the
// offset is not a multiple of the subtree size.
func (n *Node) GetSubtree(layer int, offset IVec) *Node {
	if layer == 0 {
		panic("cannot get subtree at layer 0")
	}
	sub, ok := n.getSubtreeBranch(layer, offset).(*Node)
	if !ok {
		panic(fmt.Sprintf("requested subtree at layer %d, but got single cell", layer))
	}
	return sub
}

// getSubtreeBranch is GetSubtree generalized to return a Branch, and so
// able to return a single cell at layer 0.
func (n *Node) getSubtreeBranch(layer int, offset IVec) Branch {
	resultRect := rectAtLayer(n.dim, layer).Translate(offset)
	if !n.Rect().ContainsRect(resultRect) {
		panic(fmt.Sprintf("subtree at layer %d offset %v out of bounds for layer %d", layer, offset, n.layer))
	}
	// Same layer and in bounds means the same node.
	if layer == n.layer {
		return n
	}
	minIdx := n.branchIdxLocal(resultRect.Min())
	maxIdx := n.branchIdxLocal(resultRect.Max())
	if minIdx == maxIdx {
		// The result lies within a single branch; delegate to it.
		switch b := n.branches[minIdx].(type) {
		case Leaf:
			return b
		case *Node:
			return b.getSubtreeBranch(layer, offset.Sub(n.branchOffset(minIdx)))
		}
	}
	// The result straddles branches; divide along all of them and
	// reassemble.
	branches := make([]Branch, n.dim.Branches())
	for i := range branches {
		branches[i] = n.getSubtreeBranch(layer-1, offset.Add(branchOffsetAtLayer(n.dim, layer, i)))
	}
	return n.cache.GetNode(branches)
}

// NonDefaultCells returns the positions of every non-default cell inside
// this node, translated by the given offset.
func (n *Node) NonDefaultCells(offset BigVec) []BigVec {
	var ret []BigVec
	n.appendNonDefault(offset, &ret)
	return ret
}

func (n *Node) appendNonDefault(offset BigVec, out *[]BigVec) {
	if n.pop.Sign() == 0 {
		return
	}
	for i, b := range n.branches {
		branchOffset := offset.Add(n.bigBranchOffset(i))
		switch b := b.(type) {
		case Leaf:
			if b != 0 {
				*out = append(*out, branchOffset)
			}
		case *Node:
			b.appendNonDefault(branchOffset, out)
		}
	}
}
