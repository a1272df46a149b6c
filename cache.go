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
	"fmt"
	"math/big"
	"slices"
	"weak"

	"github.com/rs/zerolog"
)

// NodeCache is the interning pool for tree nodes. Nodes are held through
// weak pointers keyed by structural hash, so dropping the last tree that
// references a node lets the garbage collector reclaim it; dead entries
// are pruned lazily on the next access to their bucket. Empty nodes are
// additionally held through strong references, one per layer, and never
// evicted.
//
// A cache and the trees sharing it must be used from a single goroutine.
type NodeCache struct {
	dim     Dim
	nodes   map[uint64][]weak.Pointer[Node]
	empty   []*Node
	logger  zerolog.Logger
	metrics *CacheMetrics
}

// NewNodeCache returns an empty cache for trees of the given
// dimensionality.
func NewNodeCache(dim Dim) *NodeCache {
	dim.check()
	return &NodeCache{
		dim:    dim,
		nodes:  make(map[uint64][]weak.Pointer[Node]),
		logger: zerolog.Nop(),
	}
}

// Dim returns the dimensionality of nodes in this cache.
func (c *NodeCache) Dim() Dim {
	return c.dim
}

// SetLogger routes sweep diagnostics to the given logger. The default is
// a no-op logger.
func (c *NodeCache) SetLogger(logger zerolog.Logger) {
	c.logger = logger
}

// SetMetrics attaches interning counters to the cache. Pass nil to
// detach.
func (c *NodeCache) SetMetrics(m *CacheMetrics) {
	c.metrics = m
}

// GetNode returns the interned node with the given branches, creating it
// if no equivalent node is live. The branch count must be 2^d and all
// branches must share a layer; violations are programming errors and
// panic. GetNode is idempotent: equal inputs return the same pointer.
func (c *NodeCache) GetNode(branches []Branch) *Node {
	if len(branches) != c.dim.Branches() {
		panic(fmt.Sprintf("node of %d dimensions must have %d branches; got %d",
			c.dim.NDim(), c.dim.Branches(), len(branches)))
	}
	layer := branches[0].Layer() + 1
	for _, b := range branches[1:] {
		if b.Layer() != layer-1 {
			panic(fmt.Sprintf("node branches have different layers: %v", branches))
		}
	}

	hash := hashNode(layer, branches)
	bucket := c.nodes[hash]
	live := bucket[:0]
	var found *Node
	for _, wp := range bucket {
		nd := wp.Value()
		if nd == nil {
			continue
		}
		live = append(live, wp)
		if found == nil && nd.layer == layer && branchesEqual(nd.branches, branches) {
			found = nd
		}
	}
	if dead := len(bucket) - len(live); dead > 0 {
		c.logger.Debug().Int("dead", dead).Uint64("hash", hash).Msg("pruned dead node cache entries")
		if c.metrics != nil {
			c.metrics.SweptEntries.Add(float64(dead))
		}
	}

	if found != nil {
		if len(live) != len(bucket) {
			c.nodes[hash] = live
		}
		if c.metrics != nil {
			c.metrics.Hits.Inc()
		}
		return found
	}

	pop := new(big.Int)
	for _, b := range branches {
		pop.Add(pop, b.population())
	}
	node := &Node{
		layer:    layer,
		dim:      c.dim,
		branches: slices.Clone(branches),
		hash:     hash,
		pop:      pop,
		cache:    c,
	}
	c.nodes[hash] = append(live, weak.Make(node))
	if c.metrics != nil {
		c.metrics.Misses.Inc()
	}
	return node
}

// GetEmptyNode returns the memoized all-default node at the given layer,
// populating every lower layer on the way. Layer 0 has no node form and
// panics.
func (c *NodeCache) GetEmptyNode(layer int) *Node {
	if layer < 1 {
		panic("cannot construct a node at layer 0")
	}
	if layer <= len(c.empty) {
		return c.empty[layer-1]
	}
	branches := make([]Branch, c.dim.Branches())
	for i := range branches {
		branches[i] = c.GetEmptyBranch(layer - 1)
	}
	ret := c.GetNode(branches)
	// The recursive GetEmptyBranch calls have filled all lower entries.
	c.empty = append(c.empty, ret)
	return ret
}

// GetEmptyBranch returns the all-default branch at the given layer: the
// default Leaf at layer 0, or the empty node otherwise.
func (c *NodeCache) GetEmptyBranch(layer int) Branch {
	if layer == 0 {
		return Leaf(0)
	}
	return c.GetEmptyNode(layer)
}

// GetNodeFromFn builds a node by calling generator once per branch index
// and interning the result.
func (c *NodeCache) GetNodeFromFn(generator func(idx int) Branch) *Node {
	branches := make([]Branch, c.dim.Branches())
	for i := range branches {
		branches[i] = generator(i)
	}
	return c.GetNode(branches)
}

// GetSmallNodeFromCellFn builds a node of the given layer whose cells
// come from generator, called with the node-local position of each cell
// plus the given offset. Positions use native integers, so this is only
// usable for relatively small nodes.
func (c *NodeCache) GetSmallNodeFromCellFn(layer int, offset IVec, generator func(IVec) Cell) *Node {
	if layer < 1 {
		panic("cannot construct a node at layer 0")
	}
	return c.GetNodeFromFn(func(idx int) Branch {
		total := offset.Add(branchOffsetAtLayer(c.dim, layer, idx))
		if layer == 1 {
			return Leaf(generator(total))
		}
		return c.GetSmallNodeFromCellFn(layer-1, total, generator)
	})
}

// NodeCount reports the number of live interned nodes, pruning dead
// entries along the way.
func (c *NodeCache) NodeCount() int {
	count := 0
	for hash, bucket := range c.nodes {
		live := bucket[:0]
		for _, wp := range bucket {
			if wp.Value() != nil {
				live = append(live, wp)
			}
		}
		if dead := len(bucket) - len(live); dead > 0 && c.metrics != nil {
			c.metrics.SweptEntries.Add(float64(dead))
		}
		switch {
		case len(live) == 0:
			delete(c.nodes, hash)
		case len(live) != len(bucket):
			c.nodes[hash] = live
		}
		count += len(live)
	}
	return count
}
