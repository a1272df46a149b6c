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
	"math"
)

// NdArray is a flat dense N-dimensional array, used as a materialization
// target for small regions of the grid.
type NdArray[T any] struct {
	size UVec
	data []T
}

// NewNdArray allocates a zeroed array of the given size.
func NewNdArray[T any](size UVec) *NdArray[T] {
	count := size.Product()
	if count > math.MaxInt {
		panic(fmt.Sprintf("cannot allocate an NdArray of size %v", size))
	}
	return &NdArray[T]{size: size.Clone(), data: make([]T, count)}
}

// ArrayFromNode materializes every cell of a node into a dense array. The
// node must be small enough for its cell count to fit in memory.
func ArrayFromNode(n *Node) *NdArray[Cell] {
	d := n.Dim()
	if n.Layer() >= 63/d.NDim() {
		panic(fmt.Sprintf("cannot make NdArray from a node at layer %d", n.Layer()))
	}
	size := Repeat[uint](d, uint(n.Len()))
	ret := NewNdArray[Cell](size)
	for pos := range ret.Rect().Iter() {
		ret.Set(pos, n.cellAt(AsBigVec(pos)))
	}
	return ret
}

// Size returns the per-axis lengths of the array.
func (a *NdArray[T]) Size() UVec {
	return a.size.Clone()
}

// Count returns the total number of elements.
func (a *NdArray[T]) Count() int {
	return len(a.data)
}

// Rect returns the rectangle of valid positions, anchored at the origin.
func (a *NdArray[T]) Rect() IRect {
	return NewRect(Origin[int](a.size.Dim()), AsIVec(a.size))
}

// At returns the element at the given position.
func (a *NdArray[T]) At(pos IVec) T {
	return a.data[flattenIdx(a.size, pos)]
}

// Set stores the element at the given position.
func (a *NdArray[T]) Set(pos IVec, value T) {
	a.data[flattenIdx(a.size, pos)] = value
}

// Slice returns a view of the array translated by the given offset: the
// slice's position p reads the array's position p-offset.
func (a *NdArray[T]) Slice(offset IVec) ArraySlice[T] {
	return ArraySlice[T]{array: a, offset: offset.Clone()}
}

// ArraySlice is an offset read-only view of an NdArray.
type ArraySlice[T any] struct {
	array  *NdArray[T]
	offset IVec
}

// At returns the element at the given position in slice coordinates.
func (s ArraySlice[T]) At(pos IVec) T {
	return s.array.At(pos.Sub(s.offset))
}

// Rect returns the rectangle of valid positions in slice coordinates.
func (s ArraySlice[T]) Rect() IRect {
	return s.array.Rect().Translate(s.offset)
}

// flattenIdx converts a position into a flat array index, with the first
// axis varying fastest.
func flattenIdx(size UVec, pos IVec) int {
	if len(size) != len(pos) {
		panic(fmt.Sprintf("mismatched vector dimensions %d and %d", len(size), len(pos)))
	}
	ret := 0
	stride := 1
	for i := range pos {
		if pos[i] < 0 || uint(pos[i]) >= size[i] {
			panic(fmt.Sprintf("position %v out of bounds for size %v", pos, size))
		}
		ret += pos[i] * stride
		stride *= int(size[i])
	}
	return ret
}

// unflattenIdx converts a flat array index back into a position.
func unflattenIdx(size UVec, idx int) IVec {
	if idx < 0 || uint(idx) >= size.Product() {
		panic(fmt.Sprintf("index %d out of bounds for size %v", idx, size))
	}
	ret := Origin[int](size.Dim())
	for i := range ret {
		ret[i] = idx % int(size[i])
		idx /= int(size[i])
	}
	return ret
}
