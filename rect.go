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
	"iter"
	"math"
	"math/big"
)

// IntNum is the set of machine integer types usable as rectangle
// coordinates.
type IntNum interface {
	~int | ~uint
}

// NdRect is an axis-aligned hyperrectangle over integer vectors, stored as
// a start corner and a per-axis size. Every size component is at least 1,
// so bounds are inclusive on both ends.
type NdRect[N IntNum] struct {
	Start NdVec[N]
	Size  NdVec[N]
}

// IRect is a hyperrectangle with native signed coordinates.
type IRect = NdRect[int]

// URect is a hyperrectangle with non-negative coordinates.
type URect = NdRect[uint]

// NewRect builds a rectangle from a start corner and a size, panicking if
// any size component is below 1.
func NewRect[N IntNum](start, size NdVec[N]) NdRect[N] {
	start.checkDim(size)
	for _, c := range size {
		if c < 1 {
			panic(fmt.Sprintf("rectangle size %v must be positive", size))
		}
	}
	return NdRect[N]{Start: start, Size: size}
}

// Span builds the smallest rectangle containing both corners, in either
// order.
func Span[N IntNum](a, b NdVec[N]) NdRect[N] {
	lo := a.Min(b)
	hi := a.Max(b)
	return NdRect[N]{Start: lo, Size: hi.Sub(lo).AddScalar(1)}
}

// Dim returns the dimension count of the rectangle.
func (r NdRect[N]) Dim() Dim {
	return r.Start.Dim()
}

// Min returns the most negative corner.
func (r NdRect[N]) Min() NdVec[N] {
	return r.Start.Clone()
}

// Max returns the most positive corner (inclusive).
func (r NdRect[N]) Max() NdVec[N] {
	return r.Start.Add(r.Size).SubScalar(1)
}

// Count returns the number of integer positions inside the rectangle.
func (r NdRect[N]) Count() N {
	return r.Size.Product()
}

// Contains reports whether the given position is inside the rectangle.
func (r NdRect[N]) Contains(pos NdVec[N]) bool {
	mx := r.Max()
	for i := range pos {
		if pos[i] < r.Start[i] || pos[i] > mx[i] {
			return false
		}
	}
	return true
}

// ContainsRect reports whether other lies entirely inside the rectangle.
func (r NdRect[N]) ContainsRect(other NdRect[N]) bool {
	return r.Contains(other.Min()) && r.Contains(other.Max())
}

// Intersection returns the overlap of the two rectangles, or false when
// they do not intersect.
func (r NdRect[N]) Intersection(other NdRect[N]) (NdRect[N], bool) {
	lo := r.Min().Max(other.Min())
	hi := r.Max().Min(other.Max())
	for i := range lo {
		if lo[i] > hi[i] {
			return NdRect[N]{}, false
		}
	}
	return Span(lo, hi), true
}

// Translate returns the rectangle moved by the given offset.
func (r NdRect[N]) Translate(offset NdVec[N]) NdRect[N] {
	return NdRect[N]{Start: r.Start.Add(offset), Size: r.Size.Clone()}
}

// Scale multiplies the start corner and the size by s, panicking for
// non-positive s.
func (r NdRect[N]) Scale(s N) NdRect[N] {
	if s < 1 {
		panic("cannot scale a rectangle by a non-positive value")
	}
	return NdRect[N]{Start: r.Start.MulScalar(s), Size: r.Size.MulScalar(s)}
}

// DivOutward returns the smallest rectangle containing r/k: the minimum
// corner is rounded toward negative infinity and the maximum toward
// positive infinity. k must be positive.
func (r NdRect[N]) DivOutward(k N) NdRect[N] {
	if k < 1 {
		panic("cannot divide a rectangle by a non-positive value")
	}
	lo := r.Min().Map(func(_ Axis, c N) N { return floorDiv(c, k) })
	hi := r.Max().Map(func(_ Axis, c N) N { return ceilDiv(c, k) })
	return Span(lo, hi)
}

// Iter yields every integer position inside the rectangle in lexicographic
// order with the first axis varying fastest, matching the flattening order
// of NdArray.
func (r NdRect[N]) Iter() iter.Seq[NdVec[N]] {
	return func(yield func(NdVec[N]) bool) {
		pos := r.Start.Clone()
		for {
			if !yield(pos.Clone()) {
				return
			}
			var i int
			for i = 0; i < len(pos); i++ {
				pos[i]++
				if pos[i] < r.Start[i]+r.Size[i] {
					break
				}
				pos[i] = r.Start[i]
			}
			if i == len(pos) {
				return
			}
		}
	}
}

func (r NdRect[N]) String() string {
	return fmt.Sprintf("[%v..%v]", r.Min(), r.Max())
}

func floorDiv[N IntNum](a, b N) N {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func ceilDiv[N IntNum](a, b N) N {
	q := a / b
	if a%b != 0 && (a < 0) == (b < 0) {
		q++
	}
	return q
}

// BigRect is an axis-aligned hyperrectangle over arbitrary-precision
// vectors, with the same inclusive-bound conventions as NdRect.
type BigRect struct {
	Start BigVec
	Size  BigVec
}

// NewBigRect builds a rectangle from a start corner and a size, panicking
// if any size component is below 1.
func NewBigRect(start, size BigVec) BigRect {
	start.checkDim(size)
	for _, c := range size {
		if c.Sign() < 1 {
			panic(fmt.Sprintf("rectangle size %v must be positive", size))
		}
	}
	return BigRect{Start: start.Clone(), Size: size.Clone()}
}

// BigSpan builds the smallest rectangle containing both corners, in either
// order.
func BigSpan(a, b BigVec) BigRect {
	lo := a.Min(b)
	hi := a.Max(b)
	size := hi.Sub(lo)
	for _, c := range size {
		c.Add(c, bigOne)
	}
	return BigRect{Start: lo, Size: size}
}

// Dim returns the dimension count of the rectangle.
func (r BigRect) Dim() Dim {
	return r.Start.Dim()
}

// Min returns the most negative corner.
func (r BigRect) Min() BigVec {
	return r.Start.Clone()
}

// Max returns the most positive corner (inclusive).
func (r BigRect) Max() BigVec {
	ret := r.Start.Add(r.Size)
	for _, c := range ret {
		c.Sub(c, bigOne)
	}
	return ret
}

// Count returns the number of integer positions inside the rectangle.
func (r BigRect) Count() *big.Int {
	return r.Size.Product()
}

// Contains reports whether the given position is inside the rectangle.
func (r BigRect) Contains(pos BigVec) bool {
	mx := r.Max()
	for i := range pos {
		if pos[i].Cmp(r.Start[i]) < 0 || pos[i].Cmp(mx[i]) > 0 {
			return false
		}
	}
	return true
}

// ContainsRect reports whether other lies entirely inside the rectangle.
func (r BigRect) ContainsRect(other BigRect) bool {
	return r.Contains(other.Min()) && r.Contains(other.Max())
}

// Intersection returns the overlap of the two rectangles, or false when
// they do not intersect.
func (r BigRect) Intersection(other BigRect) (BigRect, bool) {
	lo := r.Min().Max(other.Min())
	hi := r.Max().Min(other.Max())
	for i := range lo {
		if lo[i].Cmp(hi[i]) > 0 {
			return BigRect{}, false
		}
	}
	return BigSpan(lo, hi), true
}

// Translate returns the rectangle moved by the given offset.
func (r BigRect) Translate(offset BigVec) BigRect {
	return BigRect{Start: r.Start.Add(offset), Size: r.Size.Clone()}
}

// DivOutward returns the smallest rectangle containing r/k. k must be
// positive.
func (r BigRect) DivOutward(k *big.Int) BigRect {
	if k.Sign() < 1 {
		panic("cannot divide a rectangle by a non-positive value")
	}
	kMinusOne := new(big.Int).Sub(k, bigOne)
	lo := r.Min()
	for _, c := range lo {
		c.Div(c, k)
	}
	hi := r.Max()
	for _, c := range hi {
		c.Div(c.Add(c, kMinusOne), k)
	}
	return BigSpan(lo, hi)
}

func (r BigRect) String() string {
	return fmt.Sprintf("[%v..%v]", r.Min(), r.Max())
}

// FRect is an axis-aligned hyperrectangle over finite real vectors. Unlike
// the integer rectangles, a size component may be zero, and the maximum
// corner is start+size.
type FRect struct {
	Start FVec
	Size  FVec
}

// NewFRect builds a rectangle from a start corner and a size, panicking on
// negative or non-finite sizes.
func NewFRect(start, size FVec) FRect {
	start.checkDim(size)
	for _, c := range size {
		if c < 0 || math.IsNaN(c) || math.IsInf(c, 0) {
			panic(fmt.Sprintf("rectangle size %v must be non-negative and finite", size))
		}
	}
	return FRect{Start: start.Clone(), Size: size.Clone()}
}

// FSpan builds the smallest rectangle containing both corners, in either
// order.
func FSpan(a, b FVec) FRect {
	lo := a.Min(b)
	return FRect{Start: lo, Size: a.Max(b).Sub(lo)}
}

// Min returns the most negative corner.
func (r FRect) Min() FVec {
	return r.Start.Clone()
}

// Max returns the most positive corner.
func (r FRect) Max() FVec {
	return r.Start.Add(r.Size)
}

// Contains reports whether the given position is inside the closed
// rectangle.
func (r FRect) Contains(pos FVec) bool {
	mx := r.Max()
	for i := range pos {
		if pos[i] < r.Start[i] || pos[i] > mx[i] {
			return false
		}
	}
	return true
}

// Translate returns the rectangle moved by the given offset.
func (r FRect) Translate(offset FVec) FRect {
	return FRect{Start: r.Start.Add(offset), Size: r.Size.Clone()}
}

// Scale multiplies both corners by s, panicking for non-positive s.
func (r FRect) Scale(s float64) FRect {
	if s <= 0 || math.IsNaN(s) || math.IsInf(s, 0) {
		panic("cannot scale a rectangle by a non-positive value")
	}
	return FRect{Start: r.Start.MulScalar(s), Size: r.Size.MulScalar(s)}
}
