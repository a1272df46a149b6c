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
	"math/big"
)

// VecNum is the set of machine number types usable as vector components.
// Arbitrary-precision coordinates use BigVec instead.
type VecNum interface {
	~int | ~uint | ~float64
}

// NdVec is a vector with one component per axis. The dimension count is
// the slice length. Operations never modify their receiver; they return
// fresh vectors.
type NdVec[N VecNum] []N

// IVec holds native signed coordinates, used for positions local to a
// single tree node.
type IVec = NdVec[int]

// UVec holds non-negative values, used for sizes and indices.
type UVec = NdVec[uint]

// FVec holds finite real coordinates, used by viewport code. An FVec must
// never hold NaN or an infinity; use NewFVec to enforce this.
type FVec = NdVec[float64]

// Origin returns the all-zero vector of the given dimensionality.
func Origin[N VecNum](d Dim) NdVec[N] {
	return make(NdVec[N], d.NDim())
}

// Unit returns the unit vector along the given axis.
func Unit[N VecNum](d Dim, ax Axis) NdVec[N] {
	ret := Origin[N](d)
	ret[ax] = 1
	return ret
}

// Repeat returns the vector with every component equal to value.
func Repeat[N VecNum](d Dim, value N) NdVec[N] {
	ret := make(NdVec[N], d.NDim())
	for i := range ret {
		ret[i] = value
	}
	return ret
}

// VecFromFn builds a vector by calling generator once per axis.
func VecFromFn[N VecNum](d Dim, generator func(Axis) N) NdVec[N] {
	ret := make(NdVec[N], d.NDim())
	for _, ax := range d.Axes() {
		ret[ax] = generator(ax)
	}
	return ret
}

// NewFVec builds an FVec from the given components, panicking if any of
// them is NaN or infinite.
func NewFVec(components ...float64) FVec {
	for _, c := range components {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			panic(fmt.Sprintf("non-finite FVec component %v", c))
		}
	}
	ret := make(FVec, len(components))
	copy(ret, components)
	return ret
}

// Dim returns the dimension count of the vector.
func (v NdVec[N]) Dim() Dim {
	return Dim(len(v))
}

// Clone returns a copy of the vector.
func (v NdVec[N]) Clone() NdVec[N] {
	ret := make(NdVec[N], len(v))
	copy(ret, v)
	return ret
}

// IsZero reports whether every component is zero.
func (v NdVec[N]) IsZero() bool {
	for _, c := range v {
		if c != 0 {
			return false
		}
	}
	return true
}

// Eq reports component-wise equality.
func (v NdVec[N]) Eq(other NdVec[N]) bool {
	v.checkDim(other)
	for i := range v {
		if v[i] != other[i] {
			return false
		}
	}
	return true
}

// Map applies f to each component, returning a new vector.
func (v NdVec[N]) Map(f func(Axis, N) N) NdVec[N] {
	ret := make(NdVec[N], len(v))
	for i := range v {
		ret[i] = f(Axis(i), v[i])
	}
	return ret
}

// Add returns the component-wise sum of v and other.
func (v NdVec[N]) Add(other NdVec[N]) NdVec[N] {
	v.checkDim(other)
	return v.Map(func(ax Axis, c N) N { return c + other[ax] })
}

// Sub returns the component-wise difference of v and other.
func (v NdVec[N]) Sub(other NdVec[N]) NdVec[N] {
	v.checkDim(other)
	return v.Map(func(ax Axis, c N) N { return c - other[ax] })
}

// Mul returns the component-wise product of v and other.
func (v NdVec[N]) Mul(other NdVec[N]) NdVec[N] {
	v.checkDim(other)
	return v.Map(func(ax Axis, c N) N { return c * other[ax] })
}

// Div returns the component-wise quotient of v and other. Integer
// division truncates toward zero; any zero component in other panics.
func (v NdVec[N]) Div(other NdVec[N]) NdVec[N] {
	v.checkDim(other)
	return v.Map(func(ax Axis, c N) N {
		if other[ax] == 0 {
			panic("vector division by zero")
		}
		return c / other[ax]
	})
}

// AddScalar adds s to every component.
func (v NdVec[N]) AddScalar(s N) NdVec[N] {
	return v.Map(func(_ Axis, c N) N { return c + s })
}

// SubScalar subtracts s from every component.
func (v NdVec[N]) SubScalar(s N) NdVec[N] {
	return v.Map(func(_ Axis, c N) N { return c - s })
}

// MulScalar multiplies every component by s.
func (v NdVec[N]) MulScalar(s N) NdVec[N] {
	return v.Map(func(_ Axis, c N) N { return c * s })
}

// DivScalar divides every component by s. Integer division truncates
// toward zero; dividing by zero panics.
func (v NdVec[N]) DivScalar(s N) NdVec[N] {
	if s == 0 {
		panic("vector division by zero")
	}
	return v.Map(func(_ Axis, c N) N { return c / s })
}

// Neg returns the component-wise negation.
func (v NdVec[N]) Neg() NdVec[N] {
	zero := Origin[N](v.Dim())
	return zero.Sub(v)
}

// Min returns the component-wise minimum of the two vectors.
func (v NdVec[N]) Min(other NdVec[N]) NdVec[N] {
	v.checkDim(other)
	return v.Map(func(ax Axis, c N) N { return min(c, other[ax]) })
}

// Max returns the component-wise maximum of the two vectors.
func (v NdVec[N]) Max(other NdVec[N]) NdVec[N] {
	v.checkDim(other)
	return v.Map(func(ax Axis, c N) N { return max(c, other[ax]) })
}

// Sum adds together all components.
func (v NdVec[N]) Sum() N {
	var ret N
	for _, c := range v {
		ret += c
	}
	return ret
}

// Product multiplies together all components.
func (v NdVec[N]) Product() N {
	var ret N = 1
	for _, c := range v {
		ret *= c
	}
	return ret
}

func (v NdVec[N]) String() string {
	s := "("
	for i, c := range v {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprint(c)
	}
	return s + ")"
}

func (v NdVec[N]) checkDim(other NdVec[N]) {
	if len(v) != len(other) {
		panic(fmt.Sprintf("mismatched vector dimensions %d and %d", len(v), len(other)))
	}
}

// AsUVec converts an IVec to a UVec, panicking on negative components.
func AsUVec(v IVec) UVec {
	return VecFromFn(v.Dim(), func(ax Axis) uint {
		if v[ax] < 0 {
			panic(fmt.Sprintf("cannot convert %v into a UVec", v))
		}
		return uint(v[ax])
	})
}

// AsIVec converts a UVec to an IVec, panicking on overflow.
func AsIVec(v UVec) IVec {
	return VecFromFn(v.Dim(), func(ax Axis) int {
		if v[ax] > math.MaxInt {
			panic(fmt.Sprintf("cannot convert %v into an IVec", v))
		}
		return int(v[ax])
	})
}

// AsFVec converts an IVec to an FVec. Components beyond 2^53 lose
// precision but remain finite.
func AsFVec(v IVec) FVec {
	return VecFromFn(v.Dim(), func(ax Axis) float64 { return float64(v[ax]) })
}

// AsBigVec converts an IVec to a BigVec.
func AsBigVec(v IVec) BigVec {
	ret := make(BigVec, len(v))
	for i, c := range v {
		ret[i] = big.NewInt(int64(c))
	}
	return ret
}
