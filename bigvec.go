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
	"strings"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// BigVec is a vector of arbitrary-precision integer coordinates, used for
// pattern positions since the tree grows unboundedly. Operations never
// alias their operands; the components of a returned vector are always
// freshly allocated.
type BigVec []*big.Int

// BigOrigin returns the all-zero BigVec of the given dimensionality.
func BigOrigin(d Dim) BigVec {
	ret := make(BigVec, d.NDim())
	for i := range ret {
		ret[i] = new(big.Int)
	}
	return ret
}

// BigVecOf builds a BigVec from int64 components. Most callers want the
// 2-D form, e.g. BigVecOf(3, -5).
func BigVecOf(components ...int64) BigVec {
	ret := make(BigVec, len(components))
	for i, c := range components {
		ret[i] = big.NewInt(c)
	}
	return ret
}

// BigRepeat returns the vector with every component set to value.
func BigRepeat(d Dim, value *big.Int) BigVec {
	ret := make(BigVec, d.NDim())
	for i := range ret {
		ret[i] = new(big.Int).Set(value)
	}
	return ret
}

// BigUnit returns the unit vector along the given axis.
func BigUnit(d Dim, ax Axis) BigVec {
	ret := BigOrigin(d)
	ret[ax].SetInt64(1)
	return ret
}

// Dim returns the dimension count of the vector.
func (v BigVec) Dim() Dim {
	return Dim(len(v))
}

// Clone returns a deep copy of the vector.
func (v BigVec) Clone() BigVec {
	ret := make(BigVec, len(v))
	for i, c := range v {
		ret[i] = new(big.Int).Set(c)
	}
	return ret
}

// IsZero reports whether every component is zero.
func (v BigVec) IsZero() bool {
	for _, c := range v {
		if c.Sign() != 0 {
			return false
		}
	}
	return true
}

// Eq reports component-wise equality.
func (v BigVec) Eq(other BigVec) bool {
	v.checkDim(other)
	for i := range v {
		if v[i].Cmp(other[i]) != 0 {
			return false
		}
	}
	return true
}

// Add returns the component-wise sum of v and other.
func (v BigVec) Add(other BigVec) BigVec {
	v.checkDim(other)
	ret := make(BigVec, len(v))
	for i := range v {
		ret[i] = new(big.Int).Add(v[i], other[i])
	}
	return ret
}

// Sub returns the component-wise difference of v and other.
func (v BigVec) Sub(other BigVec) BigVec {
	v.checkDim(other)
	ret := make(BigVec, len(v))
	for i := range v {
		ret[i] = new(big.Int).Sub(v[i], other[i])
	}
	return ret
}

// Neg returns the component-wise negation.
func (v BigVec) Neg() BigVec {
	ret := make(BigVec, len(v))
	for i := range v {
		ret[i] = new(big.Int).Neg(v[i])
	}
	return ret
}

// MulScalar multiplies every component by s.
func (v BigVec) MulScalar(s *big.Int) BigVec {
	ret := make(BigVec, len(v))
	for i := range v {
		ret[i] = new(big.Int).Mul(v[i], s)
	}
	return ret
}

// Min returns the component-wise minimum of the two vectors.
func (v BigVec) Min(other BigVec) BigVec {
	v.checkDim(other)
	ret := make(BigVec, len(v))
	for i := range v {
		c := v[i]
		if other[i].Cmp(c) < 0 {
			c = other[i]
		}
		ret[i] = new(big.Int).Set(c)
	}
	return ret
}

// Max returns the component-wise maximum of the two vectors.
func (v BigVec) Max(other BigVec) BigVec {
	v.checkDim(other)
	ret := make(BigVec, len(v))
	for i := range v {
		c := v[i]
		if other[i].Cmp(c) > 0 {
			c = other[i]
		}
		ret[i] = new(big.Int).Set(c)
	}
	return ret
}

// Sum adds together all components.
func (v BigVec) Sum() *big.Int {
	ret := new(big.Int)
	for _, c := range v {
		ret.Add(ret, c)
	}
	return ret
}

// Product multiplies together all components.
func (v BigVec) Product() *big.Int {
	ret := big.NewInt(1)
	for _, c := range v {
		ret.Mul(ret, c)
	}
	return ret
}

// ToIVec converts to an IVec, panicking when any component is outside the
// native int range.
func (v BigVec) ToIVec() IVec {
	ret := make(IVec, len(v))
	for i, c := range v {
		if !c.IsInt64() || c.Int64() > math.MaxInt || c.Int64() < math.MinInt {
			panic(fmt.Sprintf("cannot convert such a large BigVec into an IVec: %v", v))
		}
		ret[i] = int(c.Int64())
	}
	return ret
}

// ToFVec converts to an FVec, panicking when a component is outside the
// finite float64 range.
func (v BigVec) ToFVec() FVec {
	ret := make(FVec, len(v))
	for i, c := range v {
		f, _ := new(big.Float).SetInt(c).Float64()
		if math.IsInf(f, 0) {
			panic(fmt.Sprintf("cannot convert such a large BigVec into an FVec: %v", v))
		}
		ret[i] = f
	}
	return ret
}

func (v BigVec) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, c := range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(c.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (v BigVec) checkDim(other BigVec) {
	if len(v) != len(other) {
		panic(fmt.Sprintf("mismatched vector dimensions %d and %d", len(v), len(other)))
	}
}
