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

import "fmt"

// Axis is one of the six named grid directions, zero-indexed.
type Axis uint8

const (
	X Axis = iota
	Y
	Z
	W
	U
	V
)

// MaxDim is the highest supported dimension count.
const MaxDim = 6

var axisNames = [MaxDim]string{"X", "Y", "Z", "W", "U", "V"}

func (ax Axis) String() string {
	if int(ax) < len(axisNames) {
		return axisNames[ax]
	}
	return fmt.Sprintf("Axis(%d)", uint8(ax))
}

// Dim is a dimension count between 1 and MaxDim. It fixes the number of
// components in every vector and the 2^d branching factor of tree nodes.
type Dim uint8

const (
	Dim1D Dim = iota + 1
	Dim2D
	Dim3D
	Dim4D
	Dim5D
	Dim6D
)

var allAxes = [MaxDim]Axis{X, Y, Z, W, U, V}

// NDim returns the dimension count as an int.
func (d Dim) NDim() int {
	return int(d)
}

// Axes returns the ordered axes of this dimensionality. The returned slice
// is shared and must not be modified.
func (d Dim) Axes() []Axis {
	d.check()
	return allAxes[:d]
}

// Branches returns the number of branches of a tree node of this
// dimensionality, which is 2^d.
func (d Dim) Branches() int {
	d.check()
	return 1 << d
}

// ChunkBits returns the number of bits in each axis of a chunk index for
// this dimensionality. Chunks are used by dense-array views of the grid,
// not by the tree itself. The value keeps a full chunk at or below 4k
// cells while remaining a power of 2 along each axis:
//
//   - 1D => 12 -> 4096
//   - 2D =>  6 -> 64^2 = 4k
//   - 3D =>  4 -> 16^3 = 4k
//   - 4D =>  3 ->  8^4 = 4k
//   - 5D =>  2 ->  4^5 = 1k
//   - 6D =>  2 ->  4^6 = 4k
func (d Dim) ChunkBits() int {
	d.check()
	return 12 / int(d)
}

// ChunkSize returns the length along one axis of a chunk of this
// dimensionality.
func (d Dim) ChunkSize() int {
	return 1 << d.ChunkBits()
}

func (d Dim) check() {
	if d < 1 || d > MaxDim {
		panic(fmt.Sprintf("invalid dimension count %d", uint8(d)))
	}
}
