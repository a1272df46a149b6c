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

import "testing"

// TestFlattenUnflattenIdx checks that flattenIdx and unflattenIdx are
// inverses and never leave the valid range.
func TestFlattenUnflattenIdx(t *testing.T) {
	t.Parallel()

	size := UVec{4, 5, 6, 7}
	rect := NewRect(Origin[int](Dim4D), AsIVec(size))
	count := rect.Count()
	for pos := range rect.Iter() {
		flat := flattenIdx(size, pos)
		if flat < 0 || flat >= count {
			t.Fatalf("index %d for %v out of range", flat, pos)
		}
		if back := unflattenIdx(size, flat); !back.Eq(pos) {
			t.Fatalf("position %v flattened to %d but unflattened to %v", pos, flat, back)
		}
	}
}

func TestNdArraySetGet(t *testing.T) {
	t.Parallel()

	arr := NewNdArray[Cell](UVec{3, 3})
	arr.Set(IVec{2, 1}, 42)
	if got := arr.At(IVec{2, 1}); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if got := arr.At(IVec{1, 2}); got != 0 {
		t.Fatalf("expected zero cell, got %d", got)
	}
	if got := arr.Count(); got != 9 {
		t.Fatalf("expected 9 elements, got %d", got)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected out-of-bounds access to panic")
		}
	}()
	arr.At(IVec{3, 0})
}

// TestArrayFromNode materializes a small node and compares every cell.
func TestArrayFromNode(t *testing.T) {
	t.Parallel()

	cache := NewNodeCache(Dim2D)
	node := cache.GetSmallNodeFromCellFn(3, Origin[int](Dim2D), func(pos IVec) Cell {
		return Cell(pos[X] ^ pos[Y])
	})
	arr := ArrayFromNode(node)
	if !arr.Size().Eq(UVec{8, 8}) {
		t.Fatalf("expected an 8x8 array, got %v", arr.Size())
	}
	for pos := range arr.Rect().Iter() {
		if got, want := arr.At(pos), Cell(pos[X]^pos[Y]); got != want {
			t.Fatalf("cell %v: expected %d, got %d", pos, want, got)
		}
	}
}

func TestArraySlice(t *testing.T) {
	t.Parallel()

	arr := NewNdArray[int](UVec{2, 2})
	arr.Set(IVec{0, 0}, 10)
	arr.Set(IVec{1, 1}, 11)

	slice := arr.Slice(IVec{-1, -1})
	if got := slice.At(IVec{-1, -1}); got != 10 {
		t.Fatalf("expected 10 at the shifted origin, got %d", got)
	}
	if got := slice.At(IVec{0, 0}); got != 11 {
		t.Fatalf("expected 11, got %d", got)
	}
	want := Span(IVec{-1, -1}, IVec{0, 0})
	got := slice.Rect()
	if !got.Min().Eq(want.Min()) || !got.Max().Eq(want.Max()) {
		t.Fatalf("expected rect %v, got %v", want, got)
	}
}
