package mem

import (
	"math"
	"unsafe"
)

// maxAllocSize is the largest block size any allocator in this package will
// accept. Capping at MaxInt keeps every block addressable as a Go slice.
const maxAllocSize = uintptr(math.MaxInt)

// Layout describes the shape of a memory block: its size in bytes and its
// required alignment. Align is always a power of two and at least 1.
//
// The zero Layout (size 0, align 0) is invalid. Construct layouts with
// LayoutOf or NewLayout; both guarantee the invariants above.
type Layout struct {
	Size  uintptr
	Align uintptr
}

// LayoutOf returns the Layout for a single value of type T.
func LayoutOf[T any]() Layout {
	var v T
	return Layout{Size: unsafe.Sizeof(v), Align: unsafe.Alignof(v)}
}

// NewLayout builds a Layout from an explicit size and alignment. It returns a
// *LayoutError when align is not a power of two, or when size rounded up to
// align would not fit in the address space.
func NewLayout(size, align uintptr) (Layout, error) {
	if align == 0 || align&(align-1) != 0 {
		return Layout{}, &LayoutError{}
	}
	padded, ok := addChecked(size, align-1)
	if !ok || padded&^(align-1) > maxAllocSize {
		return Layout{}, &LayoutError{}
	}
	return Layout{Size: size, Align: align}, nil
}

// Array returns the Layout for n contiguous values with this layout. It
// returns a *LayoutError when n is negative or size*n overflows.
func (l Layout) Array(n int) (Layout, error) {
	if n < 0 {
		return Layout{}, &LayoutError{}
	}
	total, ok := mulChecked(l.Size, uintptr(n))
	if !ok {
		return Layout{}, &LayoutError{}
	}
	return NewLayout(total, l.Align)
}

// PaddedSize returns Size rounded up to the next multiple of Align. Valid
// layouts never overflow here; NewLayout rejects the ones that would.
func (l Layout) PaddedSize() uintptr {
	return (l.Size + l.Align - 1) &^ (l.Align - 1)
}

// addChecked adds a and b, returning ok = false when the result would wrap.
func addChecked(a, b uintptr) (uintptr, bool) {
	sum := a + b
	if sum < a {
		return 0, false
	}
	return sum, true
}

// mulChecked multiplies a and b, returning ok = false when the result would
// wrap. This is essential for elementSize * capacity calculations.
func mulChecked(a, b uintptr) (uintptr, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	prod := a * b
	if prod/a != b {
		return 0, false
	}
	return prod, true
}

// layoutForCap computes the block layout backing n slots of type T.
func layoutForCap[T any](n int) (Layout, error) {
	return LayoutOf[T]().Array(n)
}
