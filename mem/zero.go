package mem

import "unsafe"

// Zeroizing is the ready-to-use zero-fill policy over the system allocator.
var Zeroizing Allocator = ZeroAllocator{}

// ZeroAllocator enforces a zero-fill policy symmetrically: every byte it
// hands out is zero, and every byte handed back is zero-overwritten before
// the backing allocator sees it again. This keeps residual data from
// surviving block reuse.
//
// The policy itself is stateless. Backend selects the backing allocator; nil
// means System.
type ZeroAllocator struct {
	Backend Allocator
}

func (z ZeroAllocator) backend() Allocator {
	if z.Backend != nil {
		return z.Backend
	}
	return System
}

// Alloc obtains a zero-filled block. The backend supplies zeroed, aligned
// memory; the usable region is zeroed once more on top of that, so the
// guarantee holds even when the backend satisfied the alignment by shifting
// into an over-allocated block whose shifted window its own zero-fill did
// not cover.
func (z ZeroAllocator) Alloc(layout Layout) (unsafe.Pointer, error) {
	if layout.Size == 0 {
		return Placeholder(), nil
	}
	p, err := z.backend().AllocZeroed(layout)
	if err != nil {
		return nil, err
	}
	zeroRegion(p, layout.Size)
	return p, nil
}

// AllocZeroed carries the identical guarantee to Alloc. It exists as a
// distinct entry point so the typed interface contract holds for any
// Allocator.
func (z ZeroAllocator) AllocZeroed(layout Layout) (unsafe.Pointer, error) {
	return z.Alloc(layout)
}

// Realloc never grows in place: an in-place grow cannot guarantee the
// zero-fill invariant on newly exposed bytes. It allocates fresh (zeroed),
// copies min(old, new) bytes, and releases the old block, which zero-fills
// it on the way out.
func (z ZeroAllocator) Realloc(ptr unsafe.Pointer, old Layout, newSize uintptr) (unsafe.Pointer, error) {
	newLayout, err := NewLayout(newSize, old.Align)
	if err != nil {
		return nil, err
	}
	if newLayout.Size == 0 {
		z.Dealloc(ptr, old)
		return Placeholder(), nil
	}
	p, err := z.Alloc(newLayout)
	if err != nil {
		return nil, err
	}
	if old.Size > 0 {
		n := min(old.Size, newSize)
		copy(unsafe.Slice((*byte)(p), n), unsafe.Slice((*byte)(ptr), n))
	}
	z.Dealloc(ptr, old)
	return p, nil
}

// Dealloc zero-overwrites the entire region, then releases it through the
// backend.
func (z ZeroAllocator) Dealloc(ptr unsafe.Pointer, layout Layout) {
	if layout.Size == 0 || ptr == Placeholder() {
		return
	}
	zeroRegion(ptr, layout.Size)
	z.backend().Dealloc(ptr, layout)
}

var _ Allocator = ZeroAllocator{}
