package mem

import (
	"unsafe"

	"github.com/joshuapare/memkit/internal/sysalloc"
)

// System is the default allocation policy: blocks come straight from the
// platform page allocator with no policy applied on release.
var System Allocator = SystemAllocator{}

// SystemAllocator satisfies allocation requests with page-backed memory from
// internal/sysalloc. Fresh blocks arrive zeroed (the platform hands out
// zeroed pages), but released memory is returned to the platform as-is.
type SystemAllocator struct{}

func (SystemAllocator) Alloc(layout Layout) (unsafe.Pointer, error) {
	if layout.Size == 0 {
		return Placeholder(), nil
	}
	p, err := sysalloc.Alloc(layout.Size, layout.Align)
	if err != nil {
		return nil, &AllocError{Layout: layout}
	}
	return p, nil
}

func (a SystemAllocator) AllocZeroed(layout Layout) (unsafe.Pointer, error) {
	// Fresh pages are already zero.
	return a.Alloc(layout)
}

// Realloc always allocates, copies, and frees: the page allocator has no
// portable in-place grow.
func (a SystemAllocator) Realloc(ptr unsafe.Pointer, old Layout, newSize uintptr) (unsafe.Pointer, error) {
	newLayout, err := NewLayout(newSize, old.Align)
	if err != nil {
		return nil, err
	}
	if newLayout.Size == 0 {
		a.Dealloc(ptr, old)
		return Placeholder(), nil
	}
	p, err := a.Alloc(newLayout)
	if err != nil {
		return nil, err
	}
	if old.Size > 0 {
		n := min(old.Size, newSize)
		copy(unsafe.Slice((*byte)(p), n), unsafe.Slice((*byte)(ptr), n))
	}
	a.Dealloc(ptr, old)
	return p, nil
}

func (SystemAllocator) Dealloc(ptr unsafe.Pointer, layout Layout) {
	if layout.Size == 0 || ptr == Placeholder() {
		return
	}
	sysalloc.Free(ptr, layout.Size, layout.Align)
}

var _ Allocator = SystemAllocator{}
