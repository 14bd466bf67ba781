package mem

import "unsafe"

// Allocator is the raw allocation interface every backing policy implements.
//
// Implementations:
//   - SystemAllocator: page-backed blocks straight from the platform allocator
//   - ZeroAllocator: zero-fills every block on acquire and on release
//   - CountingAllocator: instrumentation wrapper counting calls and live bytes
//
// All methods operate on layouts produced by LayoutOf or NewLayout; passing a
// hand-built invalid Layout is undefined behavior. Zero-size layouts are legal
// and must be satisfied with Placeholder() without touching any backing
// storage. Allocator implementations are not safe for concurrent use unless
// documented otherwise; callers synchronize externally.
type Allocator interface {
	// Alloc obtains a block shaped by layout. The block's content is
	// unspecified unless the implementation documents otherwise.
	Alloc(layout Layout) (unsafe.Pointer, error)

	// AllocZeroed is Alloc with every byte of the block guaranteed zero.
	AllocZeroed(layout Layout) (unsafe.Pointer, error)

	// Realloc moves the block at ptr (shaped by old) to a block of newSize
	// bytes with the same alignment, preserving min(old.Size, newSize) bytes.
	// On failure the original block is untouched and remains owned by the
	// caller. A successful call releases the old block.
	Realloc(ptr unsafe.Pointer, old Layout, newSize uintptr) (unsafe.Pointer, error)

	// Dealloc releases the block at ptr, which must have been obtained from
	// this allocator with the same layout. Zero-size layouts and Placeholder
	// pointers are no-ops. Dealloc never fails.
	Dealloc(ptr unsafe.Pointer, layout Layout)
}

// zeroSized is the sentinel object backing Placeholder. uint64 keeps its
// address 8-byte aligned.
var zeroSized uint64

// Placeholder returns the non-nil, non-dereferenceable pointer this package
// uses to represent "no real allocation": every zero-size request resolves to
// it, and every owning type holds it while its block size is zero. It must
// never be read through, written through, or passed to any platform
// allocation call.
func Placeholder() unsafe.Pointer {
	return unsafe.Pointer(&zeroSized)
}

// AllocT obtains a block sized and aligned for one T from a. The pointee is
// uninitialized.
func AllocT[T any](a Allocator) (*T, error) {
	layout := LayoutOf[T]()
	if layout.Size == 0 {
		return (*T)(Placeholder()), nil
	}
	p, err := a.Alloc(layout)
	if err != nil {
		return nil, err
	}
	return (*T)(p), nil
}

// FreeT releases a block obtained from AllocT. No destructor runs.
func FreeT[T any](a Allocator, p *T) {
	layout := LayoutOf[T]()
	if layout.Size == 0 {
		return
	}
	a.Dealloc(unsafe.Pointer(p), layout)
}

// AllocSlice obtains a block sized and aligned for n contiguous Ts and
// returns it as a full-length slice view. The elements are uninitialized.
func AllocSlice[T any](a Allocator, n int) ([]T, error) {
	layout, err := layoutForCap[T](n)
	if err != nil {
		return nil, err
	}
	if layout.Size == 0 {
		return unsafe.Slice((*T)(Placeholder()), n), nil
	}
	p, err := a.Alloc(layout)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*T)(p), n), nil
}

// FreeSlice releases a block obtained from AllocSlice. The slice must carry
// its original capacity. No element destructor runs.
func FreeSlice[T any](a Allocator, s []T) {
	layout, err := layoutForCap[T](cap(s))
	if err != nil || layout.Size == 0 {
		return
	}
	a.Dealloc(unsafe.Pointer(unsafe.SliceData(s[:cap(s)])), layout)
}

// zeroRegion overwrites n bytes at p with zeros.
func zeroRegion(p unsafe.Pointer, n uintptr) {
	clear(unsafe.Slice((*byte)(p), n))
}
