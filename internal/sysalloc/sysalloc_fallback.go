//go:build !unix

package sysalloc

import "unsafe"

// live pins each handed-out block's backing buffer so the garbage collector
// keeps it alive until Free. Keyed by the (possibly shifted) pointer the
// caller received. Access is unsynchronized, matching the package contract
// of a single owner per allocator.
var live = make(map[unsafe.Pointer][]byte)

// Alloc carves a zeroed block of size bytes aligned to align (a power of
// two) out of a Go-heap buffer. The buffer is over-allocated by align and
// the start shifted to the next aligned address; the usable window is
// re-zeroed after the shift, keeping the zero-on-acquire contract explicit
// rather than inherited from make.
func Alloc(size, align uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		panic("sysalloc: zero-size request")
	}
	buf := make([]byte, size+align)
	base := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	off := ((base + align - 1) &^ (align - 1)) - base
	p := unsafe.Add(unsafe.Pointer(unsafe.SliceData(buf)), off)
	clear(unsafe.Slice((*byte)(p), size))
	live[p] = buf
	return p, nil
}

// Free releases a block obtained from Alloc, letting the collector reclaim
// the backing buffer.
func Free(ptr unsafe.Pointer, size, align uintptr) {
	delete(live, ptr)
}
