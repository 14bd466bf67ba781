//go:build unix

package sysalloc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// Alloc maps a zeroed, private, anonymous region of at least size bytes whose
// start satisfies align (a power of two). size must be non-zero. The region
// must be released with Free using the same size and align.
func Alloc(size, align uintptr) (unsafe.Pointer, error) {
	if size == 0 {
		panic("sysalloc: zero-size request")
	}
	if align <= pageSize {
		// mmap is always page-aligned, which covers any smaller alignment.
		return mmapAnon(pageCeil(size))
	}
	return allocOveraligned(size, align)
}

// allocOveraligned over-maps by align, then trims the head and tail so the
// kept region starts exactly on an align boundary. Trimming keeps Free
// uniform: every block is released as munmap(ptr, pageCeil(size)).
func allocOveraligned(size, align uintptr) (unsafe.Pointer, error) {
	kept := pageCeil(size)
	total := kept + align
	p, err := mmapAnon(total)
	if err != nil {
		return nil, err
	}
	base := uintptr(p)
	head := ((base + align - 1) &^ (align - 1)) - base
	if head > 0 {
		_ = unix.MunmapPtr(p, head)
	}
	if tail := total - head - kept; tail > 0 {
		_ = unix.MunmapPtr(unsafe.Add(p, head+kept), tail)
	}
	return unsafe.Add(p, head), nil
}

func mmapAnon(length uintptr) (unsafe.Pointer, error) {
	p, err := unix.MmapPtr(-1, 0, nil, length,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("sysalloc: mmap %d bytes: %w", length, err)
	}
	return p, nil
}

// Free unmaps a block obtained from Alloc. munmap failure is not reported;
// release paths never fail outwardly.
func Free(ptr unsafe.Pointer, size, align uintptr) {
	_ = unix.MunmapPtr(ptr, pageCeil(size))
}
