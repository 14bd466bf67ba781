// Package sysalloc obtains raw, zeroed memory blocks from the platform,
// outside the Go heap. On unix it maps anonymous pages; elsewhere it falls
// back to pinned Go-heap buffers. Callers are expected to be a single owner
// per block; nothing here synchronizes.
package sysalloc

import "os"

var pageSize = uintptr(os.Getpagesize())

// PageSize returns the platform page size. Blocks from Alloc are at least
// page-aligned on unix.
func PageSize() uintptr { return pageSize }

// pageCeil rounds n up to a whole number of pages.
func pageCeil(n uintptr) uintptr {
	return (n + pageSize - 1) &^ (pageSize - 1)
}
