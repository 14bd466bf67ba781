package mem

import (
	"sync/atomic"
	"unsafe"
)

// CountingAllocator wraps another Allocator and counts backend calls and live
// bytes. It exists for tests and diagnostics: wrapping an owning type's
// allocator makes it observable that zero-size requests never reach the
// backend at all.
//
// Counters use atomics so a shared instance can be read while another
// goroutine allocates; the wrapped backend's own concurrency contract is
// unchanged.
type CountingAllocator struct {
	Backend Allocator // nil means System

	allocs    atomic.Int64
	reallocs  atomic.Int64
	deallocs  atomic.Int64
	liveBytes atomic.Int64
}

// CountingStats is a point-in-time snapshot of a CountingAllocator.
type CountingStats struct {
	Allocs    int64
	Reallocs  int64
	Deallocs  int64
	LiveBytes int64
}

func (c *CountingAllocator) backend() Allocator {
	if c.Backend != nil {
		return c.Backend
	}
	return System
}

func (c *CountingAllocator) Alloc(layout Layout) (unsafe.Pointer, error) {
	p, err := c.backend().Alloc(layout)
	if err != nil {
		return nil, err
	}
	c.allocs.Add(1)
	c.liveBytes.Add(int64(layout.Size))
	return p, nil
}

func (c *CountingAllocator) AllocZeroed(layout Layout) (unsafe.Pointer, error) {
	p, err := c.backend().AllocZeroed(layout)
	if err != nil {
		return nil, err
	}
	c.allocs.Add(1)
	c.liveBytes.Add(int64(layout.Size))
	return p, nil
}

func (c *CountingAllocator) Realloc(ptr unsafe.Pointer, old Layout, newSize uintptr) (unsafe.Pointer, error) {
	p, err := c.backend().Realloc(ptr, old, newSize)
	if err != nil {
		return nil, err
	}
	c.reallocs.Add(1)
	c.liveBytes.Add(int64(newSize) - int64(old.Size))
	return p, nil
}

func (c *CountingAllocator) Dealloc(ptr unsafe.Pointer, layout Layout) {
	c.backend().Dealloc(ptr, layout)
	c.deallocs.Add(1)
	c.liveBytes.Add(-int64(layout.Size))
}

// Stats returns a snapshot of the counters.
func (c *CountingAllocator) Stats() CountingStats {
	return CountingStats{
		Allocs:    c.allocs.Load(),
		Reallocs:  c.reallocs.Load(),
		Deallocs:  c.deallocs.Load(),
		LiveBytes: c.liveBytes.Load(),
	}
}

var _ Allocator = (*CountingAllocator)(nil)
