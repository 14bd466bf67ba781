package mem

import "unsafe"

// dropCounter counts Drop invocations through a shared cell so copies made
// by Decompose still tick the same counter.
type dropCounter struct {
	drops *int
}

func (d *dropCounter) Drop() { *d.drops++ }

// recordingBackend delegates to System but defers the real release: freed
// blocks stay mapped and readable so tests can inspect what a policy left
// behind in them. Call reclaim when done.
type recordingBackend struct {
	freed []recordedBlock
}

type recordedBlock struct {
	ptr    unsafe.Pointer
	layout Layout
}

func (r *recordingBackend) Alloc(layout Layout) (unsafe.Pointer, error) {
	return System.Alloc(layout)
}

func (r *recordingBackend) AllocZeroed(layout Layout) (unsafe.Pointer, error) {
	return System.AllocZeroed(layout)
}

func (r *recordingBackend) Realloc(ptr unsafe.Pointer, old Layout, newSize uintptr) (unsafe.Pointer, error) {
	newLayout, err := NewLayout(newSize, old.Align)
	if err != nil {
		return nil, err
	}
	p, err := r.Alloc(newLayout)
	if err != nil {
		return nil, err
	}
	n := min(old.Size, newSize)
	copy(unsafe.Slice((*byte)(p), n), unsafe.Slice((*byte)(ptr), n))
	r.Dealloc(ptr, old)
	return p, nil
}

func (r *recordingBackend) Dealloc(ptr unsafe.Pointer, layout Layout) {
	r.freed = append(r.freed, recordedBlock{ptr: ptr, layout: layout})
}

func (r *recordingBackend) reclaim() {
	for _, b := range r.freed {
		System.Dealloc(b.ptr, b.layout)
	}
	r.freed = nil
}

// dirtyBackend hands out blocks pre-filled with a non-zero pattern, proving
// that a policy's zero-on-acquire does real work rather than inheriting
// fresh-page zeroing.
type dirtyBackend struct{}

func (dirtyBackend) Alloc(layout Layout) (unsafe.Pointer, error) {
	p, err := System.Alloc(layout)
	if err != nil {
		return nil, err
	}
	b := unsafe.Slice((*byte)(p), layout.Size)
	for i := range b {
		b[i] = 0xAA
	}
	return p, nil
}

func (d dirtyBackend) AllocZeroed(layout Layout) (unsafe.Pointer, error) {
	// Deliberately dirty: simulates a backend with no zero guarantee.
	return d.Alloc(layout)
}

func (d dirtyBackend) Realloc(ptr unsafe.Pointer, old Layout, newSize uintptr) (unsafe.Pointer, error) {
	newLayout, err := NewLayout(newSize, old.Align)
	if err != nil {
		return nil, err
	}
	p, err := d.Alloc(newLayout)
	if err != nil {
		return nil, err
	}
	n := min(old.Size, newSize)
	copy(unsafe.Slice((*byte)(p), n), unsafe.Slice((*byte)(ptr), n))
	d.Dealloc(ptr, old)
	return p, nil
}

func (dirtyBackend) Dealloc(ptr unsafe.Pointer, layout Layout) {
	System.Dealloc(ptr, layout)
}
