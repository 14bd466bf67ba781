package mem

import "unsafe"

// RawBuf owns a contiguous heap block sized for a number of slots of type T.
// It tracks only that capacity, never a length: the buffer makes no claim
// about which slots hold initialized values, and it never constructs or
// destroys an element. It is the building block for dynamic containers, not
// a container itself; callers track their own occupied length.
//
// Capacity 0 means no allocation exists and the pointer is a placeholder.
// The same holds for any capacity when T is zero-sized.
//
// RawBuf is a move-only handle emulated with a consumed flag: IntoRawParts,
// IntoSlice, IntoUninit and Free all consume the handle, and any later use
// panics.
type RawBuf[T any] struct {
	ptr unsafe.Pointer // nil once consumed
	cap int
	a   Allocator
}

// NewRawBuf returns a buffer of capacity 0 backed by the System allocator.
// No allocation is performed.
func NewRawBuf[T any]() *RawBuf[T] {
	return NewRawBufIn[T](System)
}

// NewRawBufIn is NewRawBuf with an explicit backing allocator.
func NewRawBufIn[T any](a Allocator) *RawBuf[T] {
	return &RawBuf[T]{ptr: Placeholder(), cap: 0, a: a}
}

// WithCapacity returns a buffer with space for capacity slots. It panics
// with the out-of-memory convention on allocation failure, and with a layout
// panic when elementSize*capacity overflows; the two stay distinguishable.
func WithCapacity[T any](capacity int) *RawBuf[T] {
	return WithCapacityIn[T](capacity, System)
}

// WithCapacityIn is WithCapacity with an explicit backing allocator.
func WithCapacityIn[T any](capacity int, a Allocator) *RawBuf[T] {
	b, err := TryWithCapacityIn[T](capacity, a)
	if err != nil {
		handleError(err)
	}
	return b
}

// TryWithCapacity is the fallible form of WithCapacity: overflow in the
// layout computation yields a *LayoutError, a refused allocation yields a
// *AllocError. When the total byte size is zero (capacity 0 or zero-sized T)
// no allocation call is made at all.
func TryWithCapacity[T any](capacity int) (*RawBuf[T], error) {
	return TryWithCapacityIn[T](capacity, System)
}

// TryWithCapacityIn is TryWithCapacity with an explicit backing allocator.
func TryWithCapacityIn[T any](capacity int, a Allocator) (*RawBuf[T], error) {
	layout, err := layoutForCap[T](capacity)
	if err != nil {
		return nil, err
	}
	if layout.Size == 0 {
		return &RawBuf[T]{ptr: Placeholder(), cap: capacity, a: a}, nil
	}
	p, err := a.Alloc(layout)
	if err != nil {
		return nil, err
	}
	return &RawBuf[T]{ptr: p, cap: capacity, a: a}, nil
}

// Cap returns the buffer's capacity in slots: the value passed to the last
// of WithCapacity, Resize, or their variants, or 0 after NewRawBuf.
func (b *RawBuf[T]) Cap() int {
	b.check()
	return b.cap
}

// Raw returns the pointer to the first slot without giving up ownership.
func (b *RawBuf[T]) Raw() unsafe.Pointer {
	b.check()
	return b.ptr
}

// Resize is TryResize with non-fallible error handling: allocation failure
// panics with the out-of-memory convention, overflow with a layout panic.
func (b *RawBuf[T]) Resize(capacity int) {
	if err := b.TryResize(capacity); err != nil {
		handleError(err)
	}
}

// TryResize changes the capacity to capacity slots. The first
// min(old, new) slots keep their bytes; a grown region's content is
// unspecified. When the new byte size is zero the current block is released
// and the buffer becomes a placeholder. On failure the original pointer and
// capacity are completely untouched and the error is returned.
func (b *RawBuf[T]) TryResize(capacity int) error {
	b.check()
	newLayout, err := layoutForCap[T](capacity)
	if err != nil {
		return err
	}
	if newLayout.Size == 0 {
		b.release()
		b.ptr = Placeholder()
		b.cap = capacity
		return nil
	}

	// The old layout was validated when the current capacity was set.
	oldLayout, _ := layoutForCap[T](b.cap)
	var p unsafe.Pointer
	if oldLayout.Size == 0 {
		p, err = b.a.Alloc(newLayout)
	} else {
		p, err = b.a.Realloc(b.ptr, oldLayout, newLayout.Size)
	}
	if err != nil {
		return err
	}
	b.ptr = p
	b.cap = capacity
	return nil
}

// Slice reinterprets the block as a slice with length equal to the capacity.
// The buffer tracks no initialization: reading a slot the caller has not
// itself written is undefined behavior. The view is invalidated by Resize,
// Free, and every consuming operation.
func (b *RawBuf[T]) Slice() []T {
	b.check()
	return unsafe.Slice((*T)(b.ptr), b.cap)
}

// IntoRawParts consumes the buffer and transfers the block out as a
// (pointer, capacity) pair. No element is constructed or destroyed; the
// caller takes over the block.
func (b *RawBuf[T]) IntoRawParts() (unsafe.Pointer, int) {
	p := b.take()
	return p, b.cap
}

// RawBufFromParts rebuilds a buffer from a (pointer, capacity) pair produced
// by IntoRawParts, or from an externally managed block. The pointer must be
// non-nil and layout-compatible with capacity slots of T, and a must be the
// allocator the block came from (nil means System). A wrong pointer or
// capacity is undefined behavior.
func RawBufFromParts[T any](ptr unsafe.Pointer, capacity int, a Allocator) *RawBuf[T] {
	if ptr == nil {
		panic("mem: RawBufFromParts: nil pointer")
	}
	if capacity < 0 {
		panic("mem: RawBufFromParts: negative capacity")
	}
	if a == nil {
		a = System
	}
	return &RawBuf[T]{ptr: ptr, cap: capacity, a: a}
}

// IntoSlice consumes the buffer and returns it as a Go slice with the given
// length and the buffer's capacity. Only the pointer and capacity transfer;
// the buffer initialized no element, so the caller must have written the
// first length slots itself. The slice must eventually come back through
// RawBufFromSlice (or FreeSlice with the same allocator) — Go's runtime will
// not release it.
func (b *RawBuf[T]) IntoSlice(length int) []T {
	b.check()
	if length < 0 || length > b.cap {
		panic("mem: IntoSlice: length out of range")
	}
	p := b.take()
	return unsafe.Slice((*T)(p), b.cap)[:length]
}

// RawBufFromSlice adopts a slice previously produced by IntoSlice (or
// AllocSlice), keeping its full capacity. The length is discarded and no
// element is destroyed; a must be the allocator the block came from (nil
// means System). Slices backed by Go-runtime-managed arrays must not be
// passed here.
func RawBufFromSlice[T any](s []T, a Allocator) *RawBuf[T] {
	if a == nil {
		a = System
	}
	if cap(s) == 0 {
		return NewRawBufIn[T](a)
	}
	full := s[:cap(s)]
	return &RawBuf[T]{ptr: unsafe.Pointer(unsafe.SliceData(full)), cap: cap(s), a: a}
}

// IntoUninit consumes a capacity-1 buffer and reinterprets its block as an
// uninitialized single-value slot. It panics when the capacity is not
// exactly 1.
func (b *RawBuf[T]) IntoUninit() *Uninit[T] {
	b.check()
	if b.cap != 1 {
		panic("mem: IntoUninit: capacity must be 1")
	}
	return &Uninit[T]{ptr: b.take(), a: b.a}
}

// Free releases the current block, if any, and consumes the handle. No
// element destructor runs. Capacity 0 and zero-sized T never held a real
// block, so no release call is made for them.
func (b *RawBuf[T]) Free() {
	b.check()
	b.release()
	b.ptr = nil
}

// release returns the current block to the allocator when one exists.
func (b *RawBuf[T]) release() {
	layout, err := layoutForCap[T](b.cap)
	if err != nil || layout.Size == 0 {
		return
	}
	b.a.Dealloc(b.ptr, layout)
}

func (b *RawBuf[T]) check() {
	if b.ptr == nil {
		panic("mem: use of consumed RawBuf")
	}
}

// take is the single consuming path; see Uninit.take.
func (b *RawBuf[T]) take() unsafe.Pointer {
	b.check()
	p := b.ptr
	b.ptr = nil
	return p
}
