package mem

import "unsafe"

// Uninit owns a heap block sized and aligned for exactly one value of type T
// whose content is unspecified. No value is considered live at its address:
// releasing an Uninit never runs a destructor, and Init must happen before
// anything reads through the block.
//
// Uninit is a move-only handle emulated with a consumed flag: Init,
// InitInPlace, IntoRaw, IntoRawBuf and Free all consume the handle, and any
// later use panics. See the package documentation for the handle discipline.
type Uninit[T any] struct {
	ptr unsafe.Pointer // nil once consumed
	a   Allocator
}

// NewUninit requests a block for one T from the System allocator. It panics
// with the out-of-memory convention if the allocation fails. Zero-size types
// get a placeholder and never touch the allocator.
func NewUninit[T any]() *Uninit[T] {
	return NewUninitIn[T](System)
}

// NewUninitIn is NewUninit with an explicit backing allocator.
func NewUninitIn[T any](a Allocator) *Uninit[T] {
	u, err := TryNewUninitIn[T](a)
	if err != nil {
		handleError(err)
	}
	return u
}

// TryNewUninit is the fallible form of NewUninit, returning a *AllocError on
// allocation failure.
func TryNewUninit[T any]() (*Uninit[T], error) {
	return TryNewUninitIn[T](System)
}

// TryNewUninitIn is TryNewUninit with an explicit backing allocator.
func TryNewUninitIn[T any](a Allocator) (*Uninit[T], error) {
	layout := LayoutOf[T]()
	if layout.Size == 0 {
		return &Uninit[T]{ptr: Placeholder(), a: a}, nil
	}
	p, err := a.Alloc(layout)
	if err != nil {
		return nil, err
	}
	return &Uninit[T]{ptr: p, a: a}, nil
}

// Init writes value into the block and reinterprets ownership as live,
// consuming the handle. No destructor runs on the prior bytes: no prior value
// exists there.
func (u *Uninit[T]) Init(value T) *Owned[T] {
	p := u.take()
	if LayoutOf[T]().Size != 0 {
		*(*T)(p) = value
	}
	return &Owned[T]{ptr: p, a: u.a}
}

// InitInPlace hands the caller a pointer into raw memory to construct the
// value through, then reinterprets ownership as live. The function must leave
// a fully valid T behind before returning; anything less is undefined
// behavior. This is the escape hatch for values too big or too awkward to
// construct by value.
func (u *Uninit[T]) InitInPlace(init func(*T)) *Owned[T] {
	p := u.take()
	init((*T)(p))
	return &Owned[T]{ptr: p, a: u.a}
}

// Raw returns the block's pointer without giving up ownership. The memory is
// uninitialized; reading a T through it before Init is undefined behavior.
func (u *Uninit[T]) Raw() unsafe.Pointer {
	u.check()
	return u.ptr
}

// IntoRaw consumes the handle and transfers the block's pointer out. The
// caller becomes responsible for releasing the block.
func (u *Uninit[T]) IntoRaw() unsafe.Pointer {
	return u.take()
}

// UninitFromRaw adopts an externally managed block as an uninitialized slot.
// The pointer must be non-nil, layout-compatible with T, and owned by nothing
// else; a must be the allocator the block came from (nil means System).
func UninitFromRaw[T any](ptr unsafe.Pointer, a Allocator) *Uninit[T] {
	if ptr == nil {
		panic("mem: UninitFromRaw: nil pointer")
	}
	if a == nil {
		a = System
	}
	return &Uninit[T]{ptr: ptr, a: a}
}

// IntoRawBuf consumes the handle and reinterprets the single-slot block as a
// raw buffer of capacity 1. No bytes move and nothing is initialized.
func (u *Uninit[T]) IntoRawBuf() *RawBuf[T] {
	return &RawBuf[T]{ptr: u.take(), cap: 1, a: u.a}
}

// Free releases the block without running any destructor and consumes the
// handle. Zero-size types never held a real block, so nothing is released.
func (u *Uninit[T]) Free() {
	p := u.take()
	layout := LayoutOf[T]()
	if layout.Size != 0 {
		u.a.Dealloc(p, layout)
	}
}

func (u *Uninit[T]) check() {
	if u.ptr == nil {
		panic("mem: use of consumed Uninit")
	}
}

// take is the single consuming path: it validates the handle, clears the
// pointer, and returns it. Every operation that ends the handle's life goes
// through here, so no path can act on an already-consumed handle.
func (u *Uninit[T]) take() unsafe.Pointer {
	u.check()
	p := u.ptr
	u.ptr = nil
	return p
}
