package mem

import "unsafe"

// Dropper is the destructor hook. When the value held by an Owned implements
// it, Drop runs exactly once, at Release or Free time, before the storage is
// reused or returned. Types without resources to release simply don't
// implement it.
type Dropper interface {
	Drop()
}

// Owned owns a heap block holding exactly one live, fully constructed value
// of type T. It is produced by initializing an Uninit, never directly from a
// raw request, so a live value and its storage always appear together.
//
// Owned is a move-only handle emulated with a consumed flag: Decompose,
// Release, IntoRaw and Free all consume the handle, and any later use panics.
type Owned[T any] struct {
	ptr unsafe.Pointer // nil once consumed
	a   Allocator
}

// NewOwned allocates a block and moves value into it, equivalent to
// NewUninit followed by Init. It panics with the out-of-memory convention on
// allocation failure.
func NewOwned[T any](value T) *Owned[T] {
	return NewOwnedIn(value, System)
}

// NewOwnedIn is NewOwned with an explicit backing allocator.
func NewOwnedIn[T any](value T, a Allocator) *Owned[T] {
	return NewUninitIn[T](a).Init(value)
}

// TryNewOwned is the fallible form of NewOwned.
func TryNewOwned[T any](value T) (*Owned[T], error) {
	return TryNewOwnedIn(value, System)
}

// TryNewOwnedIn is TryNewOwned with an explicit backing allocator.
func TryNewOwnedIn[T any](value T, a Allocator) (*Owned[T], error) {
	u, err := TryNewUninitIn[T](a)
	if err != nil {
		return nil, err
	}
	return u.Init(value), nil
}

// Get returns a pointer to the live value, valid until the handle is
// consumed. It never fails and never allocates; reads and writes both go
// through it.
func (o *Owned[T]) Get() *T {
	o.check()
	return (*T)(o.ptr)
}

// Set stores value over the live value. The previous value's Drop does not
// run; use Release first if it must.
func (o *Owned[T]) Set(value T) {
	*o.Get() = value
}

// Decompose moves the live value out and returns the block as an
// uninitialized slot, consuming the handle. The value's Drop does not run
// here: ownership of the value moves to the caller, and the block is neither
// released nor re-read by this handle afterward, so nothing is constructed
// or freed twice.
func (o *Owned[T]) Decompose() (T, *Uninit[T]) {
	p := o.take()
	value := *(*T)(p)
	return value, &Uninit[T]{ptr: p, a: o.a}
}

// Release runs the value's Drop (when T implements Dropper) in place, then
// returns the block as an uninitialized slot for reuse, consuming the
// handle. The allocation is kept, not freed.
func (o *Owned[T]) Release() *Uninit[T] {
	p := o.take()
	dropValue((*T)(p))
	return &Uninit[T]{ptr: p, a: o.a}
}

// Free runs the value's Drop (when T implements Dropper), then releases the
// block and consumes the handle. Zero-size types never held a real block, so
// no release call is made for them.
func (o *Owned[T]) Free() {
	p := o.take()
	dropValue((*T)(p))
	layout := LayoutOf[T]()
	if layout.Size != 0 {
		o.a.Dealloc(p, layout)
	}
}

// Clone allocates an independent block and copies the live value into it.
// The copy is shallow: interior pointers and slices still alias the
// original's referents.
func (o *Owned[T]) Clone() *Owned[T] {
	o.check()
	return NewOwnedIn(*(*T)(o.ptr), o.a)
}

// Raw returns the block's pointer without giving up ownership.
func (o *Owned[T]) Raw() unsafe.Pointer {
	o.check()
	return o.ptr
}

// IntoRaw consumes the handle and transfers the block's pointer out. The
// live value's Drop does not run; the caller takes over both the value and
// the block.
func (o *Owned[T]) IntoRaw() unsafe.Pointer {
	return o.take()
}

// OwnedFromRaw adopts an externally managed block holding exactly one live T.
// The pointer must be non-nil, layout-compatible with T, and owned by nothing
// else; a must be the allocator the block came from (nil means System).
func OwnedFromRaw[T any](ptr unsafe.Pointer, a Allocator) *Owned[T] {
	if ptr == nil {
		panic("mem: OwnedFromRaw: nil pointer")
	}
	if a == nil {
		a = System
	}
	return &Owned[T]{ptr: ptr, a: a}
}

func (o *Owned[T]) check() {
	if o.ptr == nil {
		panic("mem: use of consumed Owned")
	}
}

// take is the single consuming path; see Uninit.take.
func (o *Owned[T]) take() unsafe.Pointer {
	o.check()
	p := o.ptr
	o.ptr = nil
	return p
}

// dropValue invokes the destructor hook when the pointee's type has one.
func dropValue[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
	}
}
