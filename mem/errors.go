package mem

import (
	"errors"
	"fmt"
)

var (
	// ErrAlloc matches any allocation failure via errors.Is, regardless of
	// the layout that failed.
	ErrAlloc = errors.New("mem: allocation failed")

	// ErrLayout matches any layout computation failure via errors.Is.
	ErrLayout = errors.New("mem: invalid layout")
)

// AllocError reports that the underlying allocator refused a well-formed,
// non-zero-size request. It carries the Layout that failed.
type AllocError struct {
	Layout Layout
}

func (e *AllocError) Error() string {
	return fmt.Sprintf("mem: allocation failed, size: %d, align: %d", e.Layout.Size, e.Layout.Align)
}

// Is reports a match against the ErrAlloc sentinel so callers can classify
// without caring about the layout payload.
func (e *AllocError) Is(target error) bool { return target == ErrAlloc }

// LayoutError reports that a requested layout is arithmetically invalid:
// a non-power-of-two alignment, a negative count, or overflow in size*count
// or in rounding size up to the alignment. Layout failures are caller logic
// errors, never retried.
type LayoutError struct{}

func (e *LayoutError) Error() string { return "mem: invalid layout parameters" }

// Is reports a match against the ErrLayout sentinel.
func (e *LayoutError) Is(target error) bool { return target == ErrLayout }

// handleAllocError is the non-fallible path's out-of-memory convention: the
// request was valid but the heap is exhausted, which this package treats as
// fatal. Mirrors what the Go runtime itself does when it cannot allocate.
func handleAllocError(err *AllocError) {
	panic("mem: out of memory: " + err.Error())
}

// handleError converts a fallible operation's error for a non-fallible entry
// point, keeping the two failure classes distinguishable: layout errors are
// logic errors in the request itself, alloc errors are heap exhaustion.
func handleError(err error) {
	var le *LayoutError
	if errors.As(err, &le) {
		panic("mem: capacity overflows memory size: " + le.Error())
	}
	var ae *AllocError
	if errors.As(err, &ae) {
		handleAllocError(ae)
	}
	panic(err)
}
