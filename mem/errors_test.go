package mem

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorClassification(t *testing.T) {
	var err error = &AllocError{Layout: Layout{Size: 64, Align: 8}}
	assert.ErrorIs(t, err, ErrAlloc)
	assert.NotErrorIs(t, err, ErrLayout)

	var ae *AllocError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, uintptr(64), ae.Layout.Size)
	assert.Equal(t, uintptr(8), ae.Layout.Align)
	assert.Contains(t, ae.Error(), "size: 64")
	assert.Contains(t, ae.Error(), "align: 8")

	err = &LayoutError{}
	assert.ErrorIs(t, err, ErrLayout)
	assert.NotErrorIs(t, err, ErrAlloc)

	var le *LayoutError
	require.ErrorAs(t, err, &le)
}

func TestNonFallibleFailureClassesStayDistinguishable(t *testing.T) {
	// An invalid request is a logic error, not heap exhaustion.
	assert.PanicsWithValue(t,
		"mem: capacity overflows memory size: mem: invalid layout parameters",
		func() { WithCapacity[uint64](math.MaxInt) })

	// A refused allocation surfaces through the out-of-memory convention.
	assert.PanicsWithValue(t,
		"mem: out of memory: mem: allocation failed, size: 32, align: 8",
		func() { WithCapacityIn[uint64](4, failingAllocator{}) })

	assert.PanicsWithValue(t,
		"mem: out of memory: mem: allocation failed, size: 8, align: 8",
		func() { NewUninitIn[uint64](failingAllocator{}) })
}

func TestErrorClassesSurviveWrapping(t *testing.T) {
	wrapped := errorsJoin(&LayoutError{})
	assert.ErrorIs(t, wrapped, ErrLayout)

	var le *LayoutError
	assert.True(t, errors.As(wrapped, &le))
}

func errorsJoin(err error) error {
	return &wrapper{err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "outer: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }
