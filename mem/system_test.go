package mem

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemAllocatorRoundTrip(t *testing.T) {
	layout, err := NewLayout(300, 8)
	require.NoError(t, err)

	p, err := System.Alloc(layout)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Zero(t, uintptr(p)%layout.Align)

	b := unsafe.Slice((*byte)(p), layout.Size)
	for i := range b {
		b[i] = byte(i % 251)
	}
	for i := range b {
		require.Equal(t, byte(i%251), b[i])
	}

	System.Dealloc(p, layout)
}

func TestSystemAllocatorReallocPreservesPrefix(t *testing.T) {
	layout, err := NewLayout(64, 8)
	require.NoError(t, err)

	p, err := System.Alloc(layout)
	require.NoError(t, err)

	b := unsafe.Slice((*byte)(p), 64)
	for i := range b {
		b[i] = byte(i)
	}

	// Grow.
	p, err = System.Realloc(p, layout, 192)
	require.NoError(t, err)
	grownLayout, err := NewLayout(192, 8)
	require.NoError(t, err)
	for i, v := range unsafe.Slice((*byte)(p), 64) {
		require.Equalf(t, byte(i), v, "byte %d lost on grow", i)
	}

	// Shrink.
	p, err = System.Realloc(p, grownLayout, 16)
	require.NoError(t, err)
	shrunkLayout, err := NewLayout(16, 8)
	require.NoError(t, err)
	for i, v := range unsafe.Slice((*byte)(p), 16) {
		require.Equalf(t, byte(i), v, "byte %d lost on shrink", i)
	}

	System.Dealloc(p, shrunkLayout)
}

func TestSystemAllocatorZeroSize(t *testing.T) {
	layout, err := NewLayout(0, 8)
	require.NoError(t, err)

	p, err := System.Alloc(layout)
	require.NoError(t, err)
	assert.Equal(t, Placeholder(), p)

	// Releasing a placeholder is a no-op, not a platform call.
	System.Dealloc(p, layout)
}

func TestSystemAllocatorReallocToZero(t *testing.T) {
	layout, err := NewLayout(32, 8)
	require.NoError(t, err)

	p, err := System.Alloc(layout)
	require.NoError(t, err)

	p, err = System.Realloc(p, layout, 0)
	require.NoError(t, err)
	assert.Equal(t, Placeholder(), p)
}

func TestTypedHelpers(t *testing.T) {
	p, err := AllocT[uint64](System)
	require.NoError(t, err)
	*p = 42
	assert.Equal(t, uint64(42), *p)
	FreeT(System, p)

	s, err := AllocSlice[uint32](System, 16)
	require.NoError(t, err)
	require.Len(t, s, 16)
	for i := range s {
		s[i] = uint32(i)
	}
	assert.Equal(t, uint32(15), s[15])
	FreeSlice(System, s)

	// Zero-size requests resolve to the placeholder.
	z, err := AllocT[struct{}](System)
	require.NoError(t, err)
	assert.Equal(t, Placeholder(), unsafe.Pointer(z))
	FreeT(System, z)
}
