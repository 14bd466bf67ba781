package mem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutOf(t *testing.T) {
	assert.Equal(t, Layout{Size: 8, Align: 8}, LayoutOf[uint64]())
	assert.Equal(t, Layout{Size: 1, Align: 1}, LayoutOf[byte]())
	assert.Equal(t, Layout{Size: 0, Align: 1}, LayoutOf[struct{}]())

	type pair struct {
		a uint64
		b byte
	}
	l := LayoutOf[pair]()
	assert.Equal(t, uintptr(16), l.Size, "trailing padding is part of the size")
	assert.Equal(t, uintptr(8), l.Align)
}

func TestNewLayoutValidation(t *testing.T) {
	l, err := NewLayout(100, 8)
	require.NoError(t, err)
	assert.Equal(t, uintptr(100), l.Size)

	_, err = NewLayout(8, 0)
	assert.ErrorIs(t, err, ErrLayout, "zero alignment")

	_, err = NewLayout(8, 3)
	assert.ErrorIs(t, err, ErrLayout, "non-power-of-two alignment")

	_, err = NewLayout(^uintptr(0), 16)
	assert.ErrorIs(t, err, ErrLayout, "rounding overflow")
}

func TestLayoutArray(t *testing.T) {
	l, err := LayoutOf[uint64]().Array(10)
	require.NoError(t, err)
	assert.Equal(t, uintptr(80), l.Size)
	assert.Equal(t, uintptr(8), l.Align)

	l, err = LayoutOf[uint64]().Array(0)
	require.NoError(t, err)
	assert.Zero(t, l.Size)

	_, err = LayoutOf[uint64]().Array(-1)
	assert.ErrorIs(t, err, ErrLayout, "negative count")

	_, err = LayoutOf[uint64]().Array(math.MaxInt)
	assert.ErrorIs(t, err, ErrLayout, "size*count overflow")

	// Zero-sized element never overflows, whatever the count.
	l, err = LayoutOf[struct{}]().Array(math.MaxInt)
	require.NoError(t, err)
	assert.Zero(t, l.Size)
}

func TestLayoutPaddedSize(t *testing.T) {
	l, err := NewLayout(13, 8)
	require.NoError(t, err)
	assert.Equal(t, uintptr(16), l.PaddedSize())

	l, err = NewLayout(16, 8)
	require.NoError(t, err)
	assert.Equal(t, uintptr(16), l.PaddedSize())

	l, err = NewLayout(0, 64)
	require.NoError(t, err)
	assert.Zero(t, l.PaddedSize())
}

func TestCheckedArithmetic(t *testing.T) {
	if sum, ok := addChecked(10, 5); !ok || sum != 15 {
		t.Fatalf("addChecked(10,5)=%d,%v want 15,true", sum, ok)
	}
	if _, ok := addChecked(^uintptr(0), 1); ok {
		t.Fatal("expected overflow when adding to max uintptr")
	}
	if prod, ok := mulChecked(6, 7); !ok || prod != 42 {
		t.Fatalf("mulChecked(6,7)=%d,%v want 42,true", prod, ok)
	}
	if _, ok := mulChecked(^uintptr(0)/2, 3); ok {
		t.Fatal("expected multiplication overflow")
	}
	if prod, ok := mulChecked(0, ^uintptr(0)); !ok || prod != 0 {
		t.Fatal("zero times anything should be 0, ok")
	}
}
