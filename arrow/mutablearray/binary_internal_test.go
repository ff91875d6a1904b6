package mutablearray

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/arrowerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMutableBinaryArrayInt32OffsetOverflow is the "O=int32 offset
// overflow at 2^31-1 bytes" boundary behavior: Push must reject a value
// whose new cumulative offset would exceed int32's range rather than
// silently truncate it. The offset slice is seeded directly (white-box)
// to avoid allocating a multi-gigabyte value buffer in a unit test.
func TestMutableBinaryArrayInt32OffsetOverflow(t *testing.T) {
	m := NewMutableBinaryArray[int32](arrow.Utf8)
	m.offsets[0] = int32(1<<31 - 1 - 2)

	err := m.Push([]byte("abc"))
	require.Error(t, err)
	assert.True(t, arrowerr.Is(err, arrowerr.Overflow))
}

// TestMutableBinaryArrayInt32OffsetAtLimit confirms the boundary itself
// (offset landing exactly on MaxInt32) is accepted, not rejected.
func TestMutableBinaryArrayInt32OffsetAtLimit(t *testing.T) {
	m := NewMutableBinaryArray[int32](arrow.Utf8)
	m.offsets[0] = int32(1<<31 - 1 - 3)

	require.NoError(t, m.Push([]byte("abcd")))
	assert.Equal(t, int32(1<<31-1), m.offsets[len(m.offsets)-1])
}
