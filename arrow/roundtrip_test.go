package arrow_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveArrayRoundTrip(t *testing.T) {
	values := []int32{1, 2, 3, 4, 5}
	a := arrow.NewPrimitiveArray[int32](arrow.Int32, values, nil)
	require.Equal(t, len(values), a.Len())
	require.Equal(t, 0, a.NullCount())
	for i, v := range values {
		assert.Equal(t, v, a.Value(i))
	}
}

func TestPrimitiveArrayValidityNormalization(t *testing.T) {
	values := []int32{1, 2, 3}
	vb := arrow.NewMutableBitmap(3)
	vb.ExtendConstant(3, true)
	validity := vb.Finish()
	a := arrow.NewPrimitiveArray[int32](arrow.Int32, values, &validity)
	require.Equal(t, 0, a.NullCount())
	for i := range values {
		assert.True(t, a.IsValid(i))
	}
}

func TestBinaryArrayOffsetsMonotonic(t *testing.T) {
	offsets := []int32{0, 1, 1, 3}
	values := []byte{'a', 'b', 'c'}
	a := arrow.NewBinaryArray[int32](arrow.Binary, offsets, values, nil)
	require.Equal(t, 3, a.Len())
	assert.Equal(t, []byte("a"), a.Value(0))
	assert.Equal(t, []byte{}, a.Value(1))
	assert.Equal(t, []byte("bc"), a.Value(2))
}

func TestBinaryArrayRejectsNonMonotonicOffsets(t *testing.T) {
	assert.Panics(t, func() {
		arrow.NewBinaryArray[int32](arrow.Binary, []int32{0, 3, 1}, []byte("abc"), nil)
	})
}

func TestArraySliceOfFullRangeEqualsInput(t *testing.T) {
	values := []int32{10, 20, 30}
	a := arrow.NewPrimitiveArray[int32](arrow.Int32, values, nil)
	sliced := a.Slice(0, a.Len()).(*arrow.PrimitiveArray[int32])
	require.Equal(t, a.Len(), sliced.Len())
	for i := range values {
		assert.Equal(t, a.Value(i), sliced.Value(i))
	}
}

func TestDictionaryArrayKeyRangeInvariant(t *testing.T) {
	keys := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{0, 1, 0}, nil)
	values := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{4, 6}, nil)
	dtype := arrow.DictionaryType{IndexType: arrow.Int32, ValueType: arrow.Int32}
	d := arrow.NewDictionaryArray[int32](dtype, keys, values)
	require.Equal(t, 3, d.Len())
	assert.Panics(t, func() {
		badKeys := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{0, 5}, nil)
		arrow.NewDictionaryArray[int32](dtype, badKeys, values)
	})
}
