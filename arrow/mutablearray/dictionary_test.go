package mutablearray_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func utf8Values(t *testing.T, ss ...string) *arrow.Utf8Array[int32] {
	offsets := make([]int32, len(ss)+1)
	var buf []byte
	for i, s := range ss {
		buf = append(buf, s...)
		offsets[i+1] = int32(len(buf))
	}
	a, err := arrow.NewUtf8Array[int32](arrow.Utf8, offsets, buf, nil)
	require.NoError(t, err)
	return a
}

// TestFixedItemsUtf8DictionaryKeyRange is invariant 4 (dictionary indices):
// every valid key lands in [0, values.Len()) and null slots are preserved
// through to the finished array.
func TestFixedItemsUtf8DictionaryKeyRange(t *testing.T) {
	values := utf8Values(t, "red", "green", "blue")
	dtype := arrow.DictionaryType{IndexType: arrow.Int32, ValueType: arrow.Utf8}
	m := mutablearray.NewFixedItemsUtf8Dictionary(dtype, values)

	m.PushValidKey(2) // blue
	m.PushNull()
	m.PushValidKey(0) // red
	m.PushValidKey(1) // green

	arr := m.IntoArray().(*arrow.DictionaryArray[int32])
	require.Equal(t, 4, arr.Len())
	require.Equal(t, 1, arr.NullCount())

	assert.True(t, arr.Keys().IsValid(0))
	assert.False(t, arr.Keys().IsValid(1))
	assert.True(t, arr.Keys().IsValid(2))
	assert.True(t, arr.Keys().IsValid(3))

	for i := 0; i < arr.Len(); i++ {
		if !arr.Keys().IsValid(i) {
			continue
		}
		k := int64(arr.Keys().Value(i))
		require.GreaterOrEqual(t, k, int64(0))
		require.Less(t, k, int64(arr.Values().Len()))
	}

	dictValues := arr.Values().(*arrow.Utf8Array[int32])
	assert.Equal(t, "blue", dictValues.ValueStr(int(arr.Keys().Value(0))))
	assert.Equal(t, "red", dictValues.ValueStr(int(arr.Keys().Value(2))))
	assert.Equal(t, "green", dictValues.ValueStr(int(arr.Keys().Value(3))))
}

// TestGrowableDictionaryExtendPreservesKeyRange exercises the per-chunk
// Growable path: extending from a source dictionary array must keep every
// copied key in range and copy the selected keys in order.
func TestGrowableDictionaryExtendPreservesKeyRange(t *testing.T) {
	values := utf8Values(t, "x", "y")
	dtype := arrow.DictionaryType{IndexType: arrow.Int32, ValueType: arrow.Utf8}
	keys := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{0, 1, 0}, nil)
	src := arrow.NewDictionaryArray(dtype, keys, values)

	g := mutablearray.NewGrowableDictionary([]*arrow.DictionaryArray[int32]{src}, false, 3)
	g.Extend(0, 1, 2)

	out := g.AsBox().(*arrow.DictionaryArray[int32])
	require.Equal(t, 2, out.Len())
	for i := 0; i < out.Len(); i++ {
		k := int64(out.Keys().Value(i))
		assert.GreaterOrEqual(t, k, int64(0))
		assert.Less(t, k, int64(out.Values().Len()))
	}
	assert.Equal(t, []int32{1, 0}, []int32{out.Keys().Value(0), out.Keys().Value(1)})
}
