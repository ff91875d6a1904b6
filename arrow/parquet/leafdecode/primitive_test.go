package leafdecode_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/parquet/leafdecode"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/write"
	"github.com/stretchr/testify/require"
)

func int32Reader() *leafdecode.PrimitiveReader[int32, int32] {
	return leafdecode.NewPrimitiveReader[int32, int32](arrow.Int32, leafdecode.DecodePlainInt32, func(v int32) int32 { return v })
}

func optionalInt32Page(t *testing.T, values []int32, valid []bool, selected []pages.RowInterval) pages.DataPage {
	vb := arrow.NewMutableBitmap(len(valid))
	for _, v := range valid {
		vb.Push(v)
	}
	validity := vb.Finish()
	arr := arrow.NewPrimitiveArray[int32](arrow.Int32, values, &validity)

	enc, err := write.ArrayToPages(arr, pages.Int32, nil, write.WriteOptions{})
	require.NoError(t, err)

	return pages.DataPage{
		Buffer:       enc.Buffer,
		Encoding:     pages.Plain,
		Descriptor:   pages.ColumnDescriptor{Physical: pages.Int32, Repetition: pages.Optional, MaxDefLevel: 1},
		SelectedRows: selected,
		NumValues:    enc.NumValues,
	}
}

// TestPrimitiveReaderOptionalFilteredPage is concrete scenario 2: an
// optional i32 page [null, 5, 6], row-filtered to its middle row, yields a
// single decoded value 5.
func TestPrimitiveReaderOptionalFilteredPage(t *testing.T) {
	page := optionalInt32Page(t, []int32{0, 5, 6}, []bool{false, true, true}, []pages.RowInterval{{Start: 1, Length: 1}})

	r := int32Reader()
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	require.NoError(t, r.DecodePage(page, nil, dst))

	arr := dst.IntoArray().(*arrow.PrimitiveArray[int32])
	require.Equal(t, 1, arr.Len())
	require.True(t, arr.IsValid(0))
	require.Equal(t, int32(5), arr.Value(0))
}

// TestPrimitiveReaderOptionalUnfilteredPage covers the plain optional path
// (no row filter): nulls and values interleave in declaration order.
func TestPrimitiveReaderOptionalUnfilteredPage(t *testing.T) {
	page := optionalInt32Page(t, []int32{1, 2, 0}, []bool{true, true, false}, nil)

	r := int32Reader()
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	require.NoError(t, r.DecodePage(page, nil, dst))

	arr := dst.IntoArray().(*arrow.PrimitiveArray[int32])
	require.Equal(t, 3, arr.Len())
	require.True(t, arr.IsValid(0))
	require.True(t, arr.IsValid(1))
	require.False(t, arr.IsValid(2))
	require.Equal(t, int32(1), arr.Value(0))
	require.Equal(t, int32(2), arr.Value(1))
}

// TestPrimitiveReaderAllNullColumn is the "all-null column" boundary
// behavior: validity is all false and the value buffer is filled with the
// builder's default zero value.
func TestPrimitiveReaderAllNullColumn(t *testing.T) {
	page := optionalInt32Page(t, []int32{0, 0, 0}, []bool{false, false, false}, nil)

	r := int32Reader()
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	require.NoError(t, r.DecodePage(page, nil, dst))

	arr := dst.IntoArray().(*arrow.PrimitiveArray[int32])
	require.Equal(t, 3, arr.Len())
	require.Equal(t, 3, arr.NullCount())
	for i := 0; i < arr.Len(); i++ {
		require.False(t, arr.IsValid(i))
		require.Equal(t, int32(0), arr.Value(i))
	}
}

// TestPrimitiveReaderEmptyPage is the "empty page" boundary behavior:
// num_values = 0 decodes to a zero-length array without error.
func TestPrimitiveReaderEmptyPage(t *testing.T) {
	page := pages.DataPage{
		Buffer:     nil,
		Encoding:   pages.Plain,
		Descriptor: pages.ColumnDescriptor{Physical: pages.Int32, Repetition: pages.Required},
		NumValues:  0,
	}
	r := int32Reader()
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	require.NoError(t, r.DecodePage(page, nil, dst))
	require.Equal(t, 0, dst.Len())
}
