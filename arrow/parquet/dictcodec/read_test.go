package dictcodec_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/parquet/dictcodec"
	"github.com/colarrow/parquetcore/arrow/parquet/leafdecode"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/write"
	"github.com/stretchr/testify/require"
)

// TestDeserializeDictInt32 covers DeserializeDict's KindInt32 branch: a
// DictPage's plain-encoded i32 entries become the flat values array every
// subsequent Data page in the chunk indexes into.
func TestDeserializeDictInt32(t *testing.T) {
	dp := pages.DictPage{Buffer: write.EncodePlainInt32([]int32{4, 6}), NumValues: 2}

	values, err := dictcodec.DeserializeDict(dp, dictcodec.KindInt32, arrow.Int32, 0)
	require.NoError(t, err)

	arr := values.(*arrow.PrimitiveArray[int32])
	require.Equal(t, 2, arr.Len())
	require.Equal(t, int32(4), arr.Value(0))
	require.Equal(t, int32(6), arr.Value(1))
}

// TestPrimitiveReaderDictionaryFilteredSingleRow is concrete scenario 4:
// a dictionary-encoded i32 column (indices [0,1,0,1,0,1], dict [4,6]),
// row-filtered to a single row, decodes to a one-element result whose key
// indexes into the two-entry dictionary.
func TestPrimitiveReaderDictionaryFilteredSingleRow(t *testing.T) {
	dp := pages.DictPage{Buffer: write.EncodePlainInt32([]int32{4, 6}), NumValues: 2}
	dict, err := dictcodec.DeserializeDict(dp, dictcodec.KindInt32, arrow.Int32, 0)
	require.NoError(t, err)
	dictArr := dict.(*arrow.PrimitiveArray[int32])
	dictValues := make([]int32, dictArr.Len())
	for i := range dictValues {
		dictValues[i] = dictArr.Value(i)
	}

	// bit_width=1 header byte, one bit-packed run of 8 values (group
	// header (1<<1)|1 = 3) holding indices [0,1,0,1,0,1,0,0] packed LSB
	// first into a single byte: bit1+bit3+bit5 set = 0x2A.
	indexBuf := []byte{1, 3, 0x2A}

	page := pages.DataPage{
		Buffer:       indexBuf,
		Encoding:     pages.RLEDictionary,
		Descriptor:   pages.ColumnDescriptor{Physical: pages.Int32, Repetition: pages.Required},
		SelectedRows: []pages.RowInterval{{Start: 2, Length: 1}},
		NumValues:    6,
	}

	r := leafdecode.NewPrimitiveReader[int32, int32](arrow.Int32, leafdecode.DecodePlainInt32, func(v int32) int32 { return v })
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	require.NoError(t, r.DecodePage(page, dictValues, dst))

	arr := dst.IntoArray().(*arrow.PrimitiveArray[int32])
	require.Equal(t, 1, arr.Len())
	require.Equal(t, int32(4), arr.Value(0)) // index 0 selects dict[0] == 4
}
