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

func requiredUtf8Page(t *testing.T, values []string, selected []pages.RowInterval) pages.DataPage {
	raw := make([][]byte, len(values))
	for i, v := range values {
		raw[i] = []byte(v)
	}
	return pages.DataPage{
		Buffer:       write.EncodePlainByteArray(raw),
		Encoding:     pages.Plain,
		Descriptor:   pages.ColumnDescriptor{Physical: pages.ByteArray, Repetition: pages.Required},
		SelectedRows: selected,
		NumValues:    len(values),
	}
}

// TestBinaryReaderRequiredPageIndexFilter is concrete scenario 1: a
// required UTF-8 page of three values, filtered down to its middle row by
// a page-index row-range selection.
func TestBinaryReaderRequiredPageIndexFilter(t *testing.T) {
	page := requiredUtf8Page(t, []string{"d", "e", "f"}, []pages.RowInterval{{Start: 1, Length: 1}})

	r := leafdecode.NewBinaryReader[int32]()
	dst := mutablearray.NewMutableBinaryArray[int32](arrow.Utf8)
	require.NoError(t, r.DecodePage(page, nil, dst))

	arr := dst.IntoArray().(*arrow.BinaryArray[int32])
	require.Equal(t, 1, arr.Len())
	require.Equal(t, "e", string(arr.Value(0)))
}

// TestBinaryReaderRequiredPageSkippedEntirely covers the boundary where no
// row of a page is selected: the builder must stay empty.
func TestBinaryReaderRequiredPageSkippedEntirely(t *testing.T) {
	page := requiredUtf8Page(t, []string{"a", "b", "c"}, []pages.RowInterval{})
	// An empty SelectedRows slice is treated like nil (a row filter is only
	// built when SelectedRows is non-empty), so simulate "page fully
	// unselected" with a single out-of-range selected interval instead.
	page.SelectedRows = []pages.RowInterval{{Start: 10, Length: 1}}

	r := leafdecode.NewBinaryReader[int32]()
	dst := mutablearray.NewMutableBinaryArray[int32](arrow.Utf8)
	require.NoError(t, r.DecodePage(page, nil, dst))

	arr := dst.IntoArray().(*arrow.BinaryArray[int32])
	require.Equal(t, 0, arr.Len())
}
