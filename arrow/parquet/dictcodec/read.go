// Package dictcodec implements the dictionary encode/decode path spec.md
// section 4.6 (C6) names: DeserializeDict on read, and ArrayToPages on
// write, grounded on
// original_source/src/io/parquet/write/dictionary.rs (the dyn_prim!
// dispatch table this package's LogicalKind switch mirrors).
package dictcodec

import (
	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/arrowerr"
	"github.com/colarrow/parquetcore/arrow/parquet/leafdecode"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
)

// LogicalKind names the leaf logical types dictcodec knows how to
// serialize/deserialize dictionary values for — the
// widened-to-i32/i64-integers, Float32/64, Utf8/Binary, FixedSizeBinary,
// and temporal-as-integer set from original_source's dyn_prim! table.
type LogicalKind int

const (
	KindInt32 LogicalKind = iota
	KindInt64
	KindFloat32
	KindFloat64
	KindUtf8
	KindBinary
	KindFixedSizeBinary
)

// DeserializeDict decodes a DictPage's plain-encoded entries into the
// values array a DictionaryArray[K] wraps, held for every subsequent Data
// page in the column chunk (spec.md section 4.6).
func DeserializeDict(dp pages.DictPage, kind LogicalKind, dtype arrow.DataType, width int) (arrow.Array, error) {
	switch kind {
	case KindInt32:
		raw, err := leafdecode.DecodePlainInt32(dp.Buffer, dp.NumValues)
		if err != nil {
			return nil, err
		}
		return arrow.NewPrimitiveArray(dtype, raw, nil), nil
	case KindInt64:
		raw, err := leafdecode.DecodePlainInt64(dp.Buffer, dp.NumValues)
		if err != nil {
			return nil, err
		}
		return arrow.NewPrimitiveArray(dtype, raw, nil), nil
	case KindFloat32:
		raw, err := leafdecode.DecodePlainFloat32(dp.Buffer, dp.NumValues)
		if err != nil {
			return nil, err
		}
		return arrow.NewPrimitiveArray(dtype, raw, nil), nil
	case KindFloat64:
		raw, err := leafdecode.DecodePlainFloat64(dp.Buffer, dp.NumValues)
		if err != nil {
			return nil, err
		}
		return arrow.NewPrimitiveArray(dtype, raw, nil), nil
	case KindUtf8:
		vals, err := leafdecode.DecodePlainByteArray(dp.Buffer, dp.NumValues)
		if err != nil {
			return nil, err
		}
		offsets, data := packByteValues(vals)
		return arrow.NewUtf8ArrayUnchecked(dtype, offsets, data, nil), nil
	case KindBinary:
		vals, err := leafdecode.DecodePlainByteArray(dp.Buffer, dp.NumValues)
		if err != nil {
			return nil, err
		}
		offsets, data := packByteValues(vals)
		return arrow.NewBinaryArray(dtype, offsets, data, nil), nil
	case KindFixedSizeBinary:
		vals, err := leafdecode.DecodePlainFixedLenByteArray(dp.Buffer, dp.NumValues, width)
		if err != nil {
			return nil, err
		}
		flat := make([]byte, 0, len(vals)*width)
		for _, v := range vals {
			flat = append(flat, v...)
		}
		return arrow.NewFixedSizeBinaryArray(dtype.(arrow.FixedSizeBinaryType), flat, nil), nil
	default:
		return nil, arrowerr.NotImplemented("dictcodec: unsupported dictionary value logical kind")
	}
}

func packByteValues(vals [][]byte) ([]int32, []byte) {
	offsets := make([]int32, len(vals)+1)
	var data []byte
	for i, v := range vals {
		data = append(data, v...)
		offsets[i+1] = int32(len(data))
	}
	return offsets, data
}
