package leafdecode

import (
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/pagestate"
)

// FixedSizeBinaryReader decodes a Parquet FIXED_LEN_BYTE_ARRAY column
// (width carried in ColumnDescriptor.TypeLength — the one leaf type whose
// physical layout needs schema-supplied width rather than a length
// prefix), grounded directly on
// original_source/src/io/parquet/read/deserialize/fixed_size_binary/basic.rs.
type FixedSizeBinaryReader struct{ Width int }

func NewFixedSizeBinaryReader(width int) *FixedSizeBinaryReader {
	return &FixedSizeBinaryReader{Width: width}
}

func (r *FixedSizeBinaryReader) DecodeDict(dp pages.DictPage) ([][]byte, error) {
	return DecodePlainFixedLenByteArray(dp.Buffer, dp.NumValues, r.Width)
}

func (r *FixedSizeBinaryReader) DecodePage(p pages.DataPage, dict [][]byte, dst *mutablearray.MutableFixedSizeBinaryArray) error {
	in, err := splitPage(p)
	if err != nil {
		return err
	}
	isOptional := p.Descriptor.MaxDefLevel > 0
	var values [][]byte
	if dict == nil {
		values, err = DecodePlainFixedLenByteArray(in.values, countValues(p, in), r.Width)
		if err != nil {
			return err
		}
	}
	src, err := buildValueSource[[]byte](in, isOptional, values, dict)
	if err != nil {
		return err
	}
	builder := newBuilderAdapter(dst.Push, dst.PushNull)
	rows := p.NumValues
	if isOptional {
		rows = len(in.def)
	}
	pagestate.DriveRows(src, builder, 0, rows)
	return nil
}

func (r *FixedSizeBinaryReader) NewNestedPusher(p pages.DataPage, dict [][]byte, dst *mutablearray.MutableFixedSizeBinaryArray) (nestedlevel.LeafPusher, error) {
	split, err := splitPage(p)
	if err != nil {
		return nil, err
	}
	values := split.values
	var vals [][]byte
	var indices []byte
	if dict == nil {
		vals, err = DecodePlainFixedLenByteArray(values, countValues(p, split), r.Width)
		if err != nil {
			return nil, err
		}
	} else {
		indices = values
	}
	src, err := buildValueSource[[]byte](leafInput{values: indices}, false, vals, dict)
	if err != nil {
		return nil, err
	}
	return newNestedLeafAdapter(src, dst.Push, dst.PushNull), nil
}
