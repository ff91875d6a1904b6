package leafdecode

import (
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/pagestate"
)

// BooleanReader decodes a Parquet BOOLEAN column (bit-packed PLAIN
// values, distinct from the RLE-hybrid level/index streams) into an
// arrow.BooleanArray.
type BooleanReader struct{}

func NewBooleanReader() *BooleanReader { return &BooleanReader{} }

func (r *BooleanReader) DecodePage(p pages.DataPage, dst *mutablearray.MutableBooleanArray) error {
	in, err := splitPage(p)
	if err != nil {
		return err
	}
	isOptional := p.Descriptor.MaxDefLevel > 0
	values, err := DecodePlainBoolean(in.values, countValues(p, in))
	if err != nil {
		return err
	}
	src, err := buildValueSource[bool](in, isOptional, values, nil)
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

func (r *BooleanReader) NewNestedPusher(p pages.DataPage, dst *mutablearray.MutableBooleanArray) (nestedlevel.LeafPusher, error) {
	split, err := splitPage(p)
	if err != nil {
		return nil, err
	}
	vals, err := DecodePlainBoolean(split.values, countValues(p, split))
	if err != nil {
		return nil, err
	}
	src, err := buildValueSource[bool](leafInput{}, false, vals, nil)
	if err != nil {
		return nil, err
	}
	return newNestedLeafAdapter(src, dst.Push, dst.PushNull), nil
}
