package leafdecode

import (
	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/pagestate"
)

// BinaryReader decodes a Parquet BYTE_ARRAY column (Binary or Utf8) into
// a MutableBinaryArray[O]. Byte slices
// returned by DecodePlainByteArray alias the page's own buffer — callers
// owning the page's lifetime beyond this decode must copy before the
// underlying page buffer is reused/recycled.
type BinaryReader[O arrow.Offset] struct{}

func NewBinaryReader[O arrow.Offset]() *BinaryReader[O] { return &BinaryReader[O]{} }

func (r *BinaryReader[O]) DecodeDict(dp pages.DictPage) ([][]byte, error) {
	return DecodePlainByteArray(dp.Buffer, dp.NumValues)
}

func (r *BinaryReader[O]) pushAdapter(dst *mutablearray.MutableBinaryArray[O]) (func([]byte), func()) {
	return func(v []byte) {
		if err := dst.Push(v); err != nil {
			panic(err)
		}
	}, dst.PushNull
}

func (r *BinaryReader[O]) DecodePage(p pages.DataPage, dict [][]byte, dst *mutablearray.MutableBinaryArray[O]) error {
	in, err := splitPage(p)
	if err != nil {
		return err
	}
	isOptional := p.Descriptor.MaxDefLevel > 0
	var values [][]byte
	if dict == nil {
		values, err = DecodePlainByteArray(in.values, countValues(p, in))
		if err != nil {
			return err
		}
	}
	src, err := buildValueSource[[]byte](in, isOptional, values, dict)
	if err != nil {
		return err
	}
	push, pushNull := r.pushAdapter(dst)
	builder := newBuilderAdapter(push, pushNull)
	rows := p.NumValues
	if isOptional {
		rows = len(in.def)
	}
	pagestate.DriveRows(src, builder, 0, rows)
	return nil
}

func (r *BinaryReader[O]) NewNestedPusher(p pages.DataPage, dict [][]byte, dst *mutablearray.MutableBinaryArray[O]) (nestedlevel.LeafPusher, error) {
	split, err := splitPage(p)
	if err != nil {
		return nil, err
	}
	values := split.values
	var vals [][]byte
	var indices []byte
	if dict == nil {
		vals, err = DecodePlainByteArray(values, countValues(p, split))
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
	push, pushNull := r.pushAdapter(dst)
	return newNestedLeafAdapter(src, push, pushNull), nil
}
