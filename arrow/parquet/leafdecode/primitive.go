package leafdecode

import (
	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/pagestate"
)

// PrimitiveReader decodes a column of fixed-width values (every integer,
// float, date/time and duration logical type, each backed by Parquet's
// INT32/INT64/FLOAT/DOUBLE physical types per arrow2's logical-type
// tables) into an arrow.PrimitiveArray[T]. Raw is the Parquet physical
// representation (int32/int64/float32/float64); Map converts one decoded
// physical value into T (identity for plain integers/floats, a narrowing
// cast for Date32/Time32, a widening reinterpretation for Timestamp, etc).
type PrimitiveReader[Raw, T mutablearray.ScalarConstraint] struct {
	dtype        arrow.DataType
	decodePlain  func([]byte, int) ([]Raw, error)
	decodeDict   func([]byte, int) ([]Raw, error)
	mapValue     func(Raw) T
}

// NewPrimitiveReader constructs a reader for one leaf column. decodePlain
// decodes a Data page's plain value buffer and is also used for a Dict
// page's plain-encoded entries (same physical layout, different page).
func NewPrimitiveReader[Raw, T mutablearray.ScalarConstraint](dtype arrow.DataType, decodePlain func([]byte, int) ([]Raw, error), mapValue func(Raw) T) *PrimitiveReader[Raw, T] {
	return &PrimitiveReader[Raw, T]{dtype: dtype, decodePlain: decodePlain, decodeDict: decodePlain, mapValue: mapValue}
}

// DecodeDict decodes a DictPage into the flat T slice used as every
// subsequent Data page's dictionary in this column chunk (spec.md section
// 4.6, "held for subsequent Data pages").
func (r *PrimitiveReader[Raw, T]) DecodeDict(dp pages.DictPage) ([]T, error) {
	raw, err := r.decodeDict(dp.Buffer, dp.NumValues)
	if err != nil {
		return nil, err
	}
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = r.mapValue(v)
	}
	return out, nil
}

// DecodePage decodes one flat (non-nested) data page into dst, per
// spec.md section 4.5's Required/Optional/*Dictionary/Filtered* states.
// dict is nil unless p.Encoding is a dictionary encoding.
func (r *PrimitiveReader[Raw, T]) DecodePage(p pages.DataPage, dict []T, dst *mutablearray.MutablePrimitiveArray[T]) error {
	in, err := splitPage(p)
	if err != nil {
		return err
	}
	isOptional := p.Descriptor.MaxDefLevel > 0
	var values []T
	if dict == nil {
		raw, err := r.decodePlain(in.values, countValues(p, in))
		if err != nil {
			return err
		}
		values = make([]T, len(raw))
		for i, v := range raw {
			values[i] = r.mapValue(v)
		}
	}
	src, err := buildValueSource[T](in, isOptional, values, dict)
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

// NewNestedPusher builds a nestedlevel.LeafPusher over this page, for use
// inside the nested-level traversal (arrow/nestedlevel) rather than the
// flat DriveRows loop: the traversal itself decides push_valid/push_null
// per row from the reconstructed nesting state.
func (r *PrimitiveReader[Raw, T]) NewNestedPusher(p pages.DataPage, dict []T, dst *mutablearray.MutablePrimitiveArray[T]) (nestedlevel.LeafPusher, error) {
	split, err := splitPage(p)
	if err != nil {
		return nil, err
	}
	values := split.values
	var vals []T
	var indices []byte
	if dict == nil {
		raw, err := r.decodePlain(values, countValues(p, split))
		if err != nil {
			return nil, err
		}
		vals = make([]T, len(raw))
		for i, v := range raw {
			vals[i] = r.mapValue(v)
		}
	} else {
		indices = values
	}
	in := leafInput{values: indices}
	src, err := buildValueSource[T](in, false, vals, dict)
	if err != nil {
		return nil, err
	}
	return newNestedLeafAdapter(src, dst.Push, dst.PushNull), nil
}

func countValues(p pages.DataPage, in leafInput) int {
	if in.def == nil {
		return p.NumValues
	}
	n := 0
	for _, d := range in.def {
		if d >= p.Descriptor.MaxDefLevel {
			n++
		}
	}
	return n
}
