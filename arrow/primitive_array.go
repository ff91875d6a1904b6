package arrow

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// scalar is any fixed-width value a PrimitiveArray can hold.
type scalar interface {
	constraints.Integer | constraints.Float
}

// PrimitiveArray is a dense buffer of n T's plus an optional validity
// bitmap of n bits (spec.md section 3, Primitive(T)). Null slots may hold
// arbitrary bytes; consumers must gate on validity.
type PrimitiveArray[T scalar] struct {
	dtype    DataType
	values   []T
	offset   int
	length   int
	validity *Bitmap
}

// NewPrimitiveArray validates and constructs a PrimitiveArray. validity may
// be nil (an all-valid array).
func NewPrimitiveArray[T scalar](dtype DataType, values []T, validity *Bitmap) *PrimitiveArray[T] {
	if validity != nil && validity.Len() != len(values) {
		panic("arrow: PrimitiveArray validity length mismatch")
	}
	return &PrimitiveArray[T]{dtype: dtype, values: values, length: len(values), validity: validity}
}

func (a *PrimitiveArray[T]) DataType() DataType { return a.dtype }
func (a *PrimitiveArray[T]) Len() int            { return a.length }
func (a *PrimitiveArray[T]) Validity() *Bitmap   { return a.validity }
func (a *PrimitiveArray[T]) NullCount() int      { return nullCountFromValidity(a.validity, a.length) }

// Value returns the value at logical index i, ignoring validity.
func (a *PrimitiveArray[T]) Value(i int) T { return a.values[a.offset+i] }

// IsValid reports whether the slot at logical index i is non-null.
func (a *PrimitiveArray[T]) IsValid(i int) bool {
	if a.validity == nil {
		return true
	}
	return a.validity.GetBit(i)
}

func (a *PrimitiveArray[T]) Slice(offset, length int) Array {
	if offset < 0 || length < 0 || offset+length > a.length {
		panic("arrow: PrimitiveArray.Slice out of range")
	}
	return a.SliceUnchecked(offset, length)
}

func (a *PrimitiveArray[T]) SliceUnchecked(offset, length int) Array {
	var v *Bitmap
	if a.validity != nil {
		s := a.validity.Slice(offset, length)
		v = &s
	}
	return &PrimitiveArray[T]{dtype: a.dtype, values: a.values, offset: a.offset + offset, length: length, validity: v}
}

func (a *PrimitiveArray[T]) ToBoxed() Array {
	cp := *a
	return &cp
}

// BooleanArray holds a packed-bit values buffer plus optional validity,
// distinct from PrimitiveArray because its value representation is itself
// a Bitmap rather than a dense T slice.
type BooleanArray struct {
	values   Bitmap
	offset   int
	length   int
	validity *Bitmap
}

func NewBooleanArray(values Bitmap, validity *Bitmap) *BooleanArray {
	return &BooleanArray{values: values, length: values.Len(), validity: validity}
}

func (a *BooleanArray) DataType() DataType { return Boolean }
func (a *BooleanArray) Len() int           { return a.length }
func (a *BooleanArray) Validity() *Bitmap  { return a.validity }
func (a *BooleanArray) NullCount() int     { return nullCountFromValidity(a.validity, a.length) }

func (a *BooleanArray) Value(i int) bool { return a.values.GetBit(a.offset + i) }

func (a *BooleanArray) IsValid(i int) bool {
	if a.validity == nil {
		return true
	}
	return a.validity.GetBit(i)
}

func (a *BooleanArray) Slice(offset, length int) Array {
	if offset < 0 || length < 0 || offset+length > a.length {
		panic("arrow: BooleanArray.Slice out of range")
	}
	return a.SliceUnchecked(offset, length)
}

func (a *BooleanArray) SliceUnchecked(offset, length int) Array {
	var v *Bitmap
	if a.validity != nil {
		s := a.validity.Slice(offset, length)
		v = &s
	}
	return &BooleanArray{values: a.values, offset: a.offset + offset, length: length, validity: v}
}

func (a *BooleanArray) ToBoxed() Array {
	cp := *a
	return &cp
}

// byteSize reports the width of a scalar.T in bytes; used by FixedSizeBinary
// and the dictionary codec's widening rules.
func byteSize[T scalar]() int {
	var z T
	return int(unsafe.Sizeof(z))
}
