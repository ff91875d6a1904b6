package arrow

import (
	"strconv"
	"unicode/utf8"
)

// BinaryArray is Binary/LargeBinary(offset=O) from spec.md section 3:
// offsets[0..=n] monotonically non-decreasing (offsets[0] may be nonzero
// for sliced arrays), values buffer of length offsets[n]-offsets[0].
type BinaryArray[O Offset] struct {
	dtype    DataType
	offsets  []O
	values   []byte
	validity *Bitmap
	// rowOffset indexes into offsets for slicing; length is the row count.
	rowOffset int
	length    int
}

// NewBinaryArray validates offsets monotonicity (invariant 3, spec.md
// section 8) before constructing.
func NewBinaryArray[O Offset](dtype DataType, offsets []O, values []byte, validity *Bitmap) *BinaryArray[O] {
	if len(offsets) == 0 {
		panic("arrow: BinaryArray offsets must have at least one element")
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			panic("arrow: BinaryArray offsets must be monotonically non-decreasing")
		}
	}
	length := len(offsets) - 1
	if validity != nil && validity.Len() != length {
		panic("arrow: BinaryArray validity length mismatch")
	}
	return &BinaryArray[O]{dtype: dtype, offsets: offsets, values: values, validity: validity, length: length}
}

func (a *BinaryArray[O]) DataType() DataType { return a.dtype }
func (a *BinaryArray[O]) Len() int           { return a.length }
func (a *BinaryArray[O]) Validity() *Bitmap  { return a.validity }
func (a *BinaryArray[O]) NullCount() int     { return nullCountFromValidity(a.validity, a.length) }

// Value returns the byte slice at logical index i (into the shared values
// buffer; does not copy), ignoring validity.
func (a *BinaryArray[O]) Value(i int) []byte {
	idx := a.rowOffset + i
	start := int(a.offsets[idx])
	end := int(a.offsets[idx+1])
	return a.values[start:end]
}

func (a *BinaryArray[O]) IsValid(i int) bool {
	if a.validity == nil {
		return true
	}
	return a.validity.GetBit(i)
}

func (a *BinaryArray[O]) Slice(offset, length int) Array {
	if offset < 0 || length < 0 || offset+length > a.length {
		panic("arrow: BinaryArray.Slice out of range")
	}
	return a.SliceUnchecked(offset, length)
}

func (a *BinaryArray[O]) SliceUnchecked(offset, length int) Array {
	var v *Bitmap
	if a.validity != nil {
		s := a.validity.Slice(offset, length)
		v = &s
	}
	return &BinaryArray[O]{dtype: a.dtype, offsets: a.offsets, values: a.values, validity: v, rowOffset: a.rowOffset + offset, length: length}
}

func (a *BinaryArray[O]) ToBoxed() Array {
	cp := *a
	return &cp
}

// Offsets returns the full offsets slice covering this array's logical
// range, offsets[0] possibly nonzero when sliced.
func (a *BinaryArray[O]) Offsets() []O {
	return a.offsets[a.rowOffset : a.rowOffset+a.length+1]
}

// BinaryValueIter iterates the non-null-gated []byte values of a
// BinaryArray. It is length-exact: Len() and the iterator's remaining count
// always agree, resolving the Open Question in spec.md section 9 ("a
// length-exact iterator contract is intended but not explicitly enforced").
type BinaryValueIter[O Offset] struct {
	array *BinaryArray[O]
	index int
}

// NewBinaryValueIter creates a length-exact iterator over array's values.
func NewBinaryValueIter[O Offset](array *BinaryArray[O]) *BinaryValueIter[O] {
	return &BinaryValueIter[O]{array: array}
}

// Len reports the exact number of remaining values.
func (it *BinaryValueIter[O]) Len() int { return it.array.Len() - it.index }

// Next returns the next value and true, or a zero value and false when
// exhausted.
func (it *BinaryValueIter[O]) Next() ([]byte, bool) {
	if it.index >= it.array.Len() {
		return nil, false
	}
	v := it.array.Value(it.index)
	it.index++
	return v, true
}

// Utf8Array is BinaryArray specialized to guarantee every non-null slice is
// valid UTF-8 (spec.md section 3).
type Utf8Array[O Offset] struct {
	*BinaryArray[O]
}

// NewUtf8Array validates UTF-8 of every non-null slot (a single pass at
// construction time, per spec.md section 7's "deferred to a single pass at
// array finalization when requested" policy) before constructing.
func NewUtf8Array[O Offset](dtype DataType, offsets []O, values []byte, validity *Bitmap) (*Utf8Array[O], error) {
	bin := NewBinaryArray(dtype, offsets, values, validity)
	for i := 0; i < bin.Len(); i++ {
		if !bin.IsValid(i) {
			continue
		}
		if !utf8.Valid(bin.Value(i)) {
			return nil, errInvalidUTF8(i)
		}
	}
	return &Utf8Array[O]{BinaryArray: bin}, nil
}

// NewUtf8ArrayUnchecked skips the UTF-8 validation pass for producers that
// can prove the invariant (spec.md section 4.2, "unchecked form for hot
// paths").
func NewUtf8ArrayUnchecked[O Offset](dtype DataType, offsets []O, values []byte, validity *Bitmap) *Utf8Array[O] {
	return &Utf8Array[O]{BinaryArray: NewBinaryArray(dtype, offsets, values, validity)}
}

func (a *Utf8Array[O]) ValueStr(i int) string { return string(a.Value(i)) }

func (a *Utf8Array[O]) Slice(offset, length int) Array {
	return &Utf8Array[O]{BinaryArray: a.BinaryArray.Slice(offset, length).(*BinaryArray[O])}
}

func (a *Utf8Array[O]) SliceUnchecked(offset, length int) Array {
	return &Utf8Array[O]{BinaryArray: a.BinaryArray.SliceUnchecked(offset, length).(*BinaryArray[O])}
}

func (a *Utf8Array[O]) ToBoxed() Array {
	cp := *a.BinaryArray
	return &Utf8Array[O]{BinaryArray: &cp}
}

func errInvalidUTF8(i int) error {
	return &utf8Error{index: i}
}

type utf8Error struct{ index int }

func (e *utf8Error) Error() string {
	return "arrow: invalid UTF-8 at index " + strconv.Itoa(e.index)
}
