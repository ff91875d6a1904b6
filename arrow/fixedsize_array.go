package arrow

// FixedSizeBinaryArray holds a values buffer of length n*k (spec.md
// section 3, FixedSizeBinary(k)).
type FixedSizeBinaryArray struct {
	dtype    FixedSizeBinaryType
	values   []byte
	offset   int
	length   int
	validity *Bitmap
}

func NewFixedSizeBinaryArray(dtype FixedSizeBinaryType, values []byte, validity *Bitmap) *FixedSizeBinaryArray {
	if len(values)%dtype.ByteWidth != 0 {
		panic("arrow: FixedSizeBinaryArray values length must be a multiple of ByteWidth")
	}
	length := len(values) / dtype.ByteWidth
	if validity != nil && validity.Len() != length {
		panic("arrow: FixedSizeBinaryArray validity length mismatch")
	}
	return &FixedSizeBinaryArray{dtype: dtype, values: values, length: length, validity: validity}
}

func (a *FixedSizeBinaryArray) DataType() DataType { return a.dtype }
func (a *FixedSizeBinaryArray) Len() int           { return a.length }
func (a *FixedSizeBinaryArray) Validity() *Bitmap  { return a.validity }
func (a *FixedSizeBinaryArray) NullCount() int     { return nullCountFromValidity(a.validity, a.length) }

func (a *FixedSizeBinaryArray) Value(i int) []byte {
	k := a.dtype.ByteWidth
	idx := a.offset + i
	return a.values[idx*k : (idx+1)*k]
}

func (a *FixedSizeBinaryArray) IsValid(i int) bool {
	if a.validity == nil {
		return true
	}
	return a.validity.GetBit(i)
}

func (a *FixedSizeBinaryArray) Slice(offset, length int) Array {
	if offset < 0 || length < 0 || offset+length > a.length {
		panic("arrow: FixedSizeBinaryArray.Slice out of range")
	}
	return a.SliceUnchecked(offset, length)
}

func (a *FixedSizeBinaryArray) SliceUnchecked(offset, length int) Array {
	var v *Bitmap
	if a.validity != nil {
		s := a.validity.Slice(offset, length)
		v = &s
	}
	return &FixedSizeBinaryArray{dtype: a.dtype, values: a.values, offset: a.offset + offset, length: length, validity: v}
}

func (a *FixedSizeBinaryArray) ToBoxed() Array {
	cp := *a
	return &cp
}
