package arrow

// UnionArray: type_ids[0..n] selects a child. Dense adds offsets[0..n] into
// the selected child; Sparse requires all children of length n and no
// offsets (spec.md section 3). Per spec.md section 9, union arrays carry no
// top-level validity bitmap: nullness is a property of the selected child
// slot.
type UnionArray struct {
	dtype     UnionType
	types     []int8
	offsets   []int32 // nil for Sparse
	fields    []Array
	rowOffset int
	length    int
}

func NewUnionArray(dtype UnionType, types []int8, fields []Array, offsets []int32) *UnionArray {
	length := len(types)
	if dtype.Mode == DenseMode {
		if offsets == nil {
			panic("arrow: dense UnionArray requires offsets")
		}
		if len(offsets) != length {
			panic("arrow: dense UnionArray offsets length mismatch")
		}
	} else {
		if offsets != nil {
			panic("arrow: sparse UnionArray must not carry offsets")
		}
		for _, f := range fields {
			if f.Len() != length {
				panic("arrow: sparse UnionArray fields must all have length n")
			}
		}
	}
	return &UnionArray{dtype: dtype, types: types, offsets: offsets, fields: fields, length: length}
}

func (a *UnionArray) DataType() DataType { return a.dtype }
func (a *UnionArray) Len() int           { return a.length }
func (a *UnionArray) Validity() *Bitmap  { return nil }
func (a *UnionArray) NullCount() int     { return 0 }

func (a *UnionArray) Types() []int8 {
	return a.types[a.rowOffset : a.rowOffset+a.length]
}

// Offsets returns the dense offsets slice, or nil for a Sparse union.
func (a *UnionArray) Offsets() []int32 {
	if a.offsets == nil {
		return nil
	}
	return a.offsets[a.rowOffset : a.rowOffset+a.length]
}

func (a *UnionArray) Fields() []Array { return a.fields }

// Field returns child field i, sliced to this union's logical window when
// the union is Sparse (dense unions index fields via per-slot Offsets
// instead, since each field may be shorter than the union).
func (a *UnionArray) Field(i int) Array {
	if a.dtype.Mode == SparseMode {
		return a.fields[i].Slice(a.rowOffset, a.length)
	}
	return a.fields[i]
}

func (a *UnionArray) Slice(offset, length int) Array {
	if offset < 0 || length < 0 || offset+length > a.length {
		panic("arrow: UnionArray.Slice out of range")
	}
	return a.SliceUnchecked(offset, length)
}

func (a *UnionArray) SliceUnchecked(offset, length int) Array {
	return &UnionArray{dtype: a.dtype, types: a.types, offsets: a.offsets, fields: a.fields, rowOffset: a.rowOffset + offset, length: length}
}

func (a *UnionArray) ToBoxed() Array {
	cp := *a
	return &cp
}
