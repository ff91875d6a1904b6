package mutablearray

import (
	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/arrowerr"
)

// MutableBinaryArray incrementally builds a BinaryArray[O]; IntoArray
// returns a *BinaryArray[O] also when dtype is Utf8/LargeUtf8.
// offsets always starts with a single 0 (spec.md section 4.3.2).
type MutableBinaryArray[O arrow.Offset] struct {
	dtype    arrow.DataType
	offsets  []O
	values   []byte
	validity *arrow.MutableBitmap
	done     bool
}

func NewMutableBinaryArray[O arrow.Offset](dtype arrow.DataType) *MutableBinaryArray[O] {
	return &MutableBinaryArray[O]{dtype: dtype, offsets: []O{0}}
}

func (m *MutableBinaryArray[O]) Len() int             { return len(m.offsets) - 1 }
func (m *MutableBinaryArray[O]) DataType() arrow.DataType { return m.dtype }

func (m *MutableBinaryArray[O]) lazyInitValidity() {
	if m.validity != nil {
		return
	}
	v := arrow.NewMutableBitmap(m.Len() + 1)
	v.ExtendConstant(m.Len(), true)
	m.validity = &v
}

// Push appends a valid value, checking the new offset still fits in O.
func (m *MutableBinaryArray[O]) Push(v []byte) error {
	next := int64(m.offsets[len(m.offsets)-1]) + int64(len(v))
	if !fitsOffset[O](next) {
		return arrowerr.OverflowErr("offset type")
	}
	m.values = append(m.values, v...)
	m.offsets = append(m.offsets, O(next))
	if m.validity != nil {
		m.validity.Push(true)
	}
	return nil
}

func (m *MutableBinaryArray[O]) PushNull() {
	m.lazyInitValidity()
	m.offsets = append(m.offsets, m.offsets[len(m.offsets)-1])
	m.validity.Push(false)
}

func (m *MutableBinaryArray[O]) Reserve(n int) {
	if m.validity != nil {
		m.validity.Reserve(n)
	}
}

func (m *MutableBinaryArray[O]) ShrinkToFit() {}

func (m *MutableBinaryArray[O]) IntoArray() arrow.Array {
	if m.done {
		panic("mutablearray: IntoArray called twice")
	}
	m.done = true
	var validity *arrow.Bitmap
	if m.validity != nil {
		b := m.validity.Finish()
		validity = &b
	}
	return arrow.NewBinaryArray(m.dtype, m.offsets, m.values, validity)
}

// GrowableBinary copies slices from source BinaryArray[O]s, advancing
// offsets and copying referenced value bytes (spec.md section 4.3). AsBox
// returns a Utf8Array[O] when the data type is Utf8/LargeUtf8.
type GrowableBinary[O arrow.Offset] struct {
	dtype    arrow.DataType
	sources  []*arrow.BinaryArray[O]
	offsets  []O
	values   []byte
	validity *arrow.MutableBitmap
}

func NewGrowableBinary[O arrow.Offset](sources []*arrow.BinaryArray[O], useValidity bool, capacity int) *GrowableBinary[O] {
	g := &GrowableBinary[O]{dtype: sources[0].DataType(), sources: sources, offsets: make([]O, 1, capacity+1)}
	if useValidity {
		v := arrow.NewMutableBitmap(capacity)
		g.validity = &v
	}
	return g
}

func (g *GrowableBinary[O]) Extend(sourceIndex, start, length int) {
	src := g.sources[sourceIndex]
	base := len(g.offsets) - 1
	for i := 0; i < length; i++ {
		v := src.Value(start + i)
		g.values = append(g.values, v...)
		next := g.offsets[len(g.offsets)-1] + O(len(v))
		g.offsets = append(g.offsets, next)
	}
	for i := 0; i < length; i++ {
		valid := src.IsValid(start + i)
		switch {
		case g.validity != nil:
			g.validity.Push(valid)
		case !valid:
			v := arrow.NewMutableBitmap(base + length)
			v.ExtendConstant(base+i, true)
			v.Push(false)
			g.validity = &v
		}
	}
}

func (g *GrowableBinary[O]) ExtendValidity(additional int) {
	last := g.offsets[len(g.offsets)-1]
	for i := 0; i < additional; i++ {
		g.offsets = append(g.offsets, last)
	}
	if g.validity == nil {
		n := len(g.offsets) - 1
		v := arrow.NewMutableBitmap(n)
		v.ExtendConstant(n-additional, true)
		v.ExtendConstant(additional, false)
		g.validity = &v
	} else {
		g.validity.ExtendConstant(additional, false)
	}
}

func (g *GrowableBinary[O]) AsBox() arrow.Array {
	var validity *arrow.Bitmap
	if g.validity != nil {
		b := g.validity.Finish()
		validity = &b
	}
	arr := arrow.NewBinaryArray(g.dtype, g.offsets, g.values, validity)
	if id := g.dtype.ID(); id == arrow.UTF8 || id == arrow.LARGE_UTF8 {
		return &arrow.Utf8Array[O]{BinaryArray: arr}
	}
	return arr
}

func fitsOffset[O arrow.Offset](v int64) bool {
	var z O
	switch any(z).(type) {
	case int32:
		return v >= 0 && v <= int64(1<<31-1)
	default:
		return true // int64 offsets: Parquet pages never approach 2^63 bytes
	}
}
