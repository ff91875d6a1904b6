package mutablearray

import "github.com/colarrow/parquetcore/arrow"

// MutableFixedSizeBinaryArray incrementally builds a FixedSizeBinaryArray,
// with the same lazy-validity discipline as MutablePrimitiveArray.
type MutableFixedSizeBinaryArray struct {
	dtype    arrow.FixedSizeBinaryType
	values   []byte
	validity *arrow.MutableBitmap
	done     bool
}

func NewMutableFixedSizeBinaryArray(dtype arrow.FixedSizeBinaryType) *MutableFixedSizeBinaryArray {
	return &MutableFixedSizeBinaryArray{dtype: dtype}
}

func (m *MutableFixedSizeBinaryArray) Len() int             { return len(m.values) / m.dtype.ByteWidth }
func (m *MutableFixedSizeBinaryArray) DataType() arrow.DataType { return m.dtype }

func (m *MutableFixedSizeBinaryArray) lazyInitValidity() {
	if m.validity != nil {
		return
	}
	v := arrow.NewMutableBitmap(m.Len() + 1)
	v.ExtendConstant(m.Len(), true)
	m.validity = &v
}

// Push appends one ByteWidth-sized valid value; panics if v is the wrong
// length, mirroring the construction-time invariant check in
// NewFixedSizeBinaryArray.
func (m *MutableFixedSizeBinaryArray) Push(v []byte) {
	if len(v) != m.dtype.ByteWidth {
		panic("mutablearray: MutableFixedSizeBinaryArray.Push wrong byte width")
	}
	m.values = append(m.values, v...)
	if m.validity != nil {
		m.validity.Push(true)
	}
}

func (m *MutableFixedSizeBinaryArray) PushNull() {
	m.lazyInitValidity()
	m.values = append(m.values, make([]byte, m.dtype.ByteWidth)...)
	m.validity.Push(false)
}

func (m *MutableFixedSizeBinaryArray) Reserve(n int) {
	if m.validity != nil {
		m.validity.Reserve(n)
	}
}

func (m *MutableFixedSizeBinaryArray) ShrinkToFit() {}

func (m *MutableFixedSizeBinaryArray) IntoArray() arrow.Array {
	if m.done {
		panic("mutablearray: IntoArray called twice")
	}
	m.done = true
	var validity *arrow.Bitmap
	if m.validity != nil {
		b := m.validity.Finish()
		validity = &b
	}
	return arrow.NewFixedSizeBinaryArray(m.dtype, m.values, validity)
}

// GrowableFixedSizeBinary copies slices from source FixedSizeBinaryArrays.
type GrowableFixedSizeBinary struct {
	dtype    arrow.FixedSizeBinaryType
	sources  []*arrow.FixedSizeBinaryArray
	values   []byte
	validity *arrow.MutableBitmap
}

func NewGrowableFixedSizeBinary(sources []*arrow.FixedSizeBinaryArray, useValidity bool, capacity int) *GrowableFixedSizeBinary {
	dtype := sources[0].DataType().(arrow.FixedSizeBinaryType)
	g := &GrowableFixedSizeBinary{dtype: dtype, sources: sources, values: make([]byte, 0, capacity*dtype.ByteWidth)}
	if useValidity {
		v := arrow.NewMutableBitmap(capacity)
		g.validity = &v
	}
	return g
}

func (g *GrowableFixedSizeBinary) Extend(sourceIndex, start, length int) {
	src := g.sources[sourceIndex]
	for i := 0; i < length; i++ {
		g.values = append(g.values, src.Value(start+i)...)
	}
	for i := 0; i < length; i++ {
		valid := src.IsValid(start + i)
		if g.validity != nil {
			g.validity.Push(valid)
		} else if !valid {
			n := len(g.values)/g.dtype.ByteWidth - length + i
			v := arrow.NewMutableBitmap(n + 1)
			v.ExtendConstant(n, true)
			v.Push(false)
			g.validity = &v
		}
	}
}

func (g *GrowableFixedSizeBinary) ExtendValidity(additional int) {
	g.values = append(g.values, make([]byte, additional*g.dtype.ByteWidth)...)
	if g.validity == nil {
		n := len(g.values) / g.dtype.ByteWidth
		v := arrow.NewMutableBitmap(n)
		v.ExtendConstant(n-additional, true)
		v.ExtendConstant(additional, false)
		g.validity = &v
	} else {
		g.validity.ExtendConstant(additional, false)
	}
}

func (g *GrowableFixedSizeBinary) AsBox() arrow.Array {
	var validity *arrow.Bitmap
	if g.validity != nil {
		b := g.validity.Finish()
		validity = &b
	}
	return arrow.NewFixedSizeBinaryArray(g.dtype, g.values, validity)
}
