package mutablearray

import "github.com/colarrow/parquetcore/arrow"

// MutableBooleanArray incrementally builds a BooleanArray with the same
// lazy-validity discipline as MutablePrimitiveArray.
type MutableBooleanArray struct {
	values   arrow.MutableBitmap
	validity *arrow.MutableBitmap
	done     bool
}

func NewMutableBooleanArray() *MutableBooleanArray {
	return &MutableBooleanArray{values: arrow.NewMutableBitmap(0)}
}

func (m *MutableBooleanArray) Len() int                { return m.values.Len() }
func (m *MutableBooleanArray) DataType() arrow.DataType { return arrow.Boolean }

func (m *MutableBooleanArray) lazyInitValidity() {
	if m.validity != nil {
		return
	}
	v := arrow.NewMutableBitmap(m.values.Len() + 1)
	v.ExtendConstant(m.values.Len(), true)
	m.validity = &v
}

func (m *MutableBooleanArray) Push(v bool) {
	m.values.Push(v)
	if m.validity != nil {
		m.validity.Push(true)
	}
}

func (m *MutableBooleanArray) PushNull() {
	m.lazyInitValidity()
	m.values.Push(false)
	m.validity.Push(false)
}

func (m *MutableBooleanArray) Reserve(n int) {
	m.values.Reserve(n)
	if m.validity != nil {
		m.validity.Reserve(n)
	}
}

func (m *MutableBooleanArray) ShrinkToFit() {}

func (m *MutableBooleanArray) IntoArray() arrow.Array {
	if m.done {
		panic("mutablearray: IntoArray called twice")
	}
	m.done = true
	values := m.values.Finish()
	var validity *arrow.Bitmap
	if m.validity != nil {
		b := m.validity.Finish()
		validity = &b
	}
	return arrow.NewBooleanArray(values, validity)
}

// GrowableBoolean copies slices from source BooleanArrays.
type GrowableBoolean struct {
	sources  []*arrow.BooleanArray
	values   arrow.MutableBitmap
	validity *arrow.MutableBitmap
}

func NewGrowableBoolean(sources []*arrow.BooleanArray, useValidity bool, capacity int) *GrowableBoolean {
	g := &GrowableBoolean{sources: sources, values: arrow.NewMutableBitmap(capacity)}
	if useValidity {
		v := arrow.NewMutableBitmap(capacity)
		g.validity = &v
	}
	return g
}

func (g *GrowableBoolean) Extend(sourceIndex, start, length int) {
	src := g.sources[sourceIndex]
	base := g.values.Len()
	for i := 0; i < length; i++ {
		g.values.Push(src.Value(start + i))
	}
	for i := 0; i < length; i++ {
		valid := src.IsValid(start + i)
		switch {
		case g.validity != nil:
			g.validity.Push(valid)
		case !valid:
			v := arrow.NewMutableBitmap(g.values.Len())
			v.ExtendConstant(base+i, true)
			v.Push(false)
			g.validity = &v
		}
	}
}

func (g *GrowableBoolean) ExtendValidity(additional int) {
	g.values.ExtendConstant(additional, false)
	if g.validity == nil {
		v := arrow.NewMutableBitmap(g.values.Len())
		v.ExtendConstant(g.values.Len()-additional, true)
		v.ExtendConstant(additional, false)
		g.validity = &v
	} else {
		g.validity.ExtendConstant(additional, false)
	}
}

func (g *GrowableBoolean) AsBox() arrow.Array {
	values := g.values.Finish()
	var validity *arrow.Bitmap
	if g.validity != nil {
		b := g.validity.Finish()
		validity = &b
	}
	return arrow.NewBooleanArray(values, validity)
}
