package mutablearray

import "github.com/colarrow/parquetcore/arrow"

// DynMutableStructArray is the auxiliary struct builder the parquet-read
// path uses (spec.md section 4.3.2): N children all kept at equal length;
// PushNull pushes null into every child and flips a bit in the top-level
// validity, lazily created with the same back-fill rule.
type DynMutableStructArray struct {
	dtype    arrow.StructType
	children []MutableArray
	validity *arrow.MutableBitmap
	length   int
	done     bool
}

func NewDynMutableStructArray(dtype arrow.StructType, children []MutableArray) *DynMutableStructArray {
	return &DynMutableStructArray{dtype: dtype, children: children}
}

func (m *DynMutableStructArray) Len() int                { return m.length }
func (m *DynMutableStructArray) DataType() arrow.DataType { return m.dtype }

func (m *DynMutableStructArray) lazyInitValidity() {
	if m.validity != nil {
		return
	}
	v := arrow.NewMutableBitmap(m.length + 1)
	v.ExtendConstant(m.length, true)
	m.validity = &v
}

// PushValid records one valid row; callers are responsible for pushing a
// value into each child themselves (the struct builder only tracks length
// and validity).
func (m *DynMutableStructArray) PushValid() {
	m.length++
	if m.validity != nil {
		m.validity.Push(true)
	}
}

func (m *DynMutableStructArray) PushNull() {
	m.lazyInitValidity()
	for _, c := range m.children {
		c.PushNull()
	}
	m.length++
	m.validity.Push(false)
}

func (m *DynMutableStructArray) Reserve(n int) {
	for _, c := range m.children {
		c.Reserve(n)
	}
	if m.validity != nil {
		m.validity.Reserve(n)
	}
}

func (m *DynMutableStructArray) ShrinkToFit() {
	for _, c := range m.children {
		c.ShrinkToFit()
	}
}

func (m *DynMutableStructArray) Children() []MutableArray { return m.children }

func (m *DynMutableStructArray) IntoArray() arrow.Array {
	if m.done {
		panic("mutablearray: IntoArray called twice")
	}
	m.done = true
	var validity *arrow.Bitmap
	if m.validity != nil {
		b := m.validity.Finish()
		validity = &b
	}
	children := make([]arrow.Array, len(m.children))
	for i, c := range m.children {
		children[i] = c.IntoArray()
	}
	return arrow.NewStructArray(m.dtype, children, validity)
}

// GrowableStruct copies slices from source StructArrays into per-field
// Growables.
type GrowableStruct struct {
	dtype    arrow.StructType
	sources  []*arrow.StructArray
	fields   []Growable
	validity *arrow.MutableBitmap
}

func NewGrowableStruct(dtype arrow.StructType, sources []*arrow.StructArray, fields []Growable, useValidity bool, capacity int) *GrowableStruct {
	g := &GrowableStruct{dtype: dtype, sources: sources, fields: fields}
	if useValidity {
		v := arrow.NewMutableBitmap(capacity)
		g.validity = &v
	}
	return g
}

func (g *GrowableStruct) Extend(sourceIndex, start, length int) {
	src := g.sources[sourceIndex]
	for _, f := range g.fields {
		f.Extend(sourceIndex, start, length)
	}
	for i := 0; i < length; i++ {
		valid := src.IsValid(start + i)
		if g.validity != nil {
			g.validity.Push(valid)
		}
	}
}

func (g *GrowableStruct) ExtendValidity(additional int) {
	for _, f := range g.fields {
		f.ExtendValidity(additional)
	}
	if g.validity != nil {
		g.validity.ExtendConstant(additional, false)
	}
}

func (g *GrowableStruct) AsBox() arrow.Array {
	children := make([]arrow.Array, len(g.fields))
	for i, f := range g.fields {
		children[i] = f.AsBox()
	}
	var validity *arrow.Bitmap
	if g.validity != nil {
		b := g.validity.Finish()
		validity = &b
	}
	return arrow.NewStructArray(g.dtype, children, validity)
}
