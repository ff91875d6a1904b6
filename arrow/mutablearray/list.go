package mutablearray

import (
	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/arrowerr"
)

// DynMutableListArray is the auxiliary list builder the parquet-read path
// uses (spec.md section 4.3.2): offsets starting at [0], a dynamically
// typed child MutableArray, and lazily allocated validity with the same
// back-fill rule as the primitive/binary builders.
type DynMutableListArray[O arrow.Offset] struct {
	dtype    arrow.ListType
	offsets  []O
	child    MutableArray
	validity *arrow.MutableBitmap
	done     bool
}

func NewDynMutableListArray[O arrow.Offset](dtype arrow.ListType, child MutableArray) *DynMutableListArray[O] {
	return &DynMutableListArray[O]{dtype: dtype, offsets: []O{0}, child: child}
}

func (m *DynMutableListArray[O]) Len() int                { return len(m.offsets) - 1 }
func (m *DynMutableListArray[O]) DataType() arrow.DataType { return m.dtype }

func (m *DynMutableListArray[O]) lazyInitValidity() {
	if m.validity != nil {
		return
	}
	v := arrow.NewMutableBitmap(m.Len() + 1)
	v.ExtendConstant(m.Len(), true)
	m.validity = &v
}

// TryPushValid appends child.Len() as the next offset, failing with
// Overflow if it does not fit in O.
func (m *DynMutableListArray[O]) TryPushValid() error {
	next := int64(m.child.Len())
	if !fitsOffset[O](next) {
		return arrowerr.OverflowErr("list offset type")
	}
	m.offsets = append(m.offsets, O(next))
	if m.validity != nil {
		m.validity.Push(true)
	}
	return nil
}

// PushNull repeats the last offset and lazily back-fills validity.
func (m *DynMutableListArray[O]) PushNull() {
	m.lazyInitValidity()
	m.offsets = append(m.offsets, m.offsets[len(m.offsets)-1])
	m.validity.Push(false)
}

func (m *DynMutableListArray[O]) Reserve(n int) {
	if m.validity != nil {
		m.validity.Reserve(n)
	}
	m.child.Reserve(n)
}

func (m *DynMutableListArray[O]) ShrinkToFit() { m.child.ShrinkToFit() }

func (m *DynMutableListArray[O]) IntoArray() arrow.Array {
	if m.done {
		panic("mutablearray: IntoArray called twice")
	}
	m.done = true
	var validity *arrow.Bitmap
	if m.validity != nil {
		b := m.validity.Finish()
		validity = &b
	}
	child := m.child.IntoArray()
	return arrow.NewListArray(m.dtype, m.offsets, child, validity)
}

// Child exposes the inner builder so page decoders can push primitive
// leaf values into it directly.
func (m *DynMutableListArray[O]) Child() MutableArray { return m.child }

// GrowableList copies slices from source ListArray[O]s, recursing into the
// shared child Growable for the referenced child range.
type GrowableList[O arrow.Offset] struct {
	dtype    arrow.ListType
	sources  []*arrow.ListArray[O]
	offsets  []O
	child    Growable
	validity *arrow.MutableBitmap
}

func NewGrowableList[O arrow.Offset](dtype arrow.ListType, sources []*arrow.ListArray[O], child Growable, useValidity bool, capacity int) *GrowableList[O] {
	g := &GrowableList[O]{dtype: dtype, sources: sources, offsets: make([]O, 1, capacity+1), child: child}
	if useValidity {
		v := arrow.NewMutableBitmap(capacity)
		g.validity = &v
	}
	return g
}

func (g *GrowableList[O]) Extend(sourceIndex, start, length int) {
	src := g.sources[sourceIndex]
	offs := src.Offsets()
	base := len(g.offsets) - 1
	for i := 0; i < length; i++ {
		childStart := offs[start+i]
		childLen := offs[start+i+1] - childStart
		g.child.Extend(sourceIndex, int(childStart), int(childLen))
		next := g.offsets[len(g.offsets)-1] + childLen
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

func (g *GrowableList[O]) ExtendValidity(additional int) {
	last := g.offsets[len(g.offsets)-1]
	for i := 0; i < additional; i++ {
		g.offsets = append(g.offsets, last)
	}
	g.child.ExtendValidity(0)
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

func (g *GrowableList[O]) AsBox() arrow.Array {
	var validity *arrow.Bitmap
	if g.validity != nil {
		b := g.validity.Finish()
		validity = &b
	}
	child := g.child.AsBox()
	return arrow.NewListArray(g.dtype, g.offsets, child, validity)
}
