package mutablearray

import (
	"github.com/colarrow/parquetcore/arrow"
	"golang.org/x/exp/constraints"
)

type scalar interface {
	constraints.Integer | constraints.Float
}

// ScalarConstraint is the exported name other packages (such as
// arrow/parquet/leafdecode) use to parameterize their own generic types
// over the same numeric element-type domain MutablePrimitiveArray
// supports.
type ScalarConstraint = scalar

// MutablePrimitiveArray incrementally builds a PrimitiveArray[T], allocating
// its validity bitmap lazily: per spec.md section 9 ("Lazy validity
// allocation"), the first null to arrive back-fills len-1 true bits then
// pushes a false bit, rather than allocating validity up front.
type MutablePrimitiveArray[T scalar] struct {
	dtype    arrow.DataType
	values   []T
	validity *arrow.MutableBitmap
	done     bool
}

func NewMutablePrimitiveArray[T scalar](dtype arrow.DataType) *MutablePrimitiveArray[T] {
	return &MutablePrimitiveArray[T]{dtype: dtype}
}

func NewMutablePrimitiveArrayWithCapacity[T scalar](dtype arrow.DataType, capacity int) *MutablePrimitiveArray[T] {
	return &MutablePrimitiveArray[T]{dtype: dtype, values: make([]T, 0, capacity)}
}

func (m *MutablePrimitiveArray[T]) Len() int            { return len(m.values) }
func (m *MutablePrimitiveArray[T]) DataType() arrow.DataType { return m.dtype }

func (m *MutablePrimitiveArray[T]) lazyInitValidity() {
	if m.validity != nil {
		return
	}
	v := arrow.NewMutableBitmap(len(m.values) + 1)
	v.ExtendConstant(len(m.values), true)
	m.validity = &v
}

// Push appends a valid value.
func (m *MutablePrimitiveArray[T]) Push(v T) {
	m.values = append(m.values, v)
	if m.validity != nil {
		m.validity.Push(true)
	}
}

func (m *MutablePrimitiveArray[T]) PushNull() {
	m.lazyInitValidity()
	var zero T
	m.values = append(m.values, zero)
	m.validity.Push(false)
}

func (m *MutablePrimitiveArray[T]) Reserve(n int) {
	if cap(m.values)-len(m.values) < n {
		grown := make([]T, len(m.values), len(m.values)+n)
		copy(grown, m.values)
		m.values = grown
	}
	if m.validity != nil {
		m.validity.Reserve(n)
	}
}

func (m *MutablePrimitiveArray[T]) ShrinkToFit() {
	shrunk := make([]T, len(m.values))
	copy(shrunk, m.values)
	m.values = shrunk
}

func (m *MutablePrimitiveArray[T]) IntoArray() arrow.Array {
	if m.done {
		panic("mutablearray: IntoArray called twice")
	}
	m.done = true
	var validity *arrow.Bitmap
	if m.validity != nil {
		b := m.validity.Finish()
		validity = &b
	}
	return arrow.NewPrimitiveArray(m.dtype, m.values, validity)
}

// GrowablePrimitive copies slices from one or more source PrimitiveArray[T]s.
type GrowablePrimitive[T scalar] struct {
	dtype    arrow.DataType
	sources  []*arrow.PrimitiveArray[T]
	values   []T
	validity *arrow.MutableBitmap
	useValidity bool
}

func NewGrowablePrimitive[T scalar](sources []*arrow.PrimitiveArray[T], useValidity bool, capacity int) *GrowablePrimitive[T] {
	g := &GrowablePrimitive[T]{dtype: sources[0].DataType(), sources: sources, values: make([]T, 0, capacity), useValidity: useValidity}
	if useValidity {
		v := arrow.NewMutableBitmap(capacity)
		g.validity = &v
	}
	return g
}

func (g *GrowablePrimitive[T]) Extend(sourceIndex, start, length int) {
	src := g.sources[sourceIndex]
	base := len(g.values)
	for i := 0; i < length; i++ {
		g.values = append(g.values, src.Value(start+i))
	}
	for i := 0; i < length; i++ {
		valid := src.IsValid(start + i)
		switch {
		case g.validity != nil:
			g.validity.Push(valid)
		case !valid:
			g.promoteValidity(base + i)
			g.validity.Push(false)
		}
	}
}

func (g *GrowablePrimitive[T]) promoteValidity(validCount int) {
	v := arrow.NewMutableBitmap(len(g.values))
	v.ExtendConstant(validCount, true)
	g.validity = &v
}

func (g *GrowablePrimitive[T]) ExtendValidity(additional int) {
	var zero T
	for i := 0; i < additional; i++ {
		g.values = append(g.values, zero)
	}
	if g.validity == nil {
		g.promoteValidity(len(g.values) - additional)
	}
	g.validity.ExtendConstant(additional, false)
}

func (g *GrowablePrimitive[T]) AsBox() arrow.Array {
	var validity *arrow.Bitmap
	if g.validity != nil {
		b := g.validity.Finish()
		validity = &b
	}
	return arrow.NewPrimitiveArray(g.dtype, g.values, validity)
}
