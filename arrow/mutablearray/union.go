package mutablearray

import "github.com/colarrow/parquetcore/arrow"

// GrowableUnion implements the dense/sparse extend semantics of spec.md
// section 4.3.1, ported directly from
// original_source/src/array/growable/union.rs: dense unions carry
// per-slot offsets and extend exactly one element of the selected child per
// (type, offset) pair; sparse unions have no offsets and extend every
// child by the same [start, start+len) range.
//
// Preconditions: all source arrays share the same data type, the same
// child-field count, and are all dense (have offsets) or all sparse (do
// not). NewGrowableUnion panics when the union mode or the field count
// differ; field types are not compared.
type GrowableUnion struct {
	dtype   arrow.UnionType
	sources []*arrow.UnionArray
	types   []int8
	offsets []int32 // nil when sparse
	fields  []Growable
}

// NewGrowableUnion bound to sources, with capacity used to pre-size the
// types/offsets buffers. fields must be built with MakeGrowable over each
// field index across all sources, in the same order as sources[0].Fields().
func NewGrowableUnion(sources []*arrow.UnionArray, fields []Growable, capacity int) *GrowableUnion {
	if len(sources) == 0 {
		panic("mutablearray: GrowableUnion requires at least one source")
	}
	dtype := sources[0].DataType().(arrow.UnionType)
	hasOffsets := dtype.Mode == arrow.DenseMode
	for _, s := range sources {
		sdt := s.DataType().(arrow.UnionType)
		if sdt.Mode != dtype.Mode || len(sdt.Fields) != len(dtype.Fields) {
			panic("mutablearray: GrowableUnion sources must share data type and field count")
		}
	}
	g := &GrowableUnion{dtype: dtype, sources: sources, fields: fields, types: make([]int8, 0, capacity)}
	if hasOffsets {
		g.offsets = make([]int32, 0, capacity)
	}
	return g
}

func (g *GrowableUnion) Extend(sourceIndex, start, length int) {
	array := g.sources[sourceIndex]
	types := array.Types()[start : start+length]
	g.types = append(g.types, types...)

	if g.offsets != nil {
		offsets := array.Offsets()[start : start+length]
		g.offsets = append(g.offsets, offsets...)
		// Dense: each slot has its own offset; extend the matching child
		// builder by exactly one element per slot.
		for i, t := range types {
			g.fields[t].Extend(sourceIndex, int(offsets[i]), 1)
		}
	} else {
		// Sparse: every field has the same length; extend all fields
		// equally over [start, start+length).
		for _, f := range g.fields {
			f.Extend(sourceIndex, start, length)
		}
	}
}

// ExtendValidity is a no-op: union arrays carry no top-level validity
// bitmap (spec.md section 9).
func (g *GrowableUnion) ExtendValidity(int) {}

func (g *GrowableUnion) to() *arrow.UnionArray {
	fields := make([]arrow.Array, len(g.fields))
	for i, f := range g.fields {
		fields[i] = f.AsBox()
	}
	var offsets []int32
	if g.offsets != nil {
		offsets = g.offsets
	}
	return arrow.NewUnionArray(g.dtype, g.types, fields, offsets)
}

func (g *GrowableUnion) AsBox() arrow.Array { return g.to() }
