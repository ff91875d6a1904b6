package mutablearray_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDynMutableStructArrayChildrenTrackLength is invariant 5 (nested
// length equality): every child of a struct builder stays exactly as long
// as the struct itself, including across PushNull calls that must fan out
// to every child.
func TestDynMutableStructArrayChildrenTrackLength(t *testing.T) {
	dtype := arrow.StructType{Fields: []arrow.Field{
		{Name: "a", Type: arrow.Int32},
		{Name: "b", Type: arrow.Utf8},
	}}
	f0 := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	f1 := mutablearray.NewMutableBinaryArray[int32](arrow.Utf8)
	s := mutablearray.NewDynMutableStructArray(dtype, []mutablearray.MutableArray{f0, f1})

	f0.Push(1)
	require.NoError(t, f1.Push([]byte("x")))
	s.PushValid()
	require.Equal(t, f0.Len(), s.Len())
	require.Equal(t, f1.Len(), s.Len())

	s.PushNull() // fans out to both children
	assert.Equal(t, s.Len(), f0.Len())
	assert.Equal(t, s.Len(), f1.Len())

	f0.Push(2)
	require.NoError(t, f1.Push([]byte("y")))
	s.PushValid()
	assert.Equal(t, s.Len(), f0.Len())
	assert.Equal(t, s.Len(), f1.Len())

	arr := s.IntoArray().(*arrow.StructArray)
	require.Equal(t, 3, arr.Len())
	children := arr.Fields()
	assert.Equal(t, 3, children[0].Len())
	assert.Equal(t, 3, children[1].Len())
	assert.True(t, arr.IsValid(0))
	assert.False(t, arr.IsValid(1))
	assert.True(t, arr.IsValid(2))
}

// TestGrowableUnionSparseExtendKeepsFieldsAtN is invariant 5 applied to a
// sparse union: every field array must end up exactly n elements long,
// matching the number of type-id slots, regardless of which field each
// slot's type id selects.
func TestGrowableUnionSparseExtendKeepsFieldsAtN(t *testing.T) {
	dtype := arrow.UnionType{
		Mode: arrow.SparseMode,
		Fields: []arrow.Field{
			{Name: "f0", Type: arrow.Int32},
			{Name: "f1", Type: arrow.Utf8},
		},
		TypeIDs: []int8{0, 1},
	}
	child0 := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{10, 99, 30}, nil)
	child1, err := arrow.NewUtf8Array[int32](arrow.Utf8, []int32{0, 1, 2, 3}, []byte("xby"), nil)
	require.NoError(t, err)

	src := arrow.NewUnionArray(dtype, []int8{0, 1, 0}, []arrow.Array{child0, child1}, nil)

	fields := []mutablearray.Growable{
		mutablearray.MakeGrowable([]arrow.Array{child0}, false, 3),
		mutablearray.MakeGrowable([]arrow.Array{child1}, false, 3),
	}
	g := mutablearray.NewGrowableUnion([]*arrow.UnionArray{src}, fields, 3)
	g.Extend(0, 0, 3)

	out := g.AsBox().(*arrow.UnionArray)
	require.Equal(t, 3, len(out.Types()))
	n := len(out.Types())
	for _, field := range out.Fields() {
		assert.Equal(t, n, field.Len())
	}
	assert.Nil(t, out.Offsets())
}
