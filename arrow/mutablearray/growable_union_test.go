package mutablearray_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/stretchr/testify/require"
)

// TestGrowableUnionDenseExtend is concrete scenario 6: source A has types
// [0,1,0], offsets [0,0,1], child0 [10,20], child1 ["x"]; extend(0, 1, 2)
// into an empty builder yields types [1,0], offsets [0,1], child0 [20],
// child1 ["x"].
func TestGrowableUnionDenseExtend(t *testing.T) {
	dtype := arrow.UnionType{
		Mode: arrow.DenseMode,
		Fields: []arrow.Field{
			{Name: "f0", Type: arrow.Int32},
			{Name: "f1", Type: arrow.Utf8},
		},
		TypeIDs: []int8{0, 1},
	}
	child0 := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{10, 20}, nil)
	child1, err := arrow.NewUtf8Array[int32](arrow.Utf8, []int32{0, 1}, []byte("x"), nil)
	require.NoError(t, err)

	src := arrow.NewUnionArray(dtype, []int8{0, 1, 0}, []arrow.Array{child0, child1}, []int32{0, 0, 1})

	fields := []mutablearray.Growable{
		mutablearray.MakeGrowable([]arrow.Array{child0}, false, 2),
		mutablearray.MakeGrowable([]arrow.Array{child1}, false, 2),
	}
	g := mutablearray.NewGrowableUnion([]*arrow.UnionArray{src}, fields, 2)
	g.Extend(0, 1, 2)

	out := g.AsBox().(*arrow.UnionArray)
	require.Equal(t, 2, out.Len())
	require.Equal(t, []int8{1, 0}, out.Types())
	require.Equal(t, []int32{0, 1}, out.Offsets())

	f0 := out.Fields()[0].(*arrow.PrimitiveArray[int32])
	require.Equal(t, 1, f0.Len())
	require.Equal(t, int32(20), f0.Value(0))

	f1 := out.Fields()[1].(*arrow.Utf8Array[int32])
	require.Equal(t, 1, f1.Len())
	require.Equal(t, "x", f1.ValueStr(0))
}
