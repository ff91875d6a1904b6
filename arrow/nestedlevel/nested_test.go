package nestedlevel_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLeaf counts PushValid/PushNull calls in order, standing in for
// the primitive decoder that would otherwise pull one value per PushValid.
type recordingLeaf struct {
	calls []bool // true = valid, false = null
}

func (l *recordingLeaf) PushValid() { l.calls = append(l.calls, true) }
func (l *recordingLeaf) PushNull()  { l.calls = append(l.calls, false) }

// TestExtendNestedListOfInt32 is concrete scenario 5: source
// [[1,2,3],[],null,[4]] encoded as a nullable list over a nullable i32,
// decoded back to outer offsets [0,3,3,3,4], outer validity
// [true,true,false,true], inner values [1,2,3,4].
func TestExtendNestedListOfInt32(t *testing.T) {
	init := []nestedlevel.InitNested{
		{Kind: nestedlevel.InitList, Nullable: true},
		{Kind: nestedlevel.InitPrimitive, Nullable: true},
	}
	stack := nestedlevel.InitNestedStack(init, 4)
	leaf := &recordingLeaf{}

	pairs := []nestedlevel.LevelPair{
		{Rep: 0, Def: 3}, // row0 elem0 = 1
		{Rep: 1, Def: 3}, // row0 elem1 = 2
		{Rep: 1, Def: 3}, // row0 elem2 = 3
		{Rep: 0, Def: 1}, // row1 = [] (present, empty)
		{Rep: 0, Def: 0}, // row2 = null
		{Rep: 0, Def: 3}, // row3 elem0 = 4
	}
	nestedlevel.Extend(stack, pairs, leaf, 3)

	outer := stack[0].(*nestedlevel.NestedOptional)
	require.Equal(t, []int64{0, 3, 3, 3}, outer.Offsets)
	require.Equal(t, 4, outer.Len())
	assert.Equal(t, []bool{true, true, false, true}, outer.Validity.Bits())

	inner := stack[1].(*nestedlevel.NestedPrimitive)
	require.Equal(t, 4, inner.Len())

	// The caller's array-assembly step appends the closing total to the
	// per-row start offsets to produce the final Arrow offsets buffer.
	finalOffsets := append(append([]int64{}, outer.Offsets...), inner.NumValues())
	assert.Equal(t, []int64{0, 3, 3, 3, 4}, finalOffsets)

	// Exactly 4 leaf pushes, all valid, correlating 1:1 with [1,2,3,4].
	require.Equal(t, []bool{true, true, true, true}, leaf.calls)
}

// TestExtendStructOfRequiredPrimitive covers a required struct over a
// required primitive: every row is present, so the struct's length
// counter tracks rows 1:1 and every element reaches the leaf.
func TestExtendStructOfRequiredPrimitive(t *testing.T) {
	init := []nestedlevel.InitNested{
		{Kind: nestedlevel.InitStruct, Nullable: false},
		{Kind: nestedlevel.InitPrimitive, Nullable: false},
	}
	stack := nestedlevel.InitNestedStack(init, 3)
	leaf := &recordingLeaf{}

	pairs := []nestedlevel.LevelPair{
		{Rep: 0, Def: 0},
		{Rep: 0, Def: 0},
		{Rep: 0, Def: 0},
	}
	nestedlevel.Extend(stack, pairs, leaf, 0)

	outer := stack[0].(*nestedlevel.NestedStructValid)
	require.Equal(t, 3, outer.Len())
	require.Equal(t, []bool{true, true, true}, leaf.calls)
}
