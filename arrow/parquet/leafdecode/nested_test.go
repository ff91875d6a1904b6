package leafdecode_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/leafdecode"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/pagestate"
	"github.com/colarrow/parquetcore/arrow/parquet/write"
	"github.com/stretchr/testify/require"
)

func lengthPrefixedLevels(levels []uint32, bitWidth uint) []byte {
	values := make([]uint64, len(levels))
	for i, v := range levels {
		values[i] = uint64(v)
	}
	groups := (len(values) + 7) / 8
	header := []byte{byte(groups<<1 | 1)}
	nbits := groups * 8 * int(bitWidth)
	packed := make([]byte, (nbits+7)/8)
	var bitBuf uint64
	var bitsInBuf uint
	pos := 0
	for i := 0; i < groups*8; i++ {
		var v uint64
		if i < len(values) {
			v = values[i]
		}
		bitBuf |= v << bitsInBuf
		bitsInBuf += bitWidth
		for bitsInBuf >= 8 {
			packed[pos] = byte(bitBuf)
			bitBuf >>= 8
			bitsInBuf -= 8
			pos++
		}
	}
	if bitsInBuf > 0 && pos < len(packed) {
		packed[pos] = byte(bitBuf)
	}
	body := append(header, packed...)
	out := make([]byte, 4+len(body))
	out[0] = byte(len(body))
	out[1] = byte(len(body) >> 8)
	out[2] = byte(len(body) >> 16)
	out[3] = byte(len(body) >> 24)
	copy(out[4:], body)
	return out
}

// TestNestedListOfInt32EndToEnd drives a real encoded Parquet data page
// (rep/def level streams plus a Plain int32 value stream) through
// PrimitiveReader.NewNestedPusher, nestedlevel.Extend, and
// nestedlevel.Assemble end to end, producing a real arrow.ListArray[int32].
// This is concrete scenario 5 (nested list-of-int32 level reconstruction)
// exercised against an actual page rather than a synthetic LevelPair slice:
// four rows — a 3-element list, an empty (non-null) list, a null list, and
// a 1-element list.
func TestNestedListOfInt32EndToEnd(t *testing.T) {
	rep := []uint32{0, 1, 1, 0, 0, 0}
	def := []uint32{3, 3, 3, 1, 0, 3}
	const maxRepLevel = 1
	const maxDefLevel = 3

	repBuf := lengthPrefixedLevels(rep, pagestate.V1LevelBitWidth(maxRepLevel))
	defBuf := lengthPrefixedLevels(def, pagestate.V1LevelBitWidth(maxDefLevel))
	valuesBuf := write.EncodePlainInt32([]int32{10, 20, 30, 40})

	buf := append(append(append([]byte{}, repBuf...), defBuf...), valuesBuf...)
	page := pages.DataPage{
		Buffer: buf,
		Encoding: pages.Plain,
		Descriptor: pages.ColumnDescriptor{
			Physical:    pages.Int32,
			MaxRepLevel: maxRepLevel,
			MaxDefLevel: maxDefLevel,
		},
		NumValues: len(rep),
	}

	repOut, defOut, _, err := pages.SplitBuffer(page)
	require.NoError(t, err)
	repLevels, err := pagestate.DecodeLevels(repOut, pagestate.V1LevelBitWidth(maxRepLevel), len(rep))
	require.NoError(t, err)
	defLevels, err := pagestate.DecodeLevels(defOut, pagestate.V1LevelBitWidth(maxDefLevel), len(def))
	require.NoError(t, err)
	require.Equal(t, rep, repLevels)
	require.Equal(t, def, defLevels)

	pairs := make([]nestedlevel.LevelPair, len(rep))
	for i := range rep {
		pairs[i] = nestedlevel.LevelPair{Rep: repLevels[i], Def: defLevels[i]}
	}

	init := []nestedlevel.InitNested{
		{Kind: nestedlevel.InitList, Nullable: true},
		{Kind: nestedlevel.InitPrimitive, Nullable: true},
	}
	nested := nestedlevel.InitNestedStack(init, 4)

	reader := leafdecode.NewPrimitiveReader[int32, int32](arrow.Int32, leafdecode.DecodePlainInt32, func(v int32) int32 { return v })
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	leafPusher, err := reader.NewNestedPusher(page, nil, dst)
	require.NoError(t, err)

	nestedlevel.Extend(nested, pairs, leafPusher, maxDefLevel)

	leafArr := dst.IntoArray()
	require.Equal(t, 4, leafArr.Len())

	specs := []nestedlevel.AssembleSpec{
		{List: &arrow.ListType{Elem: arrow.Field{Name: "item", Type: arrow.Int32, Nullable: true}}},
	}
	result, err := nestedlevel.Assemble[int32](nested, specs, leafArr)
	require.NoError(t, err)

	listArr := result.(*arrow.ListArray[int32])
	require.Equal(t, 4, listArr.Len())
	require.Equal(t, []int32{0, 3, 3, 3, 4}, listArr.Offsets())

	require.True(t, listArr.IsValid(0))
	row0 := listArr.Value(0).(*arrow.PrimitiveArray[int32])
	require.Equal(t, []int32{10, 20, 30}, []int32{row0.Value(0), row0.Value(1), row0.Value(2)})

	require.True(t, listArr.IsValid(1)) // empty but non-null
	require.Equal(t, 0, listArr.Value(1).Len())

	require.False(t, listArr.IsValid(2)) // null list

	require.True(t, listArr.IsValid(3))
	row3 := listArr.Value(3).(*arrow.PrimitiveArray[int32])
	require.Equal(t, int32(40), row3.Value(0))
}
