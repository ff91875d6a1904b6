package write_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/mutablearray"
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/dictcodec"
	"github.com/colarrow/parquetcore/arrow/parquet/leafdecode"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/pagestate"
	"github.com/colarrow/parquetcore/arrow/parquet/write"
	"github.com/stretchr/testify/require"
)

func bitmapFrom(bits []bool) arrow.Bitmap {
	mb := arrow.NewMutableBitmap(len(bits))
	for _, b := range bits {
		mb.Push(b)
	}
	return mb.Finish()
}

// TestArrayToPagesDecodeRoundTripOptionalInt32 drives decode(encode(A))=A
// for a flat optional i32 column through write.ArrayToPages and
// leafdecode.PrimitiveReader.DecodePage, the one invariant
// arrow/roundtrip_test.go's in-memory construction checks never exercise
// (those never call into the parquet/write or parquet/leafdecode
// packages at all).
func TestArrayToPagesDecodeRoundTripOptionalInt32(t *testing.T) {
	values := []int32{7, -3, 0, 42, 100}
	validity := bitmapFrom([]bool{true, false, true, true, false})
	src := arrow.NewPrimitiveArray[int32](arrow.Int32, values, &validity)

	enc, err := write.ArrayToPages(src, pages.Int32, nil, write.WriteOptions{})
	require.NoError(t, err)

	page := pages.DataPage{
		Buffer:     enc.Buffer,
		Encoding:   pages.Plain,
		Descriptor: pages.ColumnDescriptor{Physical: pages.Int32, Repetition: pages.Optional, MaxDefLevel: 1},
		NumValues:  enc.NumValues,
	}

	r := leafdecode.NewPrimitiveReader[int32, int32](arrow.Int32, leafdecode.DecodePlainInt32, func(v int32) int32 { return v })
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	require.NoError(t, r.DecodePage(page, nil, dst))

	got := dst.IntoArray().(*arrow.PrimitiveArray[int32])
	require.Equal(t, src.Len(), got.Len())
	for i := 0; i < src.Len(); i++ {
		require.Equal(t, src.IsValid(i), got.IsValid(i))
		if src.IsValid(i) {
			require.Equal(t, src.Value(i), got.Value(i))
		}
	}
}

// TestDictionaryArrayToPagesDecodeRoundTrip drives decode(encode(A))=A for
// a dictionary-encoded column whose keys and values each carry their own,
// independent validity bitmap — the exact shape unifiedValidity exists to
// reconcile. Row 1's key is valid but points at values[1], which is
// itself null, so row 1 must come back null even though its own key bit
// was set; that is the case a keys-only read of validity would get wrong.
func TestDictionaryArrayToPagesDecodeRoundTrip(t *testing.T) {
	keysValidity := bitmapFrom([]bool{true, true, false, true})
	keys := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{0, 1, 0, 2}, &keysValidity)

	valuesValidity := bitmapFrom([]bool{true, false, true})
	values := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{4, 6, 9}, &valuesValidity)

	dtype := arrow.DictionaryType{IndexType: arrow.Int32, ValueType: arrow.Int32}
	dict := arrow.NewDictionaryArray[int32](dtype, keys, values)

	opts := write.WriteOptions{WriteStatistics: true}
	dataEnc, err := dictcodec.ArrayToPages[int32](dict, 1, opts)
	require.NoError(t, err)

	dictEnc, err := dictcodec.SerializeDictPage(values, dictcodec.KindInt32, 0, opts)
	require.NoError(t, err)
	require.NotNil(t, dictEnc.Statistics)

	dictValues, err := dictcodec.DeserializeDict(pages.DictPage{Buffer: dictEnc.Buffer, NumValues: values.Len()}, dictcodec.KindInt32, arrow.Int32, 0)
	require.NoError(t, err)
	resolved := dictValues.(*arrow.PrimitiveArray[int32])
	flatDict := make([]int32, resolved.Len())
	for i := range flatDict {
		flatDict[i] = resolved.Value(i)
	}

	page := pages.DataPage{
		Buffer:     dataEnc.Buffer,
		Encoding:   pages.RLEDictionary,
		Descriptor: pages.ColumnDescriptor{Physical: pages.Int32, Repetition: pages.Optional, MaxDefLevel: 1},
		NumValues:  dataEnc.NumValues,
	}

	r := leafdecode.NewPrimitiveReader[int32, int32](arrow.Int32, leafdecode.DecodePlainInt32, func(v int32) int32 { return v })
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	require.NoError(t, r.DecodePage(page, flatDict, dst))

	got := dst.IntoArray().(*arrow.PrimitiveArray[int32])
	wantValid := []bool{true, false, false, true}
	wantValue := []int32{4, 0, 0, 9}
	require.Equal(t, len(wantValid), got.Len())
	for i, valid := range wantValid {
		require.Equal(t, valid, got.IsValid(i), "row %d", i)
		if valid {
			require.Equal(t, wantValue[i], got.Value(i), "row %d", i)
		}
	}
}

// TestNestedListArrayToPagesDecodeRoundTrip drives decode(encode(A))=A for
// a nested list-of-int32 column through write.ArrayToPages's nested path
// (nestedlevel.DeriveLevels) on the way out and nestedlevel.Extend plus
// Assemble (the same pair leafdecode/nested_test.go exercises from a
// hand-built page) on the way back in, closing the loop DeriveLevels was
// built to support.
func TestNestedListArrayToPagesDecodeRoundTrip(t *testing.T) {
	leafValidity := bitmapFrom([]bool{true, true, true, false, true})
	child := arrow.NewPrimitiveArray[int32](arrow.Int32, []int32{10, 20, 30, 0, 40}, &leafValidity)

	listValidity := bitmapFrom([]bool{true, true, false, true})
	offsets := []int32{0, 3, 3, 3, 5}
	listType := arrow.ListType{Elem: arrow.Field{Name: "item", Type: arrow.Int32, Nullable: true}}
	src := arrow.NewListArray[int32](listType, offsets, child, &listValidity)

	init := []nestedlevel.InitNested{
		{Kind: nestedlevel.InitList, Nullable: true},
		{Kind: nestedlevel.InitPrimitive, Nullable: true},
	}

	enc, err := write.ArrayToPages(src, pages.Int32, init, write.WriteOptions{})
	require.NoError(t, err)

	const maxRepLevel, maxDefLevel = 1, 3
	page := pages.DataPage{
		Buffer: enc.Buffer,
		Encoding: pages.Plain,
		Descriptor: pages.ColumnDescriptor{
			Physical:    pages.Int32,
			MaxRepLevel: maxRepLevel,
			MaxDefLevel: maxDefLevel,
		},
		NumValues: enc.NumValues,
	}

	repOut, defOut, _, err := pages.SplitBuffer(page)
	require.NoError(t, err)
	repLevels, err := pagestate.DecodeLevels(repOut, pagestate.V1LevelBitWidth(maxRepLevel), enc.NumValues)
	require.NoError(t, err)
	defLevels, err := pagestate.DecodeLevels(defOut, pagestate.V1LevelBitWidth(maxDefLevel), enc.NumValues)
	require.NoError(t, err)

	pairs := make([]nestedlevel.LevelPair, len(repLevels))
	for i := range repLevels {
		pairs[i] = nestedlevel.LevelPair{Rep: repLevels[i], Def: defLevels[i]}
	}

	nested := nestedlevel.InitNestedStack(init, src.Len())
	reader := leafdecode.NewPrimitiveReader[int32, int32](arrow.Int32, leafdecode.DecodePlainInt32, func(v int32) int32 { return v })
	dst := mutablearray.NewMutablePrimitiveArray[int32](arrow.Int32)
	leafPusher, err := reader.NewNestedPusher(page, nil, dst)
	require.NoError(t, err)

	nestedlevel.Extend(nested, pairs, leafPusher, maxDefLevel)

	specs := []nestedlevel.AssembleSpec{{List: &listType}}
	result, err := nestedlevel.Assemble[int32](nested, specs, dst.IntoArray())
	require.NoError(t, err)

	got := result.(*arrow.ListArray[int32])
	require.Equal(t, src.Len(), got.Len())
	require.Equal(t, src.Offsets(), got.Offsets())
	for i := 0; i < src.Len(); i++ {
		require.Equal(t, src.IsValid(i), got.IsValid(i), "row %d", i)
		if !src.IsValid(i) {
			continue
		}
		wantRow := src.Value(i).(*arrow.PrimitiveArray[int32])
		gotRow := got.Value(i).(*arrow.PrimitiveArray[int32])
		require.Equal(t, wantRow.Len(), gotRow.Len(), "row %d", i)
		for j := 0; j < wantRow.Len(); j++ {
			require.Equal(t, wantRow.IsValid(j), gotRow.IsValid(j), "row %d elem %d", i, j)
			if wantRow.IsValid(j) {
				require.Equal(t, wantRow.Value(j), gotRow.Value(j), "row %d elem %d", i, j)
			}
		}
	}
}
