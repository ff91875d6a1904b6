package write

import (
	"bytes"

	"golang.org/x/exp/constraints"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/arrowerr"
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
)

// PageVersion selects the V1/V2 page framing (spec.md section 6).
type PageVersion int

const (
	V1 PageVersion = iota
	V2
)

// WriteOptions controls statistics collection and page framing.
type WriteOptions struct {
	WriteStatistics bool
	Version         PageVersion
}

// EncodedPage mirrors pages.Page on the write side with header metadata a
// column-chunk writer needs to persist alongside the buffer.
type EncodedPage struct {
	Buffer              []byte
	NumValues           int
	NumRows             int
	NullCount           int
	RepLevelsByteLength int
	DefLevelsByteLength int
	Statistics          *pages.Statistics
	Encoding            pages.Encoding
}

// ArrayToPages plain-encodes arr into a single Data page. nested is empty
// for a flat (non-nested) column: validity alone drives a one-bit def
// level (0 = null, 1 = value present). A non-empty nested describes the
// column's nesting shape outermost to leaf (the same InitNested slice
// InitNestedStack takes on read) and is synthesized via
// nestedlevel.DeriveLevels, the write-direction mirror of the read-side
// Extend/Assemble pair — see DeriveLevels' doc comment for the single-
// wrapping-level scope this currently covers.
func ArrayToPages(arr arrow.Array, physical pages.PrimitiveType, nested []nestedlevel.InitNested, opts WriteOptions) (EncodedPage, error) {
	if len(nested) > 0 {
		return arrayToNestedPages(arr, physical, nested, opts)
	}

	n := arr.Len()
	validity := arr.Validity()
	maxDef := uint32(0)
	if validity != nil {
		maxDef = 1
	}

	var defBuf []byte
	nullCount := 0
	if validity != nil {
		levels := make([]uint32, n)
		for i := 0; i < n; i++ {
			if validity.GetBit(i) {
				levels[i] = 1
			} else {
				nullCount++
			}
		}
		defBuf = encodeLevels(levels, v1BitWidth(maxDef))
	}

	valuesBuf, err := encodeValues(arr, physical, validity)
	if err != nil {
		return EncodedPage{}, err
	}

	var buf []byte
	defLen := len(defBuf)
	if defBuf != nil {
		if opts.Version == V1 {
			buf = append(buf, lengthPrefixed(defBuf)...)
		} else {
			buf = append(buf, defBuf...)
		}
	}
	buf = append(buf, valuesBuf...)

	return EncodedPage{
		Buffer:              buf,
		NumValues:           n,
		NumRows:             n,
		NullCount:           nullCount,
		DefLevelsByteLength: defLen,
		Encoding:            pages.Plain,
		Statistics:          buildStatistics(arr, physical, validity, opts),
	}, nil
}

// arrayToNestedPages handles the nested-shape path of ArrayToPages:
// derive (rep, def) pairs and the leaf array via nestedlevel.DeriveLevels,
// then encode rep/def streams and the leaf's plain-encoded values exactly
// as the flat path does for its single def-level stream.
func arrayToNestedPages(arr arrow.Array, physical pages.PrimitiveType, nested []nestedlevel.InitNested, opts WriteOptions) (EncodedPage, error) {
	var pairs []nestedlevel.LevelPair
	var leaf arrow.Array
	var err error
	if _, ok := arr.(*arrow.ListArray[int64]); ok {
		pairs, leaf, err = nestedlevel.DeriveLevels[int64](nested, arr)
	} else {
		pairs, leaf, err = nestedlevel.DeriveLevels[int32](nested, arr)
	}
	if err != nil {
		return EncodedPage{}, err
	}

	maxDef, maxRep := maxLevels(nested)
	repLevels := make([]uint32, len(pairs))
	defLevels := make([]uint32, len(pairs))
	for i, p := range pairs {
		repLevels[i] = p.Rep
		defLevels[i] = p.Def
	}

	var buf []byte
	var repLen, defLen int
	if maxRep > 0 {
		repBuf := encodeLevels(repLevels, v1BitWidth(maxRep))
		repLen = len(repBuf)
		if opts.Version == V1 {
			buf = append(buf, lengthPrefixed(repBuf)...)
		} else {
			buf = append(buf, repBuf...)
		}
	}
	if maxDef > 0 {
		defBuf := encodeLevels(defLevels, v1BitWidth(maxDef))
		defLen = len(defBuf)
		if opts.Version == V1 {
			buf = append(buf, lengthPrefixed(defBuf)...)
		} else {
			buf = append(buf, defBuf...)
		}
	}

	valuesBuf, err := encodeValues(leaf, physical, leaf.Validity())
	if err != nil {
		return EncodedPage{}, err
	}
	buf = append(buf, valuesBuf...)

	return EncodedPage{
		Buffer:              buf,
		NumValues:           len(pairs),
		NumRows:             arr.Len(),
		NullCount:           arr.NullCount(),
		RepLevelsByteLength: repLen,
		DefLevelsByteLength: defLen,
		Encoding:            pages.Plain,
		Statistics:          buildStatistics(leaf, physical, leaf.Validity(), opts),
	}, nil
}

// maxLevels sums the per-depth def/rep contributions buildCumulativeTable
// (arrow/nestedlevel) would, without needing a driven Nested stack: each
// nullable level adds one def level, each repeated (List) level adds one
// def level and one rep level.
func maxLevels(nested []nestedlevel.InitNested) (maxDef, maxRep uint32) {
	for _, l := range nested {
		if l.Nullable {
			maxDef++
		}
		if l.Kind == nestedlevel.InitList {
			maxDef++
			maxRep++
		}
	}
	return maxDef, maxRep
}

func encodeValues(arr arrow.Array, physical pages.PrimitiveType, validity *arrow.Bitmap) ([]byte, error) {
	switch physical {
	case pages.Int32:
		a := arr.(*arrow.PrimitiveArray[int32])
		return EncodePlainInt32(nonNull(a.Len(), validity, a.Value)), nil
	case pages.Int64:
		a := arr.(*arrow.PrimitiveArray[int64])
		return EncodePlainInt64(nonNull(a.Len(), validity, a.Value)), nil
	case pages.Float:
		a := arr.(*arrow.PrimitiveArray[float32])
		return EncodePlainFloat32(nonNull(a.Len(), validity, a.Value)), nil
	case pages.Double:
		a := arr.(*arrow.PrimitiveArray[float64])
		return EncodePlainFloat64(nonNull(a.Len(), validity, a.Value)), nil
	case pages.BooleanPhysical:
		a := arr.(*arrow.BooleanArray)
		return EncodePlainBoolean(nonNull(a.Len(), validity, a.Value)), nil
	case pages.ByteArray:
		switch a := arr.(type) {
		case *arrow.Utf8Array[int32]:
			return EncodePlainByteArray(nonNull(a.Len(), validity, a.Value)), nil
		case *arrow.BinaryArray[int32]:
			return EncodePlainByteArray(nonNull(a.Len(), validity, a.Value)), nil
		default:
			return nil, arrowerr.NotImplemented("write: unsupported ByteArray array type")
		}
	case pages.FixedLenByteArray:
		a := arr.(*arrow.FixedSizeBinaryArray)
		width := a.DataType().(arrow.FixedSizeBinaryType).ByteWidth
		return EncodePlainFixedLenByteArray(nonNull(a.Len(), validity, a.Value), width), nil
	default:
		return nil, arrowerr.NotImplemented("write: unsupported physical type")
	}
}

func nonNull[T any](n int, validity *arrow.Bitmap, value func(int) T) []T {
	out := make([]T, 0, n)
	for i := 0; i < n; i++ {
		if validity == nil || validity.GetBit(i) {
			out = append(out, value(i))
		}
	}
	return out
}

func encodeLevels(levels []uint32, bitWidth uint) []byte {
	values := make([]uint64, len(levels))
	for i, v := range levels {
		values[i] = uint64(v)
	}
	return bitPackRun(values, bitWidth)
}

func v1BitWidth(maxLevel uint32) uint {
	w := uint(0)
	for (uint32(1) << w) <= maxLevel {
		w++
	}
	return w
}

func lengthPrefixed(buf []byte) []byte {
	out := make([]byte, 4+len(buf))
	leUint32(out, uint32(len(buf)))
	copy(out[4:], buf)
	return out
}

func leUint32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func bitPackRun(values []uint64, bitWidth uint) []byte {
	groups := (len(values) + 7) / 8
	header := uleb128Encode(uint64(groups<<1 | 1))
	packed := packBitWidth(values, bitWidth, groups*8)
	return append(header, packed...)
}

func uleb128Encode(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func packBitWidth(values []uint64, bitWidth uint, paddedCount int) []byte {
	if bitWidth == 0 {
		return nil
	}
	nbits := paddedCount * int(bitWidth)
	out := make([]byte, (nbits+7)/8)
	var bitBuf uint64
	var bitsInBuf uint
	pos := 0
	for i := 0; i < paddedCount; i++ {
		var v uint64
		if i < len(values) {
			v = values[i]
		}
		bitBuf |= v << bitsInBuf
		bitsInBuf += bitWidth
		for bitsInBuf >= 8 {
			out[pos] = byte(bitBuf)
			bitBuf >>= 8
			bitsInBuf -= 8
			pos++
		}
	}
	if bitsInBuf > 0 && pos < len(out) {
		out[pos] = byte(bitBuf)
	}
	return out
}

// buildStatistics computes a page's min/max/null-count summary when
// opts.WriteStatistics is set, plain-encoding the min and max value the
// same way the page body itself would encode a single value. Grounded on
// original_source/src/io/parquet/write/dictionary.rs's per-type
// primitive_build_statistics/utf8_build_statistics/
// fixed_binary_build_statistics dispatch, simplified to min/max/null_count
// (distinct_count needs a second full pass this core's Non-goals don't
// call for).
func buildStatistics(arr arrow.Array, physical pages.PrimitiveType, validity *arrow.Bitmap, opts WriteOptions) *pages.Statistics {
	if !opts.WriteStatistics {
		return nil
	}
	stats := &pages.Statistics{NullCount: int64(arr.NullCount())}
	min, max, ok := encodePlainMinMax(arr, physical, validity)
	if !ok {
		return stats
	}
	stats.Min, stats.Max = min, max
	return stats
}

func encodePlainMinMax(arr arrow.Array, physical pages.PrimitiveType, validity *arrow.Bitmap) (min, max []byte, ok bool) {
	switch physical {
	case pages.Int32:
		a := arr.(*arrow.PrimitiveArray[int32])
		lo, hi, found := minMaxOrdered(a.Len(), validity, a.Value)
		if !found {
			return nil, nil, false
		}
		return EncodePlainInt32([]int32{lo}), EncodePlainInt32([]int32{hi}), true
	case pages.Int64:
		a := arr.(*arrow.PrimitiveArray[int64])
		lo, hi, found := minMaxOrdered(a.Len(), validity, a.Value)
		if !found {
			return nil, nil, false
		}
		return EncodePlainInt64([]int64{lo}), EncodePlainInt64([]int64{hi}), true
	case pages.Float:
		a := arr.(*arrow.PrimitiveArray[float32])
		lo, hi, found := minMaxOrdered(a.Len(), validity, a.Value)
		if !found {
			return nil, nil, false
		}
		return EncodePlainFloat32([]float32{lo}), EncodePlainFloat32([]float32{hi}), true
	case pages.Double:
		a := arr.(*arrow.PrimitiveArray[float64])
		lo, hi, found := minMaxOrdered(a.Len(), validity, a.Value)
		if !found {
			return nil, nil, false
		}
		return EncodePlainFloat64([]float64{lo}), EncodePlainFloat64([]float64{hi}), true
	case pages.BooleanPhysical:
		a := arr.(*arrow.BooleanArray)
		lo, hi, found := minMaxBool(a.Len(), validity, a.Value)
		if !found {
			return nil, nil, false
		}
		return EncodePlainBoolean([]bool{lo}), EncodePlainBoolean([]bool{hi}), true
	case pages.ByteArray:
		var lo, hi []byte
		var found bool
		switch a := arr.(type) {
		case *arrow.Utf8Array[int32]:
			lo, hi, found = minMaxBytes(a.Len(), validity, a.Value)
		case *arrow.BinaryArray[int32]:
			lo, hi, found = minMaxBytes(a.Len(), validity, a.Value)
		default:
			return nil, nil, false
		}
		if !found {
			return nil, nil, false
		}
		return EncodePlainByteArray([][]byte{lo}), EncodePlainByteArray([][]byte{hi}), true
	case pages.FixedLenByteArray:
		a := arr.(*arrow.FixedSizeBinaryArray)
		lo, hi, found := minMaxBytes(a.Len(), validity, a.Value)
		if !found {
			return nil, nil, false
		}
		width := a.DataType().(arrow.FixedSizeBinaryType).ByteWidth
		return EncodePlainFixedLenByteArray([][]byte{lo}, width), EncodePlainFixedLenByteArray([][]byte{hi}, width), true
	default:
		return nil, nil, false
	}
}

func minMaxOrdered[T constraints.Ordered](n int, validity *arrow.Bitmap, value func(int) T) (lo, hi T, found bool) {
	for i := 0; i < n; i++ {
		if validity != nil && !validity.GetBit(i) {
			continue
		}
		v := value(i)
		if !found {
			lo, hi, found = v, v, true
			continue
		}
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi, found
}

func minMaxBytes(n int, validity *arrow.Bitmap, value func(int) []byte) (lo, hi []byte, found bool) {
	for i := 0; i < n; i++ {
		if validity != nil && !validity.GetBit(i) {
			continue
		}
		v := value(i)
		if !found {
			lo, hi, found = v, v, true
			continue
		}
		if bytes.Compare(v, lo) < 0 {
			lo = v
		}
		if bytes.Compare(v, hi) > 0 {
			hi = v
		}
	}
	return lo, hi, found
}

func minMaxBool(n int, validity *arrow.Bitmap, value func(int) bool) (lo, hi bool, found bool) {
	var sawFalse, sawTrue bool
	for i := 0; i < n; i++ {
		if validity != nil && !validity.GetBit(i) {
			continue
		}
		found = true
		if value(i) {
			sawTrue = true
		} else {
			sawFalse = true
		}
	}
	if !found {
		return false, false, false
	}
	if sawFalse {
		lo = false
	} else {
		lo = true
	}
	if sawTrue {
		hi = true
	} else {
		hi = false
	}
	return lo, hi, true
}
