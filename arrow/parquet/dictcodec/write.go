package dictcodec

import (
	"bytes"

	"golang.org/x/exp/constraints"

	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/arrowerr"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/write"
)

// WriteOptions and EncodedPage are the same shapes write.WriteOptions and
// write.EncodedPage use; dictcodec re-exports them under its own names so
// callers working purely against dictcodec don't need a second import,
// while ArrayToPages and SerializeDictPage below still build the
// write.EncodedPage value directly.
type WriteOptions = write.WriteOptions
type EncodedPage = write.EncodedPage
type PageVersion = write.PageVersion

const (
	V1 = write.V1
	V2 = write.V2
)

// ArrayToPages dictionary-encodes arr's keys into a Data page carrying
// RLE-hybrid-encoded indices, with def levels and kept index positions
// driven by the *unified* validity of arr: a row is valid iff its key is
// valid and, where a key is valid, the value it points at is also valid.
// Grounded on original_source/src/io/parquet/write/dictionary.rs's
// serialize_keys / serialize_levels / normalized_validity trio.
func ArrayToPages[K arrow.IntegerKey](arr *arrow.DictionaryArray[K], maxDefLevel uint32, opts WriteOptions) (EncodedPage, error) {
	n := arr.Len()
	validity := unifiedValidity(arr)

	nullCount := 0
	levels := make([]uint32, n)
	for i := 0; i < n; i++ {
		if validity == nil || validity.GetBit(i) {
			levels[i] = maxDefLevel
		} else {
			nullCount++
		}
	}

	indexBuf, _ := serializeKeys(arr.Keys(), validity)

	var buf []byte
	var defLen int
	if maxDefLevel > 0 {
		defBuf := bitPackRun(widen(levels), bitWidth32(maxDefLevel))
		defLen = len(defBuf)
		if opts.Version == V1 {
			buf = append(buf, lengthPrefixed(defBuf)...)
		} else {
			buf = append(buf, defBuf...)
		}
	}
	buf = append(buf, indexBuf...)

	return EncodedPage{
		Buffer:              buf,
		NumValues:           n,
		NumRows:             n,
		NullCount:           nullCount,
		DefLevelsByteLength: defLen,
		Encoding:            pages.RLEDictionary,
	}, nil
}

// unifiedValidity ports normalized_validity verbatim: when both keys and
// values carry their own validity, the unified bit is the AND of "key is
// valid" with "the value the key points at is valid" (projected through
// the key mapping); when only one side has a validity bitmap, that
// bitmap is reused as-is, unprojected, exactly as the Rust source does —
// not "fixed" into something that might look more consistent, since this
// is the literal ground truth spec.md names.
func unifiedValidity[K arrow.IntegerKey](arr *arrow.DictionaryArray[K]) *arrow.Bitmap {
	keys := arr.Keys()
	keysValidity := keys.Validity()
	valuesValidity := arr.Values().Validity()

	switch {
	case keysValidity == nil && valuesValidity == nil:
		return nil
	case keysValidity == nil:
		return valuesValidity
	case valuesValidity == nil:
		return keysValidity
	default:
		mb := arrow.NewMutableBitmap(keys.Len())
		arr.KeysIter(func(k K, ok bool) {
			valid := ok && valuesValidity.GetBit(int(k))
			mb.Push(valid)
		})
		b := mb.Finish()
		return &b
	}
}

// SerializeDictPage plain-encodes a dictionary's values array into a Dict
// page buffer via the write package's per-physical-type plain encoders
// (a Dict page body is always plain-encoded, never itself
// dictionary-encoded), dispatched by LogicalKind exactly as
// DeserializeDict dispatches on read (the dyn_prim! table, mirrored).
// When opts.WriteStatistics is set, the returned page's Statistics are
// built straight from values (its own null count and min/max), the same
// source array_to_pages's dyn_prim! macro builds statistics from on the
// Rust side.
func SerializeDictPage(values arrow.Array, kind LogicalKind, width int, opts WriteOptions) (EncodedPage, error) {
	var buf []byte
	var stats *pages.Statistics
	switch kind {
	case KindInt32:
		a := values.(*arrow.PrimitiveArray[int32])
		buf = write.EncodePlainInt32(allValues(a.Len(), a.Value))
		stats = buildDictStatistics(opts, a.NullCount(), a.Len(), a.Validity(), write.EncodePlainInt32, a.Value)
	case KindInt64:
		a := values.(*arrow.PrimitiveArray[int64])
		buf = write.EncodePlainInt64(allValues(a.Len(), a.Value))
		stats = buildDictStatistics(opts, a.NullCount(), a.Len(), a.Validity(), write.EncodePlainInt64, a.Value)
	case KindFloat32:
		a := values.(*arrow.PrimitiveArray[float32])
		buf = write.EncodePlainFloat32(allValues(a.Len(), a.Value))
		stats = buildDictStatistics(opts, a.NullCount(), a.Len(), a.Validity(), write.EncodePlainFloat32, a.Value)
	case KindFloat64:
		a := values.(*arrow.PrimitiveArray[float64])
		buf = write.EncodePlainFloat64(allValues(a.Len(), a.Value))
		stats = buildDictStatistics(opts, a.NullCount(), a.Len(), a.Validity(), write.EncodePlainFloat64, a.Value)
	case KindUtf8:
		a := values.(*arrow.Utf8Array[int32])
		buf = write.EncodePlainByteArray(allValues(a.Len(), a.Value))
		stats = buildDictBytesStatistics(opts, a.NullCount(), a.Len(), a.Validity(), write.EncodePlainByteArray, a.Value)
	case KindBinary:
		a := values.(*arrow.BinaryArray[int32])
		buf = write.EncodePlainByteArray(allValues(a.Len(), a.Value))
		stats = buildDictBytesStatistics(opts, a.NullCount(), a.Len(), a.Validity(), write.EncodePlainByteArray, a.Value)
	case KindFixedSizeBinary:
		a := values.(*arrow.FixedSizeBinaryArray)
		buf = write.EncodePlainFixedLenByteArray(allValues(a.Len(), a.Value), width)
		encodeFixed := func(vs [][]byte) []byte { return write.EncodePlainFixedLenByteArray(vs, width) }
		stats = buildDictBytesStatistics(opts, a.NullCount(), a.Len(), a.Validity(), encodeFixed, a.Value)
	default:
		return EncodedPage{}, arrowerr.NotImplemented("dictcodec: unsupported dictionary value logical kind on write")
	}
	return EncodedPage{Buffer: buf, NumValues: values.Len(), Encoding: pages.Plain, Statistics: stats}, nil
}

func buildDictStatistics[T constraints.Ordered](opts WriteOptions, nullCount, n int, validity *arrow.Bitmap, encode func([]T) []byte, value func(int) T) *pages.Statistics {
	if !opts.WriteStatistics {
		return nil
	}
	stats := &pages.Statistics{NullCount: int64(nullCount)}
	var lo, hi T
	found := false
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
	if found {
		stats.Min, stats.Max = encode([]T{lo}), encode([]T{hi})
	}
	return stats
}

func buildDictBytesStatistics(opts WriteOptions, nullCount, n int, validity *arrow.Bitmap, encode func([][]byte) []byte, value func(int) []byte) *pages.Statistics {
	if !opts.WriteStatistics {
		return nil
	}
	stats := &pages.Statistics{NullCount: int64(nullCount)}
	var lo, hi []byte
	found := false
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
	if found {
		stats.Min, stats.Max = encode([][]byte{lo}), encode([][]byte{hi})
	}
	return stats
}

func allValues[T any](n int, value func(int) T) []T {
	out := make([]T, n)
	for i := 0; i < n; i++ {
		out[i] = value(i)
	}
	return out
}

func widen(levels []uint32) []uint64 {
	out := make([]uint64, len(levels))
	for i, v := range levels {
		out[i] = uint64(v)
	}
	return out
}

// serializeKeys writes a bit_width prefix byte followed by the kept keys
// RLE-hybrid encoded as a single bit-packed run (the simple, always-legal
// encoding; runs of identical keys are not consolidated into RLE runs —
// left as a follow-on compression-ratio improvement, not a correctness
// requirement). Positions whose unified validity bit is false are
// dropped entirely before the bit_width is even computed, mirroring
// serialize_keys_values's validity.iter().filter_map(...) over
// keys_values_iter — num_bits comes from the max *kept* key, not the
// dictionary size.
func serializeKeys[K arrow.IntegerKey](keys *arrow.PrimitiveArray[K], validity *arrow.Bitmap) ([]byte, uint) {
	n := keys.Len()
	values := make([]uint64, 0, n)
	var maxKey uint64
	for i := 0; i < n; i++ {
		if validity != nil && !validity.GetBit(i) {
			continue
		}
		v := uint64(keys.Value(i))
		values = append(values, v)
		if v > maxKey {
			maxKey = v
		}
	}
	bitWidth := bitWidth32(uint32(maxKey))
	body := bitPackRun(values, bitWidth)
	out := make([]byte, 0, 1+len(body))
	out = append(out, byte(bitWidth))
	out = append(out, body...)
	return out, bitWidth
}

func lengthPrefixed(buf []byte) []byte {
	out := make([]byte, 4+len(buf))
	out[0] = byte(len(buf))
	out[1] = byte(len(buf) >> 8)
	out[2] = byte(len(buf) >> 16)
	out[3] = byte(len(buf) >> 24)
	copy(out[4:], buf)
	return out
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

func bitWidth32(maxLevel uint32) uint {
	w := uint(0)
	for (uint32(1) << w) <= maxLevel {
		w++
	}
	return w
}
