// Package pagestate implements the generic page-decoding machinery shared
// by every leaf type in arrow/parquet/leafdecode (spec.md section 4.5,
// C5): the hybrid RLE/bit-packed level and dictionary-index decoder, the
// validity run-length walker built on top of it, and the row-interval
// filter wrapper used for page-index pushdown.
package pagestate

import (
	"github.com/colarrow/parquetcore/arrow/arrowerr"
)

// HybridRleDecoder decodes Parquet's hybrid RLE/bit-packed encoding: a
// sequence of runs, each either an RLE run (a repeated value) or a
// bit-packed run (a group of values each stored in bitWidth bits),
// discriminated by the low bit of a ULEB128 run header.
type HybridRleDecoder struct {
	buf      []byte
	bitWidth uint
	// current run state
	rleValue    uint64
	rleCount    int
	bitPackBuf  []uint64
	bitPackPos  int
}

// NewHybridRleDecoder wraps buf, a stream of runs with the given bit width
// (no outer length prefix — callers that need the Parquet dictionary-index
// bit_width-prefix-byte framing should strip it first via
// SplitDictIndexHeader).
func NewHybridRleDecoder(buf []byte, bitWidth uint) *HybridRleDecoder {
	return &HybridRleDecoder{buf: buf, bitWidth: bitWidth}
}

// SplitDictIndexHeader reads the single bit_width byte Parquet prefixes
// dictionary-index streams with and returns the decoder plus that width.
func SplitDictIndexHeader(buf []byte) (*HybridRleDecoder, uint, error) {
	if len(buf) < 1 {
		return nil, 0, arrowerr.New(arrowerr.OutOfSpec, "pagestate: dictionary index buffer too short for bit_width byte")
	}
	width := uint(buf[0])
	return NewHybridRleDecoder(buf[1:], width), width, nil
}

func uleb128(buf []byte) (value uint64, n int) {
	shift := uint(0)
	for i, b := range buf {
		value |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return value, i + 1
		}
		shift += 7
	}
	return value, len(buf)
}

func (d *HybridRleDecoder) byteWidth() int {
	return int((d.bitWidth + 7) / 8)
}

// fill loads the next run header into the decoder's current-run state.
func (d *HybridRleDecoder) fill() bool {
	if d.rleCount > 0 || d.bitPackPos < len(d.bitPackBuf) {
		return true
	}
	if len(d.buf) == 0 {
		return false
	}
	header, n := uleb128(d.buf)
	d.buf = d.buf[n:]
	if header&1 == 0 {
		// RLE run: header>>1 repetitions of a byteWidth()-byte value.
		count := int(header >> 1)
		bw := d.byteWidth()
		if bw > len(d.buf) {
			return false
		}
		var v uint64
		for i := 0; i < bw; i++ {
			v |= uint64(d.buf[i]) << (8 * uint(i))
		}
		d.buf = d.buf[bw:]
		d.rleValue = v
		d.rleCount = count
		return count > 0
	}
	// Bit-packed run: header>>1 groups of 8 values, each bitWidth bits.
	groups := int(header >> 1)
	values := groups * 8
	need := (values*int(d.bitWidth) + 7) / 8
	if need > len(d.buf) {
		need = len(d.buf)
	}
	packed := d.buf[:need]
	d.buf = d.buf[need:]
	d.bitPackBuf = unpackBitWidth(packed, int(d.bitWidth), values)
	d.bitPackPos = 0
	return len(d.bitPackBuf) > 0
}

// Next pulls one decoded value, reporting false once the stream is
// exhausted.
func (d *HybridRleDecoder) Next() (uint64, bool) {
	if !d.fill() {
		return 0, false
	}
	if d.rleCount > 0 {
		d.rleCount--
		return d.rleValue, true
	}
	v := d.bitPackBuf[d.bitPackPos]
	d.bitPackPos++
	return v, true
}

// NextRun exposes the current run without fully decoding bit-packed runs
// value-by-value: it reports (value, length, isRLE, ok). For RLE runs,
// value is the repeated value. For bit-packed runs, isRLE is false and
// the caller must use Next() length times (len(run)) to retrieve
// individual values, since a bit-packed run has no single repeated value.
func (d *HybridRleDecoder) NextRun() (value uint64, length int, isRLE bool, ok bool) {
	if !d.fill() {
		return 0, 0, false, false
	}
	if d.rleCount > 0 {
		return d.rleValue, d.rleCount, true, true
	}
	return 0, len(d.bitPackBuf) - d.bitPackPos, false, true
}

// SkipRun advances past an entire RLE run (only valid when the current
// run reported by NextRun is RLE) or n values of a bit-packed run.
func (d *HybridRleDecoder) SkipRun(n int) {
	if d.rleCount > 0 {
		d.rleCount -= n
		return
	}
	d.bitPackPos += n
}

func unpackBitWidth(buf []byte, bitWidth, count int) []uint64 {
	if bitWidth == 0 {
		out := make([]uint64, count)
		return out
	}
	out := make([]uint64, 0, count)
	var bitBuf uint64
	var bitsInBuf uint
	pos := 0
	mask := uint64(1)<<uint(bitWidth) - 1
	for len(out) < count {
		for bitsInBuf < uint(bitWidth) && pos < len(buf) {
			bitBuf |= uint64(buf[pos]) << bitsInBuf
			bitsInBuf += 8
			pos++
		}
		if bitsInBuf < uint(bitWidth) {
			out = append(out, bitBuf&mask)
			break
		}
		out = append(out, bitBuf&mask)
		bitBuf >>= uint(bitWidth)
		bitsInBuf -= uint(bitWidth)
	}
	return out
}

// DecodeLevels fully decodes an RLE-hybrid level stream of exactly count
// values, the common case for Parquet's per-page rep/def level buffers
// (which are always small enough to materialize eagerly; spec.md section
// 4.4 treats them as a flat []uint32 input to the nesting machine).
func DecodeLevels(buf []byte, bitWidth uint, count int) ([]uint32, error) {
	dec := NewHybridRleDecoder(buf, bitWidth)
	out := make([]uint32, 0, count)
	for len(out) < count {
		v, ok := dec.Next()
		if !ok {
			return nil, arrowerr.New(arrowerr.OutOfSpec, "pagestate: level stream exhausted before count reached (%d/%d)", len(out), count)
		}
		out = append(out, uint32(v))
	}
	return out, nil
}

// V1LevelBitWidth returns the bit width Parquet uses for a level stream
// given its maximum level value.
func V1LevelBitWidth(maxLevel uint32) uint {
	w := uint(0)
	for (uint32(1) << w) <= maxLevel {
		w++
	}
	return w
}
