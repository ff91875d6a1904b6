// Package write implements the non-dictionary write path of spec.md
// section 6 (named there, given a full home here as the supplemental
// writer-entrypoints component, section 4.8): per-leaf-type plain
// encoders plus ArrayToPages, the write-side counterpart of
// arrow/parquet/leafdecode's read-side per-leaf decoders.
// dictcodec.SerializeDictPage calls into this package's plain encoders to
// write a dictionary's values array, since a Dict page body is always
// plain-encoded regardless of how the owning Data pages are encoded.
package write

import (
	"encoding/binary"
	"math"
)

// EncodePlainInt32 plain-encodes a slice of int32 as little-endian bytes.
func EncodePlainInt32(values []int32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(v))
	}
	return buf
}

// EncodePlainInt64 plain-encodes a slice of int64 as little-endian bytes.
func EncodePlainInt64(values []int64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], uint64(v))
	}
	return buf
}

// EncodePlainFloat32 plain-encodes a slice of float32 as IEEE-754 bytes.
func EncodePlainFloat32(values []float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// EncodePlainFloat64 plain-encodes a slice of float64 as IEEE-754 bytes.
func EncodePlainFloat64(values []float64) []byte {
	buf := make([]byte, len(values)*8)
	for i, v := range values {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	return buf
}

// EncodePlainBoolean bit-packs booleans 8 per byte, LSB first.
func EncodePlainBoolean(values []bool) []byte {
	buf := make([]byte, (len(values)+7)/8)
	for i, v := range values {
		if v {
			buf[i/8] |= 1 << uint(i%8)
		}
	}
	return buf
}

// EncodePlainByteArray encodes each value as a little-endian uint32 length
// prefix followed by its bytes.
func EncodePlainByteArray(values [][]byte) []byte {
	var buf []byte
	for _, v := range values {
		var lenBuf [4]byte
		binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(v)))
		buf = append(buf, lenBuf[:]...)
		buf = append(buf, v...)
	}
	return buf
}

// EncodePlainFixedLenByteArray concatenates fixed-width values with no
// length prefix; every value must already be exactly width bytes.
func EncodePlainFixedLenByteArray(values [][]byte, width int) []byte {
	buf := make([]byte, 0, len(values)*width)
	for _, v := range values {
		buf = append(buf, v...)
	}
	return buf
}
