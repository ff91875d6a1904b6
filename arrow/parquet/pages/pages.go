// Package pages defines the external collaborator surface spec.md section 6
// names: the Page/DataPage/DictPage/Pages shapes a Parquet reader
// implementation hands to this core, and SplitBuffer, the one piece of
// on-disk layout knowledge (the rep/def/value sub-buffer split) the core
// must know to consume them. Thrift metadata I/O, compression codecs, and
// the column-chunk/row-group file layout are explicit non-goals (spec.md
// section 1) and live entirely outside this package.
package pages

import (
	"encoding/binary"

	"github.com/colarrow/parquetcore/arrow/arrowerr"
)

// Encoding mirrors the Parquet encoding enum values this core understands.
type Encoding int

const (
	Plain Encoding = iota
	PlainDictionary
	RLE
	RLEDictionary
	DeltaBinaryPacked
	DeltaLengthByteArray
	DeltaByteArray
)

// Repetition mirrors the column's repetition type.
type Repetition int

const (
	Required Repetition = iota
	Optional
	Repeated
)

// PrimitiveType mirrors the physical storage type of a Parquet leaf.
type PrimitiveType int

const (
	Int32 PrimitiveType = iota
	Int64
	Int96
	Float
	Double
	ByteArray
	FixedLenByteArray
	BooleanPhysical
)

// ColumnDescriptor carries the per-leaf schema metadata a decoder needs:
// physical type, max rep/def levels, and (for FixedLenByteArray) the
// declared type length.
type ColumnDescriptor struct {
	Physical       PrimitiveType
	Repetition     Repetition
	MaxDefLevel    uint32
	MaxRepLevel    uint32
	TypeLength     int
	LogicalNullable bool
}

// RowInterval is a half-open [Start, Start+Length) range of page-relative
// rows selected by a page-index row-range pushdown filter.
type RowInterval struct {
	Start  int64
	Length int64
}

// Page is the sum type a Pages iterator yields: either a DataPage or a
// DictPage.
type Page interface{ isPage() }

// DataPage is one data page's raw encoded buffer plus the metadata needed
// to decode it.
type DataPage struct {
	Buffer       []byte
	Encoding     Encoding
	Descriptor   ColumnDescriptor
	SelectedRows []RowInterval
	NumValues    int
}

func (DataPage) isPage() {}

// DictPage is a dictionary page: Buffer holds NumValues plain-encoded
// dictionary entries.
type DictPage struct {
	Buffer    []byte
	NumValues int
	IsSorted  bool
}

func (DictPage) isPage() {}

// Pages is the external pull source a column's worth of pages is read
// from; implementations live outside this core (thrift/footer parsing,
// decompression).
type Pages interface {
	Next() (Page, error)
}

// Statistics carries the per-page min/max/null-count summary a column
// writer persists alongside a page's metadata. Min/Max are plain-encoded
// single-value byte strings (the same encoding the page body itself
// uses for its physical type), matching how a Parquet file stores them;
// a nil Min/Max means no non-null value was present to summarize.
type Statistics struct {
	NullCount int64
	Min       []byte
	Max       []byte
}

// SplitBuffer separates a DataPage's single encoded buffer into its
// repetition-level, definition-level, and value sub-buffers. V1 data pages
// prefix each level stream with a little-endian uint32 byte length; V2
// pages carry the lengths in page header metadata instead and store the
// level streams uncompressed back-to-back at the buffer's front — callers
// needing V2 semantics pass the header-supplied lengths via
// SplitBufferV2.
func SplitBuffer(p DataPage) (rep, def, values []byte, err error) {
	buf := p.Buffer
	if p.Descriptor.MaxRepLevel > 0 {
		rep, buf, err = splitLengthPrefixed(buf)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	if p.Descriptor.MaxDefLevel > 0 {
		def, buf, err = splitLengthPrefixed(buf)
		if err != nil {
			return nil, nil, nil, err
		}
	}
	return rep, def, buf, nil
}

// SplitBufferV2 splits a V2 data page given the header-supplied byte
// lengths of the rep/def streams (no length prefixes stored in-buffer).
func SplitBufferV2(p DataPage, repBytes, defBytes int) (rep, def, values []byte, err error) {
	buf := p.Buffer
	if repBytes > len(buf) || defBytes > len(buf)-repBytes {
		return nil, nil, nil, arrowerr.New(arrowerr.OutOfSpec, "pages: V2 rep/def byte lengths exceed buffer size")
	}
	rep, buf = buf[:repBytes], buf[repBytes:]
	def, buf = buf[:defBytes], buf[defBytes:]
	return rep, def, buf, nil
}

func splitLengthPrefixed(buf []byte) (field, rest []byte, err error) {
	if len(buf) < 4 {
		return nil, nil, arrowerr.New(arrowerr.OutOfSpec, "pages: buffer too short for length prefix")
	}
	n := binary.LittleEndian.Uint32(buf)
	if uint64(n) > uint64(len(buf)-4) {
		return nil, nil, arrowerr.New(arrowerr.OutOfSpec, "pages: length prefix exceeds remaining buffer")
	}
	return buf[4 : 4+n], buf[4+n:], nil
}
