package arrow

import (
	"github.com/colarrow/parquetcore/arrow/internal/bitutil"
	"github.com/colarrow/parquetcore/arrow/memory"
)

// Bitmap is an immutable packed-bit validity bitmap: 1 = valid, 0 = null.
// Reported length is authoritative; the trailing partial byte may hold
// arbitrary bits (spec.md 4.1).
type Bitmap struct {
	buf        memory.Buffer
	offsetBits int
	lenBits    int

	unsetCount     int
	unsetCountKnow bool
}

// NewBitmap wraps a byte buffer as a Bitmap over [offsetBits, offsetBits+lenBits).
func NewBitmap(buf memory.Buffer, offsetBits, lenBits int) Bitmap {
	return Bitmap{buf: buf, offsetBits: offsetBits, lenBits: lenBits}
}

// Len returns the number of logical bits.
func (b Bitmap) Len() int { return b.lenBits }

// GetBit returns the bit at logical index i.
func (b Bitmap) GetBit(i int) bool {
	return bitutil.BitIsSet(b.buf.Bytes(), b.offsetBits+i)
}

// Slice returns a Bitmap sharing the same backing bytes, no copy.
func (b Bitmap) Slice(offset, length int) Bitmap {
	return Bitmap{buf: b.buf, offsetBits: b.offsetBits + offset, lenBits: length}
}

// UnsetBits returns the number of null (0) bits, cached after first call.
func (b *Bitmap) UnsetBits() int {
	if !b.unsetCountKnow {
		set := bitutil.CountSetBits(b.buf.Bytes(), b.offsetBits, b.lenBits)
		b.unsetCount = b.lenBits - set
		b.unsetCountKnow = true
	}
	return b.unsetCount
}

// Iter calls fn(i, valid) for every logical bit in order.
func (b Bitmap) Iter(fn func(i int, valid bool)) {
	for i := 0; i < b.lenBits; i++ {
		fn(i, b.GetBit(i))
	}
}

// And returns the bitwise AND of a and b, starting at the given bit offsets,
// for length bits.
func And(a Bitmap, aOffset int, b Bitmap, bOffset int, length int) MutableBitmap {
	out := NewMutableBitmap(0)
	out.Reserve(length)
	for i := 0; i < length; i++ {
		out.Push(a.GetBit(aOffset+i) && b.GetBit(bOffset+i))
	}
	return out
}

// Or is the bitwise OR analogue of And.
func Or(a Bitmap, aOffset int, b Bitmap, bOffset int, length int) MutableBitmap {
	out := NewMutableBitmap(0)
	out.Reserve(length)
	for i := 0; i < length; i++ {
		out.Push(a.GetBit(aOffset+i) || b.GetBit(bOffset+i))
	}
	return out
}

// MutableBitmap is an append-only packed-bit builder.
type MutableBitmap struct {
	mem *memory.MutableBuffer
	len int
}

// NewMutableBitmap creates an empty MutableBitmap with room for capacity bits.
func NewMutableBitmap(capacity int) MutableBitmap {
	m := MutableBitmap{mem: memory.NewMutableBuffer(nil)}
	if capacity > 0 {
		m.mem.Reserve(bitutil.BytesForBits(capacity))
	}
	return m
}

// Len reports the number of bits pushed so far.
func (m *MutableBitmap) Len() int { return m.len }

func (m *MutableBitmap) ensureByte(forBit int) {
	need := bitutil.BytesForBits(forBit + 1)
	if have := len(m.mem.Bytes()); need > have {
		m.mem.Append(make([]byte, need-have))
	}
}

// Push appends a single bit.
func (m *MutableBitmap) Push(v bool) {
	m.ensureByte(m.len)
	bitutil.SetBitTo(m.mem.Bytes(), m.len, v)
	m.len++
}

// ExtendConstant appends n copies of v.
func (m *MutableBitmap) ExtendConstant(n int, v bool) {
	m.Reserve(n)
	for i := 0; i < n; i++ {
		m.Push(v)
	}
}

// Set overwrites the bit at index i (i < Len()).
func (m *MutableBitmap) Set(i int, v bool) {
	bitutil.SetBitTo(m.mem.Bytes(), i, v)
}

// ExtendFromSlice appends lenBits bits read from src starting at offsetBits.
func (m *MutableBitmap) ExtendFromSlice(src []byte, offsetBits, lenBits int) {
	m.Reserve(lenBits)
	for i := 0; i < lenBits; i++ {
		m.Push(bitutil.BitIsSet(src, offsetBits+i))
	}
}

// Reserve ensures room for n additional bits without reallocating per-push.
func (m *MutableBitmap) Reserve(n int) {
	need := bitutil.BytesForBits(m.len + n)
	if have := len(m.mem.Bytes()); have < need {
		m.mem.Reserve(need - have)
	}
}

// Finish moves the builder's storage into an immutable Bitmap.
func (m *MutableBitmap) Finish() Bitmap {
	buf := m.mem.Finish()
	return NewBitmap(buf, 0, m.len)
}
