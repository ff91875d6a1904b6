// Package memory provides the refcounted, shareable byte storage that
// backs every Arrow buffer and bitmap in this module: slicing a buffer is
// O(1) and shares the backing allocation, matching the teacher's
// arrow/memory.Allocator + arrow/memory.Buffer idiom (see
// _examples/joellubi-arrow-go/arrow/ipc/writer.go and the vendored
// arrow/array/builder.go retrievals for the refcounting pattern this
// generalizes).
package memory

import "sync/atomic"

// Allocator is the minimal allocation interface external callers may supply;
// DefaultAllocator below is sufficient for all in-process use in this module.
type Allocator interface {
	Allocate(size int) []byte
	Reallocate(size int, b []byte) []byte
	Free(b []byte)
}

type goAllocator struct{}

func (goAllocator) Allocate(size int) []byte { return make([]byte, size) }

func (goAllocator) Reallocate(size int, b []byte) []byte {
	if size <= cap(b) {
		return b[:size]
	}
	out := make([]byte, size)
	copy(out, b)
	return out
}

func (goAllocator) Free([]byte) {}

// DefaultAllocator is a plain Go-heap allocator; this core never needs a
// pooled/arena allocator of its own since it never owns long-lived pages.
var DefaultAllocator Allocator = goAllocator{}

// refBuffer is the shared backing store for a family of Buffer slices.
type refBuffer struct {
	refCount int64
	data     []byte
	mem      Allocator
}

func (r *refBuffer) retain() { atomic.AddInt64(&r.refCount, 1) }

func (r *refBuffer) release() {
	if atomic.AddInt64(&r.refCount, -1) == 0 {
		r.mem.Free(r.data)
		r.data = nil
	}
}

// Buffer is an immutable view (offset, length) over a shared byte backing
// store. Copies are cheap: Slice never copies bytes.
type Buffer struct {
	ref    *refBuffer
	offset int
	length int
}

// NewBufferBytes wraps an already-built byte slice as an immutable Buffer
// taking ownership of it (no copy).
func NewBufferBytes(b []byte) Buffer {
	return Buffer{ref: &refBuffer{refCount: 1, data: b, mem: DefaultAllocator}, length: len(b)}
}

// Len returns the buffer's logical byte length.
func (b Buffer) Len() int { return b.length }

// Bytes returns the logical byte range as a slice into the shared backing
// store; callers must not retain it past the Buffer's lifetime if they plan
// to mutate it (buffers are conventionally immutable once shared).
func (b Buffer) Bytes() []byte {
	if b.ref == nil {
		return nil
	}
	return b.ref.data[b.offset : b.offset+b.length]
}

// Slice returns a new Buffer sharing the same backing store, no copy.
func (b Buffer) Slice(offset, length int) Buffer {
	if offset < 0 || length < 0 || offset+length > b.length {
		panic("memory: Buffer.Slice out of range")
	}
	if b.ref != nil {
		b.ref.retain()
	}
	return Buffer{ref: b.ref, offset: b.offset + offset, length: length}
}

// MutableBuffer is an append-only byte buffer that exclusively owns its
// backing storage until Finish moves it into an immutable Buffer.
type MutableBuffer struct {
	mem  Allocator
	data []byte
}

// NewMutableBuffer creates an empty, append-only buffer using alloc
// (DefaultAllocator if nil).
func NewMutableBuffer(alloc Allocator) *MutableBuffer {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	return &MutableBuffer{mem: alloc}
}

// Len reports the number of bytes appended so far.
func (m *MutableBuffer) Len() int { return len(m.data) }

// Reserve ensures capacity for at least n additional bytes.
func (m *MutableBuffer) Reserve(n int) {
	if len(m.data)+n <= cap(m.data) {
		return
	}
	newCap := nextPow2(len(m.data) + n)
	m.data = m.mem.Reallocate(newCap, m.data)[:len(m.data)]
}

// Append appends raw bytes.
func (m *MutableBuffer) Append(b []byte) {
	m.Reserve(len(b))
	m.data = append(m.data, b...)
}

// Bytes exposes the buffer contents built so far (mutable view).
func (m *MutableBuffer) Bytes() []byte { return m.data }

// Finish moves the mutable buffer's storage into an immutable Buffer. The
// MutableBuffer must not be used afterwards.
func (m *MutableBuffer) Finish() Buffer {
	b := NewBufferBytes(m.data)
	m.data = nil
	return b
}

func nextPow2(n int) int {
	if n <= 0 {
		return 0
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
