package arrow

// Offset is the integer width parameter `O ∈ {i32, i64}` used by every
// variable-length/list array (spec.md section 3).
type Offset interface {
	~int32 | ~int64
}

// Array is the capability every concrete array variant satisfies
// (spec.md section 4.2): length, validity, O(1) slicing sharing buffers,
// and erasure into a heap-boxed form for heterogeneous containers.
type Array interface {
	DataType() DataType
	Len() int
	// Validity returns the validity bitmap, or nil if the array has no nulls.
	Validity() *Bitmap
	NullCount() int
	Slice(offset, length int) Array
	// SliceUnchecked is the hot-path counterpart of Slice: it skips bounds
	// validation and assumes offset+length <= Len().
	SliceUnchecked(offset, length int) Array
	// ToBoxed returns a clone of this array erased to the Array interface
	// sharing the underlying buffers (clone-on-share, not copy).
	ToBoxed() Array
}

func nullCountFromValidity(v *Bitmap, length int) int {
	if v == nil {
		return 0
	}
	return v.UnsetBits()
}

func offsetToInt[O Offset](o O) int { return int(o) }
func intToOffset[O Offset](i int) O { return O(i) }
