package nestedlevel

import (
	"github.com/colarrow/parquetcore/arrow"
	"github.com/colarrow/parquetcore/arrow/arrowerr"
)

// AssembleSpec carries the concrete Arrow type for one non-leaf depth of a
// driven Nested stack, supplied outermost to innermost in the same order
// as the InitNested slice that built the stack (one entry per depth except
// the final, primitive one — its type comes from the already-decoded leaf
// array). Exactly one of List/Struct must be set, matching the InitKind at
// that depth.
type AssembleSpec struct {
	List   *arrow.ListType
	Struct *arrow.StructType
}

// Assemble builds the final nested Arrow array from a Nested stack that
// Extend has fully driven, wrapping the already-decoded leaf array from
// the innermost depth outwards. This is the read-side step that turns
// what Extend reconstructs into arrays: each List depth's Offsets holds the raw
// per-row start offsets Extend produced, closed off here with the child's
// final length, and each Struct depth's validity (if nullable) is read off
// directly. Grounded on the same nested_utils.rs this package ports, which
// hands the driven NestedState back to a caller that performs exactly this
// assembly (see original_source/src/io/parquet/read/deserialize/binary/nested.rs).
func Assemble[O arrow.Offset](nested []Nested, specs []AssembleSpec, leaf arrow.Array) (arrow.Array, error) {
	n := len(nested)
	if n == 0 {
		return leaf, nil
	}
	if len(specs) != n-1 {
		return nil, arrowerr.New(arrowerr.OutOfSpec, "nestedlevel: Assemble needs one spec per non-leaf depth (got %d, want %d)", len(specs), n-1)
	}

	child := leaf
	for d := n - 2; d >= 0; d-- {
		level := nested[d]
		offsets, validity := level.Inner()
		spec := specs[d]

		var bitmap *arrow.Bitmap
		if validity != nil && level.IsNullable() {
			b := finishBitmap(*validity)
			bitmap = &b
		}

		switch {
		case spec.List != nil:
			off := make([]O, len(offsets)+1)
			for i, v := range offsets {
				off[i] = O(v)
			}
			off[len(offsets)] = O(child.Len())
			child = arrow.NewListArray[O](*spec.List, off, child, bitmap)
		case spec.Struct != nil:
			child = arrow.NewStructArray(*spec.Struct, []arrow.Array{child}, bitmap)
		default:
			return nil, arrowerr.New(arrowerr.OutOfSpec, "nestedlevel: Assemble: depth %d has neither List nor Struct spec", d)
		}
	}
	return child, nil
}

func finishBitmap(bits MutableBitmap) arrow.Bitmap {
	b := arrow.NewMutableBitmap(bits.Len())
	for _, v := range bits.Bits() {
		b.Push(v)
	}
	return b.Finish()
}
