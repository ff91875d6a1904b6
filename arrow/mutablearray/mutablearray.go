// Package mutablearray implements the MutableArray and Growable builder
// capabilities of spec.md section 4.3 (C3): incremental construction for
// the page decoders, and copy-from-source construction for concatenating
// or interleaving existing arrays. Grounded on the teacher's
// arrow/array/builder.go Builder interface (see DESIGN.md) and, for
// Growable, on aptr322/arrow2's growable module (most directly
// original_source/src/array/growable/union.rs).
package mutablearray

import "github.com/colarrow/parquetcore/arrow"

// MutableArray is the capability used by the page decoders to build an
// array incrementally (spec.md section 4.3).
type MutableArray interface {
	Len() int
	DataType() arrow.DataType
	PushNull()
	Reserve(n int)
	ShrinkToFit()
	// IntoArray destructively finalizes the builder into a boxed immutable
	// Array. Calling it twice is forbidden (spec.md section 8, invariant 7)
	// and panics.
	IntoArray() arrow.Array
}

// Growable is the capability used to build an array by copying slices from
// one or more source arrays of identical type (spec.md section 4.3).
type Growable interface {
	// Extend appends src[start:start+length] from the sourceIndex'th source
	// array bound to this Growable.
	Extend(sourceIndex, start, length int)
	// ExtendValidity appends `additional` null slots without advancing
	// primitive values where that is meaningful; Union ignores it.
	ExtendValidity(additional int)
	// AsBox finalizes the accumulated data into a boxed Array without
	// consuming the sources (non-destructive to the inputs).
	AsBox() arrow.Array
}
