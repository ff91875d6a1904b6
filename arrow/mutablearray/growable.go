package mutablearray

import (
	"fmt"

	"github.com/colarrow/parquetcore/arrow"
)

// MakeGrowable dispatches on the runtime type of sources[0] to build the
// concrete Growable for that type, mirroring arrow2's free function
// make_growable used throughout GrowableUnion/GrowableList/GrowableStruct
// to build per-field/per-child Growables without the caller needing to
// know the concrete type ahead of time (spec.md section 4.1, "Erased
// capability vs. generic specialisation").
func MakeGrowable(sources []arrow.Array, useValidity bool, capacity int) Growable {
	if len(sources) == 0 {
		panic("mutablearray: MakeGrowable requires at least one source")
	}
	switch first := sources[0].(type) {
	case *arrow.PrimitiveArray[int8]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[int8]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[int16]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[int16]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[int32]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[int32]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[int64]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[int64]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[uint8]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[uint8]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[uint16]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[uint16]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[uint32]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[uint32]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[uint64]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[uint64]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[float32]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[float32]](sources), useValidity, capacity)
	case *arrow.PrimitiveArray[float64]:
		return NewGrowablePrimitive(castAll[*arrow.PrimitiveArray[float64]](sources), useValidity, capacity)
	case *arrow.BooleanArray:
		return NewGrowableBoolean(castAll[*arrow.BooleanArray](sources), useValidity, capacity)
	case *arrow.FixedSizeBinaryArray:
		return NewGrowableFixedSizeBinary(castAll[*arrow.FixedSizeBinaryArray](sources), useValidity, capacity)
	case *arrow.BinaryArray[int32]:
		return NewGrowableBinary(castAll[*arrow.BinaryArray[int32]](sources), useValidity, capacity)
	case *arrow.BinaryArray[int64]:
		return NewGrowableBinary(castAll[*arrow.BinaryArray[int64]](sources), useValidity, capacity)
	case *arrow.Utf8Array[int32]:
		return newGrowableUtf8[int32](sources, useValidity, capacity)
	case *arrow.Utf8Array[int64]:
		return newGrowableUtf8[int64](sources, useValidity, capacity)
	case *arrow.ListArray[int32]:
		return newGrowableListOf[int32](sources, useValidity, capacity)
	case *arrow.ListArray[int64]:
		return newGrowableListOf[int64](sources, useValidity, capacity)
	case *arrow.StructArray:
		return newGrowableStructOf(sources, useValidity, capacity)
	case *arrow.UnionArray:
		return newGrowableUnionOf(sources, capacity)
	default:
		panic(fmt.Sprintf("mutablearray: MakeGrowable: unsupported array type %T", first))
	}
}

func castAll[T arrow.Array](sources []arrow.Array) []T {
	out := make([]T, len(sources))
	for i, s := range sources {
		out[i] = s.(T)
	}
	return out
}

func newGrowableUtf8[O arrow.Offset](sources []arrow.Array, useValidity bool, capacity int) Growable {
	bins := make([]*arrow.BinaryArray[O], len(sources))
	for i, s := range sources {
		bins[i] = s.(*arrow.Utf8Array[O]).BinaryArray
	}
	return NewGrowableBinary(bins, useValidity, capacity)
}

func newGrowableListOf[O arrow.Offset](sources []arrow.Array, useValidity bool, capacity int) Growable {
	lists := castAll[*arrow.ListArray[O]](sources)
	dtype := lists[0].DataType().(arrow.ListType)
	children := make([]arrow.Array, len(lists))
	for i, l := range lists {
		children[i] = l.Child()
	}
	child := MakeGrowable(children, false, capacity)
	return NewGrowableList(dtype, lists, child, useValidity, capacity)
}

func newGrowableStructOf(sources []arrow.Array, useValidity bool, capacity int) Growable {
	structs := castAll[*arrow.StructArray](sources)
	dtype := structs[0].DataType().(arrow.StructType)
	numFields := len(structs[0].Fields())
	fields := make([]Growable, numFields)
	for i := 0; i < numFields; i++ {
		fieldSources := make([]arrow.Array, len(structs))
		for j, s := range structs {
			fieldSources[j] = s.Fields()[i]
		}
		fields[i] = MakeGrowable(fieldSources, false, capacity)
	}
	return NewGrowableStruct(dtype, structs, fields, useValidity, capacity)
}

func newGrowableUnionOf(sources []arrow.Array, capacity int) Growable {
	unions := castAll[*arrow.UnionArray](sources)
	numFields := len(unions[0].Fields())
	fields := make([]Growable, numFields)
	for i := 0; i < numFields; i++ {
		fieldSources := make([]arrow.Array, len(unions))
		for j, u := range unions {
			fieldSources[j] = u.Fields()[i]
		}
		fields[i] = MakeGrowable(fieldSources, false, capacity)
	}
	return NewGrowableUnion(unions, fields, capacity)
}
