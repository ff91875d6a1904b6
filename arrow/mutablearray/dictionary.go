package mutablearray

import "github.com/colarrow/parquetcore/arrow"

// FixedItemsUtf8Dictionary is an i32-keyed dictionary whose values are a
// fixed immutable Utf8Array[int32] (spec.md section 4.3.2); only keys are
// mutable. This is the shape the parquet-read path builds when decoding a
// dictionary-encoded Utf8 column: the Dict page supplies the fixed value
// array once, and every subsequent data page only grows the keys.
type FixedItemsUtf8Dictionary struct {
	dtype  arrow.DictionaryType
	values *arrow.Utf8Array[int32]
	keys   *MutablePrimitiveArray[int32]
	done   bool
}

func NewFixedItemsUtf8Dictionary(dtype arrow.DictionaryType, values *arrow.Utf8Array[int32]) *FixedItemsUtf8Dictionary {
	return &FixedItemsUtf8Dictionary{dtype: dtype, values: values, keys: NewMutablePrimitiveArray[int32](dtype.IndexType)}
}

func (m *FixedItemsUtf8Dictionary) Len() int                { return m.keys.Len() }
func (m *FixedItemsUtf8Dictionary) DataType() arrow.DataType { return m.dtype }

// PushValidKey appends a valid key pointing at m.values[key].
func (m *FixedItemsUtf8Dictionary) PushValidKey(key int32) { m.keys.Push(key) }

func (m *FixedItemsUtf8Dictionary) PushNull()        { m.keys.PushNull() }
func (m *FixedItemsUtf8Dictionary) Reserve(n int)    { m.keys.Reserve(n) }
func (m *FixedItemsUtf8Dictionary) ShrinkToFit()     { m.keys.ShrinkToFit() }

func (m *FixedItemsUtf8Dictionary) IntoArray() arrow.Array {
	if m.done {
		panic("mutablearray: IntoArray called twice")
	}
	m.done = true
	keys := m.keys.IntoArray().(*arrow.PrimitiveArray[int32])
	return arrow.NewDictionaryArray(m.dtype, keys, m.values)
}

// GrowableDictionary copies slices from source DictionaryArray[K]s. It
// copies keys unchanged and uses the first source's values array as the
// dictionary of the result; keys are not unified into a merged dictionary
// and keys of sources with a different values array are not remapped.
type GrowableDictionary[K arrow.IntegerKey] struct {
	dtype   arrow.DictionaryType
	sources []*arrow.DictionaryArray[K]
	keys    *GrowablePrimitive[K]
	// values is fixed to the first source's dictionary: per-chunk mode
	// requires every source to share the same dictionary values array.
	values arrow.Array
}

func NewGrowableDictionary[K arrow.IntegerKey](sources []*arrow.DictionaryArray[K], useValidity bool, capacity int) *GrowableDictionary[K] {
	keysArrays := make([]*arrow.PrimitiveArray[K], len(sources))
	for i, s := range sources {
		keysArrays[i] = s.Keys()
	}
	return &GrowableDictionary[K]{
		dtype:   sources[0].DataType().(arrow.DictionaryType),
		sources: sources,
		keys:    NewGrowablePrimitive(keysArrays, useValidity, capacity),
		values:  sources[0].Values(),
	}
}

func (g *GrowableDictionary[K]) Extend(sourceIndex, start, length int) {
	g.keys.Extend(sourceIndex, start, length)
}

func (g *GrowableDictionary[K]) ExtendValidity(additional int) {
	g.keys.ExtendValidity(additional)
}

func (g *GrowableDictionary[K]) AsBox() arrow.Array {
	keys := g.keys.AsBox().(*arrow.PrimitiveArray[K])
	return arrow.NewDictionaryArray(g.dtype, keys, g.values)
}
