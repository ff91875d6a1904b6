package arrow

import "golang.org/x/exp/constraints"

// DictionaryArray is keys: Primitive<K> (integer) + values: Array (any
// type); logical[i] = values[keys[i]]. Null is encoded in the keys'
// validity; key values must be in [0, values.Len()) where the key is valid
// (spec.md section 3, invariant 4 of section 8).
type DictionaryArray[K IntegerKey] struct {
	dtype  DictionaryType
	keys   *PrimitiveArray[K]
	values Array
}

// IntegerKey constrains the index type of a dictionary's keys.
type IntegerKey interface {
	constraints.Integer
}

// NewDictionaryArray validates that every valid key is within
// [0, values.Len()) before constructing.
func NewDictionaryArray[K IntegerKey](dtype DictionaryType, keys *PrimitiveArray[K], values Array) *DictionaryArray[K] {
	for i := 0; i < keys.Len(); i++ {
		if !keys.IsValid(i) {
			continue
		}
		k := int64(keys.Value(i))
		if k < 0 || k >= int64(values.Len()) {
			panic("arrow: DictionaryArray key out of range of values")
		}
	}
	return &DictionaryArray[K]{dtype: dtype, keys: keys, values: values}
}

func (a *DictionaryArray[K]) DataType() DataType { return a.dtype }
func (a *DictionaryArray[K]) Len() int           { return a.keys.Len() }
func (a *DictionaryArray[K]) Validity() *Bitmap  { return a.keys.Validity() }
func (a *DictionaryArray[K]) NullCount() int     { return a.keys.NullCount() }

func (a *DictionaryArray[K]) Keys() *PrimitiveArray[K] { return a.keys }
func (a *DictionaryArray[K]) Values() Array            { return a.values }

// KeysValuesIter yields every key value (including at invalid/null slots,
// mirroring arrow2's keys_values_iter used by the dictionary write path).
func (a *DictionaryArray[K]) KeysValuesIter(fn func(k K)) {
	for i := 0; i < a.keys.Len(); i++ {
		fn(a.keys.Value(i))
	}
}

// KeysIter yields Some(key)/None per slot, honoring validity.
func (a *DictionaryArray[K]) KeysIter(fn func(k K, ok bool)) {
	for i := 0; i < a.keys.Len(); i++ {
		fn(a.keys.Value(i), a.keys.IsValid(i))
	}
}

func (a *DictionaryArray[K]) Slice(offset, length int) Array {
	keys := a.keys.Slice(offset, length).(*PrimitiveArray[K])
	return &DictionaryArray[K]{dtype: a.dtype, keys: keys, values: a.values}
}

func (a *DictionaryArray[K]) SliceUnchecked(offset, length int) Array {
	keys := a.keys.SliceUnchecked(offset, length).(*PrimitiveArray[K])
	return &DictionaryArray[K]{dtype: a.dtype, keys: keys, values: a.values}
}

func (a *DictionaryArray[K]) ToBoxed() Array {
	cp := *a
	return &cp
}
