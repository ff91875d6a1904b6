package pagestate

// Kind discriminates the six page-decode states spec.md section 4.5
// names, chosen from (encoding, has_dictionary, is_optional, is_filtered).
type Kind int

const (
	Required Kind = iota
	Optional
	RequiredDictionary
	OptionalDictionary
	FilteredRequired
	FilteredOptional
)

func SelectKind(hasDictionary, isOptional, isFiltered bool) Kind {
	switch {
	case isFiltered && isOptional:
		return FilteredOptional
	case isFiltered:
		return FilteredRequired
	case hasDictionary && isOptional:
		return OptionalDictionary
	case hasDictionary:
		return RequiredDictionary
	case isOptional:
		return Optional
	default:
		return Required
	}
}

// ValueSource is the per-leaf-type value stream: Values holds every
// plain-decoded value the page stores; a dictionary-encoded page has no
// Values and resolves each value through Indices into Dict instead.
type ValueSource[T any] struct {
	Kind     Kind
	Values   []T             // direct values, used when Indices is nil
	Dict     []T             // dictionary entries, used when Indices is set
	Indices  *HybridRleDecoder // dictionary index stream, set for every dictionary-encoded page (filtered or not)
	Validity *OptionalPageValidity
	Filter   *RowFilter
	pos      int
}

func NewValueSource[T any](kind Kind, values, dict []T, indices *HybridRleDecoder, validity *OptionalPageValidity, filter *RowFilter) *ValueSource[T] {
	return &ValueSource[T]{Kind: kind, Values: values, Dict: dict, Indices: indices, Validity: validity, Filter: filter}
}

// Len is the number of rows remaining to decode.
func (s *ValueSource[T]) Len() int {
	if s.Validity != nil {
		return s.Validity.Len()
	}
	return len(s.Values) - s.pos
}

// PullValue pulls the next value off the value or dictionary stream,
// without consulting validity. Exported for callers (such as the
// nestedlevel integration) that already know, from a source other than
// this ValueSource's own Validity field, whether a value is present at
// this row.
func (s *ValueSource[T]) PullValue() (T, bool) {
	return s.nextValue()
}

// nextValue pulls the next value off the value or dictionary stream,
// without consulting validity. Dictionary presence is read off Indices
// rather than Kind, since a filtered page with a dictionary reports as
// FilteredRequired/FilteredOptional (SelectKind gives is_filtered
// priority over has_dictionary) yet must still resolve through Dict.
func (s *ValueSource[T]) nextValue() (T, bool) {
	if s.Indices != nil {
		idx, ok := s.Indices.Next()
		if !ok || int(idx) >= len(s.Dict) {
			var zero T
			return zero, false
		}
		return s.Dict[idx], true
	}
	if s.pos >= len(s.Values) {
		var zero T
		return zero, false
	}
	v := s.Values[s.pos]
	s.pos++
	return v, true
}

// LeafBuilder is what a leaf decoder's destination builder must support to
// be driven by DriveRows (satisfied by the corresponding
// mutablearray.Mutable*Array, narrowed to the leaf's element type via a
// small adapter in the leafdecode package).
type LeafBuilder[T any] interface {
	PushValue(T)
	PushNull()
}

// DriveRows is the common row loop for Required, Optional, *Dictionary and
// Filtered* states alike: it walks exactly Len() rows (or, for filtered
// states, the page's full row range so the RowFilter cursor stays
// aligned), deciding per row whether a value is valid and, if so, whether
// it is selected, and calls exactly one of PushValue/PushNull on dst per
// selected row. Grounded on the push_valid/push_null/extend_from_state
// trio named in spec.md section 4.5.
func DriveRows[T any](s *ValueSource[T], dst LeafBuilder[T], rowOffset int64, numRows int) {
	for i := 0; i < numRows; i++ {
		isValid := true
		if s.Validity != nil {
			v, ok := s.Validity.NextIsValid()
			if !ok {
				return
			}
			isValid = v
		}
		var (
			value T
			have  bool
		)
		if isValid {
			value, have = s.nextValue()
		}
		selected := true
		if s.Filter != nil {
			selected = s.Filter.Selected(rowOffset + int64(i))
		}
		if !selected {
			continue
		}
		if isValid && have {
			dst.PushValue(value)
		} else {
			dst.PushNull()
		}
	}
}
