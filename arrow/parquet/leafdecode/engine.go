package leafdecode

import (
	"github.com/colarrow/parquetcore/arrow/nestedlevel"
	"github.com/colarrow/parquetcore/arrow/parquet/pages"
	"github.com/colarrow/parquetcore/arrow/parquet/pagestate"
)

// leafInput bundles the pieces every leaf decoder needs out of a DataPage
// regardless of element type: the split rep/def/value sub-buffers, the
// decoded definition levels (nil for Required columns), and the page's row
// filter (nil unless SelectedRows was set).
type leafInput struct {
	def    []uint32
	values []byte
	filter *pagestate.RowFilter
}

func splitPage(p pages.DataPage) (leafInput, error) {
	_, defBuf, values, err := pages.SplitBuffer(p)
	if err != nil {
		return leafInput{}, err
	}
	var def []uint32
	if p.Descriptor.MaxDefLevel > 0 {
		width := pagestate.V1LevelBitWidth(p.Descriptor.MaxDefLevel)
		def, err = pagestate.DecodeLevels(defBuf, width, p.NumValues)
		if err != nil {
			return leafInput{}, err
		}
	}
	var filter *pagestate.RowFilter
	if len(p.SelectedRows) > 0 {
		filter = pagestate.NewRowFilter(p.SelectedRows)
	}
	return leafInput{def: def, values: values, filter: filter}, nil
}

// buildValueSource assembles a pagestate.ValueSource[T] for a data page,
// given already-decoded plain values (non-dictionary path) or a resolved
// dictionary plus the page's raw index bytes (dictionary path).
func buildValueSource[T any](in leafInput, isOptional bool, values, dict []T) (*pagestate.ValueSource[T], error) {
	var validity *pagestate.OptionalPageValidity
	maxDef := uint32(0)
	if isOptional {
		maxDef = 1
		if len(in.def) > 0 {
			// caller-supplied def levels are already normalized to this
			// leaf's own optional bit by the time they reach here.
		}
		validity = pagestate.NewOptionalPageValidity(in.def, maxDef)
	}
	var indices *pagestate.HybridRleDecoder
	if dict != nil {
		var err error
		indices, _, err = pagestate.SplitDictIndexHeader(in.values)
		if err != nil {
			return nil, err
		}
	}
	isFiltered := in.filter != nil
	kind := pagestate.SelectKind(dict != nil, isOptional, isFiltered)
	return pagestate.NewValueSource(kind, values, dict, indices, validity, in.filter), nil
}

// builderAdapter lifts a mutablearray push-pair (Push(T), PushNull()) to
// satisfy pagestate.LeafBuilder[T] without every leaf file redeclaring the
// same two-line shim.
type builderAdapter[T any] struct {
	push     func(T)
	pushNull func()
}

func (b builderAdapter[T]) PushValue(v T) { b.push(v) }
func (b builderAdapter[T]) PushNull()     { b.pushNull() }

func newBuilderAdapter[T any](push func(T), pushNull func()) builderAdapter[T] {
	return builderAdapter[T]{push: push, pushNull: pushNull}
}

// nestedLeafAdapter lets a ValueSource be driven from the nesting machine
// (arrow/nestedlevel) instead of the flat DriveRows loop: the nested
// traversal already knows, per row, whether this leaf's definition level
// was reached, so it calls PushValid/PushNull directly rather than
// consulting a validity walker itself.
type nestedLeafAdapter[T any] struct {
	src   *pagestate.ValueSource[T]
	push  func(T)
	pushN func()
}

func newNestedLeafAdapter[T any](src *pagestate.ValueSource[T], push func(T), pushNull func()) *nestedLeafAdapter[T] {
	return &nestedLeafAdapter[T]{src: src, push: push, pushN: pushNull}
}

func (a *nestedLeafAdapter[T]) PushValid() {
	v, ok := a.pullValue()
	if !ok {
		a.pushN()
		return
	}
	a.push(v)
}

func (a *nestedLeafAdapter[T]) PushNull() { a.pushN() }

// pullValue resolves one value off the source's direct or dictionary
// stream.
func (a *nestedLeafAdapter[T]) pullValue() (T, bool) {
	return pullValue(a.src)
}

var _ nestedlevel.LeafPusher = (*nestedLeafAdapter[int32])(nil)

func pullValue[T any](s *pagestate.ValueSource[T]) (T, bool) {
	return s.PullValue()
}
