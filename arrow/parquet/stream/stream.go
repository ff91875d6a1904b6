// Package stream implements the pull-iterator glue of spec.md section 4.7
// (C7): a tri-state MaybeNext result and the pending-chunk-queue Next
// function, mirroring original_source's free `next` function in
// nested_utils.rs generalized to both the nested (NestedState-carrying)
// and flat (bare Array) cases.
package stream

// MaybeNext is the tri-state result of pulling one chunk from a column
// iterator: either a value is ready (Some), more page data must be read
// before one is (More), or the column is exhausted (None).
type MaybeNext[T any] struct {
	state maybeState
	value T
}

type maybeState int

const (
	stateSome maybeState = iota
	stateMore
	stateNone
)

func Some[T any](v T) MaybeNext[T] { return MaybeNext[T]{state: stateSome, value: v} }
func More[T any]() MaybeNext[T]    { return MaybeNext[T]{state: stateMore} }
func None[T any]() MaybeNext[T]    { return MaybeNext[T]{state: stateNone} }

func (m MaybeNext[T]) IsSome() bool { return m.state == stateSome }
func (m MaybeNext[T]) IsMore() bool { return m.state == stateMore }
func (m MaybeNext[T]) IsNone() bool { return m.state == stateNone }

// Value returns the carried value and whether this is a Some.
func (m MaybeNext[T]) Value() (T, bool) { return m.value, m.state == stateSome }

// PageSource is the minimal pull contract a chunked column iterator needs
// from its page source: produce the next decoded page's worth of T
// (nil/zero + false once the source is exhausted), or an error.
type PageSource[T any] interface {
	NextPage() (T, bool, error)
}

// ChunkIter drives chunkSize-row pulls out of a PageSource, accumulating
// partial pages across calls and reporting a MaybeNext[T] per Next() call
// — exactly the loop original_source's free `next` function implements
// for a single column's pending-chunk queue.
type ChunkIter[T any] struct {
	source    PageSource[T]
	chunkSize int
	pending   []T
	lenFn     func(T) int
	sliceFn   func(T, int, int) T
	concatFn  func([]T) T
}

// NewChunkIter constructs a ChunkIter. lenFn reports the row count of one
// accumulated item; sliceFn extracts a [start,start+length) sub-range;
// concatFn merges several same-shaped items into one chunkSize-row item
// when a single page's remainder is smaller than chunkSize.
func NewChunkIter[T any](source PageSource[T], chunkSize int, lenFn func(T) int, sliceFn func(T, int, int) T, concatFn func([]T) T) *ChunkIter[T] {
	return &ChunkIter[T]{source: source, chunkSize: chunkSize, lenFn: lenFn, sliceFn: sliceFn, concatFn: concatFn}
}

// Next pulls one chunkSize-row chunk, reading as many pages from source
// as needed; returns None once both the pending queue and the source are
// exhausted.
func (it *ChunkIter[T]) Next() (MaybeNext[T], error) {
	total := 0
	for _, p := range it.pending {
		total += it.lenFn(p)
	}
	for total < it.chunkSize {
		page, ok, err := it.source.NextPage()
		if err != nil {
			return MaybeNext[T]{}, err
		}
		if !ok {
			break
		}
		it.pending = append(it.pending, page)
		total += it.lenFn(page)
	}
	if len(it.pending) == 0 {
		return None[T](), nil
	}
	if total < it.chunkSize {
		// Source exhausted with a partial final chunk: return what's left.
		out := it.concatFn(it.pending)
		it.pending = nil
		return Some(out), nil
	}

	merged := it.concatFn(it.pending)
	head := it.sliceFn(merged, 0, it.chunkSize)
	rest := it.sliceFn(merged, it.chunkSize, it.lenFn(merged)-it.chunkSize)
	if it.lenFn(rest) > 0 {
		it.pending = []T{rest}
	} else {
		it.pending = nil
	}
	return Some(head), nil
}
