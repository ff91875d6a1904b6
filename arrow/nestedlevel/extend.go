package nestedlevel

// LevelPair is one (rep, def) pair read off the page's hybrid-RLE level
// streams (spec.md section 4.4).
type LevelPair struct {
	Rep uint32
	Def uint32
}

// LeafPusher is the primitive-decode side of the machine: the final Push
// on the innermost Nested also needs to know whether to consume one value
// from the page's value stream (isValid) or not.
type LeafPusher interface {
	PushValid()
	PushNull()
}

// cumulativeTable holds, per depth, the running count of definition levels
// and repetition levels contributed by every shallower depth. Ported
// directly from the cum_sum/cum_rep construction in nested_utils.rs's
// extend_offsets2: nested is ordered outermost (index 0) to innermost leaf
// (last index), and cumSum[d]/cumRep[d] accumulate over depths [0, d).
type cumulativeTable struct {
	cumSum []uint32
	cumRep []uint32
}

func buildCumulativeTable(nested []Nested) cumulativeTable {
	n := len(nested)
	t := cumulativeTable{cumSum: make([]uint32, n+1), cumRep: make([]uint32, n+1)}
	for d := 0; d < n; d++ {
		sum := t.cumSum[d]
		rep := t.cumRep[d]
		if nested[d].IsNullable() {
			sum++
		}
		if nested[d].IsRepeated() {
			sum++
			rep++
		}
		t.cumSum[d+1] = sum
		t.cumRep[d+1] = rep
	}
	return t
}

// Extend drives the Nested builder stack through one page's worth of
// (rep, def) pairs, calling leaf.PushValid/PushNull exactly once per pair
// that reaches the leaf depth. This is a direct port of nested_utils.rs's
// extend_offsets2 free function, preserving its per-depth values_count
// bookkeeping and is_required carry-through.
func Extend(nested []Nested, pairs []LevelPair, leaf LeafPusher, leafMaxDef uint32) {
	_ = leafMaxDef // leaf validity is derived from cumSum at the leaf depth, per extend_offsets2
	n := len(nested)
	if n == 0 {
		return
	}
	maxDepth := n - 1

	valuesCount := make([]int64, n)
	for depth := 1; depth < n; depth++ {
		valuesCount[depth-1] = int64(nested[depth].Len())
	}
	valuesCount[maxDepth] = int64(nested[maxDepth].Len())

	table := buildCumulativeTable(nested)

	for _, p := range pairs {
		isRequired := false
		for depth := 0; depth < n; depth++ {
			rightLevel := p.Rep <= table.cumRep[depth] && p.Def >= table.cumSum[depth]
			if !isRequired && !rightLevel {
				continue
			}
			isValid := nested[depth].IsNullable() && p.Def > table.cumSum[depth]
			length := valuesCount[depth]
			nested[depth].Push(length, isValid)
			if depth > 0 {
				valuesCount[depth-1] = int64(nested[depth].Len())
			}
			if nested[depth].IsRequired() && !isValid {
				isRequired = true
			} else {
				isRequired = false
			}

			if depth == maxDepth {
				leafValid := p.Def != table.cumSum[depth] || !nested[depth].IsNullable()
				if rightLevel && leafValid {
					leaf.PushValid()
				} else {
					leaf.PushNull()
				}
			}
		}
	}
}

// NestedPage is one page's worth of decoded level pairs plus the
// remaining value/leaf-definition iterator state the leaf decoder needs
// (spec.md section 4.4, "NestedPage").
type NestedPage struct {
	Levels     []LevelPair
	LeafMaxDef uint32
}

// next pulls up to rowLimit rows' worth of (rep, def) pairs off page,
// returning them as out, and reports how many *rows* (rep==0 boundaries) were consumed.
// Mirrors nested_utils.rs's free `next` function, which is what lets a
// single page be split across multiple caller-requested chunks.
func next(page *NestedPage, rowLimit int) (out []LevelPair, rowsConsumed int, exhausted bool) {
	i := 0
	for i < len(page.Levels) && rowsConsumed < rowLimit {
		p := page.Levels[i]
		if p.Rep == 0 && i > 0 {
			rowsConsumed++
			if rowsConsumed == rowLimit {
				break
			}
		}
		i++
	}
	if i == len(page.Levels) && i > 0 {
		rowsConsumed++ // the last row runs to the end of the page
	}
	out = page.Levels[:i]
	page.Levels = page.Levels[i:]
	exhausted = len(page.Levels) == 0
	return out, rowsConsumed, exhausted
}

// NestedArrayIter pulls fixed-size row chunks of reconstructed nesting
// state across as many pages as needed, mirroring the pull-iterator glue
// of spec.md section 4.7 (C7) specialised to the nested-level machine.
type NestedArrayIter struct {
	pages      []*NestedPage
	pageIdx    int
	chunkSize  int
	nested     []Nested
	leaf       LeafPusher
	leafMaxDef uint32
}

func NewNestedArrayIter(pages []*NestedPage, init []InitNested, leaf LeafPusher, leafMaxDef uint32, chunkSize int) *NestedArrayIter {
	return &NestedArrayIter{
		pages:      pages,
		chunkSize:  chunkSize,
		nested:     InitNestedStack(init, chunkSize),
		leaf:       leaf,
		leafMaxDef: leafMaxDef,
	}
}

// Next fills the builder stack with up to one chunk's worth of rows,
// returning false once every page is exhausted and no further progress is
// possible.
func (it *NestedArrayIter) Next() bool {
	remaining := it.chunkSize
	progressed := false
	for remaining > 0 && it.pageIdx < len(it.pages) {
		page := it.pages[it.pageIdx]
		pairs, rows, exhausted := next(page, remaining)
		if len(pairs) > 0 {
			Extend(it.nested, pairs, it.leaf, it.leafMaxDef)
			progressed = true
		}
		remaining -= rows
		if exhausted {
			it.pageIdx++
		}
		if rows == 0 && len(pairs) == 0 {
			break
		}
	}
	return progressed
}

func (it *NestedArrayIter) Nested() []Nested { return it.nested }
