package pagestate

import "github.com/colarrow/parquetcore/arrow/parquet/pages"

// RowFilter adapts a page's SelectedRows list (page-index row-range
// pushdown, spec.md section 4.5's FilteredRequired/FilteredOptional) into
// a predicate over page-relative row indices, used to sub-sample both the
// value stream and the validity stream so push_* only observes selected
// rows.
type RowFilter struct {
	ranges []pages.RowInterval
	idx    int
}

func NewRowFilter(ranges []pages.RowInterval) *RowFilter {
	return &RowFilter{ranges: ranges}
}

// Selected reports whether page-relative row index i falls within a
// selected range; ranges are assumed sorted and non-overlapping, so the
// internal cursor only ever advances forward (callers must query in
// increasing i order, matching the sequential page-decode loop).
func (f *RowFilter) Selected(i int64) bool {
	for f.idx < len(f.ranges) {
		r := f.ranges[f.idx]
		if i < r.Start {
			return false
		}
		if i < r.Start+r.Length {
			return true
		}
		f.idx++
	}
	return false
}

// SelectedCount returns the total number of rows covered by ranges.
func SelectedCount(ranges []pages.RowInterval) int64 {
	var n int64
	for _, r := range ranges {
		n += r.Length
	}
	return n
}
