package stream_test

import (
	"testing"

	"github.com/colarrow/parquetcore/arrow/parquet/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intPageSource struct {
	pages [][]int
	idx   int
}

func (s *intPageSource) NextPage() ([]int, bool, error) {
	if s.idx >= len(s.pages) {
		return nil, false, nil
	}
	p := s.pages[s.idx]
	s.idx++
	return p, true, nil
}

func intChunkIter(pages [][]int, chunkSize int) *stream.ChunkIter[[]int] {
	return stream.NewChunkIter(
		&intPageSource{pages: pages},
		chunkSize,
		func(s []int) int { return len(s) },
		func(s []int, start, length int) []int { return append([]int{}, s[start:start+length]...) },
		func(parts [][]int) []int {
			var out []int
			for _, p := range parts {
				out = append(out, p...)
			}
			return out
		},
	)
}

// TestChunkIterSumEqualsNumRows is invariant 6 (chunk sum): the sum of
// chunk.len() over a ChunkIter equals the num_rows the underlying page
// source declared, regardless of how unevenly pages are split relative to
// chunkSize.
func TestChunkIterSumEqualsNumRows(t *testing.T) {
	pages := [][]int{{1, 2, 3}, {4, 5}, {6, 7, 8, 9, 10}}
	const numRows = 10

	it := intChunkIter(pages, 4)

	var chunks [][]int
	for {
		next, err := it.Next()
		require.NoError(t, err)
		if next.IsNone() {
			break
		}
		v, ok := next.Value()
		require.True(t, ok)
		chunks = append(chunks, v)
	}

	sum := 0
	for _, c := range chunks {
		sum += len(c)
	}
	assert.Equal(t, numRows, sum)

	var flat []int
	for _, c := range chunks {
		flat = append(flat, c...)
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, flat)
}

// TestChunkIterExactMultipleChunkSize covers the boundary where total rows
// is an exact multiple of chunkSize: the final Next() call must still
// report None rather than an empty Some.
func TestChunkIterExactMultipleChunkSize(t *testing.T) {
	pages := [][]int{{1, 2}, {3, 4}}
	it := intChunkIter(pages, 2)

	first, err := it.Next()
	require.NoError(t, err)
	require.True(t, first.IsSome())
	v, _ := first.Value()
	assert.Equal(t, []int{1, 2}, v)

	second, err := it.Next()
	require.NoError(t, err)
	require.True(t, second.IsSome())
	v, _ = second.Value()
	assert.Equal(t, []int{3, 4}, v)

	third, err := it.Next()
	require.NoError(t, err)
	assert.True(t, third.IsNone())
}

// TestChunkIterEmptySource covers the boundary of a column with zero
// pages/rows: the very first Next() call reports None.
func TestChunkIterEmptySource(t *testing.T) {
	it := intChunkIter(nil, 4)
	next, err := it.Next()
	require.NoError(t, err)
	assert.True(t, next.IsNone())
}
