// Package paging windows report tables. The report endpoints return every
// row at once, so pages are cut from the fetched slice and addressed by a
// 1-based "start" row in the query string.
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// PageSize is the default number of rows shown in report tables.
const PageSize = 50

// StartParam is the query parameter carrying the first row shown.
const StartParam = "start"

// ParseStart reads StartParam. Missing or invalid values mean 1.
func ParseStart(r *http.Request) int {
	n, err := strconv.Atoi(query.Get(r, StartParam))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Range is the "Showing a-b" line and the start values of the links
// around it. Start and End are 0 when nothing is shown.
type Range struct {
	Start     int
	End       int
	PrevStart int
	NextStart int
}

// ComputeRange returns the Range for shown rows beginning at start.
func ComputeRange(start, shown int) Range {
	return computeRangeWithSize(start, shown, PageSize)
}

func computeRangeWithSize(start, shown, size int) Range {
	if shown == 0 {
		return Range{PrevStart: 1, NextStart: 1}
	}
	return Range{
		Start:     start,
		End:       start + shown - 1,
		PrevStart: max(start-size, 1),
		NextStart: start + shown,
	}
}

// Page is one window over a result set.
type Page[T any] struct {
	Rows    []T
	Range   Range
	Total   int
	HasPrev bool
	HasNext bool
}

// Slice returns the PageSize window of rows beginning at start. A start
// past the end yields an empty page that still links back.
func Slice[T any](rows []T, start int) Page[T] {
	return sliceWithSize(rows, start, PageSize)
}

func sliceWithSize[T any](rows []T, start, size int) Page[T] {
	start = max(start, 1)
	from := min(start-1, len(rows))
	to := min(from+size, len(rows))
	window := rows[from:to]

	return Page[T]{
		Rows:    window,
		Range:   computeRangeWithSize(start, len(window), size),
		Total:   len(rows),
		HasPrev: start > 1,
		HasNext: to < len(rows),
	}
}
