package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParseStart(t *testing.T) {
	tests := map[string]int{
		"/r":             1,
		"/r?start=":      1,
		"/r?start=abc":   1,
		"/r?start=0":     1,
		"/r?start=-4":    1,
		"/r?start=51":    51,
		"/r?x=1&start=7": 7,
	}
	for target, want := range tests {
		r := httptest.NewRequest("GET", target, nil)
		if got := ParseStart(r); got != want {
			t.Errorf("ParseStart(%q) = %d, want %d", target, got, want)
		}
	}
}

func TestComputeRange(t *testing.T) {
	tests := []struct {
		name  string
		start int
		shown int
		want  Range
	}{
		{
			name:  "no results",
			start: 1,
			shown: 0,
			want:  Range{Start: 0, End: 0, PrevStart: 1, NextStart: 1},
		},
		{
			name:  "first page full",
			start: 1,
			shown: PageSize,
			want:  Range{Start: 1, End: PageSize, PrevStart: 1, NextStart: PageSize + 1},
		},
		{
			name:  "first page partial",
			start: 1,
			shown: 10,
			want:  Range{Start: 1, End: 10, PrevStart: 1, NextStart: 11},
		},
		{
			name:  "second page",
			start: PageSize + 1,
			shown: PageSize,
			want:  Range{Start: PageSize + 1, End: PageSize * 2, PrevStart: 1, NextStart: PageSize*2 + 1},
		},
		{
			name:  "middle page",
			start: 101,
			shown: 50,
			want:  Range{Start: 101, End: 150, PrevStart: 51, NextStart: 151},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeRange(tt.start, tt.shown)
			if got != tt.want {
				t.Errorf("ComputeRange(%d, %d) = %+v, want %+v", tt.start, tt.shown, got, tt.want)
			}
		})
	}
}

func TestSlice(t *testing.T) {
	rows := make([]int, 120)
	for i := range rows {
		rows[i] = i + 1
	}

	first := Slice(rows, 1)
	if len(first.Rows) != PageSize || first.Rows[0] != 1 {
		t.Fatalf("first page: got %d rows starting at %v", len(first.Rows), first.Rows[0])
	}
	if first.HasPrev || !first.HasNext || first.Total != 120 {
		t.Errorf("first page flags: %+v", first)
	}

	last := Slice(rows, 101)
	if len(last.Rows) != 20 || last.Rows[0] != 101 {
		t.Fatalf("last page: got %d rows", len(last.Rows))
	}
	if !last.HasPrev || last.HasNext {
		t.Errorf("last page flags: prev=%v next=%v", last.HasPrev, last.HasNext)
	}
	if last.Range != (Range{Start: 101, End: 120, PrevStart: 51, NextStart: 121}) {
		t.Errorf("last page range: %+v", last.Range)
	}
}

func TestSlice_PastEndAndEmpty(t *testing.T) {
	past := Slice([]string{"a", "b"}, 10)
	if len(past.Rows) != 0 || !past.HasPrev || past.HasNext {
		t.Errorf("past end: %+v", past)
	}

	empty := Slice[string](nil, 1)
	if len(empty.Rows) != 0 || empty.HasPrev || empty.HasNext || empty.Range.Start != 0 {
		t.Errorf("empty: %+v", empty)
	}
}

func TestSlice_SmallPageSize(t *testing.T) {
	p := sliceWithSize([]int{1, 2, 3, 4, 5}, 3, 2)
	if len(p.Rows) != 2 || p.Rows[0] != 3 || p.Rows[1] != 4 {
		t.Errorf("rows: %v", p.Rows)
	}
	if p.Range.PrevStart != 1 || p.Range.NextStart != 5 || !p.HasNext {
		t.Errorf("range: %+v", p)
	}
}
