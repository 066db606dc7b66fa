// Package tableview turns backend rows into display strings: column
// headers from snake_case keys and cells from decoded JSON values.
package tableview

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/manduakash/TeaGardenSurvey-web-stagging/internal/domain/models"
)

// acronyms are kept upper-case in headers.
var acronyms = map[string]string{
	"id":  "ID",
	"gp":  "GP",
	"tg":  "TG",
	"bp":  "BP",
	"sam": "SAM",
	"mam": "MAM",
	"bmi": "BMI",
}

// Humanize converts a backend key such as "total_households" to
// "Total Households".
func Humanize(key string) string {
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == ' ' })
	for i, p := range parts {
		lower := strings.ToLower(p)
		if a, ok := acronyms[lower]; ok {
			parts[i] = a
			continue
		}
		parts[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(parts, " ")
}

// Cell renders one decoded JSON value. Whole floats print without a
// decimal point and null prints empty.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	}
	return fmt.Sprint(v)
}

// Row is one rendered table row.
type Row []string

// Rows renders every row of t in column order.
func Rows(t models.ReportTable) []Row {
	out := make([]Row, 0, len(t.Rows))
	for _, r := range t.Rows {
		row := make(Row, len(t.Columns))
		for i, c := range t.Columns {
			row[i] = Cell(r[c])
		}
		out = append(out, row)
	}
	return out
}

// Headers returns the humanized column names of t.
func Headers(t models.ReportTable) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = Humanize(c)
	}
	return out
}

// Stat is one labelled counter.
type Stat struct {
	Key   string
	Label string
	Value int64
}

// Stats orders counters: keys named in first come first in that order,
// the rest follow alphabetically.
func Stats(counts models.DashboardCounts, first ...string) []Stat {
	rank := make(map[string]int, len(first))
	for i, k := range first {
		rank[k] = i
	}
	out := make([]Stat, 0, len(counts))
	for k, v := range counts {
		out = append(out, Stat{Key: k, Label: Humanize(k), Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iok := rank[out[i].Key]
		rj, jok := rank[out[j].Key]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		}
		return out[i].Key < out[j].Key
	})
	return out
}
