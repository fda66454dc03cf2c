package sheet

import (
	"context"
	"strconv"
)

// Cell is one named value of a record.
type Cell struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

// Row is a record keyed by column name. Cells keep the sheet's column order,
// which is the iteration order callers rely on for "first match wins" lookups.
type Row []Cell

func (r Row) Keys() []string {
	out := make([]string, 0, len(r))
	for _, c := range r {
		out = append(out, c.Column)
	}
	return out
}

// Get returns the value stored under the exact column name.
func (r Row) Get(column string) (string, bool) {
	for _, c := range r {
		if c.Column == column {
			return c.Value, true
		}
	}
	return "", false
}

const emptyHeader = "__EMPTY"

// headerNames turns the raw header row into unique column names: blank headers
// become __EMPTY, repeats get _1, _2, ... suffixes.
func headerNames(raw []string, width int) []string {
	if width < len(raw) {
		width = len(raw)
	}
	taken := map[string]bool{}
	names := make([]string, width)
	for i := 0; i < width; i++ {
		base := emptyHeader
		if i < len(raw) && raw[i] != "" {
			base = raw[i]
		}
		name := base
		for n := 1; taken[name]; n++ {
			name = base + "_" + strconv.Itoa(n)
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func blank(raw []string) bool {
	for _, v := range raw {
		if v != "" {
			return false
		}
	}
	return true
}

// usedRange drops the blank rows above and the blank columns left of the
// first value, so the header is the first non-blank row.
func usedRange(table [][]string) [][]string {
	for len(table) > 0 && blank(table[0]) {
		table = table[1:]
	}
	left := -1
	for _, raw := range table {
		for j, v := range raw {
			if v != "" {
				if left < 0 || j < left {
					left = j
				}
				break
			}
		}
	}
	if left <= 0 {
		return table
	}
	out := make([][]string, len(table))
	for i, raw := range table {
		if len(raw) > left {
			out[i] = raw[left:]
		}
	}
	return out
}

// recordsFromTable converts a table into rows, taking the first non-blank row
// as the header. Blank cells are left out of a record and rows without any
// value are skipped.
func recordsFromTable(ctx context.Context, table [][]string) ([]Row, error) {
	table = usedRange(table)
	if len(table) == 0 {
		return []Row{}, nil
	}
	width := 0
	for _, t := range table {
		width = max(width, len(t))
	}
	names := headerNames(table[0], width)

	rows := make([]Row, 0, len(table)-1)
	for i, raw := range table[1:] {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		var row Row
		for j, v := range raw {
			if v == "" {
				continue
			}
			row = append(row, Cell{Column: names[j], Value: v})
		}
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
