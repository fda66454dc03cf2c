package quiz

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mind-engage/sheetquiz/internal/sheet"
)

type matcher func(lower string) bool

func containsAny(subs ...string) matcher {
	return func(lower string) bool {
		for _, s := range subs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

var (
	isIDColumn = func(lower string) bool {
		return containsAny("question", "id", "number")(lower) || lower == "no"
	}
	isTextColumn  = containsAny("text", "question", "prompt")
	isImageColumn = containsAny("image", "url", "img")
	isNoteColumn  = containsAny("note", "hint")
)

func isOptionColumn(lower string) bool {
	switch lower {
	case "a", "b", "c", "d":
		return true
	}
	return strings.Contains(lower, "option") || strings.HasPrefix(lower, "choice")
}

// findColumn returns the first column, in row order, accepted by m. Columns in
// skip are only used when nothing else matches.
func findColumn(row sheet.Row, m matcher, skip string) (string, bool) {
	fallback, haveFallback := "", false
	for _, c := range row {
		if !m(strings.ToLower(c.Column)) {
			continue
		}
		if skip != "" && c.Column == skip {
			fallback, haveFallback = c.Column, true
			continue
		}
		return c.Column, true
	}
	return fallback, haveFallback
}

// value returns the cell under column, treating a blank cell as missing.
func value(row sheet.Row, column string, found bool) (string, bool) {
	if !found {
		return "", false
	}
	v, ok := row.Get(column)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// BuildQuestion infers a Question from one spreadsheet row at 0-based
// position. Every role has a fallback, so it never fails.
func BuildQuestion(row sheet.Row, position int) Question {
	idCol, idFound := findColumn(row, isIDColumn, "")
	// The text role prefers a column other than the one holding the id, so a
	// "Question No" column does not hide a "Prompt" column. When the id column
	// is the only candidate both fields read it.
	textCol, textFound := findColumn(row, isTextColumn, idCol)
	imageCol, imageFound := findColumn(row, isImageColumn, "")
	noteCol, noteFound := findColumn(row, isNoteColumn, "")

	q := Question{
		ID:      strconv.Itoa(position + 1),
		Text:    "Question " + strconv.Itoa(position+1),
		Options: buildOptions(row),
	}
	if v, ok := value(row, idCol, idFound); ok {
		q.ID = v
	}
	if v, ok := value(row, textCol, textFound); ok {
		q.Text = v
	}
	if v, ok := value(row, imageCol, imageFound); ok {
		q.Image = &v
	}
	if v, ok := value(row, noteCol, noteFound); ok {
		q.Note = &v
	}
	return q
}

func buildOptions(row sheet.Row) [4]Option {
	var bulk []string
	for _, c := range row {
		if isOptionColumn(strings.ToLower(c.Column)) {
			bulk = append(bulk, c.Column)
		}
	}
	sort.Strings(bulk)

	var out [4]Option
	if len(bulk) >= len(Letters) {
		// content is assigned by sorted position, not by the letter in the name
		for i, l := range Letters {
			v, _ := row.Get(bulk[i])
			out[i] = Option{Letter: l, Text: v}
		}
		return out
	}

	for i, l := range Letters {
		lower := strings.ToLower(string(l))
		out[i] = Option{Letter: l, Text: "Option " + string(l)}
		for _, c := range row {
			k := strings.ToLower(c.Column)
			if k == lower || k == "option_"+lower || k == "option"+lower {
				if c.Value != "" {
					out[i].Text = c.Value
				}
				break
			}
		}
	}
	return out
}

// BuildQuestions maps every row to a Question in sheet order.
func BuildQuestions(rows []sheet.Row) []Question {
	out := make([]Question, 0, len(rows))
	for i, r := range rows {
		out = append(out, BuildQuestion(r, i))
	}
	return out
}
