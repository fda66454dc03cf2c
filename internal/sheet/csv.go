package sheet

import (
	"bytes"
	"encoding/csv"
)

var utf8BOM = []byte("\xef\xbb\xbf")

func readDelimited(data []byte, comma rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return r.ReadAll()
}
