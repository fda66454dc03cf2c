// Package sheet decodes uploaded spreadsheet bytes into header-keyed rows.
// Only the first sheet of a workbook is read.
package sheet

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	ErrDecode            = errors.New("cannot decode spreadsheet")
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	ErrNoSheet           = errors.New("workbook has no sheets")
)

// DecodeError reports that a file could not be turned into rows.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match any decode failure.
func (e *DecodeError) Is(target error) bool { return target == ErrDecode }

// Reader converts raw file bytes into records.
type Reader interface {
	Read(ctx context.Context, name string, data []byte) ([]Row, error)
}

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
	FormatTSV  Format = "tsv"
)

var zipMagic = []byte("PK\x03\x04")

// DetectFormat picks a decoder from the file extension, falling back to
// content sniffing for unnamed uploads.
func DetectFormat(name string, data []byte) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	case ".tsv", ".tab":
		return FormatTSV, nil
	case ".xls":
		// legacy BIFF workbooks are not readable by excelize
		return "", ErrUnsupportedFormat
	}
	if bytes.HasPrefix(data, zipMagic) {
		return FormatXLSX, nil
	}
	if len(data) > 0 && bytes.IndexByte(data, 0) == -1 {
		return FormatCSV, nil
	}
	return "", ErrUnsupportedFormat
}

type fileReader struct{}

// NewReader returns the default Reader handling xlsx, csv and tsv files.
func NewReader() Reader { return fileReader{} }

func (fileReader) Read(ctx context.Context, name string, data []byte) ([]Row, error) {
	if len(data) == 0 {
		return nil, &DecodeError{Name: name, Err: errors.New("empty file")}
	}
	format, err := DetectFormat(name, data)
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}

	var table [][]string
	switch format {
	case FormatXLSX:
		table, err = readXLSX(data)
	case FormatCSV:
		table, err = readDelimited(data, ',')
	case FormatTSV:
		table, err = readDelimited(data, '\t')
	}
	if err != nil {
		return nil, &DecodeError{Name: name, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return recordsFromTable(ctx, table)
}
