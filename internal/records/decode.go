package records

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-json"
	"golang.org/x/text/encoding/charmap"
)

var errNoHeader = errors.New("no header row")

// DecodeError is a matched entry that could not be parsed.
type DecodeError struct {
	Entry string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Entry, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// decodable reports whether the entry's extension has a decoder.
func decodable(name string) bool {
	switch strings.ToLower(path.Ext(name)) {
	case ".json", ".csv":
		return true
	}
	return false
}

func decode(name string, data []byte, repair bool) (Record, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return decodeJSON(data, repair)
	case ".csv":
		return decodeCSV(data)
	}
	return nil, fmt.Errorf("no decoder for %q", path.Ext(name))
}

func decodeJSON(data []byte, repair bool) (Record, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	if repair {
		v = RepairEncoding(v)
	}
	switch top := v.(type) {
	case map[string]any:
		return Single(top), nil
	case []any:
		return Many(top), nil
	}
	return nil, &ShapeError{Want: "object or list", Got: kindOf(v)}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeCSV skips free-text preamble lines: the header is the first row with
// at least two non-empty cells, falling back to the first non-empty row.
func decodeCSV(data []byte) (*Tabular, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	header := -1
	for i, row := range rows {
		if filled(row) >= 2 {
			header = i
			break
		}
	}
	if header < 0 {
		for i, row := range rows {
			if filled(row) == 1 {
				header = i
				break
			}
		}
	}
	if header < 0 {
		return nil, errNoHeader
	}

	t := &Tabular{Columns: trimAll(rows[header])}
	for _, row := range rows[header+1:] {
		if filled(row) == 0 {
			continue
		}
		t.Rows = append(t.Rows, fit(row, len(t.Columns)))
	}
	return t, nil
}

func filled(row []string) int {
	n := 0
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			n++
		}
	}
	return n
}

func trimAll(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func fit(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}

// RepairEncoding undoes the latin-1 mojibake found in Instagram exports,
// where UTF-8 bytes were written as individual code points ("GeÃ¤ndert").
// Keys and string values are repaired recursively.
func RepairEncoding(v any) any {
	switch val := v.(type) {
	case string:
		return repairString(val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[repairString(k)] = RepairEncoding(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = RepairEncoding(item)
		}
		return val
	}
	return v
}

func repairString(s string) string {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return s
	}
	raw, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(raw) {
		return s
	}
	return raw
}
