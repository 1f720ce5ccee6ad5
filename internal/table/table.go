// Package table is the normalized output of every extractor: translated
// column headers and ordered rows.
package table

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

type Table struct {
	Key     string
	Title   string
	Columns []string
	Rows    [][]any
}

func New(key, title string, columns ...string) *Table {
	return &Table{Key: key, Title: title, Columns: columns}
}

// Append adds one row. Short rows are padded with nil, long rows are an
// error in the calling extractor and panic.
func (t *Table) Append(values ...any) {
	if len(values) > len(t.Columns) {
		panic(fmt.Sprintf("table %s: %d values for %d columns", t.Key, len(values), len(t.Columns)))
	}
	row := make([]any, len(t.Columns))
	copy(row, values)
	t.Rows = append(t.Rows, row)
}

func (t *Table) Len() int {
	return len(t.Rows)
}

// Row returns row i as column name to value.
func (t *Table) Row(i int) map[string]any {
	out := make(map[string]any, len(t.Columns))
	for c, name := range t.Columns {
		out[name] = t.Rows[i][c]
	}
	return out
}

type wireTable struct {
	Key     string            `json:"key"`
	Title   string            `json:"title"`
	Columns []string          `json:"columns"`
	Rows    []json.RawMessage `json:"rows"`
}

// MarshalJSON writes each row as an object whose keys follow column order.
func (t *Table) MarshalJSON() ([]byte, error) {
	w := wireTable{Key: t.Key, Title: t.Title, Columns: t.Columns, Rows: make([]json.RawMessage, 0, len(t.Rows))}
	if w.Columns == nil {
		w.Columns = []string{}
	}
	for _, row := range t.Rows {
		obj, err := orderedObject(t.Columns, row)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", t.Key, err)
		}
		w.Rows = append(w.Rows, obj)
	}
	return json.Marshal(w)
}

func orderedObject(columns []string, row []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(row[i])
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t *Table) UnmarshalJSON(data []byte) error {
	var w wireTable
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	t.Key, t.Title, t.Columns = w.Key, w.Title, w.Columns
	t.Rows = make([][]any, 0, len(w.Rows))
	for _, raw := range w.Rows {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return fmt.Errorf("table %s: %w", w.Key, err)
		}
		row := make([]any, len(w.Columns))
		for i, name := range w.Columns {
			row[i] = obj[name]
		}
		t.Rows = append(t.Rows, row)
	}
	return nil
}
