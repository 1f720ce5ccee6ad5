// Package records locates artifacts inside an archive and decodes them into
// a small tagged union that extractors switch over.
package records

// Record is one decoded artifact. The concrete type is fixed at decode time.
type Record interface {
	isRecord()
}

// Single is a JSON object at the top level of an artifact.
type Single map[string]any

// Many is a JSON list at the top level of an artifact.
type Many []any

// Tabular is a decoded CSV with its header row split off.
type Tabular struct {
	Columns []string
	Rows    [][]string
}

// Bundle holds one record per named slot of a combined artifact. Missing
// sources are an empty Single, never nil.
type Bundle map[string]Record

func (Single) isRecord()   {}
func (Many) isRecord()     {}
func (*Tabular) isRecord() {}
func (Bundle) isRecord()   {}

// Column returns the index of the first column named exactly name.
func (t *Tabular) Column(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return -1, false
}

// Cell returns row[col] or "" when the row is short.
func (t *Tabular) Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// Empty reports whether a record carries no data at all.
func Empty(r Record) bool {
	switch v := r.(type) {
	case nil:
		return true
	case Single:
		return len(v) == 0
	case Many:
		return len(v) == 0
	case *Tabular:
		return len(v.Rows) == 0
	case Bundle:
		for _, slot := range v {
			if !Empty(slot) {
				return false
			}
		}
		return true
	}
	return false
}
