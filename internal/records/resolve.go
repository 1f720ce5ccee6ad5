package records

import (
	"fmt"
	"strconv"
	"strings"
)

// ShapeError reports a record fragment whose structure differs from what an
// extractor expects.
type ShapeError struct {
	Path string
	Want string
	Got  string
}

func (e *ShapeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("record: want %s, got %s", e.Want, e.Got)
	}
	return fmt.Sprintf("record %s: want %s, got %s", e.Path, e.Want, e.Got)
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, Single:
		return "object"
	case []any, Many:
		return "list"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, int, int64:
		return "number"
	case *Tabular:
		return "table"
	case Bundle:
		return "bundle"
	}
	return fmt.Sprintf("%T", v)
}

func asObject(v any) (map[string]any, bool) {
	switch o := v.(type) {
	case map[string]any:
		return o, true
	case Single:
		return o, true
	}
	return nil, false
}

func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case Many:
		return l, true
	}
	return nil, false
}

// Lookup walks v along path. String steps index objects, int steps index
// lists. The first mismatch is returned as a *ShapeError.
func Lookup(v any, path ...any) (any, error) {
	cur := v
	for i, step := range path {
		walked := pathString(path[:i+1])
		switch key := step.(type) {
		case string:
			obj, ok := asObject(cur)
			if !ok {
				return nil, &ShapeError{Path: walked, Want: "object", Got: kindOf(cur)}
			}
			next, ok := obj[key]
			if !ok {
				return nil, &ShapeError{Path: walked, Want: "key", Got: "absent"}
			}
			cur = next
		case int:
			list, ok := asList(cur)
			if !ok {
				return nil, &ShapeError{Path: walked, Want: "list", Got: kindOf(cur)}
			}
			if key < 0 || key >= len(list) {
				return nil, &ShapeError{Path: walked, Want: "index", Got: fmt.Sprintf("length %d", len(list))}
			}
			cur = list[key]
		default:
			return nil, &ShapeError{Path: walked, Want: "string or int step", Got: fmt.Sprintf("%T", step)}
		}
	}
	return cur, nil
}

// LookupString is Lookup for a terminal string value.
func LookupString(v any, path ...any) (string, error) {
	got, err := Lookup(v, path...)
	if err != nil {
		return "", err
	}
	s, ok := got.(string)
	if !ok {
		return "", &ShapeError{Path: pathString(path), Want: "string", Got: kindOf(got)}
	}
	return s, nil
}

func pathString(path []any) string {
	var b strings.Builder
	for _, step := range path {
		switch key := step.(type) {
		case string:
			b.WriteString("." + key)
		case int:
			b.WriteString("[" + strconv.Itoa(key) + "]")
		}
	}
	return b.String()
}

// Resolve returns the value stored under the first candidate key present in
// fragment. A present key with a false or empty value still counts.
func Resolve(fragment any, candidates ...string) (any, bool) {
	obj, ok := asObject(fragment)
	if !ok {
		return nil, false
	}
	for _, key := range candidates {
		if v, ok := obj[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// List normalizes v into a list. A bare object becomes a one-element list,
// which is how exports serialize collections of exactly one entry.
func List(v any) ([]any, error) {
	if l, ok := asList(v); ok {
		return l, nil
	}
	if o, ok := asObject(v); ok {
		return []any{o}, nil
	}
	return nil, &ShapeError{Want: "list", Got: kindOf(v)}
}

// ListAt is Lookup followed by List.
func ListAt(v any, path ...any) ([]any, error) {
	got, err := Lookup(v, path...)
	if err != nil {
		return nil, err
	}
	if list, err := List(got); err == nil {
		return list, nil
	}
	return nil, &ShapeError{Path: pathString(path), Want: "list", Got: kindOf(got)}
}

// Items returns the top-level entries of a JSON record.
func Items(r Record) ([]any, error) {
	switch v := r.(type) {
	case Single:
		return []any{map[string]any(v)}, nil
	case Many:
		return []any(v), nil
	}
	return nil, &ShapeError{Want: "json record", Got: kindOf(r)}
}
