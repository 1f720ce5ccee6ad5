package extract

import (
	"sort"
	"strings"

	"ddp/internal/aggregate"
	"ddp/internal/locale"
	"ddp/internal/records"
	"ddp/internal/table"
)

var (
	listTimestamp = []any{"string_list_data", 0, "timestamp"}
	timeTimestamp = []any{"string_map_data", "Time", "timestamp"}
)

// listOf returns the items under path, or the top-level items when path is
// empty.
func listOf(v any, path []any) ([]any, error) {
	if len(path) == 0 {
		return records.List(v)
	}
	return records.ListAt(v, path...)
}

// optionalList is listOf that reads an absent key as an empty list.
func optionalList(v any, path []any) ([]any, error) {
	if len(path) > 0 {
		if _, err := records.Lookup(v, path...); err != nil {
			return nil, nil
		}
	}
	return listOf(v, path)
}

// optional is Lookup without the error.
func optional(v any, path ...any) (any, bool) {
	got, err := records.Lookup(v, path...)
	return got, err == nil
}

// field resolves the first present candidate key of the string_map_data
// object of item and returns the nested attribute.
func field(item any, attr string, candidates ...string) (any, bool) {
	smd, ok := optional(item, "string_map_data")
	if !ok {
		return nil, false
	}
	entry, ok := records.Resolve(smd, candidates...)
	if !ok {
		return nil, false
	}
	return records.Resolve(entry, attr)
}

func countTable(in *Input, days []string, column locale.Text) *table.Table {
	t := table.New("", "", in.T(locale.KeyDate), in.Text(column))
	for _, g := range aggregate.CountDays(days) {
		t.Append(g.Day, g.Count)
	}
	return t
}

func singleRow(in *Input, column locale.Text, value any) *table.Table {
	t := table.New("", "", in.Text(column))
	t.Append(value)
	return t
}

func noEntries(in *Input, key string) *table.Table {
	t := table.New("", "", in.T(locale.KeyNoInformation))
	t.Append(locale.Tf(in.Locale, locale.KeyNoEntries, key))
	return t
}

// DailyCount buckets the timestamp at ts of every item under list and counts
// items per day.
func DailyCount(list, ts []any, column locale.Text) Func {
	return func(in *Input) (*table.Table, error) {
		items, err := listOf(in.Record, list)
		if err != nil {
			return nil, err
		}
		days := make([]string, 0, len(items))
		for _, item := range items {
			raw, err := records.Lookup(item, ts...)
			if err != nil {
				return nil, err
			}
			days = append(days, in.Days.Day(raw))
		}
		return countTable(in, days, column), nil
	}
}

// DailyCollect groups the value at val of every item by the day at ts.
// Items without a value contribute fallback.
func DailyCollect(list, ts, val []any, column, fallback locale.Text) Func {
	return func(in *Input) (*table.Table, error) {
		items, err := listOf(in.Record, list)
		if err != nil {
			return nil, err
		}
		events := make([]aggregate.Event, 0, len(items))
		for _, item := range items {
			raw, err := records.Lookup(item, ts...)
			if err != nil {
				return nil, err
			}
			v, ok := optional(item, val...)
			if !ok || v == nil {
				v = in.Text(fallback)
			}
			events = append(events, aggregate.Event{Day: in.Days.Day(raw), Value: v})
		}

		t := table.New("", "", in.T(locale.KeyDate), in.Text(column))
		for _, g := range aggregate.GroupByDay(events) {
			t.Append(g.Day, g.Values)
		}
		return t, nil
	}
}

// FlatList emits the value at val of every item under list as its own row.
func FlatList(list, val []any, column locale.Text) Func {
	return func(in *Input) (*table.Table, error) {
		items, err := listOf(in.Record, list)
		if err != nil {
			return nil, err
		}
		t := table.New("", "", in.Text(column))
		for _, item := range items {
			v, err := records.Lookup(item, val...)
			if err != nil {
				return nil, err
			}
			t.Append(v)
		}
		return t, nil
	}
}

// CountItems reports how many items sit under list.
func CountItems(list []any, column locale.Text) Func {
	return func(in *Input) (*table.Table, error) {
		items, err := listOf(in.Record, list)
		if err != nil {
			return nil, err
		}
		return singleRow(in, column, len(items)), nil
	}
}

// Indicator renders one tri-state flag returned by read.
func Indicator(column locale.Text, read func(in *Input) (any, error)) Func {
	return func(in *Input) (*table.Table, error) {
		v, err := read(in)
		if err != nil {
			return nil, err
		}
		return singleRow(in, column, locale.Indicator(in.Locale, v)), nil
	}
}

var (
	mediaLocation = tr("Standort enthalten", "Location included", "Locatie inbegrepen")
	mediaFace     = tr("Gesicht sichtbar", "Face visible", "Zichtbaar gezicht")
)

// mediaItems flattens posts under list. With nested set each post carries
// its pictures in a media list; otherwise the items are the pictures.
func mediaItems(v any, list []any, nested bool) ([]any, error) {
	posts, err := optionalList(v, list)
	if err != nil || !nested {
		return posts, err
	}
	var media []any
	for _, post := range posts {
		m, err := optionalList(post, []any{"media"})
		if err != nil {
			return nil, err
		}
		media = append(media, m...)
	}
	return media, nil
}

func hasGeotag(media any) bool {
	for _, kind := range []string{"photo_metadata", "video_metadata"} {
		exif, ok := optional(media, "media_metadata", kind, "exif_data")
		if !ok {
			continue
		}
		entries, err := records.List(exif)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if _, ok := records.Resolve(e, "latitude"); ok {
				return true
			}
		}
	}
	return false
}

// MediaPosts emits one row per picture with its day, whether it carries a
// geotag and whether a face was found on it.
func MediaPosts(list []any, nested bool) Func {
	return func(in *Input) (*table.Table, error) {
		media, err := mediaItems(in.Record, list, nested)
		if err != nil {
			return nil, err
		}
		t := table.New("", "", in.T(locale.KeyDate), in.Text(mediaLocation), in.Text(mediaFace))
		for _, m := range media {
			raw, _ := records.Resolve(m, "creation_timestamp")
			uri, _ := records.Resolve(m, "uri")
			name, _ := uri.(string)
			t.Append(
				in.Days.Day(raw),
				locale.Indicator(in.Locale, hasGeotag(m)),
				locale.Indicator(in.Locale, in.Pictures.Face(name)),
			)
		}
		return t, nil
	}
}

// MediaCount counts pictures per day of creation.
func MediaCount(list []any, nested bool, column locale.Text) Func {
	return func(in *Input) (*table.Table, error) {
		media, err := mediaItems(in.Record, list, nested)
		if err != nil {
			return nil, err
		}
		days := make([]string, 0, len(media))
		for _, m := range media {
			raw, _ := records.Resolve(m, "creation_timestamp")
			days = append(days, in.Days.Day(raw))
		}
		return countTable(in, days, column), nil
	}
}

// tabular asserts that the input is a decoded CSV.
func tabular(in *Input) (*records.Tabular, error) {
	t, ok := in.Record.(*records.Tabular)
	if !ok {
		return nil, &records.ShapeError{Want: "csv", Got: recordKind(in.Record)}
	}
	return t, nil
}

func recordKind(r records.Record) string {
	switch r.(type) {
	case records.Single:
		return "object"
	case records.Many:
		return "list"
	case records.Bundle:
		return "bundle"
	}
	return "null"
}

// column finds the first exact candidate, then the first column whose name
// contains any of the fragments.
func column(t *records.Tabular, exact []string, fragments ...string) (int, bool) {
	for _, name := range exact {
		if i, ok := t.Column(name); ok {
			return i, true
		}
	}
	for i, c := range t.Columns {
		for _, f := range fragments {
			if containsFold(c, f) {
				return i, true
			}
		}
	}
	return -1, false
}

// dateColumn is the positional fallback for a renamed date column: the first
// column whose non-empty cells all parse with layouts.
func dateColumn(in *Input, t *records.Tabular, layouts []string) (int, bool) {
	for i := range t.Columns {
		seen := false
		parsed := true
		for _, row := range t.Rows {
			cell := strings.TrimSpace(t.Cell(row, i))
			if cell == "" {
				continue
			}
			seen = true
			if _, ok := in.Days.TryDay(cell, layouts...); !ok {
				parsed = false
				break
			}
		}
		if seen && parsed {
			return i, true
		}
	}
	return -1, false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToUpper(s), strings.ToUpper(substr))
}

func sortDays(days []string) {
	sort.SliceStable(days, func(i, j int) bool {
		return aggregate.Less(days[i], days[j])
	})
}

// DailyTabular counts CSV rows per day of the date column. Rows whose date
// cannot be parsed are dropped. When no column name matches, the first column
// holding only dates is used; failing that, one row names the problem and the
// total row count.
func DailyTabular(exact, fragments, layouts []string, count locale.Text) Func {
	return func(in *Input) (*table.Table, error) {
		csv, err := tabular(in)
		if err != nil {
			return nil, err
		}
		t := table.New("", "", in.T(locale.KeyDate), in.Text(count))
		col, ok := column(csv, exact, fragments...)
		if !ok {
			col, ok = dateColumn(in, csv, layouts)
		}
		if !ok {
			t.Append(in.T(locale.KeyColumnNotFound), len(csv.Rows))
			return t, nil
		}
		var days []string
		for _, row := range csv.Rows {
			if day, ok := in.Days.TryDay(csv.Cell(row, col), layouts...); ok {
				days = append(days, day)
			}
		}
		if len(days) == 0 {
			t.Append(in.T(locale.KeyNoValidDates), 0)
			return t, nil
		}
		for _, g := range aggregate.CountDays(days) {
			t.Append(g.Day, g.Count)
		}
		return t, nil
	}
}
