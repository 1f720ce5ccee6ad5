package pipeline

import (
	"fmt"
	"strings"

	"ddp/internal/locale"
	"ddp/internal/table"
)

// SummaryKey is the key of the synthetic overview table.
const SummaryKey = "binary_results"

// Summarize folds every one-row table into a single (category, data)
// overview appended after the remaining tables. Each folded row becomes
// "col: val |> col: val" under its table title.
func Summarize(tables []*table.Table, l locale.Locale) []*table.Table {
	summary := table.New(SummaryKey, locale.T(l, locale.KeySummaryTitle),
		locale.T(l, locale.KeySummaryCategory), locale.T(l, locale.KeySummaryData))

	out := make([]*table.Table, 0, len(tables)+1)
	for _, t := range tables {
		if t.Len() != 1 {
			out = append(out, t)
			continue
		}
		parts := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			parts[i] = fmt.Sprintf("%s: %v", col, t.Rows[0][i])
		}
		summary.Append(t.Title, strings.Join(parts, " |> "))
	}
	if summary.Len() > 0 {
		out = append(out, summary)
	}
	return out
}
