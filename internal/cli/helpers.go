package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"ddp/internal/services"
	"ddp/internal/table"

	"github.com/schollz/progressbar/v3"
)

// printTables renders every table as a titled, tab-aligned block.
func printTables(w io.Writer, tables []*table.Table) error {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "== %s (%s)\n", t.Title, t.Key)

		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(t.Columns, "\t"))
		for _, row := range t.Rows {
			cells := make([]string, len(row))
			for j, v := range row {
				cells[j] = cell(v)
			}
			fmt.Fprintln(tw, strings.Join(cells, "\t"))
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func cell(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = cell(item)
		}
		return strings.Join(parts, ", ")
	case string:
		return strings.ReplaceAll(v, "\t", " ")
	}
	return fmt.Sprint(v)
}

// progress draws one bar per extraction stage.
type progress struct {
	w     io.Writer
	stage services.Stage
	bar   *progressbar.ProgressBar
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) update(u services.Update) {
	if p.bar == nil || u.Stage != p.stage {
		p.finish()
		p.stage = u.Stage
		p.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(p.w) }),
		)
	}
	p.bar.Describe(u.Message)
	_ = p.bar.Set(int(u.Percentage))
}

func (p *progress) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}
