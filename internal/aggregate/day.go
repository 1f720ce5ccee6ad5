// Package aggregate turns raw timestamps into day buckets, groups events per
// day and derives viewing sessions.
package aggregate

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	// DayLayout is the bucket format shared by every platform.
	DayLayout = "02-01-2006"
	// Sentinel replaces timestamps that cannot be read as an epoch.
	Sentinel = "01-01-1999"
)

// DefaultOffset is the fixed offset exports are interpreted in.
const DefaultOffset = time.Hour

// Converter maps raw timestamps onto day buckets in a fixed UTC offset and
// counts how often it had to fall back to Sentinel. One Converter serves one
// extraction run.
type Converter struct {
	loc           *time.Location
	substitutions int
}

func NewConverter(offset time.Duration) *Converter {
	return &Converter{loc: time.FixedZone(zoneName(offset), int(offset.Seconds()))}
}

func zoneName(offset time.Duration) string {
	if offset == 0 {
		return "UTC"
	}
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, int(offset.Hours()), int(offset.Minutes())%60)
}

// Day reads raw as Unix seconds. Anything that is not an integer-like value
// yields Sentinel.
func (c *Converter) Day(raw any) string {
	sec, ok := epoch(raw)
	if !ok {
		c.substitutions++
		return Sentinel
	}
	return time.Unix(sec, 0).In(c.loc).Format(DayLayout)
}

// DayOf buckets an already parsed instant.
func (c *Converter) DayOf(t time.Time) string {
	return t.In(c.loc).Format(DayLayout)
}

// ParseDay reads a textual date with the first matching layout. A value
// carrying no zone is taken as already local to the export.
func (c *Converter) ParseDay(raw string, layouts ...string) string {
	day, ok := c.TryDay(raw, layouts...)
	if !ok {
		c.substitutions++
		return Sentinel
	}
	return day
}

// TryDay is ParseDay without the Sentinel fallback. Rows whose date cannot
// be read are dropped by the caller instead.
func (c *Converter) TryDay(raw string, layouts ...string) (string, bool) {
	t, zoned, ok := parse(raw, layouts)
	if !ok {
		return "", false
	}
	if zoned {
		return c.DayOf(t), true
	}
	return t.Format(DayLayout), true
}

// Clock returns the wall time of t in the export offset.
func (c *Converter) Clock(t time.Time) string {
	return t.In(c.loc).Format(time.TimeOnly)
}

func parse(raw string, layouts []string) (time.Time, bool, bool) {
	raw = strings.TrimSpace(raw)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, hasZone(layout), true
		}
	}
	return time.Time{}, false, false
}

func hasZone(layout string) bool {
	for _, marker := range []string{"Z07", "-07", "MST"} {
		if strings.Contains(layout, marker) {
			return true
		}
	}
	return false
}

// Substitutions is the number of Sentinel days handed out so far.
func (c *Converter) Substitutions() int {
	return c.substitutions
}

func epoch(raw any) (int64, bool) {
	switch v := raw.(type) {
	case nil, bool:
		return 0, false
	case string:
		if strings.TrimSpace(v) == "" {
			return 0, false
		}
	}
	sec, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, false
	}
	return sec, true
}

// Epoch exposes the integer reading used by Day.
func Epoch(raw any) (int64, bool) {
	return epoch(raw)
}

// Less orders two day buckets chronologically. Keys that are not in
// DayLayout sort after every valid day.
func Less(a, b string) bool {
	ta, errA := time.Parse(DayLayout, a)
	tb, errB := time.Parse(DayLayout, b)
	switch {
	case errA != nil && errB != nil:
		return a < b
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	return ta.Before(tb)
}
