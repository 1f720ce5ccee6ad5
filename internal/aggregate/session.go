package aggregate

import (
	"slices"
	"time"
)

// DaySessions is the per-day outcome of Segment.
type DaySessions struct {
	Day      string
	Sessions int
	Active   time.Duration
}

// Segment splits timestamps (Unix seconds) into sessions. A session ends
// when the next timestamp falls on another day or at least gap later. Each
// closed session adds its span plus tail to its day. Input order does not
// matter. Days are returned chronologically.
func Segment(timestamps []int64, gap, tail time.Duration, conv *Converter) []DaySessions {
	if len(timestamps) == 0 {
		return nil
	}
	ts := slices.Clone(timestamps)
	slices.Sort(ts)

	gapSec := int64(gap / time.Second)
	index := make(map[string]int)
	var out []DaySessions

	var (
		start, last int64
		day         string
	)
	closeSession := func() {
		i, ok := index[day]
		if !ok {
			i = len(out)
			index[day] = i
			out = append(out, DaySessions{Day: day})
		}
		out[i].Sessions++
		out[i].Active += time.Duration(last-start)*time.Second + tail
	}

	for i, t := range ts {
		d := conv.DayOf(time.Unix(t, 0))
		if i == 0 {
			start, last, day = t, t, d
			continue
		}
		if d != day || t-last >= gapSec {
			closeSession()
			start, day = t, d
		}
		last = t
	}
	closeSession()

	slices.SortStableFunc(out, func(a, b DaySessions) int {
		switch {
		case Less(a.Day, b.Day):
			return -1
		case Less(b.Day, a.Day):
			return 1
		}
		return 0
	})
	return out
}
