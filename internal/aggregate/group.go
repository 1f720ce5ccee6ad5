package aggregate

import "sort"

// Event is one dated occurrence with an optional payload.
type Event struct {
	Day   string
	Value any
}

// Group is every event of one day. Values keep insertion order.
type Group struct {
	Day    string
	Count  int
	Values []any
}

// GroupByDay buckets events by exact day string and returns the groups in
// chronological order.
func GroupByDay(events []Event) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, e := range events {
		i, ok := index[e.Day]
		if !ok {
			i = len(groups)
			index[e.Day] = i
			groups = append(groups, Group{Day: e.Day})
		}
		groups[i].Count++
		groups[i].Values = append(groups[i].Values, e.Value)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return Less(groups[i].Day, groups[j].Day)
	})
	return groups
}

// CountDays is GroupByDay over bare days.
func CountDays(days []string) []Group {
	events := make([]Event, len(days))
	for i, d := range days {
		events[i] = Event{Day: d}
	}
	return GroupByDay(events)
}
