package extract

import (
	"time"

	"ddp/internal/locale"
	"ddp/internal/records"
	"ddp/internal/table"
)

func youtubeArtifacts() []Descriptor {
	return []Descriptor{
		{
			Key:      "watch_history",
			Patterns: []string{"Wiedergabeverlauf.json", "watch-history.json"},
			Title: tr("Wie viele Videos haben Sie pro Tag angesehen?",
				"How many videos have you watched per day?",
				"Hoeveel video's heb je per dag bekeken?"),
			Extract: isoDaily([]string{"time", "titleUrl"},
				tr("Anzahl der gesehenen Videos", "Number of videos watched", "Aantal bekeken video's")),
		},
		{
			Key:      "subscriptions",
			Patterns: []string{"Abos.csv", "subscriptions.csv"},
			Title: tr("Welche Kanäle haben Sie abonniert?",
				"Which channels are you subscribed to?",
				"Op welke kanalen ben je geabonneerd?"),
			Extract: subscriptions,
		},
		{
			Key:      "comments",
			Patterns: []string{"Kommentare.csv", "comments.csv"},
			Title: tr("Wie viele Kommentare haben Sie pro Tag geschrieben?",
				"How many comments have you written per day?",
				"Hoeveel reacties heb je per dag geschreven?"),
			Extract: DailyTabular(
				[]string{"Zeitstempel der Erstellung des Kommentars", "Comment Create Timestamp"}, nil,
				messageLayouts,
				tr("Anzahl der Kommentare", "Number of comments", "Aantal reacties")),
		},
		{
			Key:      "search_history",
			Patterns: []string{"Suchverlauf.json", "search-history.json"},
			Title: tr("Wie oft haben Sie pro Tag auf YouTube gesucht?",
				"How often have you searched on YouTube per day?",
				"Hoe vaak heb je per dag op YouTube gezocht?"),
			Extract: isoDaily([]string{"time"},
				tr("Anzahl der Suchen", "Number of searches", "Aantal zoekopdrachten")),
		},
	}
}

// isoDaily counts top-level entries per day of their ISO time field. Only
// entries carrying every key in required are counted.
func isoDaily(required []string, count locale.Text) Func {
	return func(in *Input) (*table.Table, error) {
		items, err := records.Items(in.Record)
		if err != nil {
			return nil, err
		}
		var days []string
		for _, item := range items {
			if !hasKeys(item, required) {
				continue
			}
			raw, _ := records.Resolve(item, "time")
			s, _ := raw.(string)
			days = append(days, in.Days.ParseDay(s, time.RFC3339))
		}
		if len(days) == 0 {
			t := table.New("", "", in.T(locale.KeyDate), in.Text(count))
			t.Append(in.T(locale.KeyNoValidDates), 0)
			return t, nil
		}
		return countTable(in, days, count), nil
	}
}

func hasKeys(item any, keys []string) bool {
	for _, k := range keys {
		if _, ok := records.Resolve(item, k); !ok {
			return false
		}
	}
	return true
}

func subscriptions(in *Input) (*table.Table, error) {
	csv, err := tabular(in)
	if err != nil {
		return nil, err
	}
	col, ok := column(csv, []string{"Kanaltitel", "Channel Title", "Channel title"})
	if !ok {
		return nil, &records.ShapeError{Path: "Channel Title", Want: "column", Got: "absent"}
	}
	t := table.New("", "", in.Text(tr("Abonnierter Kanal", "Subscribed Channel", "Geabonneerd kanaal")))
	for _, row := range csv.Rows {
		t.Append(csv.Cell(row, col))
	}
	return t, nil
}
