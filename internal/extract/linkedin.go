package extract

import (
	"sort"
	"strings"
	"time"

	"ddp/internal/aggregate"
	"ddp/internal/locale"
	"ddp/internal/table"
)

var (
	connectionLayouts = []string{"02 Jan 2006", "2 Jan 2006", "01/02/2006", "2006-01-02", "January 2, 2006"}
	messageLayouts    = []string{
		"2006-01-02 15:04:05 MST",
		"2006-01-02 15:04:05",
		time.RFC3339,
		"01/02/2006 15:04",
		"2006-01-02",
	}
)

func linkedinArtifacts() []Descriptor {
	return []Descriptor{
		entry("Connections.csv",
			tr("Wie viele Verbindungen haben Sie pro Tag hergestellt und welche Informationen haben diese?",
				"How many connections have you made per day and what information do they have?",
				"Hoeveel connecties heb je per dag gemaakt en welke informatie hebben ze?"),
			connections),
		entry("messages.csv",
			tr("Wie viele Nachrichten haben Sie pro Tag ausgetauscht und mit wie vielen Personen?",
				"How many messages have you exchanged per day and with how many people?",
				"Hoeveel berichten heb je per dag uitgewisseld en met hoeveel mensen?"),
			linkedinMessages),
		entry("Ad_Targeting.csv",
			tr("Welche Interessen hat LinkedIn über Sie abgeleitet?",
				"What interests has LinkedIn inferred about you?",
				"Welke interesses heeft LinkedIn over je afgeleid?"),
			interests),
		entry("Reactions.csv",
			tr("Wie oft haben Sie pro Tag auf Beiträge reagiert?",
				"How often did you react to posts per day?",
				"Hoe vaak heb je per dag op berichten gereageerd?"),
			DailyTabular([]string{"Date", "Datum"}, []string{"Date"}, messageLayouts,
				tr("Anzahl der Reaktionen", "Number of reactions", "Aantal reacties"))),
	}
}

type connectionDay struct {
	count                               int
	name, url, email, company, position int
}

func connections(in *Input) (*table.Table, error) {
	csv, err := tabular(in)
	if err != nil {
		return nil, err
	}

	dateCol, ok := column(csv, []string{"Connected On", "Verbunden am"}, "Connect", "Date", "Datum")
	if !ok && len(csv.Columns) > 0 {
		dateCol = len(csv.Columns) - 1
	}
	first, _ := column(csv, []string{"First Name", "Vorname"})
	last, _ := column(csv, []string{"Last Name", "Nachname"})
	url, _ := column(csv, []string{"URL", "Profil-URL"})
	email, _ := column(csv, []string{"Email Address", "E-Mail-Adresse"})
	company, _ := column(csv, []string{"Company", "Unternehmen"})
	position, _ := column(csv, []string{"Position"})

	filled := func(row []string, col int) int {
		if strings.TrimSpace(csv.Cell(row, col)) != "" {
			return 1
		}
		return 0
	}

	days := make(map[string]*connectionDay)
	var order []string
	for _, row := range csv.Rows {
		day, ok := in.Days.TryDay(csv.Cell(row, dateCol), connectionLayouts...)
		if !ok {
			continue
		}
		d, seen := days[day]
		if !seen {
			d = &connectionDay{}
			days[day] = d
			order = append(order, day)
		}
		d.count++
		d.name += filled(row, first) & filled(row, last)
		d.url += filled(row, url)
		d.email += filled(row, email)
		d.company += filled(row, company)
		d.position += filled(row, position)
	}
	sortDays(order)

	t := table.New("", "", in.T(locale.KeyDate),
		in.Text(tr("Anzahl der Verbindungen", "Number of connections", "Aantal connecties")),
		in.Text(tr("Hat vollständigen Namen", "Has full name", "Heeft volledige naam")),
		in.Text(tr("Hat Profil-URL", "Has profile URL", "Heeft profiel-URL")),
		in.Text(tr("Hat E-Mail", "Has email", "Heeft e-mail")),
		in.Text(tr("Hat Unternehmen", "Has company", "Heeft bedrijf")),
		in.Text(tr("Hat Position", "Has position", "Heeft functie")),
	)
	for _, day := range order {
		d := days[day]
		t.Append(day, d.count, d.name, d.url, d.email, d.company, d.position)
	}
	if t.Len() == 0 {
		t.Append(in.T(locale.KeyNoValidDates), 0)
	}
	return t, nil
}

func linkedinMessages(in *Input) (*table.Table, error) {
	csv, err := tabular(in)
	if err != nil {
		return nil, err
	}
	t := table.New("", "", in.T(locale.KeyDate),
		in.Text(tr("Anzahl der Nachrichten", "Number of messages", "Aantal berichten")),
		in.Text(tr("Anzahl einzigartiger Kontakte", "Number of unique contacts", "Aantal unieke contacten")),
	)

	dateCol, okDate := column(csv, nil, "DATE", "DATUM")
	if !okDate {
		dateCol, okDate = dateColumn(in, csv, messageLayouts)
	}
	senderCol, okSender := column(csv, nil, "FROM", "VON", "SENDER")
	if !okDate || !okSender {
		t.Append(in.T(locale.KeyColumnNotFound), len(csv.Rows), nil)
		return t, nil
	}

	var events []aggregate.Event
	for _, row := range csv.Rows {
		day, ok := in.Days.TryDay(csv.Cell(row, dateCol), messageLayouts...)
		if !ok {
			continue
		}
		events = append(events, aggregate.Event{Day: day, Value: csv.Cell(row, senderCol)})
	}
	if len(events) == 0 {
		t.Append(in.T(locale.KeyNoValidDates), 0, 0)
		return t, nil
	}
	for _, g := range aggregate.GroupByDay(events) {
		t.Append(g.Day, g.Count, distinct(g.Values))
	}
	return t, nil
}

// splitInterests breaks one cell into interests. Exports separate them
// with semicolons and sometimes with runs of two spaces.
func splitInterests(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ";") {
		for _, piece := range strings.Split(part, "  ") {
			if piece = strings.TrimSpace(piece); piece != "" {
				out = append(out, piece)
			}
		}
	}
	return out
}

func interests(in *Input) (*table.Table, error) {
	csv, err := tabular(in)
	if err != nil {
		return nil, err
	}

	collect := func(col int) []string {
		seen := make(map[string]struct{})
		for _, row := range csv.Rows {
			for _, v := range splitInterests(csv.Cell(row, col)) {
				seen[v] = struct{}{}
			}
		}
		out := make([]string, 0, len(seen))
		for v := range seen {
			out = append(out, v)
		}
		sort.Strings(out)
		return out
	}

	var values []string
	if col, ok := column(csv, []string{"Member Interests"}, "Interest"); ok {
		values = collect(col)
	}
	if len(values) == 0 {
		if col, ok := column(csv, []string{"Member Skills"}, "Skill"); ok {
			values = collect(col)
		}
	}

	t := table.New("", "", in.Text(tr("LinkedIn-Interesse", "LinkedIn Interest", "LinkedIn-interesse")))
	for _, v := range values {
		t.Append(v)
	}
	if t.Len() == 0 {
		t.Append(in.T(locale.KeyNone))
	}
	return t, nil
}
