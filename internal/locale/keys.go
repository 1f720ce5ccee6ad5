package locale

import "fmt"

type Key int

const (
	KeyDate Key = iota
	KeyCount
	KeyYes
	KeyNo
	KeyNotAnalyzed
	KeyNone
	KeyUnknown
	KeyNoInformation
	KeyMissingFile
	KeyExtractionFailed
	KeyNoValidDates
	KeyProgressPictures
	KeyProgressPicturesDone
	KeyProgressExtracting
	KeyProgressDone
	KeySummaryCategory
	KeySummaryData
	KeySummaryTitle
	KeySessions
	KeyActiveSeconds
	KeyTitle
	KeyLink
	KeyChannel
	KeyContent
	KeyTime
	KeyUserAgent
	KeyNoEntries
	KeyColumnNotFound
	keyCount
)

var catalog = map[Key]Text{
	KeyDate:                 {DE: "Datum", EN: "Date", NL: "Datum"},
	KeyCount:                {DE: "Anzahl", EN: "Count", NL: "Aantal"},
	KeyYes:                  {DE: "Ja", EN: "Yes", NL: "Ja"},
	KeyNo:                   {DE: "Nein", EN: "No", NL: "Nee"},
	KeyNotAnalyzed:          {DE: "Nicht analysiert", EN: "Not analyzed", NL: "Niet geanalyseerd"},
	KeyNone:                 {DE: "Keine", EN: "None", NL: "Geen"},
	KeyUnknown:              {DE: "Unbekannt", EN: "Unknown", NL: "Onbekend"},
	KeyNoInformation:        {DE: "Keine Informationen", EN: "No information", NL: "Geen informatie"},
	KeyMissingFile:          {DE: `(Datei "%s" fehlt)`, EN: `(file "%s" missing)`, NL: `(bestand "%s" ontbreekt)`},
	KeyExtractionFailed:     {DE: "Extrahierung fehlgeschlagen - ", EN: "extraction failed - ", NL: "Extractie mislukt - "},
	KeyNoValidDates:         {DE: "Keine gültigen Daten", EN: "No valid dates", NL: "Geen geldige datums"},
	KeyProgressPictures:     {DE: "Extrahierung von Bild-Informationen: ", EN: "Extraction of image information: ", NL: "Extraheren van beeldinformatie: "},
	KeyProgressPicturesDone: {DE: "Extrahierung von Bild-Informationen abgeschlossen", EN: "Extraction of image information completed", NL: "Extraheren van beeldinformatie voltooid"},
	KeyProgressExtracting:   {DE: "Daten-Extrahierung aus der Datei: ", EN: "Data extraction from file: ", NL: "Gegevens extractie uit het bestand: "},
	KeyProgressDone:         {DE: "Daten-Extrahierung abgeschlossen", EN: "Data extraction completed", NL: "Gegevens extractie voltooid"},
	KeySummaryCategory:      {DE: "Kategorie", EN: "Category", NL: "Categorie"},
	KeySummaryData:          {DE: "Daten", EN: "Data", NL: "Gegevens"},
	KeySummaryTitle:         {DE: "Übersicht von zusätzlichen Informationen", EN: "Overview of additional data", NL: "Overzicht van aanvullende gegevens"},
	KeySessions:             {DE: "Sitzungen", EN: "Sessions", NL: "Sessies"},
	KeyActiveSeconds:        {DE: "Aktive Sekunden", EN: "Active seconds", NL: "Actieve seconden"},
	KeyTitle:                {DE: "Titel", EN: "Title", NL: "Titel"},
	KeyLink:                 {DE: "Link", EN: "Link", NL: "Link"},
	KeyChannel:              {DE: "Kanal", EN: "Channel", NL: "Kanaal"},
	KeyContent:              {DE: "Inhalt", EN: "Content", NL: "Inhoud"},
	KeyTime:                 {DE: "Uhrzeit", EN: "Time", NL: "Tijd"},
	KeyUserAgent:            {DE: "Gerät", EN: "User agent", NL: "Gebruikersagent"},
	KeyNoEntries:            {DE: `(Datei "%s" enthält keine Einträge)`, EN: `(file "%s" has no entries)`, NL: `(bestand "%s" bevat geen items)`},
	KeyColumnNotFound:       {DE: "Spalte nicht gefunden", EN: "Column not found", NL: "Kolom niet gevonden"},
}

// T returns the translation of key in l and panics on a gap in the catalog.
func T(l Locale, key Key) string {
	text, ok := catalog[key]
	if !ok {
		panic(fmt.Sprintf("locale: unknown key %d", key))
	}
	return text.In(l)
}

// Tf formats the translation of key with args.
func Tf(l Locale, key Key, args ...any) string {
	return fmt.Sprintf(T(l, key), args...)
}

// Indicator renders a tri-state flag. true and "True" read as yes, false,
// "False" and nil as no, NotAnalyzed as not analyzed. Other strings pass
// through unchanged.
func Indicator(l Locale, v any) any {
	switch val := v.(type) {
	case nil:
		return T(l, KeyNo)
	case bool:
		if val {
			return T(l, KeyYes)
		}
		return T(l, KeyNo)
	case string:
		switch val {
		case "True":
			return T(l, KeyYes)
		case "False":
			return T(l, KeyNo)
		case NotAnalyzed:
			return T(l, KeyNotAnalyzed)
		}
		return val
	}
	return v
}

// NotAnalyzed marks a picture that was skipped by the classifier.
const NotAnalyzed = "picture_not_analyzed"
