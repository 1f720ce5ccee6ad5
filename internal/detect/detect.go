// Package detect tells which platform an uploaded archive comes from and
// whether it is the structured export the extractors understand.
package detect

import (
	"path"
	"strings"

	"ddp/internal/extract"
)

type Outcome int

const (
	Valid Outcome = iota
	// WrongFormat is the platform's HTML export instead of JSON/CSV.
	WrongFormat
	// NotPlatform means the archive lacks the platform's markers.
	NotPlatform
	// InvalidArchive is reported by callers when the zip cannot be opened.
	InvalidArchive
)

func (o Outcome) String() string {
	switch o {
	case Valid:
		return "valid"
	case WrongFormat:
		return "invalid_no_json"
	case NotPlatform:
		return "invalid_no_ddp"
	case InvalidArchive:
		return "invalid_file"
	}
	return "unknown"
}

var prefixes = []struct {
	prefix string
	id     extract.ID
}{
	{"instagram-", extract.Instagram},
	{"Basic_LinkedInDataExport", extract.LinkedIn},
	{"Complete_LinkedInDataExport", extract.LinkedIn},
	{"takeout-", extract.YouTube},
}

// Identify looks at the archive filename first and falls back to marker
// entries. It returns extract.Unknown when nothing matches.
func Identify(filename string, names []string) extract.ID {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	for _, p := range prefixes {
		if strings.HasPrefix(base, p.prefix) {
			return p.id
		}
	}

	switch {
	case anyContains(names, "ads_information/", "your_instagram_activity/"):
		return extract.Instagram
	case anyBase(names, "Connections.csv"):
		return extract.LinkedIn
	case anyContains(names, "YouTube and YouTube Music", "YouTube und YouTube Music"):
		return extract.YouTube
	}
	return extract.Unknown
}

// Validate checks the entry names of an archive already attributed to id.
func Validate(id extract.ID, names []string) Outcome {
	switch id {
	case extract.Instagram:
		if !anyContains(names, "ads_information") {
			return NotPlatform
		}
		if anyContains(names, "start_here.html") {
			return WrongFormat
		}
		return Valid
	case extract.LinkedIn:
		if anyBase(names, "Connections.csv", "messages.csv", "Ad_Targeting.csv", "Reactions.csv") {
			return Valid
		}
		return NotPlatform
	case extract.YouTube:
		if anyBase(names, "Wiedergabeverlauf.json", "watch-history.json", "Abos.csv", "subscriptions.csv") {
			return Valid
		}
		if anyBase(names, "Wiedergabeverlauf.html", "watch-history.html") {
			return WrongFormat
		}
		return NotPlatform
	}
	return NotPlatform
}

func anyContains(names []string, fragments ...string) bool {
	for _, n := range names {
		for _, f := range fragments {
			if strings.Contains(n, f) {
				return true
			}
		}
	}
	return false
}

func anyBase(names []string, bases ...string) bool {
	for _, n := range names {
		b := path.Base(n)
		for _, want := range bases {
			if b == want {
				return true
			}
		}
	}
	return false
}
