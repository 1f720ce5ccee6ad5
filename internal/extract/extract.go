// Package extract holds the per-artifact extractors and the registry that
// tells the pipeline which artifacts each platform exports.
package extract

import (
	"time"

	"ddp/internal/aggregate"
	"ddp/internal/locale"
	"ddp/internal/records"
	"ddp/internal/table"
)

// Pictures maps an archive-relative image path to true, false or
// locale.NotAnalyzed. Images without an entry count as false.
type Pictures map[string]any

// Face returns the face indicator for uri.
func (p Pictures) Face(uri string) any {
	if v, ok := p[uri]; ok {
		return v
	}
	return false
}

// Sessions configures the session segmenter for the extractors that use it.
type Sessions struct {
	Gap  time.Duration
	Tail time.Duration
}

// Input is everything an extractor may read.
type Input struct {
	Record   records.Record
	Locale   locale.Locale
	Pictures Pictures
	Days     *aggregate.Converter
	Names    Names
	Sessions Sessions
}

func (in *Input) T(key locale.Key) string {
	return locale.T(in.Locale, key)
}

func (in *Input) Text(t locale.Text) string {
	return t.In(in.Locale)
}

// Func turns one located record into a table. Returned errors and panics
// are turned into a placeholder table by the pipeline.
type Func func(in *Input) (*table.Table, error)

// Source says how the pipeline obtains an artifact's record.
type Source int

const (
	// SourceEntry locates one archive entry by pattern.
	SourceEntry Source = iota
	// SourceMessages merges every conversation log.
	SourceMessages
	// SourceCombined loads several artifacts into one bundle.
	SourceCombined
)

type Descriptor struct {
	Key           string
	Patterns      []string
	Source        Source
	Slots         []records.Slot
	NeedsPictures bool
	Title         locale.Text
	Extract       Func
}

type ID string

const (
	Instagram ID = "instagram"
	LinkedIn  ID = "linkedin"
	YouTube   ID = "youtube"
	Unknown   ID = "unknown"
)

type Platform struct {
	ID        ID
	Name      string
	Locator   records.Locator
	Artifacts []Descriptor
}

// Keys returns artifact keys in registry order.
func (p *Platform) Keys() []string {
	keys := make([]string, len(p.Artifacts))
	for i, d := range p.Artifacts {
		keys[i] = d.Key
	}
	return keys
}

// Artifact looks up one descriptor by key.
func (p *Platform) Artifact(key string) (Descriptor, bool) {
	for _, d := range p.Artifacts {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

var registry = []*Platform{
	{
		ID:        Instagram,
		Name:      "Instagram",
		Locator:   records.Locator{Mode: records.MatchSubstring, RepairEncoding: true},
		Artifacts: instagramArtifacts(),
	},
	{
		ID:        LinkedIn,
		Name:      "LinkedIn",
		Locator:   records.Locator{Mode: records.MatchBasename},
		Artifacts: linkedinArtifacts(),
	},
	{
		ID:        YouTube,
		Name:      "YouTube",
		Locator:   records.Locator{Mode: records.MatchBasename},
		Artifacts: youtubeArtifacts(),
	},
}

// Platforms returns every registered platform in a fixed order.
func Platforms() []*Platform {
	return registry
}

// Lookup finds a platform by id.
func Lookup(id ID) (*Platform, bool) {
	for _, p := range registry {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}
