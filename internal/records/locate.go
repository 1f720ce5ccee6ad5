package records

import (
	"errors"
	"strings"

	"ddp/internal/archive"
)

var ErrNotFound = errors.New("artifact not found")

// Mode selects how a pattern is matched against archive entry names.
type Mode int

const (
	// MatchSubstring accepts any decodable entry whose path contains the pattern.
	MatchSubstring Mode = iota
	// MatchBasename accepts an exact full path first, then any path ending
	// in "/" + pattern.
	MatchBasename
)

func (m Mode) String() string {
	if m == MatchBasename {
		return "basename"
	}
	return "substring"
}

type Locator struct {
	Mode           Mode
	RepairEncoding bool
}

// Located is a decoded artifact together with where it came from.
type Located struct {
	Pattern string
	Entry   string
	Record  Record
}

// Locate tries each pattern in order and returns the first entry that
// decodes. Failed decode attempts are returned for logging even on success.
// ErrNotFound means no entry matched or every match failed to decode.
func (l Locator) Locate(a *archive.Archive, patterns ...string) (*Located, []*DecodeError, error) {
	var failures []*DecodeError
	for _, pattern := range patterns {
		for _, name := range l.candidates(a.Names(), pattern) {
			data, err := a.Read(name)
			if err != nil {
				failures = append(failures, &DecodeError{Entry: name, Err: err})
				continue
			}
			rec, err := decode(name, data, l.RepairEncoding)
			if err != nil {
				failures = append(failures, &DecodeError{Entry: name, Err: err})
				continue
			}
			return &Located{Pattern: pattern, Entry: name, Record: rec}, failures, nil
		}
	}
	return nil, failures, ErrNotFound
}

func (l Locator) candidates(names []string, pattern string) []string {
	var out []string
	switch l.Mode {
	case MatchBasename:
		suffix := "/" + pattern
		for _, name := range names {
			if name == pattern {
				out = append(out, name)
			}
		}
		for _, name := range names {
			if name != pattern && strings.HasSuffix(name, suffix) {
				out = append(out, name)
			}
		}
	default:
		for _, name := range names {
			if decodable(name) && strings.Contains(name, pattern) {
				out = append(out, name)
			}
		}
	}
	return out
}
