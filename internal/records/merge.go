package records

import (
	"regexp"
	"sort"
	"strings"

	"ddp/internal/archive"

	"github.com/spf13/cast"
)

// Message folders merged by MergeMessages.
const (
	CategoryInbox    = "inbox"
	CategoryRequests = "message_requests"
)

// SenderLabel replaces the donor's display name in merged messages.
const SenderLabel = "participant"

// MessagesPattern is the Located.Pattern reported by MergeMessages.
const MessagesPattern = "messages/{inbox,message_requests}/*/message_N.json"

var messageFile = regexp.MustCompile(`(?:^|/)messages/(inbox|message_requests)/([^/]+)/message_(\d+)\.json$`)

// MergeMessages reads every conversation log under the inbox and
// message_requests folders and keeps the messages written by the donor, who
// is the second participant of each conversation. Each kept message carries
// its conversation id and folder; the sender name is replaced by SenderLabel.
// The result is a single Many sorted by timestamp. ErrNotFound is returned
// when no conversation log could be read.
func MergeMessages(a *archive.Archive, repair bool) (*Located, []*DecodeError, error) {
	var (
		merged   Many
		failures []*DecodeError
		decoded  int
	)
	for _, name := range a.Names() {
		m := messageFile.FindStringSubmatch(name)
		if m == nil {
			continue
		}
		category, conversation := m[1], m[2]

		data, err := a.Read(name)
		if err != nil {
			failures = append(failures, &DecodeError{Entry: name, Err: err})
			continue
		}
		rec, err := decodeJSON(data, repair)
		if err != nil {
			failures = append(failures, &DecodeError{Entry: name, Err: err})
			continue
		}
		donor, err := LookupString(rec, "participants", 1, "name")
		if err != nil {
			failures = append(failures, &DecodeError{Entry: name, Err: err})
			continue
		}
		messages, err := ListAt(rec, "messages")
		if err != nil {
			failures = append(failures, &DecodeError{Entry: name, Err: err})
			continue
		}
		decoded++
		for _, msg := range messages {
			sender, _ := Resolve(msg, "sender_name")
			if sender != donor {
				continue
			}
			ms, _ := Resolve(msg, "timestamp_ms")
			var seconds any
			if n, err := cast.ToInt64E(ms); err == nil && ms != nil {
				seconds = n / 1000
			}
			merged = append(merged, map[string]any{
				"conversation": conversation,
				"category":     category,
				"sender_name":  SenderLabel,
				"timestamp":    seconds,
			})
		}
	}
	if decoded == 0 {
		return nil, failures, ErrNotFound
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return messageTime(merged[i]) < messageTime(merged[j])
	})
	return &Located{Pattern: MessagesPattern, Entry: MessagesPattern, Record: merged}, failures, nil
}

func messageTime(msg any) int64 {
	ts, _ := msg.(map[string]any)["timestamp"].(int64)
	return ts
}

// Slot names one source of a combined artifact.
type Slot struct {
	Name     string
	Patterns []string
}

// CombineSignals loads every slot that exists into a Bundle. A missing slot
// becomes an empty Single. ErrNotFound is returned only when no slot exists.
func (l Locator) CombineSignals(a *archive.Archive, slots ...Slot) (*Located, []*DecodeError, error) {
	bundle := make(Bundle, len(slots))
	var (
		failures []*DecodeError
		entries  []string
	)
	for _, slot := range slots {
		loc, fails, err := l.Locate(a, slot.Patterns...)
		failures = append(failures, fails...)
		if err != nil {
			bundle[slot.Name] = Single{}
			continue
		}
		bundle[slot.Name] = loc.Record
		entries = append(entries, loc.Entry)
	}
	if len(entries) == 0 {
		return nil, failures, ErrNotFound
	}

	names := make([]string, len(slots))
	for i, slot := range slots {
		names[i] = slot.Name
	}
	return &Located{Pattern: strings.Join(names, "+"), Entry: strings.Join(entries, ", "), Record: bundle}, failures, nil
}
