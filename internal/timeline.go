package internal

import (
	"sort"
	"strings"
)

// SortTimeline orders messages by timestamp in place. Messages whose timestamp
// could not be parsed sort first, keeping their relative order.
func SortTimeline(messages []*Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		a, b := messages[i], messages[j]
		if a.TimestampValid != b.TimestampValid {
			return !a.TimestampValid
		}
		return a.Timestamp.Before(b.Timestamp)
	})
}

// BuildTimeline deduplicates (unless disabled) and sorts messages
func BuildTimeline(messages []*Message, deduplicate bool) []*Message {
	var timeline []*Message
	if deduplicate {
		timeline = NewDeduplicator().Deduplicate(messages)
	} else {
		timeline = append([]*Message(nil), messages...)
	}
	SortTimeline(timeline)
	return timeline
}

// GroupByProject partitions messages by their originating project, keeping input order
func GroupByProject(messages []*Message) map[string][]*Message {
	groups := make(map[string][]*Message)
	for _, msg := range messages {
		groups[msg.Project] = append(groups[msg.Project], msg)
	}
	return groups
}

// ProjectNames returns the sorted keys of a project partition
func ProjectNames(groups map[string][]*Message) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterSession keeps messages whose session ID contains the given fragment
func FilterSession(messages []*Message, fragment string) []*Message {
	if fragment == "" {
		return messages
	}
	filtered := make([]*Message, 0, len(messages))
	for _, msg := range messages {
		if strings.Contains(msg.SessionID, fragment) {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// ExcludeAgents drops messages read from agent-* transcript files
func ExcludeAgents(messages []*Message) []*Message {
	filtered := make([]*Message, 0, len(messages))
	for _, msg := range messages {
		if !msg.Agent {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// LastN returns the final n messages, or all of them when n <= 0
func LastN(messages []*Message, n int) []*Message {
	if n <= 0 || n >= len(messages) {
		return messages
	}
	return messages[len(messages)-n:]
}
