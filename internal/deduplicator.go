package internal

// Deduplicator removes duplicate messages that appear in more than one transcript file
type Deduplicator struct{}

// NewDeduplicator creates a new Deduplicator
func NewDeduplicator() *Deduplicator {
	return &Deduplicator{}
}

// Deduplicate keeps the first occurrence of each identity key, preserving order
func (d *Deduplicator) Deduplicate(messages []*Message) []*Message {
	seen := make(map[string]bool, len(messages))
	unique := make([]*Message, 0, len(messages))

	for _, msg := range messages {
		if msg == nil || seen[msg.IdentityKey] {
			continue
		}
		seen[msg.IdentityKey] = true
		unique = append(unique, msg)
	}

	return unique
}

// DeduplicateByProject partitions messages by project and deduplicates each
// partition on its own. Partitions never share seen-state, so a message that
// was copied between two projects survives in both.
func (d *Deduplicator) DeduplicateByProject(messages []*Message) map[string][]*Message {
	groups := GroupByProject(messages)
	for project, group := range groups {
		groups[project] = d.Deduplicate(group)
	}
	return groups
}
