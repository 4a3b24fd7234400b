package internal

import (
	"sort"
	"time"
)

// SessionSummary describes one conversation within a timeline
type SessionSummary struct {
	ID                string    `json:"id" yaml:"id"`
	Project           string    `json:"project,omitempty" yaml:"project,omitempty"`
	MessageCount      int       `json:"message_count" yaml:"message_count"`
	UserMessages      int       `json:"user_messages" yaml:"user_messages"`
	AssistantMessages int       `json:"assistant_messages" yaml:"assistant_messages"`
	FirstMessage      time.Time `json:"first_message,omitzero" yaml:"first_message,omitempty"`
	LastMessage       time.Time `json:"last_message,omitzero" yaml:"last_message,omitempty"`
	Preview           string    `json:"preview,omitempty" yaml:"preview,omitempty"`
}

// SummarizeSessions groups messages by session ID, ordered by each session's first message
func SummarizeSessions(messages []*Message) []SessionSummary {
	byID := make(map[string]*SessionSummary)
	var order []string

	for _, msg := range messages {
		summary, ok := byID[msg.SessionID]
		if !ok {
			summary = &SessionSummary{ID: msg.SessionID, Project: msg.Project}
			byID[msg.SessionID] = summary
			order = append(order, msg.SessionID)
		}

		summary.MessageCount++
		switch msg.Role {
		case RoleUser:
			summary.UserMessages++
			if summary.Preview == "" && msg.HasText() && !msg.HasToolResult {
				summary.Preview = Preview(msg.FirstText(), questionPreviewLength)
			}
		case RoleAssistant:
			summary.AssistantMessages++
		}

		if !msg.TimestampValid {
			continue
		}
		if summary.FirstMessage.IsZero() || msg.Timestamp.Before(summary.FirstMessage) {
			summary.FirstMessage = msg.Timestamp
		}
		if msg.Timestamp.After(summary.LastMessage) {
			summary.LastMessage = msg.Timestamp
		}
	}

	summaries := make([]SessionSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byID[id])
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].FirstMessage.Before(summaries[j].FirstMessage)
	})

	return summaries
}
