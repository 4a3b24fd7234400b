package export

import (
	"time"

	"github.com/iksnae/chat-history/internal"
)

// messageRecord is the serialized shape of a message in structured formats.
// Timestamps are kept as strings so unparseable values survive the round trip.
type messageRecord struct {
	Index             int                     `json:"index" yaml:"index"`
	Role              string                  `json:"role" yaml:"role"`
	Timestamp         string                  `json:"timestamp" yaml:"timestamp"`
	SessionID         string                  `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	Project           string                  `json:"project,omitempty" yaml:"project,omitempty"`
	SourceFile        string                  `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Agent             bool                    `json:"agent,omitempty" yaml:"agent,omitempty"`
	Schema            string                  `json:"schema" yaml:"schema"`
	IdentityKey       string                  `json:"identity_key" yaml:"identity_key"`
	HasToolInvocation bool                    `json:"has_tool_invocation,omitempty" yaml:"has_tool_invocation,omitempty"`
	HasToolResult     bool                    `json:"has_tool_result,omitempty" yaml:"has_tool_result,omitempty"`
	Content           []internal.ContentBlock `json:"content" yaml:"content"`
}

// transcriptRecord is the document written by the json and yaml exporters
type transcriptRecord struct {
	Session      string          `json:"session,omitempty" yaml:"session,omitempty"`
	Source       string          `json:"source,omitempty" yaml:"source,omitempty"`
	ExportedAt   string          `json:"exported_at" yaml:"exported_at"`
	MessageCount int             `json:"message_count" yaml:"message_count"`
	Messages     []messageRecord `json:"messages" yaml:"messages"`
}

func timestampString(msg *internal.Message) string {
	if !msg.TimestampValid {
		return msg.RawTimestamp
	}
	return msg.Timestamp.Format(time.RFC3339Nano)
}

func newMessageRecord(t *Transcript, index int, msg *internal.Message) messageRecord {
	return messageRecord{
		Index:             index,
		Role:              string(msg.Role),
		Timestamp:         timestampString(msg),
		SessionID:         msg.SessionID,
		Project:           msg.Project,
		SourceFile:        msg.SourceFile,
		Agent:             msg.Agent,
		Schema:            msg.Schema.String(),
		IdentityKey:       msg.IdentityKey,
		HasToolInvocation: msg.HasToolInvocation,
		HasToolResult:     msg.HasToolResult,
		Content:           t.Blocks(msg),
	}
}

func newTranscriptRecord(t *Transcript) transcriptRecord {
	rec := transcriptRecord{
		Session:      t.ID,
		Source:       t.Source,
		ExportedAt:   t.ExportedAt.Format(time.RFC3339),
		MessageCount: len(t.Messages),
		Messages:     make([]messageRecord, 0, len(t.Messages)),
	}
	for i, msg := range t.Messages {
		rec.Messages = append(rec.Messages, newMessageRecord(t, i+1, msg))
	}
	return rec
}
