package internal

import (
	"strings"
	"time"
)

// Role is the speaker of a canonical message
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Content block types after normalization
const (
	BlockText       = "text"
	BlockThinking   = "thinking"
	BlockToolUse    = "tool_use"
	BlockToolResult = "tool_result"
)

// Message is the canonical, schema-independent shape of a transcript message.
// Messages are built once by the Normalizer and never modified afterwards.
type Message struct {
	Role              Role           `json:"role" yaml:"role"`
	Timestamp         time.Time      `json:"timestamp,omitzero" yaml:"timestamp,omitempty"`
	RawTimestamp      string         `json:"raw_timestamp" yaml:"raw_timestamp"`
	TimestampValid    bool           `json:"-" yaml:"-"`
	IdentityKey       string         `json:"identity_key" yaml:"identity_key"`
	SessionID         string         `json:"session_id,omitempty" yaml:"session_id,omitempty"`
	HasToolInvocation bool           `json:"has_tool_invocation,omitempty" yaml:"has_tool_invocation,omitempty"`
	HasToolResult     bool           `json:"has_tool_result,omitempty" yaml:"has_tool_result,omitempty"`
	Content           []ContentBlock `json:"content" yaml:"content"`

	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
	Project    string `json:"project,omitempty" yaml:"project,omitempty"`
	Agent      bool   `json:"agent,omitempty" yaml:"agent,omitempty"`
	Schema     Schema `json:"schema" yaml:"schema"`
}

// ContentBlock is one typed segment of a message body
type ContentBlock struct {
	Type      string         `json:"type" yaml:"type"`
	Text      string         `json:"text,omitempty" yaml:"text,omitempty"`
	Thinking  string         `json:"thinking,omitempty" yaml:"thinking,omitempty"`
	ToolID    string         `json:"tool_id,omitempty" yaml:"tool_id,omitempty"`
	ToolName  string         `json:"tool_name,omitempty" yaml:"tool_name,omitempty"`
	Input     map[string]any `json:"input,omitempty" yaml:"input,omitempty"`
	ToolUseID string         `json:"tool_use_id,omitempty" yaml:"tool_use_id,omitempty"`
	Output    string         `json:"output,omitempty" yaml:"output,omitempty"`
	IsError   bool           `json:"is_error,omitempty" yaml:"is_error,omitempty"`
}

// IsUser reports whether the message was written by the user role
func (m *Message) IsUser() bool {
	return m.Role == RoleUser
}

// IsAssistant reports whether the message was written by the assistant role
func (m *Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

// HasText reports whether at least one text block carries non-whitespace text
func (m *Message) HasText() bool {
	for _, block := range m.Content {
		if block.Type == BlockText && strings.TrimSpace(block.Text) != "" {
			return true
		}
	}
	return false
}

// FirstText returns the text of the first text block, or "" if there is none
func (m *Message) FirstText() string {
	for _, block := range m.Content {
		if block.Type == BlockText {
			return block.Text
		}
	}
	return ""
}

// Date returns the UTC calendar day of the message, or "" when the timestamp is unusable
func (m *Message) Date() string {
	if !m.TimestampValid {
		return ""
	}
	return m.Timestamp.Format("2006-01-02")
}
