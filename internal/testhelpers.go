package internal

import (
	"time"
)

// TestBaseTime is the reference instant used by test timelines
var TestBaseTime = time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

// TestTime returns TestBaseTime shifted by offset
func TestTime(offset time.Duration) time.Time {
	return TestBaseTime.Add(offset)
}

// CreateTestMessage creates a message with a valid timestamp and a single text block
func CreateTestMessage(role Role, at time.Time, text string) *Message {
	msg := &Message{
		Role:           role,
		Timestamp:      at,
		RawTimestamp:   at.Format(time.RFC3339Nano),
		TimestampValid: true,
		IdentityKey:    string(role) + "_" + at.Format(time.RFC3339Nano) + "_" + text,
		SessionID:      "session-1",
		SourceFile:     "session-1.jsonl",
		Project:        "test-project",
		Schema:         SchemaPrimary,
	}
	if text != "" {
		msg.Content = []ContentBlock{{Type: BlockText, Text: text}}
	}
	return msg
}

// CreateTestQuestion creates a user message that starts a burst
func CreateTestQuestion(at time.Time, text string) *Message {
	return CreateTestMessage(RoleUser, at, text)
}

// CreateTestResponse creates a plain assistant text message
func CreateTestResponse(at time.Time, text string) *Message {
	return CreateTestMessage(RoleAssistant, at, text)
}

// CreateTestToolCall creates an assistant message that invokes a tool
func CreateTestToolCall(at time.Time, tool string, input map[string]any) *Message {
	msg := CreateTestMessage(RoleAssistant, at, "")
	msg.IdentityKey = "tool_use_" + at.Format(time.RFC3339Nano)
	msg.HasToolInvocation = true
	msg.Content = []ContentBlock{{
		Type:     BlockToolUse,
		ToolID:   "toolu_" + at.Format("150405"),
		ToolName: tool,
		Input:    input,
	}}
	return msg
}

// CreateTestToolResult creates the user-role message that carries a tool result
func CreateTestToolResult(at time.Time, output string) *Message {
	msg := CreateTestMessage(RoleUser, at, "")
	msg.IdentityKey = "tool_result_" + at.Format(time.RFC3339Nano)
	msg.HasToolResult = true
	msg.Content = []ContentBlock{{
		Type:      BlockToolResult,
		ToolUseID: "toolu_" + at.Format("150405"),
		Output:    output,
	}}
	return msg
}

// CreateTestInvalidMessage creates a message whose timestamp could not be parsed
func CreateTestInvalidMessage(role Role, raw, text string) *Message {
	msg := CreateTestMessage(role, time.Time{}, text)
	msg.Timestamp = time.Time{}
	msg.RawTimestamp = raw
	msg.TimestampValid = false
	msg.IdentityKey = string(role) + "_" + raw + "_" + text
	return msg
}
