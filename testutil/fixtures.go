package testutil

import (
	"path/filepath"
	"testing"

	"github.com/go-json-experiment/json"
)

// Timestamps used by the project fixture
const (
	Day1 = "2025-01-15"
	Day2 = "2025-01-16"
)

func line(v any) string {
	data, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		panic(err)
	}
	return string(data)
}

func primary(kind, uuid, session, ts string, content any, extra map[string]any) string {
	rec := map[string]any{
		"type":      kind,
		"uuid":      uuid,
		"sessionId": session,
		"timestamp": ts,
		"message":   map[string]any{"role": kind, "content": content},
	}
	for k, v := range extra {
		rec[k] = v
	}
	return line(rec)
}

// UserLine is a primary-schema user record with plain string content
func UserLine(uuid, session, ts, text string) string {
	return primary("user", uuid, session, ts, text, nil)
}

// AssistantLine is a primary-schema assistant record with one text block
func AssistantLine(uuid, session, ts, text string) string {
	return primary("assistant", uuid, session, ts, []any{
		map[string]any{"type": "text", "text": text},
	}, nil)
}

// ThinkingLine is an assistant record with a thinking block followed by text
func ThinkingLine(uuid, session, ts, thinking, text string) string {
	return primary("assistant", uuid, session, ts, []any{
		map[string]any{"type": "thinking", "thinking": thinking},
		map[string]any{"type": "text", "text": text},
	}, nil)
}

// ToolUseLine is an assistant record that invokes a tool
func ToolUseLine(uuid, session, ts, toolID, name string, input map[string]any) string {
	return primary("assistant", uuid, session, ts, []any{
		map[string]any{"type": "tool_use", "id": toolID, "name": name, "input": input},
	}, nil)
}

// ToolResultLine is the user-role record that carries a tool result
func ToolResultLine(uuid, session, ts, toolID, output string) string {
	return primary("user", uuid, session, ts, []any{
		map[string]any{"type": "tool_result", "tool_use_id": toolID, "content": output},
	}, map[string]any{"toolUseResult": map[string]any{"stdout": output}})
}

// SummaryLine is a primary-schema record that is not a message
func SummaryLine(summary string) string {
	return line(map[string]any{"type": "summary", "summary": summary})
}

// RolloutMetaLine is the session_meta record that opens an alternate-schema file
func RolloutMetaLine(ts, id string) string {
	return line(map[string]any{
		"timestamp": ts,
		"type":      "session_meta",
		"payload":   map[string]any{"id": id, "cwd": "/tmp/work"},
	})
}

// RolloutMessageLine is an alternate-schema response_item message
func RolloutMessageLine(ts, role, text string) string {
	blockType := "output_text"
	if role == "user" {
		blockType = "input_text"
	}
	return line(map[string]any{
		"timestamp": ts,
		"type":      "response_item",
		"payload": map[string]any{
			"type":    "message",
			"role":    role,
			"content": []any{map[string]any{"type": blockType, "text": text}},
		},
	})
}

// CreateProjectsFixture builds a transcript root with two projects:
//
//	alpha/session-a.jsonl   six messages with a tool call, plus a summary line
//	alpha/agent-sub.jsonl   two sub-agent messages in session s-a
//	beta/session-b.jsonl    two messages and one malformed line
//	beta/session-b2.jsonl   the same two beta records again
//
// Deduplicated it holds ten messages in sessions s-a and s-b. Work time is
// 10m overall (9m without the agent file), 5m for alpha and 5m for beta.
func CreateProjectsFixture(t *testing.T) string {
	t.Helper()
	root := filepath.Join(CreateTempDir(t), "projects")

	WriteTranscript(t, root, filepath.Join("alpha", "session-a.jsonl"),
		SummaryLine("Parsing questions"),
		UserLine("u1", "s-a", Day1+"T10:00:00Z", "How do I parse JSON?"),
		AssistantLine("a1", "s-a", Day1+"T10:02:00Z", "Use encoding/json."),
		UserLine("u2", "s-a", Day1+"T10:10:00Z", "Thanks, and YAML?"),
		ToolUseLine("a2", "s-a", Day1+"T10:10:30Z", "toolu_01", "Bash", map[string]any{"command": "go doc yaml", "description": "Look up yaml"}),
		ToolResultLine("u3", "s-a", Day1+"T10:11:00Z", "toolu_01", "package yaml"),
		AssistantLine("a3", "s-a", Day1+"T10:12:00Z", "Use yaml.v3."),
	)
	WriteTranscript(t, root, filepath.Join("alpha", "agent-sub.jsonl"),
		UserLine("g1", "s-a", Day1+"T10:20:00Z", "Sub task"),
		AssistantLine("g2", "s-a", Day1+"T10:21:00Z", "Sub task done"),
	)

	beta := []string{
		UserLine("b1", "s-b", Day2+"T09:00:00Z", "Hello beta"),
		AssistantLine("b2", "s-b", Day2+"T09:05:00Z", "Hi from beta"),
	}
	WriteTranscript(t, root, filepath.Join("beta", "session-b.jsonl"), beta[0], `{"type":"user",`, beta[1])
	WriteTranscript(t, root, filepath.Join("beta", "session-b2.jsonl"), beta...)

	return root
}

// CreateRolloutFixture builds a dated alternate-schema tree with one session
// (id abc123): a question at 10:00 answered at 10:03.
func CreateRolloutFixture(t *testing.T) string {
	t.Helper()
	root := filepath.Join(CreateTempDir(t), "sessions")

	WriteTranscript(t, root, filepath.Join("2025", "01", "15", "rollout-2025-01-15T10-00-00-abc123.jsonl"),
		RolloutMetaLine(Day1+"T10:00:00.000Z", "abc123"),
		RolloutMessageLine(Day1+"T10:00:00.000Z", "user", "Rename the package"),
		RolloutMessageLine(Day1+"T10:03:00.000Z", "assistant", "Renamed."),
	)
	return root
}
