package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/chat-history/internal"
)

func TestFormatter_WriteMessage(t *testing.T) {
	msg := internal.CreateTestQuestion(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), "How do I sort?")
	msg.SessionID = "0b5e1c2d-3f4a-5b6c"

	var buf bytes.Buffer
	plainFormatter(DefaultOptions()).WriteMessage(&buf, 3, msg)
	out := buf.String()

	rule := strings.Repeat("─", DefaultRuleWidth)
	want := "\n" + rule + "\n" +
		"[3] 👤 User - 2025-01-15 10:00:00\n" +
		"Session: 0b5e1c2d... | File: session-1.jsonl\n" +
		rule + "\n" +
		"How do I sort?\n\n"
	if out != want {
		t.Errorf("WriteMessage() =\n%q\nwant\n%q", out, want)
	}
}

func TestFormatter_WriteMessageEmpty(t *testing.T) {
	call := internal.CreateTestToolCall(time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC), "Bash", map[string]any{"command": "ls"})

	opts := DefaultOptions()
	opts.ShowTools = false

	var buf bytes.Buffer
	plainFormatter(opts).WriteMessage(&buf, 1, call)
	out := buf.String()

	if !strings.Contains(out, "🤖 Assistant") {
		t.Errorf("WriteMessage() missing assistant label:\n%s", out)
	}
	if !strings.Contains(out, EmptyMessage) {
		t.Errorf("WriteMessage() should print %q when nothing is shown:\n%s", EmptyMessage, out)
	}
}

func TestFormatter_WriteMessages(t *testing.T) {
	base := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	messages := []*internal.Message{
		internal.CreateTestQuestion(base, "first"),
		internal.CreateTestResponse(base.Add(time.Minute), "second"),
	}

	var buf bytes.Buffer
	plainFormatter(DefaultOptions()).WriteMessages(&buf, messages)
	out := buf.String()

	if !strings.Contains(out, "Conversation history (2 messages)") {
		t.Errorf("WriteMessages() missing header:\n%s", out)
	}
	first := strings.Index(out, "[1] 👤 User")
	second := strings.Index(out, "[2] 🤖 Assistant")
	if first < 0 || second < 0 || first > second {
		t.Errorf("WriteMessages() should number messages in order:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("uncolored output should carry no escape codes")
	}
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	if ColorEnabled(&buf, false) {
		t.Error("ColorEnabled() = true for a buffer")
	}

	t.Setenv("NO_COLOR", "1")
	if ColorEnabled(&buf, false) {
		t.Error("ColorEnabled() should honor NO_COLOR")
	}
}

func TestRuleWidth(t *testing.T) {
	if got := RuleWidth(&bytes.Buffer{}); got != DefaultRuleWidth {
		t.Errorf("RuleWidth() = %d, want %d", got, DefaultRuleWidth)
	}
}

func TestPaint(t *testing.T) {
	style := NewPalette(NewRenderer(&bytes.Buffer{}, false)).User

	if got := paint(style, false, "a\nb"); got != "a\nb" {
		t.Errorf("paint() without color = %q", got)
	}
	if got := paint(style, true, ""); got != "" {
		t.Errorf("paint() of empty string = %q", got)
	}
	// the ASCII profile renders text unchanged even when painting is requested
	if got := paint(style, true, "x\n\ny"); got != "x\n\ny" {
		t.Errorf("paint() with ASCII renderer = %q", got)
	}
}
