package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chat-history/internal/render"
)

func TestTextExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextExporter{}).Export(sampleTranscript(render.DefaultOptions()), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := buf.String()

	header := "Chat history\nExported: 2025-01-15 11:00:00\nSession: session-1\nTotal messages: 4\n" + strings.Repeat("=", 80) + "\n\n"
	if !strings.HasPrefix(out, header) {
		t.Errorf("header = %q, want %q", out[:min(len(out), len(header))], header)
	}

	for _, want := range []string{
		"[1] User - 2025-01-15 10:00:00\nSession: session-1 | File: session-1.jsonl\n",
		"Hello **world**",
		"║ pondering",
		"┌─ 🔧 Tool call: Bash [toolu_01]",
		"│  ```go",
		"[4] Assistant - bogus",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Error("text export must not contain escape codes")
	}
}

func TestTextExporter_Truncate(t *testing.T) {
	opts := render.DefaultOptions()
	opts.Truncate = true
	opts.Limits.MaxLines = 1

	var buf bytes.Buffer
	if err := (&TextExporter{}).Export(sampleTranscript(opts), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if !strings.Contains(buf.String(), "(showing first 1 of 3 lines)") {
		t.Errorf("truncated export missing notice:\n%s", buf.String())
	}
}

func TestTextExporter_WithoutSession(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextExporter{}).Export(NewTranscript("", "", nil, render.DefaultOptions()), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if strings.Contains(buf.String(), "Session:") {
		t.Error("export without a session id should not print a Session line")
	}
	if !strings.Contains(buf.String(), "Total messages: 0") {
		t.Errorf("output = %q", buf.String())
	}
}
