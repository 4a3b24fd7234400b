package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/iksnae/chat-history/internal/render"
	"gopkg.in/yaml.v3"
)

func TestYAMLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&YAMLExporter{}).Export(sampleTranscript(render.DefaultOptions()), &buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"session: session-1",
		"message_count: 4",
		"role: user",
		"identity_key: u1",
		"tool_name: Bash",
		"timestamp: bogus",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	var doc transcriptRecord
	if err := yaml.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	if len(doc.Messages) != 4 {
		t.Fatalf("len(Messages) = %d, want 4", len(doc.Messages))
	}
	if doc.Messages[0].Content[0].Text != "Hello **world**" {
		t.Errorf("text = %q", doc.Messages[0].Content[0].Text)
	}
	if doc.Messages[2].Content[0].Output != "```go\nmain.go\n```" {
		t.Errorf("multi-line output = %q", doc.Messages[2].Content[0].Output)
	}
}
