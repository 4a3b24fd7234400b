package internal

import (
	"strings"
	"testing"

	"github.com/go-json-experiment/json/jsontext"
)

func TestDecodeContent(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		remap     map[string]string
		wantTypes []string
		wantText  string
	}{
		{
			name:      "bare string",
			raw:       `"Hello world"`,
			wantTypes: []string{BlockText},
			wantText:  "Hello world",
		},
		{
			name:      "empty string is still a block",
			raw:       `""`,
			wantTypes: []string{BlockText},
		},
		{
			name:      "block list",
			raw:       `[{"type":"text","text":"a"},{"type":"thinking","thinking":"b"}]`,
			wantTypes: []string{BlockText, BlockThinking},
			wantText:  "a",
		},
		{
			name:      "remapped subtypes",
			raw:       `[{"type":"input_text","text":"hi"}]`,
			remap:     alternateBlockTypes,
			wantTypes: []string{BlockText},
			wantText:  "hi",
		},
		{
			name:      "unknown block types pass through",
			raw:       `[{"type":"image"}]`,
			wantTypes: []string{"image"},
		},
		{
			name:      "wrongly typed field keeps the block",
			raw:       `[{"type":"text","text":"ok"},{"type":"tool_use","id":"toolu_01","name":"Bash","input":"notanobject"}]`,
			wantTypes: []string{BlockText, BlockToolUse},
			wantText:  "ok",
		},
		{
			name:      "non-object entries are skipped",
			raw:       `["loose",{"type":"text","text":"kept"},null]`,
			wantTypes: []string{BlockText},
			wantText:  "kept",
		},
		{name: "null", raw: `null`},
		{name: "missing", raw: ``},
		{name: "number", raw: `42`},
		{name: "broken list", raw: `[{"type":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := decodeContent(jsontext.Value(tt.raw), tt.remap)
			if len(blocks) != len(tt.wantTypes) {
				t.Fatalf("decodeContent() returned %d blocks, want %d", len(blocks), len(tt.wantTypes))
			}
			for i, block := range blocks {
				if block.Type != tt.wantTypes[i] {
					t.Errorf("block %d type = %q, want %q", i, block.Type, tt.wantTypes[i])
				}
			}
			if len(blocks) > 0 && blocks[0].Type == BlockText && blocks[0].Text != tt.wantText {
				t.Errorf("text = %q, want %q", blocks[0].Text, tt.wantText)
			}
		})
	}
}

func TestExtractToolOutput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"string", `"exit 0"`, "exit 0"},
		{"text parts", `[{"type":"text","text":"one"},{"type":"image"},{"type":"text","text":"two"}]`, "one\ntwo"},
		{"object kept as json", `{"stdout":"x"}`, `{"stdout":"x"}`},
		{"list without text", `[{"type":"image"}]`, `[{"type":"image"}]`},
		{"null", `null`, ""},
		{"empty", ``, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractToolOutput(jsontext.Value(tt.raw)); got != tt.want {
				t.Errorf("extractToolOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		s    string
		n    int
		want string
	}{
		{"hello", 3, "hel"},
		{"hello", 10, "hello"},
		{"hello", 0, ""},
		{"héllo wörld", 7, "héllo w"},
		{"日本語テキスト", 3, "日本語"},
	}

	for _, tt := range tests {
		if got := truncateRunes(tt.s, tt.n); got != tt.want {
			t.Errorf("truncateRunes(%q, %d) = %q, want %q", tt.s, tt.n, got, tt.want)
		}
	}
}

func TestPreview(t *testing.T) {
	long := strings.Repeat("ü", 150)
	if got := Preview(long, 100); len([]rune(got)) != 100 {
		t.Errorf("Preview() kept %d runes, want 100", len([]rune(got)))
	}
	if got := Preview("short", 100); got != "short" {
		t.Errorf("Preview() = %q, want short", got)
	}
}

func TestEllipsize(t *testing.T) {
	tests := []struct {
		text string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}

	for _, tt := range tests {
		if got := Ellipsize(tt.text, tt.n); got != tt.want {
			t.Errorf("Ellipsize(%q, %d) = %q, want %q", tt.text, tt.n, got, tt.want)
		}
	}
}

func TestDecodeBlock(t *testing.T) {
	rb, ok := decodeBlock(jsontext.Value(`{"type":"tool_use","id":"toolu_01","name":"Bash","input":"notanobject","is_error":"yes"}`))
	if !ok {
		t.Fatal("decodeBlock() rejected an object")
	}
	if rb.Type != BlockToolUse || rb.ID != "toolu_01" || rb.Name != "Bash" {
		t.Errorf("decodeBlock() = %+v", rb)
	}
	if rb.Input != nil || rb.IsError {
		t.Errorf("malformed fields should stay zero: input=%v is_error=%v", rb.Input, rb.IsError)
	}

	if _, ok := decodeBlock(jsontext.Value(`"text"`)); ok {
		t.Error("decodeBlock() accepted a string")
	}
}
