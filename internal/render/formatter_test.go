package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/iksnae/chat-history/internal"
)

func plainFormatter(opts Options) *Formatter {
	opts.Color = false
	return NewFormatter(&bytes.Buffer{}, opts)
}

func numberedLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = fmt.Sprintf("line %d", i+1)
	}
	return strings.Join(lines, "\n")
}

func TestFormatter_FormatContent(t *testing.T) {
	blocks := []internal.ContentBlock{
		{Type: internal.BlockThinking, Thinking: "pondering"},
		{Type: internal.BlockText, Text: "Here you go"},
		{Type: internal.BlockToolUse, ToolID: "toolu_1", ToolName: "Glob", Input: map[string]any{"pattern": "**/*.go"}},
		{Type: internal.BlockToolResult, ToolUseID: "toolu_1", Output: "main.go"},
	}

	tests := []struct {
		name       string
		thinking   bool
		tools      bool
		contains   []string
		notContain []string
	}{
		{
			name:     "everything",
			thinking: true,
			tools:    true,
			contains: []string{"💭 Thinking", "║ pondering", "Here you go", "🔧 Tool call: Glob", "│  Pattern: **/*.go", "✅ Tool output", "│  main.go"},
		},
		{
			name:       "no thinking",
			tools:      true,
			contains:   []string{"Here you go", "Tool call"},
			notContain: []string{"pondering"},
		},
		{
			name:       "no tools",
			thinking:   true,
			contains:   []string{"pondering", "Here you go"},
			notContain: []string{"Tool call", "Tool output", "main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.ShowThinking = tt.thinking
			opts.ShowTools = tt.tools
			got := plainFormatter(opts).FormatContent(blocks)

			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("FormatContent() missing %q in:\n%s", s, got)
				}
			}
			for _, s := range tt.notContain {
				if strings.Contains(got, s) {
					t.Errorf("FormatContent() should not contain %q in:\n%s", s, got)
				}
			}
		})
	}
}

func TestFormatter_FormatContentEmpty(t *testing.T) {
	opts := DefaultOptions()
	opts.ShowTools = false
	f := plainFormatter(opts)

	tests := []struct {
		name   string
		blocks []internal.ContentBlock
	}{
		{"no blocks", nil},
		{"empty text", []internal.ContentBlock{{Type: internal.BlockText}}},
		{"only hidden tools", []internal.ContentBlock{{Type: internal.BlockToolUse, ToolName: "Bash"}}},
		{"unknown type", []internal.ContentBlock{{Type: "image"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatContent(tt.blocks); got != "" {
				t.Errorf("FormatContent() = %q, want empty", got)
			}
		})
	}
}

func TestFormatter_FormatThinking(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		got := plainFormatter(DefaultOptions()).FormatThinking("first\nsecond")
		want := strings.Join([]string{
			"",
			"╔══ 💭 Thinking ══╗",
			"║ first",
			"║ second",
			"╚" + strings.Repeat("═", 120) + "╝",
		}, "\n")
		if got != want {
			t.Errorf("FormatThinking() =\n%s\nwant\n%s", got, want)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Truncate = true
		got := plainFormatter(opts).FormatThinking(numberedLines(25) + "\n" + strings.Repeat("y", 200))

		if !strings.Contains(got, "║ line 20\n") {
			t.Error("FormatThinking() should keep the first 20 lines")
		}
		if strings.Contains(got, "line 21") {
			t.Error("FormatThinking() should drop lines past the limit")
		}
		if !strings.Contains(got, "║ ... (6 more lines)") {
			t.Errorf("FormatThinking() missing remainder marker:\n%s", got)
		}
	})

	t.Run("long lines are cut", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Truncate = true
		got := plainFormatter(opts).FormatThinking(strings.Repeat("z", 200))
		if !strings.Contains(got, "║ "+strings.Repeat("z", 118)+"\n") {
			t.Errorf("FormatThinking() should cut lines to 118 characters:\n%s", got)
		}
	})
}

func TestFormatter_FormatToolUse(t *testing.T) {
	block := internal.ContentBlock{
		Type:     internal.BlockToolUse,
		ToolID:   "toolu_01ABCDEFGHIJK",
		ToolName: "Bash",
		Input:    map[string]any{"command": "ls -la", "description": "List files"},
	}

	got := plainFormatter(DefaultOptions()).FormatToolUse(block)
	want := strings.Join([]string{
		"",
		"┌─ 🔧 Tool call: Bash [toolu_01ABCD]",
		"│  Command: ls -la",
		"│  Description: List files",
		"└─",
	}, "\n")
	if got != want {
		t.Errorf("FormatToolUse() =\n%s\nwant\n%s", got, want)
	}

	unnamed := plainFormatter(DefaultOptions()).FormatToolUse(internal.ContentBlock{Type: internal.BlockToolUse})
	if !strings.Contains(unnamed, "Tool call: unknown") {
		t.Errorf("FormatToolUse() without a name = %q", unnamed)
	}
}

func TestFormatter_FormatToolResult(t *testing.T) {
	t.Run("untruncated", func(t *testing.T) {
		got := plainFormatter(DefaultOptions()).FormatToolResult(internal.ContentBlock{
			ToolUseID: "toolu_1",
			Output:    "a\nb",
		})
		want := "\n┌─ ✅ Tool output [toolu_1]\n│  a\n│  b\n└─"
		if got != want {
			t.Errorf("FormatToolResult() = %q, want %q", got, want)
		}
	})

	t.Run("error", func(t *testing.T) {
		got := plainFormatter(DefaultOptions()).FormatToolResult(internal.ContentBlock{
			ToolUseID: "toolu_1",
			Output:    "boom",
			IsError:   true,
		})
		if !strings.Contains(got, "❌ Tool error [toolu_1]") {
			t.Errorf("FormatToolResult() = %q, want an error header", got)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Truncate = true
		output := strings.Repeat("w", 150) + "\n" + numberedLines(34)

		got := plainFormatter(opts).FormatToolResult(internal.ContentBlock{ToolUseID: "t", Output: output})

		for _, s := range []string{
			"│  (showing first 30 of 35 lines)",
			"│  " + strings.Repeat("w", 120) + "...",
			"│  line 29\n",
			"│  ... (5 more lines)",
		} {
			if !strings.Contains(got, s) {
				t.Errorf("FormatToolResult() missing %q", s)
			}
		}
		if strings.Contains(got, "line 30") {
			t.Error("FormatToolResult() should drop lines past the limit")
		}
	})

	t.Run("short output needs no notice", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Truncate = true
		got := plainFormatter(opts).FormatToolResult(internal.ContentBlock{ToolUseID: "t", Output: "ok"})
		if strings.Contains(got, "showing first") || strings.Contains(got, "more lines") {
			t.Errorf("FormatToolResult() = %q, want no truncation notice", got)
		}
	})
}

func TestToolParams(t *testing.T) {
	tests := []struct {
		name  string
		tool  string
		input map[string]any
		want  []string
	}{
		{
			name:  "bash without description",
			tool:  "Bash",
			input: map[string]any{"command": "go test"},
			want:  []string{"Command: go test"},
		},
		{
			name:  "read",
			tool:  "Read",
			input: map[string]any{"file_path": "/src/main.go"},
			want:  []string{"File: /src/main.go"},
		},
		{
			name:  "edit",
			tool:  "Edit",
			input: map[string]any{"file_path": "a.go", "old_string": "foo", "new_string": "foobar"},
			want:  []string{"File: a.go", "Change: 3 → 6 chars"},
		},
		{
			name:  "edit without old string",
			tool:  "Edit",
			input: map[string]any{"file_path": "a.go"},
			want:  []string{"File: a.go"},
		},
		{
			name:  "write",
			tool:  "Write",
			input: map[string]any{"file_path": "b.go", "content": "héllo"},
			want:  []string{"File: b.go", "Content length: 5 chars"},
		},
		{
			name:  "glob",
			tool:  "Glob",
			input: map[string]any{"pattern": "*.md"},
			want:  []string{"Pattern: *.md"},
		},
		{
			name:  "grep default mode",
			tool:  "Grep",
			input: map[string]any{"pattern": "TODO"},
			want:  []string{"Search: TODO", "Mode: files_with_matches"},
		},
		{
			name:  "grep content mode",
			tool:  "Grep",
			input: map[string]any{"pattern": "TODO", "output_mode": "content"},
			want:  []string{"Search: TODO", "Mode: content"},
		},
		{
			name:  "task",
			tool:  "Task",
			input: map[string]any{"description": "Review", "subagent_type": "reviewer"},
			want:  []string{"Task: Review", "Agent: reviewer"},
		},
		{
			name:  "unknown tool lists sorted keys",
			tool:  "WebFetch",
			input: map[string]any{"url": "https://example.com", "max": 3.0, "prompt": strings.Repeat("p", 120)},
			want:  []string{"max: 3", "prompt: " + strings.Repeat("p", 100) + "...", "url: https://example.com"},
		},
		{
			name:  "unknown tool without input",
			tool:  "Noop",
			input: nil,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToolParams(tt.tool, tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("ToolParams() = %q, want %q", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("ToolParams()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestFormatTimestamp(t *testing.T) {
	valid := internal.CreateTestQuestion(time.Date(2025, 1, 15, 10, 4, 5, 0, time.UTC), "q")
	if got := FormatTimestamp(valid); got != "2025-01-15 10:04:05" {
		t.Errorf("FormatTimestamp() = %q", got)
	}

	invalid := internal.CreateTestInvalidMessage(internal.RoleUser, "someday", "q")
	if got := FormatTimestamp(invalid); got != "someday" {
		t.Errorf("FormatTimestamp() = %q, want raw value", got)
	}
}

func TestRoleLabel(t *testing.T) {
	if RoleLabel(internal.RoleUser) != "User" || RoleLabel(internal.RoleAssistant) != "Assistant" {
		t.Error("RoleLabel() returned unexpected labels")
	}
}

func TestFormatter_Rule(t *testing.T) {
	opts := DefaultOptions()
	opts.Width = 0
	if got := plainFormatter(opts).Rule("-"); got != strings.Repeat("-", DefaultRuleWidth) {
		t.Errorf("Rule() with zero width = %d chars, want %d", len(got), DefaultRuleWidth)
	}

	opts.Width = 40
	if got := plainFormatter(opts).Rule("─"); got != strings.Repeat("─", 40) {
		t.Error("Rule() should honor the configured width")
	}
}
