package render

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/iksnae/chat-history/internal"
)

const (
	// EmptyMessage is printed for messages with nothing left to show
	EmptyMessage = "[empty message]"

	toolIDLength       = 12
	paramPreviewLength = 100
	thinkingFooterSize = 120
)

// Options controls which content blocks are rendered and how
type Options struct {
	ShowThinking bool
	ShowTools    bool
	Truncate     bool
	Limits       internal.TruncateLimits
	Color        bool
	Width        int
}

// DefaultOptions shows everything untruncated and uncolored
func DefaultOptions() Options {
	return Options{
		ShowThinking: true,
		ShowTools:    true,
		Limits:       internal.DefaultTruncateLimits(),
		Width:        DefaultRuleWidth,
	}
}

// Formatter renders canonical messages as terminal or plain text
type Formatter struct {
	opts    Options
	palette Palette
}

// NewFormatter creates a Formatter whose styles render for w
func NewFormatter(w io.Writer, opts Options) *Formatter {
	if opts.Width <= 0 {
		opts.Width = DefaultRuleWidth
	}
	return &Formatter{
		opts:    opts,
		palette: NewPalette(NewRenderer(w, opts.Color)),
	}
}

// Palette returns the styles the formatter paints with
func (f *Formatter) Palette() Palette {
	return f.palette
}

// Paint applies a palette style when color is enabled
func (f *Formatter) Paint(style lipgloss.Style, s string) string {
	return paint(style, f.opts.Color, s)
}

// Rule returns a horizontal separator of the configured width
func (f *Formatter) Rule(char string) string {
	return strings.Repeat(char, f.opts.Width)
}

// FormatContent renders the content blocks of a message. It returns "" when
// every block was filtered out or empty.
func (f *Formatter) FormatContent(blocks []internal.ContentBlock) string {
	var parts []string

	for _, block := range blocks {
		switch block.Type {
		case internal.BlockText:
			if block.Text != "" {
				parts = append(parts, block.Text)
			}
		case internal.BlockThinking:
			if f.opts.ShowThinking && block.Thinking != "" {
				parts = append(parts, f.FormatThinking(block.Thinking))
			}
		case internal.BlockToolUse:
			if f.opts.ShowTools {
				parts = append(parts, f.FormatToolUse(block))
			}
		case internal.BlockToolResult:
			if f.opts.ShowTools {
				parts = append(parts, f.FormatToolResult(block))
			}
		}
	}

	return strings.Join(parts, "\n")
}

// FormatThinking renders a reasoning block inside a double-line frame
func (f *Formatter) FormatThinking(thinking string) string {
	lines := strings.Split(thinking, "\n")
	limits := f.opts.Limits

	var out []string
	out = append(out, "", f.Paint(f.palette.Thinking, "╔══ 💭 Thinking ══╗"))

	shown := lines
	if f.opts.Truncate && len(lines) > limits.MaxThinkingLines {
		shown = lines[:limits.MaxThinkingLines]
	}
	for _, line := range shown {
		if f.opts.Truncate {
			line = cut(line, limits.MaxThinkingLineLength)
		}
		out = append(out, f.Paint(f.palette.Thinking, "║ "+line))
	}
	if len(shown) < len(lines) {
		out = append(out, f.Paint(f.palette.Thinking, fmt.Sprintf("║ ... (%d more lines)", len(lines)-len(shown))))
	}

	out = append(out, f.Paint(f.palette.Thinking, "╚"+strings.Repeat("═", thinkingFooterSize)+"╝"))
	return strings.Join(out, "\n")
}

// FormatToolUse renders a tool invocation header with a summary of its parameters
func (f *Formatter) FormatToolUse(block internal.ContentBlock) string {
	name := block.ToolName
	if name == "" {
		name = "unknown"
	}
	header := fmt.Sprintf("🔧 Tool call: %s [%s]", name, cut(block.ToolID, toolIDLength))

	lines := []string{"", "┌─ " + f.Paint(f.palette.ToolCall, header)}
	for _, param := range ToolParams(name, block.Input) {
		lines = append(lines, "│  "+param)
	}
	lines = append(lines, "└─")
	return strings.Join(lines, "\n")
}

// FormatToolResult renders tool output inside a single-line frame
func (f *Formatter) FormatToolResult(block internal.ContentBlock) string {
	header := fmt.Sprintf("✅ Tool output [%s]", cut(block.ToolUseID, toolIDLength))
	if block.IsError {
		header = fmt.Sprintf("❌ Tool error [%s]", cut(block.ToolUseID, toolIDLength))
	}

	lines := []string{"", "┌─ " + f.Paint(f.palette.ToolOutput, header)}
	content := strings.Split(block.Output, "\n")
	limits := f.opts.Limits

	if !f.opts.Truncate {
		for _, line := range content {
			lines = append(lines, "│  "+line)
		}
	} else {
		shown := content
		if len(content) > limits.MaxLines {
			shown = content[:limits.MaxLines]
			lines = append(lines, fmt.Sprintf("│  (showing first %d of %d lines)", limits.MaxLines, len(content)))
		}
		for _, line := range shown {
			lines = append(lines, "│  "+ellipsize(line, limits.MaxLineLength))
		}
		if len(shown) < len(content) {
			lines = append(lines, fmt.Sprintf("│  ... (%d more lines)", len(content)-len(shown)))
		}
	}

	lines = append(lines, "└─")
	return strings.Join(lines, "\n")
}

// ToolParams summarizes the parameters of a tool call, one line each.
// Well-known tools get a tailored summary; anything else lists every
// parameter in key order with long string values shortened.
func ToolParams(name string, input map[string]any) []string {
	str := func(key string) string {
		s, _ := input[key].(string)
		return s
	}

	var params []string
	switch name {
	case "Bash":
		params = append(params, "Command: "+str("command"))
		if desc := str("description"); desc != "" {
			params = append(params, "Description: "+desc)
		}
	case "Read", "Write", "Edit":
		params = append(params, "File: "+str("file_path"))
		switch name {
		case "Edit":
			if old := str("old_string"); old != "" {
				params = append(params, fmt.Sprintf("Change: %d → %d chars",
					utf8.RuneCountInString(old), utf8.RuneCountInString(str("new_string"))))
			}
		case "Write":
			params = append(params, fmt.Sprintf("Content length: %d chars", utf8.RuneCountInString(str("content"))))
		}
	case "Glob":
		params = append(params, "Pattern: "+str("pattern"))
	case "Grep":
		mode := str("output_mode")
		if mode == "" {
			mode = "files_with_matches"
		}
		params = append(params, "Search: "+str("pattern"), "Mode: "+mode)
	case "Task":
		params = append(params, "Task: "+str("description"), "Agent: "+str("subagent_type"))
	default:
		keys := make([]string, 0, len(input))
		for key := range input {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			value := fmt.Sprint(input[key])
			if s, ok := input[key].(string); ok {
				value = ellipsize(s, paramPreviewLength)
			}
			params = append(params, fmt.Sprintf("%s: %s", key, value))
		}
	}
	return params
}

// FormatTimestamp renders a message time as "2006-01-02 15:04:05", falling
// back to the raw value when it could not be parsed.
func FormatTimestamp(msg *internal.Message) string {
	if !msg.TimestampValid {
		return msg.RawTimestamp
	}
	return msg.Timestamp.Format("2006-01-02 15:04:05")
}

// RoleLabel is the display name of a role
func RoleLabel(role internal.Role) string {
	if role == internal.RoleUser {
		return "User"
	}
	return "Assistant"
}

// cut keeps at most n runes of s
func cut(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// ellipsize keeps n runes of s and appends "..." when something was cut
func ellipsize(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
