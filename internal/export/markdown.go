package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/render"
)

// MarkdownExporter exports transcripts in Markdown format
type MarkdownExporter struct{}

// Export exports a transcript to Markdown format
func (e *MarkdownExporter) Export(t *Transcript, w io.Writer) error {
	// Header
	if t.ID != "" {
		_, _ = fmt.Fprintf(w, "# Session %s\n\n", t.ID)
	} else {
		_, _ = fmt.Fprintf(w, "# Chat history\n\n")
	}

	if t.Source != "" {
		_, _ = fmt.Fprintf(w, "**Source:** %s  \n", t.Source)
	}
	_, _ = fmt.Fprintf(w, "**Exported:** %s  \n", t.ExportedAt.Format("2006-01-02 15:04:05"))
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(t.Messages))

	_, _ = fmt.Fprintf(w, "---\n\n")
	_, _ = fmt.Fprintf(w, "## Messages\n\n")

	for i, msg := range t.Messages {
		_, _ = fmt.Fprintf(w, "### %d. %s (%s)\n\n", i+1, render.RoleLabel(msg.Role), render.FormatTimestamp(msg))

		body := markdownBlocks(t.Blocks(msg))
		if body == "" {
			body = "_" + render.EmptyMessage + "_"
		}
		_, _ = fmt.Fprintf(w, "%s\n\n", body)

		// Add horizontal rule after each message (except the last one)
		if i < len(t.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

func markdownBlocks(blocks []internal.ContentBlock) string {
	var parts []string
	for _, block := range blocks {
		switch block.Type {
		case internal.BlockText:
			if block.Text != "" {
				parts = append(parts, escapeMarkdown(block.Text))
			}
		case internal.BlockThinking:
			if block.Thinking != "" {
				parts = append(parts, "<details><summary>Thinking</summary>\n\n"+block.Thinking+"\n\n</details>")
			}
		case internal.BlockToolUse:
			lines := []string{fmt.Sprintf("**Tool call:** `%s`", block.ToolName)}
			for _, param := range render.ToolParams(block.ToolName, block.Input) {
				lines = append(lines, "- "+param)
			}
			parts = append(parts, strings.Join(lines, "\n"))
		case internal.BlockToolResult:
			label := "Tool output"
			if block.IsError {
				label = "Tool error"
			}
			parts = append(parts, fmt.Sprintf("**%s:**\n\n%s", label, fence(block.Output)))
		}
	}
	return strings.Join(parts, "\n\n")
}

// fence wraps text in a code fence longer than any backtick run inside it
func fence(text string) string {
	longest, run := 0, 0
	for _, r := range text {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	marker := strings.Repeat("`", max(3, longest+1))
	return marker + "\n" + text + "\n" + marker
}

// escapeMarkdown escapes markdown special characters
func escapeMarkdown(text string) string {
	// Basic escaping - preserve code blocks
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			// Escape markdown syntax outside code blocks
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// Extension returns the file extension for this format
func (e *MarkdownExporter) Extension() string {
	return "md"
}
