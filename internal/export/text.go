package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-history/internal/render"
)

// TextExporter exports transcripts as uncolored plain text
type TextExporter struct{}

// Export exports a transcript to plain text
func (e *TextExporter) Export(t *Transcript, w io.Writer) error {
	opts := t.Options
	opts.Color = false
	opts.Width = render.DefaultRuleWidth
	formatter := render.NewFormatter(w, opts)
	rule := strings.Repeat("─", render.DefaultRuleWidth)

	_, _ = fmt.Fprintf(w, "Chat history\n")
	_, _ = fmt.Fprintf(w, "Exported: %s\n", t.ExportedAt.Format("2006-01-02 15:04:05"))
	if t.ID != "" {
		_, _ = fmt.Fprintf(w, "Session: %s\n", t.ID)
	}
	_, _ = fmt.Fprintf(w, "Total messages: %d\n", len(t.Messages))
	_, _ = fmt.Fprintf(w, "%s\n\n", strings.Repeat("=", render.DefaultRuleWidth))

	for i, msg := range t.Messages {
		_, _ = fmt.Fprintf(w, "\n%s\n", rule)
		_, _ = fmt.Fprintf(w, "[%d] %s - %s\n", i+1, render.RoleLabel(msg.Role), render.FormatTimestamp(msg))
		_, _ = fmt.Fprintf(w, "Session: %s | File: %s\n", msg.SessionID, msg.SourceFile)
		_, _ = fmt.Fprintf(w, "%s\n\n", rule)

		content := formatter.FormatContent(msg.Content)
		if content == "" {
			content = render.EmptyMessage
		}
		if _, err := fmt.Fprintf(w, "%s\n\n", content); err != nil {
			return err
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *TextExporter) Extension() string {
	return "txt"
}
