package render

import (
	"fmt"
	"io"

	"github.com/iksnae/chat-history/internal"
)

const sessionPrefixLength = 8

// WriteHeader prints the banner above a list of messages
func (f *Formatter) WriteHeader(w io.Writer, count int) {
	rule := f.Rule("=")
	_, _ = fmt.Fprintf(w, "\n%s\n", rule)
	_, _ = fmt.Fprintln(w, f.Paint(f.palette.Highlight, fmt.Sprintf("Conversation history (%d messages)", count)))
	_, _ = fmt.Fprintf(w, "%s\n\n", rule)
}

// WriteMessage prints one message with its header, metadata line and content.
// index is 1-based.
func (f *Formatter) WriteMessage(w io.Writer, index int, msg *internal.Message) {
	role := f.Paint(f.palette.Assistant, "🤖 "+RoleLabel(msg.Role))
	if msg.IsUser() {
		role = f.Paint(f.palette.User, "👤 "+RoleLabel(msg.Role))
	}

	separator := f.Paint(f.palette.Separator, f.Rule("─"))
	_, _ = fmt.Fprintf(w, "\n%s\n", separator)
	_, _ = fmt.Fprintf(w, "[%d] %s - %s\n", index, role, f.Paint(f.palette.Meta, FormatTimestamp(msg)))

	meta := fmt.Sprintf("Session: %s... | File: %s", cut(msg.SessionID, sessionPrefixLength), msg.SourceFile)
	_, _ = fmt.Fprintln(w, f.Paint(f.palette.Meta, meta))
	_, _ = fmt.Fprintln(w, separator)

	if content := f.FormatContent(msg.Content); content != "" {
		_, _ = fmt.Fprintln(w, content)
	} else {
		_, _ = fmt.Fprintln(w, f.Paint(f.palette.Meta, EmptyMessage))
	}
	_, _ = fmt.Fprintln(w)
}

// WriteMessages prints the banner followed by every message
func (f *Formatter) WriteMessages(w io.Writer, messages []*internal.Message) {
	f.WriteHeader(w, len(messages))
	for i, msg := range messages {
		f.WriteMessage(w, i+1, msg)
	}
}
