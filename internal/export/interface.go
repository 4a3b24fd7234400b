package export

import (
	"fmt"
	"io"
	"time"

	"github.com/iksnae/chat-history/internal"
	"github.com/iksnae/chat-history/internal/render"
)

// Transcript is an ordered list of messages ready to be written out
type Transcript struct {
	ID         string // session ID, or "" for a whole directory
	Source     string
	ExportedAt time.Time
	Messages   []*internal.Message
	Options    render.Options
}

// NewTranscript creates a transcript stamped with the current time
func NewTranscript(id, source string, messages []*internal.Message, opts render.Options) *Transcript {
	return &Transcript{
		ID:         id,
		Source:     source,
		ExportedAt: time.Now(),
		Messages:   messages,
		Options:    opts,
	}
}

// Blocks returns the content blocks of msg that the transcript options let through
func (t *Transcript) Blocks(msg *internal.Message) []internal.ContentBlock {
	blocks := make([]internal.ContentBlock, 0, len(msg.Content))
	for _, block := range msg.Content {
		switch block.Type {
		case internal.BlockThinking:
			if !t.Options.ShowThinking {
				continue
			}
		case internal.BlockToolUse, internal.BlockToolResult:
			if !t.Options.ShowTools {
				continue
			}
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Exporter defines the interface for all export formats
type Exporter interface {
	Export(t *Transcript, w io.Writer) error
	Extension() string
}

// Formats lists the accepted --format values
var Formats = []string{"text", "md", "json", "jsonl", "yaml", "sqlite"}

// NewExporter creates a new exporter based on format
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "text", "txt":
		return &TextExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "sqlite", "db":
		return &SQLiteExporter{}, nil
	default:
		return nil, &internal.ExportError{
			Format: format,
			Err:    fmt.Errorf("unsupported format (supported: text, md, json, jsonl, yaml, sqlite)"),
		}
	}
}
