package export

import (
	"fmt"
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/iksnae/chat-history/internal"
)

// JSONLExporter exports transcripts in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a transcript to JSONL format
func (e *JSONLExporter) Export(t *Transcript, w io.Writer) error {
	enc := jsontext.NewEncoder(w)

	for i, msg := range t.Messages {
		// The encoder ends every top-level value with a newline
		if err := json.MarshalEncode(enc, newMessageRecord(t, i+1, msg), json.Deterministic(true)); err != nil {
			return &internal.ExportError{Format: "jsonl", Err: fmt.Errorf("failed to encode message %d: %w", i+1, err)}
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
