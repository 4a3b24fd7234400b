package export

import (
	"io"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/iksnae/chat-history/internal"
)

// JSONExporter exports transcripts as one pretty-printed JSON document
type JSONExporter struct{}

// Export exports a transcript to JSON format
func (e *JSONExporter) Export(t *Transcript, w io.Writer) error {
	if err := json.MarshalWrite(w, newTranscriptRecord(t), json.Deterministic(true), jsontext.WithIndent("  ")); err != nil {
		return &internal.ExportError{Format: "json", Err: err}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Extension returns the file extension for this format
func (e *JSONExporter) Extension() string {
	return "json"
}
