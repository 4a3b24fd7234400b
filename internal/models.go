package internal

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Schema identifies which transcript format produced a raw record
type Schema int

const (
	// SchemaPrimary is the Claude Code style format (one message per line, top-level "type")
	SchemaPrimary Schema = iota
	// SchemaAlternate is the Codex style rollout format ("response_item" lines with a payload)
	SchemaAlternate
)

// String returns the schema name used in logs and exports
func (s Schema) String() string {
	switch s {
	case SchemaPrimary:
		return "primary"
	case SchemaAlternate:
		return "alternate"
	default:
		return "unknown"
	}
}

// MarshalText lets exporters write the schema by name
func (s Schema) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Origin describes where a raw record was read from
type Origin struct {
	SourceFile string
	Project    string
	Agent      bool
}

// RawRecord is one of *PrimaryRecord or *AlternateRecord
type RawRecord interface {
	Schema() Schema
	Source() Origin
}

// PrimaryRecord represents a line of a primary-schema transcript
type PrimaryRecord struct {
	Type          string         `json:"type"`
	UUID          string         `json:"uuid"`
	SessionID     string         `json:"sessionId"`
	Timestamp     string         `json:"timestamp"`
	Message       jsontext.Value `json:"message"`
	ToolUseResult jsontext.Value `json:"toolUseResult"`

	Origin Origin `json:"-"`
}

// Schema implements RawRecord
func (r *PrimaryRecord) Schema() Schema { return SchemaPrimary }

// Source implements RawRecord
func (r *PrimaryRecord) Source() Origin { return r.Origin }

// AlternateRecord represents a line of an alternate-schema transcript
type AlternateRecord struct {
	Type      string         `json:"type"`
	Timestamp string         `json:"timestamp"`
	Payload   jsontext.Value `json:"payload"`

	Origin Origin `json:"-"`
}

// Schema implements RawRecord
func (r *AlternateRecord) Schema() Schema { return SchemaAlternate }

// Source implements RawRecord
func (r *AlternateRecord) Source() Origin { return r.Origin }

// primaryBody is the "message" object of a primary record
type primaryBody struct {
	Role    string         `json:"role"`
	Content jsontext.Value `json:"content"`
}

// alternatePayload is the "payload" object of an alternate record
type alternatePayload struct {
	Type    string         `json:"type"`
	Role    string         `json:"role"`
	ID      string         `json:"id"`
	Content jsontext.Value `json:"content"`
}

// rawContentBlock is a content block as it appears on disk in either schema
type rawContentBlock struct {
	Type      string         `json:"type"`
	Text      string         `json:"text"`
	Thinking  string         `json:"thinking"`
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Input     map[string]any `json:"input"`
	ToolUseID string         `json:"tool_use_id"`
	Content   jsontext.Value `json:"content"`
	IsError   bool           `json:"is_error"`
}

// ParseRecord parses a single JSONL line into the raw record type of the given schema
func ParseRecord(line []byte, schema Schema, origin Origin) (RawRecord, error) {
	switch schema {
	case SchemaPrimary:
		var rec PrimaryRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &ParseError{Schema: schema.String(), Key: origin.SourceFile, Err: err}
		}
		rec.Origin = origin
		return &rec, nil
	case SchemaAlternate:
		var rec AlternateRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, &ParseError{Schema: schema.String(), Key: origin.SourceFile, Err: err}
		}
		rec.Origin = origin
		return &rec, nil
	default:
		return nil, fmt.Errorf("unknown schema: %d", schema)
	}
}
