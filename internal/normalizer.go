package internal

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-json-experiment/json"
)

// identityBodyLength is how much of the message body goes into a derived identity key
const identityBodyLength = 100

// Normalizer converts raw records of either schema into canonical Messages
type Normalizer struct{}

// NewNormalizer creates a new Normalizer
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts one raw record. It returns false for records that are
// not user or assistant messages (metadata, system events, unknown roles).
func (n *Normalizer) Normalize(rec RawRecord) (*Message, bool) {
	switch r := rec.(type) {
	case *PrimaryRecord:
		return n.normalizePrimary(r)
	case *AlternateRecord:
		return n.normalizeAlternate(r)
	default:
		return nil, false
	}
}

// NormalizeAll normalizes a batch of records, dropping the ones that are not messages
func (n *Normalizer) NormalizeAll(records []RawRecord) []*Message {
	messages := make([]*Message, 0, len(records))
	for _, rec := range records {
		if msg, ok := n.Normalize(rec); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}

func (n *Normalizer) normalizePrimary(r *PrimaryRecord) (*Message, bool) {
	role, ok := n.normalizeRole(r.Type)
	if !ok {
		return nil, false
	}

	var body primaryBody
	if len(r.Message) > 0 {
		if err := json.Unmarshal(r.Message, &body); err != nil {
			LogDebug("Unreadable message body in %s: %v", r.Origin.SourceFile, err)
		}
	}
	content := decodeContent(body.Content, nil)

	msg := &Message{
		Role:          role,
		RawTimestamp:  r.Timestamp,
		IdentityKey:   identityKey(r.UUID, r.Timestamp, r.Message),
		SessionID:     r.SessionID,
		HasToolResult: len(r.ToolUseResult) > 0,
		Content:       content,
		SourceFile:    r.Origin.SourceFile,
		Project:       r.Origin.Project,
		Agent:         r.Origin.Agent,
		Schema:        SchemaPrimary,
	}
	for _, block := range content {
		if block.Type == BlockToolUse {
			msg.HasToolInvocation = true
			break
		}
	}
	msg.Timestamp, msg.TimestampValid = parseTimestampField(r.Timestamp)

	return msg, true
}

func (n *Normalizer) normalizeAlternate(r *AlternateRecord) (*Message, bool) {
	if r.Type != "response_item" || len(r.Payload) == 0 {
		return nil, false
	}

	var payload alternatePayload
	if err := json.Unmarshal(r.Payload, &payload); err != nil {
		LogDebug("Unreadable payload in %s: %v", r.Origin.SourceFile, err)
		return nil, false
	}

	role, ok := n.normalizeRole(payload.Role)
	if !ok {
		return nil, false
	}

	msg := &Message{
		Role:         role,
		RawTimestamp: r.Timestamp,
		IdentityKey:  identityKey(payload.ID, r.Timestamp, r.Payload),
		SessionID:    sessionIDFromFile(r.Origin.SourceFile),
		Content:      decodeContent(payload.Content, alternateBlockTypes),
		SourceFile:   r.Origin.SourceFile,
		Project:      r.Origin.Project,
		Agent:        r.Origin.Agent,
		Schema:       SchemaAlternate,
	}
	msg.Timestamp, msg.TimestampValid = parseTimestampField(r.Timestamp)

	return msg, true
}

// normalizeRole maps a raw role or record type onto the canonical roles
func (n *Normalizer) normalizeRole(raw string) (Role, bool) {
	switch raw {
	case "user":
		return RoleUser, true
	case "assistant":
		return RoleAssistant, true
	default:
		return "", false
	}
}

// alternateBlockTypes remaps the alternate schema's text subtypes onto "text"
var alternateBlockTypes = map[string]string{
	"input_text":  BlockText,
	"output_text": BlockText,
}

// identityKey returns the native id when present, otherwise timestamp plus a body prefix
func identityKey(nativeID, timestamp string, body []byte) string {
	if nativeID != "" {
		return nativeID
	}
	return timestamp + "_" + truncateRunes(canonicalBody(body), identityBodyLength)
}

// canonicalBody re-encodes body with sorted keys and no insignificant whitespace
func canonicalBody(body []byte) string {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return strings.TrimSpace(string(body))
	}
	canonical, err := json.Marshal(v, json.Deterministic(true))
	if err != nil {
		return strings.TrimSpace(string(body))
	}
	return string(canonical)
}

// sessionIDFromFile derives a session id from the trailing dash-delimited token of a file stem
func sessionIDFromFile(name string) string {
	base := filepath.Base(name)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if idx := strings.LastIndex(stem, "-"); idx >= 0 {
		return stem[idx+1:]
	}
	return stem
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
}

// ParseTimestamp parses an ISO-8601 style timestamp. A trailing Z means UTC and
// timestamps without an offset are read as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

func parseTimestampField(value string) (time.Time, bool) {
	t, err := ParseTimestamp(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
