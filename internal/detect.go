package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-json-experiment/json"
)

// SourcePaths holds the default transcript directories of the supported CLIs
type SourcePaths struct {
	PrimaryRoot   string // ~/.claude/projects
	AlternateRoot string // ~/.codex/sessions
}

// DetectSourcePaths returns the default transcript directories under the user's home
func DetectSourcePaths() (SourcePaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return SourcePaths{}, fmt.Errorf("failed to get home directory: %w", err)
	}

	return SourcePaths{
		PrimaryRoot:   filepath.Join(home, ".claude", "projects"),
		AlternateRoot: filepath.Join(home, ".codex", "sessions"),
	}, nil
}

// Roots returns the configured roots in display order
func (sp SourcePaths) Roots() []string {
	return []string{sp.PrimaryRoot, sp.AlternateRoot}
}

// alternateRecordTypes are the top-level record types only the alternate schema writes
var alternateRecordTypes = map[string]bool{
	"session_meta":  true,
	"response_item": true,
	"turn_context":  true,
	"event_msg":     true,
}

const (
	alternateFilePrefix = "rollout-"
	agentFilePrefix     = "agent-"
	transcriptExt       = ".jsonl"
)

// DetectSchema decides which schema a transcript file uses from its name and
// its first non-blank line. Files it cannot tell apart default to primary.
func DetectSchema(name string, firstLine []byte) Schema {
	if strings.HasPrefix(filepath.Base(name), alternateFilePrefix) {
		return SchemaAlternate
	}

	var probe struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(firstLine, &probe); err != nil {
		return SchemaPrimary
	}
	if alternateRecordTypes[probe.Type] {
		return SchemaAlternate
	}
	return SchemaPrimary
}

// IsAgentFile reports whether a transcript was written by a sub-agent
func IsAgentFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), agentFilePrefix)
}

// IsTranscriptFile reports whether a file name looks like a JSONL transcript
func IsTranscriptFile(name string) bool {
	return strings.HasSuffix(name, transcriptExt)
}
