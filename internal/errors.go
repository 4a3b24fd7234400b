package internal

import "fmt"

// SourceError represents errors accessing transcript files or directories
type SourceError struct {
	Path string
	Op   string // "stat", "open", "read", "scan"
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source error: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ParseError represents a transcript line that could not be decoded
type ParseError struct {
	Schema string // "primary", "alternate"
	Key    string // file name, optionally with line number
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error [%s] %s: %v", e.Schema, e.Key, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// BurstError explains why a question/response burst was left out of the work time
type BurstError struct {
	Question string // identity key of the question that opened the burst
	Err      error
}

func (e *BurstError) Error() string {
	return fmt.Sprintf("burst error [%s]: %v", e.Question, e.Err)
}

func (e *BurstError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ConfigError represents an unreadable or invalid configuration file
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error %s [%s]: %v", e.Path, e.Field, e.Err)
	}
	return fmt.Sprintf("config error %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
